package domain

import "errors"

// Credential and authorization errors.
var (
	// ErrCredentialInvalid marks a malformed or undecodable bearer token.
	// Callers holding a session must treat it as an implicit logout.
	ErrCredentialInvalid  = errors.New("invalid credential")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotAuthorized      = errors.New("not authorized")
)

// Lifecycle and validation errors.
var (
	ErrInvalidTransition        = errors.New("invalid status transition")
	ErrRestaurantUnavailable    = errors.New("restaurant is currently unavailable for reservations")
	ErrPartySizeInvalid         = errors.New("party size must be at least 1")
	ErrCapacityInvalid          = errors.New("capacity must be a positive integer")
	ErrPartySizeExceedsCapacity = errors.New("party size exceeds restaurant capacity")
	ErrSlotTaken                = errors.New("this time slot is already booked")

	// ErrValidation is the generic class clients fold collaborator-side
	// constraint violations into when no more specific sentinel applies.
	ErrValidation = errors.New("validation failed")
)

// Not-found and conflict errors.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserExists          = errors.New("username or email already registered")
	ErrRestaurantNotFound  = errors.New("restaurant not found")
	ErrReservationNotFound = errors.New("reservation not found")
)

// ErrCollaboratorUnavailable marks a transport or persistence failure when
// calling an external collaborator. Background refreshes swallow it; all
// other callers surface it.
var ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
