package ports

import (
	"context"

	"github.com/dinebook/reservation-system/internal/core/domain"
)

// BookInput carries all data needed to create a reservation.
// IdempotencyKey, when non-empty, makes retried submissions safe.
type BookInput struct {
	RestaurantID   string
	Date           string
	Time           string
	PartySize      int
	IdempotencyKey string
}

// ReservationService implements the reservation lifecycle: booking,
// confirmation, cancellation, and role-scoped listing.
type ReservationService interface {
	Book(ctx context.Context, actor domain.Identity, input BookInput) (*domain.Reservation, error)
	ListForCustomer(ctx context.Context, actor domain.Identity) ([]domain.Reservation, error)
	ListForRestaurant(ctx context.Context, actor domain.Identity, restaurantID string) ([]domain.Reservation, error)
	UpdateStatus(ctx context.Context, actor domain.Identity, id string, status domain.ReservationStatus) (*domain.Reservation, error)
}
