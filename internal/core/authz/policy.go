// Package authz is the pure authorization policy: a role-by-operation table
// plus ownership checks. It has no side effects and performs no I/O, so the
// same decisions run inside the server services and as advisory pre-flight
// gates in the client engine. On the client side the result is a UX
// optimization only; the server remains the authority.
package authz

import (
	"github.com/dinebook/reservation-system/internal/core/domain"
)

// Operation names every gated action in the system.
type Operation string

const (
	OpBrowseRestaurants          Operation = "browse_restaurants"
	OpBookReservation            Operation = "book_reservation"
	OpViewOwnReservations        Operation = "view_own_reservations"
	OpCancelOwnReservation       Operation = "cancel_own_reservation"
	OpCreateRestaurant           Operation = "create_restaurant"
	OpUpdateRestaurant           Operation = "update_restaurant"
	OpDeleteRestaurant           Operation = "delete_restaurant"
	OpToggleAvailability         Operation = "toggle_availability"
	OpViewRestaurantReservations Operation = "view_restaurant_reservations"
	OpConfirmReservation         Operation = "confirm_reservation"
	OpCancelReservation          Operation = "cancel_reservation"
	OpManageUsers                Operation = "manage_users"
)

// allowed is the role-scoped operation table. Absence means deny.
var allowed = map[domain.Role]map[Operation]struct{}{
	domain.RoleCustomer: {
		OpBrowseRestaurants:    {},
		OpBookReservation:      {},
		OpViewOwnReservations:  {},
		OpCancelOwnReservation: {},
	},
	domain.RoleOwner: {
		OpBrowseRestaurants:          {},
		OpCreateRestaurant:           {},
		OpUpdateRestaurant:           {},
		OpDeleteRestaurant:           {},
		OpToggleAvailability:         {},
		OpViewRestaurantReservations: {},
		OpConfirmReservation:         {},
		OpCancelReservation:          {},
	},
	domain.RoleAdmin: {
		OpBrowseRestaurants:  {},
		OpCreateRestaurant:   {},
		OpUpdateRestaurant:   {},
		OpDeleteRestaurant:   {},
		OpToggleAvailability: {},
		OpManageUsers:        {},
	},
}

// adminAny lists the ownership-scoped operations an admin may perform on any
// resource. An OWNER always has to own the specific resource.
var adminAny = map[Operation]struct{}{
	OpCreateRestaurant:   {},
	OpUpdateRestaurant:   {},
	OpDeleteRestaurant:   {},
	OpToggleAvailability: {},
}

// Allowed reports whether the role may attempt the operation at all.
func Allowed(role domain.Role, op Operation) bool {
	_, ok := allowed[role][op]
	return ok
}

// Decide gates a role-scoped operation. Denials never downgrade silently:
// the caller gets ErrNotAuthorized.
func Decide(actor domain.Identity, op Operation) error {
	if !Allowed(actor.Role, op) {
		return domain.ErrNotAuthorized
	}
	return nil
}

// DecideOwned gates an ownership-scoped operation. The resource owner's
// identifier is compared against the actor's identifier, not against role
// alone; admins pass only for operations the table grants on any resource.
func DecideOwned(actor domain.Identity, op Operation, ownerID string) error {
	if err := Decide(actor, op); err != nil {
		return err
	}
	if actor.Role == domain.RoleAdmin {
		if _, any := adminAny[op]; any {
			return nil
		}
	}
	if ownerID != actor.ID {
		return domain.ErrNotAuthorized
	}
	return nil
}
