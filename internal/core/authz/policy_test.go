package authz

import (
	"errors"
	"testing"

	"github.com/dinebook/reservation-system/internal/core/domain"
)

func TestAllowed_RoleTable(t *testing.T) {
	cases := []struct {
		role domain.Role
		op   Operation
		want bool
	}{
		// Customer
		{domain.RoleCustomer, OpBrowseRestaurants, true},
		{domain.RoleCustomer, OpBookReservation, true},
		{domain.RoleCustomer, OpViewOwnReservations, true},
		{domain.RoleCustomer, OpCancelOwnReservation, true},
		{domain.RoleCustomer, OpCreateRestaurant, false},
		{domain.RoleCustomer, OpConfirmReservation, false},
		{domain.RoleCustomer, OpViewRestaurantReservations, false},
		{domain.RoleCustomer, OpManageUsers, false},

		// Owner
		{domain.RoleOwner, OpBrowseRestaurants, true},
		{domain.RoleOwner, OpCreateRestaurant, true},
		{domain.RoleOwner, OpUpdateRestaurant, true},
		{domain.RoleOwner, OpDeleteRestaurant, true},
		{domain.RoleOwner, OpToggleAvailability, true},
		{domain.RoleOwner, OpViewRestaurantReservations, true},
		{domain.RoleOwner, OpConfirmReservation, true},
		{domain.RoleOwner, OpCancelReservation, true},
		{domain.RoleOwner, OpBookReservation, false},
		{domain.RoleOwner, OpViewOwnReservations, false},
		{domain.RoleOwner, OpManageUsers, false},

		// Admin
		{domain.RoleAdmin, OpBrowseRestaurants, true},
		{domain.RoleAdmin, OpCreateRestaurant, true},
		{domain.RoleAdmin, OpUpdateRestaurant, true},
		{domain.RoleAdmin, OpDeleteRestaurant, true},
		{domain.RoleAdmin, OpToggleAvailability, true},
		{domain.RoleAdmin, OpManageUsers, true},
		{domain.RoleAdmin, OpBookReservation, false},
		{domain.RoleAdmin, OpConfirmReservation, false},
		{domain.RoleAdmin, OpViewRestaurantReservations, false},
	}

	for _, tc := range cases {
		if got := Allowed(tc.role, tc.op); got != tc.want {
			t.Errorf("Allowed(%s, %s): expected %v, got %v", tc.role, tc.op, tc.want, got)
		}
	}
}

func TestAllowed_UnknownRoleDeniesEverything(t *testing.T) {
	for _, op := range []Operation{OpBrowseRestaurants, OpBookReservation, OpManageUsers} {
		if Allowed(domain.Role("SUPERUSER"), op) {
			t.Errorf("unknown role must be denied %s", op)
		}
	}
}

func TestDecide_DeniesWithSentinel(t *testing.T) {
	actor := domain.Identity{ID: "u1", Role: domain.RoleCustomer}
	err := Decide(actor, OpCreateRestaurant)
	if !errors.Is(err, domain.ErrNotAuthorized) {
		t.Errorf("expected ErrNotAuthorized, got %v", err)
	}
	if err := Decide(actor, OpBookReservation); err != nil {
		t.Errorf("expected allow, got %v", err)
	}
}

func TestDecideOwned_OwnerMustOwnResource(t *testing.T) {
	owner := domain.Identity{ID: "owner_1", Role: domain.RoleOwner}

	if err := DecideOwned(owner, OpUpdateRestaurant, "owner_1"); err != nil {
		t.Errorf("owner of the resource must pass, got %v", err)
	}
	err := DecideOwned(owner, OpUpdateRestaurant, "owner_2")
	if !errors.Is(err, domain.ErrNotAuthorized) {
		t.Errorf("owner of a different resource must be denied, got %v", err)
	}
}

func TestDecideOwned_AdminBypassesOwnershipForGrantedOps(t *testing.T) {
	admin := domain.Identity{ID: "admin_1", Role: domain.RoleAdmin}

	for _, op := range []Operation{OpCreateRestaurant, OpUpdateRestaurant, OpDeleteRestaurant, OpToggleAvailability} {
		if err := DecideOwned(admin, op, "someone_else"); err != nil {
			t.Errorf("admin must pass %s on any resource, got %v", op, err)
		}
	}
}

func TestDecideOwned_AdminCannotActOnReservationLifecycle(t *testing.T) {
	admin := domain.Identity{ID: "admin_1", Role: domain.RoleAdmin}

	// Confirm/cancel are not in the admin's table at all, so even ownership
	// of the resource would not help.
	for _, op := range []Operation{OpConfirmReservation, OpCancelReservation} {
		err := DecideOwned(admin, op, "admin_1")
		if !errors.Is(err, domain.ErrNotAuthorized) {
			t.Errorf("admin must be denied %s, got %v", op, err)
		}
	}
}

func TestDecideOwned_CustomerOwnership(t *testing.T) {
	customer := domain.Identity{ID: "cust_1", Role: domain.RoleCustomer}

	if err := DecideOwned(customer, OpCancelOwnReservation, "cust_1"); err != nil {
		t.Errorf("customer cancelling own reservation must pass, got %v", err)
	}
	err := DecideOwned(customer, OpCancelOwnReservation, "cust_2")
	if !errors.Is(err, domain.ErrNotAuthorized) {
		t.Errorf("customer cancelling someone else's reservation must be denied, got %v", err)
	}
}
