package ports

import (
	"context"

	"github.com/dinebook/reservation-system/internal/core/domain"
)

// RestaurantInput carries the fields for creating or updating a restaurant.
// OwnerID is honoured only for admin actors; owners always create for
// themselves and cannot reassign ownership.
type RestaurantInput struct {
	Name     string
	Location string
	Cuisine  string
	Capacity int
	OwnerID  string
}

// RestaurantService implements venue management, the availability gate, and
// directory search.
type RestaurantService interface {
	Create(ctx context.Context, actor domain.Identity, input RestaurantInput) (*domain.Restaurant, error)
	Update(ctx context.Context, actor domain.Identity, id string, input RestaurantInput) (*domain.Restaurant, error)
	Delete(ctx context.Context, actor domain.Identity, id string) error
	SetAvailability(ctx context.Context, actor domain.Identity, id string, available bool) (*domain.Restaurant, error)

	List(ctx context.Context) ([]domain.Restaurant, error)
	ListByOwner(ctx context.Context, actor domain.Identity) ([]domain.Restaurant, error)
	SearchByLocation(ctx context.Context, q string) ([]domain.Restaurant, error)
	SearchByCuisine(ctx context.Context, q string) ([]domain.Restaurant, error)
	// AvailableCapacity returns the restaurant's capacity minus the party
	// sizes of all non-cancelled reservations at the given slot.
	AvailableCapacity(ctx context.Context, id, date, timeSlot string) (int, error)
}
