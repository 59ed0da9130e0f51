package ports

import (
	"context"

	"github.com/dinebook/reservation-system/internal/core/domain"
)

// RestaurantRepository defines persistence operations for restaurants.
// Search results come back in creation order; no additional sort is applied.
type RestaurantRepository interface {
	Create(ctx context.Context, r *domain.Restaurant) (*domain.Restaurant, error)
	FindByID(ctx context.Context, id string) (*domain.Restaurant, error)
	FindByOwner(ctx context.Context, ownerID string) ([]domain.Restaurant, error)
	List(ctx context.Context) ([]domain.Restaurant, error)
	SearchByLocation(ctx context.Context, q string) ([]domain.Restaurant, error)
	SearchByCuisine(ctx context.Context, q string) ([]domain.Restaurant, error)
	Update(ctx context.Context, r *domain.Restaurant) error
	SetAvailability(ctx context.Context, id string, available bool) error
	Delete(ctx context.Context, id string) error
}
