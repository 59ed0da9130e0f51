package ports

import (
	"context"

	"github.com/dinebook/reservation-system/internal/core/domain"
)

// ReservationRepository defines persistence operations for reservations.
// Reservations are never deleted; cancelled records remain for history.
type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error)
	FindByID(ctx context.Context, id string) (*domain.Reservation, error)
	FindByCustomer(ctx context.Context, customerID string) ([]domain.Reservation, error)
	FindByRestaurant(ctx context.Context, restaurantID string) ([]domain.Reservation, error)
	// FindBySlot returns all reservations for the exact restaurant/date/time
	// slot, cancelled ones included; callers filter by status.
	FindBySlot(ctx context.Context, restaurantID, date, timeSlot string) ([]domain.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error
}
