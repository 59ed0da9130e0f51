package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/dinebook/reservation-system/internal/core/authz"
	"github.com/dinebook/reservation-system/internal/core/domain"
	"github.com/dinebook/reservation-system/internal/core/ports"
)

// RestaurantService implements venue management, the availability gate, and
// directory search.
type RestaurantService struct {
	repo         ports.RestaurantRepository
	reservations ports.ReservationRepository
	logger       zerolog.Logger
}

func NewRestaurantService(repo ports.RestaurantRepository, reservations ports.ReservationRepository, logger zerolog.Logger) *RestaurantService {
	return &RestaurantService{repo: repo, reservations: reservations, logger: logger}
}

func (s *RestaurantService) Create(ctx context.Context, actor domain.Identity, input ports.RestaurantInput) (*domain.Restaurant, error) {
	if err := authz.Decide(actor, authz.OpCreateRestaurant); err != nil {
		return nil, err
	}
	if input.Capacity <= 0 {
		return nil, domain.ErrCapacityInvalid
	}

	// Owners always create for themselves; only admins may name another owner.
	ownerID := actor.ID
	if actor.Role == domain.RoleAdmin && input.OwnerID != "" {
		ownerID = input.OwnerID
	}

	now := time.Now().UTC()
	restaurant := &domain.Restaurant{
		Name:      input.Name,
		Location:  input.Location,
		Cuisine:   input.Cuisine,
		Capacity:  input.Capacity,
		Available: true,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, restaurant)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create restaurant")
		return nil, err
	}

	s.logger.Info().Str("restaurant_id", created.ID).Str("owner_id", ownerID).Msg("restaurant created")
	return created, nil
}

func (s *RestaurantService) Update(ctx context.Context, actor domain.Identity, id string, input ports.RestaurantInput) (*domain.Restaurant, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.DecideOwned(actor, authz.OpUpdateRestaurant, existing.OwnerID); err != nil {
		return nil, err
	}
	if input.Capacity <= 0 {
		return nil, domain.ErrCapacityInvalid
	}

	existing.Name = input.Name
	existing.Location = input.Location
	existing.Cuisine = input.Cuisine
	existing.Capacity = input.Capacity
	// Ownership is immutable except through an admin update.
	if actor.Role == domain.RoleAdmin && input.OwnerID != "" {
		existing.OwnerID = input.OwnerID
	}
	existing.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *RestaurantService) Delete(ctx context.Context, actor domain.Identity, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.DecideOwned(actor, authz.OpDeleteRestaurant, existing.OwnerID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("restaurant_id", id).Str("actor_id", actor.ID).Msg("restaurant deleted")
	return nil
}

// SetAvailability flips the booking gate. It never touches existing
// reservations; it only blocks future bookings, and re-enabling is manual.
func (s *RestaurantService) SetAvailability(ctx context.Context, actor domain.Identity, id string, available bool) (*domain.Restaurant, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.DecideOwned(actor, authz.OpToggleAvailability, existing.OwnerID); err != nil {
		return nil, err
	}
	if err := s.repo.SetAvailability(ctx, id, available); err != nil {
		return nil, err
	}
	existing.Available = available
	s.logger.Info().Str("restaurant_id", id).Bool("available", available).Msg("availability changed")
	return existing, nil
}

func (s *RestaurantService) List(ctx context.Context) ([]domain.Restaurant, error) {
	return s.repo.List(ctx)
}

func (s *RestaurantService) ListByOwner(ctx context.Context, actor domain.Identity) ([]domain.Restaurant, error) {
	if err := authz.Decide(actor, authz.OpViewRestaurantReservations); err != nil {
		return nil, err
	}
	return s.repo.FindByOwner(ctx, actor.ID)
}

func (s *RestaurantService) SearchByLocation(ctx context.Context, q string) ([]domain.Restaurant, error) {
	return s.repo.SearchByLocation(ctx, q)
}

func (s *RestaurantService) SearchByCuisine(ctx context.Context, q string) ([]domain.Restaurant, error) {
	return s.repo.SearchByCuisine(ctx, q)
}

// AvailableCapacity reports remaining seats at an exact slot: capacity minus
// the party sizes of all non-cancelled reservations there, floored at zero.
func (s *RestaurantService) AvailableCapacity(ctx context.Context, id, date, timeSlot string) (int, error) {
	restaurant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}

	booked, err := s.reservations.FindBySlot(ctx, id, date, timeSlot)
	if err != nil {
		return 0, err
	}

	reserved := 0
	for _, r := range booked {
		if r.Status != domain.StatusCancelled {
			reserved += r.PartySize
		}
	}

	remaining := restaurant.Capacity - reserved
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
