package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/dinebook/reservation-system/internal/api/metrics"
	"github.com/dinebook/reservation-system/internal/core/authz"
	"github.com/dinebook/reservation-system/internal/core/domain"
	"github.com/dinebook/reservation-system/internal/core/ports"
)

// DedupChecker abstracts the booking idempotency store (Redis). Lookup
// returns the reservation id recorded for a key, or "" when unseen.
type DedupChecker interface {
	Lookup(ctx context.Context, key string) (string, error)
	Mark(ctx context.Context, key, reservationID string) error
}

// ReservationService implements the reservation lifecycle state machine.
type ReservationService struct {
	repo        ports.ReservationRepository
	restaurants ports.RestaurantRepository
	dedup       DedupChecker
	audit       ports.AuditDispatcher
	logger      zerolog.Logger
}

func NewReservationService(
	repo ports.ReservationRepository,
	restaurants ports.RestaurantRepository,
	dedup DedupChecker,
	audit ports.AuditDispatcher,
	logger zerolog.Logger,
) *ReservationService {
	return &ReservationService{
		repo:        repo,
		restaurants: restaurants,
		dedup:       dedup,
		audit:       audit,
		logger:      logger,
	}
}

// Book creates a reservation in state PENDING. It requires the acting
// customer to be allowed to book, the restaurant's availability gate to be
// open, and 1 <= partySize <= capacity. Capacity is checked per reservation
// only; there is no aggregation across concurrent bookings. An exact
// duplicate slot held by a non-cancelled reservation is rejected.
func (s *ReservationService) Book(ctx context.Context, actor domain.Identity, input ports.BookInput) (*domain.Reservation, error) {
	if err := authz.Decide(actor, authz.OpBookReservation); err != nil {
		return nil, err
	}

	// Idempotent replay: a retried submission returns the reservation the
	// first attempt created, without side effects.
	if input.IdempotencyKey != "" && s.dedup != nil {
		prior, err := s.dedup.Lookup(ctx, input.IdempotencyKey)
		if err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("dedup check failed, processing anyway")
		} else if prior != "" {
			if existing, findErr := s.repo.FindByID(ctx, prior); findErr == nil {
				s.logger.Info().Str("idempotency_key", input.IdempotencyKey).Str("reservation_id", prior).Msg("idempotent replay")
				return existing, nil
			}
		}
	}

	restaurant, err := s.restaurants.FindByID(ctx, input.RestaurantID)
	if err != nil {
		return nil, err
	}

	if !restaurant.Available {
		metrics.BookingsRejectedTotal.WithLabelValues("unavailable").Inc()
		return nil, domain.ErrRestaurantUnavailable
	}
	if input.PartySize < 1 {
		metrics.BookingsRejectedTotal.WithLabelValues("party_size").Inc()
		return nil, domain.ErrPartySizeInvalid
	}
	if input.PartySize > restaurant.Capacity {
		metrics.BookingsRejectedTotal.WithLabelValues("capacity").Inc()
		return nil, domain.ErrPartySizeExceedsCapacity
	}

	existing, err := s.repo.FindBySlot(ctx, input.RestaurantID, input.Date, input.Time)
	if err != nil {
		return nil, err
	}
	for _, r := range existing {
		if r.Status != domain.StatusCancelled {
			metrics.BookingsRejectedTotal.WithLabelValues("slot_taken").Inc()
			return nil, domain.ErrSlotTaken
		}
	}

	now := time.Now().UTC()
	reservation := &domain.Reservation{
		RestaurantID: input.RestaurantID,
		CustomerID:   actor.ID,
		Date:         input.Date,
		Time:         input.Time,
		PartySize:    input.PartySize,
		Status:       domain.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, reservation)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create reservation")
		return nil, err
	}

	if input.IdempotencyKey != "" && s.dedup != nil {
		if markErr := s.dedup.Mark(ctx, input.IdempotencyKey, created.ID); markErr != nil {
			s.logger.Warn().Err(markErr).Str("idempotency_key", input.IdempotencyKey).Msg("failed to set dedup key")
		}
	}

	metrics.ReservationsCreatedTotal.Inc()
	s.recordEvent(created, actor.ID)
	s.logger.Info().
		Str("reservation_id", created.ID).
		Str("restaurant_id", created.RestaurantID).
		Str("customer_id", created.CustomerID).
		Int("party_size", created.PartySize).
		Msg("reservation booked")

	return created, nil
}

// ListForCustomer returns the acting customer's own reservations.
func (s *ReservationService) ListForCustomer(ctx context.Context, actor domain.Identity) ([]domain.Reservation, error) {
	if err := authz.Decide(actor, authz.OpViewOwnReservations); err != nil {
		return nil, err
	}
	return s.repo.FindByCustomer(ctx, actor.ID)
}

// ListForRestaurant returns all reservations for a restaurant the acting
// owner owns.
func (s *ReservationService) ListForRestaurant(ctx context.Context, actor domain.Identity, restaurantID string) ([]domain.Reservation, error) {
	restaurant, err := s.restaurants.FindByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if err := authz.DecideOwned(actor, authz.OpViewRestaurantReservations, restaurant.OwnerID); err != nil {
		return nil, err
	}
	return s.repo.FindByRestaurant(ctx, restaurantID)
}

// UpdateStatus applies a lifecycle transition. Authorization is decided
// before transition legality, so an unauthorized actor sees ErrNotAuthorized
// even for a move that would also be illegal. On any failure the stored
// state is unchanged.
func (s *ReservationService) UpdateStatus(ctx context.Context, actor domain.Identity, id string, status domain.ReservationStatus) (*domain.Reservation, error) {
	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	restaurant, err := s.restaurants.FindByID(ctx, reservation.RestaurantID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeTransition(actor, reservation, restaurant, status); err != nil {
		return nil, err
	}

	if !reservation.Status.CanTransitionTo(status) {
		return nil, domain.ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	metrics.StatusTransitionsTotal.WithLabelValues(string(reservation.Status), string(status)).Inc()
	reservation.Status = status
	reservation.UpdatedAt = time.Now().UTC()
	s.recordEvent(reservation, actor.ID)
	s.logger.Info().
		Str("reservation_id", id).
		Str("status", string(status)).
		Str("actor_id", actor.ID).
		Msg("reservation status changed")

	return reservation, nil
}

// authorizeTransition applies the role rules: confirmation belongs to the
// restaurant owner alone; cancellation to the owning customer or the
// restaurant owner.
func (s *ReservationService) authorizeTransition(actor domain.Identity, reservation *domain.Reservation, restaurant *domain.Restaurant, status domain.ReservationStatus) error {
	switch actor.Role {
	case domain.RoleOwner:
		op := authz.OpCancelReservation
		if status == domain.StatusConfirmed {
			op = authz.OpConfirmReservation
		}
		return authz.DecideOwned(actor, op, restaurant.OwnerID)
	case domain.RoleCustomer:
		if status != domain.StatusCancelled {
			return domain.ErrNotAuthorized
		}
		return authz.DecideOwned(actor, authz.OpCancelOwnReservation, reservation.CustomerID)
	default:
		return domain.ErrNotAuthorized
	}
}

// recordEvent hands the lifecycle event to the audit pipeline. Best effort:
// the dispatcher swallows its own failures.
func (s *ReservationService) recordEvent(r *domain.Reservation, actorID string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.ReservationEvent{
		ReservationID: r.ID,
		RestaurantID:  r.RestaurantID,
		ActorID:       actorID,
		Status:        r.Status,
		Timestamp:     time.Now().UTC(),
	})
}
