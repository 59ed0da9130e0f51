package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dinebook/reservation-system/internal/core/domain"
	"github.com/dinebook/reservation-system/internal/core/ports"
)

type auditService struct {
	events ports.EventRepository
	log    zerolog.Logger
}

// NewAuditService returns an AuditService that persists reservation lifecycle
// events to the audit trail.
func NewAuditService(events ports.EventRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{events: events, log: log}
}

// Process persists a single audit event. Runs behind the dispatcher; the
// producing operation has already completed, so errors here are reported to
// the dispatcher and logged, never surfaced to the user.
func (s *auditService) Process(ctx context.Context, event domain.ReservationEvent) error {
	if err := s.events.InsertEvent(ctx, &event); err != nil {
		return fmt.Errorf("audit event: %w", err)
	}
	s.log.Debug().
		Str("reservation_id", event.ReservationID).
		Str("status", string(event.Status)).
		Msg("audit event recorded")
	return nil
}
