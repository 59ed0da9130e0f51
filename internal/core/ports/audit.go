package ports

import (
	"context"

	"github.com/dinebook/reservation-system/internal/core/domain"
)

// EventRepository persists the reservation audit trail.
type EventRepository interface {
	InsertEvent(ctx context.Context, event *domain.ReservationEvent) error
}

// AuditService processes a single reservation lifecycle event. Implementations
// run behind the dispatcher; failures are logged, never surfaced to the
// operation that produced the event.
type AuditService interface {
	Process(ctx context.Context, event domain.ReservationEvent) error
}

// AuditDispatcher is the enqueue side of the audit pipeline.
type AuditDispatcher interface {
	Enqueue(event domain.ReservationEvent)
}
