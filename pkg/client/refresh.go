package client

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/dinebook/reservation-system/internal/core/domain"
)

const defaultRefreshInterval = 5 * time.Second

// ReservationLister is the slice of the Client a Refresher needs.
type ReservationLister interface {
	MyReservations(ctx context.Context) ([]domain.Reservation, error)
}

// Refresher periodically re-fetches the session's reservations and hands the
// snapshot to the callback. Every fetch is tagged with a monotonically
// increasing sequence number and a response is applied only if its tag is
// newer than the last applied one, so a slow fetch can never overwrite the
// result of a later one. Fetch errors are logged and swallowed; the previous
// snapshot stands until a fetch succeeds.
type Refresher struct {
	lister   ReservationLister
	interval time.Duration
	log      zerolog.Logger
	onUpdate func([]domain.Reservation)

	seq         atomic.Uint64
	mu          sync.Mutex
	lastApplied uint64
}

func NewRefresher(lister ReservationLister, interval time.Duration, onUpdate func([]domain.Reservation), log zerolog.Logger) *Refresher {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	return &Refresher{
		lister:   lister,
		interval: interval,
		log:      log,
		onUpdate: onUpdate,
	}
}

// Start runs the refresh loop until ctx is cancelled. An immediate first
// fetch runs before the ticker takes over.
func (r *Refresher) Start(ctx context.Context) {
	go func() {
		r.Refresh(ctx)

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.Refresh(ctx)
			}
		}
	}()
}

// Refresh performs one tagged fetch-and-apply cycle. Safe to call
// concurrently with the background loop, e.g. right after a booking.
func (r *Refresher) Refresh(ctx context.Context) {
	tag := r.seq.Add(1)

	reservations, err := r.lister.MyReservations(ctx)
	if err != nil {
		r.log.Debug().Err(err).Uint64("tag", tag).Msg("reservation refresh failed")
		return
	}

	r.mu.Lock()
	if tag <= r.lastApplied {
		r.mu.Unlock()
		r.log.Debug().Uint64("tag", tag).Msg("discarding stale refresh response")
		return
	}
	r.lastApplied = tag
	r.mu.Unlock()

	if r.onUpdate != nil {
		r.onUpdate(reservations)
	}
}
