package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dinebook/reservation-system/internal/core/domain"
)

type scriptedLister struct {
	mu      sync.Mutex
	results [][]domain.Reservation
	errs    []error
	calls   int
	gates   []chan struct{} // when set, call i blocks until gates[i] closes
}

func (l *scriptedLister) MyReservations(_ context.Context) ([]domain.Reservation, error) {
	l.mu.Lock()
	i := l.calls
	l.calls++
	var gate chan struct{}
	if i < len(l.gates) {
		gate = l.gates[i]
	}
	l.mu.Unlock()

	if gate != nil {
		<-gate
	}

	if i < len(l.errs) && l.errs[i] != nil {
		return nil, l.errs[i]
	}
	if i < len(l.results) {
		return l.results[i], nil
	}
	return nil, nil
}

func TestRefresher_AppliesSnapshot(t *testing.T) {
	lister := &scriptedLister{
		results: [][]domain.Reservation{{{ID: "res_1", Status: domain.StatusPending}}},
	}

	var got []domain.Reservation
	r := NewRefresher(lister, time.Minute, func(rs []domain.Reservation) { got = rs }, testLogger)

	r.Refresh(context.Background())

	if len(got) != 1 || got[0].ID != "res_1" {
		t.Fatalf("expected snapshot applied, got %v", got)
	}
}

func TestRefresher_SwallowsErrors(t *testing.T) {
	lister := &scriptedLister{
		errs:    []error{errors.New("boom"), nil},
		results: [][]domain.Reservation{nil, {{ID: "res_2"}}},
	}

	applied := 0
	var got []domain.Reservation
	r := NewRefresher(lister, time.Minute, func(rs []domain.Reservation) {
		applied++
		got = rs
	}, testLogger)

	r.Refresh(context.Background()) // fails, previous snapshot stands
	if applied != 0 {
		t.Fatal("failed fetch must not apply")
	}

	r.Refresh(context.Background())
	if applied != 1 || got[0].ID != "res_2" {
		t.Fatalf("expected second fetch applied, got %v", got)
	}
}

func TestRefresher_DiscardsStaleResponse(t *testing.T) {
	gate := make(chan struct{})
	lister := &scriptedLister{
		results: [][]domain.Reservation{
			{{ID: "stale"}},
			{{ID: "fresh"}},
		},
		gates: []chan struct{}{gate, nil},
	}

	var mu sync.Mutex
	var applied []string
	r := NewRefresher(lister, time.Minute, func(rs []domain.Reservation) {
		mu.Lock()
		defer mu.Unlock()
		for _, res := range rs {
			applied = append(applied, res.ID)
		}
	}, testLogger)

	// First refresh blocks inside the fetch while holding the older tag.
	done := make(chan struct{})
	go func() {
		r.Refresh(context.Background())
		close(done)
	}()

	// Wait until the first call is in flight.
	deadline := time.After(2 * time.Second)
	for {
		lister.mu.Lock()
		started := lister.calls >= 1
		lister.mu.Unlock()
		if started {
			break
		}
		select {
		case <-deadline:
			t.Fatal("first fetch never started")
		case <-time.After(time.Millisecond):
		}
	}

	// Second refresh completes first and applies the fresh snapshot.
	r.Refresh(context.Background())

	// Now the slow first fetch returns; its response must be discarded.
	close(gate)
	<-done

	mu.Lock()
	defer mu.Unlock()
	if len(applied) != 1 || applied[0] != "fresh" {
		t.Fatalf("stale response must be discarded, applied %v", applied)
	}
}

func TestRefresher_StartStopsOnContextCancel(t *testing.T) {
	lister := &scriptedLister{}
	r := NewRefresher(lister, 5*time.Millisecond, nil, testLogger)

	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx)

	// Let at least the immediate fetch run.
	time.Sleep(20 * time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)

	lister.mu.Lock()
	after := lister.calls
	lister.mu.Unlock()
	if after == 0 {
		t.Fatal("expected at least one fetch before cancel")
	}

	time.Sleep(30 * time.Millisecond)
	lister.mu.Lock()
	final := lister.calls
	lister.mu.Unlock()
	if final != after {
		t.Fatalf("loop must stop after cancel: %d -> %d", after, final)
	}
}
