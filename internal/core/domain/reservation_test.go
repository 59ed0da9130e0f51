package domain

import "testing"

func TestReservationStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from ReservationStatus
		to   ReservationStatus
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusCancelled, false},
		{StatusPending, StatusPending, false},
		{StatusConfirmed, StatusConfirmed, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestReservationStatus_CancelledIsTerminal(t *testing.T) {
	for _, next := range []ReservationStatus{StatusPending, StatusConfirmed, StatusCancelled} {
		if StatusCancelled.CanTransitionTo(next) {
			t.Errorf("CANCELLED must be terminal, but transition to %s allowed", next)
		}
	}
}

func TestReservationStatus_UnknownStatusHasNoTransitions(t *testing.T) {
	bogus := ReservationStatus("DELETED")
	if bogus.CanTransitionTo(StatusCancelled) {
		t.Error("unknown status must not transition anywhere")
	}
	if StatusPending.CanTransitionTo(bogus) {
		t.Error("transition to unknown status must be rejected")
	}
}

func TestReservationStatus_Valid(t *testing.T) {
	for _, s := range []ReservationStatus{StatusPending, StatusConfirmed, StatusCancelled} {
		if !s.Valid() {
			t.Errorf("%s must be valid", s)
		}
	}
	for _, s := range []ReservationStatus{"", "pending", "DONE"} {
		if s.Valid() {
			t.Errorf("%q must be invalid", s)
		}
	}
}
