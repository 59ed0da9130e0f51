package domain

import "time"

// ReservationStatus represents the lifecycle state of a reservation.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "PENDING"
	StatusConfirmed ReservationStatus = "CONFIRMED"
	StatusCancelled ReservationStatus = "CANCELLED"
)

// validTransitions defines the allowed state machine transitions.
// CANCELLED is terminal; records are never deleted, only cancelled.
var validTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether s is one of the three known statuses.
func (s ReservationStatus) Valid() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCancelled
}

// Reservation is a time-slotted booking against a restaurant.
// Date is a calendar day ("2006-01-02") and Time a wall-clock slot ("15:04");
// slot identity is exact string equality, no time arithmetic is performed.
type Reservation struct {
	ID           string            `json:"id" bson:"_id,omitempty"`
	RestaurantID string            `json:"restaurant_id" bson:"restaurant_id"`
	CustomerID   string            `json:"customer_id" bson:"customer_id"`
	Date         string            `json:"date" bson:"date"`
	Time         string            `json:"time" bson:"time"`
	PartySize    int               `json:"party_size" bson:"party_size"`
	Status       ReservationStatus `json:"status" bson:"status"`
	CreatedAt    time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at" bson:"updated_at"`
}

// ReservationEvent records a single lifecycle event for the audit trail.
type ReservationEvent struct {
	ReservationID string            `json:"reservation_id" bson:"reservation_id"`
	RestaurantID  string            `json:"restaurant_id" bson:"restaurant_id"`
	ActorID       string            `json:"actor_id" bson:"actor_id"`
	Status        ReservationStatus `json:"status" bson:"status"`
	Timestamp     time.Time         `json:"timestamp" bson:"timestamp"`
}
