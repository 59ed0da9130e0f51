package domain

import "time"

// Restaurant is a bookable venue. Available acts as a manual gate on new
// reservations: when false, booking is blocked regardless of capacity.
// OwnerID is immutable after creation except through an admin update.
type Restaurant struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Location  string    `json:"location" bson:"location"`
	Cuisine   string    `json:"cuisine" bson:"cuisine"`
	Capacity  int       `json:"capacity" bson:"capacity"`
	Available bool      `json:"available" bson:"available"`
	OwnerID   string    `json:"owner_id" bson:"owner_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
