package handler

type bookReservationRequest struct {
	RestaurantID string `json:"restaurant_id" validate:"required"`
	Date         string `json:"date"          validate:"required,datetime=2006-01-02"`
	Time         string `json:"time"          validate:"required,datetime=15:04"`
	PartySize    int    `json:"party_size"    validate:"required,gt=0"`
}

// statusUpdateRequest is the JSON-body variant of the status update; the
// same endpoint also accepts ?status= as a query parameter.
type statusUpdateRequest struct {
	Status string `json:"status" validate:"omitempty,oneof=PENDING CONFIRMED CANCELLED"`
}
