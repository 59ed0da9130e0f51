package handler

// restaurantRequest carries create/update fields. OwnerID is honoured only on
// the admin routes; the owner routes always act for the authenticated owner.
type restaurantRequest struct {
	Name     string `json:"name"     validate:"required"`
	Location string `json:"location" validate:"required"`
	Cuisine  string `json:"cuisine"  validate:"required"`
	Capacity int    `json:"capacity" validate:"required,gt=0"`
	OwnerID  string `json:"owner_id,omitempty"`
}

type availableCapacityResponse struct {
	RestaurantID string `json:"restaurant_id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Available    int    `json:"available"`
}
