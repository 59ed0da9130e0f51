package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dinebook/reservation-system/internal/core/ports"
)

// RestaurantHandler handles venue management and directory search.
type RestaurantHandler struct {
	service ports.RestaurantService
}

func NewRestaurantHandler(service ports.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{service: service}
}

// List handles GET /api/restaurants, the public directory.
//
// @Summary      List all restaurants
// @Tags         restaurants
// @Produce      json
// @Success      200  {array}  domain.Restaurant
// @Router       /api/restaurants [get]
func (h *RestaurantHandler) List(c echo.Context) error {
	restaurants, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, restaurants)
}

// SearchByLocation handles GET /api/restaurants/search/location?location=q.
//
// @Summary      Search restaurants by location
// @Tags         restaurants
// @Produce      json
// @Param        location  query    string  false  "Location substring, case-insensitive"
// @Success      200       {array}  domain.Restaurant
// @Router       /api/restaurants/search/location [get]
func (h *RestaurantHandler) SearchByLocation(c echo.Context) error {
	restaurants, err := h.service.SearchByLocation(c.Request().Context(), c.QueryParam("location"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, restaurants)
}

// SearchByCuisine handles GET /api/restaurants/search/cuisine?cuisine=q.
//
// @Summary      Search restaurants by cuisine
// @Tags         restaurants
// @Produce      json
// @Param        cuisine  query    string  false  "Cuisine substring, case-insensitive"
// @Success      200      {array}  domain.Restaurant
// @Router       /api/restaurants/search/cuisine [get]
func (h *RestaurantHandler) SearchByCuisine(c echo.Context) error {
	restaurants, err := h.service.SearchByCuisine(c.Request().Context(), c.QueryParam("cuisine"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, restaurants)
}

// AvailableCapacity handles GET /api/restaurants/:id/availability?date=&time=.
//
// @Summary      Remaining capacity at a slot
// @Tags         restaurants
// @Produce      json
// @Param        id    path      string  true  "Restaurant id"
// @Param        date  query     string  true  "Date (2006-01-02)"
// @Param        time  query     string  true  "Time (15:04)"
// @Success      200   {object}  availableCapacityResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/restaurants/{id}/availability [get]
func (h *RestaurantHandler) AvailableCapacity(c echo.Context) error {
	id := c.Param("id")
	date := c.QueryParam("date")
	timeSlot := c.QueryParam("time")
	if date == "" || timeSlot == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date and time are required")
	}

	available, err := h.service.AvailableCapacity(c.Request().Context(), id, date, timeSlot)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, availableCapacityResponse{
		RestaurantID: id,
		Date:         date,
		Time:         timeSlot,
		Available:    available,
	})
}

// ListMine handles GET /api/restaurants/my (owner).
//
// @Summary      List restaurants owned by the current user
// @Tags         restaurants
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Restaurant
// @Failure      403  {object}  errorResponse
// @Router       /api/restaurants/my [get]
func (h *RestaurantHandler) ListMine(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	restaurants, err := h.service.ListByOwner(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, restaurants)
}

// Create handles POST /api/restaurants/add (owner) and
// POST /api/restaurants/admin/add (admin, may name any owner).
//
// @Summary      Create a restaurant
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      restaurantRequest  true  "Restaurant details"
// @Success      201   {object}  domain.Restaurant
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/restaurants/add [post]
func (h *RestaurantHandler) Create(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req restaurantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), actor, ports.RestaurantInput{
		Name:     req.Name,
		Location: req.Location,
		Cuisine:  req.Cuisine,
		Capacity: req.Capacity,
		OwnerID:  req.OwnerID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/restaurants/admin/:id (admin, any restaurant).
//
// @Summary      Update a restaurant
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Restaurant id"
// @Param        body  body      restaurantRequest  true  "Restaurant details"
// @Success      200   {object}  domain.Restaurant
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/restaurants/admin/{id} [put]
func (h *RestaurantHandler) Update(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req restaurantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), ports.RestaurantInput{
		Name:     req.Name,
		Location: req.Location,
		Cuisine:  req.Cuisine,
		Capacity: req.Capacity,
		OwnerID:  req.OwnerID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/restaurants/my/:id (owner, own restaurant) and
// DELETE /api/restaurants/admin/:id (admin, any restaurant).
//
// @Summary      Delete a restaurant
// @Tags         restaurants
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Restaurant id"
// @Success      204  "deleted"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/restaurants/my/{id} [delete]
func (h *RestaurantHandler) Delete(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SetAvailability handles PUT /api/restaurants/my/:id/availability?available=.
//
// @Summary      Toggle the booking availability gate
// @Tags         restaurants
// @Produce      json
// @Security     BearerAuth
// @Param        id         path      string  true  "Restaurant id"
// @Param        available  query     bool    true  "New availability"
// @Success      200        {object}  domain.Restaurant
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /api/restaurants/my/{id}/availability [put]
func (h *RestaurantHandler) SetAvailability(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	available, err := strconv.ParseBool(c.QueryParam("available"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "available must be true or false")
	}

	updated, err := h.service.SetAvailability(c.Request().Context(), actor, c.Param("id"), available)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}
