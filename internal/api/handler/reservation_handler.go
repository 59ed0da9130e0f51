package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dinebook/reservation-system/internal/core/domain"
	"github.com/dinebook/reservation-system/internal/core/ports"
)

// ReservationHandler handles the reservation lifecycle endpoints.
type ReservationHandler struct {
	service ports.ReservationService
}

func NewReservationHandler(service ports.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: service}
}

// Book handles POST /api/reservations/book (customer).
//
// @Summary      Book a reservation
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                  false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      bookReservationRequest  true   "Reservation details"
// @Success      201              {object}  domain.Reservation
// @Failure      400              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Router       /api/reservations/book [post]
func (h *ReservationHandler) Book(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req bookReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Book(c.Request().Context(), actor, ports.BookInput{
		RestaurantID:   req.RestaurantID,
		Date:           req.Date,
		Time:           req.Time,
		PartySize:      req.PartySize,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// ListMine handles GET /api/reservations/my (customer).
//
// @Summary      List the current customer's reservations
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Reservation
// @Failure      403  {object}  errorResponse
// @Router       /api/reservations/my [get]
func (h *ReservationHandler) ListMine(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	reservations, err := h.service.ListForCustomer(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservations)
}

// ListForRestaurant handles GET /api/reservations/restaurant/:id (owner).
//
// @Summary      List reservations for an owned restaurant
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Restaurant id"
// @Success      200  {array}   domain.Reservation
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/reservations/restaurant/{id} [get]
func (h *ReservationHandler) ListForRestaurant(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	reservations, err := h.service.ListForRestaurant(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservations)
}

// UpdateStatus handles PUT /api/reservations/:id/status. The new status comes
// from the JSON body when present, otherwise from the ?status= query
// parameter.
//
// @Summary      Update a reservation's status
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string               true   "Reservation id"
// @Param        status  query     string               false  "New status"  Enums(CONFIRMED, CANCELLED)
// @Param        body    body      statusUpdateRequest  false  "New status"
// @Success      200     {object}  domain.Reservation
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Failure      422     {object}  errorResponse
// @Router       /api/reservations/{id}/status [put]
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	status := strings.ToUpper(c.QueryParam("status"))
	var req statusUpdateRequest
	if err := c.Bind(&req); err == nil && req.Status != "" {
		status = strings.ToUpper(req.Status)
	}

	newStatus := domain.ReservationStatus(status)
	if !newStatus.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "status must be one of: PENDING CONFIRMED CANCELLED")
	}

	updated, err := h.service.UpdateStatus(c.Request().Context(), actor, c.Param("id"), newStatus)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}
