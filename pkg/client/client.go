package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/dinebook/reservation-system/internal/core/authz"
	"github.com/dinebook/reservation-system/internal/core/domain"
)

const defaultTimeout = 15 * time.Second

// Client talks to the reservation API on behalf of the session's identity.
// Role checks run locally first through the authz tables so a caller gets an
// immediate ErrNotAuthorized instead of a round trip; the collaborator still
// enforces the same policy authoritatively.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
	log     zerolog.Logger
}

func New(baseURL string, session *Session, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		session: session,
		log:     log,
	}
}

// Session exposes the client's session for observers and direct inspection.
func (c *Client) Session() *Session {
	return c.session
}

// RegisterInput mirrors the collaborator's registration payload.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// RestaurantInput carries the fields an owner or admin submits for a
// restaurant. OwnerID is honored by the collaborator for admins only.
type RestaurantInput struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Cuisine  string `json:"cuisine"`
	Capacity int    `json:"capacity"`
	OwnerID  string `json:"owner_id,omitempty"`
}

// BookInput carries a booking request. The idempotency key, when set, lets a
// retried booking replay the original reservation instead of duplicating it.
type BookInput struct {
	RestaurantID   string `json:"restaurant_id"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	PartySize      int    `json:"party_size"`
	IdempotencyKey string `json:"-"`
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginReply struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Register creates an account. No session is established; the caller logs in
// afterwards.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates against the collaborator and, on success, installs the
// returned credential into the session.
func (c *Client) Login(ctx context.Context, username, password string) (domain.Identity, error) {
	var reply loginReply
	err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, loginPayload{Username: username, Password: password}, &reply)
	if err != nil {
		return domain.Identity{}, err
	}
	if err := c.session.Login(reply.Token); err != nil {
		return domain.Identity{}, err
	}
	identity, _ := c.session.Identity()
	return identity, nil
}

// Logout tears down the local session. Purely local; the credential simply
// stops being presented.
func (c *Client) Logout() error {
	return c.session.Logout()
}

// UserUpdate carries optional profile fields for an account update; nil
// fields are left unchanged by the collaborator.
type UserUpdate struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// ListUsers returns every registered account. Admin only.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	if _, err := c.requireOp(authz.OpManageUsers); err != nil {
		return nil, err
	}
	var out []domain.User
	err := c.do(ctx, http.MethodGet, "/api/auth/users", nil, nil, &out)
	return out, err
}

// DeleteUser removes an account. Admin only.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	if _, err := c.requireOp(authz.OpManageUsers); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, "/api/auth/users/"+id, nil, nil, nil)
}

// SetUserRole changes an account's role. Admin only; takes effect on the
// subject's next login.
func (c *Client) SetUserRole(ctx context.Context, id string, role domain.Role) error {
	if _, err := c.requireOp(authz.OpManageUsers); err != nil {
		return err
	}
	q := url.Values{"role": {string(role)}}
	return c.do(ctx, http.MethodPut, "/api/auth/users/"+id+"/role", q, nil, nil)
}

// SetUserPassword resets an account's password. Admin only.
func (c *Client) SetUserPassword(ctx context.Context, id, password string) error {
	if _, err := c.requireOp(authz.OpManageUsers); err != nil {
		return err
	}
	q := url.Values{"password": {password}}
	return c.do(ctx, http.MethodPut, "/api/auth/users/"+id+"/password", q, nil, nil)
}

// UpdateUserProfile patches an account's username and email. Admin only.
func (c *Client) UpdateUserProfile(ctx context.Context, id string, update UserUpdate) error {
	if _, err := c.requireOp(authz.OpManageUsers); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, "/api/auth/users/"+id, nil, update, nil)
}

// ListRestaurants returns the full directory. Public, no session required.
func (c *Client) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	var out []domain.Restaurant
	err := c.do(ctx, http.MethodGet, "/api/restaurants", nil, nil, &out)
	return out, err
}

// SearchByLocation returns restaurants whose location contains q,
// case-insensitive. An empty q returns the full directory.
func (c *Client) SearchByLocation(ctx context.Context, q string) ([]domain.Restaurant, error) {
	var out []domain.Restaurant
	err := c.do(ctx, http.MethodGet, "/api/restaurants/search/location", url.Values{"location": {q}}, nil, &out)
	return out, err
}

// SearchByCuisine returns restaurants whose cuisine contains q,
// case-insensitive. An empty q returns the full directory.
func (c *Client) SearchByCuisine(ctx context.Context, q string) ([]domain.Restaurant, error) {
	var out []domain.Restaurant
	err := c.do(ctx, http.MethodGet, "/api/restaurants/search/cuisine", url.Values{"cuisine": {q}}, nil, &out)
	return out, err
}

type availableCapacityReply struct {
	RestaurantID string `json:"restaurant_id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Available    int    `json:"available"`
}

// AvailableCapacity returns the seats still free for the slot.
func (c *Client) AvailableCapacity(ctx context.Context, restaurantID, date, timeOfDay string) (int, error) {
	var reply availableCapacityReply
	q := url.Values{"date": {date}, "time": {timeOfDay}}
	err := c.do(ctx, http.MethodGet, "/api/restaurants/"+restaurantID+"/availability", q, nil, &reply)
	return reply.Available, err
}

// CreateRestaurant registers a restaurant. Owners and admins use different
// collaborator paths; the identity's role picks the right one.
func (c *Client) CreateRestaurant(ctx context.Context, input RestaurantInput) (*domain.Restaurant, error) {
	identity, err := c.requireOp(authz.OpCreateRestaurant)
	if err != nil {
		return nil, err
	}
	path := "/api/restaurants/add"
	if identity.Role == domain.RoleAdmin {
		path = "/api/restaurants/admin/add"
	}
	var out domain.Restaurant
	if err := c.do(ctx, http.MethodPost, path, nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyRestaurants lists the restaurants owned by the session's identity.
func (c *Client) MyRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	if _, err := c.requireOp(authz.OpViewRestaurantReservations); err != nil {
		return nil, err
	}
	var out []domain.Restaurant
	err := c.do(ctx, http.MethodGet, "/api/restaurants/my", nil, nil, &out)
	return out, err
}

// UpdateRestaurant replaces the restaurant's profile fields.
func (c *Client) UpdateRestaurant(ctx context.Context, id string, input RestaurantInput) (*domain.Restaurant, error) {
	identity, err := c.requireOp(authz.OpUpdateRestaurant)
	if err != nil {
		return nil, err
	}
	path := "/api/restaurants/my/" + id
	if identity.Role == domain.RoleAdmin {
		path = "/api/restaurants/admin/" + id
	}
	var out domain.Restaurant
	if err := c.do(ctx, http.MethodPut, path, nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRestaurant removes the restaurant.
func (c *Client) DeleteRestaurant(ctx context.Context, id string) error {
	identity, err := c.requireOp(authz.OpDeleteRestaurant)
	if err != nil {
		return err
	}
	path := "/api/restaurants/my/" + id
	if identity.Role == domain.RoleAdmin {
		path = "/api/restaurants/admin/" + id
	}
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// SetAvailability toggles whether the restaurant accepts new bookings.
func (c *Client) SetAvailability(ctx context.Context, id string, available bool) (*domain.Restaurant, error) {
	if _, err := c.requireOp(authz.OpToggleAvailability); err != nil {
		return nil, err
	}
	q := url.Values{"available": {strconv.FormatBool(available)}}
	var out domain.Restaurant
	if err := c.do(ctx, http.MethodPut, "/api/restaurants/my/"+id+"/availability", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Book places a reservation for the session's identity.
func (c *Client) Book(ctx context.Context, input BookInput) (*domain.Reservation, error) {
	if _, err := c.requireOp(authz.OpBookReservation); err != nil {
		return nil, err
	}
	var out domain.Reservation
	headers := http.Header{}
	if input.IdempotencyKey != "" {
		headers.Set("Idempotency-Key", input.IdempotencyKey)
	}
	if err := c.doWithHeaders(ctx, http.MethodPost, "/api/reservations/book", nil, input, &out, headers); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyReservations lists the session identity's own reservations.
func (c *Client) MyReservations(ctx context.Context) ([]domain.Reservation, error) {
	if _, err := c.requireOp(authz.OpViewOwnReservations); err != nil {
		return nil, err
	}
	var out []domain.Reservation
	err := c.do(ctx, http.MethodGet, "/api/reservations/my", nil, nil, &out)
	return out, err
}

// RestaurantReservations lists all reservations for a restaurant the session
// identity owns.
func (c *Client) RestaurantReservations(ctx context.Context, restaurantID string) ([]domain.Reservation, error) {
	if _, err := c.requireOp(authz.OpViewRestaurantReservations); err != nil {
		return nil, err
	}
	var out []domain.Reservation
	err := c.do(ctx, http.MethodGet, "/api/reservations/restaurant/"+restaurantID, nil, nil, &out)
	return out, err
}

// UpdateReservationStatus drives a reservation through its lifecycle. The
// legality of the transition and ownership are settled by the collaborator;
// only role-level gating happens locally.
func (c *Client) UpdateReservationStatus(ctx context.Context, reservationID string, status domain.ReservationStatus) (*domain.Reservation, error) {
	identity, ok := c.session.Identity()
	if !ok {
		return nil, domain.ErrNotAuthorized
	}
	op := authz.OpConfirmReservation
	if status == domain.StatusCancelled {
		op = authz.OpCancelReservation
		if identity.Role == domain.RoleCustomer {
			op = authz.OpCancelOwnReservation
		}
	}
	if err := authz.Decide(identity, op); err != nil {
		return nil, err
	}
	q := url.Values{"status": {string(status)}}
	var out domain.Reservation
	if err := c.do(ctx, http.MethodPut, "/api/reservations/"+reservationID+"/status", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// requireOp is the local pre-flight gate: an identity must be present and
// its role must be allowed to attempt the operation.
func (c *Client) requireOp(op authz.Operation) (domain.Identity, error) {
	identity, ok := c.session.Identity()
	if !ok {
		return domain.Identity{}, domain.ErrNotAuthorized
	}
	if err := authz.Decide(identity, op); err != nil {
		return domain.Identity{}, err
	}
	return identity, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	return c.doWithHeaders(ctx, method, path, query, body, out, nil)
}

func (c *Client) doWithHeaders(ctx context.Context, method, path string, query url.Values, body, out any, headers http.Header) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vals := range headers {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	if cred := c.session.Credential(); cred != "" {
		req.Header.Set("Authorization", cred)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCollaboratorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.mapError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrCollaboratorUnavailable, err)
	}
	return nil
}

type errorReply struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// mapError folds collaborator error responses into the domain's sentinels so
// callers branch on errors.Is instead of status codes.
func (c *Client) mapError(resp *http.Response) error {
	var reply errorReply
	_ = json.NewDecoder(resp.Body).Decode(&reply)
	detail := reply.Error
	if detail == "" {
		detail = reply.Message
	}
	if detail == "" {
		detail = resp.Status
	}

	var sentinel error
	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		sentinel = domain.ErrNotAuthorized
	case resp.StatusCode == http.StatusNotFound:
		sentinel = domain.ErrValidation
	case resp.StatusCode == http.StatusConflict:
		sentinel = domain.ErrSlotTaken
	case resp.StatusCode == http.StatusUnprocessableEntity:
		sentinel = domain.ErrInvalidTransition
	case resp.StatusCode >= 500:
		sentinel = domain.ErrCollaboratorUnavailable
	default:
		sentinel = domain.ErrValidation
	}
	return fmt.Errorf("%w: %s", sentinel, detail)
}
