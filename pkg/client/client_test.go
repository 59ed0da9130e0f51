package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dinebook/reservation-system/internal/core/domain"
)

func loggedInClient(t *testing.T, srv *httptest.Server, role domain.Role) *Client {
	t.Helper()
	session := NewSession(tempStore(t), testLogger)
	claims := validClaims()
	claims["role"] = string(role)
	if err := session.Login(mintToken(t, claims)); err != nil {
		t.Fatalf("login: %v", err)
	}
	base := ""
	if srv != nil {
		base = srv.URL
	}
	return New(base, session, testLogger)
}

func jsonHandler(t *testing.T, wantMethod, wantPath string, status int, body any) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != wantMethod || r.URL.Path != wantPath {
			t.Errorf("expected %s %s, got %s %s", wantMethod, wantPath, r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}

// ---------------------------------------------------------------------------
// Request plumbing
// ---------------------------------------------------------------------------

func TestClient_AttachesCredential(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]domain.Restaurant{})
	}))
	defer srv.Close()

	c := loggedInClient(t, srv, domain.RoleCustomer)
	if _, err := c.ListRestaurants(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != c.Session().Credential() {
		t.Errorf("expected Authorization %q, got %q", c.Session().Credential(), gotAuth)
	}
}

func TestClient_PublicBrowsingWithoutSession(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, http.MethodGet, "/api/restaurants", http.StatusOK,
		[]domain.Restaurant{{ID: "r1", Name: "Sakura"}}))
	defer srv.Close()

	session := NewSession(tempStore(t), testLogger)
	c := New(srv.URL, session, testLogger)

	got, err := c.ListRestaurants(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "r1" {
		t.Errorf("expected [r1], got %v", got)
	}
}

func TestClient_Login_InstallsSession(t *testing.T) {
	token := mintToken(t, validClaims())
	srv := httptest.NewServer(jsonHandler(t, http.MethodPost, "/api/auth/login", http.StatusOK,
		map[string]any{"token": token, "user": &domain.User{ID: "user_1"}}))
	defer srv.Close()

	session := NewSession(tempStore(t), testLogger)
	c := New(srv.URL, session, testLogger)

	identity, err := c.Login(context.Background(), "alice", "s3cret!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.ID != "user_1" {
		t.Errorf("identity: expected user_1, got %q", identity.ID)
	}
	if !session.IsAuthenticated() {
		t.Error("session must be authenticated after login")
	}
}

func TestClient_Book_SendsIdempotencyKey(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Idempotency-Key")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(&domain.Reservation{ID: "res_1", Status: domain.StatusPending})
	}))
	defer srv.Close()

	c := loggedInClient(t, srv, domain.RoleCustomer)
	res, err := c.Book(context.Background(), BookInput{
		RestaurantID:   "r1",
		Date:           "2026-09-15",
		Time:           "19:30",
		PartySize:      2,
		IdempotencyKey: "key-123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ID != "res_1" {
		t.Errorf("expected res_1, got %q", res.ID)
	}
	if gotKey != "key-123" {
		t.Errorf("expected Idempotency-Key header, got %q", gotKey)
	}
}

// ---------------------------------------------------------------------------
// Local pre-flight authorization
// ---------------------------------------------------------------------------

func TestClient_LocalAuthz_NoRoundTripOnDenial(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("denied operation must not reach the collaborator")
	}))
	defer srv.Close()

	c := loggedInClient(t, srv, domain.RoleCustomer)

	if _, err := c.CreateRestaurant(context.Background(), RestaurantInput{Name: "X", Capacity: 5}); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Errorf("CreateRestaurant as customer: expected ErrNotAuthorized, got %v", err)
	}
	if _, err := c.MyRestaurants(context.Background()); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Errorf("MyRestaurants as customer: expected ErrNotAuthorized, got %v", err)
	}

	ownerClient := loggedInClient(t, srv, domain.RoleOwner)
	if _, err := ownerClient.Book(context.Background(), BookInput{RestaurantID: "r1"}); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Errorf("Book as owner: expected ErrNotAuthorized, got %v", err)
	}
}

func TestClient_LocalAuthz_RequiresSession(t *testing.T) {
	session := NewSession(tempStore(t), testLogger)
	c := New("", session, testLogger)

	if _, err := c.MyReservations(context.Background()); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Errorf("expected ErrNotAuthorized without session, got %v", err)
	}
}

func TestClient_UpdateReservationStatus_RoleGating(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, http.MethodPut, "/api/reservations/res_1/status", http.StatusOK,
		&domain.Reservation{ID: "res_1", Status: domain.StatusCancelled}))
	defer srv.Close()

	// Customers may cancel but never confirm.
	c := loggedInClient(t, srv, domain.RoleCustomer)
	if _, err := c.UpdateReservationStatus(context.Background(), "res_1", domain.StatusConfirmed); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("customer confirm: expected ErrNotAuthorized, got %v", err)
	}
	if _, err := c.UpdateReservationStatus(context.Background(), "res_1", domain.StatusCancelled); err != nil {
		t.Fatalf("customer cancel: unexpected error %v", err)
	}
}

// ---------------------------------------------------------------------------
// Role-dependent path selection
// ---------------------------------------------------------------------------

func TestClient_CreateRestaurant_PathPerRole(t *testing.T) {
	cases := []struct {
		role     domain.Role
		wantPath string
	}{
		{domain.RoleOwner, "/api/restaurants/add"},
		{domain.RoleAdmin, "/api/restaurants/admin/add"},
	}

	for _, tc := range cases {
		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(&domain.Restaurant{ID: "r1"})
		}))

		c := loggedInClient(t, srv, tc.role)
		if _, err := c.CreateRestaurant(context.Background(), RestaurantInput{Name: "X", Capacity: 5}); err != nil {
			t.Errorf("role %s: unexpected error %v", tc.role, err)
		}
		if gotPath != tc.wantPath {
			t.Errorf("role %s: expected path %s, got %s", tc.role, tc.wantPath, gotPath)
		}
		srv.Close()
	}
}

// ---------------------------------------------------------------------------
// Admin user management
// ---------------------------------------------------------------------------

func TestClient_UserManagement_AdminDrivesAllEndpoints(t *testing.T) {
	type call struct {
		method, path, query string
	}
	var calls []call
	var gotProfile UserUpdate
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path, r.URL.RawQuery})
		switch {
		case r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode([]domain.User{{ID: "user_1", Username: "alice"}})
		case r.Method == http.MethodPut && r.URL.Path == "/api/auth/users/user_1":
			_ = json.NewDecoder(r.Body).Decode(&gotProfile)
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	c := loggedInClient(t, srv, domain.RoleAdmin)
	ctx := context.Background()

	users, err := c.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 1 || users[0].ID != "user_1" {
		t.Errorf("ListUsers: expected [user_1], got %v", users)
	}
	if err := c.SetUserRole(ctx, "user_1", domain.RoleOwner); err != nil {
		t.Fatalf("SetUserRole: %v", err)
	}
	if err := c.SetUserPassword(ctx, "user_1", "n3wpass!"); err != nil {
		t.Fatalf("SetUserPassword: %v", err)
	}
	username := "alice2"
	if err := c.UpdateUserProfile(ctx, "user_1", UserUpdate{Username: &username}); err != nil {
		t.Fatalf("UpdateUserProfile: %v", err)
	}
	if err := c.DeleteUser(ctx, "user_1"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	want := []call{
		{http.MethodGet, "/api/auth/users", ""},
		{http.MethodPut, "/api/auth/users/user_1/role", "role=OWNER"},
		{http.MethodPut, "/api/auth/users/user_1/password", "password=n3wpass%21"},
		{http.MethodPut, "/api/auth/users/user_1", ""},
		{http.MethodDelete, "/api/auth/users/user_1", ""},
	}
	if len(calls) != len(want) {
		t.Fatalf("expected %d requests, got %d: %v", len(want), len(calls), calls)
	}
	for i, w := range want {
		if calls[i] != w {
			t.Errorf("request %d: expected %v, got %v", i, w, calls[i])
		}
	}
	if gotProfile.Username == nil || *gotProfile.Username != "alice2" {
		t.Errorf("profile update payload: expected username alice2, got %v", gotProfile.Username)
	}
	if gotProfile.Email != nil {
		t.Errorf("profile update payload: unset email must stay nil, got %q", *gotProfile.Email)
	}
}

func TestClient_UserManagement_NonAdminDeniedLocally(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("denied operation must not reach the collaborator")
	}))
	defer srv.Close()

	for _, role := range []domain.Role{domain.RoleCustomer, domain.RoleOwner} {
		c := loggedInClient(t, srv, role)
		if _, err := c.ListUsers(context.Background()); !errors.Is(err, domain.ErrNotAuthorized) {
			t.Errorf("ListUsers as %s: expected ErrNotAuthorized, got %v", role, err)
		}
		if err := c.DeleteUser(context.Background(), "user_1"); !errors.Is(err, domain.ErrNotAuthorized) {
			t.Errorf("DeleteUser as %s: expected ErrNotAuthorized, got %v", role, err)
		}
		if err := c.SetUserRole(context.Background(), "user_1", domain.RoleAdmin); !errors.Is(err, domain.ErrNotAuthorized) {
			t.Errorf("SetUserRole as %s: expected ErrNotAuthorized, got %v", role, err)
		}
	}
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

func TestClient_ErrorMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, domain.ErrNotAuthorized},
		{http.StatusForbidden, domain.ErrNotAuthorized},
		{http.StatusNotFound, domain.ErrValidation},
		{http.StatusConflict, domain.ErrSlotTaken},
		{http.StatusUnprocessableEntity, domain.ErrInvalidTransition},
		{http.StatusBadRequest, domain.ErrValidation},
		{http.StatusInternalServerError, domain.ErrCollaboratorUnavailable},
		{http.StatusBadGateway, domain.ErrCollaboratorUnavailable},
	}

	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(tc.status)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "nope"})
		}))

		c := loggedInClient(t, srv, domain.RoleCustomer)
		_, err := c.ListRestaurants(context.Background())
		if !errors.Is(err, tc.want) {
			t.Errorf("status %d: expected %v, got %v", tc.status, tc.want, err)
		}
		srv.Close()
	}
}

func TestClient_TransportFailureMapsToCollaboratorUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	session := NewSession(tempStore(t), testLogger)
	c := New(srv.URL, session, testLogger)

	_, err := c.ListRestaurants(context.Background())
	if !errors.Is(err, domain.ErrCollaboratorUnavailable) {
		t.Fatalf("expected ErrCollaboratorUnavailable, got %v", err)
	}
}
