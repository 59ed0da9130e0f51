package ports

import (
	"context"

	"github.com/dinebook/reservation-system/internal/core/domain"
)

// AuthService implements registration, login, and admin account management.
// The admin operations take the acting identity so the policy check lives
// with the operation rather than only at the route.
type AuthService interface {
	Register(ctx context.Context, username, email, password string, role domain.Role) (*domain.User, error)
	// Login returns a signed bearer token and the authenticated user.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)

	ListUsers(ctx context.Context, actor domain.Identity) ([]domain.User, error)
	DeleteUser(ctx context.Context, actor domain.Identity, id string) error
	SetUserRole(ctx context.Context, actor domain.Identity, id string, role domain.Role) error
	SetUserPassword(ctx context.Context, actor domain.Identity, id, password string) error
	UpdateUserProfile(ctx context.Context, actor domain.Identity, id string, update UserUpdate) error
}
