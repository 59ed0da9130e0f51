package ports

import (
	"context"

	"github.com/dinebook/reservation-system/internal/core/domain"
)

// UserUpdate carries the mutable profile fields. Nil means "leave unchanged".
type UserUpdate struct {
	Username *string
	Email    *string
}

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// ExistsByUsernameOrEmail reports whether either value is already taken.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id string) error
	SetRole(ctx context.Context, id string, role domain.Role) error
	SetPasswordHash(ctx context.Context, id string, hash string) error
	UpdateProfile(ctx context.Context, id string, update UserUpdate) error
}
