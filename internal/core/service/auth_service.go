package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/dinebook/reservation-system/internal/core/authz"
	"github.com/dinebook/reservation-system/internal/core/domain"
	"github.com/dinebook/reservation-system/internal/core/ports"
)

// AuthService implements registration, login, and admin account management.
type AuthService struct {
	repo      ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string, role domain.Role) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidCredentials
	}

	taken, err := s.repo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AuthService) ListUsers(ctx context.Context, actor domain.Identity) ([]domain.User, error) {
	if err := authz.Decide(actor, authz.OpManageUsers); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func (s *AuthService) DeleteUser(ctx context.Context, actor domain.Identity, id string) error {
	if err := authz.Decide(actor, authz.OpManageUsers); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Str("admin_id", actor.ID).Msg("user deleted")
	return nil
}

func (s *AuthService) SetUserRole(ctx context.Context, actor domain.Identity, id string, role domain.Role) error {
	if err := authz.Decide(actor, authz.OpManageUsers); err != nil {
		return err
	}
	if !role.Valid() {
		return domain.ErrInvalidCredentials
	}
	if err := s.repo.SetRole(ctx, id, role); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Str("role", string(role)).Msg("user role changed")
	return nil
}

func (s *AuthService) SetUserPassword(ctx context.Context, actor domain.Identity, id, password string) error {
	if err := authz.Decide(actor, authz.OpManageUsers); err != nil {
		return err
	}
	if password == "" {
		return domain.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.SetPasswordHash(ctx, id, string(hash))
}

func (s *AuthService) UpdateUserProfile(ctx context.Context, actor domain.Identity, id string, update ports.UserUpdate) error {
	if err := authz.Decide(actor, authz.OpManageUsers); err != nil {
		return err
	}
	return s.repo.UpdateProfile(ctx, id, update)
}

// generateToken mints the bearer credential. The subject carries the user id;
// role and username ride along so clients can derive an advisory identity
// without a round trip.
func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"role":     string(user.Role),
		"username": user.Username,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
