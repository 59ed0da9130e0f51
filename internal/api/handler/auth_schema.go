package handler

import "github.com/dinebook/reservation-system/internal/core/domain"

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"required,oneof=CUSTOMER OWNER ADMIN"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

type updateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3"`
	Email    *string `json:"email"    validate:"omitempty,email"`
}
