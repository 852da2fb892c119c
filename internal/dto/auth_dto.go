package dto

import (
	"github.com/go-playground/validator/v10"

	"eduagri-backend/internal/models"
)

var validate = validator.New()

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
}

func (r *RegisterRequest) Validate() error {
	return validate.Struct(r)
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validate.Struct(r)
}

// AuthResponse is returned by both register and login.
type AuthResponse struct {
	Success  bool            `json:"success"`
	Token    string          `json:"token"`
	UserID   int64           `json:"userId"`
	Username string          `json:"username"`
	Role     models.UserRole `json:"role"`
}

type MeResponse struct {
	UserID   int64           `json:"userId"`
	Username string          `json:"username"`
	Role     models.UserRole `json:"role"`
}
