package auth

import (
	"github.com/bazaarly/bazaarly-backend/pkg/db/models"
)

// RegisterInput captures a customer registration request.
type RegisterInput struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8"`
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Phone     *string `json:"phone,omitempty"`
}

// LoginInput captures a credential login request.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Result returns the authenticated user and their access token.
type Result struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
}
