package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister = "user registered successfully"
	MessageSuccessLogin    = "login successful"

	MessageFailedRegister = "failed to register user"
	MessageFailedLogin    = "failed to login"

	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrCredentialsInvalid = errors.New("invalid email or password")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

type (
	RegisterRequest struct {
		Name     string `json:"name" validate:"required,min=1,max=100"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8,max=128"`
	}

	RegisterResponse struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		AccessToken string           `json:"access_token"`
		ExpiresAt   time.Time        `json:"expires_at"`
		User        RegisterResponse `json:"user"`
	}
)
