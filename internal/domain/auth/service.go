package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	// EnsureAdmin creates the admin account when no user with email exists.
	EnsureAdmin(ctx context.Context, email, password string) error
}
