package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	user.UserRepository
	employee.EmployeeRepository
	jwt.Service
}

func NewAuthService(userRepository user.UserRepository, employeeRepository employee.EmployeeRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository:     userRepository,
		EmployeeRepository: employeeRepository,
		Service:            jwtService,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest) (auth.TokenResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, strings.ToLower(loginReq.Email))
	if errors.Is(err, user.ErrUserNotFound) {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.Role, userData.EmployeeID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	slog.Info("User logged in", "user_id", userData.ID, "role", userData.Role)
	return auth.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

// CreateUser implements auth.AuthService.
func (a *AuthServiceImpl) CreateUser(ctx context.Context, req auth.CreateUserRequest) (auth.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.UserResponse{}, err
	}

	var employeeID *string
	if req.EmployeeID != nil && *req.EmployeeID != "" {
		if _, err := a.EmployeeRepository.GetByID(ctx, *req.EmployeeID); err != nil {
			return auth.UserResponse{}, err
		}
		employeeID = req.EmployeeID
	}

	hash, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := a.UserRepository.Create(ctx, user.User{
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		Role:         user.Role(req.Role),
		EmployeeID:   employeeID,
	})
	if err != nil {
		return auth.UserResponse{}, err
	}

	slog.Info("User created", "user_id", created.ID, "role", created.Role)
	return auth.UserResponse{
		ID:         created.ID,
		Email:      created.Email,
		Role:       string(created.Role),
		EmployeeID: created.EmployeeID,
	}, nil
}

// EnsureAdmin implements auth.AuthService.
func (a *AuthServiceImpl) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(email)
	_, err := a.UserRepository.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return fmt.Errorf("failed to look up admin: %w", err)
	}

	hash, err := a.hashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	created, err := a.UserRepository.Create(ctx, user.User{Email: email, PasswordHash: hash, Role: user.RoleAdmin})
	if errors.Is(err, user.ErrEmailExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	slog.Info("Bootstrap admin created", "user_id", created.ID, "email", email)
	return nil
}
