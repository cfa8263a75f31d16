package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const TokenTypeAccess = "access"

var ErrMissingClaims = errors.New("token claims missing from context")

type Service interface {
	GenerateAccessToken(userID string, email string, role user.Role, employeeID *string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
	now                   func() time.Time
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) (Service, error) {
	exp, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, err
	}
	return &JWTService{
		accessTokenExpiration: exp,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                   time.Now,
	}, nil
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(userID string, email string, role user.Role, employeeID *string) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		"user_id": userID,
		"email":   email,
		"role":    string(role),
		"type":    TokenTypeAccess,
		"exp":     expiresAt,
	}
	if employeeID != nil {
		claims["employee_id"] = *employeeID
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// Claims is the caller identity carried by an access token.
type Claims struct {
	UserID     string
	Email      string
	Role       user.Role
	EmployeeID *string
}

// ClaimsFromContext reads the verified token placed in ctx by jwtauth.Verifier.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	_, raw, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, err
	}
	userID, ok := raw["user_id"].(string)
	if !ok || userID == "" {
		return Claims{}, ErrMissingClaims
	}

	c := Claims{UserID: userID}
	c.Email, _ = raw["email"].(string)
	if role, ok := raw["role"].(string); ok {
		c.Role = user.Role(role)
	}
	if empID, ok := raw["employee_id"].(string); ok && empID != "" {
		c.EmployeeID = &empID
	}
	return c, nil
}
