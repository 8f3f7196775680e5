package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultIssuer   = "ops-agent-backend"
	defaultTokenTTL = time.Hour
)

// AuthService issues and validates the bearer tokens accepted by the API
type AuthService struct {
	secret    []byte
	issuer    string
	adminRole string
	now       func() time.Time
}

// AuthClaims represents JWT token claims
type AuthClaims struct {
	UserID   string `json:"user_id" example:"u-12345"`
	Username string `json:"username" example:"johndoe"`
	Email    string `json:"email" example:"john.doe@example.com"`
	Role     string `json:"role" example:"admin"`
	// Standard JWT fields
	jwt.RegisteredClaims `swaggerignore:"true"`
}

// UserProfile identifies the holder of a token
type UserProfile struct {
	ID       string
	Username string
	Email    string
	Role     string
}

// NewAuthService creates a token service signing with secret. Tokens carrying
// adminRole in their role claim pass RequireAdmin.
func NewAuthService(secret, adminRole string) (*AuthService, error) {
	if secret == "" {
		return nil, errors.New("JWT secret is required")
	}
	if adminRole == "" {
		adminRole = "admin"
	}
	return &AuthService{
		secret:    []byte(secret),
		issuer:    defaultIssuer,
		adminRole: adminRole,
		now:       time.Now,
	}, nil
}

// AdminRole returns the role claim required for admin routes
func (s *AuthService) AdminRole() string {
	return s.adminRole
}

// GenerateJWT creates a JWT token for the user, valid for ttl (one hour when zero)
func (s *AuthService) GenerateJWT(user *UserProfile, ttl time.Duration) (string, error) {
	if user == nil || user.ID == "" {
		return "", errors.New("user ID is required")
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	now := s.now()
	claims := &AuthClaims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateJWT validates and parses a JWT token
func (s *AuthService) ValidateJWT(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithTimeFunc(s.now))

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*AuthClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// SuperAdminRole is always granted admin access
const SuperAdminRole = "super_admin"

// IsAdmin reports whether claims carry the admin role or the super admin role
func (s *AuthService) IsAdmin(claims *AuthClaims) bool {
	return claims != nil && (claims.Role == s.adminRole || claims.Role == SuperAdminRole)
}
