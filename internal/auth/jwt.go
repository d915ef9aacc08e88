package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("missing authorization token")
)

// Claims holds the JWT payload. The caller identity is the subject; tokens
// from older issuers carry it in user_id instead.
type Claims struct {
	UserID string `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

// Identity returns the user the token was issued for, preferring the subject.
func (c *Claims) Identity() string {
	if c.Subject != "" {
		return c.Subject
	}
	return c.UserID
}

// JWTManager issues and verifies HS256 bearer tokens.
type JWTManager struct {
	secret       []byte
	accessExpiry time.Duration
}

// NewJWTManager creates a JWTManager with the given secret.
func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{
		secret:       []byte(secret),
		accessExpiry: time.Hour,
	}
}

// GenerateAccessToken creates an access token for the given user.
func (m *JWTManager) GenerateAccessToken(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken parses and validates a JWT string, returning the claims.
func (m *JWTManager) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Identity() == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ResolveCallerIdentity maps a bearer token to the user it identifies.
func (m *JWTManager) ResolveCallerIdentity(tokenStr string) (string, error) {
	if tokenStr == "" {
		return "", ErrMissingToken
	}
	claims, err := m.ValidateToken(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Identity(), nil
}
