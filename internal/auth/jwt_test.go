package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndValidateAccessToken(t *testing.T) {
	mgr := NewJWTManager("test-secret-key-123")
	token, err := mgr.GenerateAccessToken("user-42")
	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := mgr.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.Subject != "user-42" {
		t.Errorf("expected subject=user-42, got %s", claims.Subject)
	}
	if claims.UserID != "user-42" {
		t.Errorf("expected user_id=user-42, got %s", claims.UserID)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	mgr1 := NewJWTManager("secret-one")
	mgr2 := NewJWTManager("secret-two")

	token, err := mgr1.GenerateAccessToken("user-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := mgr2.ValidateToken(token); err == nil {
		t.Error("expected validation to fail with wrong secret")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	mgr := NewJWTManager("test-secret")
	if _, err := mgr.ValidateToken("not-a-jwt"); err == nil {
		t.Error("expected error for garbage token")
	}
	if _, err := mgr.ValidateToken(""); err == nil {
		t.Error("expected error for empty token")
	}
}

func TestExpiredToken(t *testing.T) {
	mgr := &JWTManager{secret: []byte("test-secret"), accessExpiry: -1 * time.Second}
	token, err := mgr.GenerateAccessToken("user-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := mgr.ValidateToken(token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestValidateTokenWithoutSubject(t *testing.T) {
	secret := []byte("test-secret")
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute))},
	}).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	mgr := &JWTManager{secret: secret, accessExpiry: time.Minute}
	if _, err := mgr.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for a token without identity, got %v", err)
	}
}

func TestIdentityFallsBackToUserIDClaim(t *testing.T) {
	c := &Claims{UserID: "legacy-7"}
	if c.Identity() != "legacy-7" {
		t.Errorf("expected legacy-7, got %s", c.Identity())
	}
}

func TestResolveCallerIdentity(t *testing.T) {
	mgr := NewJWTManager("test-secret")
	token, _ := mgr.GenerateAccessToken("user-9")

	id, err := mgr.ResolveCallerIdentity(token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if id != "user-9" {
		t.Errorf("expected user-9, got %s", id)
	}

	if _, err := mgr.ResolveCallerIdentity(""); !errors.Is(err, ErrMissingToken) {
		t.Errorf("expected ErrMissingToken, got %v", err)
	}
}

func TestDifferentUsersGetDifferentTokens(t *testing.T) {
	mgr := NewJWTManager("test-secret")
	t1, _ := mgr.GenerateAccessToken("alice")
	t2, _ := mgr.GenerateAccessToken("bob")
	if t1 == t2 {
		t.Error("different users should get different tokens")
	}
}
