package auth

import (
	"errors"
	"testing"
	"time"
)

func testJWTManager() *JWTManager {
	return NewJWTManager(JWTConfig{
		SecretKey:            "test-secret-key",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 7 * 24 * time.Hour,
		Issuer:               "taskflow-test",
	})
}

func TestJWTManager_RoundTrip(t *testing.T) {
	manager := testJWTManager()

	access, err := manager.GenerateAccessToken("user-123", "test@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	refresh, err := manager.GenerateRefreshToken("user-123", "test@example.com")
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}

	claims, err := manager.ValidateAccessToken(access)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error = %v", err)
	}
	if claims.UserID != "user-123" || claims.Email != "test@example.com" {
		t.Errorf("unexpected claims %+v", claims)
	}
	if claims.TokenType != "access" {
		t.Errorf("claims.TokenType = %q, want access", claims.TokenType)
	}
	if claims.Issuer != "taskflow-test" {
		t.Errorf("claims.Issuer = %q, want taskflow-test", claims.Issuer)
	}

	refreshClaims, err := manager.ValidateRefreshToken(refresh)
	if err != nil {
		t.Fatalf("ValidateRefreshToken() error = %v", err)
	}
	if refreshClaims.TokenType != "refresh" {
		t.Errorf("refresh claims.TokenType = %q, want refresh", refreshClaims.TokenType)
	}
}

func TestJWTManager_TokenTypeMismatch(t *testing.T) {
	manager := testJWTManager()

	access, _ := manager.GenerateAccessToken("user-1", "a@example.com")
	refresh, _ := manager.GenerateRefreshToken("user-1", "a@example.com")

	if _, err := manager.ValidateRefreshToken(access); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("access-as-refresh error = %v, want %v", err, ErrInvalidToken)
	}
	if _, err := manager.ValidateAccessToken(refresh); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("refresh-as-access error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	manager := NewJWTManager(JWTConfig{
		SecretKey:            "test-secret-key",
		AccessTokenDuration:  -time.Minute,
		RefreshTokenDuration: -time.Minute,
		Issuer:               "taskflow-test",
	})

	token, err := manager.GenerateAccessToken("user-1", "a@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := manager.ValidateToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("ValidateToken() error = %v, want %v", err, ErrExpiredToken)
	}
}

func TestJWTManager_WrongSecret(t *testing.T) {
	manager := testJWTManager()
	other := NewJWTManager(JWTConfig{
		SecretKey:            "a-different-secret",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 7 * 24 * time.Hour,
		Issuer:               "taskflow-test",
	})

	token, _ := manager.GenerateAccessToken("user-1", "a@example.com")
	if _, err := other.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateToken() with wrong secret error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestJWTManager_GarbageToken(t *testing.T) {
	manager := testJWTManager()
	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := manager.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("ValidateToken(%q) error = %v, want %v", token, err, ErrInvalidToken)
		}
	}
}
