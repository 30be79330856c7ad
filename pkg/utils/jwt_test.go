package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func TestValidateAccessTokenVerified(t *testing.T) {
	m := NewJWTManager("shared-secret")
	token := sign(t, "shared-secret", jwt.MapClaims{
		"sub":   "op-42",
		"email": "till@shop.test",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.OperatorID != "op-42" || claims.Email != "till@shop.test" {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestValidateAccessTokenWrongSecret(t *testing.T) {
	m := NewJWTManager("shared-secret")
	token := sign(t, "other", jwt.MapClaims{"sub": "op-42"})

	if _, err := m.ValidateAccessToken(token); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestValidateAccessTokenUnverified(t *testing.T) {
	m := NewJWTManager("")
	if m.Verifies() {
		t.Fatal("manager without secret should not verify")
	}

	token := sign(t, "backend-only-secret", jwt.MapClaims{"user_id": float64(17)})
	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.OperatorID != "17" {
		t.Errorf("expected numeric user_id as operator, got %q", claims.OperatorID)
	}
}

func TestValidateAccessTokenExpired(t *testing.T) {
	m := NewJWTManager("")
	token := sign(t, "x", jwt.MapClaims{"sub": "op", "exp": time.Now().Add(-time.Minute).Unix()})

	_, err := m.ValidateAccessToken(token)
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("expected expired error, got %v", err)
	}
}

func TestValidateAccessTokenWithoutOperator(t *testing.T) {
	m := NewJWTManager("s")
	token := sign(t, "s", jwt.MapClaims{"email": "x@y"})

	if _, err := m.ValidateAccessToken(token); err == nil {
		t.Fatal("expected missing operator error")
	}
}
