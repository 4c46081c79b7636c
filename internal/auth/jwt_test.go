package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTManager_GenerateAndParse(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour)
	token, err := manager.GenerateToken(Identity{Subject: "user-1", Email: "user@example.com", Name: "Linh", Role: "admin"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := manager.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Subject != "user-1" || claims.Email != "user@example.com" || claims.Name != "Linh" || claims.Role != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Issuer != Issuer {
		t.Fatalf("unexpected issuer: %s", claims.Issuer)
	}

	if _, err := manager.ParseToken(token + "tampered"); err == nil {
		t.Fatalf("expected parse error for tampered token")
	}
	if _, err := NewJWTManager("other", time.Hour).ParseToken(token); err == nil {
		t.Fatalf("expected parse error for foreign secret")
	}
}

func TestJWTManager_Expired(t *testing.T) {
	manager := NewJWTManager("secret", time.Minute)
	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	manager.now = func() time.Time { return issued }

	token, err := manager.GenerateToken(Identity{Subject: "user-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	manager.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if _, err := manager.ParseToken(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestJWTManager_RejectsForeignIssuer(t *testing.T) {
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewJWTManager("secret", time.Hour).ParseToken(signed); err == nil {
		t.Fatalf("expected foreign issuer to be rejected")
	}
}

func TestJWTManager_EmptySecret(t *testing.T) {
	manager := NewJWTManager("", time.Hour)
	if _, err := manager.GenerateToken(Identity{Subject: "user", Email: "user@example.com"}); err == nil {
		t.Fatalf("expected error when secret is empty")
	}
	if _, err := NewJWTManager("secret", 0).GenerateToken(Identity{}); err == nil {
		t.Fatalf("expected error when subject is empty")
	}
}
