package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/benknight/cocolist/internal/auth"
)

func expiredToken(t *testing.T, secret string) string {
	t.Helper()
	past := time.Now().Add(-time.Hour)
	claims := &auth.Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    auth.Issuer,
		Subject:   "user-1",
		IssuedAt:  jwt.NewNumericDate(past.Add(-time.Hour)),
		ExpiresAt: jwt.NewNumericDate(past),
	}}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestJWTMiddleware(t *testing.T) {
	e := echo.New()
	manager := auth.NewJWTManager("secret", 0)

	token, err := manager.GenerateToken(auth.Identity{Subject: "user-1", Email: "user@example.com", Name: "Linh", Role: "admin"})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	tests := map[string]struct {
		header        string
		expectCode    int
		wantChallenge string
		wantMessage   string
	}{
		"missing header": {
			expectCode:    http.StatusUnauthorized,
			wantChallenge: `Bearer realm="cocolist"`,
			wantMessage:   "missing authorization header",
		},
		"invalid header": {
			header:        "Basic token",
			expectCode:    http.StatusUnauthorized,
			wantChallenge: `Bearer realm="cocolist", error="invalid_request", error_description="invalid authorization header"`,
			wantMessage:   "invalid authorization header",
		},
		"empty token": {
			header:        "Bearer ",
			expectCode:    http.StatusUnauthorized,
			wantChallenge: `Bearer realm="cocolist", error="invalid_request", error_description="invalid authorization header"`,
			wantMessage:   "invalid authorization header",
		},
		"invalid token": {
			header:        "Bearer invalid",
			expectCode:    http.StatusUnauthorized,
			wantChallenge: `Bearer realm="cocolist", error="invalid_token", error_description="invalid token"`,
			wantMessage:   "invalid token",
		},
		"expired token": {
			header:        "Bearer " + expiredToken(t, "secret"),
			expectCode:    http.StatusUnauthorized,
			wantChallenge: `Bearer realm="cocolist", error="invalid_token", error_description="token expired"`,
			wantMessage:   "token expired",
		},
		"success": {
			header:     "Bearer " + token,
			expectCode: http.StatusOK,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.Set(ContextKeyRequestID, "rid-jwt")

			executed := false
			mw := JWT(manager)
			err := mw(func(c echo.Context) error {
				executed = true
				if UserIDFromContext(c) != "user-1" || UserNameFromContext(c) != "Linh" {
					t.Fatalf("expected user id and name in context")
				}
				return c.NoContent(http.StatusOK)
			})(c)

			if tt.expectCode == http.StatusOK {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if !executed {
					t.Fatalf("expected next handler to be executed")
				}
				if rec.Header().Get(echo.HeaderWWWAuthenticate) != "" {
					t.Fatalf("unexpected challenge on success")
				}
				return
			}

			if err != nil {
				t.Fatalf("middleware returned error: %v", err)
			}
			if executed {
				t.Fatalf("next handler must not run")
			}
			if rec.Code != tt.expectCode {
				t.Fatalf("expected status %d, got %d", tt.expectCode, rec.Code)
			}
			if got := rec.Header().Get(echo.HeaderWWWAuthenticate); got != tt.wantChallenge {
				t.Fatalf("expected challenge %q, got %q", tt.wantChallenge, got)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["status"] != "error" || body["message"] != tt.wantMessage || body["request_id"] != "rid-jwt" {
				t.Fatalf("unexpected body: %v", body)
			}
		})
	}
}
