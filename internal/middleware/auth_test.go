package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/labstack/echo/v4"
)

type stubValidator struct {
	claims interface{}
	err    error
}

func (s stubValidator) ValidateToken(ctx context.Context, token string) (interface{}, error) {
	return s.claims, s.err
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, GetAuth0ID(c))
}

func TestGetAuth0ID(t *testing.T) {
	e := echo.New()

	tests := []struct {
		name     string
		setup    func(c echo.Context)
		expected string
	}{
		{
			name: "returns auth0 id when present",
			setup: func(c echo.Context) {
				ctx := context.WithValue(c.Request().Context(), Auth0IDKey, "auth0|12345")
				c.SetRequest(c.Request().WithContext(ctx))
			},
			expected: "auth0|12345",
		},
		{
			name:     "returns empty string when not present",
			setup:    func(c echo.Context) {},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			tt.setup(c)

			result := GetAuth0ID(c)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestGetClaims_NotPresent(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	if GetClaims(c) != nil {
		t.Error("Expected nil, got claims")
	}
}

func TestAuthenticate(t *testing.T) {
	valid := &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{Subject: "auth0|test"},
		CustomClaims:     &CustomClaims{Email: "test@example.com"},
	}

	tests := []struct {
		name       string
		header     string
		validator  stubValidator
		wantStatus int
		wantBody   string
	}{
		{"missing header", "", stubValidator{}, http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic abc", stubValidator{}, http.StatusUnauthorized, ""},
		{"invalid token", "Bearer abc", stubValidator{err: errors.New("expired")}, http.StatusUnauthorized, ""},
		{"unexpected claims", "Bearer abc", stubValidator{claims: "nope"}, http.StatusUnauthorized, ""},
		{"valid token", "Bearer abc", stubValidator{claims: valid}, http.StatusOK, "auth0|test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/statements", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			m := NewAuthMiddlewareWithValidator(tt.validator)
			if err := m.Authenticate()(okHandler)(c); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("Expected body %q, got %q", tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestAuthenticate_NilMiddlewarePassesThrough(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	var m *AuthMiddleware
	if err := m.Authenticate()(okHandler)(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
}

func TestNewAuthMiddleware(t *testing.T) {
	m, err := NewAuthMiddleware("example.auth0.com", "https://api.example.com")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if m == nil {
		t.Fatal("Expected middleware")
	}
}

func TestCustomClaims_Validate(t *testing.T) {
	claims := &CustomClaims{Email: "test@example.com", Name: "Test"}
	if err := claims.Validate(context.Background()); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}
