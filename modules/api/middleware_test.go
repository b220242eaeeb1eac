package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	userdomain "github.com/SahilGarg15/TaskFlow/domain/user"
	"github.com/gofiber/fiber/v2"
)

// mockAuthPort implements auth.AuthPort for testing.
type mockAuthPort struct {
	validateTokenFunc func(ctx context.Context, token string) (*userdomain.Claims, error)
	getUserFunc       func(ctx context.Context, userID string) (*userdomain.User, error)
}

func (m *mockAuthPort) ValidateToken(ctx context.Context, token string) (*userdomain.Claims, error) {
	if m.validateTokenFunc != nil {
		return m.validateTokenFunc(ctx, token)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthPort) GetUser(ctx context.Context, userID string) (*userdomain.User, error) {
	if m.getUserFunc != nil {
		return m.getUserFunc(ctx, userID)
	}
	return nil, errors.New("not implemented")
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		mockAuth       *mockAuthPort
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "missing authorization header",
			authHeader:     "",
			mockAuth:       &mockAuthPort{},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"Authorization header is required"`,
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic token123",
			mockAuth:       &mockAuthPort{},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `Invalid authorization header format`,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer invalid-token",
			mockAuth: &mockAuthPort{
				validateTokenFunc: func(_ context.Context, _ string) (*userdomain.Claims, error) {
					return nil, errors.New("invalid token")
				},
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"Invalid or expired token"`,
		},
		{
			name:       "valid token",
			authHeader: "Bearer valid-token",
			mockAuth: &mockAuthPort{
				validateTokenFunc: func(_ context.Context, _ string) (*userdomain.Claims, error) {
					return &userdomain.Claims{UserID: "user-123", Email: "test@example.com"}, nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"authenticated"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(AuthMiddleware(tt.mockAuth))
			app.Get("/test", func(c *fiber.Ctx) error {
				return c.JSON(fiber.Map{"status": "authenticated"})
			})

			req := httptest.NewRequest("GET", "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("status = %v, want %v", resp.StatusCode, tt.expectedStatus)
			}

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("io.ReadAll() error = %v", err)
			}
			if !strings.Contains(string(body), tt.expectedBody) {
				t.Errorf("body = %v, want to contain %v", string(body), tt.expectedBody)
			}
		})
	}
}

func TestAuthMiddleware_ClaimsInContext(t *testing.T) {
	mockAuth := &mockAuthPort{
		validateTokenFunc: func(_ context.Context, _ string) (*userdomain.Claims, error) {
			return &userdomain.Claims{UserID: "user-456", Email: "context@example.com"}, nil
		},
	}

	app := fiber.New()
	app.Use(AuthMiddleware(mockAuth))

	var captured *userdomain.Claims
	app.Get("/test", func(c *fiber.Ctx) error {
		claims, ok := c.Locals(UserContextKey).(*userdomain.Claims)
		if !ok {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "no claims"})
		}
		captured = claims
		return c.JSON(fiber.Map{"status": "ok"})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer valid-token")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusOK)
	}
	if captured == nil {
		t.Fatal("claims not set in context")
	}
	if captured.UserID != "user-456" || captured.Email != "context@example.com" {
		t.Errorf("unexpected claims %+v", captured)
	}
}

func TestServiceErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"bad credentials", errors.New("invalid email or password"), http.StatusUnauthorized},
		{"duplicate", errors.New("user with this email already exists"), http.StatusConflict},
		{"missing task", errors.New("task not found"), http.StatusNotFound},
		{"foreign task", errors.New("not authorized to access this task"), http.StatusForbidden},
		{"missing field", errors.New("title is required"), http.StatusBadRequest},
		{"bad enum", errors.New("invalid status value"), http.StatusBadRequest},
		{"too long", errors.New("comment cannot be more than 1000 characters"), http.StatusBadRequest},
		{"wrapped sentinel", errors.New("service call failed: task not found"), http.StatusNotFound},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/test", func(c *fiber.Ctx) error {
				return serviceError(c, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/test", nil), -1)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %v, want %v", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}
