package api

import (
	"bytes"
	"encoding/json"

	userdomain "github.com/SahilGarg15/TaskFlow/domain/user"
	"github.com/SahilGarg15/TaskFlow/modules/analytics"
	"github.com/SahilGarg15/TaskFlow/modules/auth"
	"github.com/SahilGarg15/TaskFlow/modules/cache"
	"github.com/SahilGarg15/TaskFlow/modules/comment"
	"github.com/SahilGarg15/TaskFlow/modules/export"
	"github.com/SahilGarg15/TaskFlow/modules/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	authContainer mono.ServiceContainer
	authAdapter   auth.AuthPort
	tasks         task.Port
	comments      comment.Port
	analytics     analytics.Port
	exports       export.Port
	cache         *cache.Cache
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(
	authContainer mono.ServiceContainer,
	authAdapter auth.AuthPort,
	tasks task.Port,
	comments comment.Port,
	analyticsPort analytics.Port,
	exports export.Port,
	c *cache.Cache,
) *Handlers {
	return &Handlers{
		authContainer: authContainer,
		authAdapter:   authAdapter,
		tasks:         tasks,
		comments:      comments,
		analytics:     analyticsPort,
		exports:       exports,
		cache:         c,
	}
}

// requesterID extracts the authenticated user's ID from the claims the auth
// middleware stored.
func requesterID(c *fiber.Ctx) (string, bool) {
	claims, ok := c.Locals(UserContextKey).(*userdomain.Claims)
	if !ok || claims == nil {
		return "", false
	}
	return claims.UserID, true
}

// decodeStrict decodes a JSON body rejecting unknown fields. Partial-update
// endpoints use it so a typoed field name fails loudly instead of being
// silently dropped.
func decodeStrict(body []byte, dest any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	return dec.Decode(dest)
}

// RegisterBody is the registration request body.
type RegisterBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginBody is the login request body.
type LoginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshBody is the token refresh request body.
type RefreshBody struct {
	RefreshToken string `json:"refresh_token"`
}

// Register handles user registration.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterBody
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return respondError(c, fiber.StatusBadRequest, "Name, email and password are required")
	}

	authReq := auth.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	var resp auth.RegisterResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(), h.authContainer, "register",
		json.Marshal, json.Unmarshal, &authReq, &resp,
	); err != nil {
		return serviceError(c, err)
	}

	return respond(c, fiber.StatusCreated, fiber.Map{
		"id":        resp.ID,
		"name":      resp.Name,
		"email":     resp.Email,
		"createdAt": resp.CreatedAt,
	})
}

// Login handles user login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginBody
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return respondError(c, fiber.StatusBadRequest, "Email and password are required")
	}

	authReq := auth.LoginRequest{Email: req.Email, Password: req.Password}
	var resp auth.LoginResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(), h.authContainer, "login",
		json.Marshal, json.Unmarshal, &authReq, &resp,
	); err != nil {
		return serviceError(c, err)
	}

	return respond(c, fiber.StatusOK, resp)
}

// Refresh handles token refresh.
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	var req RefreshBody
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if req.RefreshToken == "" {
		return respondError(c, fiber.StatusBadRequest, "Refresh token is required")
	}

	authReq := auth.RefreshRequest{RefreshToken: req.RefreshToken}
	var resp auth.RefreshResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(), h.authContainer, "refresh-token",
		json.Marshal, json.Unmarshal, &authReq, &resp,
	); err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Invalid or expired refresh token")
	}

	return respond(c, fiber.StatusOK, resp)
}

// Profile returns the authenticated user's account details.
func (h *Handlers) Profile(c *fiber.Ctx) error {
	userID, ok := requesterID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.authAdapter.GetUser(c.UserContext(), userID)
	if err != nil {
		return serviceError(c, err)
	}

	return respond(c, fiber.StatusOK, user)
}

// CacheStats exposes the shared cache's hit/miss counters.
func (h *Handlers) CacheStats(c *fiber.Ctx) error {
	if h.cache == nil {
		return respondMessage(c, fiber.StatusOK, nil, "Cache is disabled")
	}
	return respond(c, fiber.StatusOK, h.cache.GetStats())
}
