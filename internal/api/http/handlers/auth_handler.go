package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/callback-service/internal/api/dto"
	"github.com/spec-kit/callback-service/internal/auth"
	"github.com/spec-kit/callback-service/internal/service"
)

// AuthHandler exposes login, admin unlock and logout endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Roster handles GET /auth/agents, the login screen's name selector.
func (h *AuthHandler) Roster(c *fiber.Ctx) error {
	names, err := h.auth.RosterNames(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"agents": names}})
}

// Login handles POST /auth/agents/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.AgentLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.Code == "" {
		return fiber.NewError(http.StatusBadRequest, "name and code required")
	}

	agent, token, exp, err := h.auth.LoginAgent(c.Context(), req.Name, req.Code)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"agent": fiber.Map{
				"id":   agent.ID,
				"name": agent.Name,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Unlock handles POST /auth/admin/unlock.
func (h *AuthHandler) Unlock(c *fiber.Ctx) error {
	var req dto.AdminUnlockRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "password required")
	}

	token, exp, err := h.auth.UnlockAdmin(c.Context(), req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Logout handles POST /auth/logout for any authenticated subject.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	if err := h.auth.Logout(c.Context(), principal.SessionID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "logged_out"}})
}
