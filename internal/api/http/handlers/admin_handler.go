package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/callback-service/internal/api/dto"
	"github.com/spec-kit/callback-service/internal/service"
)

// AdminHandler exposes the admin console endpoints.
type AdminHandler struct {
	callbacks *service.CallbackService
	checks    *service.CheckService
	analytics *service.AnalyticsService
	roster    *service.RosterService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(callbacks *service.CallbackService, checks *service.CheckService, analytics *service.AnalyticsService, roster *service.RosterService) *AdminHandler {
	return &AdminHandler{callbacks: callbacks, checks: checks, analytics: analytics, roster: roster}
}

// ListCallbacks handles GET /admin/callbacks, optionally ?agent=Name.
func (h *AdminHandler) ListCallbacks(c *fiber.Ctx) error {
	rows, err := h.callbacks.ListAll(c.Context(), agentQuery(c))
	if err != nil {
		return err
	}
	result := make([]dto.CallbackResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, dto.FromCallback(row))
	}
	return c.JSON(fiber.Map{"data": result})
}

// CallbackStats handles GET /admin/callbacks/stats, optionally ?agent=Name.
func (h *AdminHandler) CallbackStats(c *fiber.Ctx) error {
	stats, err := h.analytics.CallbackStats(c.Context(), agentQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

// ListChecks handles GET /admin/checks, optionally ?agent=Name.
func (h *AdminHandler) ListChecks(c *fiber.Ctx) error {
	rows, err := h.checks.List(c.Context(), agentQuery(c))
	if err != nil {
		return err
	}
	result := make([]dto.CheckResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, dto.FromCheck(row))
	}
	return c.JSON(fiber.Map{"data": result})
}

// CheckStats handles GET /admin/checks/stats, optionally ?agent=Name.
func (h *AdminHandler) CheckStats(c *fiber.Ctx) error {
	stats, err := h.analytics.CheckStats(c.Context(), agentQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

// ListAgents handles GET /admin/agents.
func (h *AdminHandler) ListAgents(c *fiber.Ctx) error {
	agents, err := h.roster.ListAgents(c.Context())
	if err != nil {
		return err
	}
	rows := make([]dto.AgentResponse, 0, len(agents))
	for _, agent := range agents {
		rows = append(rows, dto.AgentResponse{
			ID:        agent.ID,
			Name:      agent.Name,
			CreatedAt: agent.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": rows})
}

// AddAgent handles POST /admin/agents.
func (h *AdminHandler) AddAgent(c *fiber.Ctx) error {
	var req dto.AddAgentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	agent, err := h.roster.AddAgent(c.Context(), req.Name, req.Code)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.AgentResponse{
			ID:        agent.ID,
			Name:      agent.Name,
			CreatedAt: agent.CreatedAt,
		},
	})
}

func agentQuery(c *fiber.Ctx) *string {
	if agent := c.Query("agent"); agent != "" {
		return &agent
	}
	return nil
}
