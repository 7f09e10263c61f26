package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/callback-service/internal/api/dto"
	"github.com/spec-kit/callback-service/internal/auth"
	"github.com/spec-kit/callback-service/internal/service"
)

// CallbacksHandler exposes the agent dashboard endpoints.
type CallbacksHandler struct {
	callbacks *service.CallbackService
	checks    *service.CheckService
	analytics *service.AnalyticsService
}

// NewCallbacksHandler constructs handler.
func NewCallbacksHandler(callbacks *service.CallbackService, checks *service.CheckService, analytics *service.AnalyticsService) *CallbacksHandler {
	return &CallbacksHandler{callbacks: callbacks, checks: checks, analytics: analytics}
}

// Submit handles POST /callbacks.
func (h *CallbacksHandler) Submit(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Agent == nil {
		return fiber.NewError(http.StatusForbidden, "agent login required")
	}
	var req dto.SubmitCallbackRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	callback, err := h.callbacks.Submit(c.Context(), principal.Agent.Name, callbackInputFromRequest(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromCallback(*callback)})
}

// ListOwn handles GET /callbacks.
func (h *CallbacksHandler) ListOwn(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Agent == nil {
		return fiber.NewError(http.StatusForbidden, "agent login required")
	}

	summaries, err := h.callbacks.ListOwn(c.Context(), principal.Agent.Name)
	if err != nil {
		return err
	}

	rows := make([]dto.CallbackSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		cb := summary.Callback
		rows = append(rows, dto.CallbackSummaryResponse{
			ID:                       cb.ID,
			AgentName:                cb.AgentName,
			FullName:                 cb.FullName,
			Address:                  cb.Address,
			MCN:                      cb.MCN,
			DOB:                      cb.DOB,
			PhoneNumber:              cb.PhoneNumber,
			NotesPreview:             summary.NotesPreview,
			MedicalConditionsPreview: summary.MedicalConditionsPreview,
			CallbackDate:             cb.CallbackDate,
			CallbackTiming:           cb.CallbackTiming,
			CallbackType:             cb.CallbackType,
			CreatedAt:                cb.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": rows})
}

// Edit handles PUT /callbacks/:id.
func (h *CallbacksHandler) Edit(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Agent == nil {
		return fiber.NewError(http.StatusForbidden, "agent login required")
	}
	var req dto.SubmitCallbackRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	callback, err := h.callbacks.Edit(c.Context(), principal.Agent.Name, c.Params("id"), callbackInputFromRequest(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromCallback(*callback)})
}

// Stats handles GET /callbacks/stats for the logged-in agent.
func (h *CallbacksHandler) Stats(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Agent == nil {
		return fiber.NewError(http.StatusForbidden, "agent login required")
	}
	stats, err := h.analytics.CallbackStats(c.Context(), &principal.Agent.Name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

// SubmitCheck handles POST /checks.
func (h *CallbacksHandler) SubmitCheck(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Agent == nil {
		return fiber.NewError(http.StatusForbidden, "agent login required")
	}
	var req dto.SubmitCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	check, err := h.checks.Submit(c.Context(), principal.Agent.Name, service.CheckInput{
		Plan: req.Plan,
		Date: req.Date,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromCheck(*check)})
}

// ListChecks handles GET /checks for the logged-in agent.
func (h *CallbacksHandler) ListChecks(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Agent == nil {
		return fiber.NewError(http.StatusForbidden, "agent login required")
	}
	checks, err := h.checks.List(c.Context(), &principal.Agent.Name)
	if err != nil {
		return err
	}
	rows := make([]dto.CheckResponse, 0, len(checks))
	for _, check := range checks {
		rows = append(rows, dto.FromCheck(check))
	}
	return c.JSON(fiber.Map{"data": rows})
}

func callbackInputFromRequest(req dto.SubmitCallbackRequest) service.CallbackInput {
	return service.CallbackInput{
		FullName:          req.FullName,
		Address:           req.Address,
		MCN:               req.MCN,
		DOB:               req.DOB,
		PhoneNumber:       req.PhoneNumber,
		Notes:             req.Notes,
		MedicalConditions: req.MedicalConditions,
		CallbackDate:      req.CallbackDate,
		CallbackTiming:    req.CallbackTiming,
		CallbackType:      req.CallbackType,
	}
}
