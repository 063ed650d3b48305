package handlers

import (
	"spendio/internal/dto"
	"spendio/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type BudgetHandler struct {
	budgetService *service.BudgetService
	logger        *zap.Logger
}

func NewBudgetHandler(budgetService *service.BudgetService, logger *zap.Logger) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
		logger:        logger,
	}
}

// ListBudgets godoc
// @Summary List budgets
// @Tags budgets
// @Produce json
// @Security Bearer
// @Param active_only query bool false "Only active budgets (default true)"
// @Success 200 {array} dto.BudgetResponse
// @Router /budgets [get]
func (h *BudgetHandler) ListBudgets(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, h.logger, "list budgets", err)
	}

	budgets, err := h.budgetService.List(c.Context(), userID, c.QueryBool("active_only", true))
	if err != nil {
		return respondError(c, h.logger, "list budgets", err)
	}
	return c.JSON(budgets)
}

// CreateBudget godoc
// @Summary Create budget
// @Tags budgets
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.BudgetRequest true "Budget"
// @Success 201 {object} dto.BudgetResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /budgets [post]
func (h *BudgetHandler) CreateBudget(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, h.logger, "create budget", err)
	}

	var req dto.BudgetRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, "create budget", err)
	}

	budget, err := h.budgetService.Create(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, "create budget", err)
	}
	return c.Status(fiber.StatusCreated).JSON(budget)
}

// GetBudget godoc
// @Summary Get budget
// @Tags budgets
// @Produce json
// @Security Bearer
// @Param id path string true "Budget ID"
// @Success 200 {object} dto.BudgetResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, h.logger, "get budget", err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.logger, "get budget", err)
	}

	budget, err := h.budgetService.Get(c.Context(), userID, id)
	if err != nil {
		return respondError(c, h.logger, "get budget", err)
	}
	return c.JSON(budget)
}

// UpdateBudget godoc
// @Summary Update budget
// @Tags budgets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Budget ID"
// @Param request body dto.BudgetRequest true "Budget"
// @Success 200 {object} dto.BudgetResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, h.logger, "update budget", err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.logger, "update budget", err)
	}

	var req dto.BudgetRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, "update budget", err)
	}

	budget, err := h.budgetService.Update(c.Context(), userID, id, &req)
	if err != nil {
		return respondError(c, h.logger, "update budget", err)
	}
	return c.JSON(budget)
}

// ToggleBudget godoc
// @Summary Toggle budget
// @Description Flips is_active
// @Tags budgets
// @Produce json
// @Security Bearer
// @Param id path string true "Budget ID"
// @Success 200 {object} dto.BudgetResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /budgets/{id}/toggle [patch]
func (h *BudgetHandler) ToggleBudget(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, h.logger, "toggle budget", err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.logger, "toggle budget", err)
	}

	budget, err := h.budgetService.Toggle(c.Context(), userID, id)
	if err != nil {
		return respondError(c, h.logger, "toggle budget", err)
	}
	return c.JSON(budget)
}

// DeleteBudget godoc
// @Summary Delete budget
// @Tags budgets
// @Security Bearer
// @Param id path string true "Budget ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, h.logger, "delete budget", err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.logger, "delete budget", err)
	}

	if err := h.budgetService.Delete(c.Context(), userID, id); err != nil {
		return respondError(c, h.logger, "delete budget", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
