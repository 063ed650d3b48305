package handlers

import (
	"spendio/internal/dto"
	"spendio/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ExpenseHandler struct {
	expenseService *service.ExpenseService
	logger         *zap.Logger
}

func NewExpenseHandler(expenseService *service.ExpenseService, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		logger:         logger,
	}
}

// ListExpenses godoc
// @Summary List expenses
// @Description Newest first. Dates are inclusive and formatted YYYY-MM-DD.
// @Tags expenses
// @Produce json
// @Security Bearer
// @Param category query string false "Exact category label"
// @Param start_date query string false "Earliest date"
// @Param end_date query string false "Latest date"
// @Param skip query int false "Rows to skip"
// @Param limit query int false "Page size (default 100)"
// @Success 200 {array} dto.ExpenseResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /expenses [get]
func (h *ExpenseHandler) ListExpenses(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, h.logger, "list expenses", err)
	}

	var q dto.ExpenseListQuery
	if err := bindQuery(c, &q); err != nil {
		return respondError(c, h.logger, "list expenses", err)
	}

	expenses, err := h.expenseService.List(c.Context(), userID, &q)
	if err != nil {
		return respondError(c, h.logger, "list expenses", err)
	}
	return c.JSON(expenses)
}

// CreateExpense godoc
// @Summary Create expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.ExpenseRequest true "Expense"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, h.logger, "create expense", err)
	}

	var req dto.ExpenseRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, "create expense", err)
	}

	expense, err := h.expenseService.Create(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, "create expense", err)
	}
	return c.Status(fiber.StatusCreated).JSON(expense)
}

// GetExpense godoc
// @Summary Get expense
// @Tags expenses
// @Produce json
// @Security Bearer
// @Param id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, h.logger, "get expense", err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.logger, "get expense", err)
	}

	expense, err := h.expenseService.Get(c.Context(), userID, id)
	if err != nil {
		return respondError(c, h.logger, "get expense", err)
	}
	return c.JSON(expense)
}

// UpdateExpense godoc
// @Summary Update expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Expense ID"
// @Param request body dto.ExpenseRequest true "Expense"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, h.logger, "update expense", err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.logger, "update expense", err)
	}

	var req dto.ExpenseRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, "update expense", err)
	}

	expense, err := h.expenseService.Update(c.Context(), userID, id, &req)
	if err != nil {
		return respondError(c, h.logger, "update expense", err)
	}
	return c.JSON(expense)
}

// DeleteExpense godoc
// @Summary Delete expense
// @Tags expenses
// @Security Bearer
// @Param id path string true "Expense ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, h.logger, "delete expense", err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.logger, "delete expense", err)
	}

	if err := h.expenseService.Delete(c.Context(), userID, id); err != nil {
		return respondError(c, h.logger, "delete expense", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
