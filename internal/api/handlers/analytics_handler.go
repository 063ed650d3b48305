package handlers

import (
	"spendio/internal/dto"
	"spendio/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	logger           *zap.Logger
}

func NewAnalyticsHandler(analyticsService *service.AnalyticsService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// Dashboard godoc
// @Summary Dashboard totals
// @Tags analytics
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.DashboardResponse
// @Router /analytics/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, h.logger, "dashboard", err)
	}

	stats, err := h.analyticsService.Dashboard(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, "dashboard", err)
	}
	return c.JSON(stats)
}

// ExpensesByCategory godoc
// @Summary Spending by category
// @Description Expenses in the trailing period grouped by category, largest first
// @Tags analytics
// @Produce json
// @Security Bearer
// @Param period_days query int false "Trailing window in days (default 30)"
// @Success 200 {array} dto.CategoryBreakdownResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /analytics/expenses-by-category [get]
func (h *AnalyticsHandler) ExpensesByCategory(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, h.logger, "expenses by category", err)
	}

	var q dto.CategoryBreakdownQuery
	if err := bindQuery(c, &q); err != nil {
		return respondError(c, h.logger, "expenses by category", err)
	}

	rows, err := h.analyticsService.ExpensesByCategory(c.Context(), userID, q.PeriodDays)
	if err != nil {
		return respondError(c, h.logger, "expenses by category", err)
	}
	return c.JSON(rows)
}

// MonthlyExpenses godoc
// @Summary Monthly spending trend
// @Tags analytics
// @Produce json
// @Security Bearer
// @Param months query int false "Most recent months with data (default 12)"
// @Success 200 {array} dto.MonthlyExpensesResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /analytics/monthly-expenses [get]
func (h *AnalyticsHandler) MonthlyExpenses(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, h.logger, "monthly expenses", err)
	}

	var q dto.MonthlyExpensesQuery
	if err := bindQuery(c, &q); err != nil {
		return respondError(c, h.logger, "monthly expenses", err)
	}

	rows, err := h.analyticsService.MonthlyExpenses(c.Context(), userID, q.Months)
	if err != nil {
		return respondError(c, h.logger, "monthly expenses", err)
	}
	return c.JSON(rows)
}

// BudgetStatus godoc
// @Summary Budget risk
// @Tags analytics
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.BudgetStatusResponse
// @Router /analytics/budget-status [get]
func (h *AnalyticsHandler) BudgetStatus(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, h.logger, "budget status", err)
	}

	rows, err := h.analyticsService.BudgetStatus(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, "budget status", err)
	}
	return c.JSON(rows)
}

// GoalsProgress godoc
// @Summary Goal progress
// @Tags analytics
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.GoalProgressResponse
// @Router /analytics/goals-progress [get]
func (h *AnalyticsHandler) GoalsProgress(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, h.logger, "goals progress", err)
	}

	rows, err := h.analyticsService.GoalsProgress(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, "goals progress", err)
	}
	return c.JSON(rows)
}
