package handlers

import (
	"context"
	"strconv"

	"spendio/internal/dto"
	"spendio/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GoalHandler struct {
	goalService *service.GoalService
	logger      *zap.Logger
}

func NewGoalHandler(goalService *service.GoalService, logger *zap.Logger) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
		logger:      logger,
	}
}

// ListGoals godoc
// @Summary List goals
// @Tags goals
// @Produce json
// @Security Bearer
// @Param achieved query bool false "Filter by achieved flag; omit for all"
// @Param achieved_only query bool false "Alias of achieved"
// @Success 200 {array} dto.GoalResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /goals [get]
func (h *GoalHandler) ListGoals(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, h.logger, "list goals", err)
	}

	// achieved_only is the older name of the filter.
	field, raw := "achieved", c.Query("achieved")
	if raw == "" {
		field, raw = "achieved_only", c.Query("achieved_only")
	}

	var achieved *bool
	if raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return respondError(c, h.logger, "list goals", service.NewValidationError(field, "must be true or false"))
		}
		achieved = &v
	}

	goals, err := h.goalService.List(c.Context(), userID, achieved)
	if err != nil {
		return respondError(c, h.logger, "list goals", err)
	}
	return c.JSON(goals)
}

// CreateGoal godoc
// @Summary Create goal
// @Tags goals
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.GoalCreateRequest true "Goal"
// @Success 201 {object} dto.GoalResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /goals [post]
func (h *GoalHandler) CreateGoal(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, h.logger, "create goal", err)
	}

	var req dto.GoalCreateRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, "create goal", err)
	}

	goal, err := h.goalService.Create(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, "create goal", err)
	}
	return c.Status(fiber.StatusCreated).JSON(goal)
}

// GetGoal godoc
// @Summary Get goal
// @Tags goals
// @Produce json
// @Security Bearer
// @Param id path string true "Goal ID"
// @Success 200 {object} dto.GoalResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /goals/{id} [get]
func (h *GoalHandler) GetGoal(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, h.logger, "get goal", err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.logger, "get goal", err)
	}

	goal, err := h.goalService.Get(c.Context(), userID, id)
	if err != nil {
		return respondError(c, h.logger, "get goal", err)
	}
	return c.JSON(goal)
}

// UpdateGoal godoc
// @Summary Update goal
// @Description Partial update; a new target amount re-derives is_achieved
// @Tags goals
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Goal ID"
// @Param request body dto.GoalUpdateRequest true "Fields to change"
// @Success 200 {object} dto.GoalResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, h.logger, "update goal", err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.logger, "update goal", err)
	}

	var req dto.GoalUpdateRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, "update goal", err)
	}

	goal, err := h.goalService.Update(c.Context(), userID, id, &req)
	if err != nil {
		return respondError(c, h.logger, "update goal", err)
	}
	return c.JSON(goal)
}

// AddMoney godoc
// @Summary Deposit into goal
// @Description Reaching the target caps the saved amount and marks the goal achieved
// @Tags goals
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Goal ID"
// @Param request body dto.GoalMoneyRequest true "Amount"
// @Success 200 {object} dto.GoalResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /goals/{id}/add-money [patch]
func (h *GoalHandler) AddMoney(c *fiber.Ctx) error {
	return h.move(c, "add money", h.goalService.AddMoney)
}

// Withdraw godoc
// @Summary Withdraw from goal
// @Tags goals
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Goal ID"
// @Param request body dto.GoalMoneyRequest true "Amount"
// @Success 200 {object} dto.GoalResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /goals/{id}/withdraw [patch]
func (h *GoalHandler) Withdraw(c *fiber.Ctx) error {
	return h.move(c, "withdraw", h.goalService.Withdraw)
}

// DeleteGoal godoc
// @Summary Delete goal
// @Tags goals
// @Security Bearer
// @Param id path string true "Goal ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, h.logger, "delete goal", err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.logger, "delete goal", err)
	}

	if err := h.goalService.Delete(c.Context(), userID, id); err != nil {
		return respondError(c, h.logger, "delete goal", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type moneyFunc func(ctx context.Context, userID, id uuid.UUID, req *dto.GoalMoneyRequest) (*dto.GoalResponse, error)

func (h *GoalHandler) move(c *fiber.Ctx, op string, fn moneyFunc) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, h.logger, op, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.logger, op, err)
	}

	var req dto.GoalMoneyRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, op, err)
	}

	goal, err := fn(c.Context(), userID, id, &req)
	if err != nil {
		return respondError(c, h.logger, op, err)
	}
	return c.JSON(goal)
}
