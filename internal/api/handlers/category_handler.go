package handlers

import (
	"spendio/internal/dto"
	"spendio/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
	logger          *zap.Logger
}

func NewCategoryHandler(categoryService *service.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// ListCategories godoc
// @Summary List categories
// @Description Own categories, plus the shared defaults unless include_default is false
// @Tags categories
// @Produce json
// @Security Bearer
// @Param include_default query bool false "Include shared defaults (default true)"
// @Success 200 {array} dto.CategoryResponse
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, h.logger, "list categories", err)
	}

	categories, err := h.categoryService.List(c.Context(), userID, c.QueryBool("include_default", true))
	if err != nil {
		return respondError(c, h.logger, "list categories", err)
	}
	return c.JSON(categories)
}

// CreateCategory godoc
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CategoryRequest true "Category"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, h.logger, "create category", err)
	}

	var req dto.CategoryRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, "create category", err)
	}

	category, err := h.categoryService.Create(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, "create category", err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// UpdateCategory godoc
// @Summary Update category
// @Description Shared defaults cannot be changed and answer 404
// @Tags categories
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Category ID"
// @Param request body dto.CategoryRequest true "Category"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, h.logger, "update category", err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.logger, "update category", err)
	}

	var req dto.CategoryRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, "update category", err)
	}

	category, err := h.categoryService.Update(c.Context(), userID, id, &req)
	if err != nil {
		return respondError(c, h.logger, "update category", err)
	}
	return c.JSON(category)
}

// DeleteCategory godoc
// @Summary Delete category
// @Tags categories
// @Security Bearer
// @Param id path string true "Category ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, h.logger, "delete category", err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.logger, "delete category", err)
	}

	if err := h.categoryService.Delete(c.Context(), userID, id); err != nil {
		return respondError(c, h.logger, "delete category", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
