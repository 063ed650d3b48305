package dto

import "spendio/internal/models"

type CategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description" validate:"omitnil,max=500"`
	Color       *string `json:"color" validate:"omitnil,hexcolor"`
	Icon        *string `json:"icon" validate:"omitnil,max=16"`
}

type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Color       string  `json:"color"`
	Icon        string  `json:"icon"`
	IsDefault   bool    `json:"is_default"`
}

func NewCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		Icon:        c.Icon,
		IsDefault:   c.IsDefault(),
	}
}
