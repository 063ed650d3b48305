package dto

import "spendio/internal/models"

// BudgetRequest is used for create and update. Spent is only honoured on
// update; new budgets start at zero.
type BudgetRequest struct {
	Name       string   `json:"name" validate:"required,max=100"`
	Amount     float64  `json:"amount" validate:"gt=0"`
	Period     string   `json:"period" validate:"required,oneof=weekly monthly yearly"`
	StartDate  string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string   `json:"end_date" validate:"required,datetime=2006-01-02"`
	CategoryID *string  `json:"category_id" validate:"omitnil,uuid"`
	Spent      *float64 `json:"spent,omitempty" validate:"omitnil,gte=0"`
}

type BudgetResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Amount         float64 `json:"amount"`
	Spent          float64 `json:"spent"`
	Period         string  `json:"period"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	CategoryID     *string `json:"category_id"`
	IsActive       bool    `json:"is_active"`
	Remaining      float64 `json:"remaining"`
	PercentageUsed float64 `json:"percentage_used"`
}

func NewBudgetResponse(b *models.Budget) BudgetResponse {
	var categoryID *string
	if b.CategoryID != nil {
		id := b.CategoryID.String()
		categoryID = &id
	}
	return BudgetResponse{
		ID:             b.ID.String(),
		Name:           b.Name,
		Amount:         b.Amount,
		Spent:          b.Spent,
		Period:         string(b.Period),
		StartDate:      b.StartDate.Format(models.DateLayout),
		EndDate:        b.EndDate.Format(models.DateLayout),
		CategoryID:     categoryID,
		IsActive:       b.IsActive,
		Remaining:      b.Remaining(),
		PercentageUsed: b.PercentageUsed(),
	}
}
