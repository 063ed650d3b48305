package dto

import (
	"time"

	"spendio/internal/models"
)

// DefaultExpenseLimit applies when a listing does not ask for a page size.
const DefaultExpenseLimit = 100

type ExpenseRequest struct {
	Amount      float64 `json:"amount" validate:"gt=0"`
	Description string  `json:"description" validate:"max=500"`
	Category    string  `json:"category" validate:"max=100"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
}

type ExpenseListQuery struct {
	Category  string `query:"category" validate:"max=100"`
	StartDate string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Skip      uint64 `query:"skip"`
	Limit     uint64 `query:"limit" validate:"max=1000"`
}

type ExpenseResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func NewExpenseResponse(e *models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID.String(),
		UserID:      e.UserID.String(),
		Amount:      e.Amount,
		Description: e.Description,
		Category:    e.Category,
		Date:        e.Date.Format(models.DateLayout),
		CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
