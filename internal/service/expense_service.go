package service

import (
	"context"
	"strings"
	"time"

	"spendio/internal/dto"
	"spendio/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ExpenseService struct {
	expenses ExpenseStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewExpenseService(expenses ExpenseStore, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{
		expenses: expenses,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *ExpenseService) Create(ctx context.Context, userID uuid.UUID, req *dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	expense := &models.Expense{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      round2(req.Amount),
		Description: cleanText(req.Description),
		Category:    cleanText(req.Category),
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validAmount("amount", expense.Amount); err != nil {
		return nil, err
	}

	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, storeError("create expense", err)
	}

	resp := dto.NewExpenseResponse(expense)
	return &resp, nil
}

func (s *ExpenseService) Get(ctx context.Context, userID, id uuid.UUID) (*dto.ExpenseResponse, error) {
	expense, err := s.expenses.GetByID(ctx, userID, id)
	if err != nil {
		return nil, storeError("get expense", err)
	}
	resp := dto.NewExpenseResponse(expense)
	return &resp, nil
}

func (s *ExpenseService) List(ctx context.Context, userID uuid.UUID, q *dto.ExpenseListQuery) ([]dto.ExpenseResponse, error) {
	filter := models.ExpenseFilter{
		Category: strings.TrimSpace(q.Category),
		Offset:   q.Skip,
		Limit:    q.Limit,
	}
	if filter.Limit == 0 {
		filter.Limit = dto.DefaultExpenseLimit
	}
	if q.StartDate != "" {
		d, err := parseDate("start_date", q.StartDate)
		if err != nil {
			return nil, err
		}
		filter.StartDate = &d
	}
	if q.EndDate != "" {
		d, err := parseDate("end_date", q.EndDate)
		if err != nil {
			return nil, err
		}
		filter.EndDate = &d
	}

	expenses, err := s.expenses.List(ctx, userID, filter)
	if err != nil {
		return nil, storeError("list expenses", err)
	}

	out := make([]dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, dto.NewExpenseResponse(e))
	}
	return out, nil
}

func (s *ExpenseService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	amount := round2(req.Amount)
	if err := validAmount("amount", amount); err != nil {
		return nil, err
	}

	updated, err := s.expenses.Update(ctx, &models.Expense{
		ID:          id,
		UserID:      userID,
		Amount:      amount,
		Description: cleanText(req.Description),
		Category:    cleanText(req.Category),
		Date:        date,
		UpdatedAt:   s.now().UTC(),
	})
	if err != nil {
		return nil, storeError("update expense", err)
	}

	resp := dto.NewExpenseResponse(updated)
	return &resp, nil
}

func (s *ExpenseService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.expenses.Delete(ctx, userID, id); err != nil {
		return storeError("delete expense", err)
	}
	return nil
}

func parseDate(field, value string) (time.Time, error) {
	d, err := time.Parse(models.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, NewValidationError(field, "must be a date in YYYY-MM-DD format")
	}
	return d, nil
}

func validAmount(field string, amount float64) error {
	if amount <= 0 {
		return NewValidationError(field, "must be greater than 0")
	}
	return nil
}
