package service

import (
	"context"
	"time"

	"spendio/internal/dto"
	"spendio/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BudgetService struct {
	budgets    BudgetStore
	categories CategoryStore
	logger     *zap.Logger
	now        func() time.Time
}

func NewBudgetService(budgets BudgetStore, categories CategoryStore, logger *zap.Logger) *BudgetService {
	return &BudgetService{
		budgets:    budgets,
		categories: categories,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *BudgetService) List(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]dto.BudgetResponse, error) {
	budgets, err := s.budgets.List(ctx, userID, activeOnly)
	if err != nil {
		return nil, storeError("list budgets", err)
	}

	out := make([]dto.BudgetResponse, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, dto.NewBudgetResponse(b))
	}
	return out, nil
}

func (s *BudgetService) Get(ctx context.Context, userID, id uuid.UUID) (*dto.BudgetResponse, error) {
	budget, err := s.budgets.GetByID(ctx, userID, id)
	if err != nil {
		return nil, storeError("get budget", err)
	}
	resp := dto.NewBudgetResponse(budget)
	return &resp, nil
}

func (s *BudgetService) Create(ctx context.Context, userID uuid.UUID, req *dto.BudgetRequest) (*dto.BudgetResponse, error) {
	budget, err := s.fromRequest(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	budget.ID = uuid.New()
	budget.Spent = 0
	budget.IsActive = true
	budget.CreatedAt = now
	budget.UpdatedAt = now

	if err := s.budgets.Create(ctx, budget); err != nil {
		return nil, storeError("create budget", err)
	}

	resp := dto.NewBudgetResponse(budget)
	return &resp, nil
}

// Update replaces the editable fields. Spent is kept unless the request
// carries a new value.
func (s *BudgetService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.BudgetRequest) (*dto.BudgetResponse, error) {
	budget, err := s.fromRequest(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	current, err := s.budgets.GetByID(ctx, userID, id)
	if err != nil {
		return nil, storeError("get budget", err)
	}

	budget.ID = id
	budget.Spent = current.Spent
	if req.Spent != nil {
		budget.Spent = round2(*req.Spent)
	}
	budget.UpdatedAt = s.now().UTC()

	updated, err := s.budgets.Update(ctx, budget)
	if err != nil {
		return nil, storeError("update budget", err)
	}

	resp := dto.NewBudgetResponse(updated)
	return &resp, nil
}

func (s *BudgetService) Toggle(ctx context.Context, userID, id uuid.UUID) (*dto.BudgetResponse, error) {
	budget, err := s.budgets.ToggleActive(ctx, userID, id)
	if err != nil {
		return nil, storeError("toggle budget", err)
	}
	resp := dto.NewBudgetResponse(budget)
	return &resp, nil
}

func (s *BudgetService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.budgets.Delete(ctx, userID, id); err != nil {
		return storeError("delete budget", err)
	}
	return nil
}

func (s *BudgetService) fromRequest(ctx context.Context, userID uuid.UUID, req *dto.BudgetRequest) (*models.Budget, error) {
	period := models.BudgetPeriod(req.Period)
	if !period.Valid() {
		return nil, NewValidationError("period", "must be one of: weekly, monthly, yearly")
	}
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, NewValidationError("end_date", "must not be before start_date")
	}
	amount := round2(req.Amount)
	if err := validAmount("amount", amount); err != nil {
		return nil, err
	}

	name := cleanText(req.Name)
	if name == "" {
		return nil, NewValidationError("name", "is required")
	}

	budget := &models.Budget{
		UserID:    userID,
		Name:      name,
		Amount:    amount,
		Period:    period,
		StartDate: start,
		EndDate:   end,
	}

	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, NewValidationError("category_id", "must be a valid id")
		}
		if _, err := s.categories.GetVisible(ctx, userID, categoryID); err != nil {
			return nil, storeError("get category", err)
		}
		budget.CategoryID = &categoryID
	}

	return budget, nil
}
