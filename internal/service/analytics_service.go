package service

import (
	"context"
	"time"

	"spendio/internal/dto"
	"spendio/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type AnalyticsService struct {
	expenses   ExpenseStore
	categories CategoryStore
	budgets    BudgetStore
	goals      GoalStore
	logger     *zap.Logger
	now        func() time.Time
}

func NewAnalyticsService(
	expenses ExpenseStore,
	categories CategoryStore,
	budgets BudgetStore,
	goals GoalStore,
	logger *zap.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		expenses:   expenses,
		categories: categories,
		budgets:    budgets,
		goals:      goals,
		logger:     logger,
		now:        time.Now,
	}
}

// Dashboard runs its scalar queries concurrently. They do not share a
// snapshot, so a concurrent write may be seen by some counts and not others.
func (s *AnalyticsService) Dashboard(ctx context.Context, userID uuid.UUID) (*dto.DashboardResponse, error) {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)

	var stats models.DashboardStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		total, count, err := s.expenses.Totals(gctx, userID, nil, nil)
		if err != nil {
			return storeError("total expenses", err)
		}
		stats.TotalExpenses = round2(total)
		stats.ExpensesCount = count
		return nil
	})
	g.Go(func() error {
		total, _, err := s.expenses.Totals(gctx, userID, &monthStart, &nextMonth)
		if err != nil {
			return storeError("month expenses", err)
		}
		stats.TotalExpensesThisMonth = round2(total)
		return nil
	})
	g.Go(func() error {
		n, err := s.budgets.CountActive(gctx, userID)
		if err != nil {
			return storeError("count budgets", err)
		}
		stats.ActiveBudgets = n
		return nil
	})
	g.Go(func() error {
		n, err := s.goals.CountUnachieved(gctx, userID)
		if err != nil {
			return storeError("count goals", err)
		}
		stats.ActiveGoals = n
		return nil
	})
	g.Go(func() error {
		n, err := s.categories.CountVisible(gctx, userID)
		if err != nil {
			return storeError("count categories", err)
		}
		stats.CategoriesCount = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := dto.NewDashboardResponse(&stats)
	return &resp, nil
}

// ExpensesByCategory covers expenses dated within the last periodDays days,
// today included.
func (s *AnalyticsService) ExpensesByCategory(ctx context.Context, userID uuid.UUID, periodDays int) ([]dto.CategoryBreakdownResponse, error) {
	if periodDays <= 0 {
		periodDays = dto.DefaultPeriodDays
	}
	now := s.now()
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -periodDays)

	expenses, err := s.expenses.List(ctx, userID, models.ExpenseFilter{StartDate: &since})
	if err != nil {
		return nil, storeError("list expenses", err)
	}

	return dto.NewCategoryBreakdownResponses(breakdownByCategory(expenses)), nil
}

func (s *AnalyticsService) MonthlyExpenses(ctx context.Context, userID uuid.UUID, months int) ([]dto.MonthlyExpensesResponse, error) {
	if months <= 0 {
		months = dto.DefaultMonths
	}

	expenses, err := s.expenses.List(ctx, userID, models.ExpenseFilter{})
	if err != nil {
		return nil, storeError("list expenses", err)
	}

	return dto.NewMonthlyExpensesResponses(monthlyTotals(expenses, months)), nil
}

func (s *AnalyticsService) BudgetStatus(ctx context.Context, userID uuid.UUID) ([]dto.BudgetStatusResponse, error) {
	budgets, err := s.budgets.List(ctx, userID, true)
	if err != nil {
		return nil, storeError("list budgets", err)
	}
	return dto.NewBudgetStatusResponses(budgetStatuses(budgets)), nil
}

func (s *AnalyticsService) GoalsProgress(ctx context.Context, userID uuid.UUID) ([]dto.GoalProgressResponse, error) {
	goals, err := s.goals.List(ctx, userID, nil)
	if err != nil {
		return nil, storeError("list goals", err)
	}
	return dto.NewGoalProgressResponses(goalProgress(goals)), nil
}
