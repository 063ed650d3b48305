package service

import (
	"context"
	"testing"

	"spendio/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenantIsolation_ForeignIDsAreNotFound(t *testing.T) {
	f := newFixture(t, false)
	anna := f.register(t, "anna@example.com")
	bob := f.register(t, "bob@example.com")
	ctx := context.Background()

	expense, err := f.expense.Create(ctx, anna, &dto.ExpenseRequest{Amount: 10, Category: "food", Date: "2024-03-01"})
	require.NoError(t, err)
	budget, err := f.budget.Create(ctx, anna, &dto.BudgetRequest{
		Name: "Food", Amount: 500, Period: "monthly", StartDate: "2024-03-01", EndDate: "2024-03-31",
	})
	require.NoError(t, err)
	goal, err := f.goal.Create(ctx, anna, &dto.GoalCreateRequest{Title: "Car", TargetAmount: 1000, TargetDate: "2025-01-01"})
	require.NoError(t, err)
	category, err := f.category.Create(ctx, anna, &dto.CategoryRequest{Name: "Coffee"})
	require.NoError(t, err)

	expenseID := uuid.MustParse(expense.ID)
	budgetID := uuid.MustParse(budget.ID)
	goalID := uuid.MustParse(goal.ID)
	categoryID := uuid.MustParse(category.ID)

	_, err = f.expense.Get(ctx, bob, expenseID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.expense.Update(ctx, bob, expenseID, &dto.ExpenseRequest{Amount: 1, Date: "2024-03-02"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.expense.Delete(ctx, bob, expenseID), ErrNotFound)

	_, err = f.budget.Get(ctx, bob, budgetID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.budget.Toggle(ctx, bob, budgetID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.budget.Delete(ctx, bob, budgetID), ErrNotFound)

	_, err = f.goal.Get(ctx, bob, goalID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.goal.AddMoney(ctx, bob, goalID, &dto.GoalMoneyRequest{Amount: 5})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.goal.Delete(ctx, bob, goalID), ErrNotFound)

	_, err = f.category.Update(ctx, bob, categoryID, &dto.CategoryRequest{Name: "Tea"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.category.Delete(ctx, bob, categoryID), ErrNotFound)

	// Anna's rows are untouched.
	stillThere, err := f.expense.Get(ctx, anna, expenseID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, stillThere.Amount)
	g, err := f.goal.Get(ctx, anna, goalID)
	require.NoError(t, err)
	assert.Zero(t, g.CurrentAmount)
}

func TestTenantIsolation_Lists(t *testing.T) {
	f := newFixture(t, false)
	anna := f.register(t, "anna@example.com")
	bob := f.register(t, "bob@example.com")
	ctx := context.Background()

	_, err := f.expense.Create(ctx, anna, &dto.ExpenseRequest{Amount: 10, Date: "2024-03-01"})
	require.NoError(t, err)
	_, err = f.goal.Create(ctx, anna, &dto.GoalCreateRequest{Title: "Car", TargetAmount: 1000, TargetDate: "2025-01-01"})
	require.NoError(t, err)

	expenses, err := f.expense.List(ctx, bob, &dto.ExpenseListQuery{})
	require.NoError(t, err)
	assert.Empty(t, expenses)

	goals, err := f.goal.List(ctx, bob, nil)
	require.NoError(t, err)
	assert.Empty(t, goals)

	dash, err := f.analytics.Dashboard(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, dto.DashboardResponse{}, *dash)

	monthly, err := f.analytics.MonthlyExpenses(ctx, bob, 0)
	require.NoError(t, err)
	assert.Empty(t, monthly)
}

func TestBudget_UpdateKeepsSpentUnlessGiven(t *testing.T) {
	f := newFixture(t, false)
	anna := f.register(t, "anna@example.com")
	ctx := context.Background()

	req := dto.BudgetRequest{Name: "Food", Amount: 500, Period: "monthly", StartDate: "2024-03-01", EndDate: "2024-03-31"}
	b, err := f.budget.Create(ctx, anna, &req)
	require.NoError(t, err)
	id := uuid.MustParse(b.ID)

	spent := 449.0
	req.Spent = &spent
	b, err = f.budget.Update(ctx, anna, id, &req)
	require.NoError(t, err)
	assert.Equal(t, 449.0, b.Spent)
	assert.Equal(t, 51.0, b.Remaining)

	req.Spent = nil
	req.Amount = 600
	b, err = f.budget.Update(ctx, anna, id, &req)
	require.NoError(t, err)
	assert.Equal(t, 449.0, b.Spent)
	assert.Equal(t, 600.0, b.Amount)

	b, err = f.budget.Toggle(ctx, anna, id)
	require.NoError(t, err)
	assert.False(t, b.IsActive)

	statuses, err := f.analytics.BudgetStatus(ctx, anna)
	require.NoError(t, err)
	assert.Empty(t, statuses, "inactive budgets are excluded")
}

func TestBudget_Validation(t *testing.T) {
	f := newFixture(t, false)
	anna := f.register(t, "anna@example.com")

	_, err := f.budget.Create(context.Background(), anna, &dto.BudgetRequest{
		Name: "Food", Amount: 500, Period: "daily", StartDate: "2024-03-01", EndDate: "2024-03-31",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "period")

	_, err = f.budget.Create(context.Background(), anna, &dto.BudgetRequest{
		Name: "Food", Amount: 500, Period: "weekly", StartDate: "2024-03-08", EndDate: "2024-03-01",
	})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "end_date")
}

func TestExpense_ListDefaultsAndFilters(t *testing.T) {
	f := newFixture(t, false)
	anna := f.register(t, "anna@example.com")
	ctx := context.Background()

	for _, d := range []string{"2024-01-10", "2024-02-10", "2024-03-10"} {
		_, err := f.expense.Create(ctx, anna, &dto.ExpenseRequest{Amount: 12.345, Category: "food", Date: d})
		require.NoError(t, err)
	}

	all, err := f.expense.List(ctx, anna, &dto.ExpenseListQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2024-03-10", all[0].Date, "newest first")
	assert.Equal(t, 12.35, all[0].Amount)

	ranged, err := f.expense.List(ctx, anna, &dto.ExpenseListQuery{StartDate: "2024-02-01", EndDate: "2024-02-29"})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, "2024-02-10", ranged[0].Date)

	_, err = f.expense.List(ctx, anna, &dto.ExpenseListQuery{StartDate: "02/01/2024"})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}
