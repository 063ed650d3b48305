package service

import (
	"context"
	"testing"
	"time"

	"spendio/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_MonthTotalExcludesOtherMonths(t *testing.T) {
	f := newFixture(t, false)
	anna := f.register(t, "anna@example.com")
	ctx := context.Background()
	f.analytics.now = func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }

	for _, e := range []dto.ExpenseRequest{
		{Amount: 40, Category: "Food", Date: "2024-02-29"},
		{Amount: 10, Category: "Food", Date: "2024-03-01"},
		{Amount: 5, Category: "Food", Date: "2024-03-31"},
		{Amount: 500, Category: "Rent", Date: "2024-04-01"},
	} {
		_, err := f.expense.Create(ctx, anna, &e)
		require.NoError(t, err)
	}

	dash, err := f.analytics.Dashboard(ctx, anna)
	require.NoError(t, err)
	assert.Equal(t, 15.0, dash.TotalExpensesThisMonth)
	assert.Equal(t, 555.0, dash.TotalExpenses)
	assert.Equal(t, 4, dash.ExpensesCount)
}

func TestDashboard_MonthTotalAtYearBoundary(t *testing.T) {
	f := newFixture(t, false)
	anna := f.register(t, "anna@example.com")
	ctx := context.Background()
	f.analytics.now = func() time.Time { return time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC) }

	for _, e := range []dto.ExpenseRequest{
		{Amount: 20, Date: "2024-12-31"},
		{Amount: 70, Date: "2025-01-01"},
	} {
		_, err := f.expense.Create(ctx, anna, &e)
		require.NoError(t, err)
	}

	dash, err := f.analytics.Dashboard(ctx, anna)
	require.NoError(t, err)
	assert.Equal(t, 20.0, dash.TotalExpensesThisMonth)
}

func TestReadsAreRepeatable(t *testing.T) {
	f := newFixture(t, false)
	anna := f.register(t, "anna@example.com")
	ctx := context.Background()
	f.analytics.now = func() time.Time { return time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC) }

	// Equal totals and equal dates exercise the tie-breaking paths.
	for _, e := range []dto.ExpenseRequest{
		{Amount: 30, Category: "Food", Date: "2024-03-10"},
		{Amount: 30, Category: "Books", Date: "2024-03-10"},
		{Amount: 30, Category: "Fuel", Date: "2024-03-10"},
		{Amount: 12.5, Category: "", Date: "2024-02-01"},
	} {
		_, err := f.expense.Create(ctx, anna, &e)
		require.NoError(t, err)
	}
	for _, title := range []string{"Bike", "Trip", "Laptop"} {
		_, err := f.goal.Create(ctx, anna, &dto.GoalCreateRequest{Title: title, TargetAmount: 100, TargetDate: "2025-01-01"})
		require.NoError(t, err)
	}

	breakdown, err := f.analytics.ExpensesByCategory(ctx, anna, 60)
	require.NoError(t, err)
	require.Len(t, breakdown, 4)
	assert.Equal(t, []string{"Books", "Food", "Fuel", "Uncategorized"},
		[]string{breakdown[0].Category, breakdown[1].Category, breakdown[2].Category, breakdown[3].Category})

	monthly, err := f.analytics.MonthlyExpenses(ctx, anna, 12)
	require.NoError(t, err)
	goals, err := f.analytics.GoalsProgress(ctx, anna)
	require.NoError(t, err)
	list, err := f.expense.List(ctx, anna, &dto.ExpenseListQuery{})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := f.analytics.ExpensesByCategory(ctx, anna, 60)
		require.NoError(t, err)
		assert.Equal(t, breakdown, again)

		monthlyAgain, err := f.analytics.MonthlyExpenses(ctx, anna, 12)
		require.NoError(t, err)
		assert.Equal(t, monthly, monthlyAgain)

		goalsAgain, err := f.analytics.GoalsProgress(ctx, anna)
		require.NoError(t, err)
		assert.Equal(t, goals, goalsAgain)

		listAgain, err := f.expense.List(ctx, anna, &dto.ExpenseListQuery{})
		require.NoError(t, err)
		assert.Equal(t, list, listAgain)
	}
}
