package service

import (
	"context"
	"testing"

	"spendio/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGoal(t *testing.T, f *fixture, userID uuid.UUID, target float64) uuid.UUID {
	t.Helper()
	g, err := f.goal.Create(context.Background(), userID, &dto.GoalCreateRequest{
		Title:        "Vacation",
		TargetAmount: target,
		TargetDate:   "2025-06-01",
	})
	require.NoError(t, err)
	assert.Zero(t, g.CurrentAmount)
	assert.False(t, g.IsAchieved)
	return uuid.MustParse(g.ID)
}

func TestGoal_DepositReachesTarget(t *testing.T) {
	f := newFixture(t, false)
	userID := f.register(t, "anna@example.com")
	id := newGoal(t, f, userID, 1000)
	ctx := context.Background()

	g, err := f.goal.AddMoney(ctx, userID, id, &dto.GoalMoneyRequest{Amount: 900})
	require.NoError(t, err)
	assert.Equal(t, 900.0, g.CurrentAmount)
	assert.False(t, g.IsAchieved)
	assert.Equal(t, 100.0, g.RemainingAmount)

	g, err = f.goal.AddMoney(ctx, userID, id, &dto.GoalMoneyRequest{Amount: 200})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, g.CurrentAmount)
	assert.True(t, g.IsAchieved)
	assert.Equal(t, 100.0, g.ProgressPercentage)

	_, err = f.goal.AddMoney(ctx, userID, id, &dto.GoalMoneyRequest{Amount: 1})
	var business *BusinessError
	assert.ErrorAs(t, err, &business)

	stored, err := f.goal.Get(ctx, userID, id)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, stored.CurrentAmount, "rejected deposit must not change the goal")
}

func TestGoal_Withdraw(t *testing.T) {
	f := newFixture(t, false)
	userID := f.register(t, "anna@example.com")
	id := newGoal(t, f, userID, 500)
	ctx := context.Background()

	_, err := f.goal.AddMoney(ctx, userID, id, &dto.GoalMoneyRequest{Amount: 500})
	require.NoError(t, err)

	_, err = f.goal.Withdraw(ctx, userID, id, &dto.GoalMoneyRequest{Amount: 600})
	var business *BusinessError
	assert.ErrorAs(t, err, &business)

	g, err := f.goal.Withdraw(ctx, userID, id, &dto.GoalMoneyRequest{Amount: 100})
	require.NoError(t, err)
	assert.Equal(t, 400.0, g.CurrentAmount)
	assert.False(t, g.IsAchieved)
}

func TestGoal_NonPositiveAmountIsValidationError(t *testing.T) {
	f := newFixture(t, false)
	userID := f.register(t, "anna@example.com")
	id := newGoal(t, f, userID, 500)

	_, err := f.goal.AddMoney(context.Background(), userID, id, &dto.GoalMoneyRequest{Amount: 0})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestGoal_UpdateTargetRecomputesAchieved(t *testing.T) {
	f := newFixture(t, false)
	userID := f.register(t, "anna@example.com")
	id := newGoal(t, f, userID, 1000)
	ctx := context.Background()

	_, err := f.goal.AddMoney(ctx, userID, id, &dto.GoalMoneyRequest{Amount: 600})
	require.NoError(t, err)

	lower := 500.0
	g, err := f.goal.Update(ctx, userID, id, &dto.GoalUpdateRequest{TargetAmount: &lower})
	require.NoError(t, err)
	assert.True(t, g.IsAchieved)
	assert.Equal(t, "Vacation", g.Title, "unset fields are kept")

	higher := 2000.0
	title := "  Trip  "
	g, err = f.goal.Update(ctx, userID, id, &dto.GoalUpdateRequest{TargetAmount: &higher, Title: &title})
	require.NoError(t, err)
	assert.False(t, g.IsAchieved)
	assert.Equal(t, "Trip", g.Title)
	assert.Equal(t, 30.0, g.ProgressPercentage)
}

func TestGoal_ListFilterByAchieved(t *testing.T) {
	f := newFixture(t, false)
	userID := f.register(t, "anna@example.com")
	done := newGoal(t, f, userID, 100)
	newGoal(t, f, userID, 100)
	ctx := context.Background()

	_, err := f.goal.AddMoney(ctx, userID, done, &dto.GoalMoneyRequest{Amount: 100})
	require.NoError(t, err)

	achieved := true
	goals, err := f.goal.List(ctx, userID, &achieved)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, done.String(), goals[0].ID)

	all, err := f.goal.List(ctx, userID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
