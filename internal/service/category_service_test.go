package service

import (
	"context"
	"testing"

	"spendio/internal/dto"
	"spendio/internal/models"
	"spendio/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSeedDefaults_Idempotent(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	added, err := f.category.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultCategories), added)

	added, err = f.category.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Zero(t, added)
}

func TestCategory_DefaultsVisibleButImmutable(t *testing.T) {
	f := newFixture(t, false)
	userID := f.register(t, "anna@example.com")
	ctx := context.Background()
	_, err := f.category.SeedDefaults(ctx)
	require.NoError(t, err)

	all, err := f.category.List(ctx, userID, true)
	require.NoError(t, err)
	require.Len(t, all, len(DefaultCategories))
	assert.True(t, all[0].IsDefault)

	own, err := f.category.List(ctx, userID, false)
	require.NoError(t, err)
	assert.Empty(t, own)

	shared := uuid.MustParse(all[0].ID)
	_, err = f.category.Update(ctx, userID, shared, &dto.CategoryRequest{Name: "Mine"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.category.Delete(ctx, userID, shared), ErrNotFound)
}

func TestCategory_CreateFillsDefaultsAndRejectsDuplicates(t *testing.T) {
	f := newFixture(t, false)
	userID := f.register(t, "anna@example.com")
	ctx := context.Background()

	c, err := f.category.Create(ctx, userID, &dto.CategoryRequest{Name: " Coffee "})
	require.NoError(t, err)
	assert.Equal(t, "Coffee", c.Name)
	assert.Equal(t, models.DefaultCategoryColor, c.Color)
	assert.Equal(t, models.DefaultCategoryIcon, c.Icon)
	assert.False(t, c.IsDefault)

	_, err = f.category.Create(ctx, userID, &dto.CategoryRequest{Name: "Coffee"})
	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)

	other := f.register(t, "bob@example.com")
	_, err = f.category.Create(ctx, other, &dto.CategoryRequest{Name: "Coffee"})
	assert.NoError(t, err, "names are unique per owner")

	renamed, err := f.category.Update(ctx, userID, uuid.MustParse(c.ID), &dto.CategoryRequest{Name: "Coffee"})
	require.NoError(t, err, "keeping the same name is not a duplicate")
	assert.Equal(t, c.ID, renamed.ID)
}

func TestCategory_DefaultNameCollisionPolicy(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t, false)
	userID := f.register(t, "anna@example.com")
	_, err := f.category.SeedDefaults(ctx)
	require.NoError(t, err)

	_, err = f.category.Create(ctx, userID, &dto.CategoryRequest{Name: "Food"})
	assert.NoError(t, err, "collisions with defaults are allowed by default")

	strict := NewCategoryService(memory.NewCategoryRepository(), false, zap.NewNop())
	_, err = strict.SeedDefaults(ctx)
	require.NoError(t, err)
	_, err = strict.Create(ctx, userID, &dto.CategoryRequest{Name: "Food"})
	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestBudget_CategoryMustBeVisible(t *testing.T) {
	f := newFixture(t, false)
	anna := f.register(t, "anna@example.com")
	bob := f.register(t, "bob@example.com")
	ctx := context.Background()

	bobs, err := f.category.Create(ctx, bob, &dto.CategoryRequest{Name: "Hobby"})
	require.NoError(t, err)
	_, err = f.category.SeedDefaults(ctx)
	require.NoError(t, err)
	defaults, err := f.category.List(ctx, anna, true)
	require.NoError(t, err)

	req := dto.BudgetRequest{
		Name: "Fun", Amount: 100, Period: "monthly",
		StartDate: "2024-01-01", EndDate: "2024-01-31",
		CategoryID: &bobs.ID,
	}
	_, err = f.budget.Create(ctx, anna, &req)
	assert.ErrorIs(t, err, ErrNotFound)

	req.CategoryID = &defaults[0].ID
	b, err := f.budget.Create(ctx, anna, &req)
	require.NoError(t, err)
	assert.Equal(t, defaults[0].ID, *b.CategoryID)
}
