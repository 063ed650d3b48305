package service

import (
	"context"
	"testing"
	"time"

	"spendio/internal/dto"
	"spendio/internal/repository/memory"
	"spendio/pkg/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	users      *memory.UserRepository
	tokens     *memory.TokenRepository
	expenses   *memory.ExpenseRepository
	categories *memory.CategoryRepository
	budgets    *memory.BudgetRepository
	goals      *memory.GoalRepository

	jwt       *auth.JWTManager
	auth      *AuthService
	expense   *ExpenseService
	category  *CategoryService
	budget    *BudgetService
	goal      *GoalService
	analytics *AnalyticsService
}

func newFixture(t *testing.T, revocation bool) *fixture {
	t.Helper()
	logger := zap.NewNop()

	f := &fixture{
		users:      memory.NewUserRepository(),
		tokens:     memory.NewTokenRepository(),
		expenses:   memory.NewExpenseRepository(),
		categories: memory.NewCategoryRepository(),
		budgets:    memory.NewBudgetRepository(),
		goals:      memory.NewGoalRepository(),
		jwt:        auth.NewJWTManager("test-secret", time.Hour, 24*time.Hour),
	}

	var revoked RevocationStore
	if revocation {
		revoked = f.tokens
	}
	f.auth = NewAuthService(f.users, revoked, f.jwt, auth.NewPasswordHasher(bcrypt.MinCost, 4), logger)
	f.expense = NewExpenseService(f.expenses, logger)
	f.category = NewCategoryService(f.categories, true, logger)
	f.budget = NewBudgetService(f.budgets, f.categories, logger)
	f.goal = NewGoalService(f.goals, logger)
	f.analytics = NewAnalyticsService(f.expenses, f.categories, f.budgets, f.goals, logger)
	return f
}

func (f *fixture) register(t *testing.T, email string) uuid.UUID {
	t.Helper()
	user, err := f.auth.Register(context.Background(), &dto.RegisterRequest{
		Email:    email,
		Password: "password123",
		Name:     "Test User",
	})
	require.NoError(t, err)
	return uuid.MustParse(user.ID)
}

func (f *fixture) login(t *testing.T, email string) *dto.AuthResponse {
	t.Helper()
	resp, err := f.auth.Login(context.Background(), &dto.LoginRequest{Email: email, Password: "password123"})
	require.NoError(t, err)
	return resp
}
