package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spendio/internal/api/handlers"
	"spendio/internal/dto"
	"spendio/internal/repository/memory"
	"spendio/internal/service"
	"spendio/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeDB struct{ err error }

func (f fakeDB) Ping(context.Context) error { return f.err }

type RouterSuite struct {
	suite.Suite
	app *fiber.App
	db  *fakeDB
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	logger := zap.NewNop()
	users := memory.NewUserRepository()
	expenses := memory.NewExpenseRepository()
	categories := memory.NewCategoryRepository()
	budgets := memory.NewBudgetRepository()
	goals := memory.NewGoalRepository()

	jwtManager := auth.NewJWTManager("router-test-secret", time.Hour, 24*time.Hour)
	authService := service.NewAuthService(users, memory.NewTokenRepository(), jwtManager, auth.NewPasswordHasher(bcrypt.MinCost, 4), logger)
	categoryService := service.NewCategoryService(categories, true, logger)
	_, err := categoryService.SeedDefaults(context.Background())
	s.Require().NoError(err)

	s.db = &fakeDB{}
	s.app = SetupRouter(RouterConfig{AllowOrigins: "*"}, Handlers{
		Auth:      handlers.NewAuthHandler(authService, logger),
		Expense:   handlers.NewExpenseHandler(service.NewExpenseService(expenses, logger), logger),
		Category:  handlers.NewCategoryHandler(categoryService, logger),
		Budget:    handlers.NewBudgetHandler(service.NewBudgetService(budgets, categories, logger), logger),
		Goal:      handlers.NewGoalHandler(service.NewGoalService(goals, logger), logger),
		Analytics: handlers.NewAnalyticsHandler(service.NewAnalyticsService(expenses, categories, budgets, goals, logger), logger),
		Health:    handlers.NewHealthHandler(s.db, "test", logger),
	}, authService, logger)
}

func (s *RouterSuite) do(method, path, token string, body any) (int, []byte) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp.StatusCode, out
}

func (s *RouterSuite) decode(raw []byte, v any) {
	s.Require().NoError(json.Unmarshal(raw, v), string(raw))
}

func (s *RouterSuite) signup(email string) string {
	status, _ := s.do(http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email: email, Password: "password123", Name: "Test User",
	})
	s.Require().Equal(http.StatusCreated, status)

	status, raw := s.do(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: "password123"})
	s.Require().Equal(http.StatusOK, status)
	var resp dto.AuthResponse
	s.decode(raw, &resp)
	return resp.AccessToken
}

func (s *RouterSuite) TestHealth() {
	status, raw := s.do(http.MethodGet, "/api/health", "", nil)
	s.Equal(http.StatusOK, status)
	var health dto.HealthResponse
	s.decode(raw, &health)
	s.Equal(dto.HealthResponse{Status: "healthy", Database: "connected", Version: "test"}, health)

	s.db.err = errors.New("connection refused")
	status, raw = s.do(http.MethodGet, "/api/health", "", nil)
	s.Equal(http.StatusServiceUnavailable, status)
	s.decode(raw, &health)
	s.Equal("disconnected", health.Database)
}

func (s *RouterSuite) TestRegister() {
	status, raw := s.do(http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email: "Anna@Example.com", Password: "password123", Name: "Anna",
	})
	s.Require().Equal(http.StatusCreated, status)
	var user dto.UserResponse
	s.decode(raw, &user)
	s.Equal("anna@example.com", user.Email)
	s.NotContains(string(raw), "password")

	status, _ = s.do(http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email: "anna@example.com", Password: "password123", Name: "Anna",
	})
	s.Equal(http.StatusBadRequest, status)

	status, raw = s.do(http.MethodPost, "/api/auth/register", "", map[string]string{"email": "x@example.com"})
	s.Equal(http.StatusUnprocessableEntity, status)
	var errResp dto.ErrorResponse
	s.decode(raw, &errResp)
	s.Contains(errResp.Details, "password")
	s.Contains(errResp.Details, "name")
}

func (s *RouterSuite) TestUnauthorizedBodiesAreUniform() {
	token := s.signup("anna@example.com")

	_, missing := s.do(http.MethodGet, "/api/expenses", "", nil)
	_, garbage := s.do(http.MethodGet, "/api/expenses", "not-a-token", nil)
	_, badLogin := s.do(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "anna@example.com", Password: "wrong-pass1"})
	_, unknown := s.do(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "nobody@example.com", Password: "password123"})

	s.JSONEq(string(missing), string(garbage))
	s.JSONEq(string(missing), string(badLogin))
	s.JSONEq(string(missing), string(unknown))

	status, _ := s.do(http.MethodGet, "/api/auth/me", token, nil)
	s.Equal(http.StatusOK, status)
}

func (s *RouterSuite) TestLogoutRevokesToken() {
	token := s.signup("anna@example.com")

	status, _ := s.do(http.MethodPost, "/api/auth/logout", token, nil)
	s.Require().Equal(http.StatusOK, status)

	status, _ = s.do(http.MethodGet, "/api/auth/me", token, nil)
	s.Equal(http.StatusUnauthorized, status)
}

func (s *RouterSuite) TestExpenseLifecycleAndIsolation() {
	anna := s.signup("anna@example.com")
	bob := s.signup("bob@example.com")

	status, raw := s.do(http.MethodPost, "/api/expenses", anna, dto.ExpenseRequest{
		Amount: 42.5, Description: "groceries", Category: "Food", Date: "2024-03-01",
	})
	s.Require().Equal(http.StatusCreated, status, string(raw))
	var expense dto.ExpenseResponse
	s.decode(raw, &expense)

	status, _ = s.do(http.MethodGet, "/api/expenses/"+expense.ID, bob, nil)
	s.Equal(http.StatusNotFound, status)
	status, _ = s.do(http.MethodDelete, "/api/expenses/"+expense.ID, bob, nil)
	s.Equal(http.StatusNotFound, status)

	status, raw = s.do(http.MethodGet, "/api/expenses?category=Food&start_date=2024-03-01", anna, nil)
	s.Require().Equal(http.StatusOK, status)
	var list []dto.ExpenseResponse
	s.decode(raw, &list)
	s.Require().Len(list, 1)
	s.Equal(42.5, list[0].Amount)

	status, _ = s.do(http.MethodGet, "/api/expenses?start_date=yesterday", anna, nil)
	s.Equal(http.StatusUnprocessableEntity, status)

	status, _ = s.do(http.MethodPost, "/api/expenses", anna, dto.ExpenseRequest{Amount: -1, Date: "2024-03-01"})
	s.Equal(http.StatusUnprocessableEntity, status)

	status, _ = s.do(http.MethodGet, "/api/expenses/not-a-uuid", anna, nil)
	s.Equal(http.StatusUnprocessableEntity, status)

	status, _ = s.do(http.MethodDelete, "/api/expenses/"+expense.ID, anna, nil)
	s.Equal(http.StatusNoContent, status)
	status, _ = s.do(http.MethodGet, "/api/expenses/"+expense.ID, anna, nil)
	s.Equal(http.StatusNotFound, status)
}

func (s *RouterSuite) TestCategories() {
	anna := s.signup("anna@example.com")

	status, raw := s.do(http.MethodGet, "/api/categories", anna, nil)
	s.Require().Equal(http.StatusOK, status)
	var all []dto.CategoryResponse
	s.decode(raw, &all)
	s.Len(all, len(service.DefaultCategories))

	status, raw = s.do(http.MethodGet, "/api/categories?include_default=false", anna, nil)
	s.Require().Equal(http.StatusOK, status)
	var own []dto.CategoryResponse
	s.decode(raw, &own)
	s.Empty(own)

	status, _ = s.do(http.MethodDelete, "/api/categories/"+all[0].ID, anna, nil)
	s.Equal(http.StatusNotFound, status)

	status, _ = s.do(http.MethodPost, "/api/categories", anna, map[string]string{"name": "Pets", "color": "blue"})
	s.Equal(http.StatusUnprocessableEntity, status)

	status, _ = s.do(http.MethodPost, "/api/categories", anna, map[string]string{"name": "Pets", "color": "#00AA00"})
	s.Equal(http.StatusCreated, status)
	status, _ = s.do(http.MethodPost, "/api/categories", anna, map[string]string{"name": "Pets"})
	s.Equal(http.StatusBadRequest, status)
}

func (s *RouterSuite) TestGoalFlow() {
	anna := s.signup("anna@example.com")

	status, raw := s.do(http.MethodPost, "/api/goals", anna, dto.GoalCreateRequest{
		Title: "Bike", TargetAmount: 1000, TargetDate: "2025-01-01",
	})
	s.Require().Equal(http.StatusCreated, status, string(raw))
	var goal dto.GoalResponse
	s.decode(raw, &goal)

	status, _ = s.do(http.MethodPatch, "/api/goals/"+goal.ID+"/add-money", anna, dto.GoalMoneyRequest{Amount: 900})
	s.Require().Equal(http.StatusOK, status)
	status, raw = s.do(http.MethodPatch, "/api/goals/"+goal.ID+"/add-money", anna, dto.GoalMoneyRequest{Amount: 200})
	s.Require().Equal(http.StatusOK, status)
	s.decode(raw, &goal)
	s.Equal(1000.0, goal.CurrentAmount)
	s.True(goal.IsAchieved)

	status, _ = s.do(http.MethodPatch, "/api/goals/"+goal.ID+"/add-money", anna, dto.GoalMoneyRequest{Amount: 1})
	s.Equal(http.StatusBadRequest, status)

	status, raw = s.do(http.MethodGet, "/api/goals?achieved=false", anna, nil)
	s.Require().Equal(http.StatusOK, status)
	var open []dto.GoalResponse
	s.decode(raw, &open)
	s.Empty(open)

	status, _ = s.do(http.MethodGet, "/api/goals?achieved=maybe", anna, nil)
	s.Equal(http.StatusUnprocessableEntity, status)
}

func (s *RouterSuite) TestGoalsAchievedOnlyAlias() {
	anna := s.signup("anna@example.com")

	for _, title := range []string{"Bike", "Trip"} {
		status, raw := s.do(http.MethodPost, "/api/goals", anna, dto.GoalCreateRequest{
			Title: title, TargetAmount: 100, TargetDate: "2025-01-01",
		})
		s.Require().Equal(http.StatusCreated, status, string(raw))
		if title == "Bike" {
			var goal dto.GoalResponse
			s.decode(raw, &goal)
			status, _ = s.do(http.MethodPatch, "/api/goals/"+goal.ID+"/add-money", anna, dto.GoalMoneyRequest{Amount: 100})
			s.Require().Equal(http.StatusOK, status)
		}
	}

	status, raw := s.do(http.MethodGet, "/api/goals?achieved_only=true", anna, nil)
	s.Require().Equal(http.StatusOK, status)
	var done []dto.GoalResponse
	s.decode(raw, &done)
	s.Require().Len(done, 1)
	s.Equal("Bike", done[0].Title)

	status, raw = s.do(http.MethodGet, "/api/goals?achieved_only=false", anna, nil)
	s.Require().Equal(http.StatusOK, status)
	var open []dto.GoalResponse
	s.decode(raw, &open)
	s.Require().Len(open, 1)
	s.Equal("Trip", open[0].Title)

	// achieved wins when both are sent.
	status, raw = s.do(http.MethodGet, "/api/goals?achieved=false&achieved_only=true", anna, nil)
	s.Require().Equal(http.StatusOK, status)
	s.decode(raw, &open)
	s.Require().Len(open, 1)
	s.Equal("Trip", open[0].Title)

	status, raw = s.do(http.MethodGet, "/api/goals?achieved_only=maybe", anna, nil)
	s.Equal(http.StatusUnprocessableEntity, status)
	s.Contains(string(raw), "achieved_only")
}

func (s *RouterSuite) TestSwaggerDocIsRegistered() {
	status, raw := s.do(http.MethodGet, "/swagger/doc.json", "", nil)
	s.Require().Equal(http.StatusOK, status)
	s.Contains(string(raw), "Spendio API")
	s.Contains(string(raw), "/analytics/dashboard")
}

func (s *RouterSuite) TestBudgetAndAnalytics() {
	anna := s.signup("anna@example.com")

	status, raw := s.do(http.MethodPost, "/api/budgets", anna, dto.BudgetRequest{
		Name: "Food", Amount: 500, Period: "monthly", StartDate: "2024-03-01", EndDate: "2024-03-31",
	})
	s.Require().Equal(http.StatusCreated, status, string(raw))
	var budget dto.BudgetResponse
	s.decode(raw, &budget)
	s.True(budget.IsActive)
	s.Zero(budget.Spent)

	status, _ = s.do(http.MethodPost, "/api/budgets", anna, map[string]any{
		"name": "Bad", "amount": 10, "period": "daily", "start_date": "2024-03-01", "end_date": "2024-03-31",
	})
	s.Equal(http.StatusUnprocessableEntity, status)

	for _, e := range []dto.ExpenseRequest{
		{Amount: 100, Category: "food", Date: "2024-01-15"},
		{Amount: 150, Category: "food", Date: "2024-01-20"},
		{Amount: 200, Category: "fun", Date: "2024-02-10"},
	} {
		status, _ = s.do(http.MethodPost, "/api/expenses", anna, e)
		s.Require().Equal(http.StatusCreated, status)
	}

	status, raw = s.do(http.MethodGet, "/api/analytics/monthly-expenses", anna, nil)
	s.Require().Equal(http.StatusOK, status)
	var monthly []dto.MonthlyExpensesResponse
	s.decode(raw, &monthly)
	s.Equal([]dto.MonthlyExpensesResponse{
		{Month: "2024-01", Total: 250, Count: 2},
		{Month: "2024-02", Total: 200, Count: 1},
	}, monthly)

	status, raw = s.do(http.MethodGet, "/api/analytics/dashboard", anna, nil)
	s.Require().Equal(http.StatusOK, status)
	var dash dto.DashboardResponse
	s.decode(raw, &dash)
	s.Equal(450.0, dash.TotalExpenses)
	s.Equal(3, dash.ExpensesCount)
	s.Equal(1, dash.ActiveBudgets)
	s.Equal(len(service.DefaultCategories), dash.CategoriesCount)

	status, raw = s.do(http.MethodPatch, "/api/budgets/"+budget.ID+"/toggle", anna, nil)
	s.Require().Equal(http.StatusOK, status)
	s.decode(raw, &budget)
	s.False(budget.IsActive)

	status, raw = s.do(http.MethodGet, "/api/budgets", anna, nil)
	s.Require().Equal(http.StatusOK, status)
	var active []dto.BudgetResponse
	s.decode(raw, &active)
	s.Empty(active)

	status, raw = s.do(http.MethodGet, "/api/budgets?active_only=false", anna, nil)
	s.Require().Equal(http.StatusOK, status)
	s.decode(raw, &active)
	s.Len(active, 1)
}

func TestBearerSchemeIsRequired(t *testing.T) {
	s := new(RouterSuite)
	s.SetT(t)
	s.SetupTest()
	token := s.signup("anna@example.com")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", token)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
}
