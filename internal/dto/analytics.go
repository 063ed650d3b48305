package dto

import "spendio/internal/models"

const (
	DefaultPeriodDays = 30
	DefaultMonths     = 12
)

type CategoryBreakdownQuery struct {
	PeriodDays int `query:"period_days" validate:"gte=0,max=3650"`
}

type MonthlyExpensesQuery struct {
	Months int `query:"months" validate:"gte=0,max=120"`
}

type CategoryBreakdownResponse struct {
	Category   string  `json:"category"`
	Total      float64 `json:"total"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type MonthlyExpensesResponse struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

type BudgetStatusResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Amount         float64 `json:"amount"`
	Spent          float64 `json:"spent"`
	Remaining      float64 `json:"remaining"`
	PercentageUsed float64 `json:"percentage_used"`
	Status         string  `json:"status"`
	Period         string  `json:"period"`
}

type GoalProgressResponse struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title"`
	TargetAmount       float64 `json:"target_amount"`
	CurrentAmount      float64 `json:"current_amount"`
	Remaining          float64 `json:"remaining"`
	ProgressPercentage float64 `json:"progress_percentage"`
	TargetDate         string  `json:"target_date"`
	IsAchieved         bool    `json:"is_achieved"`
}

type DashboardResponse struct {
	TotalExpenses          float64 `json:"total_expenses"`
	TotalExpensesThisMonth float64 `json:"total_expenses_this_month"`
	ActiveBudgets          int     `json:"active_budgets"`
	ActiveGoals            int     `json:"active_goals"`
	CategoriesCount        int     `json:"categories_count"`
	ExpensesCount          int     `json:"expenses_count"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Version  string `json:"version"`
}

func NewCategoryBreakdownResponses(rows []models.CategoryBreakdown) []CategoryBreakdownResponse {
	out := make([]CategoryBreakdownResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, CategoryBreakdownResponse(r))
	}
	return out
}

func NewMonthlyExpensesResponses(rows []models.MonthlyTotal) []MonthlyExpensesResponse {
	out := make([]MonthlyExpensesResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, MonthlyExpensesResponse(r))
	}
	return out
}

func NewBudgetStatusResponses(rows []models.BudgetStatus) []BudgetStatusResponse {
	out := make([]BudgetStatusResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, BudgetStatusResponse{
			ID:             r.ID.String(),
			Name:           r.Name,
			Amount:         r.Amount,
			Spent:          r.Spent,
			Remaining:      r.Remaining,
			PercentageUsed: r.PercentageUsed,
			Status:         string(r.Status),
			Period:         string(r.Period),
		})
	}
	return out
}

func NewGoalProgressResponses(rows []models.GoalProgress) []GoalProgressResponse {
	out := make([]GoalProgressResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, GoalProgressResponse{
			ID:                 r.ID.String(),
			Title:              r.Title,
			TargetAmount:       r.TargetAmount,
			CurrentAmount:      r.CurrentAmount,
			Remaining:          r.Remaining,
			ProgressPercentage: r.ProgressPercentage,
			TargetDate:         r.TargetDate,
			IsAchieved:         r.IsAchieved,
		})
	}
	return out
}

func NewDashboardResponse(s *models.DashboardStats) DashboardResponse {
	return DashboardResponse(*s)
}
