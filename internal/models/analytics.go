package models

import "github.com/google/uuid"

// UncategorizedLabel replaces empty category labels in breakdowns.
const UncategorizedLabel = "Uncategorized"

type CategoryBreakdown struct {
	Category   string
	Total      float64
	Count      int
	Percentage float64
}

type MonthlyTotal struct {
	Month string
	Total float64
	Count int
}

type BudgetStatus struct {
	ID             uuid.UUID
	Name           string
	Amount         float64
	Spent          float64
	Remaining      float64
	PercentageUsed float64
	Status         RiskTier
	Period         BudgetPeriod
}

type GoalProgress struct {
	ID                 uuid.UUID
	Title              string
	TargetAmount       float64
	CurrentAmount      float64
	Remaining          float64
	ProgressPercentage float64
	TargetDate         string
	IsAchieved         bool
}

type DashboardStats struct {
	TotalExpenses          float64
	TotalExpensesThisMonth float64
	ActiveBudgets          int
	ActiveGoals            int
	CategoriesCount        int
	ExpensesCount          int
}
