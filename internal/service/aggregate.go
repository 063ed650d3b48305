package service

import (
	"sort"
	"strings"

	"spendio/internal/models"

	"github.com/shopspring/decimal"
)

// The reducers in this file are pure: they see only the rows they are given
// and never touch storage.

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func percentOf(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
}

func categoryLabel(category string) string {
	if strings.TrimSpace(category) == "" {
		return models.UncategorizedLabel
	}
	return category
}

type bucket struct {
	total decimal.Decimal
	count int
}

// breakdownByCategory groups expenses by label and sorts groups by total,
// largest first. Ties fall back to the label so output is stable.
func breakdownByCategory(expenses []*models.Expense) []models.CategoryBreakdown {
	buckets := make(map[string]*bucket)
	grand := decimal.Zero
	for _, e := range expenses {
		label := categoryLabel(e.Category)
		b, ok := buckets[label]
		if !ok {
			b = &bucket{}
			buckets[label] = b
		}
		amount := decimal.NewFromFloat(e.Amount)
		b.total = b.total.Add(amount)
		b.count++
		grand = grand.Add(amount)
	}

	out := make([]models.CategoryBreakdown, 0, len(buckets))
	for label, b := range buckets {
		out = append(out, models.CategoryBreakdown{
			Category:   label,
			Total:      b.total.InexactFloat64(),
			Count:      b.count,
			Percentage: percentOf(b.total, grand),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// monthlyTotals keeps the most recent months that have data, at most months
// of them, and returns them oldest first.
func monthlyTotals(expenses []*models.Expense, months int) []models.MonthlyTotal {
	buckets := make(map[string]*bucket)
	for _, e := range expenses {
		key := e.Date.Format("2006-01")
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.total = b.total.Add(decimal.NewFromFloat(e.Amount))
		b.count++
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	if months > 0 && len(keys) > months {
		keys = keys[:months]
	}

	out := make([]models.MonthlyTotal, len(keys))
	for i, k := range keys {
		b := buckets[k]
		out[len(keys)-1-i] = models.MonthlyTotal{
			Month: k,
			Total: b.total.InexactFloat64(),
			Count: b.count,
		}
	}
	return out
}

func budgetStatuses(budgets []*models.Budget) []models.BudgetStatus {
	out := make([]models.BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		if !b.IsActive {
			continue
		}
		out = append(out, models.BudgetStatus{
			ID:             b.ID,
			Name:           b.Name,
			Amount:         b.Amount,
			Spent:          b.Spent,
			Remaining:      b.Remaining(),
			PercentageUsed: round2(b.PercentageUsed()),
			Status:         b.RiskTier(),
			Period:         b.Period,
		})
	}
	return out
}

// goalProgress lists unachieved goals before achieved ones, then by target
// date.
func goalProgress(goals []*models.Goal) []models.GoalProgress {
	sorted := make([]*models.Goal, len(goals))
	copy(sorted, goals)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].IsAchieved != sorted[j].IsAchieved {
			return !sorted[i].IsAchieved
		}
		return sorted[i].TargetDate.Before(sorted[j].TargetDate)
	})

	out := make([]models.GoalProgress, 0, len(sorted))
	for _, g := range sorted {
		out = append(out, models.GoalProgress{
			ID:                 g.ID,
			Title:              g.Title,
			TargetAmount:       g.TargetAmount,
			CurrentAmount:      g.CurrentAmount,
			Remaining:          g.RemainingAmount(),
			ProgressPercentage: round2(g.ProgressPercentage()),
			TargetDate:         g.TargetDate.Format(models.DateLayout),
			IsAchieved:         g.IsAchieved,
		})
	}
	return out
}
