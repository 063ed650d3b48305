package models

import (
	"time"

	"github.com/google/uuid"
)

type BudgetPeriod string

const (
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

func (p BudgetPeriod) Valid() bool {
	switch p {
	case BudgetPeriodWeekly, BudgetPeriodMonthly, BudgetPeriodYearly:
		return true
	}
	return false
}

type RiskTier string

const (
	RiskSafe    RiskTier = "safe"
	RiskWarning RiskTier = "warning"
	RiskDanger  RiskTier = "danger"
)

type Budget struct {
	ID         uuid.UUID    `db:"id"`
	UserID     uuid.UUID    `db:"user_id"`
	CategoryID *uuid.UUID   `db:"category_id"`
	Name       string       `db:"name"`
	Amount     float64      `db:"amount"`
	Spent      float64      `db:"spent"`
	Period     BudgetPeriod `db:"period"`
	StartDate  time.Time    `db:"start_date"`
	EndDate    time.Time    `db:"end_date"`
	IsActive   bool         `db:"is_active"`
	CreatedAt  time.Time    `db:"created_at"`
	UpdatedAt  time.Time    `db:"updated_at"`
}

func (b *Budget) Remaining() float64 {
	if r := b.Amount - b.Spent; r > 0 {
		return r
	}
	return 0
}

func (b *Budget) PercentageUsed() float64 {
	if b.Amount <= 0 {
		return 0
	}
	return b.Spent / b.Amount * 100
}

func (b *Budget) RiskTier() RiskTier {
	return RiskTierFor(b.PercentageUsed())
}

func RiskTierFor(percentageUsed float64) RiskTier {
	switch {
	case percentageUsed >= 90:
		return RiskDanger
	case percentageUsed >= 75:
		return RiskWarning
	default:
		return RiskSafe
	}
}
