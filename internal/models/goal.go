package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrGoalAchieved      = errors.New("goal is already achieved")
	ErrInsufficientFunds = errors.New("withdrawal exceeds the saved amount")
)

type Goal struct {
	ID            uuid.UUID `db:"id"`
	UserID        uuid.UUID `db:"user_id"`
	Title         string    `db:"title"`
	Description   *string   `db:"description"`
	TargetAmount  float64   `db:"target_amount"`
	CurrentAmount float64   `db:"current_amount"`
	TargetDate    time.Time `db:"target_date"`
	IsAchieved    bool      `db:"is_achieved"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (g *Goal) ProgressPercentage() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	return g.CurrentAmount / g.TargetAmount * 100
}

func (g *Goal) RemainingAmount() float64 {
	if r := g.TargetAmount - g.CurrentAmount; r > 0 {
		return r
	}
	return 0
}

// Deposit adds money to the goal. Reaching the target marks the goal
// achieved and clamps the saved amount to the target.
func (g *Goal) Deposit(amount float64) error {
	if g.IsAchieved {
		return ErrGoalAchieved
	}
	g.CurrentAmount += amount
	if g.CurrentAmount >= g.TargetAmount {
		g.CurrentAmount = g.TargetAmount
		g.IsAchieved = true
	}
	return nil
}

func (g *Goal) Withdraw(amount float64) error {
	if amount > g.CurrentAmount {
		return ErrInsufficientFunds
	}
	g.CurrentAmount -= amount
	if g.CurrentAmount < g.TargetAmount {
		g.IsAchieved = false
	}
	return nil
}

// SetTarget changes the target and re-derives the achieved flag.
func (g *Goal) SetTarget(target float64) {
	g.TargetAmount = target
	g.IsAchieved = g.CurrentAmount >= g.TargetAmount
}
