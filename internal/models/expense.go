package models

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

type Expense struct {
	ID          uuid.UUID `db:"id"`
	UserID      uuid.UUID `db:"user_id"`
	Amount      float64   `db:"amount"`
	Description string    `db:"description"`
	Category    string    `db:"category"`
	Date        time.Time `db:"date"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// ExpenseFilter narrows an expense listing. Zero values mean no filter.
type ExpenseFilter struct {
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
	Offset    uint64
	Limit     uint64
}
