package service

import (
	"context"
	"time"

	"spendio/internal/models"

	"github.com/google/uuid"
)

// The stores below are implemented by internal/repository against Postgres
// and by internal/repository/memory for tests. Every tenant-owned method
// takes the caller's id and reports rows of other tenants as not found.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string, updatedAt time.Time) error
}

type RevocationStore interface {
	Revoke(ctx context.Context, jti uuid.UUID, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti uuid.UUID) (bool, error)
}

type ExpenseStore interface {
	Create(ctx context.Context, e *models.Expense) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Expense, error)
	List(ctx context.Context, userID uuid.UUID, filter models.ExpenseFilter) ([]*models.Expense, error)
	Update(ctx context.Context, e *models.Expense) (*models.Expense, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Totals(ctx context.Context, userID uuid.UUID, since, until *time.Time) (float64, int, error)
}

type CategoryStore interface {
	Create(ctx context.Context, c *models.Category) error
	EnsureDefault(ctx context.Context, c *models.Category) (bool, error)
	List(ctx context.Context, userID uuid.UUID, includeDefault bool) ([]*models.Category, error)
	GetVisible(ctx context.Context, userID, id uuid.UUID) (*models.Category, error)
	Update(ctx context.Context, userID uuid.UUID, c *models.Category) (*models.Category, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	OwnedNameExists(ctx context.Context, userID uuid.UUID, name string, exclude uuid.UUID) (bool, error)
	DefaultNameExists(ctx context.Context, name string) (bool, error)
	CountVisible(ctx context.Context, userID uuid.UUID) (int, error)
}

type BudgetStore interface {
	Create(ctx context.Context, b *models.Budget) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Budget, error)
	List(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]*models.Budget, error)
	Update(ctx context.Context, b *models.Budget) (*models.Budget, error)
	ToggleActive(ctx context.Context, userID, id uuid.UUID) (*models.Budget, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	CountActive(ctx context.Context, userID uuid.UUID) (int, error)
}

type GoalStore interface {
	Create(ctx context.Context, g *models.Goal) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Goal, error)
	List(ctx context.Context, userID uuid.UUID, achieved *bool) ([]*models.Goal, error)
	Modify(ctx context.Context, userID, id uuid.UUID, fn func(g *models.Goal) error) (*models.Goal, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	CountUnachieved(ctx context.Context, userID uuid.UUID) (int, error)
}
