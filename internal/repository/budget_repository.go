package repository

import (
	"context"

	"spendio/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var budgetColumns = []string{
	"id", "user_id", "category_id", "name", "amount", "spent", "period",
	"start_date", "end_date", "is_active", "created_at", "updated_at",
}

type BudgetRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewBudgetRepository(db *pgxpool.Pool, logger *zap.Logger) *BudgetRepository {
	return &BudgetRepository{
		db:     db,
		logger: logger,
	}
}

func (r *BudgetRepository) Create(ctx context.Context, b *models.Budget) error {
	query := psql.Insert("budgets").
		Columns(budgetColumns...).
		Values(b.ID, b.UserID, b.CategoryID, b.Name, b.Amount, b.Spent, string(b.Period),
			b.StartDate, b.EndDate, b.IsActive, b.CreatedAt, b.UpdatedAt)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return mapError(err)
}

func (r *BudgetRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Budget, error) {
	query := psql.Select(budgetColumns...).
		From("budgets").
		Where(squirrel.Eq{"id": id, "user_id": userID})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	b, err := scanBudget(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err)
	}
	return b, nil
}

// List returns the tenant's budgets newest first.
func (r *BudgetRepository) List(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]*models.Budget, error) {
	query := psql.Select(budgetColumns...).
		From("budgets").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC")
	if activeOnly {
		query = query.Where(squirrel.Eq{"is_active": true})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	budgets := []*models.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}

	return budgets, rows.Err()
}

// Update rewrites the editable fields, spent included. is_active only moves
// through ToggleActive.
func (r *BudgetRepository) Update(ctx context.Context, b *models.Budget) (*models.Budget, error) {
	query := psql.Update("budgets").
		Set("name", b.Name).
		Set("amount", b.Amount).
		Set("spent", b.Spent).
		Set("period", string(b.Period)).
		Set("start_date", b.StartDate).
		Set("end_date", b.EndDate).
		Set("category_id", b.CategoryID).
		Set("updated_at", b.UpdatedAt).
		Where(squirrel.Eq{"id": b.ID, "user_id": b.UserID}).
		Suffix(returning(budgetColumns))

	return r.updateReturning(ctx, query)
}

// ToggleActive flips is_active in a single statement so concurrent toggles
// serialise on the row lock.
func (r *BudgetRepository) ToggleActive(ctx context.Context, userID, id uuid.UUID) (*models.Budget, error) {
	query := psql.Update("budgets").
		Set("is_active", squirrel.Expr("NOT is_active")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		Suffix(returning(budgetColumns))

	return r.updateReturning(ctx, query)
}

func (r *BudgetRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return execAffecting(ctx, r.db, psql.Delete("budgets").Where(squirrel.Eq{"id": id, "user_id": userID}))
}

func (r *BudgetRepository) CountActive(ctx context.Context, userID uuid.UUID) (int, error) {
	query := psql.Select("COUNT(*)").
		From("budgets").
		Where(squirrel.Eq{"user_id": userID, "is_active": true})
	return queryCount(ctx, r.db, query)
}

func (r *BudgetRepository) updateReturning(ctx context.Context, query squirrel.UpdateBuilder) (*models.Budget, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	b, err := scanBudget(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err)
	}
	return b, nil
}

func scanBudget(row pgx.Row) (*models.Budget, error) {
	var (
		b      models.Budget
		period string
	)
	err := row.Scan(
		&b.ID, &b.UserID, &b.CategoryID, &b.Name, &b.Amount, &b.Spent, &period,
		&b.StartDate, &b.EndDate, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Period = models.BudgetPeriod(period)
	return &b, nil
}
