package repository

import (
	"context"
	"time"

	"spendio/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var expenseColumns = []string{"id", "user_id", "amount", "description", "category", "date", "created_at", "updated_at"}

type ExpenseRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewExpenseRepository(db *pgxpool.Pool, logger *zap.Logger) *ExpenseRepository {
	return &ExpenseRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *models.Expense) error {
	query := psql.Insert("expenses").
		Columns(expenseColumns...).
		Values(e.ID, e.UserID, e.Amount, e.Description, e.Category, e.Date, e.CreatedAt, e.UpdatedAt)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return mapError(err)
}

func (r *ExpenseRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Expense, error) {
	query := psql.Select(expenseColumns...).
		From("expenses").
		Where(squirrel.Eq{"id": id, "user_id": userID})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	e, err := scanExpense(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err)
	}
	return e, nil
}

// List returns the tenant's expenses newest first. A zero Limit returns
// every matching row.
func (r *ExpenseRepository) List(ctx context.Context, userID uuid.UUID, filter models.ExpenseFilter) ([]*models.Expense, error) {
	query := psql.Select(expenseColumns...).
		From("expenses").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("date DESC", "created_at DESC", "id")

	if filter.Category != "" {
		query = query.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.StartDate != nil {
		query = query.Where(squirrel.GtOrEq{"date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		query = query.Where(squirrel.LtOrEq{"date": *filter.EndDate})
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
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

	expenses := []*models.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

func (r *ExpenseRepository) Update(ctx context.Context, e *models.Expense) (*models.Expense, error) {
	query := psql.Update("expenses").
		Set("amount", e.Amount).
		Set("description", e.Description).
		Set("category", e.Category).
		Set("date", e.Date).
		Set("updated_at", e.UpdatedAt).
		Where(squirrel.Eq{"id": e.ID, "user_id": e.UserID}).
		Suffix(returning(expenseColumns))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	updated, err := scanExpense(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return execAffecting(ctx, r.db, psql.Delete("expenses").Where(squirrel.Eq{"id": id, "user_id": userID}))
}

// Totals sums and counts the tenant's expenses dated in [since, until).
// A nil bound leaves that side open.
func (r *ExpenseRepository) Totals(ctx context.Context, userID uuid.UUID, since, until *time.Time) (float64, int, error) {
	query := psql.Select("COALESCE(SUM(amount), 0)::float8", "COUNT(*)").
		From("expenses").
		Where(squirrel.Eq{"user_id": userID})
	if since != nil {
		query = query.Where(squirrel.GtOrEq{"date": *since})
	}
	if until != nil {
		query = query.Where(squirrel.Lt{"date": *until})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, 0, err
	}

	var (
		total float64
		count int
	)
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total, &count); err != nil {
		return 0, 0, err
	}
	return total, count, nil
}

func scanExpense(row pgx.Row) (*models.Expense, error) {
	var e models.Expense
	err := row.Scan(&e.ID, &e.UserID, &e.Amount, &e.Description, &e.Category, &e.Date, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
