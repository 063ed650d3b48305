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

var goalColumns = []string{
	"id", "user_id", "title", "description", "target_amount", "current_amount",
	"target_date", "is_achieved", "created_at", "updated_at",
}

type GoalRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewGoalRepository(db *pgxpool.Pool, logger *zap.Logger) *GoalRepository {
	return &GoalRepository{
		db:     db,
		logger: logger,
	}
}

func (r *GoalRepository) Create(ctx context.Context, g *models.Goal) error {
	query := psql.Insert("goals").
		Columns(goalColumns...).
		Values(g.ID, g.UserID, g.Title, g.Description, g.TargetAmount, g.CurrentAmount,
			g.TargetDate, g.IsAchieved, g.CreatedAt, g.UpdatedAt)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return mapError(err)
}

func (r *GoalRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Goal, error) {
	return r.getOne(ctx, r.db, userID, id, false)
}

// List orders unachieved goals first, then by target date. A nil achieved
// returns both.
func (r *GoalRepository) List(ctx context.Context, userID uuid.UUID, achieved *bool) ([]*models.Goal, error) {
	query := psql.Select(goalColumns...).
		From("goals").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("is_achieved", "target_date", "created_at", "id")
	if achieved != nil {
		query = query.Where(squirrel.Eq{"is_achieved": *achieved})
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

	goals := []*models.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}

	return goals, rows.Err()
}

// Modify loads the goal under a row lock, applies fn and writes the result
// back in the same transaction. An error from fn aborts without writing.
func (r *GoalRepository) Modify(ctx context.Context, userID, id uuid.UUID, fn func(g *models.Goal) error) (*models.Goal, error) {
	var updated *models.Goal
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		g, err := r.getOne(ctx, tx, userID, id, true)
		if err != nil {
			return err
		}
		if err := fn(g); err != nil {
			return err
		}

		query := psql.Update("goals").
			Set("title", g.Title).
			Set("description", g.Description).
			Set("target_amount", g.TargetAmount).
			Set("current_amount", g.CurrentAmount).
			Set("target_date", g.TargetDate).
			Set("is_achieved", g.IsAchieved).
			Set("updated_at", g.UpdatedAt).
			Where(squirrel.Eq{"id": g.ID, "user_id": userID}).
			Suffix(returning(goalColumns))

		sql, args, err := query.ToSql()
		if err != nil {
			return err
		}
		updated, err = scanGoal(tx.QueryRow(ctx, sql, args...))
		return mapError(err)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *GoalRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return execAffecting(ctx, r.db, psql.Delete("goals").Where(squirrel.Eq{"id": id, "user_id": userID}))
}

func (r *GoalRepository) CountUnachieved(ctx context.Context, userID uuid.UUID) (int, error) {
	query := psql.Select("COUNT(*)").
		From("goals").
		Where(squirrel.Eq{"user_id": userID, "is_achieved": false})
	return queryCount(ctx, r.db, query)
}

func (r *GoalRepository) getOne(ctx context.Context, q querier, userID, id uuid.UUID, forUpdate bool) (*models.Goal, error) {
	query := psql.Select(goalColumns...).
		From("goals").
		Where(squirrel.Eq{"id": id, "user_id": userID})
	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	g, err := scanGoal(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err)
	}
	return g, nil
}

func scanGoal(row pgx.Row) (*models.Goal, error) {
	var g models.Goal
	err := row.Scan(
		&g.ID, &g.UserID, &g.Title, &g.Description, &g.TargetAmount, &g.CurrentAmount,
		&g.TargetDate, &g.IsAchieved, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}
