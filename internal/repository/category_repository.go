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

var categoryColumns = []string{"id", "user_id", "name", "description", "color", "icon", "is_default", "created_at"}

// CategoryRepository scopes every query to one tenant. A tenant sees its own
// rows plus the shared defaults and may only change its own rows.
type CategoryRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCategoryRepository(db *pgxpool.Pool, logger *zap.Logger) *CategoryRepository {
	return &CategoryRepository{
		db:     db,
		logger: logger,
	}
}

func visibleTo(userID uuid.UUID) squirrel.Sqlizer {
	return squirrel.Or{
		squirrel.Eq{"user_id": userID},
		squirrel.Eq{"is_default": true},
	}
}

func mutableBy(userID uuid.UUID) squirrel.Sqlizer {
	return squirrel.Eq{"user_id": userID, "is_default": false}
}

func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	query := psql.Insert("categories").
		Columns(categoryColumns...).
		Values(c.ID, c.Ownership.OwnerPtr(), c.Name, c.Description, c.Color, c.Icon, c.IsDefault(), c.CreatedAt)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return mapError(err)
}

// EnsureDefault inserts a shared category unless one with the same name
// already exists. It reports whether a row was inserted.
func (r *CategoryRepository) EnsureDefault(ctx context.Context, c *models.Category) (bool, error) {
	query := psql.Insert("categories").
		Columns(categoryColumns...).
		Values(c.ID, nil, c.Name, c.Description, c.Color, c.Icon, true, c.CreatedAt).
		Suffix("ON CONFLICT DO NOTHING")

	sql, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, mapError(err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *CategoryRepository) List(ctx context.Context, userID uuid.UUID, includeDefault bool) ([]*models.Category, error) {
	var scope squirrel.Sqlizer = squirrel.Eq{"user_id": userID}
	if includeDefault {
		scope = visibleTo(userID)
	}

	query := psql.Select(categoryColumns...).
		From("categories").
		Where(scope).
		OrderBy("is_default DESC", "name")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// GetVisible returns a category the tenant may reference.
func (r *CategoryRepository) GetVisible(ctx context.Context, userID, id uuid.UUID) (*models.Category, error) {
	query := psql.Select(categoryColumns...).
		From("categories").
		Where(squirrel.Eq{"id": id}).
		Where(visibleTo(userID))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	c, err := scanCategory(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

func (r *CategoryRepository) Update(ctx context.Context, userID uuid.UUID, c *models.Category) (*models.Category, error) {
	query := psql.Update("categories").
		Set("name", c.Name).
		Set("description", c.Description).
		Set("color", c.Color).
		Set("icon", c.Icon).
		Where(squirrel.Eq{"id": c.ID}).
		Where(mutableBy(userID)).
		Suffix(returning(categoryColumns))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	updated, err := scanCategory(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := psql.Delete("categories").
		Where(squirrel.Eq{"id": id}).
		Where(mutableBy(userID))

	return execAffecting(ctx, r.db, query)
}

// OwnedNameExists checks the tenant's own non-default categories, skipping
// the row identified by exclude when it is not uuid.Nil.
func (r *CategoryRepository) OwnedNameExists(ctx context.Context, userID uuid.UUID, name string, exclude uuid.UUID) (bool, error) {
	sub := psql.Select("1").
		From("categories").
		Where(mutableBy(userID)).
		Where(squirrel.Eq{"name": name})
	if exclude != uuid.Nil {
		sub = sub.Where(squirrel.NotEq{"id": exclude})
	}
	return r.exists(ctx, sub)
}

func (r *CategoryRepository) DefaultNameExists(ctx context.Context, name string) (bool, error) {
	sub := psql.Select("1").
		From("categories").
		Where(squirrel.Eq{"is_default": true, "name": name})
	return r.exists(ctx, sub)
}

func (r *CategoryRepository) CountVisible(ctx context.Context, userID uuid.UUID) (int, error) {
	return queryCount(ctx, r.db, psql.Select("COUNT(*)").From("categories").Where(visibleTo(userID)))
}

func (r *CategoryRepository) exists(ctx context.Context, sub squirrel.SelectBuilder) (bool, error) {
	query := sub.Prefix("SELECT EXISTS (").Suffix(")")

	sql, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanCategory(row pgx.Row) (*models.Category, error) {
	var (
		c         models.Category
		owner     *uuid.UUID
		isDefault bool
	)
	if err := row.Scan(&c.ID, &owner, &c.Name, &c.Description, &c.Color, &c.Icon, &isDefault, &c.CreatedAt); err != nil {
		return nil, err
	}
	if isDefault {
		c.Ownership = models.Shared()
	} else {
		c.Ownership = models.OwnershipFromPtr(owner)
	}
	return &c, nil
}
