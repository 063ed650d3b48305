package repository

import (
	"context"
	"strings"
	"time"

	"spendio/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var userColumns = []string{"id", "email", "password_hash", "name", "is_active", "created_at", "updated_at"}

type UserRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewUserRepository(db *pgxpool.Pool, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := psql.Insert("users").
		Columns(userColumns...).
		Values(user.ID, strings.ToLower(user.Email), user.PasswordHash, user.Name, user.IsActive, user.CreatedAt, user.UpdatedAt)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return mapError(err)
}

// GetByEmail matches case-insensitively.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := psql.Select(userColumns...).
		From("users").
		Where(squirrel.Expr("LOWER(email) = ?", strings.ToLower(email)))

	return r.getOne(ctx, query)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := psql.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id})

	return r.getOne(ctx, query)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string, updatedAt time.Time) error {
	query := psql.Update("users").
		Set("password_hash", passwordHash).
		Set("updated_at", updatedAt).
		Where(squirrel.Eq{"id": id})

	return execAffecting(ctx, r.db, query)
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	return queryCount(ctx, r.db, psql.Select("COUNT(*)").From("users"))
}

func (r *UserRepository) getOne(ctx context.Context, query squirrel.SelectBuilder) (*models.User, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err)
	}
	return user, nil
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
