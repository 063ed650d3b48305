package repository

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// TokenRepository is the deny-list of revoked token ids. Rows only need to
// outlive the token they revoke.
type TokenRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTokenRepository(db *pgxpool.Pool, logger *zap.Logger) *TokenRepository {
	return &TokenRepository{
		db:     db,
		logger: logger,
	}
}

func (r *TokenRepository) Revoke(ctx context.Context, jti uuid.UUID, expiresAt time.Time) error {
	query := psql.Insert("revoked_tokens").
		Columns("jti", "expires_at").
		Values(jti, expiresAt).
		Suffix("ON CONFLICT (jti) DO NOTHING")

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *TokenRepository) IsRevoked(ctx context.Context, jti uuid.UUID) (bool, error) {
	query := psql.Select("1").
		Prefix("SELECT EXISTS (").
		From("revoked_tokens").
		Where(squirrel.Eq{"jti": jti}).
		Suffix(")")

	sql, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	var revoked bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&revoked); err != nil {
		return false, err
	}
	return revoked, nil
}

// PurgeExpired drops entries whose token has expired anyway.
func (r *TokenRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	query := psql.Delete("revoked_tokens").Where(squirrel.Lt{"expires_at": now})

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}

	if n := tag.RowsAffected(); n > 0 {
		r.logger.Debug("Purged revoked tokens", zap.Int64("count", n))
	}
	return tag.RowsAffected(), nil
}
