package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Tables lists every application table in dependency order.
var Tables = []string{"users", "categories", "expenses", "budgets", "goals", "revoked_tokens"}

// MaintenanceRepository backs the operator commands of the seed CLI.
type MaintenanceRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewMaintenanceRepository(db *pgxpool.Pool, logger *zap.Logger) *MaintenanceRepository {
	return &MaintenanceRepository{
		db:     db,
		logger: logger,
	}
}

// RowCounts returns the number of rows per table.
func (r *MaintenanceRepository) RowCounts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, len(Tables))
	for _, table := range Tables {
		n, err := queryCount(ctx, r.db, psql.Select("COUNT(*)").From(table))
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}

// Truncate removes every row from every application table.
func (r *MaintenanceRepository) Truncate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, "TRUNCATE "+strings.Join(Tables, ", ")+" CASCADE"); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}
	r.logger.Warn("All application tables truncated")
	return nil
}
