package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RateEventRepository provides the PostgreSQL-backed admission log
type RateEventRepository struct {
	pool *Pool
}

// NewRateEventRepository creates a new PostgreSQL rate event repository
func NewRateEventRepository(pool *Pool) *RateEventRepository {
	return &RateEventRepository{pool: pool}
}

// RecordIfUnder counts the caller's events since `since` and inserts a new event at `at`
// when the count is below limit. A transaction-scoped advisory lock keyed by the caller
// serializes concurrent calls for the same caller, so two requests at limit-1 cannot both
// be admitted.
func (r *RateEventRepository) RecordIfUnder(ctx context.Context, caller string, at, since time.Time, limit int) (bool, int, error) {
	tx, err := r.pool.BeginTx(ctx, nil)
	if err != nil {
		return false, 0, err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", caller); err != nil {
		return false, 0, fmt.Errorf("lock caller: %w", err)
	}

	var count int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM rate_events WHERE caller = $1 AND created_at >= $2",
		caller, since,
	).Scan(&count)
	if err != nil {
		return false, 0, fmt.Errorf("count rate events: %w", err)
	}

	if count >= limit {
		if err := tx.Commit(); err != nil {
			return false, count, fmt.Errorf("commit rate check: %w", err)
		}
		return false, count, nil
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO rate_events (id, caller, created_at) VALUES ($1, $2, $3)",
		uuid.New(), caller, at,
	)
	if err != nil {
		return false, count, fmt.Errorf("insert rate event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, count, fmt.Errorf("commit rate event: %w", err)
	}
	return true, count + 1, nil
}
