package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kozaktomas/namevibe/internal/database"
)

// DatasetRepository provides PostgreSQL-backed access to names and companions
type DatasetRepository struct {
	pool *Pool
}

// NewDatasetRepository creates a new PostgreSQL dataset repository
func NewDatasetRepository(pool *Pool) *DatasetRepository {
	return &DatasetRepository{pool: pool}
}

// GetName retrieves a name by ID, returns nil if not found
func (r *DatasetRepository) GetName(ctx context.Context, id int64) (*database.NameRecord, error) {
	query := "SELECT " + database.NameColumns + " FROM names WHERE id = $1"
	n, err := database.ScanName(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get name %d: %w", id, err)
	}
	return n, nil
}

// GetNameByIdentifier retrieves a name by exact identifier, returns nil if not found
func (r *DatasetRepository) GetNameByIdentifier(ctx context.Context, identifier string) (*database.NameRecord, error) {
	query := "SELECT " + database.NameColumns + " FROM names WHERE identifier = $1"
	n, err := database.ScanName(r.pool.QueryRow(ctx, query, identifier))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get name by identifier: %w", err)
	}
	return n, nil
}

// FindNames returns names whose vibe membership string contains filter.Vibe and that
// match the gender predicate: exact category for M/F, the unisex flag for U.
func (r *DatasetRepository) FindNames(ctx context.Context, filter database.NameFilter) ([]database.NameRecord, error) {
	args := []any{filter.Vibe}
	genderClause := "unisex"
	if filter.Gender != database.GenderUnisex {
		genderClause = "gender = $2"
		args = append(args, string(filter.Gender))
	}

	query := `
		SELECT ` + database.NameColumns + `
		FROM names
		WHERE $1 = ANY(string_to_array(replace(lower(vibe_tags), ' ', ''), ','))
		  AND ` + genderClause + `
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find names: %w", err)
	}
	defer rows.Close()

	var names []database.NameRecord
	for rows.Next() {
		n, err := database.ScanName(rows)
		if err != nil {
			return nil, fmt.Errorf("scan name: %w", err)
		}
		names = append(names, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate names: %w", err)
	}
	return names, nil
}

// UpsertName inserts or updates a name keyed by identifier
func (r *DatasetRepository) UpsertName(ctx context.Context, n database.NameRecord) (int64, error) {
	query := `
		INSERT INTO names (identifier, gender, unisex, vibe_tags, hangul, romanized, meaning)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (identifier) DO UPDATE SET
			gender = EXCLUDED.gender,
			unisex = EXCLUDED.unisex,
			vibe_tags = EXCLUDED.vibe_tags,
			hangul = EXCLUDED.hangul,
			romanized = EXCLUDED.romanized,
			meaning = EXCLUDED.meaning
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		n.Identifier, string(n.Gender), n.Unisex, n.VibeTags, n.Hangul, n.Romanized, n.Meaning,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert name %s: %w", n.Identifier, err)
	}
	return id, nil
}
