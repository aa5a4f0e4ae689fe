package postgres

import (
	"context"
	"fmt"

	"github.com/kozaktomas/namevibe/internal/database"
)

// GetCompanions returns all companions whose identifier equals the base identity
func (r *DatasetRepository) GetCompanions(ctx context.Context, baseIdentifier string) ([]database.CompanionRecord, error) {
	query := `
		SELECT id, identifier, name, category, image_url
		FROM companions
		WHERE identifier = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, baseIdentifier)
	if err != nil {
		return nil, fmt.Errorf("get companions: %w", err)
	}
	defer rows.Close()

	var companions []database.CompanionRecord
	for rows.Next() {
		c, err := database.ScanCompanion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan companion: %w", err)
		}
		companions = append(companions, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate companions: %w", err)
	}
	return companions, nil
}

// UpsertCompanion inserts or updates a companion keyed by identifier and name
func (r *DatasetRepository) UpsertCompanion(ctx context.Context, c database.CompanionRecord) (int64, error) {
	query := `
		INSERT INTO companions (identifier, name, category, image_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (identifier, name) DO UPDATE SET
			category = EXCLUDED.category,
			image_url = EXCLUDED.image_url
		RETURNING id
	`

	var id int64
	if err := r.pool.QueryRow(ctx, query, c.Identifier, c.Name, c.Category, c.ImageURL).Scan(&id); err != nil {
		return 0, fmt.Errorf("upsert companion %s/%s: %w", c.Identifier, c.Name, err)
	}
	return id, nil
}
