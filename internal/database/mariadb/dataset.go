package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kozaktomas/namevibe/internal/database"
)

// GetName retrieves a name by ID, returns nil if not found
func (p *Pool) GetName(ctx context.Context, id int64) (*database.NameRecord, error) {
	n, err := database.ScanName(p.db.QueryRowContext(ctx, "SELECT "+database.NameColumns+" FROM names WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get name %d: %w", id, err)
	}
	return n, nil
}

// GetNameByIdentifier retrieves a name by exact identifier, returns nil if not found
func (p *Pool) GetNameByIdentifier(ctx context.Context, identifier string) (*database.NameRecord, error) {
	n, err := database.ScanName(p.db.QueryRowContext(ctx, "SELECT "+database.NameColumns+" FROM names WHERE identifier = ?", identifier))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get name by identifier: %w", err)
	}
	return n, nil
}

// FindNames returns names tagged with filter.Vibe matching the gender predicate.
// FIND_IN_SET gives exact membership over the comma-separated vibe_tags column.
func (p *Pool) FindNames(ctx context.Context, filter database.NameFilter) ([]database.NameRecord, error) {
	query := "SELECT " + database.NameColumns + " FROM names WHERE FIND_IN_SET(?, REPLACE(LOWER(vibe_tags), ' ', '')) > 0"
	args := []any{filter.Vibe}
	if filter.Gender == database.GenderUnisex {
		query += " AND unisex = 1"
	} else {
		query += " AND gender = ?"
		args = append(args, string(filter.Gender))
	}
	query += " ORDER BY id"

	rows, err := p.db.QueryContext(ctx, query, args...)
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

// GetCompanions returns all companions whose identifier equals the base identity
func (p *Pool) GetCompanions(ctx context.Context, baseIdentifier string) ([]database.CompanionRecord, error) {
	rows, err := p.db.QueryContext(ctx,
		"SELECT id, identifier, name, category, image_url FROM companions WHERE identifier = ? ORDER BY id",
		baseIdentifier,
	)
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
