package database

import (
	"context"
	"time"
)

// NameReader provides read-only access to name records
type NameReader interface {
	// GetName retrieves a name by its stable ID, returns nil if not found
	GetName(ctx context.Context, id int64) (*NameRecord, error)
	// GetNameByIdentifier retrieves a name by its exact identifier, returns nil if not found
	GetNameByIdentifier(ctx context.Context, identifier string) (*NameRecord, error)
	// FindNames returns all names tagged with filter.Vibe that match filter.Gender
	// (exact gender category for M/F, unisex flag for U)
	FindNames(ctx context.Context, filter NameFilter) ([]NameRecord, error)
}

// CompanionReader provides read-only access to companion (namesake) records
type CompanionReader interface {
	// GetCompanions returns all companions whose identifier equals the given base identity
	GetCompanions(ctx context.Context, baseIdentifier string) ([]CompanionRecord, error)
}

// DatasetReader is the reference dataset consumed by the recommendation engine
type DatasetReader interface {
	NameReader
	CompanionReader
}

// DatasetWriter loads reference data. Only the seed command writes names and companions.
type DatasetWriter interface {
	DatasetReader

	// UpsertName inserts or updates a name keyed by identifier and returns its ID
	UpsertName(ctx context.Context, name NameRecord) (int64, error)
	// UpsertCompanion inserts or updates a companion keyed by identifier and name and returns its ID
	UpsertCompanion(ctx context.Context, companion CompanionRecord) (int64, error)
}

// RateEventStore is the append-only admission log.
type RateEventStore interface {
	// RecordIfUnder counts caller's events with timestamp >= since and, when the count
	// is below limit, appends an event at `at`. It returns whether the event was recorded
	// and the number of events in the window afterwards. Implementations must make the
	// count and the insert atomic per caller.
	RecordIfUnder(ctx context.Context, caller string, at, since time.Time, limit int) (admitted bool, count int, err error)
}
