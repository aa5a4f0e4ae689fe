// Package mock provides mock implementations of database interfaces for testing.
package mock

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kozaktomas/namevibe/internal/database"
)

// MockDataset is an in-memory implementation of database.DatasetWriter
type MockDataset struct {
	mu         sync.RWMutex
	names      map[int64]*database.NameRecord
	companions []database.CompanionRecord
	nextID     int64

	// Error injection
	GetNameError       error
	GetByIdentError    error
	FindNamesError     error
	GetCompanionsError error
	UpsertError        error

	// Call counters
	FindNamesCalls     int
	GetCompanionsCalls int
	LastCompanionQuery string
}

// NewMockDataset creates a new empty mock dataset
func NewMockDataset() *MockDataset {
	return &MockDataset{
		names:  make(map[int64]*database.NameRecord),
		nextID: 1,
	}
}

// AddName adds a name to the mock store, assigning an ID when zero, and returns the ID
func (m *MockDataset) AddName(n database.NameRecord) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n.ID == 0 {
		n.ID = m.nextID
	}
	if n.ID >= m.nextID {
		m.nextID = n.ID + 1
	}
	m.names[n.ID] = &n
	return n.ID
}

// AddCompanion adds a companion to the mock store
func (m *MockDataset) AddCompanion(c database.CompanionRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == 0 {
		c.ID = int64(len(m.companions) + 1)
	}
	m.companions = append(m.companions, c)
}

// GetName retrieves a name by ID
func (m *MockDataset) GetName(ctx context.Context, id int64) (*database.NameRecord, error) {
	if m.GetNameError != nil {
		return nil, m.GetNameError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	n, ok := m.names[id]
	if !ok {
		return nil, nil
	}
	cp := *n
	return &cp, nil
}

// GetNameByIdentifier retrieves a name by exact identifier
func (m *MockDataset) GetNameByIdentifier(ctx context.Context, identifier string) (*database.NameRecord, error) {
	if m.GetByIdentError != nil {
		return nil, m.GetByIdentError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, n := range m.names {
		if n.Identifier == identifier {
			cp := *n
			return &cp, nil
		}
	}
	return nil, nil
}

// FindNames returns names matching the filter, ordered by ID
func (m *MockDataset) FindNames(ctx context.Context, filter database.NameFilter) ([]database.NameRecord, error) {
	m.mu.Lock()
	m.FindNamesCalls++
	m.mu.Unlock()
	if m.FindNamesError != nil {
		return nil, m.FindNamesError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []database.NameRecord
	for _, n := range m.names {
		if n.HasVibe(filter.Vibe) && n.MatchesGender(filter.Gender) {
			result = append(result, *n)
		}
	}
	slices.SortFunc(result, func(a, b database.NameRecord) int { return cmp.Compare(a.ID, b.ID) })
	return result, nil
}

// GetCompanions returns companions with the exact identifier
func (m *MockDataset) GetCompanions(ctx context.Context, baseIdentifier string) ([]database.CompanionRecord, error) {
	m.mu.Lock()
	m.GetCompanionsCalls++
	m.LastCompanionQuery = baseIdentifier
	m.mu.Unlock()
	if m.GetCompanionsError != nil {
		return nil, m.GetCompanionsError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []database.CompanionRecord
	for _, c := range m.companions {
		if c.Identifier == baseIdentifier {
			result = append(result, c)
		}
	}
	return result, nil
}

// UpsertName inserts or replaces a name keyed by identifier
func (m *MockDataset) UpsertName(ctx context.Context, name database.NameRecord) (int64, error) {
	if m.UpsertError != nil {
		return 0, m.UpsertError
	}
	if existing, _ := m.GetNameByIdentifier(ctx, name.Identifier); existing != nil {
		name.ID = existing.ID
	} else {
		name.ID = 0
	}
	return m.AddName(name), nil
}

// UpsertCompanion inserts or replaces a companion keyed by identifier and name
func (m *MockDataset) UpsertCompanion(ctx context.Context, companion database.CompanionRecord) (int64, error) {
	if m.UpsertError != nil {
		return 0, m.UpsertError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.companions {
		if c.Identifier == companion.Identifier && c.Name == companion.Name {
			companion.ID = c.ID
			m.companions[i] = companion
			return c.ID, nil
		}
	}
	companion.ID = int64(len(m.companions) + 1)
	m.companions = append(m.companions, companion)
	return companion.ID, nil
}

// MockRateEvents is an in-memory implementation of database.RateEventStore.
// RecordIfUnder holds a single mutex across count and insert, so it is strictly atomic.
type MockRateEvents struct {
	mu     sync.Mutex
	events []database.RateEvent

	// Error injection
	RecordError error
}

// NewMockRateEvents creates an empty rate event log
func NewMockRateEvents() *MockRateEvents {
	return &MockRateEvents{}
}

// RecordIfUnder counts and conditionally appends an event
func (m *MockRateEvents) RecordIfUnder(ctx context.Context, caller string, at, since time.Time, limit int) (bool, int, error) {
	if m.RecordError != nil {
		return false, 0, m.RecordError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, e := range m.events {
		if e.Caller == caller && !e.CreatedAt.Before(since) {
			count++
		}
	}
	if count >= limit {
		return false, count, nil
	}
	m.events = append(m.events, database.RateEvent{ID: uuid.New(), Caller: caller, CreatedAt: at})
	return true, count + 1, nil
}

// Events returns a copy of all recorded events
func (m *MockRateEvents) Events() []database.RateEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.events)
}

// Count returns the number of recorded events for a caller
func (m *MockRateEvents) Count(caller string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.events {
		if e.Caller == caller {
			n++
		}
	}
	return n
}
