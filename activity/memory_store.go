package activity

import (
	"context"
	"sync"

	"github.com/goliatone/go-masker"
	"github.com/google/uuid"
	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// MemoryConfig wires the in-memory store.
type MemoryConfig struct {
	Clock  types.Clock
	IDGen  types.IDGenerator
	Masker *masker.Masker
	// Capacity bounds the number of retained records; older entries are
	// evicted first. Zero keeps everything.
	Capacity int
}

// MemoryStore keeps the activity trail for the lifetime of the process.
type MemoryStore struct {
	mu       sync.RWMutex
	records  []types.ActivityRecord
	clock    types.Clock
	idGen    types.IDGenerator
	mask     *masker.Masker
	capacity int
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore(cfg MemoryConfig) *MemoryStore {
	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}
	idGen := cfg.IDGen
	if idGen == nil {
		idGen = types.UUIDGenerator{}
	}
	capacity := cfg.Capacity
	if capacity < 0 {
		capacity = 0
	}
	return &MemoryStore{
		clock:    clock,
		idGen:    idGen,
		mask:     cfg.Masker,
		capacity: capacity,
	}
}

var (
	_ types.ActivitySink       = (*MemoryStore)(nil)
	_ types.ActivityRepository = (*MemoryStore)(nil)
)

// Log appends a sanitized copy of the record.
func (s *MemoryStore) Log(_ context.Context, record types.ActivityRecord) error {
	record = SanitizeRecord(s.mask, record)
	if record.ID == uuid.Nil {
		record.ID = s.idGen.UUID()
	}
	if record.OccurredAt.IsZero() {
		record.OccurredAt = s.clock.Now()
	}
	record.Data = cloneMap(record.Data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	if s.capacity > 0 && len(s.records) > s.capacity {
		s.records = append([]types.ActivityRecord(nil), s.records[len(s.records)-s.capacity:]...)
	}
	return nil
}

// ListActivity returns the newest matching records first.
func (s *MemoryStore) ListActivity(_ context.Context, filter types.ActivityFilter) ([]types.ActivityRecord, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	limit := normalizeLimit(filter.Limit)
	verbs := verbSet(filter.Verbs)

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.ActivityRecord, 0, min(limit, len(s.records)))
	for idx := len(s.records) - 1; idx >= 0 && len(out) < limit; idx-- {
		record := s.records[idx]
		if len(verbs) > 0 {
			if _, ok := verbs[record.Verb]; !ok {
				continue
			}
		}
		record.Data = cloneMap(record.Data)
		out = append(out, record)
	}
	return out, nil
}

// ActivityStats counts records grouped by verb.
func (s *MemoryStore) ActivityStats(context.Context) (types.ActivityStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := types.ActivityStats{ByVerb: make(map[string]int)}
	for _, record := range s.records {
		stats.ByVerb[record.Verb]++
		stats.Total++
	}
	return stats, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

func verbSet(verbs []string) map[string]struct{} {
	if len(verbs) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(verbs))
	for _, verb := range verbs {
		set[verb] = struct{}{}
	}
	return set
}
