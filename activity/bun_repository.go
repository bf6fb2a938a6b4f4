package activity

import (
	"context"
	"errors"

	"github.com/goliatone/go-masker"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
)

// RepositoryConfig wires the Bun-backed activity repository.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*LogEntry]
	Clock      types.Clock
	IDGen      types.IDGenerator
	Masker     *masker.Masker
}

type activityStore interface {
	repository.Repository[*LogEntry]
}

// Repository persists activity logs next to the SQL profile store.
type Repository struct {
	activityStore
	db    *bun.DB
	clock types.Clock
	idGen types.IDGenerator
	mask  *masker.Masker
}

// NewRepository constructs a repository that implements both ActivitySink
// and ActivityRepository interfaces.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("activity: db or repository required")
	}
	repo := cfg.Repository
	if repo == nil {
		repo = repository.NewRepository(cfg.DB, repository.ModelHandlers[*LogEntry]{
			NewRecord: func() *LogEntry { return &LogEntry{} },
			GetID: func(entry *LogEntry) uuid.UUID {
				if entry == nil {
					return uuid.Nil
				}
				return entry.ID
			},
			SetID: func(entry *LogEntry, id uuid.UUID) {
				if entry != nil {
					entry.ID = id
				}
			},
		})
	}
	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}
	idGen := cfg.IDGen
	if idGen == nil {
		idGen = types.UUIDGenerator{}
	}

	return &Repository{
		activityStore: repo,
		db:            cfg.DB,
		clock:         clock,
		idGen:         idGen,
		mask:          cfg.Masker,
	}, nil
}

var (
	_ repository.Repository[*LogEntry] = (*Repository)(nil)
	_ types.ActivitySink               = (*Repository)(nil)
	_ types.ActivityRepository         = (*Repository)(nil)
)

// EnsureSchema creates the activity table when missing.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*LogEntry)(nil)).IfNotExists().Exec(ctx)
	return err
}

// Log persists a sanitized activity record.
func (r *Repository) Log(ctx context.Context, record types.ActivityRecord) error {
	entry := toLogEntry(SanitizeRecord(r.mask, record))
	if entry.ID == uuid.Nil {
		entry.ID = r.idGen.UUID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.clock.Now()
	}
	_, err := r.Create(ctx, entry)
	return err
}

// ListActivity returns the newest matching records first.
func (r *Repository) ListActivity(ctx context.Context, filter types.ActivityFilter) ([]types.ActivityRecord, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	limit := normalizeLimit(filter.Limit)
	criteria := []repository.SelectCriteria{
		func(q *bun.SelectQuery) *bun.SelectQuery {
			q = q.OrderExpr("created_at DESC").Limit(limit)
			if len(filter.Verbs) > 0 {
				q = q.Where("verb IN (?)", bun.In(filter.Verbs))
			}
			return q
		},
	}

	rows, _, err := r.List(ctx, criteria...)
	if err != nil {
		return nil, err
	}
	records := make([]types.ActivityRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, toActivityRecord(row))
	}
	return records, nil
}

// ActivityStats aggregates counts grouped by verb.
func (r *Repository) ActivityStats(ctx context.Context) (types.ActivityStats, error) {
	stats := types.ActivityStats{
		ByVerb: make(map[string]int),
	}
	if r.db == nil {
		return stats, errors.New("activity: stats requires bun DB")
	}
	type row struct {
		Verb  string `bun:"verb"`
		Total int    `bun:"total"`
	}
	var rows []row
	err := r.db.NewSelect().
		Model((*LogEntry)(nil)).
		ColumnExpr("COUNT(*) AS total").
		ColumnExpr("verb").
		Group("verb").
		Scan(ctx, &rows)
	if err != nil {
		return stats, err
	}
	for _, rec := range rows {
		stats.ByVerb[rec.Verb] = rec.Total
		stats.Total += rec.Total
	}
	return stats, nil
}

func toLogEntry(record types.ActivityRecord) *LogEntry {
	return &LogEntry{
		ID:         record.ID,
		Verb:       record.Verb,
		ObjectType: record.ObjectType,
		ObjectID:   record.ObjectID,
		Data:       cloneMap(record.Data),
		CreatedAt:  record.OccurredAt,
	}
}

func toActivityRecord(entry *LogEntry) types.ActivityRecord {
	if entry == nil {
		return types.ActivityRecord{}
	}
	return types.ActivityRecord{
		ID:         entry.ID,
		Verb:       entry.Verb,
		ObjectType: entry.ObjectType,
		ObjectID:   entry.ObjectID,
		Data:       cloneMap(entry.Data),
		OccurredAt: entry.CreatedAt,
	}
}
