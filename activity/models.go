package activity

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// LogEntry models the persisted row in linkbio_activity.
type LogEntry struct {
	bun.BaseModel `bun:"table:linkbio_activity"`

	ID         uuid.UUID      `bun:",pk,type:uuid"`
	Verb       string         `bun:"verb"`
	ObjectType string         `bun:"object_type"`
	ObjectID   string         `bun:"object_id"`
	Data       map[string]any `bun:"data,type:json"`
	CreatedAt  time.Time      `bun:"created_at"`
}
