package profile

import (
	"strconv"
	"sync"
	"time"

	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
)

// TimestampLinkIDs derives link ids from the creation time in milliseconds
// plus the batch index. Ids never repeat within the generator's lifetime: a
// candidate at or below the last issued value is bumped past it.
type TimestampLinkIDs struct {
	mu   sync.Mutex
	last int64
}

// NewTimestampLinkIDs returns a generator seeded at zero.
func NewTimestampLinkIDs() *TimestampLinkIDs {
	return &TimestampLinkIDs{}
}

var _ types.LinkIDGenerator = (*TimestampLinkIDs)(nil)

// LinkID implements types.LinkIDGenerator.
func (g *TimestampLinkIDs) LinkID(createdAt time.Time, index int) (string, error) {
	candidate := createdAt.UnixMilli() + int64(index)
	g.mu.Lock()
	defer g.mu.Unlock()
	if candidate <= g.last {
		candidate = g.last + 1
	}
	g.last = candidate
	return strconv.FormatInt(candidate, 10), nil
}
