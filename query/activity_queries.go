package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
)

// ActivityFeedQuery lists the session activity trail, newest first.
type ActivityFeedQuery struct {
	repo types.ActivityRepository
}

// NewActivityFeedQuery constructs the feed query helper.
func NewActivityFeedQuery(repo types.ActivityRepository) *ActivityFeedQuery {
	return &ActivityFeedQuery{repo: repo}
}

var _ gocommand.Querier[types.ActivityFilter, []types.ActivityRecord] = (*ActivityFeedQuery)(nil)

// Query fetches activity records via the injected repository.
func (q *ActivityFeedQuery) Query(ctx context.Context, filter types.ActivityFilter) ([]types.ActivityRecord, error) {
	if q.repo == nil {
		return nil, types.ErrMissingActivityRepository
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return q.repo.ListActivity(ctx, filter)
}

// ActivityStatsInput requests per-verb counts.
type ActivityStatsInput struct{}

// Type implements gocommand.Message.
func (ActivityStatsInput) Type() string {
	return "query.activity.stats"
}

// Validate implements gocommand.Message.
func (ActivityStatsInput) Validate() error {
	return nil
}

// ActivityStatsQuery aggregates activity counts per verb.
type ActivityStatsQuery struct {
	repo types.ActivityRepository
}

// NewActivityStatsQuery constructs the stats helper.
func NewActivityStatsQuery(repo types.ActivityRepository) *ActivityStatsQuery {
	return &ActivityStatsQuery{repo: repo}
}

var _ gocommand.Querier[ActivityStatsInput, types.ActivityStats] = (*ActivityStatsQuery)(nil)

// Query returns aggregate counts.
func (q *ActivityStatsQuery) Query(ctx context.Context, _ ActivityStatsInput) (types.ActivityStats, error) {
	if q.repo == nil {
		return types.ActivityStats{}, types.ErrMissingActivityRepository
	}
	return q.repo.ActivityStats(ctx)
}
