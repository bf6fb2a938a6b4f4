package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
)

// ProfileQueryInput requests the current profile snapshot.
type ProfileQueryInput struct{}

// Type implements gocommand.Message.
func (ProfileQueryInput) Type() string {
	return "query.profile.get"
}

// Validate implements gocommand.Message.
func (ProfileQueryInput) Validate() error {
	return nil
}

// ProfileQuery fetches the profile record.
type ProfileQuery struct {
	repo types.ProfileRepository
}

// NewProfileQuery constructs the profile query helper.
func NewProfileQuery(repo types.ProfileRepository) *ProfileQuery {
	return &ProfileQuery{repo: repo}
}

var _ gocommand.Querier[ProfileQueryInput, *types.Profile] = (*ProfileQuery)(nil)

// Query returns a snapshot the caller may mutate freely.
func (q *ProfileQuery) Query(ctx context.Context, _ ProfileQueryInput) (*types.Profile, error) {
	if q.repo == nil {
		return nil, types.ErrMissingProfileRepository
	}
	return q.repo.GetProfile(ctx)
}
