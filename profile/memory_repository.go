package profile

import (
	"context"
	"sync"

	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
)

// MemoryRepository keeps the profile in process memory. It is the default
// store: the record lives exactly as long as the session.
type MemoryRepository struct {
	mu      sync.RWMutex
	profile *types.Profile
	clock   types.Clock
}

// NewMemoryRepository seeds the repository with the supplied profile.
func NewMemoryRepository(seed types.Profile, clock types.Clock) (*MemoryRepository, error) {
	if err := types.ValidateProfile(seed); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = types.SystemClock{}
	}
	record := seed.Clone()
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = clock.Now()
	}
	return &MemoryRepository{profile: &record, clock: clock}, nil
}

var _ types.ProfileRepository = (*MemoryRepository)(nil)

// GetProfile returns a snapshot of the stored profile.
func (r *MemoryRepository) GetProfile(context.Context) (*types.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.profile == nil {
		return nil, types.ErrProfileNotFound
	}
	snapshot := r.profile.Clone()
	return &snapshot, nil
}

// UpdateProfile mutates a private copy and swaps it in only when fn and the
// invariant checks succeed.
func (r *MemoryRepository) UpdateProfile(ctx context.Context, fn func(*types.Profile) error) (*types.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.profile == nil {
		return nil, types.ErrProfileNotFound
	}
	draft := r.profile.Clone()
	if err := fn(&draft); err != nil {
		return nil, err
	}
	draft.ID = r.profile.ID
	if err := types.ValidateProfile(draft); err != nil {
		return nil, err
	}
	draft.UpdatedAt = r.clock.Now()
	r.profile = &draft
	snapshot := draft.Clone()
	return &snapshot, nil
}
