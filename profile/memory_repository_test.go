package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func TestMemoryRepository_GetReturnsSnapshot(t *testing.T) {
	repo, err := NewMemoryRepository(DefaultProfile(), nil)
	require.NoError(t, err)

	first, err := repo.GetProfile(context.Background())
	require.NoError(t, err)
	first.Links[0].Title = "mutated"
	first.Name = "mutated"

	second, err := repo.GetProfile(context.Background())
	require.NoError(t, err)
	require.Equal(t, DefaultProfile().Links[0].Title, second.Links[0].Title)
	require.Equal(t, DefaultProfile().Name, second.Name)
}

func TestMemoryRepository_UpdateAppliesAndStamps(t *testing.T) {
	now := time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)
	repo, err := NewMemoryRepository(DefaultProfile(), fixedClock{t: now})
	require.NoError(t, err)

	updated, err := repo.UpdateProfile(context.Background(), func(p *types.Profile) error {
		p.Theme = types.ThemeDark
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, types.ThemeDark, updated.Theme)
	require.Equal(t, now, updated.UpdatedAt)
}

func TestMemoryRepository_FailedUpdateLeavesRecord(t *testing.T) {
	repo, err := NewMemoryRepository(DefaultProfile(), nil)
	require.NoError(t, err)
	before, err := repo.GetProfile(context.Background())
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = repo.UpdateProfile(context.Background(), func(p *types.Profile) error {
		p.Bio = "half written"
		p.Links = p.Links[:1]
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = repo.UpdateProfile(context.Background(), func(p *types.Profile) error {
		p.Bio = "duplicate ids"
		p.Links = []types.LinkItem{{ID: "same"}, {ID: "same"}}
		return nil
	})
	require.True(t, types.IsValidation(err))

	after, err := repo.GetProfile(context.Background())
	require.NoError(t, err)
	require.Equal(t, before.Bio, after.Bio)
	require.Equal(t, before.Links, after.Links)
}

func TestMemoryRepository_RejectsInvalidSeed(t *testing.T) {
	seed := DefaultProfile()
	seed.Theme = "neon"
	_, err := NewMemoryRepository(seed, nil)
	require.True(t, types.IsValidation(err))
}

func TestTimestampLinkIDs_UniqueAcrossBatches(t *testing.T) {
	gen := NewTimestampLinkIDs()
	at := time.UnixMilli(1_700_000_000_000)

	seen := map[string]struct{}{}
	for batch := 0; batch < 5; batch++ {
		for i := 0; i < 4; i++ {
			id, err := gen.LinkID(at, i)
			require.NoError(t, err)
			_, dup := seen[id]
			require.False(t, dup, "duplicate id %s", id)
			seen[id] = struct{}{}
		}
	}
	require.Len(t, seen, 20)

	first, err := NewTimestampLinkIDs().LinkID(at, 2)
	require.NoError(t, err)
	require.Equal(t, "1700000000002", first)
}
