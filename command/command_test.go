package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
	"github.com/zazjoe90-oss/go-linkbio/profile"
)

func TestThemeUpdateCommand_ChangesOnlyTheme(t *testing.T) {
	for _, theme := range types.Themes() {
		t.Run(string(theme), func(t *testing.T) {
			repo := newRepo(t)
			before, err := repo.GetProfile(context.Background())
			require.NoError(t, err)

			cmd := NewThemeUpdateCommand(ProfileCommandConfig{Repository: repo})
			require.NoError(t, cmd.Execute(context.Background(), ThemeUpdateInput{Theme: string(theme)}))

			after, err := repo.GetProfile(context.Background())
			require.NoError(t, err)
			require.Equal(t, theme, after.Theme)

			expected := before.Clone()
			expected.Theme = theme
			expected.UpdatedAt = after.UpdatedAt
			require.Equal(t, expected, *after)
		})
	}
}

func TestThemeUpdateCommand_RejectsUnknownTheme(t *testing.T) {
	repo := newRepo(t)
	before, err := repo.GetProfile(context.Background())
	require.NoError(t, err)
	sink := &recordingActivitySink{}

	cmd := NewThemeUpdateCommand(ProfileCommandConfig{Repository: repo, Activity: sink})
	for _, raw := range []string{"neon", "", "  ", "Dark Mode"} {
		err := cmd.Execute(context.Background(), ThemeUpdateInput{Theme: raw})
		require.Error(t, err)
		require.True(t, types.IsValidation(err), raw)
	}

	after, err := repo.GetProfile(context.Background())
	require.NoError(t, err)
	require.Equal(t, *before, *after)
	require.Empty(t, sink.records)
}

func TestThemeUpdateCommand_NormalizesInput(t *testing.T) {
	repo := newRepo(t)
	var result types.Profile
	cmd := NewThemeUpdateCommand(ProfileCommandConfig{Repository: repo})
	require.NoError(t, cmd.Execute(context.Background(), ThemeUpdateInput{Theme: " Glass ", Result: &result}))
	require.Equal(t, types.ThemeGlass, result.Theme)
}

func TestNameUpdateCommand(t *testing.T) {
	repo := newRepo(t)
	cmd := NewNameUpdateCommand(ProfileCommandConfig{Repository: repo})

	err := cmd.Execute(context.Background(), NameUpdateInput{Name: "   "})
	require.True(t, types.IsValidation(err))

	var result types.Profile
	require.NoError(t, cmd.Execute(context.Background(), NameUpdateInput{Name: "  Ruby Rose ", Result: &result}))
	require.Equal(t, "Ruby Rose", result.Name)
}

func TestGeneratedContentApplyCommand_ReplacesBioAndLinks(t *testing.T) {
	repo := newRepo(t)
	sink := &recordingActivitySink{}
	var event types.ProfileEvent
	cmd := NewGeneratedContentApplyCommand(ProfileCommandConfig{
		Repository: repo,
		LinkIDs:    profile.NewTimestampLinkIDs(),
		Activity:   sink,
		Hooks: types.Hooks{
			AfterProfileChange: func(_ context.Context, e types.ProfileEvent) { event = e },
		},
	})

	titles := []string{"Shop Candles ❤️", "New Drops ✨", "Find Me 💖", "Subscribe 💌"}
	var result types.Profile
	require.NoError(t, cmd.Execute(context.Background(), GeneratedContentInput{
		Bio:    "Warm scents, warmer hearts ❤️",
		Titles: titles,
		Result: &result,
	}))

	require.Equal(t, "Warm scents, warmer hearts ❤️", result.Bio)
	require.Len(t, result.Links, len(titles))
	for idx, link := range result.Links {
		require.Equal(t, titles[idx], link.Title)
		require.Equal(t, types.PlaceholderURL, link.URL)
		require.NotEmpty(t, link.ID)
	}
	requireUniqueLinkIDs(t, result.Links)

	require.Len(t, sink.records, 1)
	require.Equal(t, VerbGenerationApplied, sink.records[0].Verb)
	require.Equal(t, VerbGenerationApplied, event.Action)
	require.Equal(t, result.Bio, event.Profile.Bio)
}

func TestGeneratedContentApplyCommand_AtomicOnIDFailure(t *testing.T) {
	repo := newRepo(t)
	before, err := repo.GetProfile(context.Background())
	require.NoError(t, err)
	sink := &recordingActivitySink{}

	cmd := NewGeneratedContentApplyCommand(ProfileCommandConfig{
		Repository: repo,
		LinkIDs:    &failingLinkIDs{failAt: 2},
		Activity:   sink,
	})
	err = cmd.Execute(context.Background(), GeneratedContentInput{
		Bio:    "A brand new bio",
		Titles: []string{"One", "Two", "Three", "Four"},
	})
	require.ErrorIs(t, err, errIDExhausted)

	after, err := repo.GetProfile(context.Background())
	require.NoError(t, err)
	require.Equal(t, before.Bio, after.Bio)
	require.Equal(t, before.Links, after.Links)
	require.Empty(t, sink.records)
}

func TestGeneratedContentApplyCommand_IDsUniqueAcrossReplaces(t *testing.T) {
	repo := newRepo(t)
	clock := fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	cmd := NewGeneratedContentApplyCommand(ProfileCommandConfig{
		Repository: repo,
		LinkIDs:    profile.NewTimestampLinkIDs(),
		Clock:      clock,
	})

	seen := map[string]struct{}{}
	for round := 0; round < 5; round++ {
		var result types.Profile
		require.NoError(t, cmd.Execute(context.Background(), GeneratedContentInput{
			Bio:    "bio",
			Titles: []string{"a", "b", "c", "d"},
			Result: &result,
		}))
		requireUniqueLinkIDs(t, result.Links)
		for _, link := range result.Links {
			_, dup := seen[link.ID]
			require.False(t, dup, "id %s reused", link.ID)
			seen[link.ID] = struct{}{}
		}
	}
}

func TestGeneratedContentApplyCommand_RequiresTitles(t *testing.T) {
	cmd := NewGeneratedContentApplyCommand(ProfileCommandConfig{
		Repository: newRepo(t),
		LinkIDs:    profile.NewTimestampLinkIDs(),
	})
	err := cmd.Execute(context.Background(), GeneratedContentInput{Bio: "bio"})
	require.True(t, types.IsValidation(err))

	err = cmd.Execute(context.Background(), GeneratedContentInput{Bio: "bio", Titles: []string{"ok", " "}})
	require.True(t, types.IsValidation(err))
}

func TestGeneratedContentApplyCommand_MissingDependencies(t *testing.T) {
	err := NewGeneratedContentApplyCommand(ProfileCommandConfig{Repository: newRepo(t)}).
		Execute(context.Background(), GeneratedContentInput{Titles: []string{"a"}})
	require.ErrorIs(t, err, ErrMissingLinkIDGenerator)

	err = NewThemeUpdateCommand(ProfileCommandConfig{}).
		Execute(context.Background(), ThemeUpdateInput{Theme: "dark"})
	require.ErrorIs(t, err, ErrMissingProfileRepository)
}

func TestDetailsUpdateCommand(t *testing.T) {
	repo := newRepo(t)
	cmd := NewDetailsUpdateCommand(ProfileCommandConfig{Repository: repo})

	require.ErrorIs(t, cmd.Execute(context.Background(), DetailsUpdateInput{}), ErrEmptyPatch)

	bad := "not a url"
	err := cmd.Execute(context.Background(), DetailsUpdateInput{Patch: types.ProfilePatch{AvatarURL: &bad}})
	require.True(t, types.IsValidation(err))

	badHandle := "ruby hart!"
	err = cmd.Execute(context.Background(), DetailsUpdateInput{Patch: types.ProfilePatch{TipHandle: &badHandle}})
	require.True(t, types.IsValidation(err))

	avatar := "https://example.com/ruby.png"
	handle := "rubyrose"
	var result types.Profile
	require.NoError(t, cmd.Execute(context.Background(), DetailsUpdateInput{
		Patch:  types.ProfilePatch{AvatarURL: &avatar, TipHandle: &handle},
		Result: &result,
	}))
	require.Equal(t, avatar, result.AvatarURL)
	require.Equal(t, handle, result.TipHandle)

	empty := ""
	require.NoError(t, cmd.Execute(context.Background(), DetailsUpdateInput{
		Patch:  types.ProfilePatch{TipHandle: &empty},
		Result: &result,
	}))
	require.Empty(t, result.TipHandle)
}

func TestLinkUpdateCommand_RepointsPlaceholder(t *testing.T) {
	repo := newRepo(t)
	apply := NewGeneratedContentApplyCommand(ProfileCommandConfig{
		Repository: repo,
		LinkIDs:    profile.NewTimestampLinkIDs(),
	})
	var generated types.Profile
	require.NoError(t, apply.Execute(context.Background(), GeneratedContentInput{
		Bio:    "bio",
		Titles: []string{"Shop", "Drops", "Find", "Subscribe"},
		Result: &generated,
	}))

	cmd := NewLinkUpdateCommand(ProfileCommandConfig{Repository: repo})
	target := generated.Links[1]
	url := "https://shop.example.com/drops"
	var result types.Profile
	require.NoError(t, cmd.Execute(context.Background(), LinkUpdateInput{ID: target.ID, URL: &url, Result: &result}))

	updated, ok := result.Link(target.ID)
	require.True(t, ok)
	require.Equal(t, url, updated.URL)
	require.Equal(t, target.Title, updated.Title)
	require.Equal(t, target.ID, result.Links[1].ID)
}

func TestLinkUpdateCommand_Errors(t *testing.T) {
	repo := newRepo(t)
	cmd := NewLinkUpdateCommand(ProfileCommandConfig{Repository: repo})
	title := "New title"

	require.ErrorIs(t, cmd.Execute(context.Background(), LinkUpdateInput{Title: &title}), ErrLinkIDRequired)
	require.ErrorIs(t, cmd.Execute(context.Background(), LinkUpdateInput{ID: "1"}), ErrEmptyPatch)
	require.ErrorIs(t, cmd.Execute(context.Background(), LinkUpdateInput{ID: "missing", Title: &title}), ErrLinkNotFound)

	bad := "nope"
	err := cmd.Execute(context.Background(), LinkUpdateInput{ID: "1", URL: &bad})
	require.True(t, types.IsValidation(err))

	placeholder := types.PlaceholderURL
	require.NoError(t, cmd.Execute(context.Background(), LinkUpdateInput{ID: "1", URL: &placeholder}))
}

func TestSocialUpsertCommand(t *testing.T) {
	repo := newRepo(t)
	before, err := repo.GetProfile(context.Background())
	require.NoError(t, err)
	cmd := NewSocialUpsertCommand(ProfileCommandConfig{Repository: repo})

	var result types.Profile
	require.NoError(t, cmd.Execute(context.Background(), SocialUpsertInput{
		Platform: "Instagram",
		URL:      "https://instagram.com/rubyrose",
		Result:   &result,
	}))
	require.Len(t, result.Socials, len(before.Socials))
	social, ok := result.Social(types.PlatformInstagram)
	require.True(t, ok)
	require.Equal(t, "https://instagram.com/rubyrose", social.URL)

	require.NoError(t, cmd.Execute(context.Background(), SocialUpsertInput{
		Platform: "linkedin",
		URL:      "https://linkedin.com/in/rubyhart",
		Result:   &result,
	}))
	require.Len(t, result.Socials, len(before.Socials)+1)

	require.NoError(t, cmd.Execute(context.Background(), SocialUpsertInput{
		Platform: "email",
		URL:      "hello@rubyhart.example",
		Result:   &result,
	}))
	email, ok := result.Social(types.PlatformEmail)
	require.True(t, ok)
	require.Equal(t, "mailto:hello@rubyhart.example", email.URL)

	err = cmd.Execute(context.Background(), SocialUpsertInput{Platform: "myspace", URL: "https://myspace.com/x"})
	require.True(t, types.IsValidation(err))
	err = cmd.Execute(context.Background(), SocialUpsertInput{Platform: "email", URL: "not-an-email"})
	require.True(t, types.IsValidation(err))
}

func TestCommands_SinkBeforeHooks(t *testing.T) {
	order := make([]string, 0, 3)
	sink := &recordingActivitySink{onLog: func(types.ActivityRecord) { order = append(order, "sink") }}
	cmd := NewNameUpdateCommand(ProfileCommandConfig{
		Repository: newRepo(t),
		Activity:   sink,
		Hooks: types.Hooks{
			AfterActivity:      func(context.Context, types.ActivityRecord) { order = append(order, "activity") },
			AfterProfileChange: func(context.Context, types.ProfileEvent) { order = append(order, "profile") },
		},
	})
	require.NoError(t, cmd.Execute(context.Background(), NameUpdateInput{Name: "Ruby"}))
	require.Equal(t, []string{"sink", "activity", "profile"}, order)
	require.Equal(t, VerbNameUpdated, sink.records[0].Verb)
	require.Equal(t, "profile", sink.records[0].ObjectType)
	require.Equal(t, "Ruby", sink.records[0].Data["name"])
}

func newRepo(t *testing.T) *profile.MemoryRepository {
	t.Helper()
	repo, err := profile.NewMemoryRepository(profile.DefaultProfile(), nil)
	require.NoError(t, err)
	return repo
}

func requireUniqueLinkIDs(t *testing.T, links []types.LinkItem) {
	t.Helper()
	seen := make(map[string]struct{}, len(links))
	for _, link := range links {
		_, dup := seen[link.ID]
		require.False(t, dup, "duplicate link id %s", link.ID)
		seen[link.ID] = struct{}{}
	}
}

var errIDExhausted = errors.New("id source exhausted")

type failingLinkIDs struct {
	failAt int
}

func (f *failingLinkIDs) LinkID(_ time.Time, index int) (string, error) {
	if index >= f.failAt {
		return "", errIDExhausted
	}
	return "tmp-" + string(rune('a'+index)), nil
}

type recordingActivitySink struct {
	onLog   func(types.ActivityRecord)
	records []types.ActivityRecord
}

func (r *recordingActivitySink) Log(_ context.Context, record types.ActivityRecord) error {
	r.records = append(r.records, record)
	if r.onLog != nil {
		r.onLog(record)
	}
	return nil
}

type fixedClock struct {
	t time.Time
}

func (f fixedClock) Now() time.Time {
	return f.t
}
