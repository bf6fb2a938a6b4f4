package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/zazjoe90-oss/go-linkbio/activity"
	"github.com/zazjoe90-oss/go-linkbio/command"
	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
	"github.com/zazjoe90-oss/go-linkbio/profile"
	"github.com/zazjoe90-oss/go-linkbio/query"
	"github.com/zazjoe90-oss/go-linkbio/service"
)

type stubGenerator struct {
	bio    string
	titles []string
}

func (g stubGenerator) GenerateBio(context.Context, string) (string, error) {
	return g.bio, nil
}

func (g stubGenerator) SuggestLinkTitles(context.Context, string) ([]string, error) {
	return append([]string(nil), g.titles...), nil
}

func newService(t *testing.T, generator types.TextGenerator) (*service.Service, *profile.MemoryRepository) {
	t.Helper()
	repo, err := profile.NewMemoryRepository(profile.DefaultProfile(), nil)
	require.NoError(t, err)
	svc := service.New(service.Config{
		ProfileRepository: repo,
		ActivitySink:      activity.NewMemoryStore(activity.MemoryConfig{}),
		TextGenerator:     generator,
	})
	return svc, repo
}

func TestServiceReadyRequiresRepositories(t *testing.T) {
	svc := service.New(service.Config{})
	require.False(t, svc.Ready())
	require.ErrorIs(t, svc.HealthCheck(context.Background()), types.ErrMissingProfileRepository)
	require.Nil(t, svc.Editor())
	require.NoError(t, svc.Shutdown(context.Background()))
}

func TestServiceActivityRepositoryFallsBackToSink(t *testing.T) {
	svc, _ := newService(t, nil)
	require.True(t, svc.Ready())
	require.NoError(t, svc.HealthCheck(context.Background()))
	require.NotNil(t, svc.ActivitySink())
}

func TestServiceCommandsFeedActivityTrail(t *testing.T) {
	svc, repo := newService(t, nil)
	ctx := context.Background()

	require.NoError(t, svc.Commands().ThemeUpdate.Execute(ctx, command.ThemeUpdateInput{Theme: "dark"}))
	require.NoError(t, svc.Commands().NameUpdate.Execute(ctx, command.NameUpdateInput{Name: "Ruby"}))

	current, err := repo.GetProfile(ctx)
	require.NoError(t, err)
	require.Equal(t, types.ThemeDark, current.Theme)
	require.Equal(t, "Ruby", current.Name)

	feed, err := svc.Queries().ActivityFeed.Query(ctx, types.ActivityFilter{})
	require.NoError(t, err)
	require.Len(t, feed, 2)
	require.Equal(t, command.VerbNameUpdated, feed[0].Verb)
	require.Equal(t, command.VerbThemeUpdated, feed[1].Verb)

	stats, err := svc.Queries().ActivityStats.Query(ctx, query.ActivityStatsInput{})
	require.NoError(t, err)
	require.Equal(t, 2, stats.Total)
}

func TestServiceTipLinkUsesProfileHandle(t *testing.T) {
	svc, _ := newService(t, nil)
	link, err := svc.Queries().TipLink.Query(context.Background(), query.TipLinkInput{Amount: "25"})
	require.NoError(t, err)
	require.Equal(t, "https://www.paypal.com/paypalme/rubyhart/25", link.URL)
}

func TestServiceEditorAppliesGeneratedContent(t *testing.T) {
	svc, repo := newService(t, stubGenerator{
		bio:    "Hand-poured candles 🕯️",
		titles: []string{"Shop Candles", "Scent Quiz", "Workshops", "Gift Cards"},
	})
	ctx := context.Background()
	ctrl := svc.Editor()
	require.NotNil(t, ctrl)

	require.NoError(t, ctrl.Open(ctx))
	cycle, err := ctrl.Submit(ctx, "I make candles")
	require.NoError(t, err)
	require.NotNil(t, cycle)

	waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, cycle.Wait(waitCtx))

	current, err := repo.GetProfile(ctx)
	require.NoError(t, err)
	require.Equal(t, "Hand-poured candles 🕯️", current.Bio)
	require.Len(t, current.Links, 4)
	require.Equal(t, "Shop Candles", current.Links[0].Title)
	require.Equal(t, types.PlaceholderURL, current.Links[0].URL)
	require.Equal(t, types.EditorStateIdle, ctrl.State().Status)

	feed, err := svc.Queries().ActivityFeed.Query(ctx, types.ActivityFilter{Verbs: []string{command.VerbGenerationApplied}})
	require.NoError(t, err)
	require.Len(t, feed, 1)

	require.NoError(t, svc.Shutdown(waitCtx))
}
