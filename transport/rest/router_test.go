package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/zazjoe90-oss/go-linkbio/activity"
	"github.com/zazjoe90-oss/go-linkbio/editor"
	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
	"github.com/zazjoe90-oss/go-linkbio/profile"
	"github.com/zazjoe90-oss/go-linkbio/service"
)

type stubGenerator struct{}

func (stubGenerator) GenerateBio(context.Context, string) (string, error) {
	return "Hand-poured soy candles, made with love 🕯️", nil
}

func (stubGenerator) SuggestLinkTitles(context.Context, string) ([]string, error) {
	return []string{"Shop Candles", "Scent Quiz", "Workshops", "Gift Cards"}, nil
}

func newTestService(t *testing.T, cfg service.Config) *service.Service {
	t.Helper()
	repo, err := profile.NewMemoryRepository(profile.DefaultProfile(), nil)
	require.NoError(t, err)
	cfg.ProfileRepository = repo
	cfg.ActivitySink = activity.NewMemoryStore(activity.MemoryConfig{})
	return service.New(cfg)
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestRouterHealth(t *testing.T) {
	h := NewRouter(newTestService(t, service.Config{}), nil)
	rec := do(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, NewRouter(service.New(service.Config{}), nil), http.MethodGet, "/health", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouterProfileLifecycle(t *testing.T) {
	h := NewRouter(newTestService(t, service.Config{}), nil)

	rec := do(t, h, http.MethodGet, "/api/v1/profile", "")
	require.Equal(t, http.StatusOK, rec.Code)
	current := decodeBody[types.Profile](t, rec)
	require.Equal(t, "Ruby Hart", current.Name)
	require.Equal(t, types.ThemePassion, current.Theme)

	rec = do(t, h, http.MethodPut, "/api/v1/profile/theme", `{"theme":"dark"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, types.ThemeDark, decodeBody[types.Profile](t, rec).Theme)

	rec = do(t, h, http.MethodPut, "/api/v1/profile/theme", `{"theme":" GLASS "}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, types.ThemeGlass, decodeBody[types.Profile](t, rec).Theme)

	rec = do(t, h, http.MethodPut, "/api/v1/profile/name", `{"name":"Ruby"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Ruby", decodeBody[types.Profile](t, rec).Name)

	rec = do(t, h, http.MethodPut, "/api/v1/profile/links/2", `{"url":"https://youtube.com/@ruby"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	link, ok := decodeBody[types.Profile](t, rec).Link("2")
	require.True(t, ok)
	require.Equal(t, "https://youtube.com/@ruby", link.URL)

	rec = do(t, h, http.MethodPut, "/api/v1/profile/socials/twitter", `{"url":"https://twitter.com/ruby"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	_, ok = decodeBody[types.Profile](t, rec).Social(types.PlatformTwitter)
	require.True(t, ok)

	rec = do(t, h, http.MethodPatch, "/api/v1/profile", `{"tip_handle":"rubyh"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "rubyh", decodeBody[types.Profile](t, rec).TipHandle)

	rec = do(t, h, http.MethodGet, "/api/v1/activity?limit=10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	feed := decodeBody[struct {
		Records []types.ActivityRecord `json:"records"`
	}](t, rec)
	require.Len(t, feed.Records, 6)

	rec = do(t, h, http.MethodGet, "/api/v1/activity/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 6, decodeBody[types.ActivityStats](t, rec).Total)
}

func TestRouterMapsErrors(t *testing.T) {
	h := NewRouter(newTestService(t, service.Config{}), nil)

	rec := do(t, h, http.MethodPut, "/api/v1/profile/theme", `{"theme":"neon"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody[errorBody](t, rec)
	require.Equal(t, types.TextCodeInvalidTheme, body.Error)
	require.Len(t, body.Fields, 1)
	require.Equal(t, "theme", body.Fields[0].Field)

	rec = do(t, h, http.MethodPut, "/api/v1/profile/theme", `{`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, errInvalidBody, decodeBody[errorBody](t, rec).Error)

	rec = do(t, h, http.MethodPut, "/api/v1/profile/links/missing", `{"title":"Nope"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/activity?limit=lots", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/editor", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouterTipLink(t *testing.T) {
	h := NewRouter(newTestService(t, service.Config{}), nil)

	rec := do(t, h, http.MethodGet, "/api/v1/tip-link?amount=12.5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[struct {
		Link struct {
			URL string `json:"url"`
		} `json:"link"`
		Presets []string `json:"presets"`
	}](t, rec)
	require.Equal(t, "https://www.paypal.com/paypalme/rubyhart/12.50", body.Link.URL)
	require.Equal(t, []string{"5", "10", "25", "50"}, body.Presets)

	rec = do(t, h, http.MethodGet, "/api/v1/tip-link?amount=-3", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouterEditorFlow(t *testing.T) {
	svc := newTestService(t, service.Config{TextGenerator: stubGenerator{}})
	h := NewRouter(svc, nil)

	rec := do(t, h, http.MethodPost, "/api/v1/editor/prompt", `{"text":"candles"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPut, "/api/v1/editor/prompt", `{"text":"draft while idle"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, errInvalidTransition, decodeBody[errorBody](t, rec).Error)
	require.Empty(t, svc.Editor().State().Prompt)

	rec = do(t, h, http.MethodPost, "/api/v1/editor/open", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, types.EditorStateOpen, decodeBody[editor.Snapshot](t, rec).Status)

	rec = do(t, h, http.MethodPut, "/api/v1/editor/prompt", `{"text":"draft"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "draft", decodeBody[editor.Snapshot](t, rec).Prompt)

	rec = do(t, h, http.MethodPost, "/api/v1/editor/prompt", `{"text":"   "}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, types.EditorStateOpen, decodeBody[editor.Snapshot](t, rec).Status)

	rec = do(t, h, http.MethodPost, "/api/v1/editor/prompt", `{"text":"I make candles"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, svc.Editor().Wait(ctx))

	rec = do(t, h, http.MethodGet, "/api/v1/editor", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, types.EditorStateIdle, decodeBody[editor.Snapshot](t, rec).Status)

	rec = do(t, h, http.MethodGet, "/api/v1/profile", "")
	current := decodeBody[types.Profile](t, rec)
	require.Equal(t, "Hand-poured soy candles, made with love 🕯️", current.Bio)
	require.Len(t, current.Links, 4)
	require.Equal(t, types.PlaceholderURL, current.Links[0].URL)

	rec = do(t, h, http.MethodPost, "/api/v1/editor/close", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterEditorDisabled(t *testing.T) {
	svc := newTestService(t, service.Config{
		TextGenerator: stubGenerator{},
		FeatureGate:   editor.StaticGate{editor.FeatureAIEditor: false},
	})
	h := NewRouter(svc, nil)

	rec := do(t, h, http.MethodPost, "/api/v1/editor/open", "")
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, errEditorDisabled, decodeBody[errorBody](t, rec).Error)
}
