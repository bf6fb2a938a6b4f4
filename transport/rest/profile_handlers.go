package rest

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/zazjoe90-oss/go-linkbio/command"
	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
	"github.com/zazjoe90-oss/go-linkbio/query"
	"github.com/zazjoe90-oss/go-linkbio/tipping"
)

func (a *api) health(w http.ResponseWriter, r *http.Request) {
	if err := a.svc.HealthCheck(r.Context()); err != nil {
		a.logger.Error("rest: health check failed", err)
		writeError(w, http.StatusServiceUnavailable, errUnavailable, "service not ready")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// getProfile GET /api/v1/profile
func (a *api) getProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := a.svc.Queries().Profile.Query(r.Context(), query.ProfileQueryInput{})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// updateDetails PATCH /api/v1/profile
func (a *api) updateDetails(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AvatarURL *string `json:"avatar_url"`
		TipHandle *string `json:"tip_handle"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidBody, msgInvalidJSON)
		return
	}
	var result types.Profile
	err := a.svc.Commands().DetailsUpdate.Execute(r.Context(), command.DetailsUpdateInput{
		Patch:  types.ProfilePatch{AvatarURL: req.AvatarURL, TipHandle: req.TipHandle},
		Result: &result,
	})
	a.respondProfile(w, r, result, err)
}

// updateTheme PUT /api/v1/profile/theme
// The theme id is case-insensitive; the response carries the lowercase id.
func (a *api) updateTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidBody, msgInvalidJSON)
		return
	}
	var result types.Profile
	err := a.svc.Commands().ThemeUpdate.Execute(r.Context(), command.ThemeUpdateInput{
		Theme:  req.Theme,
		Result: &result,
	})
	a.respondProfile(w, r, result, err)
}

// updateName PUT /api/v1/profile/name
func (a *api) updateName(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidBody, msgInvalidJSON)
		return
	}
	var result types.Profile
	err := a.svc.Commands().NameUpdate.Execute(r.Context(), command.NameUpdateInput{
		Name:   req.Name,
		Result: &result,
	})
	a.respondProfile(w, r, result, err)
}

// updateLink PUT /api/v1/profile/links/{id}
func (a *api) updateLink(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title *string `json:"title"`
		URL   *string `json:"url"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidBody, msgInvalidJSON)
		return
	}
	var result types.Profile
	err := a.svc.Commands().LinkUpdate.Execute(r.Context(), command.LinkUpdateInput{
		ID:     chi.URLParam(r, "id"),
		Title:  req.Title,
		URL:    req.URL,
		Result: &result,
	})
	a.respondProfile(w, r, result, err)
}

// upsertSocial PUT /api/v1/profile/socials/{platform}
func (a *api) upsertSocial(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidBody, msgInvalidJSON)
		return
	}
	var result types.Profile
	err := a.svc.Commands().SocialUpsert.Execute(r.Context(), command.SocialUpsertInput{
		Platform: chi.URLParam(r, "platform"),
		URL:      req.URL,
		Result:   &result,
	})
	a.respondProfile(w, r, result, err)
}

func (a *api) respondProfile(w http.ResponseWriter, r *http.Request, profile types.Profile, err error) {
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// listThemes GET /api/v1/themes
func (a *api) listThemes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"themes":    types.Themes(),
		"platforms": types.Platforms(),
	})
}

// tipLink GET /api/v1/tip-link?amount=
func (a *api) tipLink(w http.ResponseWriter, r *http.Request) {
	link, err := a.svc.Queries().TipLink.Query(r.Context(), query.TipLinkInput{
		Amount: r.URL.Query().Get("amount"),
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	presets := make([]string, 0, len(tipping.Presets))
	for _, preset := range tipping.Presets {
		presets = append(presets, preset.String())
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"link":    link,
		"presets": presets,
	})
}

// activityFeed GET /api/v1/activity?verb=&limit=
func (a *api) activityFeed(w http.ResponseWriter, r *http.Request) {
	filter := types.ActivityFilter{Verbs: r.URL.Query()["verb"]}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			a.fail(w, r, types.NewValidationError("limit", "must be an integer", raw))
			return
		}
		filter.Limit = limit
	}
	records, err := a.svc.Queries().ActivityFeed.Query(r.Context(), filter)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": records})
}

// activityStats GET /api/v1/activity/stats
func (a *api) activityStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.svc.Queries().ActivityStats.Query(r.Context(), query.ActivityStatsInput{})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
