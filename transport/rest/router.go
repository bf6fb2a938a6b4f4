// Package rest exposes the profile and editor intents over JSON HTTP.
package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
	"github.com/zazjoe90-oss/go-linkbio/service"
)

// DefaultRequestTimeout bounds every request handled by the router.
const DefaultRequestTimeout = 15 * time.Second

type api struct {
	svc    *service.Service
	logger types.Logger
}

// NewRouter builds the HTTP router with all linkbio routes.
func NewRouter(svc *service.Service, logger types.Logger) http.Handler {
	if logger == nil {
		logger = types.NopLogger{}
	}
	a := &api{svc: svc, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recovery(logger))
	r.Use(middleware.Timeout(DefaultRequestTimeout))

	r.Get("/health", a.health)

	path := "/api/v1/profile"
	r.Get(path, a.getProfile)
	r.Patch(path, a.updateDetails)
	r.Put(path+"/theme", a.updateTheme)
	r.Put(path+"/name", a.updateName)
	r.Put(path+"/links/{id}", a.updateLink)
	r.Put(path+"/socials/{platform}", a.upsertSocial)

	r.Get("/api/v1/themes", a.listThemes)
	r.Get("/api/v1/tip-link", a.tipLink)

	activityPath := "/api/v1/activity"
	r.Get(activityPath, a.activityFeed)
	r.Get(activityPath+"/stats", a.activityStats)

	editorPath := "/api/v1/editor"
	r.Get(editorPath, a.editorState)
	r.Post(editorPath+"/open", a.editorOpen)
	r.Post(editorPath+"/close", a.editorClose)
	r.Put(editorPath+"/prompt", a.editorDraft)
	r.Post(editorPath+"/prompt", a.editorSubmit)

	return r
}
