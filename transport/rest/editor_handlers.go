package rest

import (
	"net/http"

	"github.com/zazjoe90-oss/go-linkbio/editor"
)

type promptRequest struct {
	Text string `json:"text"`
}

func (a *api) controller(w http.ResponseWriter) (*editor.Controller, bool) {
	ctrl := a.svc.Editor()
	if ctrl == nil {
		writeError(w, http.StatusServiceUnavailable, errEditorUnavailable, "ai editor is not configured")
		return nil, false
	}
	return ctrl, true
}

// editorState GET /api/v1/editor
func (a *api) editorState(w http.ResponseWriter, _ *http.Request) {
	ctrl, ok := a.controller(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ctrl.State())
}

// editorOpen POST /api/v1/editor/open
func (a *api) editorOpen(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := a.controller(w)
	if !ok {
		return
	}
	if err := ctrl.Open(r.Context()); err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ctrl.State())
}

// editorClose POST /api/v1/editor/close
func (a *api) editorClose(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := a.controller(w)
	if !ok {
		return
	}
	if err := ctrl.Close(); err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ctrl.State())
}

// editorDraft PUT /api/v1/editor/prompt
func (a *api) editorDraft(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := a.controller(w)
	if !ok {
		return
	}
	var req promptRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidBody, msgInvalidJSON)
		return
	}
	if err := ctrl.SetPrompt(req.Text); err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ctrl.State())
}

// editorSubmit POST /api/v1/editor/prompt starts a generation cycle. The
// result is applied in the background; poll GET /api/v1/editor for the
// outcome.
func (a *api) editorSubmit(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := a.controller(w)
	if !ok {
		return
	}
	var req promptRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidBody, msgInvalidJSON)
		return
	}
	cycle, err := ctrl.Submit(r.Context(), req.Text)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	status := http.StatusAccepted
	if cycle == nil {
		status = http.StatusOK
	}
	writeJSON(w, status, ctrl.State())
}
