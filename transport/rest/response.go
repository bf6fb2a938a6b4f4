package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/zazjoe90-oss/go-linkbio/command"
	"github.com/zazjoe90-oss/go-linkbio/editor"
	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
)

const (
	errInvalidBody       = "invalid_body"
	errNotFound          = "not_found"
	errInvalidTransition = "invalid_transition"
	errEditorDisabled    = "editor_disabled"
	errEditorUnavailable = "editor_unavailable"
	errGenerationFailed  = "generation_failed"
	errInternal          = "internal_error"
	errUnavailable       = "unavailable"
	msgInvalidJSON       = "invalid json"
)

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorBody struct {
	Error   string       `json:"error"`
	Message string       `json:"message"`
	Fields  []fieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: code, Message: message})
}

func decode(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// classify maps domain errors onto HTTP status codes.
func classify(err error) (int, string) {
	switch {
	case types.IsValidation(err),
		errors.Is(err, command.ErrLinkIDRequired),
		errors.Is(err, command.ErrEmptyPatch):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, types.ErrProfileNotFound),
		errors.Is(err, types.ErrLinkNotFound),
		errors.Is(err, types.ErrTipHandleMissing):
		return http.StatusNotFound, errNotFound
	case errors.Is(err, editor.ErrEditorDisabled):
		return http.StatusForbidden, errEditorDisabled
	case errors.Is(err, types.ErrTransitionNotAllowed):
		return http.StatusConflict, errInvalidTransition
	case types.IsGenerationFailure(err):
		return http.StatusBadGateway, errGenerationFailed
	default:
		return http.StatusInternalServerError, errInternal
	}
}

func (a *api) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		a.logger.Error("rest: request failed", err, "method", r.Method, "path", r.URL.Path)
		message := "an unexpected error occurred"
		if status == http.StatusBadGateway {
			message = "text generation failed"
		}
		writeError(w, status, code, message)
		return
	}

	body := errorBody{Error: code, Message: err.Error()}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		if richErr.TextCode != "" && status == http.StatusBadRequest {
			body.Error = richErr.TextCode
		}
		body.Message = richErr.Message
		for _, field := range richErr.ValidationErrors {
			body.Fields = append(body.Fields, fieldError{Field: field.Field, Message: field.Message})
		}
	}
	writeJSON(w, status, body)
}
