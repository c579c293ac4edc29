package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/starford/codevault/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

type errResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}

// writeError maps an application error kind onto an HTTP status.
func writeError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	status := http.StatusInternalServerError
	msg := "internal error"
	switch kind {
	case apperr.KindNotFound:
		status, msg = http.StatusNotFound, err.Error()
	case apperr.KindInvalidInput, apperr.KindAmbiguousSelector:
		status, msg = http.StatusBadRequest, err.Error()
	case apperr.KindStoreUnreadable:
		msg = err.Error()
	}
	if status == http.StatusInternalServerError {
		slog.Error("request failed", slog.String("error", err.Error()))
	}
	body := errorBody(msg)
	if kind != apperr.KindUnknown {
		body.Kind = kind.String()
	}
	writeJSON(w, status, body)
}
