package controllers

import (
	"errors"
	"net"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"blogd/internal/backup"
	"blogd/internal/providers"
	"blogd/internal/schema"
	"blogd/internal/storage"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type errorResponse struct {
	Error   string         `json:"error"`
	Details []schema.Issue `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// fail maps service errors to responses. Unexpected errors are logged and
// answered with a bare 500 so paths and internals never reach the client.
func fail(w http.ResponseWriter, logger providers.Logger, err error) {
	var verrs *schema.ValidationErrors
	switch {
	case errors.Is(err, backup.ErrInvalidBackup):
		resp := errorResponse{Error: "Invalid backup"}
		if errors.As(err, &verrs) {
			resp.Details = verrs.Issues
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Validation failed", Details: verrs.Issues})
	case errors.Is(err, storage.ErrPostNotFound):
		writeError(w, http.StatusNotFound, "Post not found")
	case errors.Is(err, storage.ErrCommentNotFound):
		writeError(w, http.StatusNotFound, "Comment not found")
	case errors.Is(err, backup.ErrBackupNotFound):
		writeError(w, http.StatusNotFound, "Backup not found")
	case errors.Is(err, backup.ErrInvalidName):
		writeError(w, http.StatusBadRequest, "Invalid backup name")
	default:
		logger.Errorf(providers.TypeAPI, "request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request")
		return false
	}
	return true
}

// visitorKey identifies a reader by client address, preferring the first
// X-Forwarded-For hop when a proxy is in front.
func visitorKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
