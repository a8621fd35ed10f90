// Package web holds HTTP plumbing shared by the REST handlers: middleware,
// router construction and JSON response helpers.
package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// RespondJSON writes payload as a JSON body with status. A nil payload writes
// the status alone, which is how 204 responses are sent.
func RespondJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error encoding response to JSON", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

// RespondError writes {"error": message}, the error shape of every catalog endpoint.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	RespondJSON(w, logger, status, map[string]string{"error": message})
}

// RequireContentType responds with 415 and returns false unless the request body
// is declared as the given media type.
func RequireContentType(w http.ResponseWriter, r *http.Request, logger *slog.Logger, mediaType string) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		RespondError(w, logger, http.StatusUnsupportedMediaType, "Content-Type not set")
		return false
	}
	if got, _, _ := strings.Cut(contentType, ";"); strings.TrimSpace(got) != mediaType {
		RespondError(w, logger, http.StatusUnsupportedMediaType, "Content-Type must be "+mediaType)
		return false
	}
	return true
}
