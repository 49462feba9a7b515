package api

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// Error messages surfaced to callers. Upstream transport details are never
// exposed; every failure of a capability maps to its generic message.
const (
	errAPOD       = "Failed to fetch APOD data."
	errMarsPhotos = "Failed to fetch Mars Rover photos."
	errEPIC       = "Failed to fetch EPIC data."
	errNEO        = "Failed to fetch NEO data."
	errSmallBody  = "Failed to fetch SSD/CNEOS data."
	errAICaption  = "Failed to generate AI caption."
	errAIAnswer   = "Failed to generate NASA AI answer."
	errBadBody    = "Invalid request body."
)

// errorResponse is the uniform failure envelope.
type errorResponse struct {
	Error string `json:"error"`
}

// writeError writes the uniform JSON error envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorResponse{Error: message}); err != nil {
		log.Error().Err(err).Msg("failed to write error response")
	}
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write JSON response")
	}
}

// writeRawJSON writes a pre-encoded JSON body unchanged.
func writeRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}
