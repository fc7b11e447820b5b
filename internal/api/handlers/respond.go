package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/adelr/rolodex-be/internal/validation"
	"github.com/rs/zerolog/log"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps a service failure to the right status: validation
// errors are the client's fault (400), anything else is a backend failure
// (500, logged).
func respondServiceError(w http.ResponseWriter, err error, context string) {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		respondError(w, http.StatusBadRequest, vErr.Message)
		return
	}
	log.Error().Err(err).Msg(context)
	respondError(w, http.StatusInternalServerError, context)
}
