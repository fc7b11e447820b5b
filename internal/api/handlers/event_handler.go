package handlers

import (
	"net/http"
	"strconv"

	"github.com/adelr/rolodex-be/internal/auth"
	"github.com/adelr/rolodex-be/internal/models"
	"github.com/adelr/rolodex-be/internal/services"
)

// EventHandler handles HTTP requests for the activity feed.
type EventHandler struct {
	service services.EventServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service services.EventServiceProvider) *EventHandler {
	return &EventHandler{service: service}
}

// GetRecent returns the user's most recent activity events.
func (h *EventHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 20
	}

	claims, _ := auth.ClaimsFromContext(r.Context())
	events, err := h.service.GetRecent(r.Context(), claims.UserID, limit)
	if err != nil {
		respondServiceError(w, err, "Failed to retrieve events")
		return
	}
	if events == nil {
		events = []*models.Event{}
	}
	respondJSON(w, http.StatusOK, events)
}
