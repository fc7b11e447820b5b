package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/adelr/rolodex-be/internal/auth"
	"github.com/adelr/rolodex-be/internal/services"
	"github.com/go-chi/chi/v5"
)

// AIHandler handles HTTP requests for the AI-derived text features.
type AIHandler struct {
	ai     services.AIServiceProvider
	people services.PersonServiceProvider
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(ai services.AIServiceProvider, people services.PersonServiceProvider) *AIHandler {
	return &AIHandler{ai: ai, people: people}
}

// AskPayload defines the structure for question requests.
type AskPayload struct {
	Question string `json:"question"`
}

// GenerateSummary handles the request to build a person blueprint.
func (h *AIHandler) GenerateSummary(w http.ResponseWriter, r *http.Request) {
	if !h.ai.IsEnabled() {
		respondError(w, http.StatusServiceUnavailable, "AI feature not configured. Please set GEMINI_API_KEY environment variable.")
		return
	}

	claims, _ := auth.ClaimsFromContext(r.Context())
	person, err := h.people.GetPersonByID(r.Context(), chi.URLParam(r, "id"), claims.UserID)
	if err != nil {
		respondServiceError(w, err, "Failed to retrieve person")
		return
	}
	if person == nil {
		respondError(w, http.StatusNotFound, "Person not found")
		return
	}

	result, err := h.ai.GeneratePersonBlueprint(r.Context(), person)
	if err != nil {
		respondServiceError(w, err, "Failed to generate summary")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Ask handles questions across all of the user's people.
func (h *AIHandler) Ask(w http.ResponseWriter, r *http.Request) {
	if !h.ai.IsEnabled() {
		respondError(w, http.StatusServiceUnavailable, "AI feature not configured. Please set GEMINI_API_KEY environment variable.")
		return
	}

	var payload AskPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	claims, _ := auth.ClaimsFromContext(r.Context())
	people, err := h.people.GetAllPeople(r.Context(), claims.UserID)
	if err != nil {
		respondServiceError(w, err, "Failed to retrieve people")
		return
	}

	result, err := h.ai.AnswerQuestion(r.Context(), payload.Question, people)
	if err != nil {
		respondServiceError(w, err, "Failed to answer question")
		return
	}
	respondJSON(w, http.StatusOK, result)
}
