package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/adelr/rolodex-be/internal/auth"
	"github.com/adelr/rolodex-be/internal/models"
	"github.com/adelr/rolodex-be/internal/services"
	"github.com/go-chi/chi/v5"
)

// PersonHandler handles HTTP requests for contact management. Every route is
// behind the JWT middleware; the owner is always taken from the token, never
// from the request body.
type PersonHandler struct {
	service services.PersonServiceProvider
}

// NewPersonHandler creates a new PersonHandler.
func NewPersonHandler(service services.PersonServiceProvider) *PersonHandler {
	return &PersonHandler{service: service}
}

// PersonPayload defines the structure for create requests.
type PersonPayload struct {
	Name    string `json:"name"`
	Details string `json:"details"`
}

// UpdatePersonPayload defines the structure for update requests; absent
// fields are left untouched.
type UpdatePersonPayload struct {
	Name    *string `json:"name"`
	Details *string `json:"details"`
}

// GetAll handles the request to list the user's people.
func (h *PersonHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	people, err := h.service.GetAllPeople(r.Context(), claims.UserID)
	if err != nil {
		respondServiceError(w, err, "Failed to retrieve people")
		return
	}
	if people == nil {
		people = []*models.Person{}
	}
	respondJSON(w, http.StatusOK, people)
}

// Get handles the request to fetch a single person by id.
func (h *PersonHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	person, err := h.service.GetPersonByID(r.Context(), chi.URLParam(r, "id"), claims.UserID)
	if err != nil {
		respondServiceError(w, err, "Failed to retrieve person")
		return
	}
	if person == nil {
		respondError(w, http.StatusNotFound, "Person not found")
		return
	}
	respondJSON(w, http.StatusOK, person)
}

// Search handles name search within the user's people.
func (h *PersonHandler) Search(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	results, err := h.service.SearchPeople(r.Context(), chi.URLParam(r, "query"), claims.UserID)
	if err != nil {
		respondServiceError(w, err, "Failed to search people")
		return
	}
	if results == nil {
		results = []*models.Person{}
	}
	respondJSON(w, http.StatusOK, results)
}

// Create handles the request to add a new person.
func (h *PersonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload PersonPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	claims, _ := auth.ClaimsFromContext(r.Context())
	person, err := h.service.CreatePerson(r.Context(), payload.Name, payload.Details, claims.UserID)
	if err != nil {
		respondServiceError(w, err, "Failed to create person")
		return
	}
	respondJSON(w, http.StatusCreated, person)
}

// Update handles partial updates of a person.
func (h *PersonHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload UpdatePersonPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	claims, _ := auth.ClaimsFromContext(r.Context())
	person, err := h.service.UpdatePerson(r.Context(), chi.URLParam(r, "id"), payload.Name, payload.Details, claims.UserID)
	if err != nil {
		respondServiceError(w, err, "Failed to update person")
		return
	}
	if person == nil {
		respondError(w, http.StatusNotFound, "Person not found")
		return
	}
	respondJSON(w, http.StatusOK, person)
}

// Delete handles the removal of a person.
func (h *PersonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	deleted, err := h.service.DeletePerson(r.Context(), chi.URLParam(r, "id"), claims.UserID)
	if err != nil {
		respondServiceError(w, err, "Failed to delete person")
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "Person not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Person deleted successfully"})
}
