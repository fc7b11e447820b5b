package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/adelr/rolodex-be/internal/auth"
	"github.com/adelr/rolodex-be/internal/services"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles HTTP requests for registration and sessions.
type AuthHandler struct {
	service      services.AuthServiceProvider
	jwt          *auth.Manager
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler. secureCookie marks the session
// cookie Secure; set it in production deployments.
func NewAuthHandler(service services.AuthServiceProvider, jwt *auth.Manager, secureCookie bool) *AuthHandler {
	return &AuthHandler{service: service, jwt: jwt, secureCookie: secureCookie}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Email           string `json:"email"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles new user registration.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.service.RegisterUser(r.Context(), payload.Username, payload.Password, payload.ConfirmPassword, payload.Email)
	if err != nil {
		respondServiceError(w, err, "Failed to register user")
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// Login authenticates a user, issues a JWT and sets the session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.service.AuthenticateUser(r.Context(), payload.Username, payload.Password)
	if err != nil {
		respondServiceError(w, err, "Failed to authenticate user")
		return
	}
	if user == nil {
		// Missing user, bad password and missing input are deliberately
		// indistinguishable here.
		respondError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := h.jwt.Generate(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate JWT")
		respondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(h.jwt.TTL()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Logout clears the session cookie. Tokens are stateless; expiry bounds any
// copy the client kept.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Path:     "/",
	})
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// Me retrieves the currently authenticated user from the token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	user, err := h.service.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		respondServiceError(w, err, "Failed to retrieve user")
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, user)
}
