package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/adelr/rolodex-be/internal/models"
	"github.com/adelr/rolodex-be/internal/storage"
	"github.com/adelr/rolodex-be/internal/validation"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// AuthServiceProvider defines the interface for authentication services.
type AuthServiceProvider interface {
	RegisterUser(ctx context.Context, username, password, confirmPassword, email string) (*models.User, error)
	AuthenticateUser(ctx context.Context, username, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// AuthService provides registration and authentication on top of the user
// repository.
type AuthService struct {
	users  storage.Repository[*models.User]
	events EventServiceProvider
}

// NewAuthService creates a new AuthService.
func NewAuthService(users storage.Repository[*models.User], events EventServiceProvider) *AuthService {
	return &AuthService{users: users, events: events}
}

// RegisterUser validates the registration data, rejects duplicate usernames
// (case-exact), hashes the password and persists the new user.
func (s *AuthService) RegisterUser(ctx context.Context, username, password, confirmPassword, email string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if err := validation.UserRegistration(username, password, confirmPassword, email); err != nil {
		log.Warn().Err(err).Msg("Registration validation failed")
		return nil, err
	}

	taken, err := s.users.Exists(ctx, map[string]any{"username": username})
	if err != nil {
		return nil, err
	}
	if taken {
		log.Warn().Str("username", username).Msg("Registration attempt with existing username")
		return nil, &validation.Error{Message: "Username already exists"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.users.Create(ctx, models.NewUser(username, string(hash), email))
	if err != nil {
		return nil, err
	}

	log.Info().Str("username", user.Username).Str("user_id", user.ID).Msg("User registered")
	if s.events != nil {
		if err := s.events.Record(ctx, user.ID, "auth.register", "info", "Account created", nil); err != nil {
			log.Warn().Err(err).Msg("Failed to record event")
		}
	}
	return user, nil
}

// AuthenticateUser returns the user only when the username exists and the
// password verifies. Any mismatch returns nil; the reason is never exposed
// to the caller.
func (s *AuthService) AuthenticateUser(ctx context.Context, username, password string) (*models.User, error) {
	if validation.Required(username, "Username") != nil || validation.Required(password, "Password") != nil {
		return nil, nil
	}

	user, err := s.findByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		log.Warn().Str("username", username).Msg("Authentication failed: unknown user")
		return nil, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		log.Warn().Str("username", username).Msg("Authentication failed: invalid password")
		return nil, nil
	}

	log.Info().Str("username", username).Msg("User authenticated")
	return user, nil
}

// GetUserByID retrieves a single user, or nil when absent.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *AuthService) findByUsername(ctx context.Context, username string) (*models.User, error) {
	matches, err := s.users.FindAll(ctx, map[string]any{"username": username})
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}
