package services

import (
	"context"
	"strings"

	"github.com/adelr/rolodex-be/internal/models"
	"github.com/adelr/rolodex-be/internal/storage"
	"github.com/adelr/rolodex-be/internal/validation"
	"github.com/rs/zerolog/log"
)

// PersonServiceProvider defines the interface for person services.
//
// Every operation is scoped to the requesting user. A person owned by a
// different user is reported exactly like a missing one, so callers can
// never confirm a foreign record's existence.
type PersonServiceProvider interface {
	GetAllPeople(ctx context.Context, userID string) ([]*models.Person, error)
	GetPersonByID(ctx context.Context, personID, userID string) (*models.Person, error)
	SearchPeople(ctx context.Context, query, userID string) ([]*models.Person, error)
	CreatePerson(ctx context.Context, name, details, userID string) (*models.Person, error)
	UpdatePerson(ctx context.Context, personID string, name, details *string, userID string) (*models.Person, error)
	DeletePerson(ctx context.Context, personID, userID string) (bool, error)
}

// PersonService provides business logic for contact management.
type PersonService struct {
	repo   storage.Repository[*models.Person]
	events EventServiceProvider
}

// NewPersonService creates a new PersonService.
func NewPersonService(repo storage.Repository[*models.Person], events EventServiceProvider) *PersonService {
	return &PersonService{repo: repo, events: events}
}

// GetAllPeople returns every person owned by the user, in stored order.
func (s *PersonService) GetAllPeople(ctx context.Context, userID string) ([]*models.Person, error) {
	return s.repo.FindAll(ctx, map[string]any{"user_id": userID})
}

// GetPersonByID returns the person iff it exists and belongs to the user;
// otherwise nil.
func (s *PersonService) GetPersonByID(ctx context.Context, personID, userID string) (*models.Person, error) {
	person, err := s.repo.FindByID(ctx, personID)
	if err != nil {
		return nil, err
	}
	if person != nil && person.UserID != userID {
		log.Warn().Str("user_id", userID).Str("person_id", personID).Msg("Blocked access to another user's person")
		return nil, nil
	}
	return person, nil
}

// SearchPeople returns the user's people whose name contains the query,
// case-insensitively.
func (s *PersonService) SearchPeople(ctx context.Context, query, userID string) ([]*models.Person, error) {
	people, err := s.repo.FindAll(ctx, map[string]any{"user_id": userID})
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(query)
	var matches []*models.Person
	for _, person := range people {
		if strings.Contains(strings.ToLower(person.Name), needle) {
			matches = append(matches, person)
		}
	}
	return matches, nil
}

// CreatePerson validates and persists a new person owned by the user.
func (s *PersonService) CreatePerson(ctx context.Context, name, details, userID string) (*models.Person, error) {
	if err := validation.PersonData(name, details); err != nil {
		return nil, err
	}

	person := models.NewPerson(strings.TrimSpace(name), strings.TrimSpace(details), userID)
	created, err := s.repo.Create(ctx, person)
	if err != nil {
		return nil, err
	}

	log.Info().Str("person_id", created.ID).Str("user_id", userID).Msg("Person created")
	s.recordEvent(ctx, userID, "person.create", "Added "+created.Name, &created.ID)
	return created, nil
}

// UpdatePerson applies the provided fields to an owned person. Nil fields are
// left untouched. Returns nil when the person is absent or foreign.
func (s *PersonService) UpdatePerson(ctx context.Context, personID string, name, details *string, userID string) (*models.Person, error) {
	existing, err := s.GetPersonByID(ctx, personID, userID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	if name != nil {
		detailsValue := existing.Details
		if details != nil {
			detailsValue = *details
		}
		if err := validation.PersonData(*name, detailsValue); err != nil {
			return nil, err
		}
		existing.Name = strings.TrimSpace(*name)
	}
	if details != nil {
		existing.Details = strings.TrimSpace(*details)
	}

	updated, err := s.repo.Update(ctx, personID, existing)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, nil
	}

	log.Info().Str("person_id", personID).Str("user_id", userID).Msg("Person updated")
	s.recordEvent(ctx, userID, "person.update", "Updated "+updated.Name, &updated.ID)
	return updated, nil
}

// DeletePerson removes an owned person, reporting whether one was removed.
func (s *PersonService) DeletePerson(ctx context.Context, personID, userID string) (bool, error) {
	existing, err := s.GetPersonByID(ctx, personID, userID)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	deleted, err := s.repo.Delete(ctx, personID)
	if err != nil {
		return false, err
	}
	if deleted {
		log.Info().Str("person_id", personID).Str("user_id", userID).Msg("Person deleted")
		s.recordEvent(ctx, userID, "person.delete", "Removed "+existing.Name, nil)
	}
	return deleted, nil
}

func (s *PersonService) recordEvent(ctx context.Context, userID, eventType, message string, personID *string) {
	if s.events == nil {
		return
	}
	if err := s.events.Record(ctx, userID, eventType, "info", message, personID); err != nil {
		log.Warn().Err(err).Str("type", eventType).Msg("Failed to record event")
	}
}
