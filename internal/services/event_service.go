package services

import (
	"context"
	"time"

	"github.com/adelr/rolodex-be/internal/models"
	"github.com/adelr/rolodex-be/internal/storage"
	"github.com/adelr/rolodex-be/internal/websocket"
	"github.com/google/uuid"
)

// EventServiceProvider defines the interface for activity event services.
type EventServiceProvider interface {
	Record(ctx context.Context, userID, eventType, level, message string, personID *string) error
	GetRecent(ctx context.Context, userID string, limit int) ([]*models.Event, error)
}

// EventService records activity events through the shared repository and
// pushes them to the owning user's websocket clients.
type EventService struct {
	repo storage.Repository[*models.Event]
	hub  *websocket.Hub
}

// NewEventService creates a new EventService. The hub may be nil when no
// live feed is wired (tests).
func NewEventService(repo storage.Repository[*models.Event], hub *websocket.Hub) *EventService {
	return &EventService{repo: repo, hub: hub}
}

// Record persists a new activity event.
func (s *EventService) Record(ctx context.Context, userID, eventType, level, message string, personID *string) error {
	event := &models.Event{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      eventType,
		Level:     level,
		Message:   message,
		PersonID:  personID,
		CreatedAt: time.Now(),
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return err
	}
	if s.hub != nil {
		s.hub.BroadcastTo(userID, websocket.NewEventMessage(created))
	}
	return nil
}

// GetRecent returns the user's most recent events, newest first.
func (s *EventService) GetRecent(ctx context.Context, userID string, limit int) ([]*models.Event, error) {
	events, err := s.repo.FindAll(ctx, map[string]any{"user_id": userID})
	if err != nil {
		return nil, err
	}
	// Stored order is append order; newest are at the tail.
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}
