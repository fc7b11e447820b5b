package models

import "time"

// Event represents a loggable action in the system, scoped to the user whose
// data it concerns.
type Event struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`  // e.g. "person.create", "auth.login"
	Level     string    `json:"level"` // e.g. "info", "warn"
	Message   string    `json:"message"`
	PersonID  *string   `json:"personId,omitempty"` // Nullable for non-person events
	CreatedAt time.Time `json:"createdAt"`
}

func (e *Event) GetID() string   { return e.ID }
func (e *Event) SetID(id string) { e.ID = id }

// Document converts the event to its stored key-value form.
func (e *Event) Document() map[string]any {
	doc := map[string]any{
		"id":        e.ID,
		"user_id":   e.UserID,
		"type":      e.Type,
		"level":     e.Level,
		"message":   e.Message,
		"createdAt": formatTime(e.CreatedAt),
	}
	if e.PersonID != nil {
		doc["person_id"] = *e.PersonID
	} else {
		doc["person_id"] = nil
	}
	return doc
}

// EventFromDocument builds an Event from a stored record.
func EventFromDocument(doc map[string]any) *Event {
	e := &Event{
		ID:        docString(doc, "id", "_id"),
		UserID:    docString(doc, "user_id", "userId"),
		Type:      docString(doc, "type"),
		Level:     docString(doc, "level"),
		Message:   docString(doc, "message"),
		CreatedAt: docTime(doc, "createdAt", "created_at"),
	}
	if pid := docString(doc, "person_id", "personId"); pid != "" {
		e.PersonID = &pid
	}
	return e
}
