package models

import "time"

// Person represents a contact record owned by exactly one user.
type Person struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewPerson creates a Person owned by the given user. The id is assigned by
// the repository on create.
func NewPerson(name, details, userID string) *Person {
	now := time.Now()
	return &Person{
		UserID:    userID,
		Name:      name,
		Details:   details,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (p *Person) GetID() string   { return p.ID }
func (p *Person) SetID(id string) { p.ID = id }

// Touch refreshes the updated-at timestamp; called by repositories on update.
func (p *Person) Touch(now time.Time) { p.UpdatedAt = now }

// Document converts the person to its stored key-value form. Timestamps are
// camelCase here for compatibility with existing data files.
func (p *Person) Document() map[string]any {
	return map[string]any{
		"id":        p.ID,
		"user_id":   p.UserID,
		"name":      p.Name,
		"details":   p.Details,
		"createdAt": formatTime(p.CreatedAt),
		"updatedAt": formatTime(p.UpdatedAt),
	}
}

// PersonFromDocument builds a Person from a stored record, tolerating legacy
// field name variants and defaulting missing fields.
func PersonFromDocument(doc map[string]any) *Person {
	userID := docString(doc, "user_id", "userId")
	if userID == "" {
		// Records predating per-user ownership carry no owner.
		userID = "legacy"
	}
	return &Person{
		ID:        docString(doc, "id", "_id"),
		UserID:    userID,
		Name:      docString(doc, "name"),
		Details:   docString(doc, "details"),
		CreatedAt: docTime(doc, "createdAt", "created_at"),
		UpdatedAt: docTime(doc, "updatedAt", "updated_at"),
	}
}
