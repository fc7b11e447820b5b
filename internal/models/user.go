package models

import "time"

// User represents an account holder.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser creates a User; the id is assigned by the repository on create.
func NewUser(username, passwordHash, email string) *User {
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		Email:        email,
		CreatedAt:    time.Now(),
	}
}

func (u *User) GetID() string   { return u.ID }
func (u *User) SetID(id string) { u.ID = id }

// Document converts the user to its stored key-value form. The password hash
// is included here and only here.
func (u *User) Document() map[string]any {
	doc := map[string]any{
		"id":            u.ID,
		"username":      u.Username,
		"password_hash": u.PasswordHash,
		"created_at":    formatTime(u.CreatedAt),
	}
	if u.Email != "" {
		doc["email"] = u.Email
	} else {
		doc["email"] = nil
	}
	return doc
}

// UserFromDocument builds a User from a stored record, tolerating legacy
// field name variants and defaulting missing fields.
func UserFromDocument(doc map[string]any) *User {
	return &User{
		ID:           docString(doc, "id", "_id"),
		Username:     docString(doc, "username"),
		Email:        docString(doc, "email"),
		PasswordHash: docString(doc, "password_hash", "passwordHash"),
		CreatedAt:    docTime(doc, "created_at", "createdAt"),
	}
}
