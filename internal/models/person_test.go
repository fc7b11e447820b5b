package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonDocumentRoundTrip(t *testing.T) {
	original := NewPerson("Alice", "met at the conference", "user-1")
	original.ID = "1700000000000"

	restored := PersonFromDocument(original.Document())

	assert.Equal(t, original.ID, restored.ID)
	assert.Equal(t, original.UserID, restored.UserID)
	assert.Equal(t, original.Name, restored.Name)
	assert.Equal(t, original.Details, restored.Details)
	assert.True(t, restored.CreatedAt.Equal(original.CreatedAt))
	assert.True(t, restored.UpdatedAt.Equal(original.UpdatedAt))
}

func TestPersonFromDocumentLegacyFields(t *testing.T) {
	// Records written by older versions used snake_case timestamps and no
	// owner field.
	doc := map[string]any{
		"_id":        "abc123",
		"name":       "Bob",
		"created_at": "2023-05-01T10:00:00Z",
		"updated_at": "2023-05-02T11:30:00Z",
	}

	p := PersonFromDocument(doc)

	assert.Equal(t, "abc123", p.ID)
	assert.Equal(t, "legacy", p.UserID)
	assert.Equal(t, "Bob", p.Name)
	assert.Empty(t, p.Details)
	assert.Equal(t, time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC), p.CreatedAt.UTC())
	assert.Equal(t, time.Date(2023, 5, 2, 11, 30, 0, 0, time.UTC), p.UpdatedAt.UTC())
}

func TestPersonFromDocumentDefaultsMissingTimestamps(t *testing.T) {
	p := PersonFromDocument(map[string]any{"id": "1", "name": "Carol", "user_id": "u"})
	assert.False(t, p.CreatedAt.IsZero())
	assert.False(t, p.UpdatedAt.IsZero())
}

func TestUserDocumentRoundTrip(t *testing.T) {
	original := NewUser("bob", "$2a$10$hash", "bob@example.com")
	original.ID = "42"

	restored := UserFromDocument(original.Document())

	require.NotNil(t, restored)
	assert.Equal(t, original.ID, restored.ID)
	assert.Equal(t, original.Username, restored.Username)
	assert.Equal(t, original.Email, restored.Email)
	assert.Equal(t, original.PasswordHash, restored.PasswordHash)
	assert.True(t, restored.CreatedAt.Equal(original.CreatedAt))
}

func TestUserDocumentNullEmail(t *testing.T) {
	u := NewUser("bob", "hash", "")
	doc := u.Document()
	assert.Nil(t, doc["email"])
	assert.Empty(t, UserFromDocument(doc).Email)
}
