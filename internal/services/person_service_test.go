package services

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adelr/rolodex-be/internal/models"
	"github.com/adelr/rolodex-be/internal/storage"
	"github.com/adelr/rolodex-be/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPersonService(t *testing.T) *PersonService {
	t.Helper()
	repo, err := storage.NewFileRepository(filepath.Join(t.TempDir(), "people.json"), models.PersonFromDocument)
	require.NoError(t, err)
	return NewPersonService(repo, nil)
}

func TestCreatePerson(t *testing.T) {
	svc := newPersonService(t)
	ctx := context.Background()

	person, err := svc.CreatePerson(ctx, "  Alice  ", " met at the conference ", "u1")
	require.NoError(t, err)
	assert.NotEmpty(t, person.ID)
	assert.Equal(t, "Alice", person.Name)
	assert.Equal(t, "met at the conference", person.Details)
	assert.Equal(t, "u1", person.UserID)
}

func TestCreatePersonValidation(t *testing.T) {
	svc := newPersonService(t)
	ctx := context.Background()

	_, err := svc.CreatePerson(ctx, "", "x", "u1")
	var vErr *validation.Error
	require.ErrorAs(t, err, &vErr)

	_, err = svc.CreatePerson(ctx, strings.Repeat("a", 201), "", "u1")
	require.ErrorAs(t, err, &vErr)
}

func TestGetPersonByIDOwnership(t *testing.T) {
	svc := newPersonService(t)
	ctx := context.Background()

	person, err := svc.CreatePerson(ctx, "Alice", "", "u1")
	require.NoError(t, err)

	// Owner sees it.
	found, err := svc.GetPersonByID(ctx, person.ID, "u1")
	require.NoError(t, err)
	require.NotNil(t, found)

	// A foreign person and a missing person look exactly the same.
	foreign, err := svc.GetPersonByID(ctx, person.ID, "u2")
	require.NoError(t, err)
	missing, err2 := svc.GetPersonByID(ctx, "no-such-id", "u2")
	require.NoError(t, err2)
	assert.Nil(t, foreign)
	assert.Nil(t, missing)
}

func TestSearchPeople(t *testing.T) {
	svc := newPersonService(t)
	ctx := context.Background()

	_, err := svc.CreatePerson(ctx, "Alice Smith", "", "u1")
	require.NoError(t, err)
	_, err = svc.CreatePerson(ctx, "ALISTAIR", "", "u1")
	require.NoError(t, err)
	_, err = svc.CreatePerson(ctx, "Bob", "", "u1")
	require.NoError(t, err)
	_, err = svc.CreatePerson(ctx, "Alice Other", "", "u2")
	require.NoError(t, err)

	results, err := svc.SearchPeople(ctx, "ali", "u1")
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, p := range results {
		assert.Equal(t, "u1", p.UserID)
		assert.Contains(t, strings.ToLower(p.Name), "ali")
	}
}

func TestUpdatePerson(t *testing.T) {
	svc := newPersonService(t)
	ctx := context.Background()

	person, err := svc.CreatePerson(ctx, "Alice", "old details", "u1")
	require.NoError(t, err)

	// Only the provided field changes.
	newDetails := "new details"
	updated, err := svc.UpdatePerson(ctx, person.ID, nil, &newDetails, "u1")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Alice", updated.Name)
	assert.Equal(t, "new details", updated.Details)

	// Invalid new name is rejected.
	empty := ""
	_, err = svc.UpdatePerson(ctx, person.ID, &empty, nil, "u1")
	var vErr *validation.Error
	require.ErrorAs(t, err, &vErr)

	// Unauthorized update behaves like not-found.
	name := "Mallory"
	stolen, err := svc.UpdatePerson(ctx, person.ID, &name, nil, "u2")
	require.NoError(t, err)
	assert.Nil(t, stolen)
}

func TestDeletePerson(t *testing.T) {
	svc := newPersonService(t)
	ctx := context.Background()

	person, err := svc.CreatePerson(ctx, "Alice", "", "u1")
	require.NoError(t, err)

	// Foreign delete behaves like not-found.
	deleted, err := svc.DeletePerson(ctx, person.ID, "u2")
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = svc.DeletePerson(ctx, person.ID, "u1")
	require.NoError(t, err)
	assert.True(t, deleted)

	// Already deleted.
	deleted, err = svc.DeletePerson(ctx, person.ID, "u1")
	require.NoError(t, err)
	assert.False(t, deleted)

	found, err := svc.GetPersonByID(ctx, person.ID, "u1")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestGetAllPeopleScopedToUser(t *testing.T) {
	svc := newPersonService(t)
	ctx := context.Background()

	_, err := svc.CreatePerson(ctx, "Alice", "", "u1")
	require.NoError(t, err)
	_, err = svc.CreatePerson(ctx, "Bob", "", "u2")
	require.NoError(t, err)

	people, err := svc.GetAllPeople(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, "Alice", people[0].Name)
}
