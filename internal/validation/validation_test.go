package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRegistration(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		confirm  string
		email    string
		wantErr  string
	}{
		{"valid", "bob", "secret1", "secret1", "", ""},
		{"valid with email", "bob", "secret1", "secret1", "bob@example.com", ""},
		{"missing username", "", "secret1", "secret1", "", "Username is required"},
		{"whitespace username", "   ", "secret1", "secret1", "", "Username is required"},
		{"missing password", "bob", "", "", "", "Password is required"},
		{"short username", "ab", "secret1", "secret1", "", "Username must be at least 3 characters"},
		{"multibyte username at min", "ébé", "secret1", "secret1", "", ""},
		{"short password", "bob", "12345", "12345", "", "Password must be at least 6 characters"},
		{"mismatched passwords", "bob", "secret1", "secret2", "", "Passwords do not match"},
		{"bad email", "bob", "secret1", "secret1", "not-an-email", "Invalid email format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := UserRegistration(tt.username, tt.password, tt.confirm, tt.email)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
			assert.IsType(t, &Error{}, err)
		})
	}
}

func TestPersonData(t *testing.T) {
	tests := []struct {
		name    string
		pName   string
		details string
		wantErr string
	}{
		{"valid", "Alice", "met at the conference", ""},
		{"empty details ok", "Alice", "", ""},
		{"missing name", "", "x", "Name is required"},
		{"whitespace name", "   ", "x", "Name is required"},
		{"name at max", strings.Repeat("a", NameMaxLength), "", ""},
		{"name too long", strings.Repeat("a", NameMaxLength+1), "", "Name must not exceed 200 characters"},
		// Limits count characters, not bytes; 200 two-byte runes must pass.
		{"multibyte name at max", strings.Repeat("é", NameMaxLength), "", ""},
		{"multibyte name too long", strings.Repeat("é", NameMaxLength+1), "", "Name must not exceed 200 characters"},
		{"details at max", "Alice", strings.Repeat("x", DetailsMaxLength), ""},
		{"details too long", "Alice", strings.Repeat("x", DetailsMaxLength+1), "Details are too long (max 50,000 characters)"},
		{"multibyte details at max", "Alice", strings.Repeat("é", DetailsMaxLength), ""},
		{"multibyte details too long", "Alice", strings.Repeat("é", DetailsMaxLength+1), "Details are too long (max 50,000 characters)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := PersonData(tt.pName, tt.details)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestEmail(t *testing.T) {
	assert.NoError(t, Email(""))
	assert.NoError(t, Email("a.b+c@example.co.uk"))
	assert.Error(t, Email("missing-at.example.com"))
	assert.Error(t, Email("user@nodot"))
}
