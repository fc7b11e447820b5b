package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adelr/rolodex-be/internal/models"
	"github.com/adelr/rolodex-be/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator records the prompt it was given and returns a canned reply.
type fakeGenerator struct {
	prompt string
	reply  string
	err    error
}

func (f *fakeGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func TestAIServiceDisabled(t *testing.T) {
	svc := NewAIService(nil, nil)
	assert.False(t, svc.IsEnabled())

	var vErr *validation.Error

	_, err := svc.GeneratePersonBlueprint(context.Background(), &models.Person{Details: "x"})
	require.ErrorAs(t, err, &vErr)

	_, err = svc.AnswerQuestion(context.Background(), "who?", []*models.Person{{Name: "Alice"}})
	require.ErrorAs(t, err, &vErr)
}

func TestGeneratePersonBlueprint(t *testing.T) {
	gen := &fakeGenerator{reply: "  a blueprint  "}
	svc := NewAIService(gen, nil)

	person := models.NewPerson("Alice", "loves hiking", "u1")
	result, err := svc.GeneratePersonBlueprint(context.Background(), person)
	require.NoError(t, err)

	assert.Equal(t, "a blueprint", result.Summary)
	assert.WithinDuration(t, time.Now(), result.GeneratedAt, time.Minute)
	assert.Contains(t, gen.prompt, `"Alice"`)
	assert.Contains(t, gen.prompt, "loves hiking")
	assert.Contains(t, gen.prompt, "Person Blueprint")
}

func TestGeneratePersonBlueprintNoDetails(t *testing.T) {
	svc := NewAIService(&fakeGenerator{reply: "x"}, nil)

	var vErr *validation.Error
	_, err := svc.GeneratePersonBlueprint(context.Background(), &models.Person{Name: "Alice"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "No details available to summarize", vErr.Message)
}

func TestGeneratePersonBlueprintGeneratorFailure(t *testing.T) {
	boom := errors.New("upstream down")
	svc := NewAIService(&fakeGenerator{err: boom}, nil)

	_, err := svc.GeneratePersonBlueprint(context.Background(), &models.Person{Name: "Alice", Details: "x"})
	require.ErrorIs(t, err, boom)

	var vErr *validation.Error
	assert.False(t, errors.As(err, &vErr), "collaborator failures are not validation errors")
}

func TestAnswerQuestion(t *testing.T) {
	gen := &fakeGenerator{reply: "Bob works at Acme."}
	svc := NewAIService(gen, nil)

	people := []*models.Person{
		{Name: "Alice", Details: "climber"},
		{Name: "Bob"},
	}
	result, err := svc.AnswerQuestion(context.Background(), "  where does Bob work?  ", people)
	require.NoError(t, err)

	assert.Equal(t, "where does Bob work?", result.Question)
	assert.Equal(t, "Bob works at Acme.", result.Answer)
	assert.Contains(t, gen.prompt, "=== Alice ===")
	assert.Contains(t, gen.prompt, "climber")
	assert.Contains(t, gen.prompt, "=== Bob ===")
	assert.Contains(t, gen.prompt, "No details available.")
	assert.Contains(t, gen.prompt, "where does Bob work?")
}

func TestAnswerQuestionValidation(t *testing.T) {
	svc := NewAIService(&fakeGenerator{reply: "x"}, nil)
	var vErr *validation.Error

	_, err := svc.AnswerQuestion(context.Background(), "   ", []*models.Person{{Name: "Alice"}})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Question is required", vErr.Message)

	_, err = svc.AnswerQuestion(context.Background(), "who?", nil)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "No people in your contacts yet", vErr.Message)
}
