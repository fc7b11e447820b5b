package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/adelr/rolodex-be/internal/ai"
	"github.com/adelr/rolodex-be/internal/cache"
	"github.com/adelr/rolodex-be/internal/models"
	"github.com/adelr/rolodex-be/internal/validation"
	"github.com/rs/zerolog/log"
)

const blueprintCacheTTL = 24 * time.Hour

// BlueprintResult is a generated person blueprint.
type BlueprintResult struct {
	Summary     string    `json:"summary"`
	GeneratedAt time.Time `json:"generated_at"`
}

// AnswerResult is a generated answer to a question about the user's people.
type AnswerResult struct {
	Question    string    `json:"question"`
	Answer      string    `json:"answer"`
	GeneratedAt time.Time `json:"generated_at"`
}

// AIServiceProvider defines the interface for AI-derived text features.
type AIServiceProvider interface {
	IsEnabled() bool
	GeneratePersonBlueprint(ctx context.Context, person *models.Person) (*BlueprintResult, error)
	AnswerQuestion(ctx context.Context, question string, people []*models.Person) (*AnswerResult, error)
}

// AIService composes prompts from person data and forwards them to the
// external text-generation collaborator.
type AIService struct {
	generator ai.TextGenerator
	cache     cache.Cache // nil disables caching
}

// NewAIService creates a new AIService. A nil generator leaves the service
// disabled.
func NewAIService(generator ai.TextGenerator, blueprintCache cache.Cache) *AIService {
	return &AIService{generator: generator, cache: blueprintCache}
}

// IsEnabled reports whether a generation provider was configured at startup.
func (s *AIService) IsEnabled() bool {
	return s.generator != nil
}

// GeneratePersonBlueprint builds the blueprint prompt for a person and
// returns the collaborator's raw text with a generation timestamp.
func (s *AIService) GeneratePersonBlueprint(ctx context.Context, person *models.Person) (*BlueprintResult, error) {
	if !s.IsEnabled() {
		return nil, &validation.Error{Message: "AI feature not configured. Please set GEMINI_API_KEY environment variable."}
	}
	if person.Details == "" {
		return nil, &validation.Error{Message: "No details available to summarize"}
	}

	cacheKey := fmt.Sprintf("blueprint:%s:%d", person.ID, person.UpdatedAt.UnixNano())
	if s.cache != nil {
		var cached BlueprintResult
		if err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
			log.Debug().Str("person_id", person.ID).Msg("Blueprint served from cache")
			return &cached, nil
		}
	}

	text, err := s.generator.GenerateText(ctx, blueprintPrompt(person))
	if err != nil {
		log.Error().Err(err).Str("person_id", person.ID).Msg("Blueprint generation failed")
		return nil, fmt.Errorf("generating blueprint: %w", err)
	}

	result := &BlueprintResult{
		Summary:     strings.TrimSpace(text),
		GeneratedAt: time.Now(),
	}
	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey, result, blueprintCacheTTL); err != nil {
			log.Warn().Err(err).Msg("Failed to cache blueprint")
		}
	}
	log.Info().Str("person_id", person.ID).Msg("Blueprint generated")
	return result, nil
}

// AnswerQuestion concatenates every person's name and details into a context
// block, appends the question, and returns the collaborator's answer.
func (s *AIService) AnswerQuestion(ctx context.Context, question string, people []*models.Person) (*AnswerResult, error) {
	if !s.IsEnabled() {
		return nil, &validation.Error{Message: "AI feature not configured. Please set GEMINI_API_KEY environment variable."}
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, &validation.Error{Message: "Question is required"}
	}
	if len(people) == 0 {
		return nil, &validation.Error{Message: "No people in your contacts yet"}
	}

	text, err := s.generator.GenerateText(ctx, questionPrompt(question, people))
	if err != nil {
		log.Error().Err(err).Msg("Answer generation failed")
		return nil, fmt.Errorf("answering question: %w", err)
	}

	log.Info().Int("people", len(people)).Msg("Question answered")
	return &AnswerResult{
		Question:    question,
		Answer:      strings.TrimSpace(text),
		GeneratedAt: time.Now(),
	}, nil
}

func blueprintPrompt(person *models.Person) string {
	return fmt.Sprintf(`You are an expert relationship manager and personal assistant. Analyze the following information about "%s" and create a comprehensive "Person Blueprint".

Raw Details:
%s

Create a detailed analysis with the following sections:

## KEY INFORMATION
Extract and list contact details, important dates, and basic facts.

## WHO THEY ARE
Describe their role, background, profession, interests, and key characteristics.

## PERSONALITY TRAITS
Analyze their personality based on interactions and notes. Include:
- Communication style
- Interests and passions
- Values and priorities
- Strengths and notable qualities

## HOW TO APPROACH
Provide practical advice on:
- Best ways to communicate with them
- Topics they're interested in
- Things to remember when interacting
- Do's and don'ts

## RELATIONSHIP TIMELINE
Summarize key moments chronologically (when you met, important updates, last contact, etc.)

## QUICK INSIGHTS
3-5 bullet points of the most important things to remember about this person.

Format the response in clear sections with appropriate spacing. Be insightful, practical, and personable. Focus on actionable insights that help build better relationships.`, person.Name, person.Details)
}

func questionPrompt(question string, people []*models.Person) string {
	var notes strings.Builder
	notes.WriteString("You have access to information about the following people:\n\n")
	for _, person := range people {
		fmt.Fprintf(&notes, "=== %s ===\n", person.Name)
		if person.Details != "" {
			notes.WriteString(person.Details)
			notes.WriteString("\n")
		} else {
			notes.WriteString("No details available.\n")
		}
		notes.WriteString("\n")
	}

	return fmt.Sprintf(`You are a personal assistant helping manage relationships and contacts. You have access to notes about multiple people.

%s

User Question: %s

Instructions:
1. Analyze the question and determine which person(s) it relates to
2. Provide a clear, helpful answer based on the available information
3. If the question is about a specific person, mention their name in your answer
4. If the question involves multiple people, list them clearly
5. If the information isn't available, say so honestly
6. Be conversational and helpful
7. Keep answers concise (2-4 sentences) unless more detail is needed

Answer the question now:`, notes.String(), question)
}
