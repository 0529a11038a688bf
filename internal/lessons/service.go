package lessons

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anvu/studyglass/internal/llm"
)

// Service generates subject lessons and flashcard decks.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// Config tunes generation requests.
type Config struct {
	LessonMaxTokens int
	DeckMaxTokens   int
	Temperature     float64
}

// DefaultConfig returns the standard generation settings.
func DefaultConfig() Config {
	return Config{
		LessonMaxTokens: 2048,
		DeckMaxTokens:   1024,
		Temperature:     0.4,
	}
}

// NewService creates a lesson generation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

type lessonOutput struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Sections []struct {
		Heading string `json:"heading"`
		Body    string `json:"body"`
	} `json:"sections"`
	KeyPoints []string `json:"key_points"`
	Practice  string   `json:"practice"`
}

// Generate produces a lesson for the given subject topic.
func (s *Service) Generate(ctx context.Context, input Input) (*Lesson, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeLesson)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: lessonSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildLessonUserMessage(input)},
		},
		Schema:      LessonSchema,
		MaxTokens:   s.cfg.LessonMaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate lesson: %w", err)
	}

	var out lessonOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("decode lesson: %w", err)
	}

	lesson := &Lesson{
		Title:     out.Title,
		Summary:   out.Summary,
		KeyPoints: out.KeyPoints,
		Practice:  out.Practice,
	}
	for _, sec := range out.Sections {
		lesson.Sections = append(lesson.Sections, Section(sec))
	}
	return lesson, nil
}

type deckOutput struct {
	Cards []struct {
		Front string `json:"front"`
		Back  string `json:"back"`
	} `json:"cards"`
}

// GenerateDeck produces flashcards for a topic.
func (s *Service) GenerateDeck(ctx context.Context, input DeckInput) ([]Card, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeFlashcards)

	if input.Count <= 0 {
		input.Count = 8
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: deckSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildDeckUserMessage(input)},
		},
		Schema:      DeckSchema,
		MaxTokens:   s.cfg.DeckMaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate deck: %w", err)
	}

	var out deckOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("decode deck: %w", err)
	}

	cards := make([]Card, 0, len(out.Cards))
	for _, c := range out.Cards {
		cards = append(cards, Card{Front: c.Front, Back: c.Back})
	}
	return cards, nil
}

// Render flattens a lesson into the plain-text content stored with a
// saved lesson.
func (l *Lesson) Render() string {
	var b strings.Builder

	b.WriteString(l.Title + "\n\n")
	b.WriteString(l.Summary + "\n")
	for _, sec := range l.Sections {
		b.WriteString("\n" + strings.ToUpper(sec.Heading) + "\n")
		b.WriteString(sec.Body + "\n")
	}
	if len(l.KeyPoints) > 0 {
		b.WriteString("\nGhi nhớ:\n")
		for _, kp := range l.KeyPoints {
			b.WriteString("• " + kp + "\n")
		}
	}
	if l.Practice != "" {
		b.WriteString("\nLuyện tập: " + l.Practice + "\n")
	}
	return b.String()
}
