// Package examprep generates multiple-choice practice exams tailored to
// the student's target score and weaknesses.
package examprep

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anvu/studyglass/internal/llm"
	"github.com/anvu/studyglass/internal/state"
)

// Question is a single multiple-choice exam question.
type Question struct {
	Text        string
	Choices     []string
	Answer      int // index into Choices
	Explanation string
}

// Exam is a generated practice exam.
type Exam struct {
	Subject   state.Subject
	Questions []Question
}

// Input holds the context for exam generation.
type Input struct {
	Subject state.Subject
	Count   int
	Profile state.StudentProfile
}

// Service generates practice exams.
type Service struct {
	provider  llm.Provider
	maxTokens int
}

// NewService creates an exam generation service.
func NewService(provider llm.Provider) *Service {
	return &Service{provider: provider, maxTokens: 3072}
}

// ExamSchema defines the JSON schema for practice exam generation.
var ExamSchema = &llm.Schema{
	Name:        "practice-exam",
	Description: "A multiple-choice practice exam with answer key and explanations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"text": map[string]any{
							"type": "string",
						},
						"choices": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly four answer choices",
						},
						"answer": map[string]any{
							"type":        "integer",
							"description": "Zero-based index of the correct choice",
						},
						"explanation": map[string]any{
							"type": "string",
						},
					},
					"required":             []any{"text", "choices", "answer", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

const examSystemPrompt = `You write multiple-choice questions in the style of the Vietnamese national graduation exam. Each question has exactly four choices and one correct answer. Write in Vietnamese (English questions for the English subject). Difficulty should match the student's target score when given.`

type examOutput struct {
	Questions []struct {
		Text        string   `json:"text"`
		Choices     []string `json:"choices"`
		Answer      int      `json:"answer"`
		Explanation string   `json:"explanation"`
	} `json:"questions"`
}

// Generate produces a practice exam for the subject.
func (s *Service) Generate(ctx context.Context, input Input) (*Exam, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeExam)

	if input.Count <= 0 {
		input.Count = 10
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: examSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildExamUserMessage(input)},
		},
		Schema:      ExamSchema,
		MaxTokens:   s.maxTokens,
		Temperature: 0.5,
	})
	if err != nil {
		return nil, fmt.Errorf("generate exam: %w", err)
	}

	var out examOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("decode exam: %w", err)
	}

	exam := &Exam{Subject: input.Subject}
	for _, q := range out.Questions {
		// Discard malformed questions rather than failing the exam: a
		// partially usable set is still worth practicing.
		if q.Answer < 0 || q.Answer >= len(q.Choices) {
			continue
		}
		exam.Questions = append(exam.Questions, Question(q))
	}
	if len(exam.Questions) == 0 {
		return nil, fmt.Errorf("decode exam: no usable questions")
	}
	return exam, nil
}

func buildExamUserMessage(input Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Subject: %s\n", input.Subject)
	fmt.Fprintf(&b, "Number of questions: %d\n", input.Count)
	if input.Profile.TargetScore != "" {
		fmt.Fprintf(&b, "Target score: %s\n", input.Profile.TargetScore)
	}
	if input.Profile.Weaknesses != "" {
		fmt.Fprintf(&b, "Weak areas to emphasize: %s\n", input.Profile.Weaknesses)
	}

	b.WriteString(`
Instructions:
Write the requested number of questions. Cover the subject's core exam topics, weighted toward the weak areas when given. Plain text only.`)

	return b.String()
}
