// Package assist produces the chat assistant's replies, personalized by
// the student profile.
package assist

import (
	"context"
	"fmt"
	"strings"

	"github.com/anvu/studyglass/internal/llm"
	"github.com/anvu/studyglass/internal/state"
)

// Service answers chat messages against a session transcript.
type Service struct {
	provider  llm.Provider
	maxTokens int
}

// NewService creates a chat assistant service.
func NewService(provider llm.Provider) *Service {
	return &Service{provider: provider, maxTokens: 1024}
}

const systemPromptBase = `You are a friendly AI study companion for a Vietnamese high-school student preparing for the national graduation exam. Answer study questions across Math, Literature, English, and Informatics. Reply in Vietnamese (except when teaching English). Be concise; prefer worked examples to abstract explanation.`

// Reply generates the assistant's next message for the given transcript.
// The transcript must end with a user message.
func (s *Service) Reply(ctx context.Context, profile state.StudentProfile, transcript []state.ChatMessage) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeChat)

	if len(transcript) == 0 || transcript[len(transcript)-1].Role != "user" {
		return "", fmt.Errorf("transcript must end with a user message")
	}

	messages := make([]llm.Message, 0, len(transcript))
	for _, m := range transcript {
		role := llm.RoleUser
		if m.Role == "assistant" {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: m.Content})
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      buildSystemPrompt(profile),
		Messages:    messages,
		MaxTokens:   s.maxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("chat reply: %w", err)
	}

	return resp.Text(), nil
}

// buildSystemPrompt appends the student's profile so answers are tailored
// to their goals and weaknesses.
func buildSystemPrompt(p state.StudentProfile) string {
	var b strings.Builder
	b.WriteString(systemPromptBase)

	fields := []struct {
		label, value string
	}{
		{"Name", p.Name},
		{"Target university", p.TargetUniversity},
		{"Target major", p.TargetMajor},
		{"Target score", p.TargetScore},
		{"Strengths", p.Strengths},
		{"Weaknesses", p.Weaknesses},
		{"Learning style", p.LearningStyle},
	}

	wrote := false
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if !wrote {
			b.WriteString("\n\nAbout this student:\n")
			wrote = true
		}
		fmt.Fprintf(&b, "- %s: %s\n", f.label, f.value)
	}

	return b.String()
}
