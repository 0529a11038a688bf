package lessons

import (
	"fmt"
	"strings"

	"github.com/anvu/studyglass/internal/state"
)

const lessonSystemPrompt = `You are an experienced Vietnamese high-school tutor preparing students for the national graduation exam. Teach clearly and warmly, in Vietnamese. Tailor depth and examples to the student's profile when one is given.`

func buildLessonUserMessage(input Input) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Subject: %s\n", input.Subject))
	b.WriteString(fmt.Sprintf("Topic: %s\n", input.Topic))
	writeProfile(&b, input.Profile)

	b.WriteString(`
Instructions:
Create a lesson on this topic that:
1. Opens with a short summary of what the topic is and why it matters for the exam.
2. Explains the material in 2-4 titled sections, building from basics to exam-level.
3. Lists 3-5 key points worth memorizing.
4. Ends with one practice exercise the student can attempt alone.
5. Use plain text only. No LaTeX, no markdown markup.`)

	return b.String()
}

const deckSystemPrompt = `You create concise study flashcards for Vietnamese high-school students. Card fronts are terms or short questions; backs are precise answers. Write in Vietnamese unless the topic is English vocabulary.`

func buildDeckUserMessage(input DeckInput) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Topic: %s\n", input.Topic))
	b.WriteString(fmt.Sprintf("Number of cards: %d\n", input.Count))
	b.WriteString(`
Instructions:
Create exactly the requested number of flashcards covering the most test-relevant facts of this topic. One fact per card. Keep backs under 40 words.`)

	return b.String()
}

// writeProfile appends the non-empty profile fields as prompt context.
func writeProfile(b *strings.Builder, p state.StudentProfile) {
	fields := []struct {
		label, value string
	}{
		{"Student name", p.Name},
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
			b.WriteString("\nStudent profile:\n")
			wrote = true
		}
		b.WriteString(fmt.Sprintf("- %s: %s\n", f.label, f.value))
	}
}
