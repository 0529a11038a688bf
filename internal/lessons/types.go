package lessons

import "github.com/anvu/studyglass/internal/state"

// Lesson is an LLM-generated lesson for one subject topic.
type Lesson struct {
	Title     string
	Summary   string
	Sections  []Section
	KeyPoints []string
	Practice  string
}

// Section is one titled block of lesson content.
type Section struct {
	Heading string
	Body    string
}

// Input holds the context needed to generate a lesson.
type Input struct {
	Subject state.Subject
	Topic   string
	Profile state.StudentProfile
}

// Card is a generated flashcard before the deck screen assigns identifiers.
type Card struct {
	Front string
	Back  string
}

// DeckInput holds the context for flashcard deck generation.
type DeckInput struct {
	Topic string
	Count int
}
