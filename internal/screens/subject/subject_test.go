package subject

import (
	"encoding/json"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/anvu/studyglass/internal/lessons"
	"github.com/anvu/studyglass/internal/llm"
	"github.com/anvu/studyglass/internal/state"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func enter() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

const lessonJSON = `{
	"title": "Hàm số bậc hai",
	"summary": "Tổng quan về parabol.",
	"sections": [{"heading": "Định nghĩa", "body": "y = ax^2 + bx + c"}],
	"key_points": ["đỉnh parabol"],
	"practice": "Vẽ đồ thị y = x^2."
}`

func testScreen(responses ...llm.MockResponse) (*SubjectScreen, *state.Store) {
	store := state.NewStore(nil)
	subj := state.SubjectMath
	store.NavigateTo(state.ViewSubject, &subj)
	service := lessons.NewService(llm.NewMockProvider(responses...), lessons.DefaultConfig())
	return New(store, service), store
}

func TestGenerateAndSaveLesson(t *testing.T) {
	s, store := testScreen(llm.MockResponse{Content: json.RawMessage(lessonJSON)})

	for _, r := range "hàm số bậc hai" {
		s.Update(keyPress(r))
	}
	_, cmd := s.Update(enter())
	if s.phase != phaseLoading {
		t.Fatalf("expected loading phase, got %v", s.phase)
	}
	if cmd == nil {
		t.Fatal("expected a generation command")
	}

	s.Update(cmd())
	if s.phase != phaseLesson {
		t.Fatalf("expected lesson phase, got %v (err %q)", s.phase, s.errText)
	}
	if store.State().StudyStats.TotalStudyMinutes == 0 {
		t.Error("expected study minutes credited")
	}

	s.Update(keyPress('s'))
	saved := store.State().SavedLessons
	if len(saved) != 1 {
		t.Fatalf("expected 1 saved lesson, got %d", len(saved))
	}
	if saved[0].Subject != state.SubjectMath || saved[0].Topic != "hàm số bậc hai" {
		t.Errorf("unexpected lesson record %+v", saved[0])
	}

	// Saving twice must not duplicate.
	s.Update(keyPress('s'))
	if len(store.State().SavedLessons) != 1 {
		t.Error("expected save to be idempotent")
	}
}

func TestGenerateDeckAddsCards(t *testing.T) {
	deckJSON := `{"cards": [{"front": "đỉnh?", "back": "(-b/2a, ...)"}, {"front": "trục?", "back": "x = -b/2a"}]}`
	s, store := testScreen(
		llm.MockResponse{Content: json.RawMessage(lessonJSON)},
		llm.MockResponse{Content: json.RawMessage(deckJSON)},
	)

	s.Update(keyPress('x'))
	_, cmd := s.Update(enter())
	s.Update(cmd())

	_, cmd = s.Update(keyPress('f'))
	if cmd == nil {
		t.Fatal("expected a deck command")
	}
	s.Update(cmd())

	cards := store.State().Flashcards
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	if cards[0].Topic != "x" {
		t.Errorf("expected cards tagged with the topic, got %q", cards[0].Topic)
	}
	if cards[0].ID == cards[1].ID {
		t.Error("expected distinct card ids")
	}
}

func TestGenerationFailureShowsError(t *testing.T) {
	s, _ := testScreen() // empty queue, provider unavailable

	s.Update(keyPress('x'))
	_, cmd := s.Update(enter())
	s.Update(cmd())

	if s.phase != phaseError {
		t.Fatalf("expected error phase, got %v", s.phase)
	}

	s.Update(enter())
	if s.phase != phaseInput {
		t.Errorf("expected back at topic input, got %v", s.phase)
	}
}

func TestEmptyTopicIgnored(t *testing.T) {
	s, _ := testScreen()
	_, cmd := s.Update(enter())
	if s.phase != phaseInput || cmd != nil {
		t.Error("expected empty topic to be ignored")
	}
}
