package flashcards

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/anvu/studyglass/internal/state"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func seededScreen(cards ...state.Flashcard) (*FlashcardsScreen, *state.Store) {
	store := state.NewStore(nil)
	store.Flashcards().Replace(cards)
	return New(store), store
}

func TestFlipIncrementsFlipCount(t *testing.T) {
	s, store := seededScreen(state.Flashcard{ID: "c1", Front: "sin(0)", Back: "0"})

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if !s.flipped {
		t.Error("expected card to be flipped")
	}
	if got := store.State().Flashcards[0].Flips; got != 1 {
		t.Errorf("expected 1 flip recorded, got %d", got)
	}

	// Flipping back to the front does not count again.
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if got := store.State().Flashcards[0].Flips; got != 1 {
		t.Errorf("expected flips unchanged, got %d", got)
	}
}

func TestToggleKnown(t *testing.T) {
	s, store := seededScreen(state.Flashcard{ID: "c1", Front: "q", Back: "a"})

	s.Update(keyPress('k'))
	if !store.State().Flashcards[0].Known {
		t.Error("expected card marked known")
	}

	s.Update(keyPress('k'))
	if store.State().Flashcards[0].Known {
		t.Error("expected known flag cleared")
	}
}

func TestDeleteCardClampsIndex(t *testing.T) {
	s, store := seededScreen(
		state.Flashcard{ID: "c1", Front: "q1", Back: "a1"},
		state.Flashcard{ID: "c2", Front: "q2", Back: "a2"},
	)

	s.Update(keyPress('l')) // move to the last card
	s.Update(keyPress('d'))

	deck := store.State().Flashcards
	if len(deck) != 1 || deck[0].ID != "c1" {
		t.Fatalf("expected only c1 left, got %+v", deck)
	}
	if s.index != 0 {
		t.Errorf("expected index clamped to 0, got %d", s.index)
	}
}

func TestAddCardThroughForm(t *testing.T) {
	s, store := seededScreen()

	s.Update(keyPress('a'))
	if !s.adding {
		t.Fatal("expected add form to open")
	}

	for _, r := range "2+2" {
		s.Update(keyPress(r))
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}) // to back side
	for _, r := range "4" {
		s.Update(keyPress(r))
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}) // save

	deck := store.State().Flashcards
	if len(deck) != 1 {
		t.Fatalf("expected 1 card, got %d", len(deck))
	}
	if deck[0].Front != "2+2" || deck[0].Back != "4" {
		t.Errorf("unexpected card content: %+v", deck[0])
	}
	if deck[0].ID == "" {
		t.Error("expected a generated card ID")
	}
}

func TestAddFormRejectsEmptySides(t *testing.T) {
	s, store := seededScreen()

	s.Update(keyPress('a'))
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}) // empty front, move on
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}) // empty back, try save

	if len(store.State().Flashcards) != 0 {
		t.Error("expected no card added for empty input")
	}
	if !s.adding {
		t.Error("expected form to stay open")
	}
}

func TestEmptyDeckView(t *testing.T) {
	s, _ := seededScreen()
	view := s.View(100, 30)
	if view == "" {
		t.Error("expected a non-empty empty-deck message")
	}
}
