package grades

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/anvu/studyglass/internal/state"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"8.5", 8.5, false},
		{" 10 ", 10, false},
		{"0", 0, false},
		{"11", 0, true},
		{"-1", 0, true},
		{"chín", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := parseScore(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseScore(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseScore(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseScore(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestAddGradeThroughForm(t *testing.T) {
	store := state.NewStore(nil)
	s := New(store)

	s.Update(keyPress('a'))
	for _, r := range "8.5" {
		s.Update(keyPress(r))
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}) // to note field
	for _, r := range "thi thử" {
		s.Update(keyPress(r))
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}) // save

	key := string(state.SubjectMath)
	entries := store.State().GradeRecord[key]
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry under %q, got %+v", key, store.State().GradeRecord)
	}
	if entries[0].Score != 8.5 || entries[0].Note != "thi thử" {
		t.Errorf("unexpected entry %+v", entries[0])
	}
	if entries[0].Date == "" {
		t.Error("expected a date stamp")
	}
}

func TestInvalidScoreKeepsFormOpen(t *testing.T) {
	store := state.NewStore(nil)
	s := New(store)

	s.Update(keyPress('a'))
	for _, r := range "15" {
		s.Update(keyPress(r))
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if !s.adding {
		t.Error("expected form to stay open on invalid score")
	}
	if s.addErr == "" {
		t.Error("expected a validation message")
	}
	if len(store.State().GradeRecord) != 0 {
		t.Error("expected nothing recorded")
	}
}

func TestDeleteLastEntry(t *testing.T) {
	store := state.NewStore(nil)
	key := string(state.SubjectMath)
	store.SetGrades(map[string][]state.GradeEntry{
		key: {{Score: 7}, {Score: 9}},
	})
	s := New(store)

	s.Update(keyPress('d'))

	entries := store.State().GradeRecord[key]
	if len(entries) != 1 || entries[0].Score != 7 {
		t.Fatalf("expected the newest entry removed, got %+v", entries)
	}

	// Deleting on an empty subject is a no-op.
	s.Update(keyPress('d'))
	s.Update(keyPress('d'))
	if len(store.State().GradeRecord[key]) != 0 {
		t.Error("expected subject emptied")
	}
}

func TestSubjectTabsNavigate(t *testing.T) {
	store := state.NewStore(nil)
	s := New(store)

	s.Update(keyPress('l'))
	if s.subjectIdx != 1 {
		t.Errorf("expected subject index 1, got %d", s.subjectIdx)
	}
	s.Update(keyPress('h'))
	s.Update(keyPress('h'))
	if s.subjectIdx != 0 {
		t.Errorf("expected subject index clamped at 0, got %d", s.subjectIdx)
	}
}
