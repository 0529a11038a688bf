package examscreen

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/anvu/studyglass/internal/examprep"
	"github.com/anvu/studyglass/internal/llm"
	"github.com/anvu/studyglass/internal/state"
)

func testScreen() (*ExamScreen, *state.Store) {
	store := state.NewStore(nil)
	service := examprep.NewService(llm.NewMockProvider())
	return New(store, service), store
}

func twoQuestionExam() *examprep.Exam {
	return &examprep.Exam{
		Subject: state.SubjectMath,
		Questions: []examprep.Question{
			{Text: "1+1?", Choices: []string{"1", "2", "3", "4"}, Answer: 1},
			{Text: "2*3?", Choices: []string{"5", "6", "7", "8"}, Answer: 1},
		},
	}
}

func enter() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

func down() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyDown}
}

func TestExamFlowRecordsGrade(t *testing.T) {
	s, store := testScreen()

	s.Update(examReadyMsg{Exam: twoQuestionExam()})
	if s.phase != phaseQuestion {
		t.Fatalf("expected question phase, got %v", s.phase)
	}

	// Q1: pick choice index 1 (correct).
	s.Update(down())
	s.Update(enter())
	if !s.choice.IsCorrect() {
		t.Fatal("expected first answer correct")
	}
	s.Update(enter()) // next question

	// Q2: submit choice index 0 (wrong).
	s.Update(enter())
	if s.choice.IsCorrect() {
		t.Fatal("expected second answer wrong")
	}
	s.Update(enter()) // finish

	if s.phase != phaseDone {
		t.Fatalf("expected done phase, got %v", s.phase)
	}

	entries := store.State().GradeRecord[string(state.SubjectMath)]
	if len(entries) != 1 {
		t.Fatalf("expected one grade entry, got %+v", entries)
	}
	if entries[0].Score != 5.0 {
		t.Errorf("expected score 5.0 for 1/2 correct, got %v", entries[0].Score)
	}
	if store.State().StudyStats.TotalStudyMinutes == 0 {
		t.Error("expected study minutes credited")
	}
}

func TestGenerationErrorShowsRetry(t *testing.T) {
	s, _ := testScreen()

	s.Update(examReadyMsg{Err: &llm.ErrProviderUnavailable{}})
	if s.phase != phaseError {
		t.Fatalf("expected error phase, got %v", s.phase)
	}

	s.Update(enter())
	if s.phase != phasePick {
		t.Errorf("expected back at subject pick, got %v", s.phase)
	}
}

func TestFinishRecordsOnlyOnce(t *testing.T) {
	s, store := testScreen()

	exam := &examprep.Exam{
		Subject: state.SubjectMath,
		Questions: []examprep.Question{
			{Text: "q", Choices: []string{"a", "b"}, Answer: 0},
		},
	}
	s.Update(examReadyMsg{Exam: exam})
	s.Update(enter()) // answer
	s.Update(enter()) // finish
	s.finish()        // a second finish must not double-record

	entries := store.State().GradeRecord[string(state.SubjectMath)]
	if len(entries) != 1 {
		t.Fatalf("expected exactly one entry, got %d", len(entries))
	}
}
