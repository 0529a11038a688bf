package planner

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/anvu/studyglass/internal/state"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func seededScreen(tasks []state.Task, reminders []state.Reminder) (*PlannerScreen, *state.Store) {
	store := state.NewStore(nil)
	store.Tasks().Replace(tasks)
	store.Reminders().Replace(reminders)
	return New(store), store
}

func TestToggleTask(t *testing.T) {
	s, store := seededScreen([]state.Task{{ID: "t1", Text: "ôn đạo hàm"}}, nil)

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !store.State().Tasks[0].Completed {
		t.Error("expected task completed")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if store.State().Tasks[0].Completed {
		t.Error("expected task reopened")
	}
}

func TestDeleteTask(t *testing.T) {
	s, store := seededScreen([]state.Task{
		{ID: "t1", Text: "a"},
		{ID: "t2", Text: "b"},
	}, nil)

	s.Update(keyPress('j')) // select t2
	s.Update(keyPress('d'))

	tasks := store.State().Tasks
	if len(tasks) != 1 || tasks[0].ID != "t1" {
		t.Fatalf("expected only t1 left, got %+v", tasks)
	}
}

func TestAddTaskThroughForm(t *testing.T) {
	s, store := seededScreen(nil, nil)

	s.Update(keyPress('a'))
	for _, r := range "học từ vựng" {
		s.Update(keyPress(r))
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	tasks := store.State().Tasks
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Text != "học từ vựng" {
		t.Errorf("unexpected task text %q", tasks[0].Text)
	}
	if tasks[0].Completed {
		t.Error("new task should start open")
	}
}

func TestAddReminderOnReminderPane(t *testing.T) {
	s, store := seededScreen(nil, nil)

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	s.Update(keyPress('a'))
	for _, r := range "nộp hồ sơ" {
		s.Update(keyPress(r))
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if len(store.State().Tasks) != 0 {
		t.Error("expected no task added")
	}
	reminders := store.State().Reminders
	if len(reminders) != 1 || reminders[0].Text != "nộp hồ sơ" {
		t.Fatalf("expected one reminder, got %+v", reminders)
	}
}

func TestEscCancelsAdd(t *testing.T) {
	s, store := seededScreen(nil, nil)

	s.Update(keyPress('a'))
	s.Update(keyPress('x'))
	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})

	if s.adding {
		t.Error("expected form closed")
	}
	if len(store.State().Tasks) != 0 {
		t.Error("expected nothing saved on cancel")
	}
}
