package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/anvu/studyglass/internal/screen"
	"github.com/anvu/studyglass/internal/state"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func testFactories(last map[state.View]*stubScreen) map[state.View]Factory {
	factories := make(map[state.View]Factory)
	for _, v := range []state.View{state.ViewDashboard, state.ViewSubject, state.ViewPlanner} {
		view := v
		factories[view] = func() screen.Screen {
			s := &stubScreen{title: string(view)}
			if last != nil {
				last[view] = s
			}
			return s
		}
	}
	return factories
}

func TestNewActivatesStoredView(t *testing.T) {
	store := state.NewStore(nil)
	store.NavigateTo(state.ViewPlanner, nil)

	r := New(store, testFactories(nil))

	if r.ActiveView() != state.ViewPlanner {
		t.Errorf("expected planner view, got %q", r.ActiveView())
	}
	if r.Active().Title() != string(state.ViewPlanner) {
		t.Errorf("expected planner screen, got %q", r.Active().Title())
	}
}

func TestNewFallsBackToDashboard(t *testing.T) {
	store := state.NewStore(nil)
	store.NavigateTo(state.ViewChatbot, nil) // no factory registered

	r := New(store, testFactories(nil))

	if r.ActiveView() != state.ViewDashboard {
		t.Errorf("expected dashboard fallback, got %q", r.ActiveView())
	}
}

func TestNavigateMsgSwitchesScreenAndCommitsState(t *testing.T) {
	store := state.NewStore(nil)
	last := make(map[state.View]*stubScreen)
	r := New(store, testFactories(last))

	subject := state.SubjectMath
	r.Update(NavigateMsg{View: state.ViewSubject, Subject: &subject})

	if r.ActiveView() != state.ViewSubject {
		t.Errorf("expected subject view, got %q", r.ActiveView())
	}
	if !last[state.ViewSubject].initRan {
		t.Error("expected Init() to run on the new screen")
	}

	st := store.State()
	if st.CurrentView != state.ViewSubject {
		t.Errorf("expected store currentView subject, got %q", st.CurrentView)
	}
	if st.ActiveSubject == nil || *st.ActiveSubject != state.SubjectMath {
		t.Errorf("expected active subject %q, got %v", state.SubjectMath, st.ActiveSubject)
	}
}

func TestNavigateRebuildsScreenEachTime(t *testing.T) {
	store := state.NewStore(nil)
	last := make(map[state.View]*stubScreen)
	r := New(store, testFactories(last))

	r.Update(NavigateMsg{View: state.ViewPlanner})
	first := last[state.ViewPlanner]
	r.Update(NavigateMsg{View: state.ViewDashboard})
	r.Update(NavigateMsg{View: state.ViewPlanner})

	if last[state.ViewPlanner] == first {
		t.Error("expected a fresh screen on re-entry")
	}
}

func TestUpdateForwardsToActiveScreen(t *testing.T) {
	store := state.NewStore(nil)
	r := New(store, testFactories(nil))

	// A non-navigation message should reach the active screen without
	// changing it.
	r.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	if r.ActiveView() != state.ViewDashboard {
		t.Errorf("expected dashboard still active, got %q", r.ActiveView())
	}
}
