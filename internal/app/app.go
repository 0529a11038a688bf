package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/anvu/studyglass/internal/assist"
	"github.com/anvu/studyglass/internal/examprep"
	"github.com/anvu/studyglass/internal/lessons"
	"github.com/anvu/studyglass/internal/router"
	"github.com/anvu/studyglass/internal/screen"
	"github.com/anvu/studyglass/internal/screens/chatbot"
	"github.com/anvu/studyglass/internal/screens/dashboard"
	"github.com/anvu/studyglass/internal/screens/examscreen"
	"github.com/anvu/studyglass/internal/screens/flashcards"
	"github.com/anvu/studyglass/internal/screens/grades"
	"github.com/anvu/studyglass/internal/screens/planner"
	"github.com/anvu/studyglass/internal/screens/subject"
	"github.com/anvu/studyglass/internal/state"
	"github.com/anvu/studyglass/internal/ui/layout"
	"github.com/anvu/studyglass/internal/ui/theme"
)

// Services bundles everything the screens need.
type Services struct {
	Store    *state.Store
	Lessons  *lessons.Service
	Assist   *assist.Service
	ExamPrep *examprep.Service
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	store  *state.Store
	router *router.Router
	width  int
	height int
}

// newAppModel creates an AppModel showing the view recorded in the store.
func newAppModel(svc Services) AppModel {
	factories := map[state.View]router.Factory{
		state.ViewDashboard: func() screen.Screen {
			return dashboard.New(svc.Store)
		},
		state.ViewSubject: func() screen.Screen {
			return subject.New(svc.Store, svc.Lessons)
		},
		state.ViewFlashcards: func() screen.Screen {
			return flashcards.New(svc.Store)
		},
		state.ViewPlanner: func() screen.Screen {
			return planner.New(svc.Store)
		},
		state.ViewChatbot: func() screen.Screen {
			return chatbot.New(svc.Store, svc.Assist)
		},
		state.ViewExamPrep: func() screen.Screen {
			return examscreen.New(svc.Store, svc.ExamPrep)
		},
		state.ViewGradeTracker: func() screen.Screen {
			return grades.New(svc.Store)
		},
	}

	return AppModel{
		store:  svc.Store,
		router: router.New(svc.Store, factories),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+t":
			theme.CyclePalette()
			return m, nil
		case "ctrl+b":
			theme.ToggleMode()
			return m, nil
		case "esc":
			if m.router.ActiveView() != state.ViewDashboard {
				return m, router.Navigate(state.ViewDashboard)
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	stats := m.store.State().StudyStats
	header := layout.RenderHeader(title, stats.StreakDays, stats.TotalStudyMinutes, m.width)

	footerHints := []layout.KeyHint{
		{Key: "esc", Description: "trang chủ"},
		{Key: "ctrl+c", Description: "thoát"},
	}
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(svc Services) error {
	p := tea.NewProgram(newAppModel(svc))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
