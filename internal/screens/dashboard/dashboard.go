// Package dashboard is the landing screen: greeting, subject shortcuts,
// recent lessons and today's tasks at a glance.
package dashboard

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/anvu/studyglass/internal/router"
	"github.com/anvu/studyglass/internal/screen"
	"github.com/anvu/studyglass/internal/state"
	"github.com/anvu/studyglass/internal/ui/components"
	"github.com/anvu/studyglass/internal/ui/layout"
	"github.com/anvu/studyglass/internal/ui/theme"
)

// DashboardScreen is the application's landing screen.
type DashboardScreen struct {
	store *state.Store
	menu  components.Menu

	editingProfile bool
	profileForm    *profileForm
}

var _ screen.Screen = (*DashboardScreen)(nil)

// New creates a new DashboardScreen.
func New(store *state.Store) *DashboardScreen {
	subjects := state.Subjects()
	items := make([]components.MenuItem, 0, len(subjects)+5)
	for _, subject := range subjects {
		subject := subject
		items = append(items, components.MenuItem{
			Label: string(subject),
			Action: func() tea.Cmd {
				return router.NavigateSubject(subject)
			},
		})
	}
	items = append(items,
		components.MenuItem{Label: "Thẻ ghi nhớ", Action: func() tea.Cmd {
			return router.Navigate(state.ViewFlashcards)
		}},
		components.MenuItem{Label: "Kế hoạch học tập", Action: func() tea.Cmd {
			return router.Navigate(state.ViewPlanner)
		}},
		components.MenuItem{Label: "Trợ lý AI", Action: func() tea.Cmd {
			return router.Navigate(state.ViewChatbot)
		}},
		components.MenuItem{Label: "Luyện đề", Action: func() tea.Cmd {
			return router.Navigate(state.ViewExamPrep)
		}},
		components.MenuItem{Label: "Bảng điểm", Action: func() tea.Cmd {
			return router.Navigate(state.ViewGradeTracker)
		}},
	)

	return &DashboardScreen{
		store: store,
		menu:  components.NewMenu(items),
	}
}

func (d *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if d.editingProfile {
		done, cmd := d.profileForm.Update(msg)
		if done {
			d.editingProfile = false
			d.profileForm = nil
		}
		return d, cmd
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "p" {
		d.editingProfile = true
		d.profileForm = newProfileForm(d.store)
		return d, d.profileForm.Init()
	}

	var cmd tea.Cmd
	d.menu, cmd = d.menu.Update(msg)
	return d, cmd
}

func (d *DashboardScreen) View(width, height int) string {
	if d.editingProfile {
		return d.profileForm.View(width, height)
	}

	st := d.store.State()

	var sections []string
	sections = append(sections, theme.Title.Width(width).Render(greeting(st.StudentProfile.Name, time.Now())))
	sections = append(sections, theme.Subtitle.Width(width).Render(subline(st)))
	sections = append(sections, d.menu.View())

	if summary := recentSummary(st); summary != "" {
		sections = append(sections, theme.Card.Render(summary))
	}

	content := strings.Join(sections, "\n\n")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (d *DashboardScreen) Title() string {
	return "Trang chủ"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	if d.editingProfile {
		return []layout.KeyHint{
			{Key: "enter", Description: "trường tiếp theo"},
			{Key: "esc", Description: "hủy"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "chọn"},
		{Key: "enter", Description: "mở"},
		{Key: "p", Description: "hồ sơ"},
		{Key: "ctrl+t", Description: "đổi màu"},
		{Key: "ctrl+c", Description: "thoát"},
	}
}

func greeting(name string, now time.Time) string {
	var when string
	switch h := now.Hour(); {
	case h < 12:
		when = "Chào buổi sáng"
	case h < 18:
		when = "Chào buổi chiều"
	default:
		when = "Chào buổi tối"
	}
	if name == "" {
		return when + "!"
	}
	return fmt.Sprintf("%s, %s!", when, name)
}

func subline(st state.AppState) string {
	parts := []string{
		fmt.Sprintf("Chuỗi %d ngày", st.StudyStats.StreakDays),
	}
	if st.StudentProfile.TargetUniversity != "" {
		parts = append(parts, "Mục tiêu: "+st.StudentProfile.TargetUniversity)
	}
	return strings.Join(parts, "  ·  ")
}

// recentSummary lists the newest saved lessons and the open tasks.
func recentSummary(st state.AppState) string {
	var b strings.Builder

	if len(st.SavedLessons) > 0 {
		b.WriteString(theme.Selected.Render("Bài học gần đây"))
		for i, lesson := range st.SavedLessons {
			if i == 3 {
				break
			}
			fmt.Fprintf(&b, "\n  %s · %s", lesson.Subject, lesson.Topic)
		}
	}

	open := 0
	for _, task := range st.Tasks {
		if !task.Completed {
			open++
		}
	}
	if open > 0 {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(theme.Selected.Render("Hôm nay"))
		fmt.Fprintf(&b, "\n  %d việc chưa hoàn thành", open)
	}

	return b.String()
}
