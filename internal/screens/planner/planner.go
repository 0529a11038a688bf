// Package planner is the study planner screen: a task list and a
// reminder list, editable side by side.
package planner

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/anvu/studyglass/internal/screen"
	"github.com/anvu/studyglass/internal/state"
	"github.com/anvu/studyglass/internal/ui/components"
	"github.com/anvu/studyglass/internal/ui/layout"
	"github.com/anvu/studyglass/internal/ui/theme"
)

type pane int

const (
	paneTasks pane = iota
	paneReminders
)

// PlannerScreen manages tasks and reminders.
type PlannerScreen struct {
	store *state.Store

	pane     pane
	taskIdx  int
	remIdx   int
	adding   bool
	addInput components.TextInput
}

var _ screen.Screen = (*PlannerScreen)(nil)

// New creates a PlannerScreen.
func New(store *state.Store) *PlannerScreen {
	return &PlannerScreen{store: store}
}

func (p *PlannerScreen) Init() tea.Cmd {
	return nil
}

func (p *PlannerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	if p.adding {
		return p.updateAdd(kmsg)
	}

	st := p.store.State()

	switch kmsg.String() {
	case "tab":
		if p.pane == paneTasks {
			p.pane = paneReminders
		} else {
			p.pane = paneTasks
		}
	case "up", "k":
		p.move(-1, st)
	case "down", "j":
		p.move(1, st)
	case "a":
		placeholder := "Việc cần làm"
		if p.pane == paneReminders {
			placeholder = "Lời nhắc"
		}
		p.adding = true
		p.addInput = components.NewTextInput(placeholder, false, 200)
		return p, p.addInput.Init()
	case "enter", "space":
		if p.pane == paneTasks && p.taskIdx < len(st.Tasks) {
			p.toggleTask(st.Tasks[p.taskIdx].ID)
		}
	case "d":
		if p.pane == paneTasks && p.taskIdx < len(st.Tasks) {
			p.deleteTask(st.Tasks[p.taskIdx].ID)
			p.clamp()
		} else if p.pane == paneReminders && p.remIdx < len(st.Reminders) {
			p.deleteReminder(st.Reminders[p.remIdx].ID)
			p.clamp()
		}
	}
	return p, nil
}

func (p *PlannerScreen) updateAdd(kmsg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch kmsg.String() {
	case "esc":
		p.adding = false
		return p, nil
	case "enter":
		text := strings.TrimSpace(p.addInput.Value())
		if text == "" {
			return p, nil
		}
		if p.pane == paneTasks {
			p.store.Tasks().Transform(func(tasks []state.Task) []state.Task {
				return append(tasks, state.Task{ID: uuid.NewString(), Text: text})
			})
		} else {
			p.store.Reminders().Transform(func(rs []state.Reminder) []state.Reminder {
				return append(rs, state.Reminder{ID: uuid.NewString(), Text: text})
			})
		}
		p.adding = false
		return p, nil
	}

	var cmd tea.Cmd
	p.addInput, cmd = p.addInput.Update(kmsg)
	return p, cmd
}

func (p *PlannerScreen) move(delta int, st state.AppState) {
	if p.pane == paneTasks {
		p.taskIdx = clampIndex(p.taskIdx+delta, len(st.Tasks))
	} else {
		p.remIdx = clampIndex(p.remIdx+delta, len(st.Reminders))
	}
}

func (p *PlannerScreen) clamp() {
	st := p.store.State()
	p.taskIdx = clampIndex(p.taskIdx, len(st.Tasks))
	p.remIdx = clampIndex(p.remIdx, len(st.Reminders))
}

func clampIndex(i, n int) int {
	if n == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func (p *PlannerScreen) toggleTask(id string) {
	p.store.Tasks().Transform(func(tasks []state.Task) []state.Task {
		out := make([]state.Task, len(tasks))
		copy(out, tasks)
		for i := range out {
			if out[i].ID == id {
				out[i].Completed = !out[i].Completed
			}
		}
		return out
	})
}

func (p *PlannerScreen) deleteTask(id string) {
	p.store.Tasks().Transform(func(tasks []state.Task) []state.Task {
		out := tasks[:0:0]
		for _, t := range tasks {
			if t.ID != id {
				out = append(out, t)
			}
		}
		return out
	})
}

func (p *PlannerScreen) deleteReminder(id string) {
	p.store.Reminders().Transform(func(rs []state.Reminder) []state.Reminder {
		out := rs[:0:0]
		for _, r := range rs {
			if r.ID != id {
				out = append(out, r)
			}
		}
		return out
	})
}

func (p *PlannerScreen) View(width, height int) string {
	if p.adding {
		title := "Thêm việc"
		if p.pane == paneReminders {
			title = "Thêm lời nhắc"
		}
		form := theme.Title.Render(title) + "\n\n" +
			p.addInput.View() + "\n\n" +
			theme.Hint.Render("enter để lưu · esc để hủy")
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(theme.Card.Render(form))
	}

	st := p.store.State()
	colWidth := max(24, (width-8)/2)

	tasks := p.renderTasks(st.Tasks, colWidth)
	reminders := p.renderReminders(st.Reminders, colWidth)

	row := lipgloss.JoinHorizontal(lipgloss.Top, tasks, "  ", reminders)

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(row)
}

func (p *PlannerScreen) renderTasks(tasks []state.Task, colWidth int) string {
	header := "Việc cần làm"
	if p.pane == paneTasks {
		header = theme.Selected.Render("▸ " + header)
	} else {
		header = theme.Subtitle.Render("  " + header)
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	if len(tasks) == 0 {
		b.WriteString(theme.Hint.Render("  trống"))
	}
	for i, task := range tasks {
		mark := "☐"
		style := theme.Unselected
		if task.Completed {
			mark = "☑"
			style = theme.Hint
		}
		line := fmt.Sprintf("%s %s", mark, task.Text)
		if p.pane == paneTasks && i == p.taskIdx {
			line = theme.Selected.Render("▸ " + line)
		} else {
			line = style.Render("  " + line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return theme.Card.Width(colWidth).Render(strings.TrimRight(b.String(), "\n"))
}

func (p *PlannerScreen) renderReminders(reminders []state.Reminder, colWidth int) string {
	header := "Lời nhắc"
	if p.pane == paneReminders {
		header = theme.Selected.Render("▸ " + header)
	} else {
		header = theme.Subtitle.Render("  " + header)
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	if len(reminders) == 0 {
		b.WriteString(theme.Hint.Render("  trống"))
	}
	for i, r := range reminders {
		line := "♪ " + r.Text
		if r.When != "" {
			line += "  " + r.When
		}
		if p.pane == paneReminders && i == p.remIdx {
			line = theme.Selected.Render("▸ " + line)
		} else {
			line = theme.Unselected.Render("  " + line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return theme.Card.Width(colWidth).Render(strings.TrimRight(b.String(), "\n"))
}

func (p *PlannerScreen) Title() string {
	return "Kế hoạch học tập"
}

func (p *PlannerScreen) KeyHints() []layout.KeyHint {
	if p.adding {
		return []layout.KeyHint{
			{Key: "enter", Description: "lưu"},
			{Key: "esc", Description: "hủy"},
		}
	}
	return []layout.KeyHint{
		{Key: "tab", Description: "đổi cột"},
		{Key: "enter", Description: "xong/chưa"},
		{Key: "a", Description: "thêm"},
		{Key: "d", Description: "xóa"},
		{Key: "esc", Description: "trang chủ"},
	}
}
