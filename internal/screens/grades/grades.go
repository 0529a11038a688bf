// Package grades is the grade book screen: scores grouped per subject,
// with manual entry and deletion.
package grades

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/anvu/studyglass/internal/screen"
	"github.com/anvu/studyglass/internal/state"
	"github.com/anvu/studyglass/internal/ui/components"
	"github.com/anvu/studyglass/internal/ui/layout"
	"github.com/anvu/studyglass/internal/ui/theme"
)

const dateLayout = "02/01/2006"

// GradesScreen shows and edits the grade book.
type GradesScreen struct {
	store *state.Store

	subjectIdx int

	adding     bool
	addSubject state.Subject
	scoreInput components.TextInput
	noteInput  components.TextInput
	onNote     bool
	addErr     string
}

var _ screen.Screen = (*GradesScreen)(nil)

// New creates a GradesScreen.
func New(store *state.Store) *GradesScreen {
	return &GradesScreen{store: store}
}

func (g *GradesScreen) Init() tea.Cmd {
	return nil
}

func (g *GradesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil
	}

	if g.adding {
		return g.updateAdd(kmsg)
	}

	subjects := state.Subjects()

	switch kmsg.String() {
	case "left", "h":
		if g.subjectIdx > 0 {
			g.subjectIdx--
		}
	case "right", "l", "tab":
		if g.subjectIdx < len(subjects)-1 {
			g.subjectIdx++
		}
	case "a":
		g.adding = true
		g.onNote = false
		g.addErr = ""
		g.addSubject = subjects[g.subjectIdx]
		g.scoreInput = components.NewTextInput("Điểm (0-10)", false, 5)
		g.noteInput = components.NewTextInput("Ghi chú (tùy chọn)", false, 100)
		g.noteInput.Model.Blur()
		return g, g.scoreInput.Init()
	case "d":
		g.deleteLast(string(subjects[g.subjectIdx]))
	}
	return g, nil
}

func (g *GradesScreen) updateAdd(kmsg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch kmsg.String() {
	case "esc":
		g.adding = false
		return g, nil
	case "enter":
		if !g.onNote {
			if _, err := parseScore(g.scoreInput.Value()); err != nil {
				g.addErr = "Điểm phải là số từ 0 đến 10"
				return g, nil
			}
			g.addErr = ""
			g.onNote = true
			g.scoreInput.Model.Blur()
			return g, g.noteInput.Model.Focus()
		}
		score, err := parseScore(g.scoreInput.Value())
		if err != nil {
			g.addErr = "Điểm phải là số từ 0 đến 10"
			return g, nil
		}
		g.appendGrade(string(g.addSubject), state.GradeEntry{
			Score: score,
			Note:  strings.TrimSpace(g.noteInput.Value()),
			Date:  time.Now().Format(dateLayout),
		})
		g.adding = false
		return g, nil
	}

	var cmd tea.Cmd
	if g.onNote {
		g.noteInput, cmd = g.noteInput.Update(kmsg)
	} else {
		g.scoreInput, cmd = g.scoreInput.Update(kmsg)
	}
	return g, cmd
}

func parseScore(raw string) (float64, error) {
	score, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if score < 0 || score > 10 {
		return 0, fmt.Errorf("score out of range: %v", score)
	}
	return score, nil
}

func (g *GradesScreen) appendGrade(key string, entry state.GradeEntry) {
	record := cloneRecord(g.store.State().GradeRecord)
	record[key] = append(record[key], entry)
	g.store.SetGrades(record)
}

func (g *GradesScreen) deleteLast(key string) {
	record := cloneRecord(g.store.State().GradeRecord)
	entries := record[key]
	if len(entries) == 0 {
		return
	}
	record[key] = entries[:len(entries)-1]
	g.store.SetGrades(record)
}

func cloneRecord(record map[string][]state.GradeEntry) map[string][]state.GradeEntry {
	out := make(map[string][]state.GradeEntry, len(record))
	for k, v := range record {
		out[k] = append([]state.GradeEntry(nil), v...)
	}
	return out
}

func (g *GradesScreen) View(width, height int) string {
	if g.adding {
		return g.viewAdd(width, height)
	}

	subjects := state.Subjects()
	subject := subjects[g.subjectIdx]
	record := g.store.State().GradeRecord

	var tabs []string
	for i, s := range subjects {
		if i == g.subjectIdx {
			tabs = append(tabs, theme.Selected.Render("["+string(s)+"]"))
		} else {
			tabs = append(tabs, theme.Unselected.Render(" "+string(s)+" "))
		}
	}

	entries := record[string(subject)]
	var b strings.Builder
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")

	if len(entries) == 0 {
		b.WriteString(theme.Hint.Render("Chưa có điểm nào. a để thêm."))
	} else {
		var sum float64
		for _, entry := range entries {
			sum += entry.Score
		}
		b.WriteString(theme.Subtitle.Render(
			fmt.Sprintf("Trung bình: %.2f (%d điểm)", sum/float64(len(entries)), len(entries))))
		b.WriteString("\n\n")
		for _, entry := range entries {
			line := fmt.Sprintf("%-12s %s", entry.Date, scoreStyle(entry.Score).Render(fmt.Sprintf("%4.1f", entry.Score)))
			if entry.Note != "" {
				line += "  " + theme.Hint.Render(entry.Note)
			}
			b.WriteString(theme.Body.Render(line))
			b.WriteString("\n")
		}
	}

	// Other subject keys that are not on the tab row still show up, so
	// nothing in the grade book is invisible.
	extras := extraKeys(record, subjects)
	if len(extras) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Khác: " + strings.Join(extras, ", ")))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(theme.Card.Width(min(width-8, 72)).Render(strings.TrimRight(b.String(), "\n")))
}

func extraKeys(record map[string][]state.GradeEntry, subjects []state.Subject) []string {
	known := make(map[string]bool, len(subjects))
	for _, s := range subjects {
		known[string(s)] = true
	}
	var extras []string
	for k, v := range record {
		if !known[k] && len(v) > 0 {
			extras = append(extras, fmt.Sprintf("%s (%d)", k, len(v)))
		}
	}
	sort.Strings(extras)
	return extras
}

func scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 8:
		return theme.Correct
	case score >= 5:
		return theme.Body
	default:
		return theme.Incorrect
	}
}

func (g *GradesScreen) viewAdd(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Thêm điểm · " + string(g.addSubject)))
	b.WriteString("\n\n")
	b.WriteString(g.scoreInput.View())
	b.WriteString("\n")
	b.WriteString(g.noteInput.View())
	if g.addErr != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Incorrect.Render(g.addErr))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("enter để tiếp tục · esc để hủy"))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(theme.Card.Render(b.String()))
}

func (g *GradesScreen) Title() string {
	return "Bảng điểm"
}

func (g *GradesScreen) KeyHints() []layout.KeyHint {
	if g.adding {
		return []layout.KeyHint{
			{Key: "enter", Description: "lưu"},
			{Key: "esc", Description: "hủy"},
		}
	}
	return []layout.KeyHint{
		{Key: "←/→", Description: "đổi môn"},
		{Key: "a", Description: "thêm điểm"},
		{Key: "d", Description: "xóa điểm cuối"},
		{Key: "esc", Description: "trang chủ"},
	}
}
