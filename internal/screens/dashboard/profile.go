package dashboard

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/anvu/studyglass/internal/state"
	"github.com/anvu/studyglass/internal/ui/components"
	"github.com/anvu/studyglass/internal/ui/theme"
)

// profileForm edits the student profile one field at a time.
type profileForm struct {
	store  *state.Store
	labels []string
	inputs []components.TextInput
	field  int
}

func newProfileForm(store *state.Store) *profileForm {
	profile := store.State().StudentProfile

	labels := []string{
		"Họ tên",
		"Trường mục tiêu",
		"Ngành mục tiêu",
		"Điểm mục tiêu",
		"Điểm mạnh",
		"Điểm yếu",
		"Phong cách học",
	}
	values := []string{
		profile.Name,
		profile.TargetUniversity,
		profile.TargetMajor,
		profile.TargetScore,
		profile.Strengths,
		profile.Weaknesses,
		profile.LearningStyle,
	}

	inputs := make([]components.TextInput, len(labels))
	for i := range labels {
		ti := components.NewTextInput(labels[i], false, 120)
		ti.Model.SetValue(values[i])
		ti.Model.Blur()
		inputs[i] = ti
	}

	return &profileForm{
		store:  store,
		labels: labels,
		inputs: inputs,
	}
}

func (f *profileForm) Init() tea.Cmd {
	return f.inputs[0].Model.Focus()
}

// Update returns true when the form is finished, either saved or
// cancelled.
func (f *profileForm) Update(msg tea.Msg) (bool, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			return true, nil
		case "enter", "tab", "down":
			if kmsg.String() == "enter" && f.field == len(f.inputs)-1 {
				f.save()
				return true, nil
			}
			return false, f.focus(f.field + 1)
		case "shift+tab", "up":
			return false, f.focus(f.field - 1)
		}
	}

	var cmd tea.Cmd
	f.inputs[f.field], cmd = f.inputs[f.field].Update(msg)
	return false, cmd
}

func (f *profileForm) focus(field int) tea.Cmd {
	if field < 0 || field >= len(f.inputs) {
		return nil
	}
	f.inputs[f.field].Model.Blur()
	f.field = field
	return f.inputs[f.field].Model.Focus()
}

func (f *profileForm) save() {
	f.store.SetProfile(state.StudentProfile{
		Name:             strings.TrimSpace(f.inputs[0].Value()),
		TargetUniversity: strings.TrimSpace(f.inputs[1].Value()),
		TargetMajor:      strings.TrimSpace(f.inputs[2].Value()),
		TargetScore:      strings.TrimSpace(f.inputs[3].Value()),
		Strengths:        strings.TrimSpace(f.inputs[4].Value()),
		Weaknesses:       strings.TrimSpace(f.inputs[5].Value()),
		LearningStyle:    strings.TrimSpace(f.inputs[6].Value()),
	})
}

func (f *profileForm) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Hồ sơ học sinh"))
	b.WriteString("\n\n")
	for i := range f.inputs {
		label := f.labels[i]
		if i == f.field {
			b.WriteString(theme.Selected.Render("▸ " + label))
		} else {
			b.WriteString(theme.Unselected.Render("  " + label))
		}
		b.WriteString("\n  ")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("enter ở trường cuối để lưu · esc để hủy"))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(theme.Card.Render(b.String()))
}
