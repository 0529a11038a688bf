// Package examscreen is the practice exam screen: pick a subject,
// answer generated questions one by one, review the score.
package examscreen

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/anvu/studyglass/internal/examprep"
	"github.com/anvu/studyglass/internal/screen"
	"github.com/anvu/studyglass/internal/state"
	"github.com/anvu/studyglass/internal/ui/components"
	"github.com/anvu/studyglass/internal/ui/layout"
	"github.com/anvu/studyglass/internal/ui/theme"
)

const dateLayout = "02/01/2006"

var errNoProvider = errors.New("chưa cấu hình nhà cung cấp AI (đặt STUDYGLASS_LLM_PROVIDER)")

type phase int

const (
	phasePick phase = iota
	phaseLoading
	phaseQuestion
	phaseDone
	phaseError
)

// examReadyMsg is sent when exam generation finishes.
type examReadyMsg struct {
	Exam *examprep.Exam
	Err  error
}

// ExamScreen runs one practice exam end to end.
type ExamScreen struct {
	store   *state.Store
	service *examprep.Service

	phase    phase
	menu     components.Menu
	subject  state.Subject
	exam     *examprep.Exam
	index    int
	choice   components.MultiChoice
	answered bool
	correct  int
	errText  string
	recorded bool
}

var _ screen.Screen = (*ExamScreen)(nil)

// New creates an ExamScreen.
func New(store *state.Store, service *examprep.Service) *ExamScreen {
	e := &ExamScreen{store: store, service: service}
	e.menu = e.subjectMenu()
	return e
}

func (e *ExamScreen) subjectMenu() components.Menu {
	subjects := state.Subjects()
	items := make([]components.MenuItem, 0, len(subjects))
	for _, subject := range subjects {
		subject := subject
		items = append(items, components.MenuItem{
			Label: string(subject),
			Action: func() tea.Cmd {
				return e.startExam(subject)
			},
		})
	}
	return components.NewMenu(items)
}

func (e *ExamScreen) startExam(subject state.Subject) tea.Cmd {
	e.subject = subject
	e.phase = phaseLoading
	store, service := e.store, e.service
	return func() tea.Msg {
		if service == nil {
			return examReadyMsg{Err: errNoProvider}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()
		exam, err := service.Generate(ctx, examprep.Input{
			Subject: subject,
			Count:   10,
			Profile: store.State().StudentProfile,
		})
		return examReadyMsg{Exam: exam, Err: err}
	}
}

func (e *ExamScreen) Init() tea.Cmd {
	return nil
}

func (e *ExamScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case examReadyMsg:
		if msg.Err != nil {
			e.phase = phaseError
			e.errText = msg.Err.Error()
			return e, nil
		}
		e.exam = msg.Exam
		e.index = 0
		e.correct = 0
		e.recorded = false
		e.loadQuestion()
		return e, nil

	case tea.KeyMsg:
		return e.handleKey(msg)
	}
	return e, nil
}

func (e *ExamScreen) loadQuestion() {
	q := e.exam.Questions[e.index]
	e.choice = components.NewMultiChoice(
		fmt.Sprintf("Câu %d/%d: %s", e.index+1, len(e.exam.Questions), q.Text),
		q.Choices, q.Answer)
	e.answered = false
	e.phase = phaseQuestion
}

func (e *ExamScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch e.phase {
	case phasePick:
		var cmd tea.Cmd
		e.menu, cmd = e.menu.Update(msg)
		return e, cmd

	case phaseQuestion:
		if !e.answered {
			before := e.choice.Submitted
			var cmd tea.Cmd
			e.choice, cmd = e.choice.Update(msg)
			if !before && e.choice.Submitted {
				e.answered = true
				if e.choice.IsCorrect() {
					e.correct++
				}
			}
			return e, cmd
		}
		if msg.String() == "enter" {
			if e.index+1 < len(e.exam.Questions) {
				e.index++
				e.loadQuestion()
			} else {
				e.finish()
			}
		}

	case phaseDone, phaseError:
		if msg.String() == "n" || msg.String() == "enter" {
			e.phase = phasePick
			e.menu = e.subjectMenu()
		}
	}
	return e, nil
}

// finish records the score in the grade book under the subject name.
func (e *ExamScreen) finish() {
	e.phase = phaseDone
	if e.recorded {
		return
	}
	e.recorded = true

	score := 10 * float64(e.correct) / float64(len(e.exam.Questions))
	st := e.store.State()
	record := make(map[string][]state.GradeEntry, len(st.GradeRecord)+1)
	for k, v := range st.GradeRecord {
		record[k] = v
	}
	key := string(e.subject)
	record[key] = append(append([]state.GradeEntry(nil), record[key]...), state.GradeEntry{
		Score: score,
		Note:  "Luyện đề",
		Date:  time.Now().Format(dateLayout),
	})
	e.store.SetGrades(record)
	e.store.AddStudyMinutes(15)
}

func (e *ExamScreen) View(width, height int) string {
	switch e.phase {
	case phasePick:
		content := theme.Title.Render("Luyện đề") + "\n\n" +
			theme.Body.Render("Chọn môn thi thử:") + "\n\n" +
			e.menu.View()
		return centered(width, height, content)

	case phaseLoading:
		return centered(width, height,
			theme.Body.Render("Đang soạn đề "+string(e.subject)+"...")+"\n\n"+
				theme.Hint.Render("Việc này mất vài giây"))

	case phaseQuestion:
		q := e.exam.Questions[e.index]
		content := e.choice.View()
		if e.answered {
			if e.choice.IsCorrect() {
				content += "\n" + theme.Correct.Render("Chính xác!")
			} else {
				content += "\n" + theme.Incorrect.Render("Chưa đúng.")
			}
			if q.Explanation != "" {
				content += "\n" + theme.Hint.Render(q.Explanation)
			}
			content += "\n\n" + theme.Hint.Render("enter để tiếp tục")
		}
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Padding(1, 4).
			Render(content)

	case phaseError:
		return centered(width, height,
			theme.Incorrect.Render("Không tạo được đề thi")+"\n\n"+
				theme.Body.Render(e.errText)+"\n\n"+
				theme.Hint.Render("enter để thử lại"))

	default:
		score := 10 * float64(e.correct) / float64(len(e.exam.Questions))
		retry := components.NewButton("Làm đề khác", true, nil)
		content := theme.Title.Render("Kết quả") + "\n\n" +
			theme.Body.Render(fmt.Sprintf("Đúng %d/%d câu", e.correct, len(e.exam.Questions))) + "\n" +
			theme.Selected.Render(fmt.Sprintf("Điểm: %.1f/10", score)) + "\n\n" +
			theme.Hint.Render("Điểm đã được ghi vào bảng điểm.") + "\n\n" +
			retry.View()
		return centered(width, height, theme.Card.Render(content))
	}
}

func (e *ExamScreen) Title() string {
	return "Luyện đề"
}

func (e *ExamScreen) KeyHints() []layout.KeyHint {
	switch e.phase {
	case phaseQuestion:
		return []layout.KeyHint{
			{Key: "↑/↓", Description: "chọn"},
			{Key: "enter", Description: "trả lời"},
			{Key: "esc", Description: "trang chủ"},
		}
	default:
		return []layout.KeyHint{
			{Key: "enter", Description: "chọn"},
			{Key: "esc", Description: "trang chủ"},
		}
	}
}

func centered(width, height int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
