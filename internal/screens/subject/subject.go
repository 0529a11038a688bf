// Package subject is the per-subject study screen: enter a topic, read
// the generated lesson, save it or turn it into flashcards.
package subject

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/anvu/studyglass/internal/lessons"
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
	phaseInput phase = iota
	phaseLoading
	phaseLesson
	phaseError
)

// lessonReadyMsg is sent when lesson generation finishes.
type lessonReadyMsg struct {
	Lesson *lessons.Lesson
	Err    error
}

// deckReadyMsg is sent when flashcard deck generation finishes.
type deckReadyMsg struct {
	Cards []lessons.Card
	Err   error
}

// SubjectScreen drives topic based lesson generation for one subject.
type SubjectScreen struct {
	store   *state.Store
	service *lessons.Service
	subject state.Subject

	phase       phase
	topicInput  components.TextInput
	topic       string
	lesson      *lessons.Lesson
	saved       bool
	deckStatus  string
	deckPending bool
	errText     string
	scroll      int
}

var _ screen.Screen = (*SubjectScreen)(nil)

// New creates a SubjectScreen for the store's active subject.
func New(store *state.Store, service *lessons.Service) *SubjectScreen {
	subject := state.SubjectMath
	if s := store.State().ActiveSubject; s != nil {
		subject = *s
	}
	return &SubjectScreen{
		store:      store,
		service:    service,
		subject:    subject,
		topicInput: components.NewTextInput("Nhập chủ đề, ví dụ: hàm số bậc hai", false, 120),
	}
}

func (s *SubjectScreen) Init() tea.Cmd {
	return s.topicInput.Init()
}

func (s *SubjectScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case lessonReadyMsg:
		if msg.Err != nil {
			s.phase = phaseError
			s.errText = msg.Err.Error()
			return s, nil
		}
		s.phase = phaseLesson
		s.lesson = msg.Lesson
		s.saved = false
		s.scroll = 0
		s.store.AddStudyMinutes(5)
		return s, nil

	case deckReadyMsg:
		s.deckPending = false
		if msg.Err != nil {
			s.deckStatus = "Tạo thẻ thất bại: " + msg.Err.Error()
			return s, nil
		}
		s.addCards(msg.Cards)
		s.deckStatus = fmt.Sprintf("Đã thêm %d thẻ ghi nhớ", len(msg.Cards))
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseInput {
		var cmd tea.Cmd
		s.topicInput, cmd = s.topicInput.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SubjectScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.phase {
	case phaseInput:
		if msg.String() == "enter" {
			topic := strings.TrimSpace(s.topicInput.Value())
			if topic == "" {
				return s, nil
			}
			s.topic = topic
			s.phase = phaseLoading
			return s, s.generateLesson(topic)
		}
		var cmd tea.Cmd
		s.topicInput, cmd = s.topicInput.Update(msg)
		return s, cmd

	case phaseLesson:
		switch msg.String() {
		case "s":
			if !s.saved {
				s.saveLesson()
				s.saved = true
			}
		case "f":
			if !s.deckPending {
				s.deckPending = true
				s.deckStatus = "Đang tạo thẻ ghi nhớ..."
				return s, s.generateDeck(s.topic)
			}
		case "n":
			s.reset()
			return s, s.topicInput.Init()
		case "up", "k":
			if s.scroll > 0 {
				s.scroll--
			}
		case "down", "j":
			s.scroll++
		}

	case phaseError:
		if msg.String() == "n" || msg.String() == "enter" {
			s.reset()
			return s, s.topicInput.Init()
		}
	}
	return s, nil
}

func (s *SubjectScreen) generateLesson(topic string) tea.Cmd {
	store, service, subject := s.store, s.service, s.subject
	return func() tea.Msg {
		if service == nil {
			return lessonReadyMsg{Err: errNoProvider}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		lesson, err := service.Generate(ctx, lessons.Input{
			Subject: subject,
			Topic:   topic,
			Profile: store.State().StudentProfile,
		})
		return lessonReadyMsg{Lesson: lesson, Err: err}
	}
}

func (s *SubjectScreen) generateDeck(topic string) tea.Cmd {
	service := s.service
	return func() tea.Msg {
		if service == nil {
			return deckReadyMsg{Err: errNoProvider}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		cards, err := service.GenerateDeck(ctx, lessons.DeckInput{Topic: topic, Count: 8})
		return deckReadyMsg{Cards: cards, Err: err}
	}
}

func (s *SubjectScreen) saveLesson() {
	s.store.AddLesson(state.Lesson{
		ID:      uuid.NewString(),
		Subject: s.subject,
		Topic:   s.topic,
		Content: s.lesson.Render(),
		Date:    time.Now().Format(dateLayout),
	})
}

func (s *SubjectScreen) addCards(cards []lessons.Card) {
	topic := s.topic
	s.store.Flashcards().Transform(func(existing []state.Flashcard) []state.Flashcard {
		out := existing
		for _, c := range cards {
			out = append(out, state.Flashcard{
				ID:    uuid.NewString(),
				Front: c.Front,
				Back:  c.Back,
				Topic: topic,
			})
		}
		return out
	})
}

func (s *SubjectScreen) reset() {
	s.phase = phaseInput
	s.lesson = nil
	s.topic = ""
	s.saved = false
	s.deckStatus = ""
	s.deckPending = false
	s.errText = ""
	s.topicInput = components.NewTextInput("Nhập chủ đề, ví dụ: hàm số bậc hai", false, 120)
}

func (s *SubjectScreen) View(width, height int) string {
	switch s.phase {
	case phaseInput:
		return s.viewInput(width, height)
	case phaseLoading:
		return centered(width, height,
			theme.Body.Render("Đang soạn bài học về \"")+
				theme.Selected.Render(s.topic)+
				theme.Body.Render("\"...\n\n")+
				theme.Hint.Render("Việc này mất vài giây"))
	case phaseError:
		return centered(width, height,
			theme.Incorrect.Render("Không tạo được bài học")+"\n\n"+
				theme.Body.Render(s.errText)+"\n\n"+
				theme.Hint.Render("enter để thử lại"))
	default:
		return s.viewLesson(width, height)
	}
}

func (s *SubjectScreen) viewInput(width, height int) string {
	recent := s.recentLessons(3)

	var b strings.Builder
	b.WriteString(theme.Title.Render(string(s.subject)))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render("Hôm nay bạn muốn học gì?"))
	b.WriteString("\n\n")
	b.WriteString(s.topicInput.View())
	if recent != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Subtitle.Render("Bài đã lưu"))
		b.WriteString("\n")
		b.WriteString(recent)
	}
	return centered(width, height, theme.Card.Render(b.String()))
}

func (s *SubjectScreen) viewLesson(width, height int) string {
	body := s.lesson.Render()
	lines := strings.Split(body, "\n")

	visible := height - 6
	if visible < 5 {
		visible = 5
	}
	if s.scroll > len(lines)-visible {
		s.scroll = max(0, len(lines)-visible)
	}
	end := min(len(lines), s.scroll+visible)
	body = strings.Join(lines[s.scroll:end], "\n")

	var status []string
	if s.saved {
		status = append(status, theme.Correct.Render("✓ Đã lưu"))
	}
	if s.deckStatus != "" {
		status = append(status, theme.Hint.Render(s.deckStatus))
	}

	out := theme.Title.Width(width).Render(s.lesson.Title) + "\n\n" +
		theme.Body.MaxWidth(width-4).Render(body)
	if len(status) > 0 {
		out += "\n\n" + strings.Join(status, "   ")
	}
	return lipgloss.NewStyle().Width(width).Padding(0, 2).Render(out)
}

func (s *SubjectScreen) recentLessons(n int) string {
	var b strings.Builder
	count := 0
	for _, lesson := range s.store.State().SavedLessons {
		if lesson.Subject != s.subject {
			continue
		}
		fmt.Fprintf(&b, "  %s · %s\n", lesson.Date, lesson.Topic)
		count++
		if count == n {
			break
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *SubjectScreen) Title() string {
	return string(s.subject)
}

func (s *SubjectScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseLesson:
		return []layout.KeyHint{
			{Key: "↑/↓", Description: "cuộn"},
			{Key: "s", Description: "lưu bài"},
			{Key: "f", Description: "tạo thẻ"},
			{Key: "n", Description: "chủ đề mới"},
			{Key: "esc", Description: "trang chủ"},
		}
	default:
		return []layout.KeyHint{
			{Key: "enter", Description: "tạo bài học"},
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
