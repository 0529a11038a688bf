// Package chatbot is the assistant screen: a session list, the active
// transcript and a message input.
package chatbot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/anvu/studyglass/internal/assist"
	"github.com/anvu/studyglass/internal/screen"
	"github.com/anvu/studyglass/internal/state"
	"github.com/anvu/studyglass/internal/ui/components"
	"github.com/anvu/studyglass/internal/ui/layout"
	"github.com/anvu/studyglass/internal/ui/theme"
)

var errNoProvider = errors.New("chưa cấu hình nhà cung cấp AI (đặt STUDYGLASS_LLM_PROVIDER)")

// replyMsg is sent when the assistant's reply arrives.
type replyMsg struct {
	SessionID string
	Reply     string
	Err       error
}

// ChatbotScreen drives conversations with the study assistant.
type ChatbotScreen struct {
	store   *state.Store
	service *assist.Service

	listMode bool
	listIdx  int
	input    components.TextInput
	waiting  bool
	errText  string
}

var _ screen.Screen = (*ChatbotScreen)(nil)

// New creates a ChatbotScreen. It opens on the stored active session,
// or on the session list when there is none.
func New(store *state.Store, service *assist.Service) *ChatbotScreen {
	c := &ChatbotScreen{
		store:   store,
		service: service,
		input:   components.NewTextInput("Hỏi trợ lý...", false, 500),
	}
	if store.State().ActiveSession() == nil {
		c.listMode = true
	}
	return c
}

func (c *ChatbotScreen) Init() tea.Cmd {
	if c.listMode {
		return nil
	}
	return c.input.Init()
}

func (c *ChatbotScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		c.waiting = false
		if msg.Err != nil {
			c.errText = msg.Err.Error()
			return c, nil
		}
		c.appendMessage(msg.SessionID, state.ChatMessage{Role: "assistant", Content: msg.Reply})
		return c, nil

	case tea.KeyMsg:
		if c.listMode {
			return c.updateList(msg)
		}
		return c.updateChat(msg)
	}
	return c, nil
}

func (c *ChatbotScreen) updateList(kmsg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	sessions := c.store.State().ChatSessions

	switch kmsg.String() {
	case "up", "k":
		if c.listIdx > 0 {
			c.listIdx--
		}
	case "down", "j":
		if c.listIdx < len(sessions)-1 {
			c.listIdx++
		}
	case "n":
		c.store.NewChatSession()
		c.listMode = false
		return c, c.input.Init()
	case "enter":
		if c.listIdx < len(sessions) {
			c.store.SelectChatSession(sessions[c.listIdx].ID)
			c.listMode = false
			return c, c.input.Init()
		}
	case "d":
		if c.listIdx < len(sessions) {
			c.store.DeleteChatSession(sessions[c.listIdx].ID)
			if c.listIdx > 0 {
				c.listIdx--
			}
		}
	}
	return c, nil
}

func (c *ChatbotScreen) updateChat(kmsg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch kmsg.String() {
	case "ctrl+l":
		c.listMode = true
		return c, nil
	case "ctrl+n":
		c.store.NewChatSession()
		return c, nil
	case "enter":
		if c.waiting {
			return c, nil
		}
		text := strings.TrimSpace(c.input.Value())
		if text == "" {
			return c, nil
		}

		session := c.store.State().ActiveSession()
		if session == nil {
			id := c.store.NewChatSession()
			session = c.findSession(id)
		}

		c.appendMessage(session.ID, state.ChatMessage{Role: "user", Content: text})
		c.input = components.NewTextInput("Hỏi trợ lý...", false, 500)
		c.waiting = true
		c.errText = ""
		return c, tea.Batch(c.input.Init(), c.requestReply(session.ID))
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(kmsg)
	return c, cmd
}

func (c *ChatbotScreen) requestReply(sessionID string) tea.Cmd {
	store, service := c.store, c.service
	return func() tea.Msg {
		if service == nil {
			return replyMsg{SessionID: sessionID, Err: errNoProvider}
		}
		st := store.State()
		var transcript []state.ChatMessage
		for _, s := range st.ChatSessions {
			if s.ID == sessionID {
				transcript = s.Messages
				break
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		reply, err := service.Reply(ctx, st.StudentProfile, transcript)
		return replyMsg{SessionID: sessionID, Reply: reply, Err: err}
	}
}

func (c *ChatbotScreen) appendMessage(sessionID string, msg state.ChatMessage) {
	session := c.findSession(sessionID)
	if session == nil {
		return
	}
	messages := make([]state.ChatMessage, 0, len(session.Messages)+1)
	messages = append(messages, session.Messages...)
	messages = append(messages, msg)
	c.store.UpdateChatSession(sessionID, messages)
}

func (c *ChatbotScreen) findSession(id string) *state.ChatSession {
	for _, s := range c.store.State().ChatSessions {
		if s.ID == id {
			return &s
		}
	}
	return nil
}

func (c *ChatbotScreen) View(width, height int) string {
	if c.listMode {
		return c.viewList(width, height)
	}
	return c.viewChat(width, height)
}

func (c *ChatbotScreen) viewList(width, height int) string {
	sessions := c.store.State().ChatSessions

	var b strings.Builder
	b.WriteString(theme.Title.Render("Cuộc trò chuyện"))
	b.WriteString("\n\n")
	if len(sessions) == 0 {
		b.WriteString(theme.Hint.Render("Chưa có cuộc trò chuyện nào. n để bắt đầu."))
	}
	for i, s := range sessions {
		line := fmt.Sprintf("%s  %s", s.Date, displayTitle(s))
		if i == c.listIdx {
			line = theme.Selected.Render("▸ " + line)
		} else {
			line = theme.Unselected.Render("  " + line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(theme.Card.Render(strings.TrimRight(b.String(), "\n")))
}

func (c *ChatbotScreen) viewChat(width, height int) string {
	session := c.store.State().ActiveSession()

	transcriptHeight := height - 4
	if transcriptHeight < 3 {
		transcriptHeight = 3
	}

	var lines []string
	if session != nil {
		for _, m := range session.Messages {
			prefix := theme.Selected.Render("Bạn: ")
			if m.Role == "assistant" {
				prefix = theme.Correct.Render("Trợ lý: ")
			}
			wrapped := lipgloss.NewStyle().MaxWidth(width - 6).Render(m.Content)
			lines = append(lines, prefix+wrapped)
		}
	}
	if c.waiting {
		lines = append(lines, theme.Hint.Render("Trợ lý đang trả lời..."))
	}
	if c.errText != "" {
		lines = append(lines, theme.Incorrect.Render("Lỗi: "+c.errText))
	}
	if len(lines) == 0 {
		lines = append(lines, theme.Hint.Render("Hãy đặt câu hỏi đầu tiên của bạn."))
	}

	// Show the tail of the transcript.
	flat := strings.Split(strings.Join(lines, "\n\n"), "\n")
	if len(flat) > transcriptHeight {
		flat = flat[len(flat)-transcriptHeight:]
	}

	transcript := lipgloss.NewStyle().
		Width(width - 4).
		Height(transcriptHeight).
		Render(strings.Join(flat, "\n"))

	return lipgloss.NewStyle().Padding(0, 2).Render(
		transcript + "\n\n" + c.input.View())
}

func (c *ChatbotScreen) Title() string {
	if session := c.store.State().ActiveSession(); session != nil && !c.listMode {
		return displayTitle(*session)
	}
	return "Trợ lý AI"
}

// displayTitle labels a session for rendering. Untitled sessions borrow
// their first message; the stored title itself never changes.
func displayTitle(s state.ChatSession) string {
	if s.Title != "Chat mới" || len(s.Messages) == 0 {
		return s.Title
	}
	runes := []rune(s.Messages[0].Content)
	if len(runes) > 40 {
		return string(runes[:40]) + "…"
	}
	return s.Messages[0].Content
}

func (c *ChatbotScreen) KeyHints() []layout.KeyHint {
	if c.listMode {
		return []layout.KeyHint{
			{Key: "enter", Description: "mở"},
			{Key: "n", Description: "chat mới"},
			{Key: "d", Description: "xóa"},
			{Key: "esc", Description: "trang chủ"},
		}
	}
	return []layout.KeyHint{
		{Key: "enter", Description: "gửi"},
		{Key: "ctrl+l", Description: "danh sách"},
		{Key: "ctrl+n", Description: "chat mới"},
		{Key: "esc", Description: "trang chủ"},
	}
}
