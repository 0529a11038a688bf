// Package flashcards is the flashcard review screen: step through the
// deck, flip cards, mark them known, add or remove cards.
package flashcards

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

// FlashcardsScreen reviews the stored deck.
type FlashcardsScreen struct {
	store *state.Store

	index   int
	flipped bool

	adding     bool
	frontInput components.TextInput
	backInput  components.TextInput
	onBack     bool
}

var _ screen.Screen = (*FlashcardsScreen)(nil)

// New creates a FlashcardsScreen.
func New(store *state.Store) *FlashcardsScreen {
	return &FlashcardsScreen{store: store}
}

func (f *FlashcardsScreen) Init() tea.Cmd {
	return nil
}

func (f *FlashcardsScreen) deck() []state.Flashcard {
	return f.store.State().Flashcards
}

func (f *FlashcardsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil
	}

	if f.adding {
		return f.updateAddForm(kmsg)
	}

	deck := f.deck()

	switch kmsg.String() {
	case "a":
		f.startAdd()
		return f, f.frontInput.Init()
	case "left", "h":
		if f.index > 0 {
			f.index--
			f.flipped = false
		}
	case "right", "l":
		if f.index < len(deck)-1 {
			f.index++
			f.flipped = false
		}
	case "enter", "space":
		if len(deck) == 0 {
			return f, nil
		}
		f.flipped = !f.flipped
		if f.flipped {
			f.bumpFlips(deck[f.index].ID)
		}
	case "k":
		if len(deck) > 0 {
			f.toggleKnown(deck[f.index].ID)
		}
	case "d":
		if len(deck) > 0 {
			f.deleteCard(deck[f.index].ID)
			if f.index >= len(f.deck()) && f.index > 0 {
				f.index--
			}
			f.flipped = false
		}
	}
	return f, nil
}

func (f *FlashcardsScreen) startAdd() {
	f.adding = true
	f.onBack = false
	f.frontInput = components.NewTextInput("Mặt trước (câu hỏi)", false, 200)
	f.backInput = components.NewTextInput("Mặt sau (trả lời)", false, 200)
	f.backInput.Model.Blur()
}

func (f *FlashcardsScreen) updateAddForm(kmsg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch kmsg.String() {
	case "esc":
		f.adding = false
		return f, nil
	case "enter":
		if !f.onBack {
			f.onBack = true
			f.frontInput.Model.Blur()
			return f, f.backInput.Model.Focus()
		}
		front := strings.TrimSpace(f.frontInput.Value())
		back := strings.TrimSpace(f.backInput.Value())
		if front == "" || back == "" {
			return f, nil
		}
		f.store.Flashcards().Transform(func(cards []state.Flashcard) []state.Flashcard {
			return append(cards, state.Flashcard{
				ID:    uuid.NewString(),
				Front: front,
				Back:  back,
			})
		})
		f.adding = false
		f.index = len(f.deck()) - 1
		f.flipped = false
		return f, nil
	}

	var cmd tea.Cmd
	if f.onBack {
		f.backInput, cmd = f.backInput.Update(kmsg)
	} else {
		f.frontInput, cmd = f.frontInput.Update(kmsg)
	}
	return f, cmd
}

func (f *FlashcardsScreen) bumpFlips(id string) {
	f.store.Flashcards().Transform(func(cards []state.Flashcard) []state.Flashcard {
		out := make([]state.Flashcard, len(cards))
		copy(out, cards)
		for i := range out {
			if out[i].ID == id {
				out[i].Flips++
			}
		}
		return out
	})
}

func (f *FlashcardsScreen) toggleKnown(id string) {
	f.store.Flashcards().Transform(func(cards []state.Flashcard) []state.Flashcard {
		out := make([]state.Flashcard, len(cards))
		copy(out, cards)
		for i := range out {
			if out[i].ID == id {
				out[i].Known = !out[i].Known
			}
		}
		return out
	})
}

func (f *FlashcardsScreen) deleteCard(id string) {
	f.store.Flashcards().Transform(func(cards []state.Flashcard) []state.Flashcard {
		out := cards[:0:0]
		for _, c := range cards {
			if c.ID != id {
				out = append(out, c)
			}
		}
		return out
	})
}

func (f *FlashcardsScreen) View(width, height int) string {
	if f.adding {
		return f.viewAddForm(width, height)
	}

	deck := f.deck()
	if len(deck) == 0 {
		return centered(width, height,
			theme.Body.Render("Chưa có thẻ ghi nhớ nào.")+"\n\n"+
				theme.Hint.Render("a để thêm thẻ, hoặc tạo thẻ từ một bài học"))
	}

	if f.index >= len(deck) {
		f.index = len(deck) - 1
	}
	card := deck[f.index]

	known := 0
	for _, c := range deck {
		if c.Known {
			known++
		}
	}

	face := card.Front
	label := "Câu hỏi"
	if f.flipped {
		face = card.Back
		label = "Trả lời"
	}

	cardBox := theme.Card.Width(min(width-8, 64)).Render(
		theme.Subtitle.Render(label) + "\n\n" + theme.Body.Render(face))

	var marks []string
	if card.Known {
		marks = append(marks, theme.Correct.Render("✓ đã thuộc"))
	}
	if card.Topic != "" {
		marks = append(marks, theme.Hint.Render(card.Topic))
	}

	bar := components.NewProgressBar(
		fmt.Sprintf("Thuộc %d/%d", known, len(deck)),
		float64(known)/float64(len(deck)),
		false, min(width-8, 40),
	)

	content := theme.Title.Render(fmt.Sprintf("Thẻ %d/%d", f.index+1, len(deck))) + "\n\n" +
		cardBox
	if len(marks) > 0 {
		content += "\n" + strings.Join(marks, "   ")
	}
	content += "\n\n" + bar.View()

	return centered(width, height, content)
}

func (f *FlashcardsScreen) viewAddForm(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Thêm thẻ ghi nhớ"))
	b.WriteString("\n\n")
	b.WriteString(f.frontInput.View())
	b.WriteString("\n")
	b.WriteString(f.backInput.View())
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("enter để tiếp tục · esc để hủy"))
	return centered(width, height, theme.Card.Render(b.String()))
}

func (f *FlashcardsScreen) Title() string {
	return "Thẻ ghi nhớ"
}

func (f *FlashcardsScreen) KeyHints() []layout.KeyHint {
	if f.adding {
		return []layout.KeyHint{
			{Key: "enter", Description: "lưu"},
			{Key: "esc", Description: "hủy"},
		}
	}
	return []layout.KeyHint{
		{Key: "←/→", Description: "chuyển thẻ"},
		{Key: "enter", Description: "lật"},
		{Key: "k", Description: "đã thuộc"},
		{Key: "a", Description: "thêm"},
		{Key: "d", Description: "xóa"},
		{Key: "esc", Description: "trang chủ"},
	}
}

func centered(width, height int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
