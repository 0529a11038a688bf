package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Mode selects the background scheme.
type Mode string

const (
	ModeDark  Mode = "dark"
	ModeLight Mode = "light"
)

// Palette is a named accent color set. The same palette works on both
// dark and light backgrounds.
type Palette struct {
	Name      string
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
}

var (
	Aurora = Palette{
		Name:      "aurora",
		Primary:   lipgloss.Color("#8B5CF6"), // Violet
		Secondary: lipgloss.Color("#14B8A6"), // Teal
		Accent:    lipgloss.Color("#F97316"), // Orange
	}
	Rose = Palette{
		Name:      "rose",
		Primary:   lipgloss.Color("#F43F5E"), // Rose
		Secondary: lipgloss.Color("#FB923C"), // Amber
		Accent:    lipgloss.Color("#E879F9"), // Fuchsia
	}
	Emerald = Palette{
		Name:      "emerald",
		Primary:   lipgloss.Color("#10B981"), // Emerald
		Secondary: lipgloss.Color("#0EA5E9"), // Sky
		Accent:    lipgloss.Color("#FACC15"), // Yellow
	}
)

var palettes = []Palette{Aurora, Rose, Emerald}

// Colors resolved from the active palette and mode.
var (
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#EF4444")
	Text      color.Color
	TextDim   color.Color
	BgCard    color.Color
	Border    color.Color
)

// Typography
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Hint     lipgloss.Style
)

// Layout
var (
	Header lipgloss.Style
	Footer lipgloss.Style
	Card   lipgloss.Style
)

// States
var (
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Correct    lipgloss.Style
	Incorrect  lipgloss.Style
)

// Components
var (
	ButtonActive   lipgloss.Style
	ButtonInactive lipgloss.Style
)

var (
	activePalette = Aurora
	activeMode    = ModeDark
)

func init() {
	rebuild()
}

// Active reports the current palette and mode.
func Active() (Palette, Mode) {
	return activePalette, activeMode
}

// Apply switches the process-wide palette and mode. Unknown palette
// names keep the current palette.
func Apply(palette string, mode Mode) {
	for _, p := range palettes {
		if p.Name == palette {
			activePalette = p
			break
		}
	}
	if mode == ModeDark || mode == ModeLight {
		activeMode = mode
	}
	rebuild()
}

// CyclePalette advances to the next palette and returns its name.
func CyclePalette() string {
	for i, p := range palettes {
		if p.Name == activePalette.Name {
			activePalette = palettes[(i+1)%len(palettes)]
			break
		}
	}
	rebuild()
	return activePalette.Name
}

// ToggleMode flips between dark and light backgrounds.
func ToggleMode() Mode {
	if activeMode == ModeDark {
		activeMode = ModeLight
	} else {
		activeMode = ModeDark
	}
	rebuild()
	return activeMode
}

func rebuild() {
	Primary = activePalette.Primary
	Secondary = activePalette.Secondary
	Accent = activePalette.Accent

	if activeMode == ModeDark {
		Text = lipgloss.Color("#F8FAFC")
		TextDim = lipgloss.Color("#94A3B8")
		BgCard = lipgloss.Color("#1E293B")
		Border = lipgloss.Color("#334155")
	} else {
		Text = lipgloss.Color("#0F172A")
		TextDim = lipgloss.Color("#64748B")
		BgCard = lipgloss.Color("#E2E8F0")
		Border = lipgloss.Color("#CBD5E1")
	}

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextDim).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Selected = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Unselected = lipgloss.NewStyle().
		Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	ButtonActive = lipgloss.NewStyle().
		Background(Primary).
		Foreground(Text).
		Bold(true).
		Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
}
