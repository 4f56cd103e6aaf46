package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

type ThemeName string

const (
	ThemePorcelain ThemeName = "porcelain"
	ThemeMidnight  ThemeName = "midnight"
)

type Theme struct {
	Name ThemeName

	TextPrimary lipgloss.AdaptiveColor
	TextMuted   lipgloss.AdaptiveColor
	TextFaint   lipgloss.AdaptiveColor

	Accent   lipgloss.AdaptiveColor
	Positive lipgloss.AdaptiveColor
	Negative lipgloss.AdaptiveColor
	Neutral  lipgloss.AdaptiveColor
	Warn     lipgloss.AdaptiveColor
	Border   lipgloss.AdaptiveColor

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Muted    lipgloss.Style
	Faint    lipgloss.Style
	Footer   lipgloss.Style
	Spinner  lipgloss.Style
	Selected lipgloss.Style
	Success  lipgloss.Style

	Card      lipgloss.Style
	CardTitle lipgloss.Style
	StatValue lipgloss.Style
	StatLabel lipgloss.Style

	InputLabel lipgloss.Style

	ErrorBanner lipgloss.Style
	WarnBanner  lipgloss.Style

	BadgePositive lipgloss.Style
	BadgeNegative lipgloss.Style
	BadgeNeutral  lipgloss.Style
	BadgeActive   lipgloss.Style
	BadgeInactive lipgloss.Style

	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
}

// NewTheme picks the theme from config, letting the environment override.
func NewTheme(name string) Theme {
	if env := os.Getenv("ECOA_THEME"); env != "" {
		name = env
	}
	if os.Getenv("ECOA_NO_COLOR") == "1" {
		return newNoColorTheme()
	}
	switch ThemeName(name) {
	case ThemeMidnight:
		return newMidnightTheme()
	default:
		return newPorcelainTheme()
	}
}

func (t Theme) build() Theme {
	t.Title = lipgloss.NewStyle().Bold(true).Foreground(t.TextPrimary)
	t.Subtitle = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.Muted = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.Faint = lipgloss.NewStyle().Foreground(t.TextFaint)
	t.Footer = lipgloss.NewStyle().Foreground(t.TextFaint)
	t.Spinner = lipgloss.NewStyle().Foreground(t.Accent)
	t.Selected = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	t.Success = lipgloss.NewStyle().Foreground(t.Positive)

	t.Card = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1)
	t.CardTitle = lipgloss.NewStyle().Bold(true).Foreground(t.TextPrimary)
	t.StatValue = lipgloss.NewStyle().Bold(true).Foreground(t.TextPrimary)
	t.StatLabel = lipgloss.NewStyle().Foreground(t.TextFaint)

	t.InputLabel = lipgloss.NewStyle().Foreground(t.TextMuted)

	t.ErrorBanner = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.Negative).Foreground(t.Negative).Padding(0, 1)
	t.WarnBanner = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.Warn).Foreground(t.Warn).Padding(0, 1)

	badge := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	t.BadgePositive = badge.Foreground(t.Positive)
	t.BadgeNegative = badge.Foreground(t.Negative)
	t.BadgeNeutral = badge.Foreground(t.Neutral)
	t.BadgeActive = badge.Foreground(t.Positive)
	t.BadgeInactive = badge.Foreground(t.TextFaint)

	t.TabActive = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	t.TabInactive = lipgloss.NewStyle().Foreground(t.TextFaint)
	return t
}

func newPorcelainTheme() Theme {
	return Theme{
		Name:        ThemePorcelain,
		TextPrimary: lipgloss.AdaptiveColor{Light: "#1d2433", Dark: "#f2f2f2"},
		TextMuted:   lipgloss.AdaptiveColor{Light: "#4a5568", Dark: "#c7c7c7"},
		TextFaint:   lipgloss.AdaptiveColor{Light: "#718096", Dark: "#9aa0a6"},
		Accent:      lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#7aa2f7"},
		Positive:    lipgloss.AdaptiveColor{Light: "#15803d", Dark: "#4ade80"},
		Negative:    lipgloss.AdaptiveColor{Light: "#b91c1c", Dark: "#f87171"},
		Neutral:     lipgloss.AdaptiveColor{Light: "#64748b", Dark: "#94a3b8"},
		Warn:        lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#fbbf24"},
		Border:      lipgloss.AdaptiveColor{Light: "#cbd5e1", Dark: "#3b4252"},
	}.build()
}

func newMidnightTheme() Theme {
	return Theme{
		Name:        ThemeMidnight,
		TextPrimary: lipgloss.AdaptiveColor{Light: "#11131a", Dark: "#e6e9f2"},
		TextMuted:   lipgloss.AdaptiveColor{Light: "#2d3344", Dark: "#aab2cc"},
		TextFaint:   lipgloss.AdaptiveColor{Light: "#555d75", Dark: "#767f99"},
		Accent:      lipgloss.AdaptiveColor{Light: "#7c3aed", Dark: "#bb9af7"},
		Positive:    lipgloss.AdaptiveColor{Light: "#166534", Dark: "#9ece6a"},
		Negative:    lipgloss.AdaptiveColor{Light: "#991b1b", Dark: "#f7768e"},
		Neutral:     lipgloss.AdaptiveColor{Light: "#475569", Dark: "#7dcfff"},
		Warn:        lipgloss.AdaptiveColor{Light: "#92400e", Dark: "#e0af68"},
		Border:      lipgloss.AdaptiveColor{Light: "#94a3b8", Dark: "#2f334d"},
	}.build()
}

func newNoColorTheme() Theme {
	mono := lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"}
	faint := lipgloss.AdaptiveColor{Light: "#555555", Dark: "#bbbbbb"}
	return Theme{
		Name:        "no-color",
		TextPrimary: mono,
		TextMuted:   faint,
		TextFaint:   faint,
		Accent:      mono,
		Positive:    mono,
		Negative:    mono,
		Neutral:     faint,
		Warn:        mono,
		Border:      faint,
	}.build()
}
