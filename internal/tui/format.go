package tui

import (
	"fmt"
	"strings"
	"time"

	"ecoa/internal/api"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws counts as a row of block glyphs, one per point.
func Sparkline(points []api.TrendPoint) string {
	if len(points) == 0 {
		return ""
	}
	max := 0
	for _, p := range points {
		if p.Count > max {
			max = p.Count
		}
	}
	var b strings.Builder
	for _, p := range points {
		if max == 0 {
			b.WriteRune(sparkRunes[0])
			continue
		}
		idx := p.Count * (len(sparkRunes) - 1) / max
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}

// RelativeTime renders a timestamp the way the news feed shows it.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "agora"
	case d < time.Hour:
		return fmt.Sprintf("há %d min", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("há %d h", int(d.Hours()))
	case d < 48*time.Hour:
		return "há 1 dia"
	case d < 7*24*time.Hour:
		return fmt.Sprintf("há %d dias", int(d.Hours())/24)
	default:
		return t.Format("02/01/2006")
	}
}

func sentimentLabel(s string) string {
	switch s {
	case api.SentimentPositive:
		return "Positivo"
	case api.SentimentNegative:
		return "Negativo"
	case api.SentimentNeutral:
		return "Neutro"
	default:
		return "—"
	}
}

func (t Theme) sentimentBadge(s string) string {
	switch s {
	case api.SentimentPositive:
		return t.BadgePositive.Render(sentimentLabel(s))
	case api.SentimentNegative:
		return t.BadgeNegative.Render(sentimentLabel(s))
	case api.SentimentNeutral:
		return t.BadgeNeutral.Render(sentimentLabel(s))
	default:
		return t.Faint.Render("—")
	}
}

func sourceLabel(s string) string {
	switch s {
	case "g1":
		return "G1"
	case "cnn":
		return "CNN Brasil"
	case "twitter":
		return "Twitter"
	case "threads":
		return "Threads"
	default:
		return s
	}
}

// truncate shortens s to fit width columns, appending an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

// bar renders a percentage as a fixed-width meter.
func bar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(pct/100*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
