package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ecoa/internal/api"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		at   time.Time
		want string
	}{
		{now.Add(-30 * time.Second), "agora"},
		{now.Add(-5 * time.Minute), "há 5 min"},
		{now.Add(-3 * time.Hour), "há 3 h"},
		{now.Add(-30 * time.Hour), "há 1 dia"},
		{now.Add(-3 * 24 * time.Hour), "há 3 dias"},
		{now.Add(-30 * 24 * time.Hour), "31/07/2026"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RelativeTime(tc.at, now))
	}
}

func TestSparkline(t *testing.T) {
	points := []api.TrendPoint{
		{Date: "2026-08-25", Count: 0},
		{Date: "2026-08-26", Count: 4},
		{Date: "2026-08-27", Count: 8},
	}
	got := []rune(Sparkline(points))
	assert.Len(t, got, 3)
	assert.Equal(t, '▁', got[0])
	assert.Equal(t, '█', got[2])

	assert.Empty(t, Sparkline(nil))
	assert.Equal(t, "▁▁", Sparkline([]api.TrendPoint{{Count: 0}, {Count: 0}}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Reforma…", truncate("Reforma Tributária", 8))
	assert.Equal(t, "curto", truncate("curto", 8))
	assert.Equal(t, "…", truncate("longo", 1))
	assert.Equal(t, "", truncate("x", 0))
}

func TestBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░", bar(50, 10))
	assert.Equal(t, "░░░░░░░░░░", bar(0, 10))
	assert.Equal(t, "██████████", bar(100, 10))
	assert.Equal(t, "██████████", bar(150, 10), "over 100% stays clamped")
}
