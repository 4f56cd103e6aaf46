package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ecoa/internal/api"
	"ecoa/internal/app"
)

type DashboardModel struct {
	app     *app.Application
	theme   Theme
	data    *api.Dashboard
	loading bool
	errMsg  string
	spin    spinner.Model
	width   int
	height  int
}

func NewDashboardModel(application *app.Application, theme Theme) DashboardModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner
	return DashboardModel{app: application, theme: theme, spin: sp}
}

func (m *DashboardModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *DashboardModel) typing() bool { return false }

func (m DashboardModel) load() (DashboardModel, tea.Cmd) {
	m.loading = true
	m.errMsg = ""
	client := m.app.Client
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		data, err := client.GetDashboard(context.Background())
		return dashboardMsg{data: data, err: err}
	})
}

func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "r" && !m.loading {
			return m.load()
		}

	case dashboardMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = api.Detail(msg.err, "Erro ao carregar o painel")
			m.app.Logger.Error().Err(msg.err).Msg("loading dashboard")
			return m, nil
		}
		m.data = msg.data
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m DashboardModel) View() string {
	t := m.theme
	var b strings.Builder

	b.WriteString(t.Title.Render("Painel"))
	b.WriteString("\n")
	b.WriteString(t.Subtitle.Render("Visão geral das suas menções na mídia"))
	b.WriteString("\n\n")

	switch {
	case m.loading && m.data == nil:
		b.WriteString(m.spin.View() + t.Muted.Render(" Carregando..."))
	case m.errMsg != "":
		b.WriteString(t.ErrorBanner.Render(m.errMsg))
	case m.data == nil:
		b.WriteString(t.Muted.Render("Sem dados ainda. Pressione r para atualizar."))
	default:
		b.WriteString(m.renderStats())
		b.WriteString("\n")
		b.WriteString(m.renderTrends())
		b.WriteString("\n")
		b.WriteString(m.renderSources())
		b.WriteString("\n")
		b.WriteString(m.renderRecent())
	}

	b.WriteString("\n\n")
	b.WriteString(t.Footer.Render("r atualizar • 2 notícias • 3 termos • 4 configurações • q sair"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m DashboardModel) renderStats() string {
	t := m.theme
	s := m.data.Stats
	cards := []struct {
		label string
		value int
	}{
		{"Notícias", s.TotalNews},
		{"Hoje", s.NewsToday},
		{"Positivas", s.PositiveMentions},
		{"Negativas", s.NegativeMentions},
		{"Neutras", s.NeutralMentions},
		{"Termos ativos", s.ActiveTerms},
	}
	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		body := t.StatValue.Render(fmt.Sprintf("%d", c.value)) + "\n" + t.StatLabel.Render(c.label)
		rendered = append(rendered, t.Card.Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m DashboardModel) renderTrends() string {
	t := m.theme
	var b strings.Builder
	b.WriteString(t.CardTitle.Render("Tendências"))
	b.WriteString("\n")
	if len(m.data.Trends) == 0 {
		b.WriteString(t.Faint.Render("Nenhum termo com menções no período."))
		b.WriteString("\n")
		return b.String()
	}
	termWidth := 0
	for _, tr := range m.data.Trends {
		if w := lipgloss.Width(tr.Term); w > termWidth {
			termWidth = w
		}
	}
	for _, tr := range m.data.Trends {
		total := 0
		for _, p := range tr.Data {
			total += p.Count
		}
		b.WriteString(fmt.Sprintf("%-*s  %s  %s\n",
			termWidth, tr.Term,
			t.Selected.Render(Sparkline(tr.Data)),
			t.Faint.Render(fmt.Sprintf("%d menções", total))))
	}
	return b.String()
}

func (m DashboardModel) renderSources() string {
	t := m.theme
	var b strings.Builder
	b.WriteString(t.CardTitle.Render("Fontes"))
	b.WriteString("\n")
	if len(m.data.Sources) == 0 {
		b.WriteString(t.Faint.Render("Sem dados de fontes."))
		b.WriteString("\n")
		return b.String()
	}
	for _, src := range m.data.Sources {
		b.WriteString(fmt.Sprintf("%-12s %s %s\n",
			sourceLabel(src.Source),
			bar(src.Percentage, 20),
			t.Faint.Render(fmt.Sprintf("%.0f%% (%d)", src.Percentage, src.Count))))
	}
	return b.String()
}

func (m DashboardModel) renderRecent() string {
	t := m.theme
	now := time.Now()
	var b strings.Builder
	b.WriteString(t.CardTitle.Render("Notícias recentes"))
	b.WriteString("\n")
	if len(m.data.RecentNews) == 0 {
		b.WriteString(t.Faint.Render("Nenhuma notícia recente."))
		b.WriteString("\n")
		return b.String()
	}
	limit := len(m.data.RecentNews)
	if limit > 5 {
		limit = 5
	}
	for _, item := range m.data.RecentNews[:limit] {
		when := item.ScrapedAt
		if item.PublishedAt != nil {
			when = *item.PublishedAt
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			t.sentimentBadge(item.Sentiment),
			truncate(item.Title, max(20, m.width-30)),
			t.Faint.Render(fmt.Sprintf("%s · %s", sourceLabel(item.Source), RelativeTime(when, now)))))
	}
	return b.String()
}
