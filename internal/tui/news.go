package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ecoa/internal/api"
	"ecoa/internal/app"
)

var sentimentCycle = []string{"", api.SentimentPositive, api.SentimentNegative, api.SentimentNeutral}

type sourcesMsg struct {
	sources []string
	err     error
}

type NewsModel struct {
	app   *app.Application
	theme Theme

	search       textinput.Model
	searching    bool
	sources      []string // leading "" = all
	sourceIdx    int
	sentimentIdx int
	page         int

	list    *api.NewsList
	table   table.Model
	detail  *api.NewsItem
	loading bool
	errMsg  string
	spin    spinner.Model
	width   int
	height  int
}

func NewNewsModel(application *app.Application, theme Theme) NewsModel {
	search := textinput.New()
	search.Placeholder = "Buscar por termo..."
	search.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	tbl := table.New(
		table.WithColumns(newsColumns(80)),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(theme.TextMuted).BorderForeground(theme.Border)
	styles.Selected = styles.Selected.Foreground(theme.Accent).Bold(true)
	tbl.SetStyles(styles)

	return NewsModel{
		app:     application,
		theme:   theme,
		search:  search,
		sources: []string{""},
		page:    1,
		table:   tbl,
		spin:    sp,
	}
}

func newsColumns(width int) []table.Column {
	title := width - 40
	if title < 20 {
		title = 20
	}
	return []table.Column{
		{Title: "Data", Width: 10},
		{Title: "Fonte", Width: 10},
		{Title: "Sent.", Width: 8},
		{Title: "Título", Width: title},
	}
}

func (m *NewsModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.search.Width = min(50, w-10)
	m.table.SetColumns(newsColumns(w - 8))
	if h > 18 {
		m.table.SetHeight(h - 14)
	}
}

func (m *NewsModel) typing() bool { return m.searching }

func (m NewsModel) query() api.NewsQuery {
	return api.NewsQuery{
		Term:      strings.TrimSpace(m.search.Value()),
		Source:    m.sources[m.sourceIdx],
		Sentiment: sentimentCycle[m.sentimentIdx],
		Page:      m.page,
		PerPage:   m.app.Config.PerPage,
	}
}

func (m NewsModel) load() (NewsModel, tea.Cmd) {
	m.loading = true
	m.errMsg = ""
	client := m.app.Client
	q := m.query()
	cmds := []tea.Cmd{m.spin.Tick, func() tea.Msg {
		list, err := client.ListNews(context.Background(), q)
		return newsMsg{list: list, err: err}
	}}
	if len(m.sources) == 1 {
		cmds = append(cmds, func() tea.Msg {
			sources, err := client.ListSources(context.Background())
			return sourcesMsg{sources: sources, err: err}
		})
	}
	return m, tea.Batch(cmds...)
}

func (m NewsModel) Update(msg tea.Msg) (NewsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.detail != nil {
			if msg.String() == "esc" || msg.String() == "enter" {
				m.detail = nil
			}
			return m, nil
		}
		if m.searching {
			switch msg.String() {
			case "enter":
				m.searching = false
				m.search.Blur()
				m.page = 1
				return m.load()
			case "esc":
				m.searching = false
				m.search.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "/":
			m.searching = true
			m.search.Focus()
			return m, textinput.Blink
		case "s":
			m.sourceIdx = (m.sourceIdx + 1) % len(m.sources)
			m.page = 1
			return m.load()
		case "f":
			m.sentimentIdx = (m.sentimentIdx + 1) % len(sentimentCycle)
			m.page = 1
			return m.load()
		case "x":
			m.search.SetValue("")
			m.sourceIdx = 0
			m.sentimentIdx = 0
			m.page = 1
			return m.load()
		case "left", "h":
			if m.page > 1 && !m.loading {
				m.page--
				return m.load()
			}
			return m, nil
		case "right", "l":
			if m.list != nil && m.page < m.list.TotalPages && !m.loading {
				m.page++
				return m.load()
			}
			return m, nil
		case "r":
			if !m.loading {
				return m.load()
			}
			return m, nil
		case "enter":
			return m.openSelected()
		}

	case newsMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = api.Detail(msg.err, "Erro ao carregar notícias")
			m.app.Logger.Error().Err(msg.err).Msg("loading news")
			return m, nil
		}
		m.list = msg.list
		m.table.SetRows(m.rows())
		m.table.GotoTop()
		return m, nil

	case newsDetailMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = api.Detail(msg.err, "Erro ao carregar notícia")
			return m, nil
		}
		m.detail = msg.item
		return m, nil

	case sourcesMsg:
		if msg.err == nil && len(msg.sources) > 0 {
			m.sources = append([]string{""}, msg.sources...)
		}
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m NewsModel) openSelected() (NewsModel, tea.Cmd) {
	if m.list == nil || len(m.list.Items) == 0 {
		return m, nil
	}
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.list.Items) {
		return m, nil
	}
	id := m.list.Items[idx].ID
	m.loading = true
	client := m.app.Client
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		item, err := client.GetNews(context.Background(), id)
		return newsDetailMsg{item: item, err: err}
	})
}

func (m NewsModel) rows() []table.Row {
	if m.list == nil {
		return nil
	}
	now := time.Now()
	rows := make([]table.Row, 0, len(m.list.Items))
	for _, item := range m.list.Items {
		when := item.ScrapedAt
		if item.PublishedAt != nil {
			when = *item.PublishedAt
		}
		rows = append(rows, table.Row{
			RelativeTime(when, now),
			sourceLabel(item.Source),
			sentimentLabel(item.Sentiment),
			item.Title,
		})
	}
	return rows
}

func (m NewsModel) View() string {
	t := m.theme
	if m.detail != nil {
		return m.viewDetail()
	}

	var b strings.Builder
	b.WriteString(t.Title.Render("Notícias"))
	b.WriteString("\n")
	total := 0
	if m.list != nil {
		total = m.list.Total
	}
	b.WriteString(t.Subtitle.Render(fmt.Sprintf("%d notícias encontradas", total)))
	b.WriteString("\n\n")

	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(t.Faint.Render(fmt.Sprintf("fonte: %s • sentimento: %s",
		cycleLabel(sourceLabel(m.sources[m.sourceIdx]), "Todas as fontes"),
		cycleLabel(sentimentLabel(sentimentCycle[m.sentimentIdx]), "Todos os sentimentos"))))
	b.WriteString("\n\n")

	if m.errMsg != "" {
		b.WriteString(t.ErrorBanner.Render(m.errMsg))
		b.WriteString("\n\n")
	}

	if m.loading && m.list == nil {
		b.WriteString(m.spin.View() + t.Muted.Render(" Carregando..."))
	} else if m.list != nil && len(m.list.Items) == 0 {
		b.WriteString(t.Muted.Render("Nenhuma notícia encontrada com os filtros atuais."))
	} else {
		b.WriteString(m.table.View())
		if m.list != nil && m.list.TotalPages > 1 {
			b.WriteString("\n")
			b.WriteString(t.Faint.Render(fmt.Sprintf("página %d de %d", m.list.Page, m.list.TotalPages)))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(t.Footer.Render("/ buscar • s fonte • f sentimento • x limpar • ←/→ página • enter abrir • r atualizar"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m NewsModel) viewDetail() string {
	t := m.theme
	d := m.detail
	now := time.Now()
	var b strings.Builder

	b.WriteString(t.Title.Render(d.Title))
	b.WriteString("\n")
	when := d.ScrapedAt
	if d.PublishedAt != nil {
		when = *d.PublishedAt
	}
	meta := fmt.Sprintf("%s · %s", sourceLabel(d.Source), RelativeTime(when, now))
	if d.Author != "" {
		meta += " · " + d.Author
	}
	b.WriteString(t.Subtitle.Render(meta))
	b.WriteString("  ")
	b.WriteString(t.sentimentBadge(d.Sentiment))
	b.WriteString("\n\n")

	body := d.Content
	if body == "" {
		body = d.Summary
	}
	if body == "" {
		body = "(sem conteúdo)"
	}
	b.WriteString(lipgloss.NewStyle().Width(max(40, m.width-8)).Render(body))
	b.WriteString("\n\n")

	if len(d.MatchedTerms) > 0 {
		b.WriteString(t.Faint.Render("Termos: " + strings.Join(d.MatchedTerms, ", ")))
		b.WriteString("\n")
	}
	b.WriteString(t.Faint.Render(d.URL))
	b.WriteString("\n\n")
	b.WriteString(t.Footer.Render("esc voltar"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func cycleLabel(label, all string) string {
	if label == "" || label == "—" {
		return all
	}
	return label
}
