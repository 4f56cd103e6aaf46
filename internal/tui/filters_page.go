package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ecoa/internal/api"
	"ecoa/internal/app"
	"ecoa/internal/filters"
)

type FiltersModel struct {
	app   *app.Application
	theme Theme

	view    filters.View
	cursor  int
	input   textinput.Model
	editing bool
	// confirming holds the id awaiting the explicit delete confirmation.
	confirming string
	adding     bool
	loading    bool
	errMsg     string
	spin       spinner.Model
	width      int
}

func NewFiltersModel(application *app.Application, theme Theme) FiltersModel {
	in := textinput.New()
	in.Placeholder = "Ex: João Silva, Projeto de Lei 123, Reforma Tributária..."
	in.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	return FiltersModel{app: application, theme: theme, input: in, spin: sp}
}

func (m *FiltersModel) setSize(w, _ int) {
	m.width = w
	m.input.Width = min(60, w-10)
}

func (m *FiltersModel) typing() bool { return m.editing }

func (m FiltersModel) load() (FiltersModel, tea.Cmd) {
	m.loading = true
	m.errMsg = ""
	wf := m.app.Filters
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		view, err := wf.Load(context.Background())
		return filtersMsg{view: view, err: err}
	})
}

func (m FiltersModel) Update(msg tea.Msg) (FiltersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case filtersMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = api.Detail(msg.err, "Erro ao carregar termos")
			m.app.Logger.Error().Err(msg.err).Msg("loading filters")
			return m, nil
		}
		m.view = msg.view
		m.clampCursor()
		return m, nil

	case filterAddedMsg:
		m.adding = false
		if msg.err != nil {
			// Quota and duplicate rejections arrive here with the
			// backend's own wording.
			m.errMsg = api.Detail(msg.err, filters.MsgAddFailed)
			return m, nil
		}
		m.input.SetValue("")
		m.view = msg.view
		m.clampCursor()
		return m, nil

	case filterToggledMsg:
		if msg.err != nil {
			m.errMsg = api.Detail(msg.err, "Erro ao atualizar termo")
		}
		m.view = msg.view
		return m, nil

	case filterDeletedMsg:
		if msg.err != nil {
			m.errMsg = api.Detail(msg.err, "Erro ao remover termo")
		}
		m.view = msg.view
		m.clampCursor()
		return m, nil

	case spinner.TickMsg:
		if m.loading || m.adding {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m FiltersModel) handleKey(msg tea.KeyMsg) (FiltersModel, tea.Cmd) {
	if m.confirming != "" {
		switch msg.String() {
		case "s", "y":
			id := m.confirming
			m.confirming = ""
			wf := m.app.Filters
			return m, func() tea.Msg {
				view, err := wf.Delete(context.Background(), id)
				return filterDeletedMsg{view: view, err: err}
			}
		case "n", "esc":
			m.confirming = ""
		}
		return m, nil
	}

	if m.editing {
		switch msg.String() {
		case "enter":
			return m.submitAdd()
		case "esc":
			m.editing = false
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "a":
		if m.view.LimitReached {
			return m, nil
		}
		m.editing = true
		m.errMsg = ""
		m.input.Focus()
		return m, textinput.Blink
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.view.Items)-1 {
			m.cursor++
		}
	case "t", " ":
		return m.toggleSelected()
	case "d":
		if m.cursor < len(m.view.Items) {
			m.confirming = m.view.Items[m.cursor].ID
		}
	case "r":
		if !m.loading {
			return m.load()
		}
	}
	return m, nil
}

func (m FiltersModel) submitAdd() (FiltersModel, tea.Cmd) {
	term := strings.TrimSpace(m.input.Value())
	if term == "" {
		// Same rule as the workflow: blank input never reaches the server.
		m.editing = false
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	}
	m.editing = false
	m.input.Blur()
	m.adding = true
	m.errMsg = ""
	wf := m.app.Filters
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		view, err := wf.Add(context.Background(), term)
		return filterAddedMsg{view: view, err: err}
	})
}

// toggleSelected flips the item immediately; there is deliberately no
// spinner here, the optimistic state is the feedback.
func (m FiltersModel) toggleSelected() (FiltersModel, tea.Cmd) {
	if m.cursor >= len(m.view.Items) {
		return m, nil
	}
	id := m.view.Items[m.cursor].ID
	m.view.Items[m.cursor].IsActive = !m.view.Items[m.cursor].IsActive
	wf := m.app.Filters
	return m, func() tea.Msg {
		view, err := wf.Toggle(context.Background(), id)
		return filterToggledMsg{view: view, err: err}
	}
}

func (m *FiltersModel) clampCursor() {
	if m.cursor >= len(m.view.Items) {
		m.cursor = len(m.view.Items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m FiltersModel) View() string {
	t := m.theme
	var b strings.Builder

	b.WriteString(t.Title.Render("Termos Monitorados"))
	b.WriteString("\n")
	b.WriteString(t.Subtitle.Render("Gerencie os termos que você deseja monitorar na mídia"))
	b.WriteString("\n\n")

	if m.errMsg != "" {
		b.WriteString(t.ErrorBanner.Render(m.errMsg))
		b.WriteString("\n\n")
	}

	if m.view.LimitReached {
		banner := fmt.Sprintf("Limite de termos atingido\nSeu plano permite até %d termos. Faça upgrade para o plano Pro para monitorar mais termos.", m.view.PlanLimit)
		b.WriteString(t.WarnBanner.Render(banner))
		b.WriteString("\n\n")
	}

	if m.editing {
		b.WriteString(t.InputLabel.Render("Adicionar novo termo"))
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
	}
	if m.adding {
		b.WriteString(m.spin.View() + t.Muted.Render(" Adicionando..."))
		b.WriteString("\n\n")
	}

	b.WriteString(t.Faint.Render(fmt.Sprintf("%d de %d termos utilizados • %d ativos",
		len(m.view.Items), m.view.PlanLimit, m.view.ActiveCount())))
	b.WriteString("\n\n")

	switch {
	case m.loading && !m.app.Filters.Loaded():
		b.WriteString(m.spin.View() + t.Muted.Render(" Carregando..."))
	case len(m.view.Items) == 0:
		b.WriteString(t.Muted.Render("Nenhum termo cadastrado.\nPressione a para adicionar termos e começar a monitorar notícias."))
	default:
		now := time.Now()
		for i, f := range m.view.Items {
			b.WriteString(m.renderItem(i, f, now))
			b.WriteString("\n")
		}
	}

	if m.confirming != "" {
		b.WriteString("\n")
		b.WriteString(t.WarnBanner.Render("Tem certeza que deseja remover este termo? (s/n)"))
	}

	b.WriteString("\n\n")
	b.WriteString(t.Footer.Render("a adicionar • t ativar/desativar • d remover • r atualizar"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m FiltersModel) renderItem(i int, f api.Filter, now time.Time) string {
	t := m.theme
	badge := t.BadgeInactive.Render("Inativo")
	if f.IsActive {
		badge = t.BadgeActive.Render("Ativo")
	}
	term := f.Term
	if i == m.cursor {
		term = t.Selected.Render("› " + term)
	} else {
		term = "  " + term
	}
	return fmt.Sprintf("%s %s %s", term, badge,
		t.Faint.Render(fmt.Sprintf("%d menções · %s", f.MatchCount, RelativeTime(f.CreatedAt, now))))
}
