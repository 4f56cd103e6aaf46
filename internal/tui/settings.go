package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ecoa/internal/api"
	"ecoa/internal/app"
	"ecoa/internal/session"
)

var planFeatures = map[string][]string{
	"free": {
		"Até 3 termos monitorados",
		"Notícias dos últimos 7 dias",
		"2 fontes de notícias",
		"Análise de sentimento básica",
	},
	"pro": {
		"Até 100 termos monitorados",
		"Histórico completo de notícias",
		"Todas as fontes de notícias",
		"Análise de sentimento avançada",
		"Alertas por email",
		"Relatórios em PDF",
		"Suporte prioritário",
	},
}

const (
	setFieldName = iota
	setFieldPoliticalName
	setFieldParty
	setFieldState
	setFieldCount
)

type SettingsModel struct {
	app      *app.Application
	theme    Theme
	inputs   [setFieldCount - 1]textinput.Model
	stateIdx int
	focus    int
	spin     spinner.Model
	busy     bool
	saved    bool
	width    int
}

func NewSettingsModel(application *app.Application, theme Theme) SettingsModel {
	m := SettingsModel{app: application, theme: theme}
	placeholders := []string{"Seu nome completo", "Como é conhecido na política", "Ex: PT, PSDB..."}
	for i, p := range placeholders {
		in := textinput.New()
		in.Placeholder = p
		in.CharLimit = 120
		m.inputs[i] = in
	}
	m.inputs[setFieldName].Focus()

	m.spin = spinner.New()
	m.spin.Spinner = spinner.Dot
	m.spin.Style = theme.Spinner
	return m
}

func (m *SettingsModel) setSize(w, _ int) {
	m.width = w
	for i := range m.inputs {
		m.inputs[i].Width = min(40, w-10)
	}
}

func (m *SettingsModel) typing() bool { return true }

// syncFromSession fills the form with the current profile, called when the
// page is routed to.
func (m *SettingsModel) syncFromSession() {
	user := m.app.Session.Snapshot().User
	if user == nil {
		return
	}
	m.inputs[setFieldName].SetValue(user.FullName)
	m.inputs[setFieldPoliticalName].SetValue(user.PoliticalName)
	m.inputs[setFieldParty].SetValue(user.Party)
	m.stateIdx = 0
	for i, uf := range ufs {
		if uf == user.State {
			m.stateIdx = i
			break
		}
	}
	m.saved = false
}

func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			m.app.Session.ClearError()
			return m, navigate(PageDashboard)
		case "tab", "down":
			m.setFocus((m.focus + 1) % setFieldCount)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + setFieldCount - 1) % setFieldCount)
			return m, nil
		case "enter":
			if m.focus < setFieldState {
				m.setFocus(m.focus + 1)
				return m, nil
			}
			return m.submit()
		case "left":
			if m.focus == setFieldState {
				m.stateIdx = (m.stateIdx + len(ufs) - 1) % len(ufs)
				m.saved = false
				return m, nil
			}
		case "right":
			if m.focus == setFieldState {
				m.stateIdx = (m.stateIdx + 1) % len(ufs)
				m.saved = false
				return m, nil
			}
		case "ctrl+l":
			sess := m.app.Session
			return m, func() tea.Msg {
				sess.Logout(context.Background())
				return logoutDoneMsg{}
			}
		}

	case profileSavedMsg:
		m.busy = false
		m.saved = msg.err == nil
		return m, nil

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.focus < setFieldState {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		if _, ok := msg.(tea.KeyMsg); ok {
			m.saved = false
		}
		return m, cmd
	}
	return m, nil
}

func (m *SettingsModel) setFocus(i int) {
	m.focus = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

func (m SettingsModel) submit() (SettingsModel, tea.Cmd) {
	m.app.Session.ClearError()
	m.busy = true
	m.saved = false

	name := strings.TrimSpace(m.inputs[setFieldName].Value())
	political := strings.TrimSpace(m.inputs[setFieldPoliticalName].Value())
	party := strings.TrimSpace(m.inputs[setFieldParty].Value())
	uf := ufs[m.stateIdx]
	update := api.ProfileUpdate{
		FullName:      &name,
		PoliticalName: &political,
		Party:         &party,
		State:         &uf,
	}

	sess := m.app.Session
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		err := sess.UpdateUser(context.Background(), update)
		return profileSavedMsg{err: err}
	})
}

func (m SettingsModel) View() string {
	t := m.theme
	st := m.app.Session.Snapshot()
	var b strings.Builder

	b.WriteString(t.Title.Render("Configurações"))
	b.WriteString("\n")
	b.WriteString(t.Subtitle.Render("Gerencie seu perfil e plano"))
	b.WriteString("\n\n")

	if st.Err != "" {
		b.WriteString(t.ErrorBanner.Render(st.Err))
		b.WriteString("\n\n")
	}
	if m.saved {
		b.WriteString(t.Success.Render("✓ Perfil atualizado"))
		b.WriteString("\n\n")
	}

	labels := []string{"Nome Completo", "Nome Político", "Partido"}
	for i, label := range labels {
		b.WriteString(t.InputLabel.Render(label))
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	b.WriteString(t.InputLabel.Render("Estado"))
	b.WriteString("\n")
	uf := ufs[m.stateIdx]
	if uf == "" {
		uf = "Selecione"
	}
	sel := t.Muted.Render("◀ ") + uf + t.Muted.Render(" ▶")
	if m.focus == setFieldState {
		sel = t.Selected.Render("◀ " + uf + " ▶")
	}
	b.WriteString(sel)
	b.WriteString("\n\n")

	if m.busy {
		b.WriteString(m.spin.View() + t.Muted.Render(" Salvando..."))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderPlan(st))
	b.WriteString("\n")
	b.WriteString(t.Footer.Render("enter salvar • tab campo seguinte • esc voltar ao painel • ctrl+l sair da conta"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m SettingsModel) renderPlan(st session.State) string {
	t := m.theme
	if st.User == nil {
		return ""
	}
	plan := st.User.PlanType
	if plan == "" {
		plan = "free"
	}
	var b strings.Builder
	title := "Plano Free"
	if plan == "pro" {
		title = "Plano Pro"
	}
	b.WriteString(t.CardTitle.Render(title))
	b.WriteString("\n")
	for _, feat := range planFeatures[plan] {
		b.WriteString(t.Muted.Render("• " + feat))
		b.WriteString("\n")
	}
	if exp, ok := session.TokenExpiry(st.Token); ok {
		b.WriteString(t.Faint.Render(fmt.Sprintf("Sessão válida até %s", exp.Local().Format("02/01/2006 15:04"))))
		b.WriteString("\n")
	}
	return t.Card.Render(strings.TrimRight(b.String(), "\n"))
}
