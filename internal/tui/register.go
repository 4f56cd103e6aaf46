package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ecoa/internal/app"
	"ecoa/internal/session"
)

// ufs are the 27 Brazilian state codes offered by the registration and
// settings forms. Index 0 means "not informed".
var ufs = []string{
	"", "AC", "AL", "AP", "AM", "BA", "CE", "DF", "ES", "GO", "MA",
	"MT", "MS", "MG", "PA", "PB", "PR", "PE", "PI", "RJ", "RN",
	"RS", "RO", "RR", "SC", "SP", "SE", "TO",
}

const (
	regFieldName = iota
	regFieldEmail
	regFieldPassword
	regFieldConfirm
	regFieldPoliticalName
	regFieldParty
	regFieldState
	regFieldCount
)

type RegisterModel struct {
	app      *app.Application
	theme    Theme
	inputs   [regFieldCount - 1]textinput.Model // all fields but the UF selector
	stateIdx int
	focus    int
	spin     spinner.Model
	busy     bool
	localErr string
	width    int
}

func NewRegisterModel(application *app.Application, theme Theme) RegisterModel {
	m := RegisterModel{app: application, theme: theme}

	labels := []struct {
		placeholder string
		secret      bool
	}{
		{"Seu nome completo", false},
		{"seu@email.com", false},
		{"******", true},
		{"******", true},
		{"Como é conhecido na política", false},
		{"Ex: PT, PSDB...", false},
	}
	for i, l := range labels {
		in := textinput.New()
		in.Placeholder = l.placeholder
		in.CharLimit = 120
		if l.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		m.inputs[i] = in
	}
	m.inputs[regFieldName].Focus()

	m.spin = spinner.New()
	m.spin.Spinner = spinner.Dot
	m.spin.Style = theme.Spinner
	return m
}

func (m *RegisterModel) setSize(w, _ int) {
	m.width = w
	for i := range m.inputs {
		m.inputs[i].Width = min(40, w-10)
	}
}

func (m *RegisterModel) typing() bool { return true }

func (m RegisterModel) Update(msg tea.Msg) (RegisterModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			m.app.Session.ClearError()
			m.localErr = ""
			return m, navigate(PageLogin)
		case "tab", "down":
			m.setFocus((m.focus + 1) % regFieldCount)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + regFieldCount - 1) % regFieldCount)
			return m, nil
		case "enter":
			if m.focus < regFieldState {
				m.setFocus(m.focus + 1)
				return m, nil
			}
			return m.submit()
		case "left":
			if m.focus == regFieldState {
				m.stateIdx = (m.stateIdx + len(ufs) - 1) % len(ufs)
				return m, nil
			}
		case "right":
			if m.focus == regFieldState {
				m.stateIdx = (m.stateIdx + 1) % len(ufs)
				return m, nil
			}
		}

	case authDoneMsg:
		m.busy = false
		if msg.err == nil {
			return m, navigate(PageDashboard)
		}
		return m, nil

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.focus < regFieldState {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *RegisterModel) setFocus(i int) {
	m.focus = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

func (m RegisterModel) submit() (RegisterModel, tea.Cmd) {
	m.app.Session.ClearError()
	m.localErr = ""

	in := session.RegisterInput{
		FullName:        m.inputs[regFieldName].Value(),
		Email:           m.inputs[regFieldEmail].Value(),
		Password:        m.inputs[regFieldPassword].Value(),
		ConfirmPassword: m.inputs[regFieldConfirm].Value(),
		PoliticalName:   m.inputs[regFieldPoliticalName].Value(),
		Party:           m.inputs[regFieldParty].Value(),
		State:           ufs[m.stateIdx],
	}
	// Validate here so failures never start the spinner; the store
	// validates again before the network call.
	if err := session.ValidateRegistration(in); err != nil {
		m.localErr = err.Error()
		return m, nil
	}

	m.busy = true
	sess := m.app.Session
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		err := sess.Register(context.Background(), in)
		return authDoneMsg{err: err}
	})
}

func (m RegisterModel) View() string {
	t := m.theme
	var b strings.Builder

	b.WriteString(t.Title.Render("Criar Conta"))
	b.WriteString("\n")
	b.WriteString(t.Subtitle.Render("Cadastre-se para monitorar suas menções na mídia"))
	b.WriteString("\n\n")

	display := m.localErr
	if display == "" {
		display = m.app.Session.Snapshot().Err
	}
	if display != "" {
		b.WriteString(t.ErrorBanner.Render(display))
		b.WriteString("\n\n")
	}

	labels := []string{"Nome Completo", "Email", "Senha", "Confirmar Senha", "Nome Político (opcional)", "Partido (opcional)"}
	for i, label := range labels {
		b.WriteString(t.InputLabel.Render(label))
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	b.WriteString(t.InputLabel.Render("Estado (opcional)"))
	b.WriteString("\n")
	uf := ufs[m.stateIdx]
	if uf == "" {
		uf = "Selecione"
	}
	sel := t.Muted.Render("◀ ") + uf + t.Muted.Render(" ▶")
	if m.focus == regFieldState {
		sel = t.Selected.Render("◀ " + uf + " ▶")
	}
	b.WriteString(sel)
	b.WriteString("\n\n")

	if m.busy {
		b.WriteString(m.spin.View() + t.Muted.Render(" Criando conta..."))
		b.WriteString("\n\n")
	}

	b.WriteString(t.Footer.Render("enter avançar/enviar • tab campo seguinte • esc fazer login"))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
