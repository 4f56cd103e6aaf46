package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ecoa/internal/app"
)

type LoginModel struct {
	app    *app.Application
	theme  Theme
	email  textinput.Model
	pass   textinput.Model
	focus  int
	spin   spinner.Model
	busy   bool
	notice string
	width  int
}

func NewLoginModel(application *app.Application, theme Theme) LoginModel {
	email := textinput.New()
	email.Placeholder = "seu@email.com"
	email.CharLimit = 120
	email.Focus()

	pass := textinput.New()
	pass.Placeholder = "********"
	pass.CharLimit = 120
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	return LoginModel{app: application, theme: theme, email: email, pass: pass, spin: sp}
}

func (m *LoginModel) setSize(w, _ int) {
	m.width = w
	m.email.Width = min(40, w-10)
	m.pass.Width = min(40, w-10)
}

// SetNotice shows a one-off line above the form, e.g. after a forced logout.
func (m *LoginModel) SetNotice(s string) { m.notice = s }

func (m *LoginModel) typing() bool { return true }

func (m *LoginModel) reset() {
	m.email.SetValue("")
	m.pass.SetValue("")
	m.focus = 0
	m.busy = false
	m.email.Focus()
	m.pass.Blur()
}

func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.setFocus((m.focus + 1) % 2)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + 1) % 2)
			return m, nil
		case "enter":
			if m.focus == 0 {
				m.setFocus(1)
				return m, nil
			}
			return m.submit()
		case "ctrl+r":
			m.app.Session.ClearError()
			m.notice = ""
			return m, navigate(PageRegister)
		}

	case authDoneMsg:
		m.busy = false
		if msg.err == nil {
			m.pass.SetValue("")
			return m, navigate(PageDashboard)
		}
		// Message already recorded by the store; stay on the page.
		return m, nil

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.pass, cmd = m.pass.Update(msg)
	}
	return m, cmd
}

func (m *LoginModel) setFocus(i int) {
	m.focus = i
	if i == 0 {
		m.email.Focus()
		m.pass.Blur()
	} else {
		m.email.Blur()
		m.pass.Focus()
	}
}

func (m LoginModel) submit() (LoginModel, tea.Cmd) {
	email := strings.TrimSpace(m.email.Value())
	password := m.pass.Value()
	if email == "" || password == "" {
		return m, nil
	}
	m.app.Session.ClearError()
	m.notice = ""
	m.busy = true
	sess := m.app.Session
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		err := sess.Login(context.Background(), email, password)
		return authDoneMsg{err: err}
	})
}

func (m LoginModel) View() string {
	t := m.theme
	var b strings.Builder

	b.WriteString(t.Title.Render("Bem-vindo ao ECOA"))
	b.WriteString("\n")
	b.WriteString(t.Subtitle.Render("Entre com sua conta para acessar o portal"))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(t.WarnBanner.Render(m.notice))
		b.WriteString("\n\n")
	}
	if err := m.app.Session.Snapshot().Err; err != "" {
		b.WriteString(t.ErrorBanner.Render(err))
		b.WriteString("\n\n")
	}

	b.WriteString(t.InputLabel.Render("Email"))
	b.WriteString("\n")
	b.WriteString(m.email.View())
	b.WriteString("\n\n")
	b.WriteString(t.InputLabel.Render("Senha"))
	b.WriteString("\n")
	b.WriteString(m.pass.View())
	b.WriteString("\n\n")

	if m.busy {
		b.WriteString(m.spin.View() + t.Muted.Render(" Entrando..."))
		b.WriteString("\n\n")
	}

	b.WriteString(t.Footer.Render("enter entrar • ctrl+r criar conta • ctrl+c sair"))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
