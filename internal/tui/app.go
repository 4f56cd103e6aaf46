// Package tui renders the ECOA pages in the terminal. The root Model routes
// between page models; routing follows the session state, so a session torn
// down by a 401 lands back on the login page no matter which page the user
// was looking at.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"ecoa/internal/app"
)

type Model struct {
	app    *app.Application
	theme  Theme
	page   Page
	width  int
	height int

	login     LoginModel
	register  RegisterModel
	dashboard DashboardModel
	news      NewsModel
	filters   FiltersModel
	settings  SettingsModel
}

// New builds the root model starting at the requested page; the page name is
// resolved against the session, so anonymous starts always land on login.
func New(application *app.Application, startPage string) *Model {
	theme := NewTheme(application.Config.Theme)
	m := &Model{
		app:       application,
		theme:     theme,
		page:      RouteFor(startPage, application.Session.Authenticated()),
		login:     NewLoginModel(application, theme),
		register:  NewRegisterModel(application, theme),
		dashboard: NewDashboardModel(application, theme),
		news:      NewNewsModel(application, theme),
		filters:   NewFiltersModel(application, theme),
		settings:  NewSettingsModel(application, theme),
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	return m.enter(m.page)
}

// enter runs a page's on-route work (data loads, form sync) and returns its
// command.
func (m *Model) enter(p Page) tea.Cmd {
	m.page = p
	switch p {
	case PageDashboard:
		var cmd tea.Cmd
		m.dashboard, cmd = m.dashboard.load()
		return cmd
	case PageNews:
		var cmd tea.Cmd
		m.news, cmd = m.news.load()
		return cmd
	case PageFilters:
		var cmd tea.Cmd
		m.filters, cmd = m.filters.load()
		return cmd
	case PageSettings:
		m.settings.syncFromSession()
		return nil
	case PageLogin:
		m.login.reset()
		if m.app.SessionExpired() {
			m.login.SetNotice("Sua sessão expirou. Entre novamente.")
		}
		return nil
	default:
		return nil
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.login.setSize(msg.Width, msg.Height)
		m.register.setSize(msg.Width, msg.Height)
		m.dashboard.setSize(msg.Width, msg.Height)
		m.news.setSize(msg.Width, msg.Height)
		m.filters.setSize(msg.Width, msg.Height)
		m.settings.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.authenticated() && !m.activeTyping() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				return m, m.enter(PageDashboard)
			case "2":
				return m, m.enter(PageNews)
			case "3":
				return m, m.enter(PageFilters)
			case "4":
				return m, m.enter(PageSettings)
			}
		}

	case navigateMsg:
		return m, m.enter(RouteFor(pageName(msg.page), m.authenticated()))

	case logoutDoneMsg:
		return m, m.enter(PageLogin)
	}

	model, cmd := m.updateActive(msg)

	// A 401 can invalidate the session under any page; route back to login
	// the moment a message shows the session is gone.
	if m.page >= PageDashboard && !m.authenticated() {
		return model, tea.Batch(cmd, navigate(PageLogin))
	}
	return model, cmd
}

func (m *Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.page {
	case PageLogin:
		m.login, cmd = m.login.Update(msg)
	case PageRegister:
		m.register, cmd = m.register.Update(msg)
	case PageDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case PageNews:
		m.news, cmd = m.news.Update(msg)
	case PageFilters:
		m.filters, cmd = m.filters.Update(msg)
	case PageSettings:
		m.settings, cmd = m.settings.Update(msg)
	}
	return m, cmd
}

func (m *Model) View() string {
	body := ""
	switch m.page {
	case PageLogin:
		body = m.login.View()
	case PageRegister:
		body = m.register.View()
	case PageDashboard:
		body = m.dashboard.View()
	case PageNews:
		body = m.news.View()
	case PageFilters:
		body = m.filters.View()
	case PageSettings:
		body = m.settings.View()
	}
	if m.page >= PageDashboard {
		return m.renderTabs() + "\n" + body
	}
	return body
}

func (m *Model) renderTabs() string {
	t := m.theme
	tabs := []struct {
		page  Page
		label string
	}{
		{PageDashboard, "1 Painel"},
		{PageNews, "2 Notícias"},
		{PageFilters, "3 Termos"},
		{PageSettings, "4 Configurações"},
	}
	out := "  "
	for i, tab := range tabs {
		if i > 0 {
			out += t.Faint.Render("  ·  ")
		}
		if tab.page == m.page {
			out += t.TabActive.Render(tab.label)
		} else {
			out += t.TabInactive.Render(tab.label)
		}
	}
	return out
}

func (m *Model) authenticated() bool {
	return m.app.Session.Authenticated()
}

func (m *Model) activeTyping() bool {
	switch m.page {
	case PageLogin:
		return m.login.typing()
	case PageRegister:
		return m.register.typing()
	case PageDashboard:
		return m.dashboard.typing()
	case PageNews:
		return m.news.typing()
	case PageFilters:
		return m.filters.typing()
	case PageSettings:
		return m.settings.typing()
	}
	return false
}

func pageName(p Page) string {
	switch p {
	case PageRegister:
		return "register"
	case PageNews:
		return "news"
	case PageFilters:
		return "filters"
	case PageSettings:
		return "settings"
	case PageLogin:
		return "login"
	default:
		return "dashboard"
	}
}
