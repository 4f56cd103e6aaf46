package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"ecoa/internal/api"
	"ecoa/internal/filters"
)

// Page is the routing surface. Anonymous users only ever see login and
// register; everything else requires a session.
type Page int

const (
	PageLogin Page = iota
	PageRegister
	PageDashboard
	PageNews
	PageFilters
	PageSettings
)

// RouteFor maps a requested page name onto the page actually shown, per the
// routing contract: unauthenticated users are confined to the auth entry
// points, authenticated users asking for auth pages or anything unknown
// land on the dashboard.
func RouteFor(name string, authenticated bool) Page {
	if !authenticated {
		if name == "register" {
			return PageRegister
		}
		return PageLogin
	}
	switch name {
	case "news":
		return PageNews
	case "filters":
		return PageFilters
	case "settings":
		return PageSettings
	default:
		return PageDashboard
	}
}

type navigateMsg struct{ page Page }

func navigate(p Page) tea.Cmd {
	return func() tea.Msg { return navigateMsg{page: p} }
}

type authDoneMsg struct{ err error }

type logoutDoneMsg struct{}

type profileSavedMsg struct{ err error }

type dashboardMsg struct {
	data *api.Dashboard
	err  error
}

type newsMsg struct {
	list *api.NewsList
	err  error
}

type newsDetailMsg struct {
	item *api.NewsItem
	err  error
}

type filtersMsg struct {
	view filters.View
	err  error
}

type filterAddedMsg struct {
	view filters.View
	err  error
}

type filterToggledMsg struct {
	view filters.View
	err  error
}

type filterDeletedMsg struct {
	view filters.View
	err  error
}
