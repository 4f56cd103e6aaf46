package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteForAnonymous(t *testing.T) {
	// Anonymous users are confined to the auth entry points.
	assert.Equal(t, PageLogin, RouteFor("login", false))
	assert.Equal(t, PageRegister, RouteFor("register", false))
	assert.Equal(t, PageLogin, RouteFor("dashboard", false))
	assert.Equal(t, PageLogin, RouteFor("news", false))
	assert.Equal(t, PageLogin, RouteFor("does-not-exist", false))
	assert.Equal(t, PageLogin, RouteFor("", false))
}

func TestRouteForAuthenticated(t *testing.T) {
	assert.Equal(t, PageDashboard, RouteFor("dashboard", true))
	assert.Equal(t, PageNews, RouteFor("news", true))
	assert.Equal(t, PageFilters, RouteFor("filters", true))
	assert.Equal(t, PageSettings, RouteFor("settings", true))

	// Auth pages and unknown paths both land on the dashboard.
	assert.Equal(t, PageDashboard, RouteFor("login", true))
	assert.Equal(t, PageDashboard, RouteFor("register", true))
	assert.Equal(t, PageDashboard, RouteFor("does-not-exist", true))
	assert.Equal(t, PageDashboard, RouteFor("", true))
}
