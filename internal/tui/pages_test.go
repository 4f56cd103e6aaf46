package tui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecoa/internal/api"
	"ecoa/internal/app"
	"ecoa/internal/filters"
	"ecoa/internal/session"
)

func testApp(t *testing.T) *app.Application {
	t.Helper()
	creds, err := session.OpenCredentials(t.TempDir())
	require.NoError(t, err)
	client := api.New("http://127.0.0.1:0", 0, creds, zerolog.Nop())
	return &app.Application{
		Config:  app.DefaultConfig(),
		Logger:  zerolog.Nop(),
		Client:  client,
		Session: session.NewStore(client, creds, zerolog.Nop()),
		Filters: filters.NewWorkflow(client, zerolog.Nop()),
	}
}

func TestFiltersViewShowsLimitBanner(t *testing.T) {
	t.Setenv("ECOA_NO_COLOR", "1")
	application := testApp(t)
	m := NewFiltersModel(application, NewTheme(""))
	m.setSize(100, 40)
	m.view = filters.View{
		Items: []api.Filter{
			{ID: "f1", Term: "reforma tributária", IsActive: true, MatchCount: 12},
			{ID: "f2", Term: "joão silva", IsActive: false, MatchCount: 3},
		},
		Total:        2,
		LimitReached: true,
		PlanLimit:    3,
	}

	out := m.View()
	assert.Contains(t, out, "Limite de termos atingido")
	assert.Contains(t, out, "até 3 termos")
	assert.Contains(t, out, "reforma tributária")
	assert.Contains(t, out, "Ativo")
	assert.Contains(t, out, "Inativo")
	assert.Contains(t, out, "12 menções")
}

func TestFiltersDeleteRequiresConfirmation(t *testing.T) {
	t.Setenv("ECOA_NO_COLOR", "1")
	application := testApp(t)
	m := NewFiltersModel(application, NewTheme(""))
	m.view = filters.View{Items: []api.Filter{{ID: "f1", Term: "reforma", IsActive: true}}, PlanLimit: 3}

	m, cmd := m.Update(keyMsg("d"))
	assert.Nil(t, cmd, "delete must not fire before confirmation")
	assert.Equal(t, "f1", m.confirming)
	assert.Contains(t, m.View(), "Tem certeza que deseja remover este termo?")

	m, cmd = m.Update(keyMsg("n"))
	assert.Nil(t, cmd, "declining cancels the delete")
	assert.Empty(t, m.confirming)
}

func TestLoginViewShowsStoreError(t *testing.T) {
	t.Setenv("ECOA_NO_COLOR", "1")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Credenciais inválidas"}`))
	}))
	defer srv.Close()

	creds, err := session.OpenCredentials(t.TempDir())
	require.NoError(t, err)
	client := api.New(srv.URL, 0, creds, zerolog.Nop())
	application := &app.Application{
		Config:  app.DefaultConfig(),
		Logger:  zerolog.Nop(),
		Client:  client,
		Session: session.NewStore(client, creds, zerolog.Nop()),
		Filters: filters.NewWorkflow(client, zerolog.Nop()),
	}
	m := NewLoginModel(application, NewTheme(""))
	m.setSize(100, 40)

	assert.NotContains(t, m.View(), "Credenciais inválidas")

	// The page renders whatever the store recorded, inline.
	require.Error(t, application.Session.Login(context.Background(), "a@b.c", "wrong"))
	assert.Contains(t, m.View(), "Credenciais inválidas")
}

func TestRegisterLocalValidationRendersInline(t *testing.T) {
	t.Setenv("ECOA_NO_COLOR", "1")
	application := testApp(t)
	m := NewRegisterModel(application, NewTheme(""))
	m.setSize(100, 40)
	m.inputs[regFieldName].SetValue("Maria Silva")
	m.inputs[regFieldEmail].SetValue("maria@example.com")
	m.inputs[regFieldPassword].SetValue("abc12")
	m.inputs[regFieldConfirm].SetValue("abc123")
	m.focus = regFieldState

	m, cmd := m.submit()
	assert.Nil(t, cmd, "validation failure must not start a network command")
	assert.Equal(t, "As senhas não coincidem", m.localErr)
	assert.Contains(t, m.View(), "As senhas não coincidem")
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune(s)})
}
