// Package app wires the client together: config, logger, credential file,
// API client, session store and the filters workflow.
package app

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"ecoa/internal/api"
	"ecoa/internal/filters"
	"ecoa/internal/session"
)

type Application struct {
	Config  Config
	Logger  zerolog.Logger
	Client  *api.Client
	Session *session.Store
	Filters *filters.Workflow

	closeLog func()

	// expired flips when a 401 forced the session out, so the UI can say
	// why the user is back at the login screen.
	expired atomic.Bool
}

// New builds a ready Application. The stored session, if any, is restored
// before anything can issue an authenticated call.
func New(cfg Config) (*Application, error) {
	dataRoot := session.DefaultDataRoot()
	logger, closeLog := NewLogger(dataRoot)

	creds, err := session.OpenCredentials(dataRoot)
	if err != nil {
		closeLog()
		return nil, err
	}

	client := api.New(cfg.BaseURL, time.Duration(cfg.TimeoutSeconds)*time.Second, creds, logger)
	store := session.NewStore(client, creds, logger)

	a := &Application{
		Config:   cfg,
		Logger:   logger,
		Client:   client,
		Session:  store,
		Filters:  filters.NewWorkflow(client, logger),
		closeLog: closeLog,
	}

	// The transport detects the dead credential; the session owner decides
	// what that means. Here it means: drop the session and let the router
	// land on the login page.
	client.OnUnauthorized = func() {
		// A 401 on the login attempt itself is just a wrong password;
		// only an established session expiring deserves the notice.
		if store.Authenticated() {
			logger.Info().Msg("session invalidated by 401")
			a.expired.Store(true)
		}
		store.ForceLogout()
	}
	return a, nil
}

// SessionExpired reports and clears the 401 notice, so the login page shows
// it once.
func (a *Application) SessionExpired() bool {
	return a.expired.Swap(false)
}

func (a *Application) Close() {
	if a.closeLog != nil {
		a.closeLog()
	}
}
