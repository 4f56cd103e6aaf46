// Package session owns "who is logged in". The Store is an explicit,
// injectable object rather than package state, so tests can run independent
// sessions side by side.
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"ecoa/internal/api"
)

// Fallback messages shown when the backend fails without a detail string.
const (
	MsgLoginFailed    = "Erro ao fazer login"
	MsgRegisterFailed = "Erro ao criar conta"
	MsgUpdateFailed   = "Erro ao atualizar perfil"
)

// AuthAPI is the slice of the API client the store needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*api.TokenResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.TokenResponse, error)
	UpdateMe(ctx context.Context, update api.ProfileUpdate) (*api.User, error)
	Logout(ctx context.Context) error
}

// State is a snapshot of the session for rendering. User and Token are
// either both set or both empty; there is no partial state.
type State struct {
	User    *api.User
	Token   string
	Loading bool
	Err     string
}

func (s State) Authenticated() bool { return s.User != nil }

// RegisterInput is the registration form as the user typed it. Blank
// optional fields are omitted from the request.
type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	FullName        string
	PoliticalName   string
	Party           string
	State           string
}

// Store is the authoritative session holder. Operations that hit the
// network record the failure in Err and also return it, so callers can skip
// navigation without re-deriving the message. Overlapping calls are not
// serialized; the last response to land wins.
type Store struct {
	mu    sync.Mutex
	auth  AuthAPI
	creds *Credentials
	log   zerolog.Logger

	user    *api.User
	token   string
	loading bool
	lastErr string
}

func NewStore(auth AuthAPI, creds *Credentials, log zerolog.Logger) *Store {
	s := &Store{auth: auth, creds: creds, log: log}
	// Rehydrate before any authenticated call is attempted.
	if rec := creds.Record(); rec.Token != "" && rec.User != nil {
		s.user = rec.User
		s.token = rec.Token
	}
	return s
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{User: s.user, Token: s.token, Loading: s.loading, Err: s.lastErr}
}

func (s *Store) Authenticated() bool {
	return s.Snapshot().Authenticated()
}

func (s *Store) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()
}

func (s *Store) fail(err error, fallback string) error {
	msg := api.Detail(err, fallback)
	s.mu.Lock()
	s.loading = false
	s.lastErr = msg
	s.mu.Unlock()
	return err
}

func (s *Store) establish(tok *api.TokenResponse) error {
	user := tok.User
	if err := s.creds.Save(&user, tok.AccessToken); err != nil {
		s.log.Error().Err(err).Msg("persisting credentials")
	}
	s.mu.Lock()
	s.user = &user
	s.token = tok.AccessToken
	s.loading = false
	s.mu.Unlock()
	return nil
}

func (s *Store) Login(ctx context.Context, email, password string) error {
	s.begin()
	tok, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return s.fail(err, MsgLoginFailed)
	}
	s.log.Info().Str("email", email).Msg("logged in")
	return s.establish(tok)
}

// Register validates locally first; validation failures never reach the
// network and are surfaced exactly like backend rejections.
func (s *Store) Register(ctx context.Context, in RegisterInput) error {
	if err := ValidateRegistration(in); err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		return err
	}
	s.begin()
	tok, err := s.auth.Register(ctx, api.RegisterRequest{
		Email:         strings.TrimSpace(in.Email),
		Password:      in.Password,
		FullName:      strings.TrimSpace(in.FullName),
		PoliticalName: strings.TrimSpace(in.PoliticalName),
		Party:         strings.TrimSpace(in.Party),
		State:         strings.TrimSpace(in.State),
	})
	if err != nil {
		return s.fail(err, MsgRegisterFailed)
	}
	s.log.Info().Str("email", in.Email).Msg("account created")
	return s.establish(tok)
}

// UpdateUser replaces the profile wholesale with the server's response.
// On failure the existing session is untouched except for Err.
func (s *Store) UpdateUser(ctx context.Context, update api.ProfileUpdate) error {
	s.begin()
	user, err := s.auth.UpdateMe(ctx, update)
	if err != nil {
		return s.fail(err, MsgUpdateFailed)
	}
	s.mu.Lock()
	s.user = user
	s.loading = false
	s.mu.Unlock()
	return nil
}

// Logout is unconditional and never fails: the credential file is removed,
// the in-memory session reset, and the backend told on a best-effort basis.
func (s *Store) Logout(ctx context.Context) {
	if s.Authenticated() {
		if err := s.auth.Logout(ctx); err != nil {
			s.log.Debug().Err(err).Msg("server logout failed, continuing")
		}
	}
	if err := s.creds.Clear(); err != nil {
		s.log.Error().Err(err).Msg("clearing credentials on logout")
	}
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.loading = false
	s.mu.Unlock()
}

// ForceLogout resets the session without calling the backend. Subscribed to
// the API client's unauthorized event: by the time it fires, the stored
// credential is already gone.
func (s *Store) ForceLogout() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.loading = false
	s.lastErr = ""
	s.mu.Unlock()
}

// ClearError drops a stale error before a new attempt so it does not flash.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}
