package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"ecoa/internal/api"
)

// Record is the single durable item this client persists: the authenticated
// profile and its bearer token, saved together so the session is restored
// whole or not at all.
type Record struct {
	User  *api.User `json:"user"`
	Token string    `json:"token"`
}

// Credentials is the JSON-on-disk credential record, <root>/auth.json.
// It is mutated from two places only: the session store (save on login,
// clear on logout) and the API client (clear on 401). Both clears are
// idempotent and converge on the same anonymous state.
type Credentials struct {
	mu   sync.Mutex
	path string
	rec  Record
}

// DefaultDataRoot resolves where the client keeps its local state.
func DefaultDataRoot() string {
	if base := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); base != "" {
		return filepath.Join(base, "ecoa")
	}
	if base, err := os.UserHomeDir(); err == nil && base != "" {
		return filepath.Join(base, ".local", "share", "ecoa")
	}
	return filepath.Join(os.TempDir(), "ecoa")
}

// OpenCredentials loads the stored record if one exists. A missing file is a
// normal anonymous start; a corrupt file is treated the same way after being
// removed.
func OpenCredentials(root string) (*Credentials, error) {
	if strings.TrimSpace(root) == "" {
		root = DefaultDataRoot()
	}
	c := &Credentials{path: filepath.Join(root, "auth.json")}

	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		_ = os.Remove(c.path)
		return c, nil
	}
	// Refuse partial records; a token without a profile (or the reverse)
	// is not a session.
	if rec.Token != "" && rec.User != nil {
		c.rec = rec
	}
	return c, nil
}

func (c *Credentials) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rec.Token
}

func (c *Credentials) Record() Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rec
}

func (c *Credentials) Save(user *api.User, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec := Record{User: user, Token: token}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		return err
	}
	c.rec = rec
	return nil
}

func (c *Credentials) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rec = Record{}
	err := os.Remove(c.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Path reports where the record lives, for diagnostics.
func (c *Credentials) Path() string {
	return c.path
}
