package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecoa/internal/api"
)

func TestCredentialsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	creds, err := OpenCredentials(dir)
	require.NoError(t, err)
	assert.Empty(t, creds.Token())

	user := &api.User{ID: "u1", Email: "a@b.c", PlanType: "free"}
	require.NoError(t, creds.Save(user, "tok"))

	reopened, err := OpenCredentials(dir)
	require.NoError(t, err)
	rec := reopened.Record()
	assert.Equal(t, "tok", rec.Token)
	require.NotNil(t, rec.User)
	assert.Equal(t, "a@b.c", rec.User.Email)
}

func TestClearIsIdempotent(t *testing.T) {
	creds, err := OpenCredentials(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, creds.Save(&api.User{ID: "u1", Email: "a@b.c"}, "tok"))

	require.NoError(t, creds.Clear())
	require.NoError(t, creds.Clear(), "second clear must not fail")
	assert.Empty(t, creds.Token())
}

func TestPartialRecordIsIgnored(t *testing.T) {
	dir := t.TempDir()
	// A token with no profile is not a session.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth.json"), []byte(`{"token":"orphan"}`), 0o600))

	creds, err := OpenCredentials(dir)
	require.NoError(t, err)
	assert.Empty(t, creds.Token())
	assert.Nil(t, creds.Record().User)
}

func TestCorruptFileStartsAnonymous(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth.json"), []byte("{not json"), 0o600))

	creds, err := OpenCredentials(dir)
	require.NoError(t, err)
	assert.Empty(t, creds.Token())
}
