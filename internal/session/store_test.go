package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s := NewStore(path)
	s.SetToken(&oauth2.Token{
		AccessToken:  "access-abc",
		RefreshToken: "refresh-xyz",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).UTC(),
	})
	require.NoError(t, s.Save())

	loaded := NewStore(path)
	require.NoError(t, loaded.Load())

	token, err := loaded.Token()
	require.NoError(t, err)
	assert.Equal(t, "access-abc", token.AccessToken)
	assert.Equal(t, "refresh-xyz", token.RefreshToken)
	assert.Equal(t, "Bearer", token.TokenType)
}

func TestStore_SetTokenThenSaveReplacesPersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s := NewStore(path)
	s.SetToken(&oauth2.Token{AccessToken: "stale", RefreshToken: "r1"})
	require.NoError(t, s.Save())

	// A refreshed token set after the first save must win on disk.
	s.SetToken(&oauth2.Token{AccessToken: "refreshed", RefreshToken: "r2"})
	require.NoError(t, s.Save())

	loaded := NewStore(path)
	require.NoError(t, loaded.Load())
	token, err := loaded.Token()
	require.NoError(t, err)
	assert.Equal(t, "refreshed", token.AccessToken)
	assert.Equal(t, "r2", token.RefreshToken)
}

func TestStore_MissingFileIsNotAnError(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, s.Load())

	_, err := s.Token()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_CorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	s := NewStore(path)
	assert.Error(t, s.Load())
}

func TestStore_SaveEmptyIsNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewStore(path)

	require.NoError(t, s.Save())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "an empty store must not write a file")
}

func TestStore_SaveCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "session.json")
	s := NewStore(path)
	s.SetToken(&oauth2.Token{AccessToken: "x"})

	require.NoError(t, s.Save())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
