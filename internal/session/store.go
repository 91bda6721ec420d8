// Package session owns the destination catalog's OAuth token state.
// The login/token-exchange flow happens outside this repository; this
// store gives that state an explicit load/save lifecycle instead of
// process-wide mutable globals.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
)

// ErrNoSession indicates no token has been loaded or set.
var ErrNoSession = errors.New("no catalog session, authenticate first")

// Store holds an oauth2 token with file-backed persistence. Safe for
// concurrent use.
type Store struct {
	path string

	mu    sync.Mutex
	token *oauth2.Token
}

// NewStore creates a Store persisting to path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted token, if any. A missing file is not an
// error; the store simply stays empty.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read session file %s: %w", s.path, err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return fmt.Errorf("failed to parse session file %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.token = &token
	s.mu.Unlock()
	return nil
}

// Save persists the current token. Saving an empty store is a no-op.
func (s *Store) Save() error {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()
	if token == nil {
		return nil
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create session dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file %s: %w", s.path, err)
	}
	return nil
}

// SetToken replaces the stored token.
func (s *Store) SetToken(token *oauth2.Token) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Token returns the current token or ErrNoSession.
func (s *Store) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == nil {
		return nil, ErrNoSession
	}
	return s.token, nil
}
