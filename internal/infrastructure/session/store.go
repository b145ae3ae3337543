// Package session holds the process-wide authentication state: set on
// login, cleared on logout or account deletion, read by every outgoing
// request to the backend. All access goes through the Store so no call
// site touches token state directly.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/11JOB/11JOB-frontend/internal/domain/entities"
)

// Store keeps the current session in memory and, when a path is
// configured, mirrors it to a JSON file so CLI invocations share a login.
type Store struct {
	mu   sync.RWMutex
	path string
	sess *entities.Session
}

// New creates a store backed by the given file path. An empty path means
// memory-only. A pre-existing session file is loaded eagerly; a corrupt
// file is treated as no session rather than an error.
func New(path string) *Store {
	s := &Store{path: path}
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			var sess entities.Session
			if json.Unmarshal(data, &sess) == nil && sess.AccessToken != "" {
				s.sess = &sess
			}
		}
	}
	return s
}

// Current returns the active session, or ErrNotAuthenticated.
func (s *Store) Current() (*entities.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sess == nil {
		return nil, entities.ErrNotAuthenticated
	}
	cp := *s.sess
	return &cp, nil
}

// Token returns the access token for outgoing requests.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sess == nil {
		return "", false
	}
	return s.sess.AccessToken, true
}

// Save replaces the stored session and persists it when file-backed.
func (s *Store) Save(sess *entities.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *sess
	s.sess = &cp

	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	data, err := json.MarshalIndent(&cp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Clear drops the session and removes the session file if present.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sess = nil
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
