// Package session persists the authenticated user's token between runs.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Session holds the persisted authentication state.
type Session struct {
	// Token is the bearer token returned by login.
	Token string `json:"token,omitempty"`
	// Email is the authenticated user's email (for display and ownership checks).
	Email string `json:"email,omitempty"`
	// UpdatedAt is when the session was last modified.
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// IsAuthenticated returns true if a token is present.
func (s *Session) IsAuthenticated() bool {
	return s.Token != ""
}

// Clear removes all session state.
func (s *Session) Clear() {
	s.Token = ""
	s.Email = ""
	s.UpdatedAt = time.Now()
}

// SetToken stores a fresh login result.
func (s *Session) SetToken(token, email string) {
	s.Token = token
	s.Email = email
	s.UpdatedAt = time.Now()
}

// Store manages loading and saving the session file.
type Store struct {
	path string
	mu   sync.RWMutex
}

// NewStore creates a session store.
// If path is empty, uses the default path (~/.config/bridgette/session.json).
func NewStore(path string) *Store {
	if path == "" {
		homeDir, _ := os.UserHomeDir()
		path = filepath.Join(homeDir, ".config", "bridgette", "session.json")
	}
	return &Store{path: path}
}

// Path returns the session file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the session from disk.
// Returns an empty session if the file doesn't exist.
func (s *Store) Load() (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess := &Session{}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return sess, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	if err := json.Unmarshal(data, sess); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}

	return sess, nil
}

// Save writes the session to disk. The file holds a bearer token, so it
// is written with owner-only permissions.
func (s *Store) Save(sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Clear removes the session file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
