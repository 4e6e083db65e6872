// Package session holds the persisted authentication session: a bearer token
// written to a file so both the CLI and the background sync worker can read
// it. The session only stores the token; account lifecycle lives on the
// server.
package session

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is a file-backed token holder. The zero token means guest mode.
type Session struct {
	path string

	mu    sync.Mutex
	token string

	now func() time.Time
}

// Load reads the session file at path. A missing file yields an empty
// (guest) session, not an error.
func Load(path string) (*Session, error) {
	s := &Session{path: path, now: time.Now}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}
	s.token = strings.TrimSpace(string(data))
	return s, nil
}

// Token returns the stored bearer token, or "" when none is stored or the
// stored one has expired. An expired token downgrades to guest mode instead
// of being sent and bounced.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" || s.expired(s.token) {
		return ""
	}
	return s.token
}

// Authenticated reports whether a usable token is present.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// SetToken stores and persists a new token.
func (s *Session) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Clear wipes the session, returning to guest mode.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// expired checks the token's exp claim without verifying the signature (the
// client has no signing key). Opaque or claim-less tokens are assumed valid;
// the server is the authority either way.
func (s *Session) expired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(s.now())
}
