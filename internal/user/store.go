package user

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// credentials is the on-disk shape of a persisted session.
type credentials struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Store owns the process-wide auth state. It is the only writer: the
// user service calls SetSession on login and Clear on logout, everyone
// else reads snapshots. State survives restarts through a JSON
// credential file.
type Store struct {
	mu      sync.RWMutex
	path    string
	session Session
}

// NewStore reads persisted credentials from path. A missing file or an
// expired token starts the store logged out; a corrupt file is treated
// the same way rather than failing startup.
func NewStore(path string) *Store {
	s := &Store{
		path:    path,
		session: Session{IsLoading: true},
	}
	s.load()
	return s
}

func (s *Store) load() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = Session{}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var creds credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return
	}
	if creds.Token == "" || tokenExpired(creds.Token) {
		return
	}

	u := creds.User
	s.session = Session{
		User:            &u,
		Token:           creds.Token,
		IsAuthenticated: true,
	}
}

// Snapshot returns a copy of the current auth state.
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess := s.session
	if sess.User != nil {
		u := *sess.User
		sess.User = &u
	}
	return sess
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

// SetSession persists the credentials and flips the store to
// authenticated. The file is written before the in-memory flip so a
// crash cannot leave a logged-in state with nothing on disk.
func (s *Store) SetSession(u User, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(credentials{Token: token, User: u}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return err
	}

	s.session = Session{
		User:            &u,
		Token:           token,
		IsAuthenticated: true,
	}
	return nil
}

// Clear removes the credential file and flips the store to logged out.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = Session{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// tokenExpired reports whether a stored JWT is past its exp claim. The
// signature is the server's business, so the token is parsed
// unverified; tokens that are not JWTs or carry no exp are kept.
func tokenExpired(tokenStr string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
