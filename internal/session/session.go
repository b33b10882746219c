// internal/session/session.go
//
// staffdesk – session state.
//
// Context
//   A successful login yields a token, a role, and a user id.  Later
//   requests (add-employee) read the token back.  The triple is process-wide
//   state persisted to a small JSON file so it survives between CLI runs,
//   with no expiry managed here.
//
// Lifecycle
//   •  Set     – written by the login form on success.
//   •  Get     – read by authenticated requests and `whoami`.
//   •  Clear   – logout.
//
//   The store goes through an afero.Fs so tests can run on a memory
//   filesystem.  All callers rely only on this small API.
//
//------------------------------------------------------------------------------

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/spf13/afero"
)

// ErrNoSession is returned by Load when nobody is logged in.
var ErrNoSession = errors.New("session: not logged in")

// Session is the token/role/id triple issued at login.
type Session struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	ID    string `json:"id"`
}

// Store persists one Session.  Safe for concurrent use.
type Store struct {
	mu   sync.Mutex
	fs   afero.Fs
	path string
}

// NewStore returns a Store writing to path on fs.
func NewStore(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// Set replaces the stored session.  The file is written to a sibling temp
// file and renamed so a crash never leaves half a token behind.
func (s *Store) Set(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session dir: %w", err)
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, raw, 0o600); err != nil {
		return fmt.Errorf("session write: %w", err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("session rename: %w", err)
	}
	return nil
}

// Load returns the stored session or ErrNoSession.  A corrupt file is an
// error, not an empty session.
func (s *Store) Load() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, fmt.Errorf("session read: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return Session{}, fmt.Errorf("session decode: %w", err)
	}
	if sess == (Session{}) {
		return Session{}, ErrNoSession
	}
	return sess, nil
}

// Get returns the stored session.  ok == false when none is stored or the
// file is unreadable.
func (s *Store) Get() (sess Session, ok bool) {
	sess, err := s.Load()
	return sess, err == nil
}

// Token returns the stored token, or "" when logged out.
func (s *Store) Token() string {
	sess, _ := s.Get()
	return sess.Token
}

// Clear removes the stored session.  Clearing an empty store is not an
// error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}

/*──────────────────────────── process default ─────────────────────────────*/

var def atomic.Pointer[Store]

func init() { def.Store(NewStore(afero.NewMemMapFs(), "session.json")) }

// Default returns the process-wide store.  Until SetDefault is called it is
// memory-backed.
func Default() *Store { return def.Load() }

// SetDefault installs s as the process-wide store.
func SetDefault(s *Store) { def.Store(s) }
