package client

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dinebook/reservation-system/internal/core/domain"
)

// CredentialStore is the durable single-slot store behind a Session. One
// active session at a time: Save overwrites, Clear empties the slot.
type CredentialStore interface {
	Load() (string, error)
	Save(credential string) error
	Clear() error
}

// FileStore keeps the credential in a file, the CLI analogue of a browser's
// localStorage slot.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *FileStore) Save(credential string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(credential), 0o600)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Observer is notified after every session transition with the new identity,
// or nil after a logout.
type Observer func(identity *domain.Identity)

// Session holds the current credential and the identity derived from it.
// Mutations are atomic with respect to readers and observers: either the
// pre- or the post-transition state is visible, never a partial one.
// isAuthenticated means "identity present", not "credential string present",
// so a corrupted stored credential degrades to logged-out rather than to a
// broken authenticated state.
type Session struct {
	mu        sync.RWMutex
	store     CredentialStore
	log       zerolog.Logger
	cred      string
	identity  *domain.Identity
	observers []Observer
}

// NewSession restores the persisted credential, if any. A slot that no
// longer parses triggers an implicit logout instead of surfacing an error.
func NewSession(store CredentialStore, log zerolog.Logger) *Session {
	s := &Session{store: store, log: log}

	cred, err := store.Load()
	if err != nil {
		log.Warn().Err(err).Msg("failed to load stored credential")
		return s
	}
	if cred == "" {
		return s
	}

	identity, err := ParseIdentity(cred)
	if err != nil {
		log.Warn().Err(err).Msg("stored credential invalid, logging out")
		_ = store.Clear()
		return s
	}

	s.cred = Canonical(cred)
	s.identity = &identity
	return s
}

// Login normalizes and persists the credential, re-derives the identity, and
// notifies observers. A credential that fails to parse clears the session
// (implicit logout) and returns ErrCredentialInvalid.
func (s *Session) Login(rawCredential string) error {
	identity, err := ParseIdentity(rawCredential)
	if err != nil {
		if logoutErr := s.Logout(); logoutErr != nil {
			s.log.Warn().Err(logoutErr).Msg("logout after failed login")
		}
		return err
	}

	canonical := Canonical(rawCredential)
	if err := s.store.Save(canonical); err != nil {
		return err
	}

	s.mu.Lock()
	s.cred = canonical
	s.identity = &identity
	s.mu.Unlock()

	s.notify(&identity)
	return nil
}

// Logout clears the persisted credential and the derived identity, then
// notifies observers.
func (s *Session) Logout() error {
	err := s.store.Clear()

	s.mu.Lock()
	s.cred = ""
	s.identity = nil
	s.mu.Unlock()

	s.notify(nil)
	return err
}

// Identity returns the current identity and whether one is present.
func (s *Session) Identity() (domain.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return domain.Identity{}, false
	}
	return *s.identity, true
}

// Credential returns the canonical "Bearer <token>" credential, or "".
func (s *Session) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cred
}

// IsAuthenticated reports whether an identity is present.
func (s *Session) IsAuthenticated() bool {
	_, ok := s.Identity()
	return ok
}

// Subscribe registers an observer for login/logout transitions.
func (s *Session) Subscribe(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

func (s *Session) notify(identity *domain.Identity) {
	s.mu.RLock()
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.RUnlock()

	for _, fn := range observers {
		fn(identity)
	}
}
