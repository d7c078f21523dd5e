// Package auth gates entry into the interactive user table with a
// connection-time credential check, hashed with bcrypt rather than stored
// or compared as plaintext.
package auth

import (
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// ErrUnknownUser is returned by Authenticate for a name with no registered
// credential.
var ErrUnknownUser = errors.New("auth: unknown user")

// ErrWrongPassword is returned by Authenticate when the password does not
// match the stored hash.
var ErrWrongPassword = errors.New("auth: wrong password")

// Store is an in-memory credential table keyed by username. A real
// deployment would back this with a persistent player database; this
// module only specifies the connection-time gate, not object persistence.
type Store struct {
	mu    sync.RWMutex
	hashed map[string][]byte
}

// NewStore builds an empty credential store.
func NewStore() *Store {
	return &Store{hashed: make(map[string][]byte)}
}

// SetPassword hashes password with bcrypt and stores it under name,
// overwriting any previous credential.
func (s *Store) SetPassword(name, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "auth: hash password")
	}
	s.mu.Lock()
	s.hashed[name] = hash
	s.mu.Unlock()
	return nil
}

// Authenticate checks password against the stored hash for name. A
// mismatch and an unknown user are distinguished only for logging; callers
// gating a login prompt should treat both as "access denied" to avoid
// leaking which usernames exist.
func (s *Store) Authenticate(name, password string) error {
	s.mu.RLock()
	hash, ok := s.hashed[name]
	s.mu.RUnlock()

	if !ok {
		return ErrUnknownUser
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// Remove deletes a user's stored credential, if any.
func (s *Store) Remove(name string) {
	s.mu.Lock()
	delete(s.hashed, name)
	s.mu.Unlock()
}
