// Package flash stores one-shot success and error messages in the
// session so they survive a redirect.
package flash

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	keySuccess = "flash_success"
	keyError   = "flash_error"
)

// Messages is what the next rendered view shows
type Messages struct {
	Success string `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Empty reports whether there is nothing to show
func (m Messages) Empty() bool {
	return m.Success == "" && m.Error == ""
}

// Store reads and writes flash messages
type Store struct {
	sessions *session.Store
}

// NewStore wraps a Fiber session store
func NewStore(sessions *session.Store) *Store {
	return &Store{sessions: sessions}
}

// Success queues a success message
func (s *Store) Success(c *fiber.Ctx, msg string) error {
	return s.set(c, keySuccess, msg)
}

// Error queues an error message
func (s *Store) Error(c *fiber.Ctx, msg string) error {
	return s.set(c, keyError, msg)
}

func (s *Store) set(c *fiber.Ctx, key, msg string) error {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return err
	}
	sess.Set(key, msg)
	return sess.Save()
}

// Pop returns the queued messages and clears them
func (s *Store) Pop(c *fiber.Ctx) (Messages, error) {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return Messages{}, err
	}

	var m Messages
	if v, ok := sess.Get(keySuccess).(string); ok {
		m.Success = v
	}
	if v, ok := sess.Get(keyError).(string); ok {
		m.Error = v
	}
	if m.Empty() {
		return m, nil
	}

	sess.Delete(keySuccess)
	sess.Delete(keyError)
	return m, sess.Save()
}
