package inmem

import (
	"sync"

	"github.com/trezcool/estudos/core/user"
)

type sessionStorage struct {
	mu    sync.RWMutex
	token string
	usr   *user.User
}

var _ user.SessionStorage = (*sessionStorage)(nil)

// NewSessionStorage returns a SessionStorage that lives in memory only, optionally pre-filled with `sess`.
func NewSessionStorage(sess ...user.Session) user.SessionStorage {
	s := new(sessionStorage)
	if len(sess) > 0 {
		_ = s.Save(sess[0])
	}
	return s
}

func (s *sessionStorage) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

func (s *sessionStorage) User() (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.usr == nil {
		return nil, nil
	}
	usr := *s.usr
	return &usr, nil
}

func (s *sessionStorage) Save(sess user.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	usr := sess.User
	s.token = sess.Token
	s.usr = &usr
	return nil
}

func (s *sessionStorage) SetUser(usr user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usr = &usr
	return nil
}

func (s *sessionStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.usr = nil
	return nil
}

func (s *sessionStorage) Close() error { return nil }
