package boltdb

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"

	"github.com/trezcool/estudos/core/user"
)

var (
	sessionBucket = []byte("Session")

	tokenKey = []byte("token")
	userKey  = []byte("user")
)

type sessionStorage struct {
	db *bbolt.DB
}

var _ user.SessionStorage = (*sessionStorage)(nil)

// Open opens (or creates) the session database at `path`.
func Open(path string) (user.SessionStorage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "creating data dir")
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "creating session bucket")
	}
	return &sessionStorage{db: db}, nil
}

func (s *sessionStorage) get(key []byte) ([]byte, error) {
	var val []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(sessionBucket).Get(key); v != nil {
			val = append([]byte(nil), v...) // only valid during the tx
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", key)
	}
	return val, nil
}

func (s *sessionStorage) Token() (string, error) {
	val, err := s.get(tokenKey)
	return string(val), err
}

func (s *sessionStorage) User() (*user.User, error) {
	data, err := s.get(userKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	usr := new(user.User)
	if err := json.Unmarshal(data, usr); err != nil {
		return nil, errors.Wrap(err, "decoding stored user")
	}
	return usr, nil
}

func (s *sessionStorage) Save(sess user.Session) error {
	data, err := json.Marshal(sess.User)
	if err != nil {
		return errors.Wrap(err, "encoding user")
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(sessionBucket)
		if err := b.Put(tokenKey, []byte(sess.Token)); err != nil {
			return err
		}
		return b.Put(userKey, data)
	})
}

func (s *sessionStorage) SetUser(usr user.User) error {
	data, err := json.Marshal(usr)
	if err != nil {
		return errors.Wrap(err, "encoding user")
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(sessionBucket).Put(userKey, data)
	})
}

func (s *sessionStorage) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(sessionBucket)
		if err := b.Delete(tokenKey); err != nil {
			return err
		}
		return b.Delete(userKey)
	})
}

func (s *sessionStorage) Close() error {
	return s.db.Close()
}
