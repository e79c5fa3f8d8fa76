package bolt

import (
	"encoding/json"

	"github.com/circadianhq/circadian/internal/logger"
	"github.com/circadianhq/circadian/internal/storage"
	"github.com/circadianhq/circadian/pkg/circadian"
	"go.etcd.io/bbolt"
)

const (
	usersBucket   = "users"
	apiKeysBucket = "api_keys"

	stateKey = "state"
)

type Store struct {
	db *bbolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}

	if err := db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(usersBucket)); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists([]byte(apiKeysBucket))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func userBucket(tx *bbolt.Tx, userID string) (*bbolt.Bucket, error) {
	return tx.Bucket([]byte(usersBucket)).CreateBucketIfNotExists([]byte(userID))
}

func (s *Store) LoadState(userID string) (*circadian.UserState, bool, error) {
	var st *circadian.UserState
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(usersBucket)).Bucket([]byte(userID))
		if b == nil {
			return nil
		}
		raw := b.Get([]byte(stateKey))
		if raw == nil {
			return nil
		}
		var decoded circadian.UserState
		if err := json.Unmarshal(raw, &decoded); err != nil {
			// A corrupt record is dropped so the caller starts fresh.
			logger.Warn("Discarding malformed user state", "user_id", userID, "error", err)
			return nil
		}
		st = &decoded
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return st, st != nil, nil
}

func (s *Store) SaveState(userID string, st *circadian.UserState) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := userBucket(tx, userID)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(st)
		if err != nil {
			return err
		}
		return b.Put([]byte(stateKey), raw)
	})
}

func (s *Store) PutAPIKey(keyHash, userID string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(apiKeysBucket)).Put([]byte(keyHash), []byte(userID))
	})
}

func (s *Store) GetAPIKey(keyHash string) (string, bool, error) {
	var userID string
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(apiKeysBucket)).Get([]byte(keyHash))
		if v != nil {
			userID = string(v)
			found = true
		}
		return nil
	})
	return userID, found, err
}

var _ storage.Store = (*Store)(nil)
