package server

import (
	"encoding/json"
	"sync"

	"github.com/circadianhq/circadian/internal/storage"
	"github.com/circadianhq/circadian/pkg/circadian"
)

type memStore struct {
	mu      sync.RWMutex
	states  map[string][]byte
	apiKeys map[string]string
}

func newMemStore() *memStore {
	return &memStore{
		states:  map[string][]byte{},
		apiKeys: map[string]string{},
	}
}

func (m *memStore) LoadState(userID string) (*circadian.UserState, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	raw, ok := m.states[userID]
	if !ok {
		return nil, false, nil
	}
	var st circadian.UserState
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, false, nil
	}
	return &st, true, nil
}

func (m *memStore) SaveState(userID string, st *circadian.UserState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	m.states[userID] = raw
	return nil
}

func (m *memStore) PutAPIKey(keyHash, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.apiKeys[keyHash] = userID
	return nil
}

func (m *memStore) GetAPIKey(keyHash string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	userID, ok := m.apiKeys[keyHash]
	return userID, ok, nil
}

func (m *memStore) Close() error {
	return nil
}

var _ storage.Store = (*memStore)(nil)
