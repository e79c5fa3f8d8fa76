package storage

import "github.com/circadianhq/circadian/pkg/circadian"

// Store persists per-user tracker state plus auth material.
type Store interface {
	// LoadState returns the saved state for a user, with found=false when
	// no usable record exists. A corrupt record is discarded, not an error.
	LoadState(userID string) (st *circadian.UserState, found bool, err error)
	SaveState(userID string, st *circadian.UserState) error

	PutAPIKey(keyHash, userID string) error
	GetAPIKey(keyHash string) (userID string, found bool, err error)

	Close() error
}
