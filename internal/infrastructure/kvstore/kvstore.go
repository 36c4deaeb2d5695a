package kvstore

import "errors"

// Store is the durable key-value collaborator the identity subsystem writes
// through. Repositories depend on this interface so tests can substitute the
// in-memory implementation.
type Store interface {
	// Get returns the value under key, or nil when the key is absent.
	Get(key string) ([]byte, error)
	// Put overwrites any previous value under key.
	Put(key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}

// ErrClosed is returned once the backing store has been closed.
var ErrClosed = errors.New("kvstore: store is closed")
