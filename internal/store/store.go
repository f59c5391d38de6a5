// Package store implements local key-value persistence, the terminal
// equivalent of browser local storage. Values are opaque bytes under string
// keys; ContactList layers the editor's JSON contact list on top.
package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// KV is a key-value store of opaque values.
type KV interface {
	// Get returns the value for key. found is false if the key is unset.
	Get(key string) (value []byte, found bool, err error)
	// Set stores value under key, replacing any existing value.
	Set(key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
	// Close releases resources held by the store.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// SQLiteFile is the database file name the sqlite backend creates in its dir.
const SQLiteFile = "contacts.db"

// ErrInvalidKey indicates a key is empty or unsafe as a path component.
var ErrInvalidKey = errors.New("store: invalid key")

// ErrUnknownBackend indicates Open was given an unsupported backend name.
var ErrUnknownBackend = errors.New("store: unknown backend")

// Open returns the named backend rooted at dir.
func Open(backend, dir string) (KV, error) {
	switch backend {
	case BackendFile:
		return NewFileStore(dir), nil
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dir, SQLiteFile))
	case BackendMemory:
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}

// validateKey rejects keys that are empty, dot-segments, flag-like, or
// contain path separators or null bytes.
func validateKey(key string) error {
	if key == "" || key == "." || key == ".." || key != filepath.Base(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if strings.HasPrefix(key, "-") || strings.ContainsAny(key, "/\\\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
