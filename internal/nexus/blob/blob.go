// Package blob is the opaque store for uploaded file bytes. Blobs are
// addressed by a server-generated key that is never derived from the
// user-supplied filename.
package blob

import (
	"errors"
	"io"
)

// ErrNotFound is returned when no blob exists under the given key.
var ErrNotFound = errors.New("blob: not found")

// Store writes and reads opaque blobs.
type Store interface {
	// Store persists content and returns the generated storage key. The
	// suggested name only contributes its extension to the key.
	Store(content io.Reader, suggestedName string) (key string, size int64, err error)

	// Exists reports whether a blob is present under key.
	Exists(key string) bool

	// Open returns a reader over the blob, or ErrNotFound.
	Open(key string) (io.ReadCloser, error)

	// Remove deletes the blob under key. Removing a missing blob is not an
	// error; Remove exists so a failed upload can take its bytes with it.
	Remove(key string) error
}
