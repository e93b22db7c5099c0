package blob

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskStore keeps blobs as flat files under a single directory. Keys are
// random UUIDs with the original extension appended, so two uploads of
// "report.pdf" never collide and a hostile filename never escapes the
// directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the directory if needed and returns a store over it.
func NewDiskStore(dir string) (*DiskStore, error) {
	if dir == "" {
		return nil, errors.New("blob: empty directory")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("blob: create directory: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

func (d *DiskStore) Store(content io.Reader, suggestedName string) (string, int64, error) {
	key := uuid.NewString() + sanitizeExt(suggestedName)

	f, err := os.OpenFile(filepath.Join(d.dir, key), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return "", 0, fmt.Errorf("blob: create: %w", err)
	}

	size, err := io.Copy(f, content)
	if err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", 0, fmt.Errorf("blob: write: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", 0, fmt.Errorf("blob: close: %w", err)
	}
	return key, size, nil
}

func (d *DiskStore) Exists(key string) bool {
	if !validKey(key) {
		return false
	}
	info, err := os.Stat(filepath.Join(d.dir, key))
	return err == nil && info.Mode().IsRegular()
}

func (d *DiskStore) Open(key string) (io.ReadCloser, error) {
	if !validKey(key) {
		return nil, ErrNotFound
	}
	f, err := os.Open(filepath.Join(d.dir, key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("blob: open: %w", err)
	}
	return f, nil
}

func (d *DiskStore) Remove(key string) error {
	if !validKey(key) {
		return nil
	}
	err := os.Remove(filepath.Join(d.dir, key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("blob: remove: %w", err)
	}
	return nil
}

// validKey rejects anything that could resolve outside the store directory.
// Generated keys are a UUID plus an optional extension, so a single flat
// path element is all that is ever legitimate.
func validKey(key string) bool {
	if key == "" || key != filepath.Base(key) {
		return false
	}
	return !strings.ContainsAny(key, `/\`)
}

// sanitizeExt extracts a safe extension from a user-supplied filename.
func sanitizeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if ext == "." || len(ext) > 16 {
		return ""
	}
	for _, r := range ext {
		switch {
		case r == '.':
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		default:
			return ""
		}
	}
	return ext
}
