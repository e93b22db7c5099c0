package blob

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiskStoreRoundTrip(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	payload := []byte("design document v1")

	key, size, err := store.Store(bytes.NewReader(payload), "Design Doc.pdf")
	require.NoError(t, err)
	require.Equal(t, int64(len(payload)), size)
	require.True(t, strings.HasSuffix(key, ".pdf"))
	require.True(t, store.Exists(key))

	rc, err := store.Open(key)
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestDiskStoreKeysAreUnique(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	k1, _, err := store.Store(strings.NewReader("one"), "report.pdf")
	require.NoError(t, err)
	k2, _, err := store.Store(strings.NewReader("two"), "report.pdf")
	require.NoError(t, err)

	require.NotEqual(t, k1, k2)
}

func TestDiskStoreHostileFilename(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	key, _, err := store.Store(strings.NewReader("x"), "../../etc/passwd")
	require.NoError(t, err)
	require.False(t, strings.ContainsAny(key, `/\`))

	_, err = store.Open("../disk.go")
	require.ErrorIs(t, err, ErrNotFound)
	require.False(t, store.Exists("../disk.go"))
}

func TestDiskStoreOpenMissing(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Open("nope.bin")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDiskStoreRemove(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	key, _, err := store.Store(strings.NewReader("gone soon"), "tmp.txt")
	require.NoError(t, err)

	require.NoError(t, store.Remove(key))
	require.False(t, store.Exists(key))

	// removing twice is fine
	require.NoError(t, store.Remove(key))
}
