package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBackend_RoundTrip(t *testing.T) {
	be := NewMemoryBackend()

	_, found, err := be.Load("missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, be.Save("key", []byte(`{"a":1}`)))
	data, found, err := be.Load("key")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte(`{"a":1}`), data)

	require.NoError(t, be.Delete("key"))
	_, found, err = be.Load("key")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryBackend_LoadReturnsCopy(t *testing.T) {
	be := NewMemoryBackend()
	require.NoError(t, be.Save("key", []byte("abc")))

	data, _, err := be.Load("key")
	require.NoError(t, err)
	data[0] = 'x'

	fresh, _, err := be.Load("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), fresh)
}

func TestFileBackend_RoundTrip(t *testing.T) {
	be, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)

	_, found, err := be.Load("missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, be.Save("gamezoidDB", []byte(`{"games":[]}`)))
	data, found, err := be.Load("gamezoidDB")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte(`{"games":[]}`), data)

	require.NoError(t, be.Delete("gamezoidDB"))
	require.NoError(t, be.Delete("gamezoidDB"), "deleting a missing key is fine")
}

func TestFileBackend_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	be, err := NewFileBackend(dir)
	require.NoError(t, err)
	require.NoError(t, be.Save("key", []byte("x")))
}

func TestFileBackend_RequiresDir(t *testing.T) {
	_, err := NewFileBackend("")
	assert.Error(t, err)
}
