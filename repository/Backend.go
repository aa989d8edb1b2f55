package repository

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Backend is the keyed blob storage every store in this package persists
// through. Implementations only move bytes; all record semantics live above.
type Backend interface {
	Load(key string) (data []byte, found bool, err error)
	Save(key string, data []byte) error
	Delete(key string) error
}

type MemoryBackend struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		blobs: make(map[string][]byte),
	}
}

func (m *MemoryBackend) Load(key string) (data []byte, found bool, err error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	blob, ok := m.blobs[key]
	if !ok {
		return
	}
	data = append([]byte(nil), blob...)
	found = true
	return
}

func (m *MemoryBackend) Save(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryBackend) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

// FileBackend keeps one JSON file per key under a directory.
type FileBackend struct {
	dir string
}

func NewFileBackend(dir string) (*FileBackend, error) {
	if dir == "" {
		return nil, errors.New("dir must be non-empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileBackend{dir: dir}, nil
}

func (f *FileBackend) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *FileBackend) Load(key string) (data []byte, found bool, err error) {
	data, err = os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			err = nil
			data = nil
		}
		return
	}
	found = true
	return
}

func (f *FileBackend) Save(key string, data []byte) error {
	return os.WriteFile(f.path(key), data, 0o644)
}

func (f *FileBackend) Delete(key string) error {
	err := os.Remove(f.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
