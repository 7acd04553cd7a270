// Package storage persists small string values across runs, such as the
// signed-in user's identifier and token.
package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/petpost/petpost/internal/config"
	perrors "github.com/petpost/petpost/internal/errors"
)

// Keys used by petpost
const (
	KeyUserID = "userId"
	KeyToken  = "token"
)

// Store is a string key-value store. GetItem reports ok=false for a missing key.
type Store interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// File is a Store backed by a single JSON object on disk. Every call reads
// or rewrites the whole file; the data set is a handful of keys.
type File struct {
	mu   sync.Mutex
	path string
}

// DefaultPath returns ~/.petpost/storage.json
func DefaultPath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "storage.json"), nil
}

// NewFile returns a File store at path. The file is created on first write.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the backing file path
func (f *File) Path() string {
	return f.path
}

func (f *File) readLocked() (map[string]string, error) {
	items := make(map[string]string)
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return items, nil
	}
	if err != nil {
		return nil, perrors.E(perrors.Op("storage.Read"), perrors.KindIO, f.path, err)
	}
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, perrors.E(perrors.Op("storage.Read"), perrors.KindIO, "corrupt storage file "+f.path, err)
	}
	return items, nil
}

func (f *File) writeLocked(items map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return perrors.E(perrors.Op("storage.Write"), perrors.KindIO, f.path, err)
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return perrors.E(perrors.Op("storage.Write"), perrors.KindIO, f.path, err)
	}
	// Write to a temp file and rename so a crash never leaves half a file.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return perrors.E(perrors.Op("storage.Write"), perrors.KindIO, f.path, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return perrors.E(perrors.Op("storage.Write"), perrors.KindIO, f.path, err)
	}
	return nil
}

// GetItem implements Store
func (f *File) GetItem(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.readLocked()
	if err != nil {
		return "", false, err
	}
	v, ok := items[key]
	return v, ok, nil
}

// SetItem implements Store
func (f *File) SetItem(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.readLocked()
	if err != nil {
		return err
	}
	items[key] = value
	return f.writeLocked(items)
}

// RemoveItem implements Store. Removing a missing key is not an error.
func (f *File) RemoveItem(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.readLocked()
	if err != nil {
		return err
	}
	if _, ok := items[key]; !ok {
		return nil
	}
	delete(items, key)
	return f.writeLocked(items)
}

// Memory is an in-process Store
type Memory struct {
	mu    sync.RWMutex
	items map[string]string

	// GetErr, when set, is returned by every GetItem call.
	GetErr error
}

// NewMemory returns a Memory store seeded with items
func NewMemory(items map[string]string) *Memory {
	m := &Memory{items: make(map[string]string, len(items))}
	for k, v := range items {
		m.items[k] = v
	}
	return m
}

// GetItem implements Store
func (m *Memory) GetItem(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	v, ok := m.items[key]
	return v, ok, nil
}

// SetItem implements Store
func (m *Memory) SetItem(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.items == nil {
		m.items = make(map[string]string)
	}
	m.items[key] = value
	return nil
}

// RemoveItem implements Store
func (m *Memory) RemoveItem(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}
