// Package assets layers resource packs and wires up the texture cache,
// model compiler and item library the tools share.
package assets

import (
	"io"
	"io/fs"
	"slices"
	"sync"

	"github.com/Faultbox/cubeforge/internal/texture"
)

type layer struct {
	name   string
	fsys   fs.FS
	closer io.Closer
}

// Manager is a read-only file system over stacked resource packs.
type Manager struct {
	layers []layer
	cache  *Cache
	mu     sync.RWMutex
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// AddPack adds a resource pack directory or zip.
// Packs are searched in reverse order (last added = highest priority).
func (m *Manager) AddPack(path string) error {
	p, err := texture.OpenPack(path)
	if err != nil {
		return err
	}
	m.add(layer{name: path, fsys: p.FS(), closer: p})
	return nil
}

// AddFS adds an in-process file system as the highest priority layer.
func (m *Manager) AddFS(name string, fsys fs.FS) {
	m.add(layer{name: name, fsys: fsys})
}

func (m *Manager) add(l layer) {
	m.mu.Lock()
	m.layers = append(m.layers, l)
	m.mu.Unlock()
	m.cache.Clear()
}

// Len returns the number of layers.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.layers)
}

// Open implements fs.FS.
func (m *Manager) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.layers) - 1; i >= 0; i-- {
		f, err := m.layers[i].fsys.Open(name)
		if err == nil {
			return f, nil
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// ReadFile implements fs.ReadFileFS. File contents are cached.
func (m *Manager) ReadFile(name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	if data, ok := m.cache.Get(name); ok {
		return slices.Clone(data), nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.layers) - 1; i >= 0; i-- {
		data, err := fs.ReadFile(m.layers[i].fsys, name)
		if err == nil {
			m.cache.Set(name, data)
			return slices.Clone(data), nil
		}
	}
	return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrNotExist}
}

// CacheStats returns file cache hits and misses.
func (m *Manager) CacheStats() (hits, misses int) {
	return m.cache.Stats()
}

// Close closes all packs.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var first error
	for _, l := range m.layers {
		if l.closer == nil {
			continue
		}
		if err := l.closer.Close(); err != nil && first == nil {
			first = err
		}
	}
	m.layers = nil
	m.cache.Clear()
	return first
}

// Cache is a simple in-memory cache for pack files.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear drops all entries and resets the stats.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
