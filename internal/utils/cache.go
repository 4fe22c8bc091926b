package utils

import (
	"os"
	"sync"
	"time"
)

type fileEntry[V any] struct {
	value   V
	modTime time.Time
	size    int64
}

// FileCache memoizes values derived from files. An entry is dropped as soon
// as the file's modification time or size changes.
type FileCache[V any] struct {
	mu    sync.RWMutex
	items map[string]fileEntry[V]
}

// NewFileCache creates an empty cache
func NewFileCache[V any]() *FileCache[V] {
	return &FileCache[V]{items: make(map[string]fileEntry[V])}
}

// Load returns the cached value for path or computes it with fn. Errors
// from fn are not cached.
func (c *FileCache[V]) Load(path string, fn func(path string) (V, error)) (V, error) {
	stat, statErr := os.Stat(path)

	c.mu.RLock()
	item, ok := c.items[path]
	c.mu.RUnlock()
	if ok && statErr == nil && item.modTime.Equal(stat.ModTime()) && item.size == stat.Size() {
		return item.value, nil
	}

	value, err := fn(path)
	if err != nil {
		c.Delete(path)
		return value, err
	}
	if statErr == nil {
		c.mu.Lock()
		c.items[path] = fileEntry[V]{value: value, modTime: stat.ModTime(), size: stat.Size()}
		c.mu.Unlock()
	}
	return value, nil
}

// Delete forgets path
func (c *FileCache[V]) Delete(path string) {
	c.mu.Lock()
	delete(c.items, path)
	c.mu.Unlock()
}

// Len returns the number of cached files
func (c *FileCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
