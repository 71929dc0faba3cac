package texture

import (
	"image"
	"sync"

	"bedrock-skin-editor/internal/logging"
)

// Resolver resolves a skin name to a decoded image.
type Resolver interface {
	Resolve(name string) *image.NRGBA
}

// LoaderFunc produces the decoded image for a name.
type LoaderFunc func(name string) (*image.NRGBA, error)

// Cache is a concurrency-safe texture cache.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	load  LoaderFunc
}

type cacheEntry struct {
	img *image.NRGBA // nil when loading failed
}

// NewCache creates a cache that decodes misses with load.
func NewCache(load LoaderFunc) *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		load:  load,
	}
}

// NewIndexCache creates a cache backed by files found in idx.
func NewIndexCache(idx *Index) *Cache {
	return NewCache(func(name string) (*image.NRGBA, error) {
		path, ok := idx.ResolvePath(name)
		if !ok {
			return nil, nil
		}
		return LoadFile(path)
	})
}

// Resolve loads and caches a texture by name. Returns nil if not found.
// Callers must not modify the returned image.
func (c *Cache) Resolve(name string) *image.NRGBA {
	c.mu.RLock()
	if entry, exists := c.items[name]; exists {
		c.mu.RUnlock()
		return entry.img
	}
	c.mu.RUnlock()

	img, err := c.load(name)
	if err != nil {
		logging.Logger().Warn("texture load failed", "name", name, "err", err)
		img = nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[name]; exists {
		return entry.img
	}
	c.items[name] = &cacheEntry{img: img}
	return img
}

// Len returns the number of cached entries, including failed loads.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
