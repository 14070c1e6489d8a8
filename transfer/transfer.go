// Package transfer implements paint.ImageTransferCache, letting images
// cross a serialized stream as small ids instead of their bytes.
//
// The writing side assigns an id the first time an image is Put and reuses
// it afterwards; the reading side resolves the id with Get. Both sides must
// see the same Cache, typically one shared by a producer and a consumer in
// the same process.
package transfer

import (
	"sync"

	"github.com/gogpu/paint"
	"github.com/gogpu/paint/internal/cache"
)

// DefaultCapacity is the number of images kept when New is given 0.
const DefaultCapacity = 1024

// Cache maps images to transfer ids. Entries are evicted least recently
// used first; an evicted id is never reused.
//
// Cache is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	next    uint32
	byImage map[uint64]uint32
	images  *cache.Cache[uint32, paint.Image]
}

var _ paint.ImageTransferCache = (*Cache)(nil)

// New returns a cache holding up to capacity images.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Cache{
		byImage: make(map[uint64]uint32),
		images:  cache.New[uint32, paint.Image](capacity),
	}
	// Evictions only happen inside Put, which holds c.mu.
	c.images.OnEvict(func(_ uint32, img paint.Image) {
		delete(c.byImage, img.ID())
	})
	return c
}

// Put returns the id for img, assigning a new one on first use. It fails
// for the zero Image and once the id space is exhausted.
func (c *Cache) Put(img paint.Image) (uint32, bool) {
	if img.IsZero() {
		return 0, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if id, ok := c.byImage[img.ID()]; ok {
		if _, live := c.images.Get(id); live {
			return id, true
		}
	}
	if c.next == ^uint32(0) {
		return 0, false
	}
	id := c.next
	c.next++
	c.byImage[img.ID()] = id
	c.images.Set(id, img)
	return id, true
}

// Get resolves an id returned by Put.
func (c *Cache) Get(id uint32) (paint.Image, bool) {
	return c.images.Get(id)
}

// Len returns the number of images held.
func (c *Cache) Len() int { return c.images.Len() }

// Stats returns lookup counters of the underlying cache.
func (c *Cache) Stats() cache.Stats { return c.images.Stats() }
