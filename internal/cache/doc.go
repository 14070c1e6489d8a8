// Package cache provides a generic LRU cache with an eviction hook.
//
//	c := cache.New[uint32, paint.Image](256)
//	c.OnEvict(func(id uint32, img paint.Image) { ... })
//	c.Set(7, img)
//	img, ok := c.Get(7)
//
// Cache is safe for concurrent use. The eviction hook runs with the cache
// lock held and must not call back into the cache.
package cache
