package cache

import (
	"errors"
	"sync/atomic"
	"time"
)

// LayeredCache reads memory first, then disk, copying disk hits into memory
type LayeredCache struct {
	memory *MemoryCache
	disk   *DiskCache

	diskHits atomic.Int64
}

// NewLayeredCache creates a layered cache. Without diskDir it only keeps
// entries for the current run.
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	c := &LayeredCache{memory: NewMemoryCache(memoryTTL, 10*time.Minute)}
	if diskDir != "" {
		c.disk = NewDiskCache(diskDir, diskTTL)
	}
	return c
}

func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if v, ok := c.memory.Get(key); ok {
		return v, true
	}
	if c.disk == nil {
		return nil, false
	}
	v, ok := c.disk.Get(key)
	if !ok {
		return nil, false
	}
	c.diskHits.Add(1)
	_ = c.memory.Set(key, v, 0)
	return v, true
}

func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	_ = c.memory.Set(key, value, ttl)
	if c.disk == nil {
		return nil
	}
	return c.disk.Set(key, value, ttl)
}

func (c *LayeredCache) Delete(key string) error {
	err := c.memory.Delete(key)
	if c.disk != nil {
		err = errors.Join(err, c.disk.Delete(key))
	}
	return err
}

func (c *LayeredCache) Clear() error {
	err := c.memory.Clear()
	if c.disk != nil {
		err = errors.Join(err, c.disk.Clear())
	}
	return err
}

// Prune drops expired entries from the disk layer
func (c *LayeredCache) Prune() (int, error) {
	if c.disk == nil {
		return 0, nil
	}
	return c.disk.Prune()
}

// Stats reports lookups across both layers. A disk hit first counts as a
// memory miss, so Misses only counts lookups neither layer could serve.
func (c *LayeredCache) Stats() Stats {
	s := c.memory.Stats()
	disk := c.diskHits.Load()
	s.DiskHits = disk
	s.Hits += disk
	s.Misses -= disk
	return s
}
