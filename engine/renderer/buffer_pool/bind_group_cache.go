package buffer_pool

import (
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// BindGroupCache keeps one bind group per key for the lifetime of a pass.
// Passes key it by chunk index, or by chunk index and texture for sprites, so that chunks created by
// rollover get their bind group on first use and later frames reuse it.
type BindGroupCache[K comparable] struct {
	mu     sync.Mutex
	groups map[K]*wgpu.BindGroup
}

// NewBindGroupCache creates an empty cache.
func NewBindGroupCache[K comparable]() *BindGroupCache[K] {
	return &BindGroupCache[K]{groups: make(map[K]*wgpu.BindGroup)}
}

// GetOrCreate returns the bind group for key, calling create the first time key is seen.
//
// Parameters:
//   - key: the cache key
//   - create: builds the bind group on a miss
//
// Returns:
//   - *wgpu.BindGroup: the cached or newly created bind group
//   - error: the error returned by create, if any
func (c *BindGroupCache[K]) GetOrCreate(key K, create func() (*wgpu.BindGroup, error)) (*wgpu.BindGroup, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if bg, ok := c.groups[key]; ok {
		return bg, nil
	}
	bg, err := create()
	if err != nil {
		return nil, err
	}
	c.groups[key] = bg
	return bg, nil
}

// Len returns the number of cached bind groups.
func (c *BindGroupCache[K]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.groups)
}

// Release frees every cached bind group and empties the cache.
func (c *BindGroupCache[K]) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, bg := range c.groups {
		if bg != nil {
			bg.Release()
		}
		delete(c.groups, k)
	}
}
