package assets

import (
	"image"
	"sync"

	"logo-asset-kit/internal/resize"
)

// canvasCache holds the master contained on a transparent canvas, one entry
// per output size. Variants with a background flatten a cached canvas
// instead of rescaling the master. Safe for concurrent use; cached images
// must not be mutated.
type canvasCache struct {
	mu     sync.RWMutex
	items  map[[2]int]*image.NRGBA
	master *image.NRGBA
}

func newCanvasCache(master *image.NRGBA) *canvasCache {
	return &canvasCache{
		items:  make(map[[2]int]*image.NRGBA),
		master: master,
	}
}

func (c *canvasCache) Contained(w, h int) *image.NRGBA {
	key := [2]int{w, h}

	c.mu.RLock()
	if img, ok := c.items[key]; ok {
		c.mu.RUnlock()
		return img
	}
	c.mu.RUnlock()

	img := resize.Contain(c.master, w, h, resize.Transparent)

	// Double-check: another worker may have filled it meanwhile.
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.items[key]; ok {
		return existing
	}
	c.items[key] = img
	return img
}

func (c *canvasCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
