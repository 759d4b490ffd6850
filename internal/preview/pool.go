package preview

import (
	"image"
	"sync"
)

// canvasPool reuses RGBA canvases of the same size across frames.
type canvasPool struct {
	pools map[image.Rectangle]*sync.Pool
	mu    sync.RWMutex
}

func newCanvasPool() *canvasPool {
	return &canvasPool{pools: make(map[image.Rectangle]*sync.Pool)}
}

// Get returns a canvas of the given bounds. Its contents are undefined.
func (p *canvasPool) Get(rect image.Rectangle) *image.RGBA {
	p.mu.RLock()
	pool, exists := p.pools[rect]
	p.mu.RUnlock()

	if !exists {
		p.mu.Lock()
		// Double check
		pool, exists = p.pools[rect]
		if !exists {
			pool = &sync.Pool{
				New: func() any {
					return image.NewRGBA(rect)
				},
			}
			p.pools[rect] = pool
		}
		p.mu.Unlock()
	}

	return pool.Get().(*image.RGBA)
}

// Put hands a canvas back. Canvases of sizes never requested are dropped.
func (p *canvasPool) Put(img *image.RGBA) {
	if img == nil {
		return
	}
	p.mu.RLock()
	pool, exists := p.pools[img.Rect]
	p.mu.RUnlock()

	if exists {
		pool.Put(img)
	}
}
