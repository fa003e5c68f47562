package system

import (
	"image"
	"sync"
)

// grayPool reuses *image.Gray scratch buffers between filter passes to keep
// GC pressure down when scanning large captures or whole directories. Pools
// are keyed by rectangle so a buffer is only ever handed back out for the
// same dimensions.
type grayPool struct {
	pools map[string]*sync.Pool
	mu    sync.RWMutex
}

var globalGrayPool = &grayPool{
	pools: make(map[string]*sync.Pool),
}

// GetGray returns an *image.Gray for rect from the pool, or a fresh one if
// none is available. The pixel contents are unspecified; callers must write
// every pixel before reading.
func GetGray(rect image.Rectangle) *image.Gray {
	return globalGrayPool.get(rect)
}

// PutGray returns a buffer to the pool for reuse. The caller must not touch
// the image afterwards.
func PutGray(img *image.Gray) {
	globalGrayPool.put(img)
}

func (p *grayPool) get(rect image.Rectangle) *image.Gray {
	key := rect.String()
	p.mu.RLock()
	pool, exists := p.pools[key]
	p.mu.RUnlock()

	if !exists {
		p.mu.Lock()
		// Double check
		pool, exists = p.pools[key]
		if !exists {
			pool = &sync.Pool{
				New: func() interface{} {
					return image.NewGray(rect)
				},
			}
			p.pools[key] = pool
		}
		p.mu.Unlock()
	}

	return pool.Get().(*image.Gray)
}

func (p *grayPool) put(img *image.Gray) {
	if img == nil {
		return
	}
	key := img.Rect.String()
	p.mu.RLock()
	pool, exists := p.pools[key]
	p.mu.RUnlock()

	if exists {
		pool.Put(img)
	}
}
