package parallel

import (
	"sync"

	"github.com/rayforge/raytrace/region"
)

// RegionPool provides efficient reuse of region.RenderRegion pixel buffers
// via sync.Pool, keyed by (width, height) (adapted from gogpu/gg's
// TilePool; RGBA byte tiles become RGB float32 regions here). The
// DYNAMIC strategy's worker loop uses one to avoid reallocating its
// fixed-size tile buffer on every request/response round trip.
//
// Thread safety: RegionPool is safe for concurrent use.
type RegionPool struct {
	pools sync.Map // uint32 size key -> *sync.Pool
}

// NewRegionPool creates a new, empty region pool.
func NewRegionPool() *RegionPool {
	return &RegionPool{}
}

// Get retrieves a RenderRegion sized exactly width x height from the pool,
// or allocates one if none is available. Its pixel buffer is zeroed, its
// XInImage/YInImage are reset to 0 and its Width/Height to width x height;
// the caller repositions it.
func (p *RegionPool) Get(width, height int) *region.RenderRegion {
	if width <= 0 || height <= 0 {
		return nil
	}

	key := poolKey(width, height)
	pool := p.getOrCreatePool(key, width, height)

	r := pool.Get().(*region.RenderRegion)
	clear(r.Pixels)
	r.XInImage, r.YInImage = 0, 0
	r.Width, r.Height = width, height
	return r
}

// Put returns a region to the pool for reuse. If r is nil, this is a no-op.
func (p *RegionPool) Put(r *region.RenderRegion) {
	if r == nil {
		return
	}

	key := poolKey(r.PixelsWidth, r.PixelsHeight)
	if pool, ok := p.pools.Load(key); ok {
		pool.(*sync.Pool).Put(r)
	}
	// If no pool was ever created for this size, let GC reclaim it.
}

// poolKey creates a unique key for a region size. Width and height are
// clamped to uint16 range to prevent overflow.
func poolKey(width, height int) uint32 {
	w, h := width, height
	if w > 0xFFFF {
		w = 0xFFFF
	}
	if h > 0xFFFF {
		h = 0xFFFF
	}
	return uint32(w)<<16 | uint32(h) //nolint:gosec // values are clamped above
}

func (p *RegionPool) getOrCreatePool(key uint32, width, height int) *sync.Pool {
	if pool, ok := p.pools.Load(key); ok {
		return pool.(*sync.Pool)
	}

	newPool := &sync.Pool{
		New: func() any {
			return region.NewRenderRegion(0, 0, width, height)
		},
	}

	actual, _ := p.pools.LoadOrStore(key, newPool)
	return actual.(*sync.Pool)
}
