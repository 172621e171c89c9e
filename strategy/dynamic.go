package strategy

import (
	"time"

	"github.com/rayforge/raytrace"
	"github.com/rayforge/raytrace/fabric"
	"github.com/rayforge/raytrace/internal/parallel"
	"github.com/rayforge/raytrace/region"
	"github.com/rayforge/raytrace/shader"
)

// Dynamic is the DYNAMIC strategy: the coordinator maintains
// a logical tile queue in row-major order and hands tiles out on request,
// so faster workers naturally render more tiles than slower ones.
type Dynamic struct{}

// Name implements Strategy.
func (Dynamic) Name() string { return "DYNAMIC" }

// tileIterator walks the image in row-major Bw x Bh tiles, emitting the
// (-1, -1) sentinel once exhausted.
type tileIterator struct {
	width, height, bw, bh int
	x, y                  int
	done                  bool
}

func newTileIterator(width, height, bw, bh int) *tileIterator {
	return &tileIterator{width: width, height: height, bw: bw, bh: bh}
}

// next returns the next tile origin, or ok=false once the image is
// exhausted.
func (it *tileIterator) next() (x, y int, ok bool) {
	if it.done {
		return -1, -1, false
	}
	x, y = it.x, it.y

	it.x += it.bw
	if it.x >= it.width {
		it.x = 0
		it.y += it.bh
	}
	if it.y >= it.height {
		it.done = true
	}
	return x, y, true
}

// dynamicTileExtent clips a nominal Bw x Bh tile at origin (x, y) to the
// image bounds.
func dynamicTileExtent(cfg *raytrace.Config, x, y int) (w, h int) {
	w, h = cfg.DynamicBlockWidth, cfg.DynamicBlockHeight
	if x+w > cfg.Width {
		w = cfg.Width - x
	}
	if y+h > cfg.Height {
		h = cfg.Height - y
	}
	return w, h
}

// CoordinatorRun implements Strategy.
func (Dynamic) CoordinatorRun(cfg *raytrace.Config, s shader.Shader, fb *raytrace.Framebuffer, fab fabric.Fabric) (Timings, error) {
	var timings Timings
	it := newTileIterator(cfg.Width, cfg.Height, cfg.DynamicBlockWidth, cfg.DynamicBlockHeight)

	commStart := time.Now()

	sentinelsNeeded := cfg.Procs - 1
	sentinelsSent := 0

	sendNext := func(dest int) error {
		x, y, ok := it.next()
		if !ok {
			x, y = -1, -1
			sentinelsSent++
		}
		return fab.SendInts(dest, tag, []int32{int32(x), int32(y)})
	}

	// Priming: hand the first P-1 tiles (or sentinels, if there are
	// fewer tiles than workers) out before waiting on any result.
	for r := 1; r < cfg.Procs; r++ {
		if err := sendNext(r); err != nil {
			return timings, err
		}
	}

	// Steady-state and drain share one loop: every received result is
	// immediately answered with the next tile, or a sentinel once the
	// iterator is exhausted. The loop ends once every worker has
	// received exactly one sentinel.
	for sentinelsSent < sentinelsNeeded {
		payload, from, err := fab.RecvFloats(fabric.AnySource, tag)
		if err != nil {
			return timings, err
		}

		n := len(payload)
		px, py := int(payload[n-3]), int(payload[n-2])
		compTime := payload[n-1]
		timings.ComputationSeconds += float64(compTime)

		w, h := dynamicTileExtent(cfg, px, py)
		fb.CopyRowsFrom(px, py, w, h, payload, 0, cfg.DynamicBlockWidth*3)

		if err := sendNext(from); err != nil {
			return timings, err
		}
	}

	timings.CommunicationSeconds = time.Since(commStart).Seconds()
	return timings, nil
}

// WorkerRun implements Strategy.
//
// Every tile the worker receives is the same nominal Bw x Bh size (edge
// tiles just render fewer rows/columns into it), so one fixed-size
// buffer is drawn from a RegionPool and returned after every send
// instead of allocating a fresh one per request.
func (Dynamic) WorkerRun(cfg *raytrace.Config, s shader.Shader, fab fabric.Fabric) error {
	pool := parallel.NewRegionPool()

	for {
		work, _, err := fab.RecvInts(0, tag)
		if err != nil {
			return err
		}
		x, y := int(work[0]), int(work[1])
		if x == -1 && y == -1 {
			return nil
		}

		w, h := dynamicTileExtent(cfg, x, y)

		reg := pool.Get(cfg.DynamicBlockWidth, cfg.DynamicBlockHeight)
		reg.XInImage, reg.YInImage = x, y
		reg.Width, reg.Height = w, h

		start := time.Now()
		region.Render(s, cfg, reg)
		compTime := time.Since(start).Seconds()

		payload := make([]float32, len(reg.Pixels)+3)
		copy(payload, reg.Pixels)
		payload[len(payload)-3] = float32(x)
		payload[len(payload)-2] = float32(y)
		payload[len(payload)-1] = float32(compTime)

		pool.Put(reg)

		if err := fab.SendFloats(0, tag, payload); err != nil {
			return err
		}
	}
}
