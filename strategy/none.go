package strategy

import (
	"time"

	"github.com/rayforge/raytrace"
	"github.com/rayforge/raytrace/fabric"
	"github.com/rayforge/raytrace/internal/parallel"
	"github.com/rayforge/raytrace/shader"
)

// None is the trivial single-process baseline: the
// coordinator renders the entire image itself and no worker does
// anything. Used both as the reference for pixel-equivalence testing
// and as the configuration-error fallback.
type None struct{}

// Name implements Strategy.
func (None) Name() string { return "NONE" }

// CoordinatorRun implements Strategy.
func (None) CoordinatorRun(cfg *raytrace.Config, s shader.Shader, fb *raytrace.Framebuffer, _ fabric.Fabric) (Timings, error) {
	start := time.Now()

	pool := parallel.NewPool(0)
	defer pool.Close()

	grid := parallel.NewRegionGrid(0, 0, cfg.Width, cfg.Height, parallel.DefaultSubTileWidth, parallel.DefaultSubTileHeight)
	parallel.Dispatch(pool, s, cfg, grid)

	for _, reg := range grid.Regions() {
		fb.CopyRowsFrom(reg.XInImage, reg.YInImage, reg.Width, reg.Height, reg.Pixels, 0, reg.PixelsWidth*3)
	}

	return Timings{ComputationSeconds: time.Since(start).Seconds()}, nil
}

// WorkerRun implements Strategy. NONE mode has no worker-side behavior:
// a worker rank dispatched to NONE simply returns immediately.
func (None) WorkerRun(*raytrace.Config, shader.Shader, fabric.Fabric) error {
	return nil
}
