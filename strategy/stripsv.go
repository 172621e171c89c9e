package strategy

import (
	"time"

	"github.com/rayforge/raytrace"
	"github.com/rayforge/raytrace/fabric"
	"github.com/rayforge/raytrace/internal/parallel"
	"github.com/rayforge/raytrace/region"
	"github.com/rayforge/raytrace/shader"
)

// StripsV is the STATIC_STRIPS_V strategy: the image is cut
// into P contiguous vertical strips of width ⌊W/P⌋, with rank P-1 taking
// the remainder columns.
type StripsV struct{}

// Name implements Strategy.
func (StripsV) Name() string { return "STATIC_STRIPS_V" }

// stripBounds returns the x-origin and width of the strip owned by rank r.
func stripBounds(width, procs, r int) (x, w int) {
	base := width / procs
	x = r * base
	w = base
	if r == procs-1 {
		w = width - x
	}
	return x, w
}

// CoordinatorRun implements Strategy.
func (StripsV) CoordinatorRun(cfg *raytrace.Config, s shader.Shader, fb *raytrace.Framebuffer, fab fabric.Fabric) (Timings, error) {
	var timings Timings

	computeStart := time.Now()
	renderStrip(cfg, s, fb, 0, cfg.Procs)
	timings.ComputationSeconds += time.Since(computeStart).Seconds()

	commStart := time.Now()
	for r := 1; r < cfg.Procs; r++ {
		_, w := stripBounds(cfg.Width, cfg.Procs, r)
		payload, _, err := fab.RecvFloats(r, tag)
		if err != nil {
			return timings, err
		}

		compTime := payload[len(payload)-1]
		timings.ComputationSeconds += float64(compTime)

		x, _ := stripBounds(cfg.Width, cfg.Procs, r)
		fb.CopyRowsFrom(x, 0, w, cfg.Height, payload, 0, w*3)
	}
	timings.CommunicationSeconds = time.Since(commStart).Seconds()

	return timings, nil
}

// WorkerRun implements Strategy.
func (StripsV) WorkerRun(cfg *raytrace.Config, s shader.Shader, fab fabric.Fabric) error {
	x, w := stripBounds(cfg.Width, cfg.Procs, cfg.Rank)

	start := time.Now()
	reg := region.NewRenderRegion(x, 0, w, cfg.Height)
	region.Render(s, cfg, reg)
	compTime := time.Since(start).Seconds()

	payload := make([]float32, len(reg.Pixels)+1)
	copy(payload, reg.Pixels)
	payload[len(payload)-1] = float32(compTime)

	return fab.SendFloats(0, tag, payload)
}

// renderStrip renders the vertical strip owned by rank into fb directly.
func renderStrip(cfg *raytrace.Config, s shader.Shader, fb *raytrace.Framebuffer, rank, procs int) {
	x, w := stripBounds(cfg.Width, procs, rank)

	pool := parallel.NewPool(0)
	defer pool.Close()

	grid := parallel.NewRegionGrid(x, 0, w, cfg.Height, parallel.DefaultSubTileWidth, parallel.DefaultSubTileHeight)
	parallel.Dispatch(pool, s, cfg, grid)

	for _, reg := range grid.Regions() {
		fb.CopyRowsFrom(reg.XInImage, reg.YInImage, reg.Width, reg.Height, reg.Pixels, 0, reg.PixelsWidth*3)
	}
}
