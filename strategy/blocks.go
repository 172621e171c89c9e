package strategy

import (
	"time"

	"github.com/rayforge/raytrace"
	"github.com/rayforge/raytrace/fabric"
	"github.com/rayforge/raytrace/internal/parallel"
	"github.com/rayforge/raytrace/region"
	"github.com/rayforge/raytrace/shader"
)

// Blocks is the STATIC_BLOCKS strategy: the image is cut
// into an S x S grid of square blocks, S = ⌊√P⌋. Rank r owns the block at
// grid position (r mod S, r div S); ranks in the last grid column
// additionally own the right remainder columns and ranks in the last grid
// row the bottom remainder rows. Config.Validate rejects non-square P, so
// the last rank is always the bottom-right block.
type Blocks struct{}

// Name implements Strategy.
func (Blocks) Name() string { return "STATIC_BLOCKS" }

// blockBounds returns the origin and extent of the block owned by rank r.
func blockBounds(width, height, side, procs, r int) (x, y, w, h int) {
	bw, bh := width/side, height/side
	gx, gy := r%side, r/side
	x, y = bw*gx, bh*gy
	w, h = bw, bh
	if gx == side-1 {
		w = width - x
	}
	if gy == side-1 {
		h = height - y
	}
	return x, y, w, h
}

// CoordinatorRun implements Strategy.
func (Blocks) CoordinatorRun(cfg *raytrace.Config, s shader.Shader, fb *raytrace.Framebuffer, fab fabric.Fabric) (Timings, error) {
	var timings Timings
	side := cfg.BlockGridSide()

	computeStart := time.Now()
	renderBlock(cfg, s, fb, 0, side)
	timings.ComputationSeconds += time.Since(computeStart).Seconds()

	commStart := time.Now()
	for r := 1; r < cfg.Procs; r++ {
		x, y, w, h := blockBounds(cfg.Width, cfg.Height, side, cfg.Procs, r)

		payload, _, err := fab.RecvFloats(r, tag)
		if err != nil {
			return timings, err
		}

		compTime := payload[len(payload)-1]
		timings.ComputationSeconds += float64(compTime)

		fb.CopyRowsFrom(x, y, w, h, payload, 0, w*3)
	}
	timings.CommunicationSeconds = time.Since(commStart).Seconds()

	return timings, nil
}

// WorkerRun implements Strategy.
func (Blocks) WorkerRun(cfg *raytrace.Config, s shader.Shader, fab fabric.Fabric) error {
	side := cfg.BlockGridSide()
	x, y, w, h := blockBounds(cfg.Width, cfg.Height, side, cfg.Procs, cfg.Rank)

	start := time.Now()
	reg := region.NewRenderRegion(x, y, w, h)
	region.Render(s, cfg, reg)
	compTime := time.Since(start).Seconds()

	payload := make([]float32, len(reg.Pixels)+1)
	copy(payload, reg.Pixels)
	payload[len(payload)-1] = float32(compTime)

	return fab.SendFloats(0, tag, payload)
}

// renderBlock renders the block owned by rank into fb directly.
func renderBlock(cfg *raytrace.Config, s shader.Shader, fb *raytrace.Framebuffer, rank, side int) {
	x, y, w, h := blockBounds(cfg.Width, cfg.Height, side, cfg.Procs, rank)

	pool := parallel.NewPool(0)
	defer pool.Close()

	grid := parallel.NewRegionGrid(x, y, w, h, parallel.DefaultSubTileWidth, parallel.DefaultSubTileHeight)
	parallel.Dispatch(pool, s, cfg, grid)

	for _, reg := range grid.Regions() {
		fb.CopyRowsFrom(reg.XInImage, reg.YInImage, reg.Width, reg.Height, reg.Pixels, 0, reg.PixelsWidth*3)
	}
}
