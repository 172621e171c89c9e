package parallel

import (
	"github.com/rayforge/raytrace/region"
	"github.com/rayforge/raytrace/shader"
)

// Dispatch shades every sub-region of grid in parallel using pool,
// invoking region.Render on each one independently (adapted from
// gogpu/gg's ParallelRasterizer, specialized from solid-color fill
// operations to per-pixel shader dispatch). This is how the coordinator
// shades its own rectangle (the whole image under NONE, its vertical
// strip or square block under the static strategies) across local CPUs once the
// inter-rank partitioning has already decided which rectangle is its
// responsibility.
func Dispatch(pool *Pool, s shader.Shader, scene any, grid *RegionGrid) {
	regions := grid.Regions()
	if len(regions) == 0 {
		return
	}

	work := make([]func(), len(regions))
	for i, reg := range regions {
		r := reg
		work[i] = func() {
			region.Render(s, scene, r)
		}
	}

	pool.ExecuteAll(work)
}
