package parallel

import (
	"testing"

	"github.com/rayforge/raytrace/shader"
)

func TestDispatch_ShadesEverySubRegion(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	grid := NewRegionGrid(0, 0, 16, 16, 4, 4)

	Dispatch(pool, shader.Gradient{Width: 16, Height: 16}, nil, grid)

	for _, reg := range grid.Regions() {
		for dy := range reg.Height {
			for dx := range reg.Width {
				r, g, _ := reg.At(dx, dy)
				wantR := float32(reg.XInImage+dx) / 16
				wantG := float32(reg.YInImage+dy) / 16
				if r != wantR || g != wantG {
					t.Fatalf("pixel (%d,%d) = (%v,%v), want (%v,%v)", dx, dy, r, g, wantR, wantG)
				}
			}
		}
	}
}

func TestDispatch_EmptyGridNoop(t *testing.T) {
	pool := NewPool(2)
	defer pool.Close()

	grid := NewRegionGrid(0, 0, 0, 0, 4, 4)
	Dispatch(pool, shader.Gradient{Width: 1, Height: 1}, nil, grid) // must not panic
}
