package parallel

import "github.com/rayforge/raytrace/region"

// DefaultSubTileWidth and DefaultSubTileHeight are the sub-tile
// dimensions RegionGrid uses when a caller doesn't need a specific size;
// chosen for the same cache-locality reasons as gogpu/gg's 64x64 tiles.
const (
	DefaultSubTileWidth  = 64
	DefaultSubTileHeight = 64
)

// RegionGrid subdivides a rank's assigned rectangle (rooted at originX,
// originY in image space, originW x originH in extent) into a grid of
// fixed-size sub-regions, so a strategy can dispatch their shading across
// a Pool instead of shading the whole rectangle as a single work item
// (adapted from gogpu/gg's TileGrid).
type RegionGrid struct {
	regions []*region.RenderRegion
	tilesX  int
	tilesY  int
}

// NewRegionGrid builds a RegionGrid covering [originX, originX+width) x
// [originY, originY+height) using sub-tiles of tileW x tileH, clipped at
// the right and bottom edges.
func NewRegionGrid(originX, originY, width, height, tileW, tileH int) *RegionGrid {
	if width <= 0 || height <= 0 {
		return &RegionGrid{}
	}
	if tileW <= 0 {
		tileW = DefaultSubTileWidth
	}
	if tileH <= 0 {
		tileH = DefaultSubTileHeight
	}

	tilesX := (width + tileW - 1) / tileW
	tilesY := (height + tileH - 1) / tileH

	g := &RegionGrid{
		regions: make([]*region.RenderRegion, 0, tilesX*tilesY),
		tilesX:  tilesX,
		tilesY:  tilesY,
	}

	for ty := range tilesY {
		for tx := range tilesX {
			w := tileW
			if (tx+1)*tileW > width {
				w = width - tx*tileW
			}
			h := tileH
			if (ty+1)*tileH > height {
				h = height - ty*tileH
			}

			r := region.NewRenderRegion(originX+tx*tileW, originY+ty*tileH, w, h)
			g.regions = append(g.regions, r)
		}
	}

	return g
}

// Regions returns every sub-region in row-major order. The returned
// slice should not be modified.
func (g *RegionGrid) Regions() []*region.RenderRegion {
	return g.regions
}

// TilesX returns the number of sub-regions horizontally.
func (g *RegionGrid) TilesX() int { return g.tilesX }

// TilesY returns the number of sub-regions vertically.
func (g *RegionGrid) TilesY() int { return g.tilesY }
