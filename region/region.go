// Package region implements the region renderer: the single
// piece of code that actually calls the Shader, shared verbatim by every
// partitioning strategy so that the choice of strategy can never change a
// pixel's color.
package region

import "github.com/rayforge/raytrace/shader"

// RenderRegion describes one contiguous rectangle of the image that a
// single rank is responsible for producing, along with the pixel storage
// it renders into.
type RenderRegion struct {
	// XInImage, YInImage are the region's top-left corner in the full
	// image's coordinate space.
	XInImage, YInImage int
	// XInPixels, YInPixels are the region's top-left corner within its own
	// Pixels buffer, permitting several regions to be packed into one
	// larger buffer (e.g. the cyclic strategy's per-rank band packing).
	XInPixels, YInPixels int
	// Width, Height are the region's extent in pixels.
	Width, Height int
	// PixelsWidth, PixelsHeight are the dimensions of the Pixels buffer.
	// Invariant: XInPixels+Width <= PixelsWidth, YInPixels+Height <= PixelsHeight.
	PixelsWidth, PixelsHeight int
	// Pixels holds PixelsHeight rows of PixelsWidth RGB float32 triples,
	// row-major, stride PixelsWidth*3.
	Pixels []float32
}

// NewRenderRegion allocates a RenderRegion whose Pixels buffer is sized
// exactly to width x height (XInPixels=YInPixels=0, PixelsWidth==Width,
// PixelsHeight==Height).
func NewRenderRegion(xInImage, yInImage, width, height int) *RenderRegion {
	return &RenderRegion{
		XInImage:     xInImage,
		YInImage:     yInImage,
		Width:        width,
		Height:       height,
		PixelsWidth:  width,
		PixelsHeight: height,
		Pixels:       make([]float32, width*height*3),
	}
}

// offset returns the float32 index of local coordinate (x, y)'s red
// channel within Pixels, 0 <= x < Width, 0 <= y < Height.
func (r *RenderRegion) offset(x, y int) int {
	return 3 * ((r.YInPixels+y)*r.PixelsWidth + (r.XInPixels + x))
}

// Set writes the color of the pixel at local coordinates (x, y).
func (r *RenderRegion) Set(x, y int, rr, g, b float32) {
	o := r.offset(x, y)
	r.Pixels[o] = rr
	r.Pixels[o+1] = g
	r.Pixels[o+2] = b
}

// At returns the color of the pixel at local coordinates (x, y).
func (r *RenderRegion) At(x, y int) (rr, g, b float32) {
	o := r.offset(x, y)
	return r.Pixels[o], r.Pixels[o+1], r.Pixels[o+2]
}

// Render fills every pixel of reg by calling s.Shade with that pixel's
// image-space (row, col), in row-major order. scene is passed through to
// the shader unexamined; the renderer interprets none of its fields.
func Render(s shader.Shader, scene any, reg *RenderRegion) {
	for dy := range reg.Height {
		row := reg.YInImage + dy
		for dx := range reg.Width {
			col := reg.XInImage + dx
			r, g, b := s.Shade(row, col, scene)
			reg.Set(dx, dy, r, g, b)
		}
	}
}
