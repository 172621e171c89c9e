package raytrace

import "fmt"

// Framebuffer is the coordinator-owned output image: a contiguous array of
// 3*W*H floats in row-major order. The triple for pixel (x, y) starts at
// offset 3*(y*W+x).
type Framebuffer struct {
	width, height int
	pixels        []float32
}

// NewFramebuffer allocates a zeroed framebuffer for the given dimensions.
// Panics if width or height is <= 0.
func NewFramebuffer(width, height int) *Framebuffer {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("raytrace: invalid framebuffer dimensions %dx%d", width, height))
	}
	return &Framebuffer{
		width:  width,
		height: height,
		pixels: make([]float32, 3*width*height),
	}
}

// Width returns the image width in pixels.
func (f *Framebuffer) Width() int { return f.width }

// Height returns the image height in pixels.
func (f *Framebuffer) Height() int { return f.height }

// Pixels returns the raw row-major RGB buffer for bulk operations (the
// strategies' tile-copy paths). Callers must respect the row-major,
// 3-floats-per-pixel layout.
func (f *Framebuffer) Pixels() []float32 { return f.pixels }

// At returns the RGB triple at pixel (x, y).
func (f *Framebuffer) At(x, y int) (r, g, b float32) {
	f.checkBounds(x, y)
	i := 3 * (y*f.width + x)
	return f.pixels[i], f.pixels[i+1], f.pixels[i+2]
}

// Set writes the RGB triple at pixel (x, y).
func (f *Framebuffer) Set(x, y int, r, g, b float32) {
	f.checkBounds(x, y)
	i := 3 * (y*f.width + x)
	f.pixels[i], f.pixels[i+1], f.pixels[i+2] = r, g, b
}

func (f *Framebuffer) checkBounds(x, y int) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		panic(fmt.Sprintf("raytrace: pixel (%d,%d) out of bounds for %dx%d framebuffer", x, y, f.width, f.height))
	}
}

// CopyRowsFrom copies height rows of width*3 floats from src (starting at
// srcOffset floats in) into the framebuffer, placing the first row's first
// pixel at image coordinate (dstX, dstY). Used by the static strategies'
// row-by-row assembly.
func (f *Framebuffer) CopyRowsFrom(dstX, dstY, width, height int, src []float32, srcOffset, srcStride int) {
	for row := 0; row < height; row++ {
		dstRow := dstY + row
		if dstRow < 0 || dstRow >= f.height {
			continue
		}
		dstOff := 3 * (dstRow*f.width + dstX)
		srcOff := srcOffset + row*srcStride
		copy(f.pixels[dstOff:dstOff+3*width], src[srcOff:srcOff+3*width])
	}
}
