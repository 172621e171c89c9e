package imagewriter

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/rayforge/raytrace"
)

// PNGWriter persists a Framebuffer as an 8-bit PNG, converting each
// float32 RGB triple to image.RGBA via clamp-to-[0,1]-then-scale
// (adapted from gogpu/gg's Pixmap.SavePNG/ToImage pipeline).
type PNGWriter struct{}

// Write implements Writer.
func (PNGWriter) Write(path string, fb *raytrace.Framebuffer) error {
	f, err := os.Create(path) //nolint:gosec // path is caller-provided intentionally
	if err != nil {
		return fmt.Errorf("imagewriter: create %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	img := toImage(fb)
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("imagewriter: encode %s: %w", path, err)
	}
	return nil
}

func toImage(fb *raytrace.Framebuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width(), fb.Height()))
	for y := range fb.Height() {
		for x := range fb.Width() {
			r, g, b := fb.At(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: clamp255(r),
				G: clamp255(g),
				B: clamp255(b),
				A: 255,
			})
		}
	}
	return img
}

func clamp255(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}
