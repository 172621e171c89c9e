package imagewriter

import (
	"fmt"

	"github.com/rayforge/raytrace"
)

// GenerateName derives an output file name from the render configuration,
// so a batch of runs across modes and process counts doesn't overwrite a
// single shared file.
func GenerateName(cfg *raytrace.Config) string {
	return fmt.Sprintf("raytrace_%s_%dx%d_p%d.png", cfg.Mode, cfg.Width, cfg.Height, cfg.Procs)
}
