// Package driver implements the coordinator and worker entry points:
// selecting the active strategy from configuration,
// allocating the framebuffer, running the chosen side of the protocol,
// measuring total render time, and handing off to the image writer. It
// is kept out of the root raytrace package because it depends on
// strategy, fabric, shader and imagewriter, all of which in turn depend
// on raytrace — this is the package that closes that fan-in without
// creating an import cycle.
package driver

import (
	"fmt"
	"time"

	"github.com/rayforge/raytrace"
	"github.com/rayforge/raytrace/fabric"
	"github.com/rayforge/raytrace/imagewriter"
	"github.com/rayforge/raytrace/shader"
	"github.com/rayforge/raytrace/strategy"
)

// Result is what RunCoordinator reports back to its caller, in addition
// to printing the mandatory console report.
type Result struct {
	ExecutionSeconds float64
	Timings          strategy.Timings
	ImagePath        string
}

// RunCoordinator runs the rank-0 side of cfg.Mode's strategy: it selects
// the strategy (falling back to NONE and logging a warning for an
// invalid Config or unrecognized Mode), allocates the
// framebuffer, measures the full wall-clock execution time, writes the
// image via w, and prints the five-line console report. A non-positive
// Width or Height does not fall back: RunCoordinator returns an error
// before selecting a strategy, and nothing is rendered or written.
func RunCoordinator(cfg *raytrace.Config, s shader.Shader, fab fabric.Fabric, w imagewriter.Writer) (Result, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Result{}, fmt.Errorf("driver: impossible image dimensions %dx%d", cfg.Width, cfg.Height)
	}

	active, path := resolveStrategy(cfg)

	start := time.Now()
	fb := raytrace.NewFramebuffer(cfg.Width, cfg.Height)
	timings, err := active.CoordinatorRun(cfg, s, fb, fab)
	if err != nil {
		return Result{}, fmt.Errorf("driver: coordinator run: %w", err)
	}
	execSeconds := time.Since(start).Seconds()

	if err := w.Write(path, fb); err != nil {
		return Result{}, fmt.Errorf("driver: write image: %w", err)
	}

	raytrace.Print(execSeconds, path, timings.ComputationSeconds, timings.CommunicationSeconds, timings.Ratio())

	return Result{ExecutionSeconds: execSeconds, Timings: timings, ImagePath: path}, nil
}

// RunWorker runs the rank>=1 side of cfg.Mode's strategy, falling back
// to NONE (a no-op) under the same conditions as RunCoordinator.
func RunWorker(cfg *raytrace.Config, s shader.Shader, fab fabric.Fabric) error {
	active, _ := resolveStrategy(cfg)
	if err := active.WorkerRun(cfg, s, fab); err != nil {
		return fmt.Errorf("driver: worker run: %w", err)
	}
	return nil
}

// resolveStrategy validates cfg and looks up its Strategy, falling back
// to NONE with a logged warning on any failure ("proceeds as
// if NONE" configuration-error policy).
func resolveStrategy(cfg *raytrace.Config) (strategy.Strategy, string) {
	path := imagewriter.GenerateName(cfg)

	if err := cfg.Validate(); err != nil {
		raytrace.Logger().Warn("invalid configuration, falling back to NONE", "error", err)
		fmt.Printf("invalid configuration (%v); proceeding as if NONE\n", err)
		return strategy.None{}, path
	}

	s, ok := strategy.For(cfg.Mode)
	if !ok {
		raytrace.Logger().Warn("unrecognized partitioning mode, falling back to NONE", "mode", cfg.Mode)
		fmt.Printf("unrecognized partitioning mode %v; proceeding as if NONE\n", cfg.Mode)
		return strategy.None{}, path
	}

	return s, path
}
