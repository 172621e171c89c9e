// Command raytrace runs a complete coordinator+worker render within a
// single process, simulating Procs ranks as goroutines connected by an
// in-process fabric. It is the demo/test harness for the partitioning
// strategies; cmd/raytrace-node runs the same logic across real
// processes over TCP.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"sync"

	"github.com/rayforge/raytrace"
	"github.com/rayforge/raytrace/driver"
	"github.com/rayforge/raytrace/fabric"
	"github.com/rayforge/raytrace/imagewriter"
	"github.com/rayforge/raytrace/shader"
)

func main() {
	var (
		width     = flag.Int("width", 800, "image width in pixels")
		height    = flag.Int("height", 600, "image height in pixels")
		procs     = flag.Int("procs", 4, "number of simulated ranks (coordinator + workers)")
		mode      = flag.String("mode", "NONE", "partitioning strategy: NONE, STATIC_STRIPS_V, STATIC_BLOCKS, STATIC_CYCLES_H, DYNAMIC")
		cycleSize = flag.Int("cycle-size", 4, "rows per band, STATIC_CYCLES_H only")
		blockW    = flag.Int("block-width", 32, "tile width, DYNAMIC only")
		blockH    = flag.Int("block-height", 32, "tile height, DYNAMIC only")
		verbose   = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		raytrace.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	m, err := parseMode(*mode)
	if err != nil {
		log.Fatal(err)
	}

	cfg := raytrace.Config{
		Width:             *width,
		Height:            *height,
		Mode:              m,
		CycleSize:         *cycleSize,
		DynamicBlockWidth: *blockW,
		DynamicBlockHeight: *blockH,
		Procs:             *procs,
	}

	sh := shader.Gradient{Width: *width, Height: *height}
	writer := imagewriter.PNGWriter{}
	mesh := fabric.NewChannelMesh(cfg.Procs)

	var wg sync.WaitGroup
	wg.Add(cfg.Procs - 1)
	for r := 1; r < cfg.Procs; r++ {
		rcfg := cfg
		rcfg.Rank = r
		go func(rank int, rcfg raytrace.Config) {
			defer wg.Done()
			if err := driver.RunWorker(&rcfg, sh, mesh[rank]); err != nil {
				log.Printf("rank %d: %v", rank, err)
			}
		}(r, rcfg)
	}

	ccfg := cfg
	ccfg.Rank = 0
	if _, err := driver.RunCoordinator(&ccfg, sh, mesh[0], writer); err != nil {
		log.Fatalf("coordinator: %v", err)
	}
	wg.Wait()
}

func parseMode(s string) (raytrace.Mode, error) {
	switch s {
	case "NONE":
		return raytrace.ModeNone, nil
	case "STATIC_STRIPS_V":
		return raytrace.ModeStripsV, nil
	case "STATIC_BLOCKS":
		return raytrace.ModeBlocks, nil
	case "STATIC_CYCLES_H":
		return raytrace.ModeCyclesH, nil
	case "DYNAMIC":
		return raytrace.ModeDynamic, nil
	default:
		return 0, &modeError{s}
	}
}

type modeError struct{ s string }

func (e *modeError) Error() string {
	return "raytrace: unrecognized -mode " + e.s + " (want NONE, STATIC_STRIPS_V, STATIC_BLOCKS, STATIC_CYCLES_H or DYNAMIC)"
}
