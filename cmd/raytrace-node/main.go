// Command raytrace-node runs a single rank of a distributed render as
// its own OS process, communicating with its peers over TCP via
// fabric.NetFabric. Every rank in the run must be started with the
// same -width/-height/-mode/-addrs (the process count is the number of
// addresses); -rank selects which one this process plays.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"

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
		mode      = flag.String("mode", "NONE", "partitioning strategy: NONE, STATIC_STRIPS_V, STATIC_BLOCKS, STATIC_CYCLES_H, DYNAMIC")
		cycleSize = flag.Int("cycle-size", 4, "rows per band, STATIC_CYCLES_H only")
		blockW    = flag.Int("block-width", 32, "tile width, DYNAMIC only")
		blockH    = flag.Int("block-height", 32, "tile height, DYNAMIC only")
		rank      = flag.Int("rank", 0, "this process's rank; 0 is the coordinator")
		addrs     = flag.String("addrs", "", "comma-separated listen address for every rank, in rank order")
		verbose   = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		raytrace.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	peers := strings.Split(*addrs, ",")
	if len(peers) < 1 || peers[0] == "" {
		log.Fatal("raytrace-node: -addrs is required, one address per rank")
	}

	m, err := parseMode(*mode)
	if err != nil {
		log.Fatal(err)
	}

	cfg := raytrace.Config{
		Width:              *width,
		Height:             *height,
		Mode:               m,
		CycleSize:          *cycleSize,
		DynamicBlockWidth:  *blockW,
		DynamicBlockHeight: *blockH,
		Procs:              len(peers),
		Rank:               *rank,
	}

	fab, err := fabric.NewNetFabric(*rank, peers)
	if err != nil {
		log.Fatalf("raytrace-node: dial peers: %v", err)
	}
	defer fab.Close()

	sh := shader.Gradient{Width: *width, Height: *height}

	if *rank == 0 {
		if _, err := driver.RunCoordinator(&cfg, sh, fab, imagewriter.PNGWriter{}); err != nil {
			log.Fatalf("coordinator: %v", err)
		}
		return
	}

	if err := driver.RunWorker(&cfg, sh, fab); err != nil {
		log.Fatalf("rank %d: %v", *rank, err)
	}
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
	return "raytrace-node: unrecognized -mode " + e.s + " (want NONE, STATIC_STRIPS_V, STATIC_BLOCKS, STATIC_CYCLES_H or DYNAMIC)"
}
