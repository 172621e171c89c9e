package strategy

import (
	"time"

	"github.com/rayforge/raytrace"
	"github.com/rayforge/raytrace/fabric"
	"github.com/rayforge/raytrace/region"
	"github.com/rayforge/raytrace/shader"
)

// CyclesH is the STATIC_CYCLES_H strategy: the image is cut
// into horizontal bands of CycleSize rows; band k is owned by rank k mod
// P. Each worker packs all of its bands into one constant-size buffer and
// sends it in a single message, avoiding a per-worker size handshake.
type CyclesH struct{}

// Name implements Strategy.
func (CyclesH) Name() string { return "STATIC_CYCLES_H" }

// cyclicBandCount returns N = ceil(height/cycleSize), the total number of
// bands covering the image.
func cyclicBandCount(height, cycleSize int) int {
	return (height + cycleSize - 1) / cycleSize
}

// cyclicMaxBandsPerRank returns the upper bound M_max on the number of
// bands any single rank can own, used to size the worker's packed buffer.
func cyclicMaxBandsPerRank(bandCount, procs int) int {
	return (bandCount+procs-1)/procs + 1
}

// cyclicBandHeight returns the row count of band k, truncated at the
// image's bottom edge.
func cyclicBandHeight(height, cycleSize, k int) int {
	y := k * cycleSize
	h := cycleSize
	if y+h > height {
		h = height - y
	}
	return h
}

// CoordinatorRun implements Strategy.
func (CyclesH) CoordinatorRun(cfg *raytrace.Config, s shader.Shader, fb *raytrace.Framebuffer, fab fabric.Fabric) (Timings, error) {
	var timings Timings
	n := cyclicBandCount(cfg.Height, cfg.CycleSize)

	computeStart := time.Now()
	for k := 0; k < n; k += cfg.Procs {
		renderBandDirect(cfg, s, fb, k)
	}
	timings.ComputationSeconds += time.Since(computeStart).Seconds()

	commStart := time.Now()
	packed := make([][]float32, cfg.Procs)
	for r := 1; r < cfg.Procs; r++ {
		payload, _, err := fab.RecvFloats(r, tag)
		if err != nil {
			return timings, err
		}
		timings.ComputationSeconds += float64(payload[len(payload)-1])
		packed[r] = payload
	}

	for k := 1; k < n; k++ {
		r := k % cfg.Procs
		if r == 0 {
			continue
		}
		localBand := k / cfg.Procs
		bandY := k * cfg.CycleSize
		bandH := cyclicBandHeight(cfg.Height, cfg.CycleSize, k)

		srcOffset := localBand * cfg.CycleSize * cfg.Width * 3
		fb.CopyRowsFrom(0, bandY, cfg.Width, bandH, packed[r], srcOffset, cfg.Width*3)
	}
	timings.CommunicationSeconds = time.Since(commStart).Seconds()

	return timings, nil
}

// WorkerRun implements Strategy.
func (CyclesH) WorkerRun(cfg *raytrace.Config, s shader.Shader, fab fabric.Fabric) error {
	n := cyclicBandCount(cfg.Height, cfg.CycleSize)
	maxBands := cyclicMaxBandsPerRank(n, cfg.Procs)
	bufHeight := maxBands * cfg.CycleSize

	buf := make([]float32, cfg.Width*bufHeight*3)

	start := time.Now()
	local := 0
	for k := cfg.Rank; k < n; k += cfg.Procs {
		bandY := k * cfg.CycleSize
		bandH := cyclicBandHeight(cfg.Height, cfg.CycleSize, k)

		band := &region.RenderRegion{
			XInImage: 0, YInImage: bandY,
			XInPixels: 0, YInPixels: local * cfg.CycleSize,
			Width: cfg.Width, Height: bandH,
			PixelsWidth: cfg.Width, PixelsHeight: bufHeight,
			Pixels: buf,
		}
		region.Render(s, cfg, band)
		local++
	}
	compTime := time.Since(start).Seconds()

	payload := make([]float32, len(buf)+1)
	copy(payload, buf)
	payload[len(payload)-1] = float32(compTime)

	return fab.SendFloats(0, tag, payload)
}

// renderBandDirect renders band k into fb directly; used for the
// coordinator's own bands (k mod P == 0).
func renderBandDirect(cfg *raytrace.Config, s shader.Shader, fb *raytrace.Framebuffer, k int) {
	bandY := k * cfg.CycleSize
	bandH := cyclicBandHeight(cfg.Height, cfg.CycleSize, k)

	reg := region.NewRenderRegion(0, bandY, cfg.Width, bandH)
	region.Render(s, cfg, reg)
	fb.CopyRowsFrom(0, bandY, cfg.Width, bandH, reg.Pixels, 0, reg.PixelsWidth*3)
}
