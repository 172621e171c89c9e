// Package strategy implements the four partitioning protocols (plus the
// NONE baseline) that decide which rank renders which pixels, how tiles
// are requested and delivered over the fabric, and how the coordinator
// reassembles a globally consistent framebuffer, behind a common
// Strategy abstraction.
package strategy

import (
	"math"

	"github.com/rayforge/raytrace"
	"github.com/rayforge/raytrace/fabric"
	"github.com/rayforge/raytrace/shader"
)

// Timings reports the wall-clock breakdown of a coordinator run.
type Timings struct {
	// ComputationSeconds sums the coordinator's own rendering time and
	// every worker's reported rendering time.
	ComputationSeconds float64
	// CommunicationSeconds is the wall interval the coordinator spends
	// gathering results (and, for DYNAMIC, priming and draining).
	CommunicationSeconds float64
}

// Ratio returns CommunicationSeconds / ComputationSeconds. It returns
// +Inf when ComputationSeconds is zero and CommunicationSeconds is
// positive, and 0 when both are zero, rather than silently producing NaN.
func (t Timings) Ratio() float64 {
	if t.ComputationSeconds == 0 {
		if t.CommunicationSeconds == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return t.CommunicationSeconds / t.ComputationSeconds
}

// Strategy is one partitioning protocol: a mapping from rank to owned
// tiles, the message format exchanged between coordinator and worker,
// and the coordinator-side assembly procedure.
type Strategy interface {
	// Name identifies the strategy for logging.
	Name() string

	// CoordinatorRun executes the rank-0 side: it renders the
	// coordinator's own tiles directly into fb, gathers every worker's
	// tiles over fab, and returns the accumulated timings.
	CoordinatorRun(cfg *raytrace.Config, s shader.Shader, fb *raytrace.Framebuffer, fab fabric.Fabric) (Timings, error)

	// WorkerRun executes a rank>=1 side: it renders its assigned tiles
	// and sends them to the coordinator over fab.
	WorkerRun(cfg *raytrace.Config, s shader.Shader, fab fabric.Fabric) error
}

// tag is the single message tag every strategy uses; the protocols
// distinguish message kinds by direction and payload shape, not by tag.
const tag = 0
