// Package raytrace implements the distributed work-partitioning and
// result-assembly core of a parallel ray tracer.
//
// # Overview
//
// One rank (the coordinator, rank 0) owns the final framebuffer and decides
// how the image is divided among worker ranks (1..P-1). Each worker renders
// the pixels inside the tiles it is assigned and returns them to the
// coordinator along with a per-tile computation time. The shader itself — a
// pure function of (row, col, scene) — is supplied by the caller; this
// package owns only the partitioning, dispatch, and assembly protocol
// around it.
//
// # Partitioning strategies
//
//   - ModeNone: single rank, no partitioning (reference baseline).
//   - ModeStripsV: static vertical strips, one per rank.
//   - ModeBlocks: static square blocks on a √P × √P grid.
//   - ModeCyclesH: static cyclic horizontal bands, C rows each.
//   - ModeDynamic: a centralized tile queue, workers pull tiles on demand.
//
// # Message passing
//
// Ranks communicate only through the fabric.Fabric interface: blocking
// send, blocking receive (including any-source), and a monotonic wall
// clock. Two implementations are provided: an in-process goroutine mesh
// for simulation and testing, and a TCP/net-rpc transport for running one
// OS process per rank.
//
// # Coordinate system
//
// Images are addressed row-major: pixel (x, y)'s RGB triple starts at
// 3*(y*W+x) in the framebuffer. Origin (0,0) is the top-left corner.
package raytrace
