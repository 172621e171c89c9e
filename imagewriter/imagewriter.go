// Package imagewriter persists a rendered Framebuffer to disk,
// "image-writer collaborator"): out of scope for the partitioning core
// itself, but exercised by the coordinator driver once rendering
// completes.
package imagewriter

import "github.com/rayforge/raytrace"

// Writer persists a framebuffer to the given path. File layout is an
// implementation detail of each Writer.
type Writer interface {
	Write(path string, fb *raytrace.Framebuffer) error
}
