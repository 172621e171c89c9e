package strategy

import "github.com/rayforge/raytrace"

// table maps every known Mode to its Strategy implementation.
var table = map[raytrace.Mode]Strategy{
	raytrace.ModeNone:    None{},
	raytrace.ModeStripsV: StripsV{},
	raytrace.ModeBlocks:  Blocks{},
	raytrace.ModeCyclesH: CyclesH{},
	raytrace.ModeDynamic: Dynamic{},
}

// For looks up the Strategy for a Mode. ok is false for an unrecognized
// Mode; the driver falls back to None when a mode is unrecognized.
func For(m raytrace.Mode) (s Strategy, ok bool) {
	s, ok = table[m]
	return s, ok
}
