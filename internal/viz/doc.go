// Package viz provides the terminal view of a running bridge simulation.
//
// The package implements a Bubble Tea TUI around a braille pixel canvas:
//
//   - [Model]: live view driving one [sim.Simulation] at 60 ticks/s
//   - [Canvas]: braille canvas with a world-coordinate viewport
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset structure to rest
//	W/X   - Drop/lift a point load at midspan
//	1-3   - Switch preset structure
//	Q     - Quit
//
// The view only reads core state per tick; every mutation it performs
// (loads, presets, reset) happens between ticks.
package viz
