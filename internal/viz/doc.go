// Package viz renders propagating fields in the terminal.
//
// The package implements a live viewer using the Bubble Tea framework:
//
//   - [Model]: steps a run on every tick and draws the selected field
//   - [Picker]: preset menu that launches a [Model]
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//   - [PlotFrame]: static asciigraph plot of one frame
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart from step 0
//	Tab   - Cycle displayed field
//	+/-   - Steps per tick
//	T     - Cycle color themes
//	?     - Show help overlay
//	[]/   - Scrub through recorded frames
package viz
