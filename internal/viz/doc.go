// Package viz provides a live terminal view of a predator-prey run.
//
// [Model] is a Bubble Tea model that owns a [dynamo.Simulator] and calls
// Advance a configurable number of times per frame until the run reaches its
// horizon. The left panel draws the recent orbit on a braille [Canvas]; the
// right panel charts both populations with asciigraph.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	+ / - - Double or halve steps per frame
//	R     - Reset to the initial state
//	T     - Cycle color themes
//	Q     - Quit
package viz
