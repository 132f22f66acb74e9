// Package viz renders property tables, sweep plots and the interactive
// state explorer in the terminal.
//
//   - [Table]: one state point, one row per property with its code
//   - [PlotSweep]: asciigraph curve of a sweep output
//   - [NewExplorer]: Bubble Tea program to edit a state and watch every
//     property update
//
// # Key Bindings
//
//	j/k   - Select the pressure or the second input
//	h/l   - Decrease/increase the selected input by the step factor
//	enter - Type a value for the selected input
//	d     - Cycle the input domain (p-h, p-T, p-s)
//	t     - Cycle color themes
//	q     - Quit
package viz
