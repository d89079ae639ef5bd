// Package lane provides a fixed-width vector of floating-point lanes and the
// layout operations built on it.
//
// A Vec holds Width independent lanes. Lane-parallel code batches several
// voices, channels or parameters into one Vec and processes them with the
// same instruction stream. Every elementwise method acts on each lane
// independently; the only operations that move data between lanes are the
// explicitly named swizzles (Interleave, Permute, Reverse, ...) and the
// horizontal reductions (Sum, ReduceMax, ReduceMin).
//
// Vec and Mask are plain arrays and are passed by value. No method
// allocates, and selection is expressed with masks instead of per-lane
// branches:
//
//	m := x.Lt(lane.Splat(0.0))
//	y := lane.Select(m, x.Neg(), x) // |x|
//
// The lane count is a build-time constant: 8 by default, 4 with the
// lanes4 build tag and 16 with lanes16.
package lane
