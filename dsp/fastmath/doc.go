// Package fastmath provides branch-free lane-parallel approximations of the
// transcendental functions used in audio control paths.
//
// Every function is generic over the lane element type and evaluates
// internally in float64 lanes, so float32 callers get a correctly rounded
// float64 result narrowed once. No function branches on lane contents:
// range reduction uses rounding, exponent-bit manipulation and mask
// selects, and the polynomial kernels run a fixed number of steps.
//
// Accuracy is documented per function over a stated domain, see Bounds.
// Outside that domain results saturate to finite values: inputs are
// clamped to the domain before evaluation and NaN inputs are mapped to the
// lower domain edge. No function returns NaN or an infinity for any input.
//
//	Function  Domain                 float64 bound          float32 bound
//	Exp2      [-126, 128)            rel 2e-15              rel 1.2e-7
//	Exp       [-87.3, 88.7]          rel 5e-15              rel 1.2e-7
//	Log2, Ln  [2^-126, MaxFloat64]   abs 2e-15 + rel 2e-15  abs 1e-9 + rel 1.2e-7
//	Pow       see Pow                rel 1e-13              rel 2e-7
//	Sin, Cos  [-2π, 2π]              abs 1e-14              abs 1e-7
//	Sin, Cos  [-1e6, 1e6]            abs 1e-9               abs 1e-7
//	Tanh      all reals              abs 4e-15              abs 1e-7
package fastmath
