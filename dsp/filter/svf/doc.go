// Package svf provides a lane-parallel topology-preserving state-variable
// filter.
//
// The filter is built from two trapezoidal integrators (see package tpt)
// and solves the zero-delay feedback loop in closed form:
//
//	hp = (x - (g+k)·s1 - s2) / (1 + g·(g+k))
//	bp = I1(g·hp)
//	lp = I2(g·bp)
//
// with g = tan(w/2) and damping k = 1/Q. Every mode is a mix of x, bp and
// lp, so all responses share the same state and can be switched or read
// together with ProcessAll. Cutoff, damping and gain ramp through
// logarithmic smoothers and the coefficients are recomputed once per
// sample while a ramp is running.
package svf
