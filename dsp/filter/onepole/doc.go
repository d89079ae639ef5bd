// Package onepole provides lane-parallel first-order filters with smoothed
// cutoff and shelf gain.
//
// Two topologies are available:
//   - TPT: trapezoidal integrator with prewarped cutoff g = tan(w/2).
//     Supports lowpass, highpass, allpass and both shelves.
//   - Exponential: impulse-invariant y += (1-a)(x-y), a = e^-w.
//     Supports lowpass and highpass.
//
// Cutoff and gain changes are applied through logarithmic smoothers; while a
// ramp is active the coefficients are recomputed once per sample. Each lane
// filters an independent channel.
package onepole
