// Package ladder implements a lane-parallel four-pole nonlinear lowpass
// ladder after Huovilainen.
//
// Each stage integrates the difference of two tanh saturators, and the
// fourth stage feeds back to the input through a half-sample average.
// Cutoff tuning and resonance compensation use Huovilainen's polynomial
// fits, so the nominal cutoff tracks across the band. Stage memory is
// clipped to keep driven, high-resonance settings bounded.
//
// Cutoff is given in rad/sample and follows a logarithmic smoother;
// resonance follows a linear one and is clamped below 4, where the loop
// self-oscillates.
package ladder
