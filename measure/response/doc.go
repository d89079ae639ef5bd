// Package response measures the frequency response of lane-parallel
// processors.
//
// An impulse is fed to every lane at once, the n-sample impulse responses
// are transformed with a radix-2 FFT, and each lane's magnitude and phase
// are reported on the n/2+1 bins from DC to Nyquist. The measurement is
// only as good as the truncation: n must cover the decay of the
// processor under test.
package response
