package testutil

import (
	"math"
	"math/cmplx"
	"math/rand"

	"github.com/cwbudde/algo-lanedsp/dsp/lane"
)

// LaneImpulse returns n samples that are 1 in every lane at index 0 and
// zero elsewhere.
func LaneImpulse(n int) []lane.Vec[float64] {
	out := make([]lane.Vec[float64], n)
	if n > 0 {
		out[0] = lane.Splat(1.0)
	}

	return out
}

// LaneDC returns n samples holding v.
func LaneDC(v lane.Vec[float64], n int) []lane.Vec[float64] {
	out := make([]lane.Vec[float64], n)
	for i := range out {
		out[i] = v
	}

	return out
}

// LaneSine returns n samples of sin(w·i) with a per-lane angular frequency
// in rad/sample.
func LaneSine(w lane.Vec[float64], amplitude float64, n int) []lane.Vec[float64] {
	out := make([]lane.Vec[float64], n)
	for i := range out {
		for l := range lane.Width {
			out[i][l] = amplitude * math.Sin(w[l]*float64(i))
		}
	}

	return out
}

// LaneNoise returns n samples of white noise in [-amplitude, amplitude)
// with a fixed seed. Lanes are independent.
func LaneNoise(seed int64, amplitude float64, n int) []lane.Vec[float64] {
	rng := rand.New(rand.NewSource(seed))
	out := make([]lane.Vec[float64], n)

	for i := range out {
		for l := range lane.Width {
			out[i][l] = (rng.Float64()*2 - 1) * amplitude
		}
	}

	return out
}

// Column extracts lane l from a block of lane samples.
func Column[T lane.Float](block []lane.Vec[T], l int) []float64 {
	out := make([]float64, len(block))
	for i, v := range block {
		out[i] = float64(v[l])
	}

	return out
}

// DFTAt evaluates the discrete-time Fourier transform of h at w rad/sample.
// For a decayed impulse response this is the frequency response.
func DFTAt(h []float64, w float64) complex128 {
	var sum complex128
	for n, x := range h {
		sum += complex(x, 0) * cmplx.Rect(1, -w*float64(n))
	}

	return sum
}

// MagnitudeDB returns 20·log10|DFTAt(h, w)|.
func MagnitudeDB(h []float64, w float64) float64 {
	return 20 * math.Log10(cmplx.Abs(DFTAt(h, w)))
}
