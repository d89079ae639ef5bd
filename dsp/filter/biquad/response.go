package biquad

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-lanedsp/dsp/core"
	"github.com/cwbudde/algo-lanedsp/dsp/lane"
)

// At evaluates H on the unit circle at w rad/sample.
func (c Coefficients) At(w float64) complex128 {
	zi := cmplx.Rect(1, -w)

	num := (complex(c.B2, 0)*zi+complex(c.B1, 0))*zi + complex(c.B0, 0)
	den := (complex(c.A2, 0)*zi+complex(c.A1, 0))*zi + 1

	return num / den
}

// Response evaluates H at freqHz for the given sample rate.
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	return c.At(core.AngularFrequency(freqHz, sampleRate))
}

// MagnitudeSquared returns |H|² at freqHz without complex arithmetic.
func (c Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	w := core.AngularFrequency(freqHz, sampleRate)
	c1, c2 := math.Cos(w), math.Cos(2*w)

	num := c.B0*c.B0 + c.B1*c.B1 + c.B2*c.B2 +
		2*(c.B0*c.B1+c.B1*c.B2)*c1 + 2*c.B0*c.B2*c2
	den := 1 + c.A1*c.A1 + c.A2*c.A2 +
		2*(c.A1+c.A1*c.A2)*c1 + 2*c.A2*c2

	return num / den
}

// MagnitudeDB returns |H| at freqHz in dB.
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 10 * math.Log10(c.MagnitudeSquared(freqHz, sampleRate))
}

// Phase returns arg H at freqHz in (-π, π].
func (c Coefficients) Phase(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(c.Response(freqHz, sampleRate))
}

// Poles returns the roots of z² + A1 z + A2.
func (c Coefficients) Poles() [2]complex128 {
	return quadraticRoots(1, c.A1, c.A2)
}

// Zeros returns the roots of B0 z² + B1 z + B2. A first-order numerator
// reports its single zero first.
func (c Coefficients) Zeros() [2]complex128 {
	return quadraticRoots(c.B0, c.B1, c.B2)
}

// Stable reports whether both poles are strictly inside the unit circle.
func (c Coefficients) Stable() bool {
	return c.A2 < 1 && 1+c.A1+c.A2 > 0 && 1-c.A1+c.A2 > 0
}

// quadraticRoots solves a·z² + b·z + c = 0. Complex pairs come back with
// the positive imaginary part first.
func quadraticRoots(a, b, c float64) [2]complex128 {
	switch {
	case a != 0:
	case b != 0:
		return [2]complex128{complex(-c/b, 0), 0}
	default:
		return [2]complex128{}
	}

	disc := b*b - 4*a*c
	if disc < 0 {
		re, im := -b/(2*a), math.Abs(math.Sqrt(-disc)/(2*a))

		return [2]complex128{complex(re, im), complex(re, -im)}
	}

	// q keeps -b and the root from cancelling.
	q := -0.5 * (b + math.Copysign(math.Sqrt(disc), b))

	var r2 float64
	if q != 0 {
		r2 = c / q
	}

	return [2]complex128{complex(q/a, 0), complex(r2, 0)}
}

// ImpulseResponse returns the first n output samples for a unit impulse,
// or nil for n <= 0. The section state is left as it was.
func (s *Section) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	saved := s.State()
	defer s.SetState(saved)

	s.Reset()

	h := make([]float64, n)
	h[0] = 1
	s.ProcessBlock(h)

	return h
}

// Response returns the cascade response of lane l at w rad/sample,
// input gain included. It panics unless 0 <= l < lane.Width.
func (c *Cascade[T]) Response(l int, w float64) complex128 {
	h := complex(float64(c.gain[l]), 0)
	for i := range c.stages {
		h *= c.stages[i].Coefficients(l).At(w)
	}

	return h
}

// ImpulseResponse returns n samples of the impulse response of every
// lane, or nil for n <= 0. The cascade state is left as it was.
func (c *Cascade[T]) ImpulseResponse(n int) []lane.Vec[T] {
	if n <= 0 {
		return nil
	}

	saved := c.State()
	defer func() { _ = c.SetState(saved) }()

	c.Reset()

	h := make([]lane.Vec[T], n)
	h[0] = lane.Splat(T(1))
	c.ProcessBlock(h)

	return h
}
