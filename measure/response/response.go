package response

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-lanedsp/dsp/lane"
	"github.com/cwbudde/algo-vecmath"
)

const minDB = -300.0

// Errors returned by Measure.
var (
	ErrLength     = errors.New("response: length must be a power of two >= 2")
	ErrSampleRate = errors.New("response: sample rate must be positive and finite")
)

// Processor is a lane-parallel filter such as svf.Filter or ladder.Filter.
type Processor[T lane.Float] interface {
	Process(x lane.Vec[T]) lane.Vec[T]
}

// SampleProcessor is a scalar filter such as biquad.Section.
type SampleProcessor interface {
	ProcessSample(x float64) float64
}

type scalar struct{ p SampleProcessor }

func (s scalar) Process(x lane.Vec[float64]) lane.Vec[float64] {
	return lane.Splat(s.p.ProcessSample(x[0]))
}

func (s scalar) Reset() {
	if r, ok := s.p.(interface{ Reset() }); ok {
		r.Reset()
	}
}

// Scalar adapts p so that every lane reports its response.
func Scalar(p SampleProcessor) Processor[float64] {
	return scalar{p: p}
}

// Result is the response of one lane on bins 0..n/2.
type Result struct {
	SampleRate  float64
	Freqs       []float64
	Magnitude   []float64
	MagnitudeDB []float64
	// Phase is wrapped to (-π, π].
	Phase []float64
}

// Measure resets p when it has a Reset method, feeds it a unit impulse on
// every lane and returns the response of each lane from an n-point FFT.
func Measure[T lane.Float](p Processor[T], n int, sampleRate float64) ([lane.Width]Result, error) {
	var out [lane.Width]Result

	if n < 2 || bits.OnesCount(uint(n)) != 1 {
		return out, fmt.Errorf("%w: %d", ErrLength, n)
	}

	if !(sampleRate > 0) || math.IsInf(sampleRate, 1) {
		return out, fmt.Errorf("%w: %v", ErrSampleRate, sampleRate)
	}

	if r, ok := p.(interface{ Reset() }); ok {
		r.Reset()
	}

	ir := make([]lane.Vec[T], n)
	ir[0] = lane.Splat(T(1))

	for i := range ir {
		ir[i] = p.Process(ir[i])
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return out, fmt.Errorf("response: fft plan: %w", err)
	}

	in := make([]complex128, n)
	spec := make([]complex128, n)
	bins := n/2 + 1

	re := make([]float64, bins)
	im := make([]float64, bins)
	power := make([]float64, bins)

	freqs := make([]float64, bins)
	for k := range freqs {
		freqs[k] = float64(k) * sampleRate / float64(n)
	}

	for l := range lane.Width {
		for i, v := range ir {
			in[i] = complex(float64(v[l]), 0)
		}

		if err := plan.Forward(spec, in); err != nil {
			return out, fmt.Errorf("response: fft: %w", err)
		}

		res := Result{
			SampleRate:  sampleRate,
			Freqs:       freqs,
			Magnitude:   make([]float64, bins),
			MagnitudeDB: make([]float64, bins),
			Phase:       make([]float64, bins),
		}

		for k := range bins {
			re[k] = real(spec[k])
			im[k] = imag(spec[k])
			res.Phase[k] = math.Atan2(im[k], re[k])
		}

		vecmath.Magnitude(res.Magnitude, re, im)
		vecmath.Power(power, re, im)

		for k, pw := range power {
			if pw > 0 {
				res.MagnitudeDB[k] = max(10*math.Log10(pw), minDB)
			} else {
				res.MagnitudeDB[k] = minDB
			}
		}

		out[l] = res
	}

	return out, nil
}

// At returns the magnitude at hz, linearly interpolated between bins and
// clamped to the DC and Nyquist bins.
func (r Result) At(hz float64) float64 {
	return interpolate(r.Magnitude, r.bin(hz))
}

// DBAt is At in decibels.
func (r Result) DBAt(hz float64) float64 {
	return interpolate(r.MagnitudeDB, r.bin(hz))
}

func (r Result) bin(hz float64) float64 {
	if len(r.Freqs) < 2 {
		return 0
	}

	return hz / r.Freqs[1]
}

func interpolate(v []float64, pos float64) float64 {
	if len(v) == 0 {
		return 0
	}

	last := len(v) - 1

	switch {
	case !(pos > 0):
		return v[0]
	case pos >= float64(last):
		return v[last]
	}

	i := int(pos)
	frac := pos - float64(i)

	return v[i] + frac*(v[i+1]-v[i])
}
