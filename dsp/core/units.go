package core

import "math"

// The filters speak radians per sample and ramp lengths in samples. The
// helpers here convert from the host units (Hz, seconds, dB) at the edge.

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return x-x == 0
}

// Clamp limits x to [lo, hi]. Reversed bounds are swapped.
func Clamp(x, lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}

	return math.Max(lo, math.Min(hi, x))
}

// DBToLinear converts an amplitude level in dB to a linear gain.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts a linear amplitude to dB. Silence maps to -Inf and
// negative amplitudes to NaN.
func LinearToDB(gain float64) float64 {
	switch {
	case gain < 0:
		return math.NaN()
	case gain == 0:
		return math.Inf(-1)
	default:
		return 20 * math.Log10(gain)
	}
}

// AngularFrequency maps hz at sampleRate to rad/sample. A non-positive
// sample rate yields 0.
func AngularFrequency(hz, sampleRate float64) float64 {
	if sampleRate <= 0 || !IsFinite(sampleRate) {
		return 0
	}

	return hz / sampleRate * 2 * math.Pi
}

// FrequencyHz maps rad/sample back to Hz.
func FrequencyHz(w, sampleRate float64) float64 {
	return w / (2 * math.Pi) * sampleRate
}

// RampSamples turns a smoothing time into a ramp length for SetTarget and
// SetParams, rounded to the nearest sample and capped at MaxInt32.
// Negative, NaN and infinite durations give 0, which means "jump".
func RampSamples(seconds, sampleRate float64) int {
	n := math.Round(seconds * sampleRate)

	switch {
	case !IsFinite(n) || n <= 0:
		return 0
	case n >= math.MaxInt32:
		return math.MaxInt32
	}

	return int(n)
}
