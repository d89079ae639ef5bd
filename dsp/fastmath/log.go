package fastmath

import (
	"math"

	"github.com/cwbudde/algo-lanedsp/dsp/lane"
)

// Smallest normal float32; Log2 and Ln clamp their input to at least this.
const logMin = 0x1p-126

// atanhCoeffs are 1/(2n+1) for n = 0..10, the series of atanh(s)/s in s².
var atanhCoeffs = func() [11]float64 {
	var c [11]float64
	for n := range c {
		c[n] = 1 / float64(2*n+1)
	}

	return c
}()

// logParts splits x into e and ln(m) with x = m*2^e and m in [√½, √2).
func logParts(x vec) (e, lnm vec) {
	x = x.Clamp(splat(logMin), splat(math.MaxFloat64))
	m, k := lane.Frexp(x)

	big := m.Gt(splat(math.Sqrt2))
	m = lane.Select(big, m.Scale(0.5), m)
	e = k.Float().Add(lane.Select(big, splat(1), vec{}))

	// ln m = 2 atanh(s), s = (m-1)/(m+1), |s| <= 0.1716.
	s := m.AddScalar(-1).Div(m.AddScalar(1))
	lnm = horner(s.Mul(s), atanhCoeffs[:]).Mul(s).Scale(2)

	return e, lnm
}

func log2(x vec) vec {
	e, lnm := logParts(x)

	return lnm.MulAdd(splat(math.Log2E), e)
}

func ln(x vec) vec {
	e, lnm := logParts(x)

	return e.MulAdd(splat(ln2Hi), e.Scale(ln2Lo).Add(lnm))
}

// Log2 returns the base-2 logarithm per lane.
//
// Inputs below 2^-126, including zero, negatives and NaN, are clamped to
// 2^-126 and return -126. +Inf is clamped to MaxFloat64 and returns
// about 1024.
func Log2[T lane.Float](x lane.Vec[T]) lane.Vec[T] {
	return narrow[T](log2(widen(x)))
}

// Ln returns the natural logarithm per lane, with Log2's domain handling.
func Ln[T lane.Float](x lane.Vec[T]) lane.Vec[T] {
	return narrow[T](ln(widen(x)))
}

// GainToDB converts linear amplitude to decibels (20*log10 convention).
// Gains at or below 2^-126 saturate at about -758.6 dB.
func GainToDB[T lane.Float](g lane.Vec[T]) lane.Vec[T] {
	return narrow[T](log2(widen(g)).Scale(20 * math.Ln2 / math.Ln10))
}
