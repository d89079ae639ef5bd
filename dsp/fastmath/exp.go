package fastmath

import (
	"math"

	"github.com/cwbudde/algo-lanedsp/dsp/lane"
)

const (
	exp2Min = -126
	// Largest float32 below 128, so 2^x stays finite in float32.
	exp2Max = 127.99999237060547

	expMin = exp2Min * math.Ln2
	expMax = exp2Max * math.Ln2

	// Cody-Waite split of ln 2: ln2Hi has its low bits zero so k*ln2Hi
	// is exact for every k reachable from the clamped domain.
	ln2Hi = 6.93147180369123816490e-01
	ln2Lo = 1.90821492927058770002e-10
)

// expCoeffs holds 1/n! for n = 0..13. On |r| <= ln2/2 the truncation
// error of the series is below 5e-18.
var expCoeffs = func() [14]float64 {
	var c [14]float64
	f := 1.0
	for n := range c {
		if n > 0 {
			f *= float64(n)
		}
		c[n] = 1 / f
	}

	return c
}()

// expReduced returns e^r * 2^k.
func expReduced(r, k vec) vec {
	return horner(r, expCoeffs[:]).Mul(lane.Pow2i(lane.ToI64(k)))
}

func exp2(x vec) vec {
	x = x.Clamp(splat(exp2Min), splat(exp2Max))
	k := x.Round()

	// x-k is exact, |x-k| <= 0.5.
	return expReduced(x.Sub(k).Scale(math.Ln2), k)
}

func exp(x vec) vec {
	x = x.Clamp(splat(expMin), splat(expMax))
	k := x.Scale(math.Log2E).Round()
	r := x.Sub(k.Scale(ln2Hi)).Sub(k.Scale(ln2Lo))

	return expReduced(r, k)
}

// Exp2 returns 2^x per lane.
//
// Accurate over [-126, 128); outside it the input is clamped, so the result
// saturates between 2^-126 and the largest finite power below 2^128.
func Exp2[T lane.Float](x lane.Vec[T]) lane.Vec[T] {
	return narrow[T](exp2(widen(x)))
}

// Exp returns e^x per lane. The domain is Exp2's scaled by ln 2.
func Exp[T lane.Float](x lane.Vec[T]) lane.Vec[T] {
	return narrow[T](exp(widen(x)))
}

// Pow returns base^e per lane, computed as 2^(e*log2(base)).
//
// The bound holds for positive base and e*log2(base) within Exp2's domain.
// Non-positive bases are treated as the smallest normal float32, matching
// Log2.
func Pow[T lane.Float](base, e lane.Vec[T]) lane.Vec[T] {
	return narrow[T](exp2(widen(e).Mul(log2(widen(base)))))
}

// SemitonesToRatio converts a pitch offset in semitones to a frequency
// ratio, 2^(s/12).
func SemitonesToRatio[T lane.Float](s lane.Vec[T]) lane.Vec[T] {
	return narrow[T](exp2(widen(s).Scale(1.0 / 12)))
}

// DBToGain converts decibels to linear amplitude (20*log10 convention).
func DBToGain[T lane.Float](db lane.Vec[T]) lane.Vec[T] {
	return narrow[T](exp2(widen(db).Scale(math.Ln10 / math.Ln2 / 20)))
}
