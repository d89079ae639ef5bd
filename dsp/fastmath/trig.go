package fastmath

import (
	"math"

	"github.com/cwbudde/algo-lanedsp/dsp/lane"
)

const (
	trigMax = 1e6

	// π/2 split into three parts. The first two have 33 significant bits,
	// so k*pio2_1 and k*pio2_2 are exact for |k| < 2^20.
	pio2_1 = 1.57079632673412561417e+00
	pio2_2 = 6.07710050630396597660e-11
	pio2_3 = 2.02226624871116645580e-21
)

// Minimax kernels on [-π/4, π/4].
var (
	sinCoeffs = [...]float64{
		-1.66666666666666324348e-01,
		8.33333333332248946124e-03,
		-1.98412698298579493134e-04,
		2.75573137070700676789e-06,
		-2.50507602534068634195e-08,
		1.58969099521155010221e-10,
	}
	cosCoeffs = [...]float64{
		4.16666666666666019037e-02,
		-1.38888888888741095749e-03,
		2.48015872894767294178e-05,
		-2.75573143513906633035e-07,
		2.08757232129817482790e-09,
		-1.13596475577881948265e-11,
	}
)

func sincos(x vec) (s, c vec) {
	x = x.Clamp(splat(-trigMax), splat(trigMax))
	k := x.Scale(2 / math.Pi).Round()

	r := x.Sub(k.Scale(pio2_1)).Sub(k.Scale(pio2_2)).Sub(k.Scale(pio2_3))
	z := r.Mul(r)

	// sin r = r + r*z*S(z), cos r = 1 - z/2 + z²*C(z)
	sr := horner(z, sinCoeffs[:]).Mul(z).MulAdd(r, r)
	cr := horner(z, cosCoeffs[:]).Mul(z.Mul(z)).Sub(z.Scale(0.5)).AddScalar(1)

	q := lane.ToI64(k).And(lane.SplatI64(3))
	one, two := lane.SplatI64(1), lane.SplatI64(2)

	swap := q.And(one).Eq(one)
	s = lane.Select(swap, cr, sr)
	c = lane.Select(swap, sr, cr)

	// sin is negated in quadrants 2 and 3, cos in quadrants 1 and 2.
	s = lane.Select(q.And(two).Eq(two), s.Neg(), s)
	c = lane.Select(q.Add(one).And(two).Eq(two), c.Neg(), c)

	return s, c
}

// Sin returns sin(x) per lane. Inputs beyond ±1e6 are clamped.
func Sin[T lane.Float](x lane.Vec[T]) lane.Vec[T] {
	s, _ := sincos(widen(x))

	return narrow[T](s)
}

// Cos returns cos(x) per lane. Inputs beyond ±1e6 are clamped.
func Cos[T lane.Float](x lane.Vec[T]) lane.Vec[T] {
	_, c := sincos(widen(x))

	return narrow[T](c)
}

// SinCos returns sin(x) and cos(x) with a single range reduction.
func SinCos[T lane.Float](x lane.Vec[T]) (sin, cos lane.Vec[T]) {
	s, c := sincos(widen(x))

	return narrow[T](s), narrow[T](c)
}

// Tan returns tan(x) per lane. Poles saturate to the largest finite
// value of T.
func Tan[T lane.Float](x lane.Vec[T]) lane.Vec[T] {
	s, c := sincos(widen(x))

	return narrow[T](s.Div(c))
}

// TanHalf returns tan(w/2), the bilinear prewarp of a normalized angular
// frequency w. For w in (0, π) the result is positive and finite.
func TanHalf[T lane.Float](w lane.Vec[T]) lane.Vec[T] {
	return Tan(w.Scale(0.5))
}
