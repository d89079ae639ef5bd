package fastmath

import (
	"math"

	"github.com/cwbudde/algo-lanedsp/dsp/lane"
)

// Bound documents the accuracy of a unary approximation. Over [Lo, Hi]
// the result satisfies |got - want| <= Abs + Rel*|want|, with Abs32/Rel32
// applying to float32 lanes.
type Bound struct {
	Name   string
	Lo, Hi float64

	Abs, Rel     float64
	Abs32, Rel32 float64

	Eval   func(lane.Vec[float64]) lane.Vec[float64]
	Eval32 func(lane.Vec[float32]) lane.Vec[float32]
	Ref    func(float64) float64
}

// PowBound is the relative error bound of Pow for float64 and float32
// lanes when e*log2(base) lies in [-126, 128).
var PowBound = struct{ Rel, Rel32 float64 }{Rel: 1e-13, Rel32: 2e-7}

// Within reports whether got is inside the bound around want for the
// given element width in bytes (4 or 8).
func (b Bound) Within(got, want float64, size int) bool {
	abs, rel := b.Abs, b.Rel
	if size == 4 {
		abs, rel = b.Abs32, b.Rel32
	}

	return math.Abs(got-want) <= abs+rel*math.Abs(want)
}

// Bounds returns the documented accuracy of every unary function.
func Bounds() []Bound {
	return []Bound{
		{
			Name: "Exp2", Lo: exp2Min, Hi: exp2Max,
			Rel: 2e-15, Rel32: 1.2e-7,
			Eval: Exp2[float64], Eval32: Exp2[float32], Ref: math.Exp2,
		},
		{
			Name: "Exp", Lo: expMin, Hi: expMax,
			Rel: 5e-15, Rel32: 1.2e-7,
			Eval: Exp[float64], Eval32: Exp[float32], Ref: math.Exp,
		},
		{
			Name: "Log2", Lo: logMin, Hi: math.MaxFloat32,
			Abs: 2e-15, Rel: 2e-15, Abs32: 1e-9, Rel32: 1.2e-7,
			Eval: Log2[float64], Eval32: Log2[float32], Ref: math.Log2,
		},
		{
			Name: "Ln", Lo: logMin, Hi: math.MaxFloat32,
			Abs: 2e-15, Rel: 2e-15, Abs32: 1e-9, Rel32: 1.2e-7,
			Eval: Ln[float64], Eval32: Ln[float32], Ref: math.Log,
		},
		{
			Name: "Sin", Lo: -2 * math.Pi, Hi: 2 * math.Pi,
			Abs: 1e-14, Abs32: 1e-7,
			Eval: Sin[float64], Eval32: Sin[float32], Ref: math.Sin,
		},
		{
			Name: "Cos", Lo: -2 * math.Pi, Hi: 2 * math.Pi,
			Abs: 1e-14, Abs32: 1e-7,
			Eval: Cos[float64], Eval32: Cos[float32], Ref: math.Cos,
		},
		{
			Name: "Tanh", Lo: -40, Hi: 40,
			Abs: 4e-15, Abs32: 1e-7,
			Eval: Tanh[float64], Eval32: Tanh[float32], Ref: math.Tanh,
		},
	}
}
