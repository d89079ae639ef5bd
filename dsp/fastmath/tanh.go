package fastmath

import "github.com/cwbudde/algo-lanedsp/dsp/lane"

// tanh(20) rounds to 1 in float64.
const tanhClamp = 40

func tanh(x vec) vec {
	e := exp(x.Abs().Scale(2).Min(splat(tanhClamp)))
	t := splat(1).Sub(splat(2).Div(e.AddScalar(1)))

	return t.CopySign(x)
}

// Tanh returns tanh(x) per lane. It is accurate for every real input and
// saturates to ±1.
func Tanh[T lane.Float](x lane.Vec[T]) lane.Vec[T] {
	return narrow[T](tanh(widen(x)))
}

// Sigmoid returns the logistic function 1/(1+e^-x) per lane, computed as
// (1+tanh(x/2))/2.
func Sigmoid[T lane.Float](x lane.Vec[T]) lane.Vec[T] {
	return narrow[T](tanh(widen(x).Scale(0.5)).AddScalar(1).Scale(0.5))
}
