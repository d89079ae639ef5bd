package fastmath

import (
	"math"
	"unsafe"

	"github.com/cwbudde/algo-lanedsp/dsp/lane"
)

type vec = lane.Vec[float64]

func splat(x float64) vec { return lane.Splat(x) }

// maxFinite returns the largest finite value representable in T.
func maxFinite[T lane.Float]() float64 {
	var z T
	if unsafe.Sizeof(z) == 4 {
		return math.MaxFloat32
	}

	return math.MaxFloat64
}

// narrow converts a float64 result to T, saturating at the largest finite
// value of T instead of overflowing to infinity.
func narrow[T lane.Float](v vec) lane.Vec[T] {
	m := maxFinite[T]()

	return lane.Convert[T](v.Clamp(splat(-m), splat(m)))
}

func widen[T lane.Float](v lane.Vec[T]) vec {
	return lane.Convert[float64](v)
}

// horner evaluates c[0] + x*(c[1] + x*(c[2] + ...)).
func horner(x vec, c []float64) vec {
	acc := splat(c[len(c)-1])
	for i := len(c) - 2; i >= 0; i-- {
		acc = acc.MulAdd(x, splat(c[i]))
	}

	return acc
}

// Lerp returns a + (b-a)*t per lane.
func Lerp[T lane.Float](a, b, t lane.Vec[T]) lane.Vec[T] {
	return b.Sub(a).MulAdd(t, a)
}
