package lane

import "math"

// Float is the set of lane element types.
type Float interface {
	~float32 | ~float64
}

// Vec is a fixed-width vector of Width floating-point lanes.
type Vec[T Float] [Width]T

// Splat returns a Vec with every lane set to x.
func Splat[T Float](x T) Vec[T] {
	var v Vec[T]
	for i := range v {
		v[i] = x
	}

	return v
}

// Load copies the first Width values of src into a Vec.
// It panics if len(src) < Width.
func Load[T Float](src []T) Vec[T] {
	var v Vec[T]
	copy(v[:], src[:Width])

	return v
}

// FromFunc builds a Vec by evaluating f for every lane index.
func FromFunc[T Float](f func(i int) T) Vec[T] {
	var v Vec[T]
	for i := range v {
		v[i] = f(i)
	}

	return v
}

// Store copies the lanes of v into dst. It panics if len(dst) < Width.
func (v Vec[T]) Store(dst []T) {
	copy(dst[:Width], v[:])
}

// Add returns v + o.
func (v Vec[T]) Add(o Vec[T]) Vec[T] {
	for i := range v {
		v[i] += o[i]
	}

	return v
}

// Sub returns v - o.
func (v Vec[T]) Sub(o Vec[T]) Vec[T] {
	for i := range v {
		v[i] -= o[i]
	}

	return v
}

// Mul returns v * o.
func (v Vec[T]) Mul(o Vec[T]) Vec[T] {
	for i := range v {
		v[i] *= o[i]
	}

	return v
}

// Div returns v / o.
func (v Vec[T]) Div(o Vec[T]) Vec[T] {
	for i := range v {
		v[i] /= o[i]
	}

	return v
}

// MulAdd returns v*m + a.
func (v Vec[T]) MulAdd(m, a Vec[T]) Vec[T] {
	for i := range v {
		v[i] = v[i]*m[i] + a[i]
	}

	return v
}

// Scale returns v * s.
func (v Vec[T]) Scale(s T) Vec[T] {
	for i := range v {
		v[i] *= s
	}

	return v
}

// AddScalar returns v + s.
func (v Vec[T]) AddScalar(s T) Vec[T] {
	for i := range v {
		v[i] += s
	}

	return v
}

// Neg returns -v.
func (v Vec[T]) Neg() Vec[T] {
	for i := range v {
		v[i] = -v[i]
	}

	return v
}

// Abs clears the sign bit of every lane.
func (v Vec[T]) Abs() Vec[T] {
	for i := range v {
		v[i] = T(math.Abs(float64(v[i])))
	}

	return v
}

// Recip returns 1 / v.
func (v Vec[T]) Recip() Vec[T] {
	for i := range v {
		v[i] = 1 / v[i]
	}

	return v
}

// Sqrt returns the square root of every lane.
func (v Vec[T]) Sqrt() Vec[T] {
	for i := range v {
		v[i] = T(math.Sqrt(float64(v[i])))
	}

	return v
}

// Floor rounds every lane toward negative infinity.
func (v Vec[T]) Floor() Vec[T] {
	for i := range v {
		v[i] = T(math.Floor(float64(v[i])))
	}

	return v
}

// Trunc rounds every lane toward zero.
func (v Vec[T]) Trunc() Vec[T] {
	for i := range v {
		v[i] = T(math.Trunc(float64(v[i])))
	}

	return v
}

// Round rounds every lane to the nearest integer, ties to even.
func (v Vec[T]) Round() Vec[T] {
	for i := range v {
		v[i] = T(math.RoundToEven(float64(v[i])))
	}

	return v
}

// Min returns the lanewise minimum. Where a lane of v is NaN the lane
// of o is returned.
func (v Vec[T]) Min(o Vec[T]) Vec[T] {
	return Select(v.Lt(o), v, o)
}

// Max returns the lanewise maximum. Where a lane of v is NaN the lane
// of o is returned.
func (v Vec[T]) Max(o Vec[T]) Vec[T] {
	return Select(v.Gt(o), v, o)
}

// Clamp limits every lane to [lo, hi]. NaN lanes become lo.
func (v Vec[T]) Clamp(lo, hi Vec[T]) Vec[T] {
	return v.Max(lo).Min(hi)
}

// CopySign returns |v| with the sign of s.
func (v Vec[T]) CopySign(s Vec[T]) Vec[T] {
	for i := range v {
		v[i] = T(math.Copysign(float64(v[i]), float64(s[i])))
	}

	return v
}

// FlushDenormals zeroes lanes whose magnitude is below 1e-30.
func (v Vec[T]) FlushDenormals() Vec[T] {
	return Select(v.Abs().Lt(Splat(T(1e-30))), Vec[T]{}, v)
}

// IsFinite reports the lanes that are neither NaN nor infinite.
func (v Vec[T]) IsFinite() Mask {
	// x-x is 0 for finite x and NaN otherwise.
	return v.Sub(v).Eq(Vec[T]{})
}

// Sum adds all lanes.
func (v Vec[T]) Sum() T {
	// Pairwise fold keeps the error growth logarithmic in Width.
	for n := Width / 2; n > 0; n /= 2 {
		for i := range n {
			v[i] += v[i+n]
		}
	}

	return v[0]
}

// ReduceMax returns the largest lane.
func (v Vec[T]) ReduceMax() T {
	m := v[0]
	for _, x := range v[1:] {
		m = max(m, x)
	}

	return m
}

// ReduceMin returns the smallest lane.
func (v Vec[T]) ReduceMin() T {
	m := v[0]
	for _, x := range v[1:] {
		m = min(m, x)
	}

	return m
}

// Convert changes the element type of every lane.
func Convert[U, T Float](v Vec[T]) Vec[U] {
	var out Vec[U]
	for i := range v {
		out[i] = U(v[i])
	}

	return out
}
