package lane

import "math"

// I64 is a vector of signed integer lanes used for range-reduction
// bookkeeping (quadrants, exponents).
type I64 [Width]int64

const (
	expBias   = 1023
	expShift  = 52
	mantMask  = 1<<expShift - 1
	expFilter = 0x7ff
)

// SplatI64 returns an I64 with every lane set to x.
func SplatI64(x int64) I64 {
	var k I64
	for i := range k {
		k[i] = x
	}

	return k
}

// ToI64 truncates every lane of v toward zero. Lanes must lie within the
// int64 range; callers clamp first.
func ToI64[T Float](v Vec[T]) I64 {
	var k I64
	for i := range k {
		k[i] = int64(v[i])
	}

	return k
}

// Float converts every lane to float64.
func (k I64) Float() Vec[float64] {
	var v Vec[float64]
	for i := range v {
		v[i] = float64(k[i])
	}

	return v
}

// Add returns k + o.
func (k I64) Add(o I64) I64 {
	for i := range k {
		k[i] += o[i]
	}

	return k
}

// And returns k & o.
func (k I64) And(o I64) I64 {
	for i := range k {
		k[i] &= o[i]
	}

	return k
}

// Eq reports the lanes where k == o.
func (k I64) Eq(o I64) Mask {
	var m Mask
	for i := range m {
		m[i] = maskOf(k[i] == o[i])
	}

	return m
}

// Pow2i returns 2^k per lane by writing k directly into the exponent
// field. k must lie in [-1022, 1023].
func Pow2i(k I64) Vec[float64] {
	var v Vec[float64]
	for i := range v {
		v[i] = math.Float64frombits(uint64(k[i]+expBias) << expShift)
	}

	return v
}

// Frexp splits every lane of a positive, normal v into a mantissa in
// [1, 2) and an unbiased binary exponent so that v = m * 2^e.
func Frexp(v Vec[float64]) (Vec[float64], I64) {
	var (
		m Vec[float64]
		e I64
	)

	for i := range v {
		bits := math.Float64bits(v[i])
		e[i] = int64((bits>>expShift)&expFilter) - expBias
		m[i] = math.Float64frombits(bits&mantMask | expBias<<expShift)
	}

	return m, e
}
