package lane

import "math"

// Mask selects lanes. Each lane is either all ones (set) or zero.
type Mask [Width]uint64

const allOnes = ^uint64(0)

// maskOf lowers to a conditional move, not a branch.
func maskOf(b bool) uint64 {
	var m uint64
	if b {
		m = allOnes
	}

	return m
}

// MaskFromBools builds a Mask from a boolean per lane.
func MaskFromBools(b [Width]bool) Mask {
	var m Mask
	for i := range m {
		m[i] = maskOf(b[i])
	}

	return m
}

// MaskAll returns a Mask with every lane set.
func MaskAll() Mask {
	var m Mask
	for i := range m {
		m[i] = allOnes
	}

	return m
}

// And returns m & o.
func (m Mask) And(o Mask) Mask {
	for i := range m {
		m[i] &= o[i]
	}

	return m
}

// Or returns m | o.
func (m Mask) Or(o Mask) Mask {
	for i := range m {
		m[i] |= o[i]
	}

	return m
}

// Xor returns m ^ o.
func (m Mask) Xor(o Mask) Mask {
	for i := range m {
		m[i] ^= o[i]
	}

	return m
}

// AndNot returns m &^ o.
func (m Mask) AndNot(o Mask) Mask {
	for i := range m {
		m[i] &^= o[i]
	}

	return m
}

// Not inverts every lane.
func (m Mask) Not() Mask {
	for i := range m {
		m[i] = ^m[i]
	}

	return m
}

// Any reports whether at least one lane is set.
func (m Mask) Any() bool {
	var acc uint64
	for _, x := range m {
		acc |= x
	}

	return acc != 0
}

// All reports whether every lane is set.
func (m Mask) All() bool {
	acc := allOnes
	for _, x := range m {
		acc &= x
	}

	return acc != 0
}

// Count returns the number of set lanes.
func (m Mask) Count() int {
	n := 0
	for _, x := range m {
		n += int(x & 1)
	}

	return n
}

// Select returns a where m is set and b elsewhere.
func Select[T Float](m Mask, a, b Vec[T]) Vec[T] {
	var out Vec[T]
	for i := range out {
		ab := math.Float64bits(float64(a[i]))
		bb := math.Float64bits(float64(b[i]))
		out[i] = T(math.Float64frombits(bb ^ ((ab ^ bb) & m[i])))
	}

	return out
}

// Eq reports the lanes where v == o.
func (v Vec[T]) Eq(o Vec[T]) Mask {
	var m Mask
	for i := range m {
		m[i] = maskOf(v[i] == o[i])
	}

	return m
}

// Ne reports the lanes where v != o. NaN lanes are always set.
func (v Vec[T]) Ne(o Vec[T]) Mask {
	var m Mask
	for i := range m {
		m[i] = maskOf(v[i] != o[i])
	}

	return m
}

// Lt reports the lanes where v < o.
func (v Vec[T]) Lt(o Vec[T]) Mask {
	var m Mask
	for i := range m {
		m[i] = maskOf(v[i] < o[i])
	}

	return m
}

// Le reports the lanes where v <= o.
func (v Vec[T]) Le(o Vec[T]) Mask {
	var m Mask
	for i := range m {
		m[i] = maskOf(v[i] <= o[i])
	}

	return m
}

// Gt reports the lanes where v > o.
func (v Vec[T]) Gt(o Vec[T]) Mask {
	var m Mask
	for i := range m {
		m[i] = maskOf(v[i] > o[i])
	}

	return m
}

// Ge reports the lanes where v >= o.
func (v Vec[T]) Ge(o Vec[T]) Mask {
	var m Mask
	for i := range m {
		m[i] = maskOf(v[i] >= o[i])
	}

	return m
}
