package lane

import (
	"errors"
	"fmt"
)

var errNotBijection = errors.New("lane: permutation is not a bijection")

// Perm is a validated bijection on lane indices. Lane i of Permute(v, p)
// is lane p[i] of v.
type Perm [Width]uint8

// NewPerm validates idx and returns it as a Perm. idx must contain every
// lane index exactly once.
func NewPerm(idx []int) (Perm, error) {
	var p Perm
	if len(idx) != Width {
		return p, fmt.Errorf("%w: got %d indices, want %d", errNotBijection, len(idx), Width)
	}

	var seen [Width]bool
	for i, j := range idx {
		if j < 0 || j >= Width {
			return p, fmt.Errorf("%w: index %d out of range at %d", errNotBijection, j, i)
		}

		if seen[j] {
			return p, fmt.Errorf("%w: index %d repeated", errNotBijection, j)
		}

		seen[j] = true
		p[i] = uint8(j)
	}

	return p, nil
}

// MustPerm is like NewPerm but panics on invalid input. Use it for
// package-level tables.
func MustPerm(idx ...int) Perm {
	p, err := NewPerm(idx)
	if err != nil {
		panic(err)
	}

	return p
}

// IdentityPerm returns the permutation that leaves every lane in place.
func IdentityPerm() Perm {
	var p Perm
	for i := range p {
		p[i] = uint8(i)
	}

	return p
}

// Inverse returns q such that Permute(Permute(v, p), q) == v.
func (p Perm) Inverse() Perm {
	var q Perm
	for i, j := range p {
		q[j] = uint8(i)
	}

	return q
}

// Compose returns the permutation equivalent to applying p, then q.
func (p Perm) Compose(q Perm) Perm {
	var r Perm
	for i := range r {
		r[i] = p[q[i]]
	}

	return r
}

// Permute reorders the lanes of v according to p.
func Permute[T Float](v Vec[T], p Perm) Vec[T] {
	var out Vec[T]
	for i, j := range p {
		out[i] = v[j]
	}

	return out
}
