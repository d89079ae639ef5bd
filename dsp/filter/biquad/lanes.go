package biquad

import (
	"fmt"

	"github.com/cwbudde/algo-lanedsp/dsp/lane"
)

// Lanes runs one Direct Form II Transposed section per lane. Each lane has
// its own coefficients and state.
type Lanes[T lane.Float] struct {
	b0, b1, b2 lane.Vec[T]
	a1, a2     lane.Vec[T]

	d0, d1 lane.Vec[T]
}

// NewLanes returns a section with c in every lane and zero state.
func NewLanes[T lane.Float](c Coefficients) *Lanes[T] {
	s := &Lanes[T]{}
	s.SetAll(c)

	return s
}

// SetAll loads c into every lane. State is kept.
func (s *Lanes[T]) SetAll(c Coefficients) {
	s.b0 = lane.Splat(T(c.B0))
	s.b1 = lane.Splat(T(c.B1))
	s.b2 = lane.Splat(T(c.B2))
	s.a1 = lane.Splat(T(c.A1))
	s.a2 = lane.Splat(T(c.A2))
}

// SetLane loads c into lane l. State is kept.
func (s *Lanes[T]) SetLane(l int, c Coefficients) error {
	if l < 0 || l >= lane.Width {
		return fmt.Errorf("biquad: lane %d out of range [0, %d)", l, lane.Width)
	}

	s.b0[l], s.b1[l], s.b2[l] = T(c.B0), T(c.B1), T(c.B2)
	s.a1[l], s.a2[l] = T(c.A1), T(c.A2)

	return nil
}

// Coefficients returns the coefficients of lane l. Like indexing a
// lane.Vec, it panics unless 0 <= l < lane.Width.
func (s *Lanes[T]) Coefficients(l int) Coefficients {
	return Coefficients{
		B0: float64(s.b0[l]), B1: float64(s.b1[l]), B2: float64(s.b2[l]),
		A1: float64(s.a1[l]), A2: float64(s.a2[l]),
	}
}

// Process filters one sample per lane.
func (s *Lanes[T]) Process(x lane.Vec[T]) lane.Vec[T] {
	y := s.b0.MulAdd(x, s.d0)
	s.d0 = s.b1.Mul(x).Sub(s.a1.Mul(y)).Add(s.d1)
	s.d1 = s.b2.Mul(x).Sub(s.a2.Mul(y))

	return y
}

// ProcessBlock filters buf in place.
func (s *Lanes[T]) ProcessBlock(buf []lane.Vec[T]) {
	for i := range buf {
		buf[i] = s.Process(buf[i])
	}
}

// Reset clears the delay lines of every lane.
func (s *Lanes[T]) Reset() {
	s.d0, s.d1 = lane.Vec[T]{}, lane.Vec[T]{}
}

// State returns the delay lines [d0, d1].
func (s *Lanes[T]) State() [2]lane.Vec[T] {
	return [2]lane.Vec[T]{s.d0, s.d1}
}

// SetState restores delay lines saved with State.
func (s *Lanes[T]) SetState(state [2]lane.Vec[T]) {
	s.d0, s.d1 = state[0], state[1]
}
