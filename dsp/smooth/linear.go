package smooth

import (
	"fmt"

	"github.com/cwbudde/algo-lanedsp/dsp/core"
	"github.com/cwbudde/algo-lanedsp/dsp/lane"
)

// Linear ramps each lane by a constant increment per sample.
type Linear[T lane.Float] struct {
	current, target lane.Vec[T]
	inc             lane.Vec[T]

	// lo and hi bound the ramp so accumulated rounding cannot overshoot.
	lo, hi lane.Vec[T]

	remaining int
}

// NewLinear returns a settled Linear smoother holding initial.
func NewLinear[T lane.Float](initial lane.Vec[T]) *Linear[T] {
	return &Linear[T]{current: initial, target: initial, lo: initial, hi: initial}
}

// SetTarget starts a linear ramp from the current value to target.
func (s *Linear[T]) SetTarget(target lane.Vec[T], samples int) error {
	if err := validateTarget("linear", target, samples); err != nil {
		return err
	}

	s.target = target
	s.remaining = samples

	if samples == 0 {
		s.jump(target)

		return nil
	}

	s.inc = target.Sub(s.current).Scale(1 / T(samples))
	s.lo = s.current.Min(target)
	s.hi = s.current.Max(target)

	return nil
}

func (s *Linear[T]) jump(v lane.Vec[T]) {
	s.current, s.target, s.lo, s.hi = v, v, v, v
	s.inc = lane.Vec[T]{}
	s.remaining = 0
}

// Tick advances the ramp by one sample.
func (s *Linear[T]) Tick() lane.Vec[T] {
	switch s.remaining {
	case 0:
	case 1:
		s.current = s.target
		s.remaining = 0
	default:
		s.current = s.current.Add(s.inc).Clamp(s.lo, s.hi)
		s.remaining--
	}

	return s.current
}

// Advance skips n samples in constant time.
func (s *Linear[T]) Advance(n int) {
	if n <= 0 {
		return
	}

	if n >= s.remaining {
		s.jump(s.target)

		return
	}

	s.current = s.inc.Scale(T(n)).Add(s.current).Clamp(s.lo, s.hi)
	s.remaining -= n
}

// Scale multiplies the current value, target and increment by factor,
// e.g. to follow a unit change mid-ramp.
func (s *Linear[T]) Scale(factor T) error {
	if !lane.Splat(factor).IsFinite().All() {
		return core.LogRejected("linear", "Scale", fmt.Errorf("smooth: linear: scale: %w", ErrNonFinite))
	}

	s.current = s.current.Scale(factor)
	s.target = s.target.Scale(factor)
	s.inc = s.inc.Scale(factor)
	lo, hi := s.lo.Scale(factor), s.hi.Scale(factor)
	s.lo, s.hi = lo.Min(hi), lo.Max(hi)

	return nil
}

// SetLanes jumps the lanes selected by m to values without touching the
// others. Selected lanes stop ramping; the rest keep their ramp.
func (s *Linear[T]) SetLanes(values lane.Vec[T], m lane.Mask) error {
	if !values.IsFinite().Or(m.Not()).All() {
		return core.LogRejected("linear", "SetLanes", fmt.Errorf("smooth: linear: lanes: %w", ErrNonFinite))
	}

	s.current = lane.Select(m, values, s.current)
	s.target = lane.Select(m, values, s.target)
	s.inc = lane.Select(m, lane.Vec[T]{}, s.inc)
	s.lo = lane.Select(m, values, s.lo)
	s.hi = lane.Select(m, values, s.hi)

	return nil
}

// Reset jumps to value and cancels any ramp.
func (s *Linear[T]) Reset(value lane.Vec[T]) error {
	if err := validateTarget("linear", value, 0); err != nil {
		return err
	}

	s.jump(value)

	return nil
}

// Current returns the value of the most recent tick.
func (s *Linear[T]) Current() lane.Vec[T] { return s.current }

// Target returns the ramp end value.
func (s *Linear[T]) Target() lane.Vec[T] { return s.target }

// Remaining returns the ticks left until the target is reached.
func (s *Linear[T]) Remaining() int { return s.remaining }

// Settled reports whether the ramp has finished.
func (s *Linear[T]) Settled() bool { return s.remaining == 0 }
