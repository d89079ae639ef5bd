package smooth

import (
	"github.com/cwbudde/algo-lanedsp/dsp/fastmath"
	"github.com/cwbudde/algo-lanedsp/dsp/lane"
)

// Log ramps each lane by a constant ratio per sample, so the value moves
// linearly on a logarithmic scale. Values must be finite and at least
// MinLog.
type Log[T lane.Float] struct {
	current, target lane.Vec[T]
	ratio           lane.Vec[T]
	lo, hi          lane.Vec[T]

	remaining int
}

// NewLog returns a settled Log smoother holding initial. Every lane of
// initial must be finite and at least MinLog.
func NewLog[T lane.Float](initial lane.Vec[T]) (*Log[T], error) {
	if err := validatePositive("log", "New", initial, lane.MaskAll()); err != nil {
		return nil, err
	}

	s := &Log[T]{}
	s.jump(initial)

	return s, nil
}

// SetTarget starts a geometric ramp from the current value to target.
// It fails with ErrNonPositive if any lane of target is not positive and
// with ErrBelowMinLog if one is positive but under MinLog.
func (s *Log[T]) SetTarget(target lane.Vec[T], samples int) error {
	if err := validateTarget("log", target, samples); err != nil {
		return err
	}

	if err := validatePositive("log", "SetTarget", target, lane.MaskAll()); err != nil {
		return err
	}

	s.target = target
	s.remaining = samples

	if samples == 0 {
		s.jump(target)

		return nil
	}

	// ratio = (target/current)^(1/samples), via logs to avoid overflowing
	// the quotient.
	steps := fastmath.Log2(target).Sub(fastmath.Log2(s.current)).Scale(1 / T(samples))
	s.ratio = fastmath.Exp2(steps)
	s.lo = s.current.Min(target)
	s.hi = s.current.Max(target)

	return nil
}

func (s *Log[T]) jump(v lane.Vec[T]) {
	s.current, s.target, s.lo, s.hi = v, v, v, v
	s.ratio = lane.Splat(T(1))
	s.remaining = 0
}

// Tick advances the ramp by one sample.
func (s *Log[T]) Tick() lane.Vec[T] {
	switch s.remaining {
	case 0:
	case 1:
		s.current = s.target
		s.remaining = 0
	default:
		s.current = s.current.Mul(s.ratio).Clamp(s.lo, s.hi)
		s.remaining--
	}

	return s.current
}

// Advance skips n samples, multiplying by ratio^n in one step.
func (s *Log[T]) Advance(n int) {
	if n <= 0 {
		return
	}

	if n >= s.remaining {
		s.jump(s.target)

		return
	}

	s.current = s.current.Mul(fastmath.Pow(s.ratio, lane.Splat(T(n)))).Clamp(s.lo, s.hi)
	s.remaining -= n
}

// Scale multiplies the current value and target by a positive factor.
// The ratio is unchanged. Both scaled values must stay in range.
func (s *Log[T]) Scale(factor T) error {
	if err := validatePositive("log", "Scale", s.current.Scale(factor), lane.MaskAll()); err != nil {
		return err
	}

	if err := validatePositive("log", "Scale", s.target.Scale(factor), lane.MaskAll()); err != nil {
		return err
	}

	s.current = s.current.Scale(factor)
	s.target = s.target.Scale(factor)
	s.lo = s.lo.Scale(factor)
	s.hi = s.hi.Scale(factor)

	return nil
}

// SetLanes jumps the lanes selected by m to values without touching the
// others. Selected lanes must be finite and at least MinLog.
func (s *Log[T]) SetLanes(values lane.Vec[T], m lane.Mask) error {
	if err := validatePositive("log", "SetLanes", values, m); err != nil {
		return err
	}

	s.current = lane.Select(m, values, s.current)
	s.target = lane.Select(m, values, s.target)
	s.ratio = lane.Select(m, lane.Splat(T(1)), s.ratio)
	s.lo = lane.Select(m, values, s.lo)
	s.hi = lane.Select(m, values, s.hi)

	return nil
}

// Reset jumps to value and cancels any ramp.
func (s *Log[T]) Reset(value lane.Vec[T]) error {
	if err := validatePositive("log", "Reset", value, lane.MaskAll()); err != nil {
		return err
	}

	s.jump(value)

	return nil
}

// Ratio returns the per-sample multiplier of the active ramp.
func (s *Log[T]) Ratio() lane.Vec[T] { return s.ratio }

// Current returns the value of the most recent tick.
func (s *Log[T]) Current() lane.Vec[T] { return s.current }

// Target returns the ramp end value.
func (s *Log[T]) Target() lane.Vec[T] { return s.target }

// Remaining returns the ticks left until the target is reached.
func (s *Log[T]) Remaining() int { return s.remaining }

// Settled reports whether the ramp has finished.
func (s *Log[T]) Settled() bool { return s.remaining == 0 }
