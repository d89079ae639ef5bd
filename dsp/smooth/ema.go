package smooth

import (
	"fmt"
	"math"

	approx "github.com/meko-christian/algo-approx"

	"github.com/cwbudde/algo-lanedsp/dsp/core"
	"github.com/cwbudde/algo-lanedsp/dsp/lane"
)

// SettleLevel is the fraction of the initial distance an EMA ramp has left
// when its duration expires and it snaps to the target (-60 dB).
const SettleLevel = 1e-3

// Alpha returns the per-sample EMA coefficient for a time constant of tau
// samples, 1 - e^(-1/tau). After tau samples a step has decayed to 1/e.
func Alpha(tau float64) (float64, error) {
	if !(tau > 0) || math.IsInf(tau, 0) {
		return 0, core.LogRejected("ema", "Alpha", fmt.Errorf("smooth: ema: %w (%v)", ErrTimeConstant, tau))
	}

	a := 1 - approx.FastExp(-1/tau)

	return core.Clamp(a, math.SmallestNonzeroFloat64, 1), nil
}

// EMA is a one-pole exponential smoother:
//
//	current += alpha * (target - current)
//
// SetTarget chooses alpha so that the remaining distance falls to
// SettleLevel over the requested duration, then snaps exactly to the
// target when the duration expires.
type EMA[T lane.Float] struct {
	current, target lane.Vec[T]
	alpha           T
	remaining       int
}

// NewEMA returns a settled EMA smoother holding initial.
func NewEMA[T lane.Float](initial lane.Vec[T]) *EMA[T] {
	return &EMA[T]{current: initial, target: initial, alpha: 1}
}

// SetTarget starts an exponential approach to target lasting samples
// ticks.
func (s *EMA[T]) SetTarget(target lane.Vec[T], samples int) error {
	if err := validateTarget("ema", target, samples); err != nil {
		return err
	}

	if samples == 0 {
		s.current, s.target = target, target
		s.alpha, s.remaining = 1, 0

		return nil
	}

	// (1-alpha)^samples = SettleLevel  =>  tau = samples / ln(1/SettleLevel)
	alpha, err := Alpha(float64(samples) / -math.Log(SettleLevel))
	if err != nil {
		return err
	}

	s.target = target
	s.alpha = T(alpha)
	s.remaining = samples

	return nil
}

// SetTimeConstant sets alpha from a time constant in samples and keeps
// approaching the current target. The ramp snaps after the same number of
// samples it would take SetTarget to reach SettleLevel.
func (s *EMA[T]) SetTimeConstant(tau float64) error {
	alpha, err := Alpha(tau)
	if err != nil {
		return err
	}

	s.alpha = T(alpha)
	s.remaining = int(math.Min(math.Ceil(tau*-math.Log(SettleLevel)), math.MaxInt32))

	return nil
}

// Tick advances the approach by one sample.
func (s *EMA[T]) Tick() lane.Vec[T] {
	switch s.remaining {
	case 0:
	case 1:
		s.current = s.target
		s.remaining = 0
	default:
		s.current = s.target.Sub(s.current).Scale(s.alpha).Add(s.current)
		s.remaining--
	}

	return s.current
}

// Reset jumps to value and cancels any ramp.
func (s *EMA[T]) Reset(value lane.Vec[T]) error {
	if err := validateTarget("ema", value, 0); err != nil {
		return err
	}

	s.current, s.target = value, value
	s.remaining = 0

	return nil
}

// Alpha returns the coefficient of the active approach.
func (s *EMA[T]) Alpha() T { return s.alpha }

// Current returns the value of the most recent tick.
func (s *EMA[T]) Current() lane.Vec[T] { return s.current }

// Target returns the value being approached.
func (s *EMA[T]) Target() lane.Vec[T] { return s.target }

// Remaining returns the ticks left until the snap to target.
func (s *EMA[T]) Remaining() int { return s.remaining }

// Settled reports whether the approach has finished.
func (s *EMA[T]) Settled() bool { return s.remaining == 0 }
