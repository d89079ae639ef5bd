// Package smooth provides sample-accurate parameter smoothers.
//
// A smoother ramps a lane vector of parameters from its current value to a
// target over a fixed number of samples. All lanes of one instance share
// the ramp duration; parameters that need different durations belong in
// separate instances.
//
// Three variants are provided:
//
//   - Linear adds a constant increment per sample.
//   - Log multiplies by a constant ratio per sample, for frequencies and
//     gains that should move evenly on a logarithmic scale.
//   - EMA moves a fixed fraction of the remaining distance per sample.
//
// Every variant lands exactly on the target after the requested number of
// ticks and stays there. Configuration methods validate their input and
// leave the smoother untouched on error; Tick never fails, never
// allocates and runs in constant time.
package smooth

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-lanedsp/dsp/core"
	"github.com/cwbudde/algo-lanedsp/dsp/lane"
)

// MinLog is the smallest value a Log smoother accepts, the smallest normal
// float32. The fast logarithm saturates below it, so a ramp starting or
// ending lower would hold flat and then jump.
const MinLog = 0x1p-126

var (
	// ErrNegativeDuration is returned for ramp lengths below zero.
	ErrNegativeDuration = errors.New("negative ramp duration")
	// ErrNonFinite is returned when a target or factor is NaN or infinite.
	ErrNonFinite = errors.New("non-finite value")
	// ErrNonPositive is returned when a logarithmic smoother would have to
	// ramp to or through zero.
	ErrNonPositive = errors.New("value must be strictly positive")
	// ErrBelowMinLog is returned for positive values under MinLog.
	ErrBelowMinLog = errors.New("value below the logarithmic smoother range")
	// ErrTimeConstant is returned for an EMA time constant that is not
	// positive and finite.
	ErrTimeConstant = errors.New("time constant must be positive and finite")
)

// Smoother is the behaviour shared by Linear, Log and EMA.
type Smoother[T lane.Float] interface {
	// SetTarget starts a ramp from the current value to target lasting
	// samples ticks. samples == 0 jumps immediately.
	SetTarget(target lane.Vec[T], samples int) error
	// Tick advances one sample and returns the new current value.
	Tick() lane.Vec[T]
	// Current returns the value of the most recent tick.
	Current() lane.Vec[T]
	// Target returns the value the ramp ends at.
	Target() lane.Vec[T]
	// Remaining returns the number of ticks until the target is reached.
	Remaining() int
	// Settled reports whether the ramp has finished.
	Settled() bool
	// Reset jumps to value and cancels any ramp.
	Reset(value lane.Vec[T]) error
}

var (
	_ Smoother[float32] = (*Linear[float32])(nil)
	_ Smoother[float64] = (*Log[float64])(nil)
	_ Smoother[float64] = (*EMA[float64])(nil)
)

func validateTarget[T lane.Float](component string, target lane.Vec[T], samples int) error {
	if samples < 0 {
		return core.LogRejected(component, "SetTarget",
			fmt.Errorf("smooth: %s: %w (%d samples)", component, ErrNegativeDuration, samples))
	}

	if !target.IsFinite().All() {
		return core.LogRejected(component, "SetTarget",
			fmt.Errorf("smooth: %s: target: %w", component, ErrNonFinite))
	}

	return nil
}

func validatePositive[T lane.Float](component, op string, v lane.Vec[T], m lane.Mask) error {
	skip := m.Not()

	switch {
	case !v.IsFinite().Or(skip).All():
		return core.LogRejected(component, op, fmt.Errorf("smooth: %s: %s: %w", component, op, ErrNonFinite))
	case !v.Gt(lane.Vec[T]{}).Or(skip).All():
		return core.LogRejected(component, op, fmt.Errorf("smooth: %s: %s: %w", component, op, ErrNonPositive))
	case !v.Ge(lane.Splat(T(MinLog))).Or(skip).All():
		return core.LogRejected(component, op,
			fmt.Errorf("smooth: %s: %s: %w (%g): %v", component, op, ErrBelowMinLog, MinLog, v))
	}

	return nil
}

// Fill ticks s once per element of dst and stores the results.
func Fill[T lane.Float](s Smoother[T], dst []lane.Vec[T]) {
	for i := range dst {
		dst[i] = s.Tick()
	}
}
