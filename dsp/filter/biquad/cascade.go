package biquad

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-lanedsp/dsp/lane"
)

// ErrStages is returned when a per-stage argument does not match the
// number of cascade stages.
var ErrStages = errors.New("stage count mismatch")

// Cascade runs [Lanes] stages in series after a per-lane input gain.
// Higher-order designs built from second-order sections run on it, one
// voice or channel per lane.
type Cascade[T lane.Float] struct {
	stages []Lanes[T]
	gain   lane.Vec[T]
}

// NewCascade returns a cascade with one stage per coefficient set, loaded
// into every lane, and unity gain.
func NewCascade[T lane.Float](coeffs ...Coefficients) *Cascade[T] {
	c := &Cascade[T]{
		stages: make([]Lanes[T], len(coeffs)),
		gain:   lane.Splat(T(1)),
	}

	for i := range coeffs {
		c.stages[i].SetAll(coeffs[i])
	}

	return c
}

// Len returns the number of stages.
func (c *Cascade[T]) Len() int { return len(c.stages) }

// Order returns the filter order.
func (c *Cascade[T]) Order() int { return 2 * len(c.stages) }

// Stage returns stage i for direct coefficient access.
func (c *Cascade[T]) Stage(i int) *Lanes[T] { return &c.stages[i] }

// Gain returns the input gain.
func (c *Cascade[T]) Gain() lane.Vec[T] { return c.gain }

// SetGain sets the input gain of every lane.
func (c *Cascade[T]) SetGain(g lane.Vec[T]) { c.gain = g }

// SetLane loads one coefficient set per stage into lane l. State is kept.
// On error nothing changes.
func (c *Cascade[T]) SetLane(l int, coeffs []Coefficients) error {
	if l < 0 || l >= lane.Width {
		return fmt.Errorf("biquad: lane %d out of range [0, %d)", l, lane.Width)
	}

	if len(coeffs) != len(c.stages) {
		return fmt.Errorf("biquad: %w: got %d, have %d", ErrStages, len(coeffs), len(c.stages))
	}

	for i := range c.stages {
		_ = c.stages[i].SetLane(l, coeffs[i])
	}

	return nil
}

// Process filters one sample per lane.
func (c *Cascade[T]) Process(x lane.Vec[T]) lane.Vec[T] {
	x = x.Mul(c.gain)
	for i := range c.stages {
		x = c.stages[i].Process(x)
	}

	return x
}

// ProcessBlock filters buf in place, stage by stage.
func (c *Cascade[T]) ProcessBlock(buf []lane.Vec[T]) {
	for i := range buf {
		buf[i] = buf[i].Mul(c.gain)
	}

	for i := range c.stages {
		c.stages[i].ProcessBlock(buf)
	}
}

// Reset clears every stage.
func (c *Cascade[T]) Reset() {
	for i := range c.stages {
		c.stages[i].Reset()
	}
}

// State returns a copy of every stage's delay lines.
func (c *Cascade[T]) State() [][2]lane.Vec[T] {
	st := make([][2]lane.Vec[T], len(c.stages))
	for i := range c.stages {
		st[i] = c.stages[i].State()
	}

	return st
}

// SetState restores a value returned by State.
func (c *Cascade[T]) SetState(st [][2]lane.Vec[T]) error {
	if len(st) != len(c.stages) {
		return fmt.Errorf("biquad: %w: got %d, have %d", ErrStages, len(st), len(c.stages))
	}

	for i := range c.stages {
		c.stages[i].SetState(st[i])
	}

	return nil
}
