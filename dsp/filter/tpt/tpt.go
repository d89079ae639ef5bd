// Package tpt provides the trapezoidal integrator that the topology
// preserving (zero-delay feedback) filters are built from.
package tpt

import "github.com/cwbudde/algo-lanedsp/dsp/lane"

// Integrator is a transposed direct form II trapezoidal integrator. The
// caller scales its input by the prewarped gain g = tan(w/2):
//
//	y = x + s
//	s = y + x
//
// The state holds twice the contribution of the previous half sample, so
// no 0.5 factor appears per tick.
type Integrator[T lane.Float] struct {
	s lane.Vec[T]
}

// Tick integrates x and returns the output.
func (in *Integrator[T]) Tick(x lane.Vec[T]) lane.Vec[T] {
	y := x.Add(in.s)
	in.s = y.Add(x)

	return y
}

// State returns the stored state.
func (in *Integrator[T]) State() lane.Vec[T] { return in.s }

// SetState overwrites the stored state.
func (in *Integrator[T]) SetState(s lane.Vec[T]) { in.s = s }

// Reset clears the state.
func (in *Integrator[T]) Reset() { in.s = lane.Vec[T]{} }
