package onepole

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-lanedsp/dsp/core"
	"github.com/cwbudde/algo-lanedsp/dsp/fastmath"
	"github.com/cwbudde/algo-lanedsp/dsp/filter/biquad"
	"github.com/cwbudde/algo-lanedsp/dsp/filter/tpt"
	"github.com/cwbudde/algo-lanedsp/dsp/lane"
	"github.com/cwbudde/algo-lanedsp/dsp/smooth"
)

// 1 kHz at 48 kHz.
const defaultCutoff = 2 * math.Pi * 1000 / 48000

var (
	// ErrCutoff is returned for a cutoff outside [smooth.MinLog, π) rad/sample.
	ErrCutoff = errors.New("cutoff must be finite and in [2^-126, π)")
	// ErrGain is returned for a shelf gain that is not positive and finite.
	ErrGain = errors.New("gain must be finite and at least 2^-126")
	// ErrRamp is returned for a negative ramp length.
	ErrRamp = errors.New("ramp length must be >= 0")
	// ErrMode is returned for an unknown mode or a mode the topology
	// cannot produce.
	ErrMode = errors.New("unsupported mode")
	// ErrState is returned when restoring a state containing NaN or Inf.
	ErrState = errors.New("state contains NaN or Inf")
)

// Mode selects the filter response.
type Mode int

const (
	Lowpass Mode = iota
	Highpass
	Allpass
	LowShelf
	HighShelf
)

func (m Mode) String() string {
	switch m {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	case Allpass:
		return "allpass"
	case LowShelf:
		return "lowshelf"
	case HighShelf:
		return "highshelf"
	default:
		return "unknown"
	}
}

// Topology selects how the cutoff maps to the pole.
type Topology int

const (
	// TPT is the bilinear (trapezoidal) one-pole with prewarped cutoff. Its
	// magnitude at the cutoff is exactly -3 dB.
	TPT Topology = iota
	// Exponential is the impulse-invariant one-pole y += (1-a)(x-y) with
	// a = e^-w. It supports Lowpass and Highpass only.
	Exponential
)

func (t Topology) String() string {
	switch t {
	case TPT:
		return "tpt"
	case Exponential:
		return "exponential"
	default:
		return "unknown"
	}
}

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	mode     Mode
	topology Topology
	cutoff   float64
	gain     float64
}

func defaultConfig() config {
	return config{mode: Lowpass, topology: TPT, cutoff: defaultCutoff, gain: 1}
}

// WithMode selects the response. Default Lowpass.
func WithMode(mode Mode) Option {
	return func(cfg *config) error {
		if mode < Lowpass || mode > HighShelf {
			return fmt.Errorf("onepole: %w: %d", ErrMode, mode)
		}

		cfg.mode = mode

		return nil
	}
}

// WithTopology selects the pole mapping. Default TPT.
func WithTopology(topology Topology) Option {
	return func(cfg *config) error {
		if topology != TPT && topology != Exponential {
			return fmt.Errorf("onepole: invalid topology: %d", topology)
		}

		cfg.topology = topology

		return nil
	}
}

// WithCutoff sets the initial cutoff of every lane in rad/sample.
func WithCutoff(w float64) Option {
	return func(cfg *config) error {
		if !(w >= smooth.MinLog && w < math.Pi) {
			return fmt.Errorf("onepole: %w: %v", ErrCutoff, w)
		}

		cfg.cutoff = w

		return nil
	}
}

// WithGain sets the initial linear shelf gain of every lane.
func WithGain(gain float64) Option {
	return func(cfg *config) error {
		if !(gain >= smooth.MinLog) || math.IsInf(gain, 0) {
			return fmt.Errorf("onepole: %w: %v", ErrGain, gain)
		}

		cfg.gain = gain

		return nil
	}
}

// Filter is a lane-parallel first-order filter whose cutoff and shelf gain
// follow logarithmic smoothers. Each lane is an independent channel.
type Filter[T lane.Float] struct {
	mode     Mode
	topology Topology

	cutoff *smooth.Log[T]
	gain   *smooth.Log[T]

	// coef is G = g/(1+g) for TPT and the pole a for Exponential.
	coef    lane.Vec[T]
	ramping bool

	s tpt.Integrator[T]
	y lane.Vec[T]
}

// New constructs a one-pole filter with every lane at the configured
// cutoff and gain.
func New[T lane.Float](opts ...Option) (*Filter[T], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.topology == Exponential && cfg.mode != Lowpass && cfg.mode != Highpass {
		return nil, fmt.Errorf("onepole: %w: %s with %s topology", ErrMode, cfg.mode, cfg.topology)
	}

	cutoff, err := smooth.NewLog(lane.Splat(T(cfg.cutoff)))
	if err != nil {
		return nil, err
	}

	gain, err := smooth.NewLog(lane.Splat(T(cfg.gain)))
	if err != nil {
		return nil, err
	}

	f := &Filter[T]{mode: cfg.mode, topology: cfg.topology, cutoff: cutoff, gain: gain}
	f.updateCoefficients()

	return f, nil
}

// SetParams ramps every lane's cutoff (rad/sample, in [smooth.MinLog, π))
// and linear shelf gain to new targets over rampSamples samples. Gain
// only affects the shelf modes but must always be valid. On error nothing
// changes.
func (f *Filter[T]) SetParams(cutoff, gain lane.Vec[T], rampSamples int) error {
	if err := validateParams(cutoff, gain, rampSamples); err != nil {
		return core.LogRejected("onepole", "SetParams", err)
	}

	// Both targets are valid, so neither smoother can reject them.
	_ = f.cutoff.SetTarget(cutoff, rampSamples)
	_ = f.gain.SetTarget(gain, rampSamples)

	f.ramping = rampSamples > 0
	if !f.ramping {
		f.updateCoefficients()
	}

	return nil
}

// SetCutoff ramps the cutoff and keeps the current gain target.
func (f *Filter[T]) SetCutoff(cutoff lane.Vec[T], rampSamples int) error {
	return f.SetParams(cutoff, f.gain.Target(), rampSamples)
}

func validateParams[T lane.Float](cutoff, gain lane.Vec[T], rampSamples int) error {
	if rampSamples < 0 {
		return fmt.Errorf("onepole: %w: %d", ErrRamp, rampSamples)
	}

	inRange := cutoff.Ge(lane.Splat(T(smooth.MinLog))).And(cutoff.Lt(lane.Splat(T(math.Pi))))
	if !inRange.All() {
		return fmt.Errorf("onepole: %w: %v", ErrCutoff, cutoff)
	}

	if !gain.Ge(lane.Splat(T(smooth.MinLog))).And(gain.IsFinite()).All() {
		return fmt.Errorf("onepole: %w: %v", ErrGain, gain)
	}

	return nil
}

func (f *Filter[T]) updateCoefficients() {
	w := f.cutoff.Current()

	if f.topology == Exponential {
		f.coef = fastmath.Exp(w.Neg())

		return
	}

	g := fastmath.TanHalf(w)

	switch f.mode {
	case LowShelf:
		g = g.Div(f.gain.Current().Sqrt())
	case HighShelf:
		g = g.Mul(f.gain.Current().Sqrt())
	}

	f.coef = g.Div(g.AddScalar(1))
}

// Process filters one sample per lane. It must be called exactly once per
// sample; while a ramp is active the coefficients are recomputed from the
// smoothers' current values on every call.
func (f *Filter[T]) Process(x lane.Vec[T]) lane.Vec[T] {
	if f.ramping {
		f.cutoff.Tick()
		f.gain.Tick()
		f.updateCoefficients()
		f.ramping = !f.cutoff.Settled() || !f.gain.Settled()
	}

	x = lane.Select(x.IsFinite(), x, lane.Vec[T]{})

	var lp lane.Vec[T]
	if f.topology == Exponential {
		// y += (1-a)(x-y)
		f.y = x.Sub(f.y).Mul(lane.Splat(T(1)).Sub(f.coef)).Add(f.y)
		lp = f.y
	} else {
		v := x.Sub(f.s.State()).Mul(f.coef)
		lp = f.s.Tick(v)
	}

	hp := x.Sub(lp)

	switch f.mode {
	case Highpass:
		return hp
	case Allpass:
		return lp.Sub(hp)
	case LowShelf:
		return f.gain.Current().MulAdd(lp, hp)
	case HighShelf:
		return f.gain.Current().MulAdd(hp, lp)
	default:
		return lp
	}
}

// ProcessBlock filters buf in place, one Vec per sample.
func (f *Filter[T]) ProcessBlock(buf []lane.Vec[T]) {
	for i := range buf {
		buf[i] = f.Process(buf[i])
	}
}

// Mode returns the configured response.
func (f *Filter[T]) Mode() Mode { return f.mode }

// Topology returns the configured pole mapping.
func (f *Filter[T]) Topology() Topology { return f.topology }

// Cutoff returns the smoothed cutoff used by the most recent sample.
func (f *Filter[T]) Cutoff() lane.Vec[T] { return f.cutoff.Current() }

// Gain returns the smoothed shelf gain used by the most recent sample.
func (f *Filter[T]) Gain() lane.Vec[T] { return f.gain.Current() }

// Pole returns the feedback coefficient: the pole a = e^-w for the
// Exponential topology and the integrator gain G = g/(1+g) for TPT.
func (f *Filter[T]) Pole() lane.Vec[T] { return f.coef }

// Coefficients returns the first-order transfer function of lane l at
// the current parameters as a biquad with B2 = A2 = 0. Like indexing a
// lane.Vec, it panics unless 0 <= l < lane.Width.
func (f *Filter[T]) Coefficients(l int) biquad.Coefficients {
	c := float64(f.coef[l])

	// Lowpass and highpass numerators over the shared 1 + a1·z⁻¹.
	var lp0, lp1, hp0, hp1, a1 float64
	if f.topology == Exponential {
		lp0, hp0, hp1, a1 = 1-c, c, -c, -c
	} else {
		lp0, lp1, hp0, hp1, a1 = c, c, 1-c, c-1, 2*c-1
	}

	k := float64(f.gain.Current()[l])

	var b0, b1 float64

	switch f.mode {
	case Highpass:
		b0, b1 = hp0, hp1
	case Allpass:
		b0, b1 = lp0-hp0, lp1-hp1
	case LowShelf:
		b0, b1 = k*lp0+hp0, k*lp1+hp1
	case HighShelf:
		b0, b1 = lp0+k*hp0, lp1+k*hp1
	default:
		b0, b1 = lp0, lp1
	}

	return biquad.Coefficients{B0: b0, B1: b1, A1: a1}
}

// Ramping reports whether a parameter ramp is in progress.
func (f *Filter[T]) Ramping() bool { return f.ramping }

// Reset clears the filter memory. Parameters are kept.
func (f *Filter[T]) Reset() {
	f.s.Reset()
	f.y = lane.Vec[T]{}
}

// State returns the filter memory.
func (f *Filter[T]) State() lane.Vec[T] {
	if f.topology == Exponential {
		return f.y
	}

	return f.s.State()
}

// SetState restores filter memory saved with State.
func (f *Filter[T]) SetState(s lane.Vec[T]) error {
	if !s.IsFinite().All() {
		return fmt.Errorf("onepole: %w", ErrState)
	}

	if f.topology == Exponential {
		f.y = s
	} else {
		f.s.SetState(s)
	}

	return nil
}
