package svf

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

// Q limits applied by SetParams.
const (
	MinQ = 0.025
	MaxQ = 40.0
)

const defaultCutoff = 2 * math.Pi * 1000 / 48000

var (
	// ErrCutoff is returned for a cutoff outside [smooth.MinLog, π) rad/sample.
	ErrCutoff = errors.New("cutoff must be finite and in [2^-126, π)")
	// ErrQ is returned for a quality factor that is not positive and finite.
	ErrQ = errors.New("q must be positive and finite")
	// ErrGain is returned for a gain that is not positive and finite.
	ErrGain = errors.New("gain must be finite and at least 2^-126")
	// ErrRamp is returned for a negative ramp length.
	ErrRamp = errors.New("ramp length must be >= 0")
	// ErrMode is returned for an unknown mode.
	ErrMode = errors.New("unsupported mode")
	// ErrState is returned when restoring a state containing NaN or Inf.
	ErrState = errors.New("state contains NaN or Inf")
)

// Mode selects the output mix.
type Mode int

const (
	Lowpass Mode = iota
	// Bandpass peaks at Q times the input at the cutoff.
	Bandpass
	// UnitBandpass peaks at 0 dB at the cutoff.
	UnitBandpass
	Highpass
	Allpass
	Notch
	LowShelf
	// BandShelf is a bell boost or cut of gain centered at the cutoff.
	BandShelf
	HighShelf
)

var modeNames = [...]string{
	Lowpass:      "lowpass",
	Bandpass:     "bandpass",
	UnitBandpass: "unit-bandpass",
	Highpass:     "highpass",
	Allpass:      "allpass",
	Notch:        "notch",
	LowShelf:     "lowshelf",
	BandShelf:    "bandshelf",
	HighShelf:    "highshelf",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}

	return modeNames[m]
}

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	mode   Mode
	cutoff float64
	q      float64
	gain   float64
}

// WithMode selects the output. Default Lowpass.
func WithMode(mode Mode) Option {
	return func(cfg *config) error {
		if mode < Lowpass || mode > HighShelf {
			return fmt.Errorf("svf: %w: %d", ErrMode, mode)
		}

		cfg.mode = mode

		return nil
	}
}

// WithCutoff sets the initial cutoff in rad/sample.
func WithCutoff(w float64) Option {
	return func(cfg *config) error {
		if !(w >= smooth.MinLog && w < math.Pi) {
			return fmt.Errorf("svf: %w: %v", ErrCutoff, w)
		}

		cfg.cutoff = w

		return nil
	}
}

// WithQ sets the initial quality factor, clamped to [MinQ, MaxQ].
func WithQ(q float64) Option {
	return func(cfg *config) error {
		if !(q > 0) || math.IsInf(q, 0) {
			return fmt.Errorf("svf: %w: %v", ErrQ, q)
		}

		cfg.q = core.Clamp(q, MinQ, MaxQ)

		return nil
	}
}

// WithGain sets the initial linear gain of the shelf and bell modes.
func WithGain(gain float64) Option {
	return func(cfg *config) error {
		if !(gain >= smooth.MinLog) || math.IsInf(gain, 0) {
			return fmt.Errorf("svf: %w: %v", ErrGain, gain)
		}

		cfg.gain = gain

		return nil
	}
}

// Outputs holds the simultaneous responses of one sample.
type Outputs[T lane.Float] struct {
	LP, BP, HP lane.Vec[T]
}

// Filter is a lane-parallel state-variable filter. Cutoff, damping (1/Q)
// and gain follow logarithmic smoothers.
type Filter[T lane.Float] struct {
	mode Mode

	cutoff  *smooth.Log[T]
	damping *smooth.Log[T]
	gain    *smooth.Log[T]
	ramping bool

	// Derived per-sample coefficients.
	g, k, h    lane.Vec[T] // integrator gain, damping, 1/(1+g(g+k))
	m0, m1, m2 lane.Vec[T] // output mix of x, bp and lp

	s1, s2 tpt.Integrator[T]
}

// New constructs a state-variable filter with every lane at the
// configured parameters. Defaults: Lowpass, 1 kHz at 48 kHz, Q 1/√2,
// gain 1.
func New[T lane.Float](opts ...Option) (*Filter[T], error) {
	cfg := config{mode: Lowpass, cutoff: defaultCutoff, q: biquad.DefaultQ, gain: 1}
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	f := &Filter[T]{mode: cfg.mode}

	var err error
	if f.cutoff, err = smooth.NewLog(lane.Splat(T(cfg.cutoff))); err != nil {
		return nil, err
	}

	if f.damping, err = smooth.NewLog(lane.Splat(T(1 / cfg.q))); err != nil {
		return nil, err
	}

	if f.gain, err = smooth.NewLog(lane.Splat(T(cfg.gain))); err != nil {
		return nil, err
	}

	f.updateCoefficients()

	return f, nil
}

// SetParams ramps every lane's cutoff (rad/sample), Q and linear gain to new
// targets over rampSamples samples. Q is clamped to [MinQ, MaxQ]; gain only
// affects the shelf and bell modes but must always be valid. On error
// nothing changes.
func (f *Filter[T]) SetParams(cutoff, q, gain lane.Vec[T], rampSamples int) error {
	if err := validateParams(cutoff, q, gain, rampSamples); err != nil {
		return core.LogRejected("svf", "SetParams", err)
	}

	q = q.Clamp(lane.Splat(T(MinQ)), lane.Splat(T(MaxQ)))

	_ = f.cutoff.SetTarget(cutoff, rampSamples)
	_ = f.damping.SetTarget(q.Recip(), rampSamples)
	_ = f.gain.SetTarget(gain, rampSamples)

	f.ramping = rampSamples > 0
	if !f.ramping {
		f.updateCoefficients()
	}

	return nil
}

func validateParams[T lane.Float](cutoff, q, gain lane.Vec[T], rampSamples int) error {
	var zero lane.Vec[T]

	switch {
	case rampSamples < 0:
		return fmt.Errorf("svf: %w: %d", ErrRamp, rampSamples)
	case !cutoff.Ge(lane.Splat(T(smooth.MinLog))).And(cutoff.Lt(lane.Splat(T(math.Pi)))).All():
		return fmt.Errorf("svf: %w: %v", ErrCutoff, cutoff)
	case !q.Gt(zero).And(q.IsFinite()).All():
		return fmt.Errorf("svf: %w: %v", ErrQ, q)
	case !gain.Ge(lane.Splat(T(smooth.MinLog))).And(gain.IsFinite()).All():
		return fmt.Errorf("svf: %w: %v", ErrGain, gain)
	}

	return nil
}

// updateCoefficients derives g, k and the output mix from the current
// smoother values. Shelves move the integrator gain by √A and the bell
// divides the damping by A, where A² is the linear gain.
func (f *Filter[T]) updateCoefficients() {
	one := lane.Splat(T(1))
	g := fastmath.TanHalf(f.cutoff.Current())
	k := f.damping.Current()
	a := f.gain.Current().Sqrt()

	var m0, m1, m2 lane.Vec[T]

	switch f.mode {
	case Lowpass:
		m2 = one
	case Bandpass:
		m1 = one
	case UnitBandpass:
		m1 = k
	case Highpass:
		m0, m1, m2 = one, k.Neg(), one.Neg()
	case Allpass:
		m0, m1 = one, k.Scale(-2)
	case Notch:
		m0, m1 = one, k.Neg()
	case LowShelf:
		g = g.Div(a.Sqrt())
		m0 = one
		m1 = k.Mul(a.Sub(one))
		m2 = a.Mul(a).Sub(one)
	case BandShelf:
		k = k.Div(a)
		m0 = one
		m1 = k.Mul(a.Mul(a).Sub(one))
	case HighShelf:
		g = g.Mul(a.Sqrt())
		m0 = a.Mul(a)
		m1 = k.Mul(one.Sub(a)).Mul(a)
		m2 = one.Sub(a.Mul(a))
	}

	f.g, f.k = g, k
	f.h = g.MulAdd(g.Add(k), one).Recip()
	f.m0, f.m1, f.m2 = m0, m1, m2
}

func (f *Filter[T]) tick() {
	if !f.ramping {
		return
	}

	f.cutoff.Tick()
	f.damping.Tick()
	f.gain.Tick()
	f.updateCoefficients()

	f.ramping = !f.cutoff.Settled() || !f.damping.Settled() || !f.gain.Settled()
}

func (f *Filter[T]) step(x lane.Vec[T]) (lp, bp, hp lane.Vec[T]) {
	// hp = (x - (g+k)·s1 - s2) / (1 + g(g+k))
	s1, s2 := f.s1.State(), f.s2.State()
	hp = x.Sub(f.g.Add(f.k).Mul(s1)).Sub(s2).Mul(f.h)
	bp = f.s1.Tick(f.g.Mul(hp))
	lp = f.s2.Tick(f.g.Mul(bp))

	return lp, bp, hp
}

// Process filters one sample per lane and returns the selected mode. It
// must be called once per sample.
func (f *Filter[T]) Process(x lane.Vec[T]) lane.Vec[T] {
	f.tick()

	x = lane.Select(x.IsFinite(), x, lane.Vec[T]{})
	lp, bp, _ := f.step(x)

	return f.m0.Mul(x).Add(f.m1.Mul(bp)).Add(f.m2.Mul(lp))
}

// ProcessAll filters one sample and returns the lowpass, bandpass and
// highpass responses together. The shelf and bell modes shift the
// integrator gain or damping, so their raw responses are moved accordingly.
func (f *Filter[T]) ProcessAll(x lane.Vec[T]) Outputs[T] {
	f.tick()

	lp, bp, hp := f.step(lane.Select(x.IsFinite(), x, lane.Vec[T]{}))

	return Outputs[T]{LP: lp, BP: bp, HP: hp}
}

// ProcessBlock filters buf in place.
func (f *Filter[T]) ProcessBlock(buf []lane.Vec[T]) {
	for i := range buf {
		buf[i] = f.Process(buf[i])
	}
}

// Mode returns the configured output.
func (f *Filter[T]) Mode() Mode { return f.mode }

// Cutoff returns the smoothed cutoff of the most recent sample.
func (f *Filter[T]) Cutoff() lane.Vec[T] { return f.cutoff.Current() }

// Q returns the smoothed quality factor of the most recent sample.
func (f *Filter[T]) Q() lane.Vec[T] { return f.damping.Current().Recip() }

// Gain returns the smoothed linear gain of the most recent sample.
func (f *Filter[T]) Gain() lane.Vec[T] { return f.gain.Current() }

// Ramping reports whether a parameter ramp is in progress.
func (f *Filter[T]) Ramping() bool { return f.ramping }

// Reset clears both integrators. Parameters are kept.
func (f *Filter[T]) Reset() {
	f.s1.Reset()
	f.s2.Reset()
}

// State returns the integrator states.
func (f *Filter[T]) State() [2]lane.Vec[T] {
	return [2]lane.Vec[T]{f.s1.State(), f.s2.State()}
}

// SetState restores integrator states saved with State.
func (f *Filter[T]) SetState(s [2]lane.Vec[T]) error {
	if !s[0].IsFinite().And(s[1].IsFinite()).All() {
		return fmt.Errorf("svf: %w", ErrState)
	}

	f.s1.SetState(s[0])
	f.s2.SetState(s[1])

	return nil
}

// Coefficients returns the biquad equivalent to lane l at the current
// parameters. The filter is the bilinear transform of
//
//	H(s) = (m0·s² + m1·s + m2) / (s² + k·s + 1),  s = (1/g)·(1-z⁻¹)/(1+z⁻¹)
//
// where the highpass output is expressed as x - k·bp - lp. Like indexing
// a lane.Vec, it panics unless 0 <= l < lane.Width.
func (f *Filter[T]) Coefficients(l int) biquad.Coefficients {
	g := float64(f.g[l])
	k := float64(f.k[l])
	m0, m1, m2 := float64(f.m0[l]), float64(f.m1[l]), float64(f.m2[l])

	// Analog numerator in s, with y = m0·x + m1·bp + m2·lp.
	n2 := m0
	n1 := m0*k + m1
	n0 := m0 + m2

	c := 1 / g
	c2 := c * c

	a0 := c2 + k*c + 1

	return biquad.Coefficients{
		B0: (n2*c2 + n1*c + n0) / a0,
		B1: 2 * (n0 - n2*c2) / a0,
		B2: (n2*c2 - n1*c + n0) / a0,
		A1: 2 * (1 - c2) / a0,
		A2: (c2 - k*c + 1) / a0,
	}
}
