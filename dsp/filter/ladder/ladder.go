package ladder

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-lanedsp/dsp/core"
	"github.com/cwbudde/algo-lanedsp/dsp/fastmath"
	"github.com/cwbudde/algo-lanedsp/dsp/lane"
	"github.com/cwbudde/algo-lanedsp/dsp/smooth"
)

const (
	defaultCutoff         = 2 * math.Pi * 1000 / 48000
	defaultResonance      = 0.8
	defaultDrive          = 1.0
	defaultOutputGain     = 1.0
	defaultThermalVoltage = 5.0

	// MaxResonance is the upper clamp for resonance. Self-oscillation
	// starts at 4.
	MaxResonance = 3.99

	minDrive          = 0.1
	maxDrive          = 24.0
	maxOutputGain     = 24.0
	minThermalVoltage = 0.1
	maxThermalVoltage = 10.0

	stateLimit = 32.0
)

var (
	// ErrCutoff is returned for a cutoff outside [smooth.MinLog, π) rad/sample.
	ErrCutoff = errors.New("cutoff must be finite and in [2^-126, π)")
	// ErrResonance is returned for a negative or non-finite resonance.
	ErrResonance = errors.New("resonance must be finite and >= 0")
	// ErrRamp is returned for a negative ramp length.
	ErrRamp = errors.New("ramp length must be >= 0")
)

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	cutoff          float64
	resonance       float64
	drive           float64
	outputGain      float64
	thermalVoltage  float64
	normalizeOutput bool
}

func defaultConfig() config {
	return config{
		cutoff:          defaultCutoff,
		resonance:       defaultResonance,
		drive:           defaultDrive,
		outputGain:      defaultOutputGain,
		thermalVoltage:  defaultThermalVoltage,
		normalizeOutput: true,
	}
}

// WithCutoff sets the initial cutoff of every lane in rad/sample.
func WithCutoff(w float64) Option {
	return func(cfg *config) error {
		if !(w >= smooth.MinLog && w < math.Pi) {
			return fmt.Errorf("ladder: %w: %v", ErrCutoff, w)
		}

		cfg.cutoff = w

		return nil
	}
}

// WithResonance sets the initial resonance of every lane, clamped to
// [0, MaxResonance].
func WithResonance(resonance float64) Option {
	return func(cfg *config) error {
		if !(resonance >= 0) || math.IsInf(resonance, 0) {
			return fmt.Errorf("ladder: %w: %v", ErrResonance, resonance)
		}

		cfg.resonance = math.Min(resonance, MaxResonance)

		return nil
	}
}

// WithDrive sets the input drive into the stage nonlinearities.
func WithDrive(drive float64) Option {
	return func(cfg *config) error {
		if err := validateFiniteRange(drive, minDrive, maxDrive, "drive"); err != nil {
			return err
		}

		cfg.drive = drive

		return nil
	}
}

// WithOutputGain sets a linear output gain in [0, 24].
func WithOutputGain(gain float64) Option {
	return func(cfg *config) error {
		if err := validateFiniteRange(gain, 0, maxOutputGain, "output gain"); err != nil {
			return err
		}

		cfg.outputGain = gain

		return nil
	}
}

// WithThermalVoltage sets the thermal-voltage-style shaping in [0.1, 10].
func WithThermalVoltage(vt float64) Option {
	return func(cfg *config) error {
		if err := validateFiniteRange(vt, minThermalVoltage, maxThermalVoltage, "thermal voltage"); err != nil {
			return err
		}

		cfg.thermalVoltage = vt

		return nil
	}
}

// WithNormalizeOutput toggles the 1/(1+0.5·resonance) passband
// compensation. Enabled by default.
func WithNormalizeOutput(enabled bool) Option {
	return func(cfg *config) error {
		cfg.normalizeOutput = enabled

		return nil
	}
}

// State is the ladder memory of every lane.
type State[T lane.Float] struct {
	Stage      [4]lane.Vec[T]
	TanhLast   [3]lane.Vec[T]
	PrevOutput lane.Vec[T]
}

// Filter is a lane-parallel four-pole nonlinear lowpass ladder with
// Huovilainen tuning and resonance compensation. Cutoff follows a
// logarithmic smoother and resonance a linear one.
type Filter[T lane.Float] struct {
	cutoff    *smooth.Log[T]
	resonance *smooth.Linear[T]
	ramping   bool

	thermalVoltage  T
	shape           T
	outputGain      T
	normalizeOutput bool

	coefficient lane.Vec[T]
	feedback    lane.Vec[T]
	outputScale lane.Vec[T]

	state State[T]
}

// New constructs a ladder with every lane at the configured parameters.
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

	cutoff, err := smooth.NewLog(lane.Splat(T(cfg.cutoff)))
	if err != nil {
		return nil, err
	}

	f := &Filter[T]{
		cutoff:          cutoff,
		resonance:       smooth.NewLinear(lane.Splat(T(cfg.resonance))),
		thermalVoltage:  T(cfg.thermalVoltage),
		shape:           T(0.5 * cfg.drive / cfg.thermalVoltage),
		outputGain:      T(cfg.outputGain),
		normalizeOutput: cfg.normalizeOutput,
	}
	f.updateCoefficients()

	return f, nil
}

// SetParams ramps cutoff (rad/sample) and resonance over rampSamples
// samples. Resonance above MaxResonance is clamped. On error nothing
// changes.
func (f *Filter[T]) SetParams(cutoff, resonance lane.Vec[T], rampSamples int) error {
	var zero lane.Vec[T]

	switch {
	case rampSamples < 0:
		return core.LogRejected("ladder", "SetParams", fmt.Errorf("ladder: %w: %d", ErrRamp, rampSamples))
	case !cutoff.Ge(lane.Splat(T(smooth.MinLog))).And(cutoff.Lt(lane.Splat(T(math.Pi)))).All():
		return core.LogRejected("ladder", "SetParams", fmt.Errorf("ladder: %w: %v", ErrCutoff, cutoff))
	case !resonance.Ge(zero).And(resonance.IsFinite()).All():
		return core.LogRejected("ladder", "SetParams", fmt.Errorf("ladder: %w: %v", ErrResonance, resonance))
	}

	_ = f.cutoff.SetTarget(cutoff, rampSamples)
	_ = f.resonance.SetTarget(resonance.Min(lane.Splat(T(MaxResonance))), rampSamples)

	f.ramping = rampSamples > 0
	if !f.ramping {
		f.updateCoefficients()
	}

	return nil
}

// updateCoefficients applies the Huovilainen cutoff and resonance
// polynomials to the current smoother values.
func (f *Filter[T]) updateCoefficients() {
	var zero lane.Vec[T]

	w := f.cutoff.Current()
	res := f.resonance.Current()
	fc := w.Scale(T(1 / (2 * math.Pi)))

	// fcr = 1.8730fc³ + 0.4955fc² - 0.6490fc + 0.9988
	fcr := fc.MulAdd(lane.Splat(T(1.8730)), lane.Splat(T(0.4955)))
	fcr = fcr.MulAdd(fc, lane.Splat(T(-0.6490)))
	fcr = fcr.MulAdd(fc, lane.Splat(T(0.9988))).Max(zero)

	decay := fastmath.Exp(fcr.Mul(w).Neg())
	f.coefficient = lane.Splat(T(1)).Sub(decay).Scale(2 * f.thermalVoltage)

	// comp = -3.9364fc² + 1.8409fc + 0.9968
	comp := fc.MulAdd(lane.Splat(T(-3.9364)), lane.Splat(T(1.8409)))
	comp = comp.MulAdd(fc, lane.Splat(T(0.9968))).Max(zero)
	f.feedback = res.Mul(comp)

	// The legacy resonance scale is dbToAmp(res)², i.e. 10^(res/10).
	scale := fastmath.DBToGain(res.Scale(2)).Scale(f.outputGain)
	if f.normalizeOutput {
		scale = scale.Div(res.Scale(0.5).AddScalar(1))
	}

	f.outputScale = scale
}

// Process filters one sample per lane.
func (f *Filter[T]) Process(x lane.Vec[T]) lane.Vec[T] {
	if f.ramping {
		f.cutoff.Tick()
		f.resonance.Tick()
		f.updateCoefficients()
		f.ramping = !f.cutoff.Settled() || !f.resonance.Settled()
	}

	x = lane.Select(x.IsFinite(), x, lane.Vec[T]{})

	s := &f.state
	lo, hi := lane.Splat(T(-stateLimit)), lane.Splat(T(stateLimit))

	// Half-sample estimate of the output fed back to the input.
	fb := s.Stage[3].Add(s.PrevOutput).Scale(0.5)
	drive := x.Sub(f.feedback.Mul(fb))

	t0 := fastmath.Tanh(drive.Scale(f.shape))
	tS0 := fastmath.Tanh(s.Stage[0].Scale(f.shape))
	tS1 := fastmath.Tanh(s.Stage[1].Scale(f.shape))
	tS2 := fastmath.Tanh(s.Stage[2].Scale(f.shape))
	tS3 := fastmath.Tanh(s.Stage[3].Scale(f.shape))

	g := f.coefficient
	s.Stage[0] = g.MulAdd(t0.Sub(tS0), s.Stage[0]).Clamp(lo, hi)
	s.TanhLast[0] = fastmath.Tanh(s.Stage[0].Scale(f.shape))

	s.Stage[1] = g.MulAdd(s.TanhLast[0].Sub(tS1), s.Stage[1]).Clamp(lo, hi)
	s.TanhLast[1] = fastmath.Tanh(s.Stage[1].Scale(f.shape))

	s.Stage[2] = g.MulAdd(s.TanhLast[1].Sub(tS2), s.Stage[2]).Clamp(lo, hi)
	s.TanhLast[2] = fastmath.Tanh(s.Stage[2].Scale(f.shape))

	s.Stage[3] = g.MulAdd(s.TanhLast[2].Sub(tS3), s.Stage[3]).Clamp(lo, hi)
	s.PrevOutput = s.Stage[3]

	return f.outputScale.Mul(s.Stage[3])
}

// ProcessBlock filters buf in place.
func (f *Filter[T]) ProcessBlock(buf []lane.Vec[T]) {
	for i := range buf {
		buf[i] = f.Process(buf[i])
	}
}

// Cutoff returns the smoothed cutoff of the most recent sample.
func (f *Filter[T]) Cutoff() lane.Vec[T] { return f.cutoff.Current() }

// Resonance returns the smoothed resonance of the most recent sample.
func (f *Filter[T]) Resonance() lane.Vec[T] { return f.resonance.Current() }

// Ramping reports whether a parameter ramp is in progress.
func (f *Filter[T]) Ramping() bool { return f.ramping }

// Reset clears the ladder memory.
func (f *Filter[T]) Reset() {
	f.state = State[T]{}
}

// State returns a copy of the ladder memory.
func (f *Filter[T]) State() State[T] {
	return f.state
}

// SetState restores memory saved with State.
func (f *Filter[T]) SetState(state State[T]) error {
	ok := state.PrevOutput.IsFinite()
	for _, v := range state.Stage {
		ok = ok.And(v.IsFinite())
	}

	for _, v := range state.TanhLast {
		ok = ok.And(v.IsFinite())
	}

	if !ok.All() {
		return fmt.Errorf("ladder: state contains NaN or Inf")
	}

	f.state = state

	return nil
}

func validateFiniteRange(value, lo, hi float64, name string) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("ladder: %s must be finite: %v", name, value)
	}

	if value < lo || value > hi {
		return fmt.Errorf("ladder: %s must be in [%g, %g]: %f", name, lo, hi, value)
	}

	return nil
}
