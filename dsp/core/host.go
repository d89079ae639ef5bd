package core

import "math"

// ProcessorConfig is the host context a plugin shell hands to the dsp
// packages: the rate used to convert Hz and seconds, the block size it
// renders in, and the default parameter smoothing time.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
	// RampTime is the default smoothing time in seconds. Zero jumps.
	RampTime float64
}

// ProcessorOption adjusts a ProcessorConfig. Out-of-range values are
// ignored and leave the previous setting in place.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig is 48 kHz, 256-sample blocks and 20 ms ramps.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{SampleRate: 48000, BlockSize: 256, RampTime: 0.02}
}

// WithSampleRate sets the host sample rate in Hz.
func WithSampleRate(hz float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if hz > 0 && IsFinite(hz) {
			cfg.SampleRate = hz
		}
	}
}

// WithBlockSize sets the host block size in frames.
func WithBlockSize(frames int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if frames > 0 {
			cfg.BlockSize = frames
		}
	}
}

// WithRampTime sets the default smoothing time in seconds.
func WithRampTime(seconds float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if seconds >= 0 && IsFinite(seconds) {
			cfg.RampTime = seconds
		}
	}
}

// ApplyProcessorOptions starts from DefaultProcessorConfig and applies
// opts in order. Nil options are skipped.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		opt(&cfg)
	}

	return cfg
}

// Angular converts hz to rad/sample at the configured rate.
func (c ProcessorConfig) Angular(hz float64) float64 {
	return AngularFrequency(hz, c.SampleRate)
}

// Nyquist returns half the configured sample rate in Hz.
func (c ProcessorConfig) Nyquist() float64 {
	return c.SampleRate / 2
}

// RampSamples returns the default smoothing time in samples.
func (c ProcessorConfig) RampSamples() int {
	return RampSamples(c.RampTime, c.SampleRate)
}

// BlockRamp rounds the default smoothing time up to whole blocks, for
// hosts that only update parameters at block boundaries.
func (c ProcessorConfig) BlockRamp() int {
	n := c.RampSamples()
	if n == 0 || c.BlockSize <= 0 {
		return n
	}

	blocks := math.Ceil(float64(n) / float64(c.BlockSize))

	return int(blocks) * c.BlockSize
}
