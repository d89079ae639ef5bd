package block

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-lanedsp/dsp/core"
	"github.com/cwbudde/algo-vecmath"
	approx "github.com/meko-christian/algo-approx"
)

const (
	minGainDB = -144.0
	maxGainDB = 48.0

	defaultChunk = 256
)

var (
	// ErrGain is returned for a negative or non-finite linear gain.
	ErrGain = errors.New("gain must be finite and >= 0")
	// ErrGainDB is returned for a gain outside [-144, 48] dB.
	ErrGainDB = errors.New("gain must be finite and in [-144, 48] dB")
	// ErrRamp is returned for a negative ramp length.
	ErrRamp = errors.New("ramp length must be >= 0")
)

// Gain applies a linearly ramped gain to planar buffers. Ramps are
// rendered into a fixed scratch buffer in chunks, so Process never
// allocates.
type Gain struct {
	current   float64
	target    float64
	step      float64
	remaining int

	ramp []float64
}

// NewGain returns a unity Gain whose ramp scratch holds chunk samples.
// A chunk of 0 selects the default.
func NewGain(chunk int) *Gain {
	if chunk <= 0 {
		chunk = defaultChunk
	}

	return &Gain{current: 1, target: 1, ramp: make([]float64, chunk)}
}

// SetGain ramps to the linear gain over samples samples. On error the
// current ramp continues unchanged.
func (g *Gain) SetGain(gain float64, samples int) error {
	if !(gain >= 0) || math.IsInf(gain, 1) {
		return core.LogRejected("block.Gain", "SetGain", fmt.Errorf("block: %w: %v", ErrGain, gain))
	}

	if samples < 0 {
		return core.LogRejected("block.Gain", "SetGain", fmt.Errorf("block: %w: %d", ErrRamp, samples))
	}

	g.target = gain
	if samples == 0 {
		g.current = gain
		g.step = 0
		g.remaining = 0

		return nil
	}

	g.step = (gain - g.current) / float64(samples)
	g.remaining = samples

	return nil
}

// SetGainDB is SetGain with the target in decibels.
func (g *Gain) SetGainDB(db float64, samples int) error {
	if !(db >= minGainDB && db <= maxGainDB) {
		return core.LogRejected("block.Gain", "SetGainDB", fmt.Errorf("block: %w: %v", ErrGainDB, db))
	}

	return g.SetGain(approx.FastExp(db*math.Ln10/20), samples)
}

// Gain returns the current gain.
func (g *Gain) Gain() float64 { return g.current }

// GainDB returns Gain in decibels, -Inf for silence.
func (g *Gain) GainDB() float64 {
	if g.current <= 0 {
		return math.Inf(-1)
	}

	return approx.FastLog(g.current) * 20 / math.Ln10
}

// Ramping reports whether a ramp is in progress.
func (g *Gain) Ramping() bool { return g.remaining > 0 }

// Process scales buf in place.
func (g *Gain) Process(buf []float64) {
	for g.remaining > 0 && len(buf) > 0 {
		n := min(len(buf), g.remaining, len(g.ramp))

		ramp := g.ramp[:n]
		for i := range ramp {
			g.current += g.step
			ramp[i] = g.current
		}

		g.remaining -= n
		if g.remaining == 0 {
			g.current = g.target
			ramp[n-1] = g.target
		}

		vecmath.MulBlockInPlace(buf[:n], ramp)
		buf = buf[n:]
	}

	if len(buf) == 0 || g.current == 1 {
		return
	}

	vecmath.ScaleBlock(buf, buf, g.current)
}
