package response

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-lanedsp/dsp/filter/biquad"
	"github.com/cwbudde/algo-lanedsp/dsp/filter/svf"
	"github.com/cwbudde/algo-lanedsp/dsp/lane"
)

type identity struct{}

func (identity) Process(x lane.Vec[float64]) lane.Vec[float64] { return x }

type delay struct{ z lane.Vec[float32] }

func (d *delay) Process(x lane.Vec[float32]) lane.Vec[float32] {
	y := d.z
	d.z = x

	return y
}

func (d *delay) Reset() { d.z = lane.Vec[float32]{} }

func TestMeasureValidation(t *testing.T) {
	tests := []struct {
		name string
		n    int
		sr   float64
		want error
	}{
		{"zero length", 0, 48000, ErrLength},
		{"one", 1, 48000, ErrLength},
		{"not power of two", 1000, 48000, ErrLength},
		{"zero rate", 256, 0, ErrSampleRate},
		{"nan rate", 256, math.NaN(), ErrSampleRate},
		{"inf rate", 256, math.Inf(1), ErrSampleRate},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Measure[float64](identity{}, tc.n, tc.sr); !errors.Is(err, tc.want) {
				t.Fatalf("Measure() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestMeasureIdentity(t *testing.T) {
	res, err := Measure[float64](identity{}, 64, 48000)
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}

	r := res[lane.Width-1]
	if len(r.Freqs) != 33 || r.Freqs[32] != 24000 {
		t.Fatalf("Freqs: len %d, last %v", len(r.Freqs), r.Freqs[len(r.Freqs)-1])
	}

	for k := range r.Freqs {
		if math.Abs(r.Magnitude[k]-1) > 1e-12 || math.Abs(r.MagnitudeDB[k]) > 1e-9 || math.Abs(r.Phase[k]) > 1e-12 {
			t.Fatalf("bin %d: mag %v dB %v phase %v", k, r.Magnitude[k], r.MagnitudeDB[k], r.Phase[k])
		}
	}
}

func TestMeasureDelayPhase(t *testing.T) {
	d := &delay{z: lane.Splat[float32](5)}

	res, err := Measure[float32](d, 128, 128)
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}

	// Reset clears the stale sample, so the response is a pure delay.
	r := res[0]
	for k := 1; k < 40; k++ {
		w := 2 * math.Pi * float64(k) / 128
		if math.Abs(r.Phase[k]+w) > 1e-9 || math.Abs(r.Magnitude[k]-1) > 1e-9 {
			t.Fatalf("bin %d: phase %v want %v, mag %v", k, r.Phase[k], -w, r.Magnitude[k])
		}
	}
}

func TestMeasureMatchesSVFCoefficients(t *testing.T) {
	const (
		n  = 4096
		sr = 48000.0
	)

	f, err := svf.New[float64]()
	if err != nil {
		t.Fatalf("svf.New() error = %v", err)
	}

	cutoffs := lane.FromFunc(func(i int) float64 { return 0.05 + 0.15*float64(i) })
	if err := f.SetParams(cutoffs, lane.Splat(math.Sqrt2/2), lane.Splat(1.0), 0); err != nil {
		t.Fatalf("SetParams() error = %v", err)
	}

	res, err := Measure[float64](f, n, sr)
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}

	for l := range lane.Width {
		c := f.Coefficients(l)
		for k := 0; k < n/2; k += 37 {
			want := c.MagnitudeDB(res[l].Freqs[k], sr)
			if want < -100 {
				continue
			}

			if got := res[l].MagnitudeDB[k]; math.Abs(got-want) > 0.01 {
				t.Fatalf("lane %d bin %d: %v dB, want %v dB", l, k, got, want)
			}
		}
	}
}

func TestScalarAdapter(t *testing.T) {
	const sr = 48000.0

	c := biquad.Peak(1000, 6, 2, sr)
	s := biquad.NewSection(c)
	_ = s.ProcessSample(1)

	res, err := Measure(Scalar(s), 2048, sr)
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}

	r := res[lane.Width/2]
	for _, k := range []int{0, 10, 43, 100, 1024} {
		want := c.MagnitudeDB(r.Freqs[k], sr)
		if got := r.MagnitudeDB[k]; math.Abs(got-want) > 1e-6 {
			t.Fatalf("bin %d: %v dB, want %v dB", k, got, want)
		}
	}
}

func TestResultAt(t *testing.T) {
	r := Result{
		Freqs:       []float64{0, 100, 200},
		Magnitude:   []float64{1, 3, 2},
		MagnitudeDB: []float64{0, -10, -20},
	}

	tests := []struct {
		hz, mag, db float64
	}{
		{-5, 1, 0},
		{0, 1, 0},
		{50, 2, -5},
		{150, 2.5, -15},
		{200, 2, -20},
		{1e6, 2, -20},
	}

	for _, tc := range tests {
		if got := r.At(tc.hz); math.Abs(got-tc.mag) > 1e-12 {
			t.Fatalf("At(%v) = %v, want %v", tc.hz, got, tc.mag)
		}

		if got := r.DBAt(tc.hz); math.Abs(got-tc.db) > 1e-12 {
			t.Fatalf("DBAt(%v) = %v, want %v", tc.hz, got, tc.db)
		}
	}

	if got := (Result{}).At(10); got != 0 {
		t.Fatalf("empty At() = %v, want 0", got)
	}
}
