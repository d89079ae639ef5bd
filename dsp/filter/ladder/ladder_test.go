package ladder

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-lanedsp/dsp/lane"
	"github.com/cwbudde/algo-lanedsp/internal/testutil"
)

func mustNew(t *testing.T, opts ...Option) *Filter[float64] {
	t.Helper()

	f, err := New[float64](opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	return f
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want error
	}{
		{"cutoff zero", []Option{WithCutoff(0)}, ErrCutoff},
		{"cutoff nyquist", []Option{WithCutoff(math.Pi)}, ErrCutoff},
		{"cutoff below range", []Option{WithCutoff(1e-40)}, ErrCutoff},
		{"resonance negative", []Option{WithResonance(-0.1)}, ErrResonance},
		{"resonance nan", []Option{WithResonance(math.NaN())}, ErrResonance},
		{"drive low", []Option{WithDrive(0.01)}, nil},
		{"drive inf", []Option{WithDrive(math.Inf(1))}, nil},
		{"output gain high", []Option{WithOutputGain(30)}, nil},
		{"thermal voltage zero", []Option{WithThermalVoltage(0)}, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New[float64](tc.opts...)
			if err == nil {
				t.Fatal("New() error = nil")
			}

			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("New() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestResonanceClamped(t *testing.T) {
	f := mustNew(t, WithResonance(100))
	testutil.RequireVecNearlyEqual(t, f.Resonance(), lane.Splat(float64(MaxResonance)), 0)

	if err := f.SetParams(f.Cutoff(), lane.Splat(7.0), 0); err != nil {
		t.Fatalf("SetParams() error = %v", err)
	}

	testutil.RequireVecNearlyEqual(t, f.Resonance(), lane.Splat(float64(MaxResonance)), 0)
}

func TestUnityDCGainWithoutResonance(t *testing.T) {
	f := mustNew(t, WithResonance(0))

	buf := testutil.LaneDC(lane.Splat(0.1), 8000)
	f.ProcessBlock(buf)

	testutil.RequireVecNearlyEqual(t, buf[len(buf)-1], lane.Splat(0.1), 1e-4)
}

func TestAttenuatesAboveCutoff(t *testing.T) {
	f := mustNew(t, WithCutoff(0.05), WithResonance(0))

	const n = 4096

	buf := testutil.LaneSine(lane.Splat(2.0), 0.1, n)
	f.ProcessBlock(buf)

	peak := 0.0
	for _, v := range buf[n/2:] {
		peak = math.Max(peak, v.Abs().ReduceMax())
	}

	// Four poles put 2 rad/sample far below -40 dB.
	if peak > 0.1*0.01 {
		t.Fatalf("stopband peak = %g, want < %g", peak, 0.1*0.01)
	}
}

func TestHighResonanceSustainsLongerTail(t *testing.T) {
	tail := func(resonance float64) float64 {
		f := mustNew(t, WithCutoff(0.15), WithResonance(resonance), WithNormalizeOutput(false))

		buf := testutil.LaneImpulse(1024)
		for i := range buf {
			buf[i] = buf[i].Scale(0.01)
		}

		f.ProcessBlock(buf)

		energy := 0.0
		for _, v := range buf[256:] {
			energy += v[0] * v[0]
		}

		return energy
	}

	low, high := tail(0.5), tail(3.5)
	if !(high > 10*low) {
		t.Fatalf("tail energy: res 3.5 = %g, res 0.5 = %g", high, low)
	}
}

func TestLanesAreIndependent(t *testing.T) {
	cutoffs := lane.FromFunc(func(i int) float64 { return 0.02 + 0.1*float64(i%lane.Width) })
	res := lane.FromFunc(func(i int) float64 { return 0.4 * float64(i%5) })

	f := mustNew(t, WithDrive(3))
	if err := f.SetParams(cutoffs, res, 0); err != nil {
		t.Fatalf("SetParams() error = %v", err)
	}

	src := testutil.LaneNoise(7, 0.8, 512)
	got := append([]lane.Vec[float64](nil), src...)
	f.ProcessBlock(got)

	for l := range lane.Width {
		ref := mustNew(t, WithDrive(3))
		if err := ref.SetParams(lane.Splat(cutoffs[l]), lane.Splat(res[l]), 0); err != nil {
			t.Fatalf("SetParams() error = %v", err)
		}

		want := append([]lane.Vec[float64](nil), src...)
		for i := range want {
			want[i] = lane.Splat(want[i][l])
		}

		ref.ProcessBlock(want)
		testutil.RequireSliceNearlyEqual(t, testutil.Column(got, l), testutil.Column(want, 0), 1e-12)
	}
}

func TestSetParamsRejectionKeepsState(t *testing.T) {
	f := mustNew(t, WithResonance(1.2))
	f.ProcessBlock(testutil.LaneNoise(3, 0.5, 64))

	cutoff, res, state := f.Cutoff(), f.Resonance(), f.State()

	tests := []struct {
		name      string
		cutoff    lane.Vec[float64]
		resonance lane.Vec[float64]
		ramp      int
		want      error
	}{
		{"negative ramp", lane.Splat(0.2), lane.Splat(1.0), -1, ErrRamp},
		{"cutoff nyquist", lane.Splat(math.Pi), lane.Splat(1.0), 0, ErrCutoff},
		{"cutoff nan", lane.Splat(math.NaN()), lane.Splat(1.0), 0, ErrCutoff},
		{"cutoff below range", lane.Splat(1e-40), lane.Splat(1.0), 8, ErrCutoff},
		{"resonance negative", lane.Splat(0.2), lane.Splat(-1.0), 0, ErrResonance},
		{"resonance inf", lane.Splat(0.2), lane.Splat(math.Inf(1)), 0, ErrResonance},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := f.SetParams(tc.cutoff, tc.resonance, tc.ramp); !errors.Is(err, tc.want) {
				t.Fatalf("SetParams() error = %v, want %v", err, tc.want)
			}

			if f.Cutoff() != cutoff || f.Resonance() != res || f.State() != state || f.Ramping() {
				t.Fatal("rejected SetParams changed the filter")
			}
		})
	}
}

func TestRampLandsOnTarget(t *testing.T) {
	f := mustNew(t, WithCutoff(0.05), WithResonance(0.5))

	target := lane.Splat(0.8)
	if err := f.SetParams(target, lane.Splat(2.0), 128); err != nil {
		t.Fatalf("SetParams() error = %v", err)
	}

	if !f.Ramping() {
		t.Fatal("Ramping() = false after SetParams with ramp")
	}

	prev := f.Cutoff()
	for i := range 128 {
		_ = f.Process(lane.Splat(0.1))

		cur := f.Cutoff()
		if !cur.Gt(prev).All() && i < 127 {
			t.Fatalf("sample %d: cutoff did not rise: %v -> %v", i, prev, cur)
		}

		prev = cur
	}

	if f.Ramping() {
		t.Fatal("Ramping() = true after the ramp length")
	}

	testutil.RequireVecNearlyEqual(t, f.Cutoff(), target, 1e-12)
	testutil.RequireVecNearlyEqual(t, f.Resonance(), lane.Splat(2.0), 1e-12)
}

func TestExtremeInputsStayBounded(t *testing.T) {
	for _, res := range []float64{0, 2, MaxResonance} {
		f := mustNew(t, WithCutoff(3.0), WithResonance(res), WithDrive(maxDrive))

		buf := testutil.LaneNoise(11, 1e6, 2048)
		buf[100] = lane.Splat(math.NaN())
		buf[200] = lane.Splat(math.Inf(-1))
		f.ProcessBlock(buf)

		testutil.RequireFiniteLanes(t, buf)

		for _, v := range f.State().Stage {
			if v.Abs().ReduceMax() > stateLimit {
				t.Fatalf("res %v: stage exceeds limit: %v", res, v)
			}
		}
	}
}

func TestNonFiniteInputDropped(t *testing.T) {
	a := mustNew(t)
	b := mustNew(t)

	for i := range 32 {
		xa := lane.Splat(math.Sin(0.3 * float64(i)))
		xb := xa

		if i == 10 {
			xa = lane.Splat(math.NaN())
			xb = lane.Vec[float64]{}
		}

		if ya, yb := a.Process(xa), b.Process(xb); ya != yb {
			t.Fatalf("sample %d: %v != %v", i, ya, yb)
		}
	}
}

func TestStateRoundTrip(t *testing.T) {
	f := mustNew(t, WithResonance(2.4), WithDrive(2))
	f.ProcessBlock(testutil.LaneNoise(5, 0.6, 96))

	saved := f.State()

	first := testutil.LaneNoise(6, 0.6, 64)
	f.ProcessBlock(first)

	if err := f.SetState(saved); err != nil {
		t.Fatalf("SetState() error = %v", err)
	}

	second := testutil.LaneNoise(6, 0.6, 64)
	f.ProcessBlock(second)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("sample %d: %v != %v", i, first[i], second[i])
		}
	}

	f.Reset()

	if f.State() != (State[float64]{}) {
		t.Fatal("Reset() left non-zero state")
	}
}

func TestSetStateRejectsNonFinite(t *testing.T) {
	f := mustNew(t)

	var bad State[float64]
	bad.TanhLast[1][0] = math.NaN()

	if err := f.SetState(bad); err == nil {
		t.Fatal("SetState() accepted NaN")
	}

	bad = State[float64]{}
	bad.PrevOutput[lane.Width-1] = math.Inf(1)

	if err := f.SetState(bad); err == nil {
		t.Fatal("SetState() accepted Inf")
	}
}

func TestFloat32Stable(t *testing.T) {
	f, err := New[float32](WithCutoff(0.4), WithResonance(3.5), WithDrive(6))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	src := testutil.LaneNoise(9, 0.9, 4096)
	buf := make([]lane.Vec[float32], len(src))

	for i, x := range src {
		buf[i] = lane.Convert[float32](x)
	}

	f.ProcessBlock(buf)
	testutil.RequireFiniteLanes(t, buf)
}

func TestProcessDoesNotAllocate(t *testing.T) {
	f := mustNew(t)
	buf := testutil.LaneNoise(1, 0.5, 256)

	allocs := testing.AllocsPerRun(20, func() {
		_ = f.SetParams(lane.Splat(0.3), lane.Splat(1.0), 64)
		f.ProcessBlock(buf)
	})
	if allocs != 0 {
		t.Fatalf("allocations per run = %v, want 0", allocs)
	}
}
