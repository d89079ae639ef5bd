package biquad

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-lanedsp/dsp/lane"
)

func TestLanesMatchScalarSections(t *testing.T) {
	s := NewLanes[float64](traced)
	ref := make([]*Section, lane.Width)

	for l := range lane.Width {
		c := Lowpass(200*float64(l+1), 0.5+0.25*float64(l), 48000)
		if err := s.SetLane(l, c); err != nil {
			t.Fatalf("SetLane(%d) error = %v", l, err)
		}

		if s.Coefficients(l) != c {
			t.Fatalf("lane %d coefficients = %+v, want %+v", l, s.Coefficients(l), c)
		}

		ref[l] = NewSection(c)
	}

	for i, x := range testInput() {
		in := lane.FromFunc(func(l int) float64 { return x * float64(l+1) })
		out := s.Process(in)

		for l := range lane.Width {
			if want := ref[l].ProcessSample(in[l]); math.Abs(out[l]-want) > eps {
				t.Fatalf("sample %d lane %d: got %v, want %v", i, l, out[l], want)
			}
		}
	}
}

func TestLanesBlockAndState(t *testing.T) {
	s := NewLanes[float32](traced)

	buf := make([]lane.Vec[float32], 4)
	buf[0] = lane.Splat[float32](1)
	s.ProcessBlock(buf)

	want := []float32{0.25, 0.55, 0.35, 0.048}
	for i, v := range buf {
		if math.Abs(float64(v[lane.Width-1]-want[i])) > 1e-6 {
			t.Fatalf("sample %d = %v, want %v", i, v[lane.Width-1], want[i])
		}
	}

	saved := s.State()
	a := s.Process(lane.Splat[float32](0.5))
	s.SetState(saved)

	if b := s.Process(lane.Splat[float32](0.5)); a != b {
		t.Fatalf("after restore got %v, want %v", b, a)
	}

	s.Reset()

	if s.State() != ([2]lane.Vec[float32]{}) {
		t.Fatal("Reset left state")
	}

	if err := s.SetLane(lane.Width, traced); err == nil {
		t.Fatal("expected error for lane out of range")
	}

	if err := s.SetLane(-1, traced); err == nil {
		t.Fatal("expected error for negative lane")
	}
}

func TestLanesDoNotAllocate(t *testing.T) {
	s := NewLanes[float64](traced)
	x := lane.Splat(0.1)

	allocs := testing.AllocsPerRun(1000, func() {
		x = s.Process(x)
	})
	if allocs != 0 {
		t.Fatalf("Process allocated %v times per run", allocs)
	}
}

func requirePanics(t *testing.T, name string, fn func()) {
	t.Helper()

	defer func() {
		if recover() == nil {
			t.Fatalf("%s did not panic", name)
		}
	}()

	fn()
}

func TestLaneIndexOutOfRange(t *testing.T) {
	s := NewLanes[float64](traced)

	for _, l := range []int{-1, lane.Width} {
		if err := s.SetLane(l, Coefficients{B0: 1}); err == nil {
			t.Fatalf("SetLane(%d) error = nil", l)
		}

		requirePanics(t, "Lanes.Coefficients", func() { _ = s.Coefficients(l) })
		requirePanics(t, "Cascade.Response", func() { _ = NewCascade[float64](traced).Response(l, 0.1) })
	}

	if s.Coefficients(lane.Width-1) != traced {
		t.Fatal("rejected SetLane changed the last lane")
	}
}
