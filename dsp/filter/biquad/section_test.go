package biquad

import (
	"math"
	"testing"
)

const eps = 1e-12

// traced is a stable lowpass-like section with a hand-checked impulse
// response.
var traced = Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}

func twoSectionCoeffs() []Coefficients {
	return []Coefficients{
		traced,
		{B0: 0.1, B1: 0.2, B2: 0.1, A1: -0.5, A2: 0.1},
	}
}

func testInput() []float64 {
	return []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8, -0.1}
}

func TestProcessSampleTrace(t *testing.T) {
	// n=0: y=0.25, d0=0.5+0.05=0.55, d1=0.25-0.01=0.24
	// n=1: y=0.55, d0=0.11+0.24=0.35, d1=-0.022
	// n=2: y=0.35, d0=0.07-0.022=0.048, d1=-0.014
	s := NewSection(traced)
	want := []float64{0.25, 0.55, 0.35, 0.048}

	for i, w := range want {
		x := 0.0
		if i == 0 {
			x = 1
		}

		if y := s.ProcessSample(x); math.Abs(y-w) > eps {
			t.Fatalf("sample %d: got %.15f, want %.15f", i, y, w)
		}
	}
}

func TestProcessSampleSpecialCoefficients(t *testing.T) {
	tests := []struct {
		name    string
		c       Coefficients
		in, out []float64
	}{
		{"passthrough", Coefficients{B0: 1}, []float64{1, 0, -1, 0.5}, []float64{1, 0, -1, 0.5}},
		{"silence", Coefficients{}, []float64{1, 1, 1}, []float64{0, 0, 0}},
		{"unit delay", Coefficients{B1: 1}, []float64{1, 2, 3, 4}, []float64{0, 1, 2, 3}},
		{"two-tap average", Coefficients{B0: 0.5, B1: 0.5}, []float64{1, 1, 1}, []float64{0.5, 1, 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSection(tc.c)
			for i, x := range tc.in {
				if y := s.ProcessSample(x); math.Abs(y-tc.out[i]) > eps {
					t.Fatalf("sample %d: got %v, want %v", i, y, tc.out[i])
				}
			}
		})
	}
}

func TestProcessBlockMatchesProcessSample(t *testing.T) {
	for _, n := range []int{0, 1, 9} {
		in := testInput()[:n]

		ref := NewSection(traced)
		got := append([]float64(nil), in...)
		NewSection(traced).ProcessBlock(got)

		for i, x := range in {
			if want := ref.ProcessSample(x); math.Abs(got[i]-want) > eps {
				t.Fatalf("n=%d sample %d: block=%v want=%v", n, i, got[i], want)
			}
		}
	}
}

func TestStateSaveRestore(t *testing.T) {
	s := NewSection(traced)
	s.ProcessSample(1)
	s.ProcessSample(0.5)

	saved := s.State()
	y1, y2 := s.ProcessSample(-0.3), s.ProcessSample(0.7)

	s.SetState(saved)

	if a, b := s.ProcessSample(-0.3), s.ProcessSample(0.7); a != y1 || b != y2 {
		t.Fatalf("after restore got %v %v, want %v %v", a, b, y1, y2)
	}

	s.Reset()

	if s.State() != [2]float64{} {
		t.Fatalf("state after Reset = %v", s.State())
	}
}

func TestLongRunDecays(t *testing.T) {
	s := NewSection(traced)
	s.ProcessSample(1)

	buf := make([]float64, 10000)
	s.ProcessBlock(buf)

	if st := s.State(); math.Abs(st[0]) > 1e-100 || math.Abs(st[1]) > 1e-100 {
		t.Fatalf("state did not decay: %v", st)
	}
}
