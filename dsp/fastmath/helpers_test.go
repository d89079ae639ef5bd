package fastmath

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-lanedsp/dsp/lane"
)

func TestDerivedFunctions(t *testing.T) {
	x := lane.FromFunc(func(i int) float64 { return 0.1 + 0.37*float64(i) })

	tests := []struct {
		name string
		got  lane.Vec[float64]
		ref  func(float64) float64
		tol  float64
	}{
		{"SemitonesToRatio", SemitonesToRatio(x.Scale(12)), func(v float64) float64 { return math.Exp2(v) }, 1e-14},
		{"DBToGain", DBToGain(x.Scale(-20)), func(v float64) float64 { return math.Pow(10, -v) }, 1e-13},
		{"GainToDB", GainToDB(x), func(v float64) float64 { return 20 * math.Log10(v) }, 1e-13},
		{"Tan", Tan(x.Scale(0.5)), func(v float64) float64 { return math.Tan(v * 0.5) }, 1e-13},
		{"TanHalf", TanHalf(x), func(v float64) float64 { return math.Tan(v / 2) }, 1e-13},
		{"Sigmoid", Sigmoid(x.Scale(3).AddScalar(-4)), func(v float64) float64 { return 1 / (1 + math.Exp(-(3*v - 4))) }, 1e-14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := range lane.Width {
				want := tt.ref(x[i])
				if math.Abs(tt.got[i]-want) > tt.tol*math.Max(1, math.Abs(want)) {
					t.Fatalf("lane %d (x=%v): got %v, want %v", i, x[i], tt.got[i], want)
				}
			}
		})
	}
}

func TestTanHalfPrewarpRange(t *testing.T) {
	// Cutoffs just inside (0, π) must give positive finite prewarped gains.
	w := lane.FromFunc(func(i int) float64 {
		return 1e-6 + (math.Pi-2e-6)*float64(i)/float64(lane.Width-1)
	})

	g := TanHalf(w)
	for i := range lane.Width {
		if !(g[i] > 0) || math.IsInf(g[i], 0) {
			t.Fatalf("TanHalf(%v) = %v", w[i], g[i])
		}
	}
}

func TestLerp(t *testing.T) {
	a := lane.Splat(2.0)
	b := lane.Splat(6.0)
	f := lane.FromFunc(func(i int) float64 { return float64(i) / float64(lane.Width-1) })

	got := Lerp(a, b, f)
	if got[0] != 2 || got[lane.Width-1] != 6 {
		t.Fatalf("Lerp endpoints: %v %v", got[0], got[lane.Width-1])
	}

	for i := 1; i < lane.Width; i++ {
		if got[i] <= got[i-1] {
			t.Fatalf("Lerp not increasing at lane %d: %v", i, got)
		}
	}
}

func TestSinCosIdentity(t *testing.T) {
	x := lane.FromFunc(func(i int) float32 { return float32(i)*1.7 - 5 })
	s, c := SinCos(x)

	for i := range lane.Width {
		if d := math.Abs(float64(s[i]*s[i]+c[i]*c[i]) - 1); d > 3e-7 {
			t.Fatalf("sin²+cos² at %v off by %g", x[i], d)
		}
	}
}

func TestNoAllocations(t *testing.T) {
	x := lane.FromFunc(func(i int) float32 { return float32(i) * 0.3 })

	var sink lane.Vec[float32]
	allocs := testing.AllocsPerRun(100, func() {
		sink = Exp2(x).Add(Log2(x)).Add(Sin(x)).Add(Tanh(x)).Add(Pow(x, x))
	})

	if allocs != 0 {
		t.Fatalf("allocs = %v, want 0", allocs)
	}

	_ = sink
}
