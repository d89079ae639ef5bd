package testutil

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-lanedsp/dsp/lane"
)

// RequireSliceNearlyEqual fails t on a length mismatch or when the worst
// element differs by more than eps. The report names the worst index, not
// the first.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, len(want) = %d", len(got), len(want))
	}

	worst, at := 0.0, -1

	for i := range got {
		d := math.Abs(got[i] - want[i])
		if math.IsNaN(d) {
			t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
		}

		if d > worst {
			worst, at = d, i
		}
	}

	if worst > eps {
		t.Fatalf("index %d: got %v, want %v (|diff| %g > %g)", at, got[at], want[at], worst, eps)
	}
}

// RequireVecNearlyEqual fails t if any lane of got and want differs by
// more than eps.
func RequireVecNearlyEqual[T lane.Float](t *testing.T, got, want lane.Vec[T], eps float64) {
	t.Helper()

	for l := range lane.Width {
		if d := math.Abs(float64(got[l]) - float64(want[l])); !(d <= eps) {
			t.Fatalf("lane %d: got %v, want %v (|diff| %g > %g)", l, got[l], want[l], d, eps)
		}
	}
}

// RequireFiniteLanes fails t if any lane of any sample is NaN or Inf.
func RequireFiniteLanes[T lane.Float](t *testing.T, block []lane.Vec[T]) {
	t.Helper()

	for i, v := range block {
		if m := v.IsFinite(); !m.All() {
			t.Fatalf("sample %d: %d of %d lanes finite: %v", i, m.Count(), lane.Width, v)
		}
	}
}
