package testutil

import (
	"testing"

	"github.com/cwbudde/algo-lanedsp/dsp/lane"
)

func TestRequireHelpersAccept(t *testing.T) {
	a := lane.Splat(float32(1))
	b := a.AddScalar(1e-7)

	RequireVecNearlyEqual(t, a, b, 1e-6)
	RequireVecNearlyEqual(t, a, a, 0)
	RequireSliceNearlyEqual(t, Column([]lane.Vec[float32]{a, b}, 0), []float64{1, 1}, 1e-6)
	RequireSliceNearlyEqual(t, nil, []float64{}, 0)
	RequireFiniteLanes(t, []lane.Vec[float32]{a, b})
	RequireFiniteLanes[float64](t, nil)
}
