package ladder

import (
	"testing"

	"github.com/cwbudde/algo-lanedsp/dsp/lane"
	"github.com/cwbudde/algo-lanedsp/internal/testutil"
)

func BenchmarkProcessBlock1024(b *testing.B) {
	tests := []struct {
		name string
		ramp bool
	}{
		{name: "static"},
		{name: "ramping", ramp: true},
	}

	for _, tc := range tests {
		b.Run(tc.name, func(b *testing.B) {
			f, err := New[float32](WithResonance(2.5), WithDrive(4))
			if err != nil {
				b.Fatalf("New() error = %v", err)
			}

			src := testutil.LaneNoise(1, 0.5, 1024)
			buf := make([]lane.Vec[float32], len(src))

			b.SetBytes(int64(len(buf) * lane.Width * 4))
			b.ReportAllocs()

			for b.Loop() {
				if tc.ramp {
					_ = f.SetParams(lane.Splat[float32](0.3), lane.Splat[float32](2.5), len(buf))
				}

				for i, x := range src {
					buf[i] = lane.Convert[float32](x)
				}

				f.ProcessBlock(buf)
			}
		})
	}
}
