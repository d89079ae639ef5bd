package biquad

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-lanedsp/dsp/lane"
)

func BenchmarkSectionProcessSample(b *testing.B) {
	s := NewSection(traced)
	x := 1.0

	for b.Loop() {
		x = s.ProcessSample(x)
	}

	_ = x
}

func BenchmarkSectionProcessBlock(b *testing.B) {
	for _, size := range []int{256, 1024, 4096} {
		b.Run(fmt.Sprintf("N=%d", size), func(b *testing.B) {
			s := NewSection(traced)

			buf := make([]float64, size)
			for i := range buf {
				buf[i] = float64(i) * 0.001
			}

			b.SetBytes(int64(size * 8))
			b.ReportAllocs()

			for b.Loop() {
				s.ProcessBlock(buf)
			}
		})
	}
}

func BenchmarkLanesProcessBlock(b *testing.B) {
	s := NewLanes[float32](traced)
	buf := make([]lane.Vec[float32], 1024)

	for i := range buf {
		buf[i] = lane.Splat(float32(i) * 0.001)
	}

	b.SetBytes(int64(len(buf) * lane.Width * 4))
	b.ReportAllocs()

	for b.Loop() {
		s.ProcessBlock(buf)
	}
}

func BenchmarkCascadeProcessBlock(b *testing.B) {
	c := NewCascade[float32](twoSectionCoeffs()...)
	buf := make([]lane.Vec[float32], 1024)

	b.SetBytes(int64(len(buf) * lane.Width * 4))
	b.ReportAllocs()

	for b.Loop() {
		c.ProcessBlock(buf)
	}
}
