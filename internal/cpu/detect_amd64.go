//go:build amd64

package cpu

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// detectFeatures reads CPUID through x/sys/cpu. The AVX flags already account for
// OS support of the wider register state.
func detectFeatures() Features {
	x := &cpu.X86

	return Features{
		Architecture: runtime.GOARCH,
		HasSSE2:      x.HasSSE2,
		HasAVX:       x.HasAVX,
		HasAVX2:      x.HasAVX2 && x.HasFMA,
		HasAVX512:    x.HasAVX512F && x.HasAVX512DQ,
	}
}
