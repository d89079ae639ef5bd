//go:build arm64

package cpu

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// detectFeatures reports Advanced SIMD, which every arm64 core Go supports has
// but x/sys/cpu still exposes as a flag.
func detectFeatures() Features {
	return Features{Architecture: runtime.GOARCH, HasNEON: cpu.ARM64.HasASIMD}
}
