package block

import (
	"github.com/cwbudde/algo-lanedsp/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Mix adds gain·src into dst over the common length and returns the
// scratch it used. Passing the returned slice back in avoids allocating
// on later calls.
func Mix(dst, src []float64, gain float64, scratch []float64) []float64 {
	n := min(len(dst), len(src))

	scratch = core.EnsureLen(scratch, n)
	vecmath.ScaleBlock(scratch, src[:n], gain)
	vecmath.AddBlockInPlace(dst[:n], scratch)

	return scratch
}
