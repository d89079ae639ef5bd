package block_test

import (
	"fmt"

	"github.com/cwbudde/algo-lanedsp/dsp/block"
	"github.com/cwbudde/algo-lanedsp/dsp/lane"
)

func ExampleDeinterleave() {
	left := []float64{1, 2, 3}
	right := []float64{10, 20, 30}

	buf := make([]lane.Vec[float64], 3)
	if _, err := block.Deinterleave(buf, [][]float64{left, right}, 0); err != nil {
		panic(err)
	}

	for i := range buf {
		buf[i] = lane.SwapStereo(buf[i])
	}

	if _, err := block.Scatter([][]float64{left, right}, buf, 0); err != nil {
		panic(err)
	}

	fmt.Println(left, right)
	// Output:
	// [10 20 30] [1 2 3]
}

func ExampleGain() {
	g := block.NewGain(0)
	if err := g.SetGain(0, 4); err != nil {
		panic(err)
	}

	buf := []float64{1, 1, 1, 1, 1}
	g.Process(buf)

	fmt.Println(buf)
	// Output:
	// [0.75 0.5 0.25 0 0]
}
