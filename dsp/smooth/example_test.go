package smooth_test

import (
	"fmt"

	"github.com/cwbudde/algo-lanedsp/dsp/lane"
	"github.com/cwbudde/algo-lanedsp/dsp/smooth"
)

func ExampleLinear() {
	s := smooth.NewLinear(lane.Splat(0.0))
	if err := s.SetTarget(lane.Splat(1.0), 4); err != nil {
		panic(err)
	}

	fmt.Print(s.Current()[0])
	for range 5 {
		fmt.Print(" ", s.Tick()[0])
	}
	fmt.Println()

	// Output:
	// 0 0.25 0.5 0.75 1 1
}

func ExampleLog() {
	// Sweep a cutoff from 100 Hz to 1.6 kHz, one octave per sample.
	s, err := smooth.NewLog(lane.Splat(100.0))
	if err != nil {
		panic(err)
	}

	if err := s.SetTarget(lane.Splat(1600.0), 4); err != nil {
		panic(err)
	}

	fmt.Printf("%.1f", s.Tick()[0])
	for range 3 {
		fmt.Printf(" %.1f", s.Tick()[0])
	}
	fmt.Println()

	err = s.SetTarget(lane.Splat(0.0), 4)
	fmt.Println(err)

	// Output:
	// 200.0 400.0 800.0 1600.0
	// smooth: log: SetTarget: value must be strictly positive
}
