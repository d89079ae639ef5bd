package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-lanedsp/dsp/fastmath"
	"github.com/cwbudde/algo-lanedsp/dsp/lane"
	"github.com/cwbudde/algo-lanedsp/internal/cpu"
	approx "github.com/meko-christian/algo-approx"
)

// approxRefs are the algo-approx counterparts shown next to fastmath.
var approxRefs = map[string]func(float64) float64{
	"Exp": approx.FastExp64,
	"Ln":  approx.FastLog64,
}

func printCPU(w io.Writer) error {
	f := cpu.Detect()
	best := f.Best()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Architecture\t%s\n", f.Architecture)
	fmt.Fprintf(tw, "Extensions\t%s\n", f)
	fmt.Fprintf(tw, "Widest\t%s (%d bit)\n", best, best.RegisterBits())
	fmt.Fprintf(tw, "lane.Width\t%d\n", lane.Width)
	fmt.Fprintf(tw, "Native lanes\tfloat32 %d, float64 %d\n", f.Lanes(4), f.Lanes(8))
	fmt.Fprintln(tw)

	return tw.Flush()
}

type funcStats struct {
	err64, use64 float64
	err32, use32 float64
	errApprox    float64
	hasApprox    bool
}

func printFuncs(w io.Writer, points int) error {
	if points < lane.Width {
		points = lane.Width
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Function\tDomain\tErr f64\tBound use f64\tErr f32\tBound use f32\talgo-approx\n")
	fmt.Fprintf(tw, "--------\t------\t-------\t-------------\t-------\t-------------\t-----------\n")

	for _, b := range fastmath.Bounds() {
		s := measureBound(b, points)

		ref := "-"
		if s.hasApprox {
			ref = fmt.Sprintf("%.2e", s.errApprox)
		}

		fmt.Fprintf(tw, "%s\t[%.4g, %.4g]\t%.2e\t%.3f\t%.2e\t%.3f\t%s\n",
			b.Name, b.Lo, b.Hi, s.err64, s.use64, s.err32, s.use32, ref)
	}

	fmt.Fprintln(tw)

	return tw.Flush()
}

// measureBound samples the domain of b and reports the worst mixed
// error |got-want|/max(1, |want|) and the worst fraction of the
// documented bound used.
func measureBound(b fastmath.Bound, points int) funcStats {
	var s funcStats

	approxFn, hasApprox := approxRefs[b.Name]
	s.hasApprox = hasApprox

	xs := samplePoints(b.Lo, b.Hi, points)

	for i := 0; i+lane.Width <= len(xs); i += lane.Width {
		x := lane.Load(xs[i:])
		x32 := lane.Convert[float32](x)

		y := b.Eval(x)
		y32 := b.Eval32(x32)

		for l := range lane.Width {
			want := b.Ref(x[l])
			s.err64 = max(s.err64, mixedError(y[l], want))
			s.use64 = max(s.use64, boundUse(b, y[l], want, 8))

			if v := float64(x32[l]); v >= b.Lo && v <= b.Hi {
				want32 := b.Ref(v)
				s.err32 = max(s.err32, mixedError(float64(y32[l]), want32))
				s.use32 = max(s.use32, boundUse(b, float64(y32[l]), want32, 4))
			}

			if hasApprox {
				s.errApprox = max(s.errApprox, mixedError(approxFn(x[l]), want))
			}
		}
	}

	return s
}

// samplePoints spans [lo, hi] linearly, or geometrically when the
// interval is positive and covers many decades.
func samplePoints(lo, hi float64, n int) []float64 {
	n -= n % lane.Width
	xs := make([]float64, n)

	if lo > 0 && hi/lo > 1e6 {
		llo, lhi := math.Log(lo), math.Log(hi)
		for i := range xs {
			xs[i] = math.Exp(llo + (lhi-llo)*float64(i)/float64(n-1))
		}

		xs[0], xs[n-1] = lo, hi

		return xs
	}

	for i := range xs {
		xs[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}

	return xs
}

func mixedError(got, want float64) float64 {
	return math.Abs(got-want) / max(1, math.Abs(want))
}

func boundUse(b fastmath.Bound, got, want float64, size int) float64 {
	abs, rel := b.Abs, b.Rel
	if size == 4 {
		abs, rel = b.Abs32, b.Rel32
	}

	limit := abs + rel*math.Abs(want)
	if limit == 0 {
		return 0
	}

	return math.Abs(got-want) / limit
}
