package main

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/cwbudde/algo-lanedsp/dsp/core"
	"github.com/cwbudde/algo-lanedsp/dsp/filter/ladder"
	"github.com/cwbudde/algo-lanedsp/dsp/filter/onepole"
	"github.com/cwbudde/algo-lanedsp/dsp/filter/svf"
	"github.com/cwbudde/algo-lanedsp/measure/response"
)

const responseLength = 1 << 15

var tableFreqs = []float64{20, 50, 100, 200, 500, 1000, 2000, 5000, 10000, 20000}

type modeNamer interface {
	~int
	String() string
}

// parseMode finds the mode whose String matches name.
func parseMode[M modeNamer](name string) (M, error) {
	for m := M(0); m.String() != "unknown"; m++ {
		if m.String() == name {
			return m, nil
		}
	}

	return 0, fmt.Errorf("unknown mode %q", name)
}

func printFilter(w io.Writer, opts options) error {
	if !(opts.rate > 0) || !(opts.cutoff > 0 && opts.cutoff < opts.rate/2) {
		return fmt.Errorf("cutoff %v Hz must be in (0, %v)", opts.cutoff, opts.rate/2)
	}

	cfg := core.ApplyProcessorOptions(core.WithSampleRate(opts.rate))
	wc := cfg.Angular(opts.cutoff)
	gain := core.DBToLinear(opts.gainDB)

	core.Logger().Debug("measure filter",
		slog.String("filter", opts.filter),
		slog.String("mode", opts.mode),
		slog.Float64("cutoff_hz", opts.cutoff),
		slog.Float64("q", opts.q),
		slog.Float64("gain_db", opts.gainDB),
		slog.Float64("sample_rate", opts.rate),
	)

	var (
		proc     response.Processor[float64]
		analytic func(hz float64) float64
		label    string
	)

	switch opts.filter {
	case "svf":
		mode, err := parseMode[svf.Mode](opts.mode)
		if err != nil {
			return err
		}

		f, err := svf.New[float64](svf.WithMode(mode), svf.WithCutoff(wc), svf.WithQ(opts.q), svf.WithGain(gain))
		if err != nil {
			return err
		}

		c := f.Coefficients(0)
		proc, analytic = f, func(hz float64) float64 { return c.MagnitudeDB(hz, opts.rate) }
		label = fmt.Sprintf("svf %s, Q %.3g", mode, f.Q()[0])
	case "onepole":
		mode, err := parseMode[onepole.Mode](opts.mode)
		if err != nil {
			return err
		}

		f, err := onepole.New[float64](onepole.WithMode(mode), onepole.WithCutoff(wc), onepole.WithGain(gain))
		if err != nil {
			return err
		}

		c := f.Coefficients(0)
		proc, analytic = f, func(hz float64) float64 { return c.MagnitudeDB(hz, opts.rate) }
		label = fmt.Sprintf("onepole %s", mode)
	case "ladder":
		f, err := ladder.New[float64](ladder.WithCutoff(wc), ladder.WithResonance(opts.q))
		if err != nil {
			return err
		}

		proc, label = f, fmt.Sprintf("ladder, resonance %.3g", f.Resonance()[0])
	default:
		return fmt.Errorf("unknown filter %q", opts.filter)
	}

	res, err := response.Measure(proc, responseLength, opts.rate)
	if err != nil {
		return err
	}

	r := res[0]

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s at %.0f Hz (%.0f Hz rate)\n", label, opts.cutoff, opts.rate)
	fmt.Fprintf(tw, "Freq [Hz]\tMeasured [dB]\tAnalytic [dB]\n")
	fmt.Fprintf(tw, "---------\t-------------\t-------------\n")

	for _, hz := range append([]float64{opts.cutoff}, tableFreqs...) {
		if hz >= opts.rate/2 {
			continue
		}

		ref := "-"
		if analytic != nil {
			ref = fmt.Sprintf("%+.3f", analytic(hz))
		}

		fmt.Fprintf(tw, "%.0f\t%+.3f\t%s\n", hz, r.DBAt(hz), ref)
	}

	fmt.Fprintln(tw)

	return tw.Flush()
}

