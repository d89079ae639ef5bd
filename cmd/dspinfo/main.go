// Command dspinfo prints accuracy and response tables for the lane DSP
// primitives.
//
// Usage:
//
//	dspinfo [flags]
//
// Without section flags it prints everything.
//
// Examples:
//
//	dspinfo -func
//	dspinfo -filter svf -mode bandshelf -cutoff 2000 -q 2 -gain 6
//	dspinfo -filter ladder -cutoff 800 -q 3
//	dspinfo -cpu
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cwbudde/algo-lanedsp/dsp/core"
)

type options struct {
	funcs   bool
	filter  string
	cpu     bool
	points  int
	mode    string
	cutoff  float64
	q       float64
	gainDB  float64
	rate    float64
	verbose bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}

		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var opts options

	fs := flag.NewFlagSet("dspinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.funcs, "func", false, "print fast-math error table")
	fs.StringVar(&opts.filter, "filter", "", "print response of a filter: svf, onepole or ladder")
	fs.BoolVar(&opts.cpu, "cpu", false, "print CPU vector features")
	fs.IntVar(&opts.points, "points", 1<<14, "sample points per fast-math function")
	fs.StringVar(&opts.mode, "mode", "lowpass", "filter mode (svf and onepole)")
	fs.Float64Var(&opts.cutoff, "cutoff", 1000, "cutoff in Hz")
	fs.Float64Var(&opts.q, "q", 0.7071, "svf Q or ladder resonance")
	fs.Float64Var(&opts.gainDB, "gain", 0, "shelf/bell gain in dB")
	fs.Float64Var(&opts.rate, "sr", 48000, "sample rate in Hz")
	fs.BoolVar(&opts.verbose, "v", false, "log configuration at debug level")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: dspinfo [flags]\n\n")
		fmt.Fprintf(stderr, "Prints fast-math accuracy, filter responses and CPU features.\n")
		fmt.Fprintf(stderr, "Without -func, -filter or -cpu, prints all sections.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if opts.verbose {
		core.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		defer core.SetLogger(nil)
	}

	all := !opts.funcs && opts.filter == "" && !opts.cpu
	if all {
		opts.filter = "svf"
	}

	if opts.cpu || all {
		if err := printCPU(stdout); err != nil {
			return err
		}
	}

	if opts.funcs || all {
		if err := printFuncs(stdout, opts.points); err != nil {
			return err
		}
	}

	if opts.filter != "" {
		if err := printFilter(stdout, opts); err != nil {
			return err
		}
	}

	return nil
}
