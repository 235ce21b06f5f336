// Command synthinfo renders the synthesis primitives and prints their output.
//
// Usage:
//
//	synthinfo [flags]
//
// Examples:
//
//	synthinfo -mode envelope -rate 1000 -n 40
//	synthinfo -mode echo -length 3 -alpha 0.5 -n 10
//	synthinfo -mode comb -length 8 -alpha 1 -response -fft 64
//	synthinfo -mode reverb -rate 8000 -n 4096 -response
//	synthinfo -cpu
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-synth/dsp/comb"
	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/effects"
	"github.com/cwbudde/algo-synth/dsp/envelope"
	"github.com/cwbudde/algo-synth/dsp/render"
	"github.com/cwbudde/algo-synth/measure/response"
	"github.com/cwbudde/algo-vecmath/cpu"
)

type options struct {
	mode    string
	rate    float64
	n       int
	gate    int
	attack  float64
	decay   float64
	sustain float64
	release float64
	loop    bool
	length  int
	alpha   float64
	mix     float64
	respond bool
	fftSize int
	showCPU bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("synthinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var o options
	fs.StringVar(&o.mode, "mode", "envelope", "what to render: envelope, comb, backward, echo or reverb")
	fs.Float64Var(&o.rate, "rate", 1000, "sample rate in Hz")
	fs.IntVar(&o.n, "n", 32, "number of samples to render")
	fs.IntVar(&o.gate, "gate", -1, "samples the envelope gate is held (default n/2)")
	fs.Float64Var(&o.attack, "attack", 0.005, "envelope attack in seconds")
	fs.Float64Var(&o.decay, "decay", 0.005, "envelope decay in seconds")
	fs.Float64Var(&o.sustain, "sustain", 0.5, "envelope sustain level")
	fs.Float64Var(&o.release, "release", 0.005, "envelope release in seconds")
	fs.BoolVar(&o.loop, "loop", false, "free-running envelope loop")
	fs.IntVar(&o.length, "length", 8, "filter delay in samples")
	fs.Float64Var(&o.alpha, "alpha", comb.DefaultAlpha, "filter gain")
	fs.Float64Var(&o.mix, "mix", 0.7, "reverb wet amount")
	fs.BoolVar(&o.respond, "response", false, "print the magnitude response instead of samples")
	fs.IntVar(&o.fftSize, "fft", 256, "fft size for -response")
	fs.BoolVar(&o.showCPU, "cpu", false, "print detected SIMD features and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: synthinfo [flags]\n\n")
		fmt.Fprintf(stderr, "Renders ADSR envelopes, ring-buffer filters and the comb reverb.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if o.showCPU {
		printCPU(stdout, stderr)
		return 0
	}

	if err := execute(stdout, o); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func execute(w io.Writer, o options) error {
	if o.n < 0 {
		return fmt.Errorf("%w: -n must be >= 0", core.ErrInvalidArgument)
	}

	mode := strings.ToLower(strings.TrimSpace(o.mode))
	if mode == "envelope" {
		return printEnvelope(w, o)
	}

	p, err := newProcessor(mode, o)
	if err != nil {
		return err
	}

	ir, err := response.ImpulseResponse(p, max(o.n, 1))
	if err != nil {
		return err
	}
	if o.respond {
		return printResponse(w, ir, o)
	}
	if err := printSamples(w, ir[:o.n]); err != nil {
		return err
	}
	if rt, err := response.DecayTime(ir, o.rate); err == nil {
		fmt.Fprintf(w, "decay time (60 dB): %.3f s\n", rt)
	}
	return nil
}

func newProcessor(mode string, o options) (render.Processor, error) {
	if mode == "reverb" {
		r, err := effects.NewReverb(o.rate, effects.WithReverbMix(o.mix))
		if err != nil {
			return nil, err
		}
		return r, nil
	}

	kind, err := comb.ParseKind(mode)
	if err != nil {
		return nil, err
	}
	f, err := comb.New(kind, o.length, comb.WithAlpha(o.alpha))
	if err != nil {
		return nil, err
	}
	return f, nil
}

func printEnvelope(w io.Writer, o options) error {
	cfg := core.ApplyProcessorOptions(core.WithSampleRate(o.rate))
	env, err := envelope.New(o.attack, o.decay, o.sustain, o.release, cfg.DT(),
		envelope.WithLoop(o.loop))
	if err != nil {
		return err
	}

	gate := o.gate
	if gate < 0 {
		gate = o.n / 2
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Sample\tTime [s]\tGate\tStage\tValue\n")
	fmt.Fprintf(tw, "------\t--------\t----\t-----\t-----\n")

	env.Gate(true)
	for i := range o.n {
		if i == gate {
			env.Gate(false)
		}
		v := env.Next()
		fmt.Fprintf(tw, "%d\t%.4f\t%t\t%s\t%.6f\n", i, float64(i)*env.DT(), i < gate, env.Stage(), v)
	}
	return tw.Flush()
}

func printSamples(w io.Writer, samples []float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Sample\tValue\n")
	fmt.Fprintf(tw, "------\t-----\n")
	for i, v := range samples {
		fmt.Fprintf(tw, "%d\t%.6f\n", i, v)
	}
	fmt.Fprintf(tw, "peak\t%.6f\n", response.Peak(samples))
	return tw.Flush()
}

func printResponse(w io.Writer, ir []float64, o options) error {
	mag, err := response.Magnitude(ir, o.fftSize)
	if err != nil {
		return err
	}
	db := append([]float64(nil), mag...)
	response.Decibels(db)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Bin\tFreq [Hz]\tMagnitude\tLevel [dB]\n")
	fmt.Fprintf(tw, "---\t---------\t---------\t----------\n")
	for k := range mag {
		freq := float64(k) * o.rate / float64(o.fftSize)
		fmt.Fprintf(tw, "%d\t%.2f\t%.6f\t%.2f\n", k, freq, mag[k], db[k])
	}
	return tw.Flush()
}

func printCPU(w, errW io.Writer) {
	f := cpu.DetectFeatures()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Architecture\t%s\n", f.Architecture)
	fmt.Fprintf(tw, "SSE2\t%t\n", f.HasSSE2)
	fmt.Fprintf(tw, "AVX\t%t\n", f.HasAVX)
	fmt.Fprintf(tw, "AVX2\t%t\n", f.HasAVX2)
	fmt.Fprintf(tw, "AVX-512\t%t\n", f.HasAVX512)
	fmt.Fprintf(tw, "NEON\t%t\n", f.HasNEON)
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(errW, "error: failed to flush output: %v\n", err)
	}
}
