package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/comb"
	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

const (
	defaultReverbDecay    = 1.5
	defaultReverbPreDelay = 0.03
	defaultReverbMix      = 0.7
	defaultReverbTaps     = 10

	reverbChunkSize = 256
)

// ReverbOption configures a Reverb.
type ReverbOption func(*reverbConfig)

type reverbConfig struct {
	decay    float64
	preDelay float64
	mix      float64
	taps     int
	kind     comb.Kind
}

// WithReverbDecay sets the approximate decay time in seconds. Values <= 0
// disable recirculation.
func WithReverbDecay(seconds float64) ReverbOption {
	return func(c *reverbConfig) {
		c.decay = seconds
	}
}

// WithReverbPreDelay sets the lower bound of all tap delays in seconds.
func WithReverbPreDelay(seconds float64) ReverbOption {
	return func(c *reverbConfig) {
		c.preDelay = seconds
	}
}

// WithReverbMix sets the wet amount, clamped to [0, 1].
func WithReverbMix(mix float64) ReverbOption {
	return func(c *reverbConfig) {
		c.mix = mix
	}
}

// WithReverbTaps sets the number of delay taps.
func WithReverbTaps(n int) ReverbOption {
	return func(c *reverbConfig) {
		c.taps = n
	}
}

// WithReverbKind selects the ring-buffer filter used for every tap.
func WithReverbKind(kind comb.Kind) ReverbOption {
	return func(c *reverbConfig) {
		c.kind = kind
	}
}

// Reverb is a bank of ring-buffer filters with prime-length delays whose
// averaged output is blended with the dry signal.
type Reverb struct {
	sampleRate float64
	decay      float64
	preDelay   float64
	mix        float64
	kind       comb.Kind

	taps    []*comb.Filter
	lengths []int

	wet []float64
	tap []float64
}

// NewReverb constructs a reverb with practical defaults.
func NewReverb(sampleRate float64, opts ...ReverbOption) (*Reverb, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("%w: reverb sample rate must be > 0: %f", core.ErrInvalidArgument, sampleRate)
	}

	cfg := reverbConfig{
		decay:    defaultReverbDecay,
		preDelay: defaultReverbPreDelay,
		mix:      defaultReverbMix,
		taps:     defaultReverbTaps,
		kind:     comb.BackwardComb,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.taps <= 0 {
		return nil, fmt.Errorf("%w: reverb tap count must be > 0: %d", core.ErrInvalidArgument, cfg.taps)
	}
	if cfg.preDelay < 0 || !core.IsFinite(cfg.preDelay) {
		return nil, fmt.Errorf("%w: reverb pre-delay must be >= 0: %f", core.ErrInvalidArgument, cfg.preDelay)
	}
	if math.IsNaN(cfg.decay) || math.IsNaN(cfg.mix) {
		return nil, fmt.Errorf("%w: reverb decay and mix must not be NaN", core.ErrInvalidArgument)
	}

	r := &Reverb{
		sampleRate: sampleRate,
		decay:      cfg.decay,
		preDelay:   cfg.preDelay,
		mix:        core.Clamp(cfg.mix, 0, 1),
		kind:       cfg.kind,
		lengths:    NextPrimes(cfg.taps, int(math.Round(cfg.preDelay*sampleRate))),
		wet:        make([]float64, 0, reverbChunkSize),
		tap:        make([]float64, 0, reverbChunkSize),
	}

	r.taps = make([]*comb.Filter, len(r.lengths))
	for i, k := range r.lengths {
		alpha := TapAlpha(float64(k)/sampleRate, r.decay)
		f, err := comb.New(r.kind, k, comb.WithAlpha(alpha))
		if err != nil {
			return nil, fmt.Errorf("reverb tap %d: %w", i, err)
		}
		r.taps[i] = f
	}
	return r, nil
}

// TapAlpha returns the gain that makes a tap of the given delay decay by
// roughly e^-pi over decay seconds. It returns 0 for decay <= 0.
func TapAlpha(delaySeconds, decay float64) float64 {
	if decay <= 0 {
		return 0
	}
	return math.Exp(-math.Pi * delaySeconds / decay)
}

// NextPrimes returns the n smallest primes >= start.
func NextPrimes(n, start int) []int {
	if n <= 0 {
		return nil
	}
	out := make([]int, 0, n)
	for candidate := max(start, 2); len(out) < n; candidate++ {
		if isPrime(candidate) {
			out = append(out, candidate)
		}
	}
	return out
}

func isPrime(n int) bool {
	if n <= 3 {
		return n > 1
	}
	if n%2 == 0 || n%3 == 0 {
		return false
	}
	for i := 5; i*i <= n; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}
	return true
}

// ProcessInPlace applies the reverb to buf in place.
func (r *Reverb) ProcessInPlace(buf []float64) {
	for start := 0; start < len(buf); start += reverbChunkSize {
		end := min(start+reverbChunkSize, len(buf))
		r.processChunk(buf[start:end])
	}
}

// Process writes the reverberated src into dst. dst may alias src.
func (r *Reverb) Process(dst, src []float64) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%w: reverb dst length %d != src length %d",
			core.ErrInvalidArgument, len(dst), len(src))
	}
	copy(dst, src)
	r.ProcessInPlace(dst)
	return nil
}

func (r *Reverb) processChunk(x []float64) {
	r.wet = core.EnsureLen(r.wet, len(x))
	r.tap = core.EnsureLen(r.tap, len(x))
	wet, tap := r.wet, r.tap
	core.Zero(wet)

	for _, f := range r.taps {
		for i, v := range x {
			tap[i] = f.ProcessSample(v)
		}
		vecmath.AddBlockInPlace(wet, tap)
	}

	vecmath.ScaleBlockInPlace(wet, r.mix/float64(len(r.taps)))
	vecmath.ScaleBlockInPlace(x, 1-r.mix)
	vecmath.AddBlockInPlace(x, wet)
}

// Reset clears all tap delay lines.
func (r *Reverb) Reset() {
	for _, f := range r.taps {
		f.Reset()
	}
}

// SampleRate returns sample rate in Hz.
func (r *Reverb) SampleRate() float64 { return r.sampleRate }

// Decay returns the decay time in seconds.
func (r *Reverb) Decay() float64 { return r.decay }

// PreDelay returns the pre-delay in seconds.
func (r *Reverb) PreDelay() float64 { return r.preDelay }

// Mix returns the wet amount in [0, 1].
func (r *Reverb) Mix() float64 { return r.mix }

// Kind returns the tap filter kind.
func (r *Reverb) Kind() comb.Kind { return r.kind }

// Taps returns a copy of the tap delay lengths in samples.
func (r *Reverb) Taps() []int {
	return append([]int(nil), r.lengths...)
}
