// Package render drives an envelope-gated signal through a filter chain one
// block at a time, the way a synthesis host calls its primitives.
package render

import (
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/buffer"
	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/envelope"
	"github.com/cwbudde/algo-vecmath"
)

// Processor transforms a block in place. *comb.Filter and *effects.Reverb
// satisfy it.
type Processor interface {
	ProcessInPlace(buf []float64)
}

// Source writes the next len(dst) source samples into dst.
type Source func(dst []float64)

// Constant returns a source emitting v forever.
func Constant(v float64) Source {
	return func(dst []float64) {
		for i := range dst {
			dst[i] = v
		}
	}
}

// Impulse returns a source emitting a single 1 followed by silence.
func Impulse() Source {
	fired := false
	return func(dst []float64) {
		core.Zero(dst)
		if !fired && len(dst) > 0 {
			dst[0] = 1
			fired = true
		}
	}
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithChain appends processors applied after the envelope, in order.
func WithChain(p ...Processor) Option {
	return func(r *Renderer) {
		r.chain = append(r.chain, p...)
	}
}

// WithProcessorOptions overrides the block-size/sample-rate configuration.
// An explicit sample rate must match the envelope's 1/DT; New rejects a
// mismatch.
func WithProcessorOptions(opts ...core.ProcessorOption) Option {
	return func(r *Renderer) {
		var explicit core.ProcessorConfig
		for _, opt := range opts {
			if opt != nil {
				opt(&explicit)
			}
		}
		r.cfg = core.ApplyProcessorOptions(opts...)
		r.rateSet = explicit.SampleRate > 0
	}
}

// WithPool shares a block pool between renderers. Its block size takes
// precedence over the configured one.
func WithPool(p *buffer.Pool) Option {
	return func(r *Renderer) {
		r.pool = p
	}
}

// Renderer multiplies a source by an envelope (VCA) and runs the result
// through a processor chain.
type Renderer struct {
	env   *envelope.Envelope
	src   Source
	chain []Processor
	cfg   core.ProcessorConfig
	pool  *buffer.Pool

	rateSet bool
}

// New returns a renderer for env and src.
func New(env *envelope.Envelope, src Source, opts ...Option) (*Renderer, error) {
	if env == nil {
		return nil, fmt.Errorf("%w: render envelope is nil", core.ErrInvalidArgument)
	}
	if src == nil {
		return nil, fmt.Errorf("%w: render source is nil", core.ErrInvalidArgument)
	}

	r := &Renderer{
		env: env,
		src: src,
		cfg: core.DefaultProcessorConfig(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	for i, p := range r.chain {
		if p == nil {
			return nil, fmt.Errorf("%w: render chain processor %d is nil", core.ErrInvalidArgument, i)
		}
	}
	if r.rateSet && !core.NearlyEqual(env.DT(), r.cfg.DT(), 1e-9) {
		return nil, fmt.Errorf("%w: render sample rate %f does not match envelope dt %g",
			core.ErrInvalidArgument, r.cfg.SampleRate, env.DT())
	}
	if r.pool == nil {
		r.pool = buffer.NewPool(r.cfg.BlockSize)
	}
	return r, nil
}

// BlockSize returns the internal processing block size.
func (r *Renderer) BlockSize() int {
	return r.pool.BlockSize()
}

// SampleRate returns the rate the envelope runs at, 1/DT.
func (r *Renderer) SampleRate() float64 {
	return 1 / r.env.DT()
}

// Envelope returns the envelope driving the VCA.
func (r *Renderer) Envelope() *envelope.Envelope {
	return r.env
}

// Gate forwards a gate event to the envelope.
func (r *Renderer) Gate(on bool) {
	r.env.Gate(on)
}

// RenderBlock fills dst with the next len(dst) output samples. Blocks longer
// than BlockSize are processed in BlockSize chunks.
func (r *Renderer) RenderBlock(dst []float64) {
	env := r.pool.Get()
	defer r.pool.Put(env)

	size := env.Len()
	for start := 0; start < len(dst); start += size {
		end := min(start+size, len(dst))
		chunk := dst[start:end]
		gain := env.Head(len(chunk))

		r.src(chunk)
		r.env.SampleInto(gain)
		vecmath.MulBlockInPlace(chunk, gain)
		for _, p := range r.chain {
			p.ProcessInPlace(chunk)
		}
	}
}

// Render returns the next n output samples.
func (r *Renderer) Render(n int) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: render sample count must be >= 0: %d", core.ErrInvalidArgument, n)
	}
	out := make([]float64, n)
	r.RenderBlock(out)
	return out, nil
}
