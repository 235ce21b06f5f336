package comb

import (
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/delay"
)

// DefaultAlpha is the gain used when WithAlpha is not given.
const DefaultAlpha = 0.9

// Option configures a Filter at construction.
type Option func(*config)

type config struct {
	alpha   float64
	storage []float64
}

// WithAlpha sets the feedback/feedforward gain.
func WithAlpha(alpha float64) Option {
	return func(c *config) {
		c.alpha = alpha
	}
}

// WithStorage backs the delay line with caller-owned memory.
func WithStorage(buf []float64) Option {
	return func(c *config) {
		c.storage = buf
	}
}

// Filter is a ring-buffer filter of one Kind.
type Filter struct {
	kind  Kind
	alpha float64
	ring  *delay.Ring
}

// New returns a filter of the given kind with a delay of length samples.
func New(kind Kind, length int, opts ...Option) (*Filter, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("%w: unknown filter kind %d", core.ErrInvalidArgument, int(kind))
	}

	cfg := config{alpha: DefaultAlpha}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if !core.IsFinite(cfg.alpha) {
		return nil, fmt.Errorf("%w: %s alpha must be finite: %f", core.ErrInvalidArgument, kind, cfg.alpha)
	}

	var ringOpts []delay.RingOption
	if cfg.storage != nil {
		ringOpts = append(ringOpts, delay.WithStorage(cfg.storage))
	}
	ring, err := delay.NewRing(length, ringOpts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}

	return &Filter{kind: kind, alpha: cfg.alpha, ring: ring}, nil
}

// NewForwardComb returns a feed-forward comb filter.
func NewForwardComb(length int, opts ...Option) (*Filter, error) {
	return New(ForwardComb, length, opts...)
}

// NewBackwardComb returns a feed-back comb filter.
func NewBackwardComb(length int, opts ...Option) (*Filter, error) {
	return New(BackwardComb, length, opts...)
}

// NewEcho returns an echo filter.
func NewEcho(length int, opts ...Option) (*Filter, error) {
	return New(Echo, length, opts...)
}

// Kind returns the filter recurrence.
func (f *Filter) Kind() Kind { return f.kind }

// Len returns the delay length in samples.
func (f *Filter) Len() int { return f.ring.Len() }

// Alpha returns the gain.
func (f *Filter) Alpha() float64 { return f.alpha }

// SetAlpha sets the gain. Any finite value is accepted.
func (f *Filter) SetAlpha(alpha float64) error {
	if !core.IsFinite(alpha) {
		return fmt.Errorf("%w: %s alpha must be finite: %f", core.ErrInvalidArgument, f.kind, alpha)
	}
	f.alpha = alpha
	return nil
}

// ProcessSample filters one sample.
func (f *Filter) ProcessSample(x float64) float64 {
	d := f.ring.Peek()
	var y, w float64
	switch f.kind {
	case ForwardComb:
		y = x + f.alpha*d
		w = x
	case BackwardComb:
		y = x + f.alpha*d
		w = y
	case Echo:
		y = d
		w = f.alpha*d + x
	}
	f.ring.Append(w)
	return y
}

// Filter processes input in order and returns a new slice of the same length.
func (f *Filter) Filter(input []float64) []float64 {
	out := make([]float64, len(input))
	for i, x := range input {
		out[i] = f.ProcessSample(x)
	}
	return out
}

// FilterInto processes src into dst. dst may alias src.
func (f *Filter) FilterInto(dst, src []float64) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%w: %s dst length %d != src length %d",
			core.ErrInvalidArgument, f.kind, len(dst), len(src))
	}
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
	return nil
}

// ProcessInPlace filters buf in place.
func (f *Filter) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = f.ProcessSample(buf[i])
	}
}

// Reset clears the delay line.
func (f *Filter) Reset() {
	f.ring.Reset()
}
