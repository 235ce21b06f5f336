package delay

import (
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/core"
)

// MaxLength is the largest supported ring length: 60 s at 44.1 kHz.
const MaxLength = 60 * 44100

// Ring is a circular delay line.
type Ring struct {
	data     []float64
	position int
}

// RingOption configures a Ring at construction.
type RingOption func(*ringConfig)

type ringConfig struct {
	storage []float64
}

// WithStorage backs the ring with caller-owned memory instead of allocating.
// Its capacity must cover the ring length; the first length elements are
// zeroed and owned by the ring from then on.
func WithStorage(buf []float64) RingOption {
	return func(c *ringConfig) {
		c.storage = buf
	}
}

// NewRing returns a zeroed ring of the given length.
func NewRing(length int, opts ...RingOption) (*Ring, error) {
	if length <= 0 || length > MaxLength {
		return nil, fmt.Errorf("%w: ring length must be in [1, %d]: %d",
			core.ErrInvalidArgument, MaxLength, length)
	}

	var cfg ringConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	var data []float64
	if cfg.storage != nil {
		if cap(cfg.storage) < length {
			return nil, fmt.Errorf("%w: ring storage holds %d samples, need %d",
				core.ErrAllocation, cap(cfg.storage), length)
		}
		data = cfg.storage[:length]
		core.Zero(data)
	} else {
		data = make([]float64, length)
	}

	return &Ring{data: data}, nil
}

// Len returns the ring length.
func (r *Ring) Len() int {
	return len(r.data)
}

// Position returns the next read/write index.
func (r *Ring) Position() int {
	return r.position
}

// Peek returns the oldest value, the one written Len appends ago.
func (r *Ring) Peek() float64 {
	return r.data[r.position]
}

// Append overwrites the oldest value and advances the position.
func (r *Ring) Append(v float64) {
	r.data[r.position] = v
	r.position++
	if r.position >= len(r.data) {
		r.position = 0
	}
}

// Read returns the value appended delay appends ago. delay is taken modulo
// Len, so Read(Len()) and Read(0) both equal Peek().
func (r *Ring) Read(delay int) float64 {
	size := len(r.data)
	idx := (r.position - delay%size + size) % size
	return r.data[idx]
}

// PeekInto copies the next values Peek will return over the coming appends
// into dst without mutating the ring. At most Len values are copied; the
// count is returned.
func (r *Ring) PeekInto(dst []float64) int {
	n := len(dst)
	if n > len(r.data) {
		n = len(r.data)
	}
	head := copy(dst[:n], r.data[r.position:])
	copy(dst[head:n], r.data)
	return n
}

// Extend appends all values in order.
func (r *Ring) Extend(values []float64) {
	for _, v := range values {
		r.Append(v)
	}
}

// Reset clears ring contents and rewinds the position.
func (r *Ring) Reset() {
	core.Zero(r.data)
	r.position = 0
}
