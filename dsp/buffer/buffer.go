package buffer

// Buffer is one block of samples.
type Buffer struct {
	samples []float64
}

// New returns a zero-filled Buffer of the given length.
func New(length int) *Buffer {
	if length < 0 {
		length = 0
	}
	return &Buffer{samples: make([]float64, length)}
}

// Samples returns the underlying slice.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// Len returns the number of samples.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Head returns the first n samples, clamped to [0, Len].
func (b *Buffer) Head(n int) []float64 {
	if n < 0 {
		n = 0
	}
	if n > len(b.samples) {
		n = len(b.samples)
	}
	return b.samples[:n]
}

// Zero sets all samples to 0.
func (b *Buffer) Zero() {
	for i := range b.samples {
		b.samples[i] = 0
	}
}
