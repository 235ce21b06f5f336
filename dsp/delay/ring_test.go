package delay

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/internal/testutil"
)

// --- construction and validation ---

func TestNewRingValidation(t *testing.T) {
	for _, length := range []int{0, -1, MaxLength + 1} {
		r, err := NewRing(length)
		if !errors.Is(err, core.ErrInvalidArgument) {
			t.Fatalf("length %d: got %v want ErrInvalidArgument", length, err)
		}
		if r != nil {
			t.Fatalf("length %d: expected nil ring", length)
		}
	}
}

func TestNewRingDefaults(t *testing.T) {
	r, err := NewRing(16)
	if err != nil {
		t.Fatal(err)
	}
	if r.Len() != 16 || r.Position() != 0 {
		t.Fatalf("Len/Position: got %d/%d want 16/0", r.Len(), r.Position())
	}
	for i := 0; i < 16; i++ {
		if got := r.Peek(); got != 0 {
			t.Fatalf("fresh ring peek %d: got %v want 0", i, got)
		}
		r.Append(1)
	}
}

func TestNewRingMaxLength(t *testing.T) {
	r, err := NewRing(MaxLength)
	if err != nil {
		t.Fatal(err)
	}
	if r.Len() != MaxLength {
		t.Fatalf("Len: got %d want %d", r.Len(), MaxLength)
	}
}

func TestWithStorage(t *testing.T) {
	buf := []float64{9, 9, 9, 9, 9, 9}
	r, err := NewRing(4, WithStorage(buf))
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireConstant(t, buf[:4], 0)
	if buf[4] != 9 {
		t.Fatalf("storage beyond length was touched: %v", buf)
	}

	r.Append(3)
	if buf[0] != 3 {
		t.Fatalf("ring does not write through storage: %v", buf)
	}
}

func TestWithStorageTooSmall(t *testing.T) {
	_, err := NewRing(8, WithStorage(make([]float64, 4)))
	if !errors.Is(err, core.ErrAllocation) {
		t.Fatalf("got %v want ErrAllocation", err)
	}
}

// --- delay line behaviour ---

func TestRoundTripDelay(t *testing.T) {
	for _, length := range []int{1, 3, 7, 64} {
		r, err := NewRing(length)
		if err != nil {
			t.Fatal(err)
		}
		input := testutil.DeterministicNoise(int64(length), 1, 5*length)
		for i, x := range input {
			d := r.Peek()
			var want float64
			if i >= length {
				want = input[i-length]
			}
			if d != want {
				t.Fatalf("length %d step %d: peek %v want %v", length, i, d, want)
			}
			r.Append(x)
			if r.Position() < 0 || r.Position() >= length {
				t.Fatalf("position %d out of range", r.Position())
			}
		}
	}
}

func TestPeekDoesNotMutate(t *testing.T) {
	r, err := NewRing(4)
	if err != nil {
		t.Fatal(err)
	}
	r.Extend([]float64{1, 2, 3, 4})
	a, b := r.Peek(), r.Peek()
	if a != b || a != 1 || r.Position() != 0 {
		t.Fatalf("peek mutated ring: %v %v pos=%d", a, b, r.Position())
	}
}

func TestRead(t *testing.T) {
	r, err := NewRing(4)
	if err != nil {
		t.Fatal(err)
	}
	r.Extend(testutil.Ramp(10))
	// Contents [8, 9, 6, 7], position 2.
	tests := []struct {
		delay int
		want  float64
	}{
		{1, 9},
		{2, 8},
		{3, 7},
		{4, 6},
		{0, 6},
		{5, 9},
	}
	for _, tt := range tests {
		if got := r.Read(tt.delay); got != tt.want {
			t.Fatalf("Read(%d): got %v want %v", tt.delay, got, tt.want)
		}
	}
	if r.Read(r.Len()) != r.Peek() {
		t.Fatal("Read(Len) must equal Peek")
	}
}

func TestPeekIntoMatchesPeekSequence(t *testing.T) {
	r, err := NewRing(5)
	if err != nil {
		t.Fatal(err)
	}
	r.Extend(testutil.Ramp(7))

	got := make([]float64, 8)
	n := r.PeekInto(got)
	if n != 5 {
		t.Fatalf("PeekInto count: got %d want 5", n)
	}

	want := make([]float64, n)
	for i := range want {
		want[i] = r.Peek()
		r.Append(-1)
	}
	testutil.RequireSliceNearlyEqual(t, got[:n], want, 0)
}

func TestReset(t *testing.T) {
	r, err := NewRing(4)
	if err != nil {
		t.Fatal(err)
	}
	r.Extend([]float64{1, 2, 3})
	r.Reset()

	if r.Position() != 0 {
		t.Fatalf("position after reset: %d", r.Position())
	}
	for i := 0; i < 4; i++ {
		if got := r.Read(i); got != 0 {
			t.Fatalf("after reset Read(%d): got %v want 0", i, got)
		}
	}
}

// --- benchmarks ---

func BenchmarkPeekAppend(b *testing.B) {
	r, _ := NewRing(4410)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		r.Append(r.Peek()*0.5 + 1)
	}
}
