package render

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-synth/dsp/buffer"
	"github.com/cwbudde/algo-synth/dsp/comb"
	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/envelope"
	"github.com/cwbudde/algo-synth/internal/testutil"
)

func newEnvelope(t *testing.T) *envelope.Envelope {
	t.Helper()
	env, err := envelope.New(0.002, 0.003, 0.6, 0.004, 1.0/1000)
	if err != nil {
		t.Fatal(err)
	}
	return env
}

func TestNewValidation(t *testing.T) {
	env := newEnvelope(t)

	if _, err := New(nil, Constant(1)); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("nil envelope: got %v", err)
	}
	if _, err := New(env, nil); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("nil source: got %v", err)
	}
	if _, err := New(env, Constant(1), WithChain(nil)); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("nil processor: got %v", err)
	}
}

func TestBlockSizeConfiguration(t *testing.T) {
	env := newEnvelope(t)

	r, err := New(env, Constant(1))
	if err != nil {
		t.Fatal(err)
	}
	if r.BlockSize() != core.DefaultProcessorConfig().BlockSize {
		t.Fatalf("default block size: got %d", r.BlockSize())
	}

	r, err = New(env, Constant(1), WithProcessorOptions(core.WithBlockSize(32)))
	if err != nil {
		t.Fatal(err)
	}
	if r.BlockSize() != 32 {
		t.Fatalf("block size: got %d want 32", r.BlockSize())
	}

	r, err = New(env, Constant(1), WithPool(buffer.NewPool(5)))
	if err != nil {
		t.Fatal(err)
	}
	if r.BlockSize() != 5 || r.Envelope() != env {
		t.Fatalf("pool block size: got %d want 5", r.BlockSize())
	}
}

func TestConstantSourceFollowsEnvelope(t *testing.T) {
	ref := newEnvelope(t)
	ref.Gate(true)
	want, err := ref.Sample(40)
	if err != nil {
		t.Fatal(err)
	}

	r, err := New(newEnvelope(t), Constant(1))
	if err != nil {
		t.Fatal(err)
	}
	r.Gate(true)
	got, err := r.Render(40)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, got, want, 0)
}

func TestChainAppliedAfterEnvelope(t *testing.T) {
	ref := newEnvelope(t)
	ref.Gate(true)
	gated, err := ref.Sample(100)
	if err != nil {
		t.Fatal(err)
	}
	refFilter, err := comb.NewBackwardComb(7, comb.WithAlpha(0.5))
	if err != nil {
		t.Fatal(err)
	}
	want := refFilter.Filter(gated)

	filter, err := comb.NewBackwardComb(7, comb.WithAlpha(0.5))
	if err != nil {
		t.Fatal(err)
	}
	r, err := New(newEnvelope(t), Constant(1),
		WithChain(filter), WithProcessorOptions(core.WithBlockSize(9)))
	if err != nil {
		t.Fatal(err)
	}
	r.Gate(true)

	got := make([]float64, 0, 100)
	for _, n := range []int{13, 1, 40, 46} {
		block := make([]float64, n)
		r.RenderBlock(block)
		got = append(got, block...)
	}
	testutil.RequireSliceNearlyEqual(t, got, want, 0)
}

func TestUngatedIsSilent(t *testing.T) {
	r, err := New(newEnvelope(t), Constant(0.8))
	if err != nil {
		t.Fatal(err)
	}
	out, err := r.Render(64)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireConstant(t, out, 0)

	if _, err := r.Render(-1); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("Render(-1): got %v", err)
	}
}

func TestImpulseFiresOnce(t *testing.T) {
	src := Impulse()
	a := []float64{5, 5, 5}
	src(a)
	testutil.RequireSliceNearlyEqual(t, a, []float64{1, 0, 0}, 0)

	b := []float64{5, 5}
	src(b)
	testutil.RequireConstant(t, b, 0)
}

func BenchmarkRenderBlock(b *testing.B) {
	env, err := envelope.New(0.01, 0.1, 0.7, 0.3, 1.0/48000, envelope.WithLoop(true))
	if err != nil {
		b.Fatal(err)
	}
	filter, err := comb.NewBackwardComb(1103, comb.WithAlpha(0.7))
	if err != nil {
		b.Fatal(err)
	}
	r, err := New(env, Constant(0.5), WithChain(filter))
	if err != nil {
		b.Fatal(err)
	}
	buf := make([]float64, 256)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		r.RenderBlock(buf)
	}
}

func TestSampleRateMustMatchEnvelope(t *testing.T) {
	env := newEnvelope(t)

	_, err := New(env, Constant(1), WithProcessorOptions(core.WithSampleRate(44100)))
	if !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("mismatched sample rate: got %v", err)
	}

	r, err := New(env, Constant(1),
		WithProcessorOptions(core.WithSampleRate(1000), core.WithBlockSize(16)))
	if err != nil {
		t.Fatal(err)
	}
	if !core.NearlyEqual(r.SampleRate(), 1000, 1e-9) || r.BlockSize() != 16 {
		t.Fatalf("SampleRate() = %g, BlockSize() = %d", r.SampleRate(), r.BlockSize())
	}
}
