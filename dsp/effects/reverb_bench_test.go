package effects

import (
	"testing"

	"github.com/cwbudde/algo-synth/internal/testutil"
)

func BenchmarkReverbProcessInPlace(b *testing.B) {
	r, err := NewReverb(48000)
	if err != nil {
		b.Fatal(err)
	}
	input := testutil.DeterministicNoise(1, 0.5, 512)
	buf := make([]float64, len(input))
	b.SetBytes(int64(len(buf) * 8))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		copy(buf, input)
		r.ProcessInPlace(buf)
	}
}
