package effects_test

import (
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/comb"
	"github.com/cwbudde/algo-synth/dsp/effects"
)

func ExampleNewReverb() {
	r, err := effects.NewReverb(1000,
		effects.WithReverbPreDelay(0.002),
		effects.WithReverbTaps(2),
		effects.WithReverbDecay(0),
		effects.WithReverbMix(0.5),
		effects.WithReverbKind(comb.Echo),
	)
	if err != nil {
		fmt.Println("error")
		return
	}

	buf := []float64{1, 0, 0, 0, 0, 0}
	r.ProcessInPlace(buf)

	fmt.Println(r.Taps())
	fmt.Println(buf)

	// Output:
	// [2 3]
	// [0.5 0 0.25 0.25 0 0]
}
