package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by response measurements.
var (
	ErrEmptyResponse  = errors.New("response: impulse response is empty")
	ErrInvalidFFTSize = errors.New("response: fft size must be a power of two >= 2")
	ErrNilProcessor   = errors.New("response: processor is nil")
)

// Processor is a stateful in-place block processor.
type Processor interface {
	ProcessInPlace(buf []float64)
}

// ImpulseResponse returns the first n samples p produces for a unit impulse.
// The processor state is advanced; reset it first for a clean measurement.
func ImpulseResponse(p Processor, n int) ([]float64, error) {
	if p == nil {
		return nil, ErrNilProcessor
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: length %d", ErrEmptyResponse, n)
	}

	ir := make([]float64, n)
	ir[0] = 1
	p.ProcessInPlace(ir)
	return ir, nil
}

// Magnitude returns |H(k)| for bins 0..fftSize/2 of the impulse response.
// ir is zero-padded to fftSize, or truncated when longer.
func Magnitude(ir []float64, fftSize int) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyResponse
	}
	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFFTSize, fftSize)
	}

	in := make([]complex128, fftSize)
	for i := 0; i < len(ir) && i < fftSize; i++ {
		in[i] = complex(ir[i], 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("response: fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("response: fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)
	return mag, nil
}

// Decibels converts magnitudes to dB in place. Zero maps to -Inf.
func Decibels(mag []float64) {
	for i, v := range mag {
		mag[i] = 20 * math.Log10(v)
	}
}

// Peak returns the largest absolute value in x.
func Peak(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return vecmath.MaxAbs(x)
}

// CombPeaks returns the bins k*fftSize/length (rounded) up to Nyquist. These
// are the peaks of a comb filter with positive gain and delay length.
func CombPeaks(length, fftSize int) []int {
	if length <= 0 || fftSize <= 0 {
		return nil
	}

	nyquist := fftSize / 2
	var peaks []int
	for k := 0; ; k++ {
		bin := int(math.Round(float64(k) * float64(fftSize) / float64(length)))
		if bin > nyquist {
			break
		}
		peaks = append(peaks, bin)
	}
	return peaks
}
