package response

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by decay analysis.
var (
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive")
	ErrNoDecay           = errors.New("response: insufficient decay for reverberation time")
)

const decayFloorDB = -200

// DecayCurve returns the Schroeder backward-integrated energy of ir in dB,
// normalized so the first sample is 0 dB. Silent tails are floored at -200 dB.
func DecayCurve(ir []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyResponse
	}

	curve := make([]float64, len(ir))
	vecmath.MulBlock(curve, ir, ir)

	var energy float64
	for i := len(curve) - 1; i >= 0; i-- {
		energy += curve[i]
		curve[i] = energy
	}

	total := curve[0]
	if total <= 0 {
		for i := range curve {
			curve[i] = decayFloorDB
		}
		return curve, nil
	}

	for i, e := range curve {
		if e <= 0 {
			curve[i] = decayFloorDB
			continue
		}
		curve[i] = 10 * math.Log10(e/total)
	}
	return curve, nil
}

// DecayTime estimates the time in seconds for the response energy to fall by
// 60 dB. The slope is fitted between -5 and -35 dB, falling back to -5 to
// -25 dB when the response is too short.
func DecayTime(ir []float64, sampleRate float64) (float64, error) {
	if sampleRate <= 0 {
		return 0, fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}

	curve, err := DecayCurve(ir)
	if err != nil {
		return 0, err
	}

	for _, end := range []float64{-35, -25} {
		if slope, ok := fitSlope(curve, -5, end); ok {
			return -60 / (slope * sampleRate), nil
		}
	}
	return 0, ErrNoDecay
}

// fitSlope returns the least-squares slope in dB/sample of curve between the
// first samples at or below startDB and endDB.
func fitSlope(curve []float64, startDB, endDB float64) (float64, bool) {
	start, end := -1, -1
	for i, v := range curve {
		if start < 0 && v <= startDB {
			start = i
		}
		if start >= 0 && v <= endDB {
			end = i
			break
		}
	}
	if start < 0 || end <= start {
		return 0, false
	}

	var sumX, sumY, sumXX, sumXY float64
	for i := start; i <= end; i++ {
		x := float64(i - start)
		y := curve[i]
		sumX += x
		sumY += y
		sumXX += x * x
		sumXY += x * y
	}

	n := float64(end - start + 1)
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, false
	}

	slope := (n*sumXY - sumX*sumY) / denom
	if slope >= 0 {
		return 0, false
	}
	return slope, true
}
