// Package response measures the frequency response of block processors.
//
// A processor is driven with a unit impulse and the captured impulse
// response is transformed with a real-input FFT:
//
//	ir, err := response.ImpulseResponse(filter, 1024)
//	mag, err := response.Magnitude(ir, 1024)
//
// For comb filters CombPeaks gives the bins where the magnitude response is
// expected to peak (forward comb with positive gain) or notch.
package response
