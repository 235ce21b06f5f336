// Package effects provides block effects composed from the ring-buffer
// filters in package comb.
//
//   - Reverb: a bank of prime-length comb or echo taps averaged and blended
//     with the dry signal.
//
// Effects process []float64 blocks in place without allocating.
package effects
