// Package envelope provides an ADSR envelope generator built on a one-pole
// exponential filter.
//
// Each of the attack, decay and release stages is a first-order recurrence
//
//	value = base + value*coefficient
//
// whose asymptote sits past the stage target by an overshoot margin. The
// margin lets the exponential approach cross the target within the requested
// number of samples, at which point the value is clamped and the stage
// advances:
//
//	coefficient = exp(-ln((1+overshoot)/overshoot) / rate)
//	rate        = duration / dt
//
// Small overshoot values give strongly curved, RC-like stages; large values
// approach linear ramps.
//
// An Envelope is driven by Gate and consumed with Next, Sample or SampleInto.
// In loop mode it free-runs through all stages and ignores Gate.
//
// Envelopes are not safe for concurrent use.
package envelope
