// Package delay provides a fixed-length circular sample buffer.
//
// A Ring of length N is a pure delay line: a value passed to Append is
// returned by Peek exactly N appends later. The length is fixed at
// construction; the ring never grows or reallocates.
package delay
