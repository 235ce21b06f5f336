// Package comb provides ring-buffer filters: feed-forward comb, feed-back
// comb and echo.
//
// All three share one delay line of fixed length K and one gain alpha and
// differ only in what is written back into the line. With d the sample
// delayed by K:
//
//	ForwardComb   y = x + alpha*d   writes x
//	BackwardComb  y = x + alpha*d   writes y
//	Echo          y = d             writes alpha*d + x
//
// The forward comb is FIR and bounded for any finite alpha. The backward comb
// and echo are recursive and grow without bound for |alpha| >= 1; alpha is
// not restricted beyond being finite.
//
// Filters are not safe for concurrent use.
package comb
