// Package buffer provides fixed-size sample blocks and a pool that recycles
// them, so per-block scratch space in a rendering loop does not allocate once
// the pool is warm.
package buffer
