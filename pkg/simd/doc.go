// Package simd provides the lane-level building blocks of the stream renderer.
//
// A batch of W independent samples is processed together; each sample owns
// one lane. Lane participation is tracked with a Mask bitset, and the lane
// helpers are written as simple loops over fixed-width slices so the Go
// compiler can auto-vectorize them.
//
// The lane width is chosen at startup from the CPU features reported by
// golang.org/x/sys/cpu:
//
//	AVX-512F    16 lanes
//	AVX / AVX2   8 lanes
//	otherwise    4 lanes (SSE2, NEON, generic)
package simd
