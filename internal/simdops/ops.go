// Package simdops provides generic SIMD operations for float32 and float64 types.
// Convolution code is written once against Ops[F] and dispatches to the
// type-specific kernels of github.com/tphakala/simd.
package simdops

import (
	"github.com/tphakala/simd/f32"
	"github.com/tphakala/simd/f64"
)

// Float is the type constraint for supported floating-point types.
type Float interface {
	float32 | float64
}

// Ops provides SIMD-accelerated operations for type F.
type Ops[F Float] struct {
	// ConvolveValid computes the valid correlation of signal with kernel:
	//   dst[i] = Σ signal[i+j] * kernel[j],  len(dst) = len(signal) - len(kernel) + 1
	ConvolveValid func(dst, signal, kernel []F)

	// ConvolveValidMulti runs ConvolveValid for several equal-length kernels
	// against one signal, writing kernel k into dsts[k].
	ConvolveValidMulti func(dsts [][]F, signal []F, kernels [][]F)

	// Sum returns the sum of all elements.
	Sum func(a []F) F
}

var (
	ops32 = Ops[float32]{
		ConvolveValid:      f32.ConvolveValid,
		ConvolveValidMulti: f32.ConvolveValidMulti,
		Sum:                f32.Sum,
	}
	ops64 = Ops[float64]{
		ConvolveValid:      f64.ConvolveValid,
		ConvolveValidMulti: f64.ConvolveValidMulti,
		Sum:                f64.Sum,
	}
)

// For returns the Ops instance for type F.
// The type switch happens once per call site, not per sample.
func For[F Float]() *Ops[F] {
	var zero F
	switch any(zero).(type) {
	case float32:
		ops, ok := any(&ops32).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float32")
		}
		return ops
	case float64:
		ops, ok := any(&ops64).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float64")
		}
		return ops
	default:
		panic("simdops: unsupported float type")
	}
}

// Float64Ops returns the float64 SIMD operations.
func Float64Ops() *Ops[float64] {
	return &ops64
}
