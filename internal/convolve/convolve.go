// Package convolve computes full linear convolutions for the multirate pipeline.
//
// The full convolution y = x * h (length n+m-1) is evaluated as the valid
// correlation of x, zero-padded by m-1 samples on both sides, against the
// reversed kernel. This lets the SIMD "valid" kernels and the overlap-save FFT
// convolver, which both compute Σ signal[i+j]*kernel[j], produce full-mode output.
package convolve

import (
	"github.com/tphakala/go-multirate/internal/simdops"
)

// Full returns the full linear convolution of signal and kernel.
// The result has length len(signal)+len(kernel)-1. Both inputs must be non-empty;
// nil is returned otherwise. Inputs are not modified.
func Full[F simdops.Float](signal, kernel []F) []F {
	n, m := len(signal), len(kernel)
	if n == 0 || m == 0 {
		return nil
	}

	padded := padSignal(signal, m-1)
	reversed := reverse(kernel)
	dst := make([]F, n+m-1)

	if m >= minKernelForFFT {
		if p64, ok := any(padded).([]float64); ok {
			if conv := NewFFTConvolver(any(reversed).([]float64)); conv != nil {
				conv.Convolve(any(dst).([]float64), p64)
				return dst
			}
		}
	}

	simdops.For[F]().ConvolveValid(dst, padded, reversed)
	return dst
}

// FullMulti convolves signal with every kernel and returns one full-length result
// per kernel, in kernel order. All kernels must have the same length; nil is
// returned for empty or ragged input.
func FullMulti[F simdops.Float](signal []F, kernels [][]F) [][]F {
	if len(signal) == 0 || len(kernels) == 0 {
		return nil
	}
	m := len(kernels[0])
	if m == 0 {
		return nil
	}
	for _, k := range kernels[1:] {
		if len(k) != m {
			return nil
		}
	}

	// Long kernels go through the FFT path one channel at a time.
	if m >= minKernelForFFT {
		if _, ok := any(signal).([]float64); ok {
			out := make([][]F, len(kernels))
			for i, k := range kernels {
				out[i] = Full(signal, k)
			}
			return out
		}
	}

	padded := padSignal(signal, m-1)
	reversed := make([][]F, len(kernels))
	dsts := make([][]F, len(kernels))
	for i, k := range kernels {
		reversed[i] = reverse(k)
		dsts[i] = make([]F, len(signal)+m-1)
	}

	simdops.For[F]().ConvolveValidMulti(dsts, padded, reversed)
	return dsts
}

// Len returns the full convolution length for the given input sizes,
// or 0 if either is empty.
func Len(signalLen, kernelLen int) int {
	if signalLen <= 0 || kernelLen <= 0 {
		return 0
	}
	return signalLen + kernelLen - 1
}

// padSignal returns signal with pad zeros on both ends.
func padSignal[F simdops.Float](signal []F, pad int) []F {
	padded := make([]F, len(signal)+2*pad)
	copy(padded[pad:], signal)
	return padded
}

func reverse[F simdops.Float](s []F) []F {
	r := make([]F, len(s))
	for i, v := range s {
		r[len(s)-1-i] = v
	}
	return r
}
