// Package multirate provides multirate signal processing primitives in pure Go:
// integer-factor upsampling and downsampling, and the combined
// "upsample → FIR filter → downsample" pipeline used for interpolation and
// filter-bank analysis.
//
// All functions operate on complete in-memory signals, never modify their
// inputs, and return freshly allocated results.
//
// # Features
//
//   - Zero-insertion upsampling and even/odd phase downsampling
//   - Interpolation: upsample, full FIR convolution, tail pruning, decimation
//   - Filter-bank analysis: one full convolution per channel, assembled into a
//     gonum matrix and decimated row-wise
//   - Optional SIMD acceleration (AVX2/SSE/NEON) via github.com/tphakala/simd
//   - FFT convolution (gonum) for long kernels
//   - float32 and float64 signals for the one-dimensional operations
//
// # Quick Start
//
// Interpolate by 2 with a two-tap hold filter:
//
//	y, err := multirate.Interpolate([]float64{1, 2}, []float64{1, 1}, 2, 1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// y == [1 1 2 2]
//
// Analyze a signal with a two-channel bank:
//
//	bank, err := multirate.NewFilterBankFromChannels(
//	    []float64{1, 1},  // lowpass
//	    []float64{1, -1}, // highpass
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	bands, err := multirate.Analyze([]float64{1, 2, 3}, bank, 1)
//	// bands is a 4×2 matrix: columns [1 3 5 3] and [1 1 1 -3]
//
// # Pipeline Selection
//
// [UpFirDn] keeps the classic single-entry contract: an upsampling factor other
// than 1 selects the interpolation path using channel 0 of the bank, and a factor
// of 1 selects the analysis path over every channel. [Interpolate] and [Analyze]
// expose the two paths directly.
//
// Convolution is always full (length n+m-1) and decimation inside the pipeline
// always keeps the even phase. [InterpolateLen] and [AnalyzeLen] predict output
// sizes.
//
// # Errors
//
// Invalid factors, empty signals and empty or ragged filter banks return errors
// wrapping [ErrInvalidArgument]; no partial results are produced.
//
// # Thread Safety
//
// Functions keep no state and may be called concurrently. A [FilterBank] is
// immutable after construction and may be shared between goroutines.
// [AnalyzeParallel] convolves each channel on its own goroutine.
package multirate
