package convolve

import (
	"github.com/tphakala/simd/c128"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	// Minimum kernel length routed to the FFT convolver.
	// Direct SIMD convolution wins below roughly 400 taps with gonum's FFT.
	minKernelForFFT = 400

	// Smallest FFT size used for a block.
	defaultFFTBlockSize = 512

	// A real FFT of size N has N/2 + 1 unique complex bins.
	fftHermitianDivisor = 2
)

// FFTConvolver performs overlap-save FFT correlation against a fixed kernel.
//
// Convolve produces dst[i] = Σ signal[i+j] * kernel[j] for every fully
// overlapping position, the same quantity simd's ConvolveValid computes, in
// O(N log N) instead of O(N×M).
//
// Overlap-save:
//  1. Read the signal in blocks of fftSize samples, advancing blockSize each time
//  2. Each block yields blockSize = fftSize - kernelLen + 1 valid samples
//  3. The first kernelLen-1 samples of each inverse transform wrap around and are discarded
type FFTConvolver struct {
	fft       *fourier.FFT
	fftSize   int
	blockSize int

	kernelFFT []complex128
	kernelLen int
	scale     float64 // gonum's inverse transform is unnormalized

	signalBlock []float64
	signalFFT   []complex128
	productFFT  []complex128
	ifftResult  []float64
}

// NewFFTConvolver prepares a convolver for kernel. It returns nil for an empty kernel.
func NewFFTConvolver(kernel []float64) *FFTConvolver {
	kernelLen := len(kernel)
	if kernelLen == 0 {
		return nil
	}

	fftSize := defaultFFTBlockSize
	for fftSize < 2*kernelLen {
		fftSize *= 2
	}

	fft := fourier.NewFFT(fftSize)

	// Circular convolution with the reversed kernel is correlation with the kernel.
	kernelPadded := make([]float64, fftSize)
	for i := range kernelLen {
		kernelPadded[i] = kernel[kernelLen-1-i]
	}
	kernelFFT := fft.Coefficients(nil, kernelPadded)

	fftLen := fftSize/fftHermitianDivisor + 1

	return &FFTConvolver{
		fft:         fft,
		fftSize:     fftSize,
		blockSize:   fftSize - kernelLen + 1,
		kernelFFT:   kernelFFT,
		kernelLen:   kernelLen,
		scale:       1.0 / float64(fftSize),
		signalBlock: make([]float64, fftSize),
		signalFFT:   make([]complex128, fftLen),
		productFFT:  make([]complex128, fftLen),
		ifftResult:  make([]float64, fftSize),
	}
}

// KernelLen returns the length of the kernel the convolver was built for.
func (c *FFTConvolver) KernelLen() int {
	return c.kernelLen
}

// Convolve writes the valid correlation of signal with the kernel into dst.
// dst must have length >= len(signal) - kernelLen + 1; otherwise nothing is written.
func (c *FFTConvolver) Convolve(dst, signal []float64) {
	signalLen := len(signal)
	outputLen := signalLen - c.kernelLen + 1
	if outputLen <= 0 || len(dst) < outputLen {
		return
	}

	overlap := c.kernelLen - 1

	for outIdx := 0; outIdx < outputLen; {
		clear(c.signalBlock)

		copyLen := min(c.fftSize, signalLen-outIdx)
		copy(c.signalBlock, signal[outIdx:outIdx+copyLen])

		c.signalFFT = c.fft.Coefficients(c.signalFFT, c.signalBlock)
		c128.Mul(c.productFFT, c.signalFFT, c.kernelFFT)
		c.ifftResult = c.fft.Sequence(c.ifftResult, c.productFFT)
		f64.Scale(c.ifftResult, c.ifftResult, c.scale)

		valid := min(c.blockSize, outputLen-outIdx)
		copy(dst[outIdx:outIdx+valid], c.ifftResult[overlap:overlap+valid])

		outIdx += valid
	}
}
