package multirate

import (
	"fmt"

	"github.com/tphakala/go-multirate/internal/simdops"
	"gonum.org/v1/gonum/mat"
)

// FilterBank is a set of FIR filters sharing one tap count.
//
// Coefficients are held as a dense matrix with one row per tap and one column
// per channel. A single-channel filter is a bank with one column. Shape is checked
// once at construction; a FilterBank is immutable afterwards.
type FilterBank struct {
	coeffs *mat.Dense
}

// NewFilterBank creates a bank from h, whose columns hold the impulse response of
// each channel in tap order. h is copied.
func NewFilterBank(h mat.Matrix) (*FilterBank, error) {
	if isEmptyMatrix(h) {
		return nil, fmt.Errorf("%w: filter bank matrix is nil or empty", ErrInvalidArgument)
	}
	taps, channels := h.Dims()
	if err := checkBankShape(taps, channels); err != nil {
		return nil, err
	}
	return &FilterBank{coeffs: mat.DenseCopyOf(h)}, nil
}

// NewSingleChannel creates a one-channel bank from taps. taps is copied.
func NewSingleChannel(taps []float64) (*FilterBank, error) {
	if err := checkBankShape(len(taps), minChannels); err != nil {
		return nil, err
	}
	data := make([]float64, len(taps))
	copy(data, taps)
	return &FilterBank{coeffs: mat.NewDense(len(taps), minChannels, data)}, nil
}

// NewFilterBankFromChannels creates a bank with one channel per argument.
// All channels must have the same, non-zero number of taps.
func NewFilterBankFromChannels(channels ...[]float64) (*FilterBank, error) {
	if len(channels) < minChannels {
		return nil, fmt.Errorf("%w: filter bank needs at least %d channel", ErrInvalidArgument, minChannels)
	}
	taps := len(channels[0])
	if err := checkBankShape(taps, len(channels)); err != nil {
		return nil, err
	}
	for k, ch := range channels {
		if len(ch) != taps {
			return nil, fmt.Errorf("%w: channel %d has %d taps, channel 0 has %d",
				ErrInvalidArgument, k, len(ch), taps)
		}
	}

	coeffs := mat.NewDense(taps, len(channels), nil)
	for k, ch := range channels {
		coeffs.SetCol(k, ch)
	}
	return &FilterBank{coeffs: coeffs}, nil
}

func checkBankShape(taps, channels int) error {
	if taps < minTaps {
		return fmt.Errorf("%w: filter needs at least %d tap", ErrInvalidArgument, minTaps)
	}
	if channels < minChannels {
		return fmt.Errorf("%w: filter bank needs at least %d channel", ErrInvalidArgument, minChannels)
	}
	return nil
}

// Taps returns the number of coefficients per channel.
func (fb *FilterBank) Taps() int {
	if fb == nil || fb.coeffs == nil {
		return 0
	}
	r, _ := fb.coeffs.Dims()
	return r
}

// Channels returns the number of filters in the bank.
func (fb *FilterBank) Channels() int {
	if fb == nil || fb.coeffs == nil {
		return 0
	}
	_, c := fb.coeffs.Dims()
	return c
}

// IsSingleChannel reports whether the bank holds exactly one filter.
func (fb *FilterBank) IsSingleChannel() bool {
	return fb.Channels() == minChannels
}

// Channel returns a copy of channel k's impulse response.
// It panics if k is out of range.
func (fb *FilterBank) Channel(k int) []float64 {
	return mat.Col(nil, k, fb.coeffs)
}

// Matrix returns a copy of the coefficient matrix (taps × channels).
func (fb *FilterBank) Matrix() *mat.Dense {
	return mat.DenseCopyOf(fb.coeffs)
}

// DCGain returns the sum of channel k's coefficients, its response at 0 Hz.
func (fb *FilterBank) DCGain(k int) float64 {
	return simdops.Float64Ops().Sum(fb.Channel(k))
}

func (fb *FilterBank) channels() [][]float64 {
	out := make([][]float64, fb.Channels())
	for k := range out {
		out[k] = fb.Channel(k)
	}
	return out
}

func (fb *FilterBank) valid() bool {
	return fb.Taps() >= minTaps && fb.Channels() >= minChannels
}
