package multirate

import (
	"fmt"
	"sync"

	"github.com/tphakala/go-multirate/internal/convolve"
	"gonum.org/v1/gonum/mat"
)

// Output is the result of UpFirDn. Exactly one field is set: Signal for the
// interpolation path (up != 1), Bank for the analysis path (up == 1).
type Output struct {
	// Signal is the filtered, pruned and decimated interpolation output.
	Signal []float64

	// Bank holds one column per filter channel and one row per output sample.
	Bank *mat.Dense
}

// IsBank reports whether the output came from the analysis path.
func (o *Output) IsBank() bool {
	return o.Bank != nil
}

// UpFirDn upsamples x by up, filters it and downsamples the result by down.
//
// The path is chosen by up:
//   - up != 1: interpolation. Channel 0 of h is applied through Interpolate and
//     the remaining channels are ignored.
//   - up == 1: analysis. Every channel of h is applied through Analyze.
//
// Decimation always keeps the even phase.
func UpFirDn(x []float64, h *FilterBank, up, down int) (*Output, error) {
	if h == nil || !h.valid() {
		return nil, fmt.Errorf("%w: filter bank is nil or empty", ErrInvalidArgument)
	}

	if up != identityFactor {
		y, err := Interpolate(x, h.Channel(firstChannel), up, down)
		if err != nil {
			return nil, err
		}
		return &Output{Signal: y}, nil
	}

	a, err := Analyze(x, h, down)
	if err != nil {
		return nil, err
	}
	return &Output{Bank: a}, nil
}

// Interpolate upsamples x by up, convolves it with taps and decimates by down.
//
// The full convolution of the upsampled signal has len(x)*up + len(taps) - 1
// samples; its last up-1 samples only see the zeros appended after the final
// input sample and are discarded before decimation. With up == 1 this is a plain
// full convolution followed by even-phase decimation.
func Interpolate[F Float](x, taps []F, up, down int) ([]F, error) {
	if err := checkSignal(len(x)); err != nil {
		return nil, err
	}
	if len(taps) < minTaps {
		return nil, fmt.Errorf("%w: filter needs at least %d tap", ErrInvalidArgument, minTaps)
	}
	if err := checkFactor("downsampling", down); err != nil {
		return nil, err
	}

	y, err := Upsample(x, up)
	if err != nil {
		return nil, err
	}

	a := convolve.Full(y, taps)
	a = a[:len(a)-(up-1)]

	if down == identityFactor {
		return a, nil
	}
	return Downsample(a, down, PhaseEven)
}

// Analyze convolves x with every channel of h and decimates the rows by down.
//
// Before decimation the result has len(x)+h.Taps()-1 rows and h.Channels()
// columns; column k is the full convolution of x with channel k.
func Analyze(x []float64, h *FilterBank, down int) (*mat.Dense, error) {
	if err := checkAnalyze(x, h, down); err != nil {
		return nil, err
	}
	return assembleBank(convolve.FullMulti(x, h.channels()), down)
}

// AnalyzeParallel is Analyze with each channel convolved on its own goroutine.
// The result is identical to Analyze.
func AnalyzeParallel(x []float64, h *FilterBank, down int) (*mat.Dense, error) {
	if err := checkAnalyze(x, h, down); err != nil {
		return nil, err
	}

	kernels := h.channels()
	columns := make([][]float64, len(kernels))
	var wg sync.WaitGroup

	for k := range kernels {
		wg.Add(1)
		go func(channel int) {
			defer wg.Done()
			columns[channel] = convolve.Full(x, kernels[channel])
		}(k)
	}
	wg.Wait()

	return assembleBank(columns, down)
}

// InterpolateLen returns the length Interpolate produces for an n-sample input,
// or 0 if any argument is out of range.
func InterpolateLen(n, taps, up, down int) int {
	if n < 1 || taps < minTaps || up < minFactor || down < minFactor {
		return 0
	}
	pruned := n*up + taps - 1 - (up - 1)
	return ceilDiv(pruned, down)
}

// AnalyzeLen returns the row count Analyze produces for an n-sample input,
// or 0 if any argument is out of range.
func AnalyzeLen(n, taps, down int) int {
	if n < 1 || taps < minTaps || down < minFactor {
		return 0
	}
	return ceilDiv(convolve.Len(n, taps), down)
}

func checkAnalyze(x []float64, h *FilterBank, down int) error {
	if err := checkSignal(len(x)); err != nil {
		return err
	}
	if h == nil || !h.valid() {
		return fmt.Errorf("%w: filter bank is nil or empty", ErrInvalidArgument)
	}
	return checkFactor("downsampling", down)
}

// assembleBank stores columns[k] as column k of a new matrix and decimates it.
func assembleBank(columns [][]float64, down int) (*mat.Dense, error) {
	a := mat.NewDense(len(columns[0]), len(columns), nil)
	for k, col := range columns {
		a.SetCol(k, col)
	}

	if down == identityFactor {
		return a, nil
	}
	return DownsampleRows(a, down, PhaseEven)
}
