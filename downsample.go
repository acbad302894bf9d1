package multirate

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Downsample keeps every factor-th sample of x, starting at the phase offset.
//
// With PhaseEven and factor 1 the result is a copy of x. PhaseOdd with factor 1
// drops only the first sample. A single-sample input decimated with PhaseOdd
// yields an empty slice.
func Downsample[F Float](x []F, factor int, phase Phase) ([]F, error) {
	if err := checkDownsample(len(x), factor, phase); err != nil {
		return nil, err
	}

	offset := phase.Offset()
	y := make([]F, 0, decimatedLen(len(x), factor, offset))
	for i := offset; i < len(x); i += factor {
		y = append(y, x[i])
	}
	return y, nil
}

// DownsampleRows applies Downsample's row selection to a matrix whose rows are
// samples and whose columns are channels. Every column is decimated identically
// and the column count is preserved.
//
// Unlike Downsample, a selection that keeps no rows is an error, since a dense
// matrix cannot have zero rows.
func DownsampleRows(m mat.Matrix, factor int, phase Phase) (*mat.Dense, error) {
	if isEmptyMatrix(m) {
		return nil, fmt.Errorf("%w: matrix is nil or empty", ErrInvalidArgument)
	}
	rows, cols := m.Dims()
	if err := checkDownsample(rows, factor, phase); err != nil {
		return nil, err
	}

	offset := phase.Offset()
	n := decimatedLen(rows, factor, offset)
	if n == 0 {
		return nil, fmt.Errorf("%w: %s phase selects no rows from %d", ErrInvalidArgument, phase, rows)
	}

	out := mat.NewDense(n, cols, nil)
	row := make([]float64, cols)
	for j, i := 0, offset; i < rows; j, i = j+1, i+factor {
		out.SetRow(j, mat.Row(row, i, m))
	}
	return out, nil
}

func checkDownsample(n, factor int, phase Phase) error {
	if err := checkSignal(n); err != nil {
		return err
	}
	if err := checkFactor("downsampling", factor); err != nil {
		return err
	}
	return phase.Validate()
}

// decimatedLen is the number of indices offset, offset+factor, ... below n.
func decimatedLen(n, factor, offset int) int {
	if offset >= n {
		return 0
	}
	return ceilDiv(n-offset, factor)
}

func isEmptyMatrix(m mat.Matrix) bool {
	if m == nil {
		return true
	}
	if d, ok := m.(*mat.Dense); ok {
		return d == nil || d.IsEmpty()
	}
	return false
}
