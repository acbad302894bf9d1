// Package testutil provides reusable test helpers for multirate tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-10
	Float32Tolerance = 1e-5
)

// Float mirrors simdops.Float for helpers that accept either precision.
type Float interface {
	float32 | float64
}

// AssertSliceInDelta verifies that two slices have equal length and agree
// element-wise within tolerance.
func AssertSliceInDelta[F Float](t *testing.T, expected, actual []F, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected), msgAndArgs...) {
		return false
	}
	for i := range expected {
		if !assert.InDelta(t, float64(expected[i]), float64(actual[i]), tolerance,
			"index %d: expected %v, got %v", i, expected[i], actual[i]) {
			return false
		}
	}
	return true
}

// AssertZeroOffStride verifies that every element whose index is not a multiple
// of stride is exactly zero.
func AssertZeroOffStride[F Float](t *testing.T, s []F, stride int) bool {
	t.Helper()
	for i, v := range s {
		if i%stride != 0 && v != 0 {
			return assert.Fail(t, "non-zero off stride",
				"s[%d]=%v, stride %d", i, v, stride)
		}
	}
	return true
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertDims verifies the shape of a matrix.
func AssertDims(t *testing.T, m mat.Matrix, rows, cols int) bool {
	t.Helper()
	r, c := m.Dims()
	return assert.Equal(t, rows, r, "row count") && assert.Equal(t, cols, c, "column count")
}

// AssertColumnInDelta verifies column j of m against expected.
func AssertColumnInDelta(t *testing.T, m mat.Matrix, j int, expected []float64, tolerance float64) bool {
	t.Helper()
	return AssertSliceInDelta(t, expected, mat.Col(nil, j, m), tolerance, "column %d", j)
}

// Ramp returns [1, 2, ..., n].
func Ramp(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = float64(i + 1)
	}
	return s
}

// Sine returns n samples of sin(omega*i).
func Sine(n int, omega float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.Sin(omega * float64(i))
	}
	return s
}
