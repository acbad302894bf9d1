package multirate

import (
	"errors"
	"fmt"
)

// Float is the type constraint for signal samples.
type Float interface {
	float32 | float64
}

// ErrInvalidArgument indicates a non-positive factor, an empty signal or filter,
// or a malformed filter bank. Every error returned by this package wraps it.
var ErrInvalidArgument = errors.New("invalid argument")

// Phase selects the starting offset used when decimating.
type Phase int

const (
	// PhaseEven keeps samples 0, M, 2M, ...
	PhaseEven Phase = iota

	// PhaseOdd keeps samples 1, 1+M, 1+2M, ...
	PhaseOdd
)

// PhaseFromParity maps an integer flag to a phase: odd flags select PhaseOdd,
// even flags (including 0) select PhaseEven.
func PhaseFromParity(flag int) Phase {
	if flag%parityDivisor != 0 {
		return PhaseOdd
	}
	return PhaseEven
}

// Offset returns the index of the first retained sample.
func (p Phase) Offset() int {
	if p == PhaseOdd {
		return oddPhaseOffset
	}
	return evenPhaseOffset
}

func (p Phase) String() string {
	switch p {
	case PhaseEven:
		return "even"
	case PhaseOdd:
		return "odd"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Validate checks that p is PhaseEven or PhaseOdd.
func (p Phase) Validate() error {
	if p != PhaseEven && p != PhaseOdd {
		return fmt.Errorf("%w: unknown phase %d", ErrInvalidArgument, int(p))
	}
	return nil
}

func checkFactor(name string, factor int) error {
	if factor < minFactor {
		return fmt.Errorf("%w: %s factor must be at least %d, got %d", ErrInvalidArgument, name, minFactor, factor)
	}
	return nil
}

func checkSignal(n int) error {
	if n == 0 {
		return fmt.Errorf("%w: signal is empty", ErrInvalidArgument)
	}
	return nil
}

// ceilDiv returns ⌈n/d⌉ for n >= 0, d >= 1.
func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}
