package multirate

// Decimation phase offsets
const (
	evenPhaseOffset = 0 // Keep samples 0, M, 2M, ...
	oddPhaseOffset  = 1 // Keep samples 1, 1+M, 1+2M, ...
	parityDivisor   = 2 // Integer flags select a phase by parity
)

// Identity factors skip the corresponding pipeline stage.
const (
	identityFactor = 1
	minFactor      = 1
)

// Filter bank constants
const (
	firstChannel = 0 // Channel used by the interpolation path
	minTaps      = 1
	minChannels  = 1
)
