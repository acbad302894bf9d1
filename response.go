package multirate

import (
	"math"
)

const (
	defaultResponsePoints = 512

	// Frequencies are normalized so 0.5 is Nyquist.
	nyquistDivisor = 2.0

	minMagnitude = 1e-10 // Floor to avoid log(0)
	dbMultiplier = 20.0  // 20*log10 for magnitude
)

// FrequencyResponse holds a filter's response sampled from 0 to Nyquist.
type FrequencyResponse struct {
	// Frequencies are normalized to the sample rate (0 to 0.5).
	Frequencies []float64

	// Magnitude is the linear gain at each frequency.
	Magnitude []float64

	// Phase is the phase shift at each frequency in radians.
	Phase []float64
}

// FrequencyResponse evaluates the DTFT of channel k at numPoints frequencies in
// [0, 0.5). numPoints <= 0 selects 512 points. It panics if k is out of range.
func (fb *FilterBank) FrequencyResponse(k, numPoints int) FrequencyResponse {
	if numPoints <= 0 {
		numPoints = defaultResponsePoints
	}
	coeffs := fb.Channel(k)

	response := FrequencyResponse{
		Frequencies: make([]float64, numPoints),
		Magnitude:   make([]float64, numPoints),
		Phase:       make([]float64, numPoints),
	}

	for i := range numPoints {
		freq := float64(i) / (nyquistDivisor * float64(numPoints))
		response.Frequencies[i] = freq

		// H(e^jω) = Σ h[n]·e^(-jωn)
		omega := 2 * math.Pi * freq
		var re, im float64
		for n, h := range coeffs {
			angle := omega * float64(n)
			re += h * math.Cos(angle)
			im -= h * math.Sin(angle)
		}

		response.Magnitude[i] = math.Hypot(re, im)
		response.Phase[i] = math.Atan2(im, re)
	}

	return response
}

// MagnitudeDB converts a linear magnitude to decibels, flooring at -200 dB.
func MagnitudeDB(magnitude float64) float64 {
	return dbMultiplier * math.Log10(max(magnitude, minMagnitude))
}
