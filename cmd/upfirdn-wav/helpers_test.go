package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	multirate "github.com/tphakala/go-multirate"
)

const (
	testRate   = 8000
	testFrames = 100
)

func testSignal(frames int, amplitude, omega float64) []float64 {
	s := make([]float64, frames)
	for i := range s {
		s[i] = amplitude * math.Sin(omega*float64(i))
	}
	return s
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadWAV_FileNotFound(t *testing.T) {
	_, err := readWAV("/nonexistent/file.wav", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")
}

func TestReadWAV_InvalidWAV(t *testing.T) {
	path := writeTempFile(t, "invalid.wav", "not a wav file")

	_, err := readWAV(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid WAV file")
}

func TestWriteWAV_InvalidDirectory(t *testing.T) {
	err := writeWAV("/nonexistent/dir/out.wav", testRate, bitsPerSample16, [][]float64{{0.1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}

func TestWriteWAV_NoAudio(t *testing.T) {
	err := writeWAV(filepath.Join(t.TempDir(), "out.wav"), testRate, bitsPerSample16, nil)
	require.Error(t, err)
}

func TestWAVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereo.wav")
	left := testSignal(testFrames, 0.5, 0.1)
	right := testSignal(testFrames, -0.25, 0.3)

	require.NoError(t, writeWAV(path, testRate, bitsPerSample16, [][]float64{left, right}))

	input, err := readWAV(path, true)
	require.NoError(t, err)

	assert.Equal(t, testRate, input.rate)
	assert.Equal(t, 2, input.channels)
	assert.Equal(t, bitsPerSample16, input.bitDepth)
	require.Len(t, input.data, 2)
	require.Len(t, input.data[0], testFrames)

	// 16-bit quantization error is below 2 LSB.
	const quantTolerance = 2.0 / maxInt16
	assert.InDeltaSlice(t, left, input.data[0], quantTolerance)
	assert.InDeltaSlice(t, right, input.data[1], quantTolerance)
}

func TestDeinterleaveInterleave(t *testing.T) {
	data := []int{1, -1, 2, -2, 3, -3}
	channels := deinterleave(data, 2, 1.0)

	assert.Equal(t, []float64{1, 2, 3}, channels[0])
	assert.Equal(t, []float64{-1, -2, -3}, channels[1])

	// Values are clamped to [-1, 1] before scaling.
	assert.Equal(t, []int{10, -10, 10, -10, 10, -10}, interleave(channels, 10))
}

func TestInterleave_PadsShortChannels(t *testing.T) {
	got := interleave([][]float64{{0.5, 0.5}, {0.5}}, 2)
	assert.Equal(t, []int{1, 1, 1, 0}, got)
}

func TestGetMaxValue(t *testing.T) {
	assert.InDelta(t, maxInt16, getMaxValue(bitsPerSample16), 0)
	assert.InDelta(t, maxInt24, getMaxValue(bitsPerSample24), 0)
	assert.InDelta(t, maxInt32, getMaxValue(bitsPerSample32), 0)
	assert.InDelta(t, maxInt16, getMaxValue(12), 0)
}

func TestScaledRate(t *testing.T) {
	rate, exact := scaledRate(44100, 2, 1)
	assert.Equal(t, 88200, rate)
	assert.True(t, exact)

	rate, exact = scaledRate(8000, 1, 3)
	assert.Equal(t, 2666, rate)
	assert.False(t, exact)
}

func TestInterpolateChannels_ParallelMatchesSequential(t *testing.T) {
	channels := [][]float64{
		testSignal(64, 0.5, 0.2),
		testSignal(64, 0.3, 0.7),
		testSignal(64, 0.1, 1.1),
	}
	taps := []float64{0.25, 0.5, 0.25}

	seq, err := interpolateChannels[float64](channels, taps, 3, 2, false)
	require.NoError(t, err)
	par, err := interpolateChannels[float64](channels, taps, 3, 2, true)
	require.NoError(t, err)

	require.Len(t, seq, len(channels))
	assert.Equal(t, seq, par)
	for _, ch := range seq {
		assert.Len(t, ch, multirate.InterpolateLen(64, len(taps), 3, 2))
	}
}

func TestInterpolateChannels_Float32CloseToFloat64(t *testing.T) {
	channels := [][]float64{testSignal(64, 0.5, 0.2)}
	taps := []float64{0.25, 0.5, 0.25}

	f64Out, err := interpolateChannels[float64](channels, taps, 2, 1, false)
	require.NoError(t, err)
	f32Out, err := interpolateChannels[float32](channels, taps, 2, 1, false)
	require.NoError(t, err)

	assert.InDeltaSlice(t, f64Out[0], f32Out[0], 1e-6)
}

func TestInterpolateChannels_Error(t *testing.T) {
	_, err := interpolateChannels[float64]([][]float64{{1}, {1}}, []float64{1}, 0, 1, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, multirate.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "interpolation failed on channel")
}

func TestAnalyzeMono(t *testing.T) {
	bank, err := multirate.NewFilterBankFromChannels([]float64{1, 1}, []float64{1, -1})
	require.NoError(t, err)

	for _, parallel := range []bool{false, true} {
		bands, err := analyzeMono([]float64{1, 2, 3}, bank, 1, parallel)
		require.NoError(t, err)
		require.Len(t, bands, 2)
		assert.InDeltaSlice(t, []float64{1, 3, 5, 3}, bands[0], 1e-12)
		assert.InDeltaSlice(t, []float64{1, 1, 1, -3}, bands[1], 1e-12)
	}
}

func TestProcess_Interpolation(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "in.wav")
	outputPath := filepath.Join(dir, "out.wav")
	tapsPath := writeTempFile(t, "taps.txt", "0.5\n0.5\n")

	require.NoError(t, writeWAV(inputPath, testRate, bitsPerSample16,
		[][]float64{testSignal(testFrames, 0.5, 0.1)}))

	stats, err := process(options{
		inputPath:  inputPath,
		outputPath: outputPath,
		tapsPath:   tapsPath,
		up:         2,
		down:       1,
		parallel:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, 2*testRate, stats.outputRate)
	assert.Equal(t, multirate.InterpolateLen(testFrames, 2, 2, 1), stats.outputSamples)

	output, err := readWAV(outputPath, false)
	require.NoError(t, err)
	assert.Equal(t, 2*testRate, output.rate)
	assert.Equal(t, 1, output.channels)
	assert.Len(t, output.data[0], stats.outputSamples)
}

func TestProcess_FilterBank(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "in.wav")
	outputPath := filepath.Join(dir, "bands.wav")
	tapsPath := writeTempFile(t, "bank.txt", "0.5 0.5\n0.5 -0.5\n")

	require.NoError(t, writeWAV(inputPath, testRate, bitsPerSample24,
		[][]float64{testSignal(testFrames, 0.5, 0.1)}))

	stats, err := process(options{
		inputPath:  inputPath,
		outputPath: outputPath,
		tapsPath:   tapsPath,
		up:         1,
		down:       2,
		bank:       true,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.outputChannels)
	assert.Equal(t, testRate/2, stats.outputRate)
	assert.Equal(t, multirate.AnalyzeLen(testFrames, 2, 2), stats.outputSamples)

	output, err := readWAV(outputPath, false)
	require.NoError(t, err)
	assert.Equal(t, 2, output.channels)
	assert.Equal(t, bitsPerSample24, output.bitDepth)
}

func TestProcess_FilterBankRejectsStereo(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "stereo.wav")
	tapsPath := writeTempFile(t, "bank.txt", "1 1\n1 -1\n")

	require.NoError(t, writeWAV(inputPath, testRate, bitsPerSample16,
		[][]float64{testSignal(10, 0.5, 0.1), testSignal(10, 0.5, 0.2)}))

	_, err := process(options{
		inputPath:  inputPath,
		outputPath: filepath.Join(dir, "out.wav"),
		tapsPath:   tapsPath,
		up:         1,
		down:       1,
		bank:       true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires mono input")
}

func TestProcess_FilterBankRejectsUpsampling(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "in.wav")
	tapsPath := writeTempFile(t, "bank.txt", "1 1\n1 -1\n")

	require.NoError(t, writeWAV(inputPath, testRate, bitsPerSample16,
		[][]float64{testSignal(10, 0.5, 0.1)}))

	_, err := process(options{
		inputPath:  inputPath,
		outputPath: filepath.Join(dir, "out.wav"),
		tapsPath:   tapsPath,
		up:         2,
		down:       1,
		bank:       true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires -up 1")
}

func TestProcess_InvalidFactor(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "in.wav")
	tapsPath := writeTempFile(t, "taps.txt", "1\n")

	require.NoError(t, writeWAV(inputPath, testRate, bitsPerSample16,
		[][]float64{testSignal(10, 0.5, 0.1)}))

	_, err := process(options{
		inputPath:  inputPath,
		outputPath: filepath.Join(dir, "out.wav"),
		tapsPath:   tapsPath,
		up:         2,
		down:       0,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, multirate.ErrInvalidArgument)
}
