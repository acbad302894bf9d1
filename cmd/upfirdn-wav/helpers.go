package main

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	multirate "github.com/tphakala/go-multirate"
	"gonum.org/v1/gonum/mat"
)

// wavInput holds a fully decoded WAV file as normalized per-channel signals.
type wavInput struct {
	rate     int
	channels int
	bitDepth int
	data     [][]float64
}

// readWAV decodes a PCM WAV file and normalizes its samples to [-1.0, 1.0].
func readWAV(path string, verbose bool) (*wavInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}

	format := decoder.Format()
	channels := format.NumChannels
	bitDepth := int(decoder.BitDepth)
	if channels < monoChannels || len(buf.Data) < channels {
		return nil, fmt.Errorf("WAV file has no audio samples: %s", path)
	}

	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit, %d frames",
			format.SampleRate, channels, bitDepth, len(buf.Data)/channels)
	}

	return &wavInput{
		rate:     format.SampleRate,
		channels: channels,
		bitDepth: bitDepth,
		data:     deinterleave(buf.Data, channels, 1.0/getMaxValue(bitDepth)),
	}, nil
}

// writeWAV encodes per-channel signals as interleaved PCM at the given bit depth.
// Samples are clamped to [-1.0, 1.0].
func writeWAV(path string, sampleRate, bitDepth int, channels [][]float64) (err error) {
	if len(channels) == 0 || len(channels[0]) == 0 {
		return fmt.Errorf("no audio to write")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	encoder := wav.NewEncoder(f, sampleRate, bitDepth, len(channels), wavFormatPCM)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: len(channels),
			SampleRate:  sampleRate,
		},
		Data:           interleave(channels, getMaxValue(bitDepth)),
		SourceBitDepth: bitDepth,
	}

	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	// Close finalizes the RIFF header sizes.
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	return nil
}

// interpolateChannels runs every channel through multirate.Interpolate at
// precision F. Channels are independent one-dimensional signals.
func interpolateChannels[F multirate.Float](
	channels [][]float64,
	taps []float64,
	up, down int,
	parallel bool,
) ([][]float64, error) {
	kernel := convertSlice[F](taps)

	interpolate := func(ch int) ([]float64, error) {
		y, err := multirate.Interpolate(convertSlice[F](channels[ch]), kernel, up, down)
		if err != nil {
			return nil, fmt.Errorf("interpolation failed on channel %d: %w", ch, err)
		}
		return convertSlice[float64](y), nil
	}

	if parallel && len(channels) > 1 {
		return processParallel(len(channels), interpolate)
	}
	return processSequential(len(channels), interpolate)
}

// analyzeMono splits a mono signal into one output channel per filter.
func analyzeMono(signal []float64, bank *multirate.FilterBank, down int, parallel bool) ([][]float64, error) {
	analyze := multirate.Analyze
	if parallel {
		analyze = multirate.AnalyzeParallel
	}

	bands, err := analyze(signal, bank, down)
	if err != nil {
		return nil, fmt.Errorf("filter-bank analysis failed: %w", err)
	}

	_, cols := bands.Dims()
	out := make([][]float64, cols)
	for k := range cols {
		out[k] = mat.Col(nil, k, bands)
	}
	return out, nil
}

// processParallel runs fn for every channel concurrently.
func processParallel(channels int, fn func(ch int) ([]float64, error)) ([][]float64, error) {
	results := make([][]float64, channels)
	var wg sync.WaitGroup
	var processErr error
	var errMu sync.Mutex

	for ch := range channels {
		wg.Add(1)
		go func(channel int) {
			defer wg.Done()
			y, err := fn(channel)
			if err != nil {
				errMu.Lock()
				if processErr == nil {
					processErr = err
				}
				errMu.Unlock()
				return
			}
			results[channel] = y
		}(ch)
	}
	wg.Wait()

	if processErr != nil {
		return nil, processErr
	}
	return results, nil
}

// processSequential runs fn for every channel in order.
func processSequential(channels int, fn func(ch int) ([]float64, error)) ([][]float64, error) {
	results := make([][]float64, channels)
	for ch := range channels {
		y, err := fn(ch)
		if err != nil {
			return nil, err
		}
		results[ch] = y
	}
	return results, nil
}

// scaledRate returns rate*up/down and whether the division was exact.
func scaledRate(rate, up, down int) (int, bool) {
	scaled := rate * up
	return scaled / down, scaled%down == 0
}

// deinterleave converts interleaved int samples to per-channel float slices.
func deinterleave(data []int, channels int, invMaxVal float64) [][]float64 {
	frames := len(data) / channels
	result := make([][]float64, channels)
	for ch := range channels {
		result[ch] = make([]float64, frames)
	}

	for i := range frames {
		base := i * channels
		for ch := range channels {
			result[ch][i] = float64(data[base+ch]) * invMaxVal
		}
	}
	return result
}

// interleave converts per-channel float slices to interleaved int samples.
// Channels shorter than the first are zero-padded.
func interleave(channels [][]float64, maxVal float64) []int {
	numChannels := len(channels)
	frames := len(channels[0])
	result := make([]int, frames*numChannels)

	for ch, samples := range channels {
		for i := range min(frames, len(samples)) {
			result[i*numChannels+ch] = int(clamp(samples[i]) * maxVal)
		}
	}
	return result
}

func clamp(sample float64) float64 {
	if sample > 1.0 {
		return 1.0
	}
	if sample < -1.0 {
		return -1.0
	}
	return sample
}

// getMaxValue returns the maximum sample value for the given bit depth.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

func convertSlice[T, F multirate.Float](s []F) []T {
	out := make([]T, len(s))
	for i, v := range s {
		out[i] = T(v)
	}
	return out
}
