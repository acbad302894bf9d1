// Command upfirdn-wav runs a WAV file through an upsample → FIR → downsample chain.
//
// Usage:
//
//	upfirdn-wav -taps lowpass.txt -up 2 input.wav output.wav          # Interpolate by 2
//	upfirdn-wav -taps lowpass.txt -up 3 -down 2 input.wav output.wav  # Rational 3/2
//	upfirdn-wav -taps bands.txt -bank -down 2 mono.wav bands.wav      # Filter-bank analysis
//	upfirdn-wav -taps lowpass.txt -up 2 -fast input.wav output.wav    # float32 precision
//
// The coefficient file holds one tap per line; in -bank mode each column is one
// channel of the bank and becomes one channel of the output file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	multirate "github.com/tphakala/go-multirate"
)

const (
	// CLI defaults
	defaultFactor   = 1
	minRequiredArgs = 2

	// Channel count constants
	monoChannels = 1

	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Normalization constants
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	// WAV format tag for integer PCM
	wavFormatPCM = 1

	// Frequency points evaluated for verbose filter summaries
	responsePoints = 256
)

var errUsage = errors.New("insufficient arguments")

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

type options struct {
	inputPath  string
	outputPath string
	tapsPath   string
	up         int
	down       int
	bank       bool
	fast       bool
	parallel   bool
	verbose    bool
}

func run() error {
	tapsPath := flag.String("taps", "", "Coefficient file (one tap per line, one column per channel)")
	up := flag.Int("up", defaultFactor, "Upsampling factor L")
	down := flag.Int("down", defaultFactor, "Downsampling factor M")
	bank := flag.Bool("bank", false, "Filter-bank analysis: apply every coefficient column to a mono input")
	fast := flag.Bool("fast", false, "Use float32 precision for interpolation")
	parallel := flag.Bool("parallel", true, "Process channels concurrently")
	verbose := flag.Bool("v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs || *tapsPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -taps coeffs.txt [options] input.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		return errUsage
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	opts := options{
		inputPath:  args[0],
		outputPath: args[1],
		tapsPath:   *tapsPath,
		up:         *up,
		down:       *down,
		bank:       *bank,
		fast:       *fast,
		parallel:   *parallel,
		verbose:    *verbose,
	}

	if opts.verbose {
		log.Printf("Input: %s", opts.inputPath)
		log.Printf("Output: %s", opts.outputPath)
		log.Printf("Coefficients: %s", opts.tapsPath)
		log.Printf("Factors: up=%d down=%d", opts.up, opts.down)
		if opts.bank {
			log.Printf("Mode: filter-bank analysis")
		} else {
			log.Printf("Mode: interpolation")
		}
	}

	start := time.Now()
	stats, err := process(opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Filtered %s -> %s\n", filepath.Base(opts.inputPath), filepath.Base(opts.outputPath))
	fmt.Printf("  %d Hz -> %d Hz (%d -> %d channels, %d-bit)\n",
		stats.inputRate, stats.outputRate, stats.inputChannels, stats.outputChannels, stats.bitDepth)
	fmt.Printf("  %d samples -> %d samples\n", stats.inputSamples, stats.outputSamples)
	fmt.Printf("  Duration: %.2fs\n", elapsed.Seconds())

	return nil
}

type processStats struct {
	inputRate      int
	outputRate     int
	inputChannels  int
	outputChannels int
	bitDepth       int
	inputSamples   int
	outputSamples  int
}

// process reads the input, applies the selected mode and writes the output.
func process(opts options) (*processStats, error) {
	bank, err := readCoefficients(opts.tapsPath)
	if err != nil {
		return nil, err
	}
	if opts.verbose {
		log.Printf("Filter: %d taps, %d channels", bank.Taps(), bank.Channels())
		for k := range bank.Channels() {
			resp := bank.FrequencyResponse(k, responsePoints)
			log.Printf("  channel %d: DC gain %.6f, %.1f dB at Nyquist",
				k, bank.DCGain(k), multirate.MagnitudeDB(resp.Magnitude[responsePoints-1]))
		}
	}

	input, err := readWAV(opts.inputPath, opts.verbose)
	if err != nil {
		return nil, err
	}

	var output [][]float64
	if opts.bank {
		if opts.up != defaultFactor {
			return nil, fmt.Errorf("filter-bank analysis requires -up 1, got %d", opts.up)
		}
		if input.channels != monoChannels {
			return nil, fmt.Errorf("filter-bank analysis requires mono input, got %d channels", input.channels)
		}
		output, err = analyzeMono(input.data[0], bank, opts.down, opts.parallel)
	} else {
		taps := bank.Channel(0)
		if opts.fast {
			output, err = interpolateChannels[float32](input.data, taps, opts.up, opts.down, opts.parallel)
		} else {
			output, err = interpolateChannels[float64](input.data, taps, opts.up, opts.down, opts.parallel)
		}
	}
	if err != nil {
		return nil, err
	}

	// Factors are validated by the filtering step above.
	outputRate, exact := scaledRate(input.rate, opts.up, opts.down)
	if !exact {
		log.Printf("Warning: %d Hz * %d / %d is not an integer, writing %d Hz",
			input.rate, opts.up, opts.down, outputRate)
	}

	if err := writeWAV(opts.outputPath, outputRate, input.bitDepth, output); err != nil {
		return nil, err
	}

	return &processStats{
		inputRate:      input.rate,
		outputRate:     outputRate,
		inputChannels:  input.channels,
		outputChannels: len(output),
		bitDepth:       input.bitDepth,
		inputSamples:   len(input.data[0]),
		outputSamples:  len(output[0]),
	}, nil
}
