package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	multirate "github.com/tphakala/go-multirate"
	"gonum.org/v1/gonum/mat"
)

const commentPrefix = "#"

// readCoefficients loads a filter bank from a text file.
func readCoefficients(path string) (*multirate.FilterBank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open coefficient file: %w", err)
	}
	defer func() { _ = f.Close() }()

	bank, err := parseCoefficients(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bank, nil
}

// parseCoefficients reads one tap per line with one column per channel.
// Columns are separated by whitespace or commas; text after '#' is ignored,
// as are blank lines. Every line must have the same number of columns.
func parseCoefficients(r io.Reader) (*multirate.FilterBank, error) {
	var (
		data    []float64
		columns int
		taps    int
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if idx := strings.Index(line, commentPrefix); idx >= 0 {
			line = line[:idx]
		}
		fields := strings.FieldsFunc(line, func(c rune) bool {
			return c == ',' || c == ' ' || c == '\t'
		})
		if len(fields) == 0 {
			continue
		}

		if columns == 0 {
			columns = len(fields)
		} else if len(fields) != columns {
			return nil, fmt.Errorf("line %d: got %d columns, want %d", lineNo, len(fields), columns)
		}

		for _, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			data = append(data, v)
		}
		taps++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read coefficients: %w", err)
	}
	if taps == 0 {
		return nil, fmt.Errorf("no coefficients found")
	}

	return multirate.NewFilterBank(mat.NewDense(taps, columns, data))
}
