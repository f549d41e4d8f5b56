package features

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

var (
	ErrNoRows        = errors.New("features: no rows to fit")
	ErrWidthMismatch = errors.New("features: row width does not match preprocessor")
	ErrNonFinite     = errors.New("features: non-finite value")
)

// Preprocessor standardises features to zero mean and unit variance using
// statistics fitted on the training split. It is immutable once fitted.
type Preprocessor struct {
	Features []string  `json:"features"`
	Mean     []float64 `json:"mean"`
	Scale    []float64 `json:"scale"`
}

// Fit computes per-column mean and standard deviation. Columns with zero
// variance get a scale of 1 so they pass through centred.
func Fit(names []string, rows [][]float64) (*Preprocessor, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	width := len(names)
	mean := make([]float64, width)
	scale := make([]float64, width)

	for i, row := range rows {
		if err := checkRow(row, width); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		for j, v := range row {
			mean[j] += v
		}
	}
	n := float64(len(rows))
	for j := range mean {
		mean[j] /= n
	}

	for _, row := range rows {
		for j, v := range row {
			d := v - mean[j]
			scale[j] += d * d
		}
	}
	for j := range scale {
		std := math.Sqrt(scale[j] / n)
		if std == 0 {
			std = 1
		}
		scale[j] = std
	}

	return &Preprocessor{
		Features: slices.Clone(names),
		Mean:     mean,
		Scale:    scale,
	}, nil
}

// Width is the number of features the preprocessor expects.
func (p *Preprocessor) Width() int {
	return len(p.Features)
}

// Validate checks that a decoded preprocessor is internally consistent.
func (p *Preprocessor) Validate() error {
	if len(p.Features) == 0 {
		return errors.New("features: preprocessor has no features")
	}
	if len(p.Mean) != len(p.Features) || len(p.Scale) != len(p.Features) {
		return errors.New("features: preprocessor statistics do not match feature count")
	}
	for j, s := range p.Scale {
		if s == 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return fmt.Errorf("features: invalid scale for %s", p.Features[j])
		}
	}
	return nil
}

// Transform returns scaled copies of rows. Inputs are not modified.
func (p *Preprocessor) Transform(rows [][]float64) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		if err := checkRow(row, p.Width()); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = (v - p.Mean[j]) / p.Scale[j]
		}
		out[i] = scaled
	}
	return out, nil
}

func checkRow(row []float64, width int) error {
	if len(row) != width {
		return fmt.Errorf("%w: got %d, want %d", ErrWidthMismatch, len(row), width)
	}
	for _, v := range row {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNonFinite
		}
	}
	return nil
}
