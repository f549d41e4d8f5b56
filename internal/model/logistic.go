// Package model implements the fraud classifier and its evaluation metrics.
package model

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/gofrs/uuid/v5"
)

const DefaultThreshold = 0.5

var (
	ErrEmptyTrainingSet = errors.New("model: empty training set")
	ErrSingleClass      = errors.New("model: training labels contain a single class")
	ErrShape            = errors.New("model: input shape mismatch")
)

// Params configures one training run.
type Params struct {
	Name           string  `json:"name"`
	LearningRate   float64 `json:"learning_rate"`
	Epochs         int     `json:"epochs"`
	L2             float64 `json:"l2"`
	BalanceClasses bool    `json:"balance_classes"`
}

// DefaultCandidates are the parameter sets tried during training.
var DefaultCandidates = []Params{
	{Name: "logreg-balanced", LearningRate: 0.5, Epochs: 400, L2: 0.001, BalanceClasses: true},
	{Name: "logreg-plain", LearningRate: 0.5, Epochs: 400, L2: 0.001},
	{Name: "logreg-strong-l2", LearningRate: 0.3, Epochs: 600, L2: 0.05, BalanceClasses: true},
}

// LogisticRegression is a binary classifier over scaled feature vectors.
type LogisticRegression struct {
	Features  []string  `json:"features"`
	Weights   []float64 `json:"weights"`
	Bias      float64   `json:"bias"`
	Threshold float64   `json:"threshold"`
	Params    Params    `json:"params"`

	// PreprocessorID is the artifact ID of the preprocessor the weights
	// were fitted against.
	PreprocessorID uuid.UUID `json:"preprocessor_id"`
}

// Train fits weights with full-batch gradient descent. It is deterministic
// for a given input.
func Train(ctx context.Context, names []string, x [][]float64, y []int, params Params) (*LogisticRegression, error) {
	if len(x) == 0 {
		return nil, ErrEmptyTrainingSet
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d rows, %d labels", ErrShape, len(x), len(y))
	}
	width := len(names)
	positives := 0
	for i, row := range x {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d features, want %d", ErrShape, i, len(row), width)
		}
		if y[i] == 1 {
			positives++
		}
	}
	if positives == 0 || positives == len(y) {
		return nil, ErrSingleClass
	}

	posWeight, negWeight := 1.0, 1.0
	if params.BalanceClasses {
		n := float64(len(y))
		posWeight = n / (2 * float64(positives))
		negWeight = n / (2 * float64(len(y)-positives))
	}

	weights := make([]float64, width)
	bias := 0.0
	grad := make([]float64, width)

	for epoch := 0; epoch < params.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		clear(grad)
		gradBias := 0.0
		totalWeight := 0.0

		for i, row := range x {
			sw := negWeight
			if y[i] == 1 {
				sw = posWeight
			}
			residual := (sigmoid(dot(weights, row)+bias) - float64(y[i])) * sw
			for j, v := range row {
				grad[j] += residual * v
			}
			gradBias += residual
			totalWeight += sw
		}

		for j := range weights {
			weights[j] -= params.LearningRate * (grad[j]/totalWeight + params.L2*weights[j])
		}
		bias -= params.LearningRate * gradBias / totalWeight
	}

	return &LogisticRegression{
		Features:  slices.Clone(names),
		Weights:   weights,
		Bias:      bias,
		Threshold: DefaultThreshold,
		Params:    params,
	}, nil
}

// Validate checks that a decoded model is usable.
func (m *LogisticRegression) Validate() error {
	if len(m.Weights) == 0 || len(m.Weights) != len(m.Features) {
		return errors.New("model: weights do not match feature count")
	}
	if m.Threshold <= 0 || m.Threshold >= 1 {
		return fmt.Errorf("model: threshold %v out of range (0,1)", m.Threshold)
	}
	for _, w := range append(slices.Clone(m.Weights), m.Bias) {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return errors.New("model: non-finite weight")
		}
	}
	return nil
}

// PredictProba returns the fraud probability for each row.
func (m *LogisticRegression) PredictProba(x [][]float64) ([]float64, error) {
	out := make([]float64, len(x))
	for i, row := range x {
		if len(row) != len(m.Weights) {
			return nil, fmt.Errorf("%w: row %d has %d features, want %d", ErrShape, i, len(row), len(m.Weights))
		}
		p := sigmoid(dot(m.Weights, row) + m.Bias)
		if math.IsNaN(p) {
			return nil, fmt.Errorf("model: non-finite score for row %d", i)
		}
		out[i] = p
	}
	return out, nil
}

// Predict returns a 0/1 label per row.
func (m *LogisticRegression) Predict(x [][]float64) ([]int, error) {
	proba, err := m.PredictProba(x)
	if err != nil {
		return nil, err
	}
	return m.Labels(proba), nil
}

// Labels applies the decision threshold to probabilities.
func (m *LogisticRegression) Labels(proba []float64) []int {
	labels := make([]int, len(proba))
	for i, p := range proba {
		if p >= m.Threshold {
			labels[i] = 1
		}
	}
	return labels
}

func dot(w, x []float64) float64 {
	s := 0.0
	for i := range w {
		s += w[i] * x[i]
	}
	return s
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
