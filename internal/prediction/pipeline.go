// Package prediction loads the trained artifacts and scores transaction
// frames against them.
package prediction

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/carson-networks/fraud-detection-server/internal/artifact"
	"github.com/carson-networks/fraud-detection-server/internal/failure"
	"github.com/carson-networks/fraud-detection-server/internal/features"
	"github.com/carson-networks/fraud-detection-server/internal/model"
	"github.com/carson-networks/fraud-detection-server/internal/record"
)

var ErrEmptyFrame = errors.New("at least one transaction is required")

type transformer interface {
	Transform(rows [][]float64) ([][]float64, error)
}

type classifier interface {
	PredictProba(x [][]float64) ([]float64, error)
	Labels(proba []float64) []int
}

// Result is the outcome for one input row.
type Result struct {
	Transaction record.Transaction
	Label       int
	Probability float64
}

// Pipeline applies the saved preprocessor and model. It holds no mutable
// state and is safe for concurrent use.
type Pipeline struct {
	transformer transformer
	classifier  classifier
	version     string
}

func New(t transformer, c classifier, version string) *Pipeline {
	return &Pipeline{transformer: t, classifier: c, version: version}
}

// Load reads both artifacts from the store. Absent files are
// ArtifactMissing; unreadable ones, or a model not fitted against the
// stored preprocessor, are ArtifactInvalid.
func Load(store *artifact.Store) (*Pipeline, error) {
	const op = "prediction.Load"

	var pre features.Preprocessor
	preHeader, err := artifact.Load(store.PreprocessorPath(), artifact.KindPreprocessor, &pre)
	if err != nil {
		return nil, err
	}
	if err := pre.Validate(); err != nil {
		return nil, failure.New(failure.KindArtifactInvalid, op, err)
	}

	var m model.LogisticRegression
	header, err := artifact.Load(store.ModelPath(), artifact.KindModel, &m)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, failure.New(failure.KindArtifactInvalid, op, err)
	}
	if m.PreprocessorID != preHeader.ID {
		return nil, failure.New(failure.KindArtifactInvalid, op,
			fmt.Errorf("model was fitted against preprocessor %s, found %s", m.PreprocessorID, preHeader.ID))
	}
	if !slices.Equal(pre.Features, m.Features) {
		return nil, failure.New(failure.KindArtifactInvalid, op,
			fmt.Errorf("model features %v do not match preprocessor features %v", m.Features, pre.Features))
	}

	return New(&pre, &m, header.ID.String()), nil
}

// ModelVersion identifies the loaded model artifact.
func (p *Pipeline) ModelVersion() string {
	return p.version
}

// Predict validates the frame and returns one result per row in input
// order. Validation happens before the model is consulted.
func (p *Pipeline) Predict(ctx context.Context, frame record.Frame) (results []Result, err error) {
	const op = "prediction.Predict"

	if len(frame) == 0 {
		return nil, failure.New(failure.KindInputValidation, op, ErrEmptyFrame)
	}
	txs, err := record.ParseFrame(frame)
	if err != nil {
		return nil, failure.New(failure.KindInputValidation, op, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, failure.New(failure.KindPredictionFailure, op, err)
	}

	defer func() {
		if r := recover(); r != nil {
			results = nil
			err = failure.New(failure.KindPredictionFailure, op, fmt.Errorf("panic: %v", r))
		}
	}()

	scaled, err := p.transformer.Transform(features.ExtractAll(txs))
	if err != nil {
		return nil, failure.New(failure.KindPredictionFailure, op, err)
	}
	proba, err := p.classifier.PredictProba(scaled)
	if err != nil {
		return nil, failure.New(failure.KindPredictionFailure, op, err)
	}
	labels := p.classifier.Labels(proba)
	if len(labels) != len(txs) {
		return nil, failure.New(failure.KindPredictionFailure, op,
			fmt.Errorf("model returned %d labels for %d rows", len(labels), len(txs)))
	}

	results = make([]Result, len(txs))
	for i, tx := range txs {
		results[i] = Result{Transaction: tx, Label: labels[i], Probability: proba[i]}
	}
	return results, nil
}
