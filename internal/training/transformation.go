package training

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/fraud-detection-server/internal/artifact"
	"github.com/carson-networks/fraud-detection-server/internal/features"
	"github.com/carson-networks/fraud-detection-server/internal/record"
)

// TransformationResult holds the scaled splits and the fitted preprocessor.
// The preprocessor artifact is staged, not published: the trainer publishes
// it together with the model.
type TransformationResult struct {
	Train        Dataset
	Test         Dataset
	Preprocessor *features.Preprocessor
	Header       artifact.Header
	Staged       *artifact.Staged
}

// Transformation fits the preprocessor on the train split only, stages it
// and applies it to both splits.
type Transformation struct {
	Store  *artifact.Store
	Logger logrus.FieldLogger
}

func (t *Transformation) Run(ctx context.Context, ingested *IngestionResult) (*TransformationResult, error) {
	train, err := loadSplit(ingested.TrainPath)
	if err != nil {
		return nil, errors.Wrap(err, "load train split")
	}
	test, err := loadSplit(ingested.TestPath)
	if err != nil {
		return nil, errors.Wrap(err, "load test split")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pre, err := features.Fit(features.Names, train.X)
	if err != nil {
		return nil, errors.Wrap(err, "fit preprocessor")
	}
	if train.X, err = pre.Transform(train.X); err != nil {
		return nil, errors.Wrap(err, "scale train split")
	}
	if test.X, err = pre.Transform(test.X); err != nil {
		return nil, errors.Wrap(err, "scale test split")
	}

	staged, err := artifact.Stage(t.Store.PreprocessorPath(), artifact.KindPreprocessor, pre)
	if err != nil {
		return nil, errors.Wrap(err, "stage preprocessor")
	}

	t.Logger.WithFields(logrus.Fields{
		"path":     t.Store.PreprocessorPath(),
		"size":     humanize.Bytes(uint64(staged.Size)),
		"features": len(pre.Features),
	}).Info("Training.Transformation.Complete")

	return &TransformationResult{
		Train:        train,
		Test:         test,
		Preprocessor: pre,
		Header:       staged.Header,
		Staged:       staged,
	}, nil
}

func loadSplit(path string) (Dataset, error) {
	rows, _, err := readLabeled(path)
	if err != nil {
		return Dataset{}, err
	}
	txs := make([]record.Transaction, len(rows))
	y := make([]int, len(rows))
	for i, r := range rows {
		txs[i] = r.Transaction
		y[i] = r.Fraud
	}
	return Dataset{X: features.ExtractAll(txs), Y: y}, nil
}
