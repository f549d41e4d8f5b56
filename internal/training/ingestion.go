package training

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/fraud-detection-server/internal/artifact"
	"github.com/carson-networks/fraud-detection-server/internal/config"
	"github.com/carson-networks/fraud-detection-server/internal/record"
)

// IngestionResult locates the splits written by Ingestion.
type IngestionResult struct {
	RawPath   string
	TrainPath string
	TestPath  string

	Rows      int
	Skipped   int
	TrainRows int
	TestRows  int
}

// Ingestion reads the raw dataset, keeps a cleaned copy and writes a
// stratified train/test split next to the other artifacts.
type Ingestion struct {
	Training  config.TrainingConfig
	Artifacts config.ArtifactsConfig
	Store     *artifact.Store
	Logger    logrus.FieldLogger
}

func (i *Ingestion) Run(ctx context.Context) (*IngestionResult, error) {
	i.Logger.WithField("datasetPath", i.Training.DatasetPath).Info("Training.Ingestion.Start")

	rows, skipped, err := readLabeled(i.Training.DatasetPath)
	if err != nil {
		return nil, errors.Wrap(err, "read dataset")
	}
	if len(rows) == 0 {
		return nil, errors.Errorf("dataset %s has no usable rows (%d skipped)", i.Training.DatasetPath, skipped)
	}
	if !hasBothClasses(rows) {
		return nil, errors.Errorf("dataset %s contains a single class", i.Training.DatasetPath)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	train, test := stratifiedSplit(rows, i.Training.TestRatio, i.Training.Seed)

	res := &IngestionResult{
		RawPath:   i.Store.Path(i.Artifacts.RawFile),
		TrainPath: i.Store.Path(i.Artifacts.TrainFile),
		TestPath:  i.Store.Path(i.Artifacts.TestFile),
		Rows:      len(rows),
		Skipped:   skipped,
		TrainRows: len(train),
		TestRows:  len(test),
	}
	if err := writeLabeled(res.RawPath, rows); err != nil {
		return nil, errors.Wrap(err, "write raw copy")
	}
	if err := writeLabeled(res.TrainPath, train); err != nil {
		return nil, errors.Wrap(err, "write train split")
	}
	if err := writeLabeled(res.TestPath, test); err != nil {
		return nil, errors.Wrap(err, "write test split")
	}

	i.Logger.WithFields(logrus.Fields{
		"rows":      res.Rows,
		"skipped":   res.Skipped,
		"trainRows": res.TrainRows,
		"testRows":  res.TestRows,
	}).Info("Training.Ingestion.Complete")
	return res, nil
}

func hasBothClasses(rows []record.Labeled) bool {
	var seen [2]bool
	for _, r := range rows {
		seen[r.Fraud] = true
	}
	return seen[0] && seen[1]
}

// stratifiedSplit shuffles each class with a seeded generator and moves
// testRatio of it to the test split. Classes with more than one row keep
// at least one row on each side. Output preserves input order.
func stratifiedSplit(rows []record.Labeled, testRatio float64, seed uint64) (train, test []record.Labeled) {
	rng := rand.New(rand.NewPCG(seed, seed))

	var byClass [2][]int
	for i, r := range rows {
		byClass[r.Fraud] = append(byClass[r.Fraud], i)
	}

	inTest := make([]bool, len(rows))
	for _, idx := range byClass {
		rng.Shuffle(len(idx), func(a, b int) { idx[a], idx[b] = idx[b], idx[a] })

		n := int(math.Round(float64(len(idx)) * testRatio))
		if len(idx) > 1 {
			n = max(1, min(n, len(idx)-1))
		}
		for _, i := range idx[:n] {
			inTest[i] = true
		}
	}

	for i, r := range rows {
		if inTest[i] {
			test = append(test, r)
		} else {
			train = append(train, r)
		}
	}
	return train, test
}
