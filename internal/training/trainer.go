package training

import (
	"context"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/fraud-detection-server/internal/artifact"
	"github.com/carson-networks/fraud-detection-server/internal/config"
	"github.com/carson-networks/fraud-detection-server/internal/model"
)

// CandidateResult is the held-out score of one candidate model.
type CandidateResult struct {
	Params  model.Params
	Metrics model.Metrics
}

// TrainerResult describes the model that was kept.
type TrainerResult struct {
	Best       CandidateResult
	Candidates []CandidateResult
	Model      *model.LogisticRegression
	Header     artifact.Header
}

// Trainer fits every candidate concurrently, scores them on the test split
// and, if the best one clears the minimum score, publishes it together with
// the staged preprocessor.
type Trainer struct {
	Training   config.TrainingConfig
	Store      *artifact.Store
	Candidates []model.Params
	Logger     logrus.FieldLogger
}

func (t *Trainer) Run(ctx context.Context, data *TransformationResult) (*TrainerResult, error) {
	if len(t.Candidates) == 0 {
		return nil, errors.New("no candidate models configured")
	}
	if data.Test.Len() == 0 {
		return nil, errors.New("test split is empty")
	}

	models := make([]*model.LogisticRegression, len(t.Candidates))
	results := make([]CandidateResult, len(t.Candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, params := range t.Candidates {
		g.Go(func() error {
			m, err := model.Train(gctx, data.Preprocessor.Features, data.Train.X, data.Train.Y, params)
			if err != nil {
				return errors.Wrapf(err, "train %s", params.Name)
			}
			m.Threshold = t.Training.Threshold

			predicted, err := m.Predict(data.Test.X)
			if err != nil {
				return errors.Wrapf(err, "evaluate %s", params.Name)
			}
			models[i] = m
			results[i] = CandidateResult{Params: params, Metrics: model.Evaluate(data.Test.Y, predicted)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	best := 0
	for i := range results {
		t.Logger.WithFields(logrus.Fields{
			"candidate": results[i].Params.Name,
			"f1":        results[i].Metrics.F1,
			"accuracy":  results[i].Metrics.Accuracy,
		}).Info("Training.Trainer.Candidate")
		if results[i].Metrics.Better(results[best].Metrics) {
			best = i
		}
	}
	if score := results[best].Metrics.F1; score < t.Training.MinScore {
		return nil, errors.Errorf("best candidate %s scored F1 %.3f, below the minimum %.3f",
			results[best].Params.Name, score, t.Training.MinScore)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	models[best].PreprocessorID = data.Header.ID
	staged, err := artifact.Stage(t.Store.ModelPath(), artifact.KindModel, models[best])
	if err != nil {
		return nil, errors.Wrap(err, "stage model")
	}
	defer staged.Discard()
	if err := artifact.Publish(data.Staged, staged); err != nil {
		return nil, errors.Wrap(err, "publish artifacts")
	}

	t.Logger.WithFields(logrus.Fields{
		"path":  t.Store.ModelPath(),
		"size":  humanize.Bytes(uint64(staged.Size)),
		"model": results[best].Params.Name,
	}).Info("Training.Trainer.Complete")

	return &TrainerResult{
		Best:       results[best],
		Candidates: results,
		Model:      models[best],
		Header:     staged.Header,
	}, nil
}
