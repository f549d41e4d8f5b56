// Package training runs the offline pipeline that turns the transaction
// dataset into the preprocessor and model artifacts served for prediction.
package training

import (
	"context"
	"slices"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/fraud-detection-server/internal/artifact"
	"github.com/carson-networks/fraud-detection-server/internal/config"
	"github.com/carson-networks/fraud-detection-server/internal/failure"
	"github.com/carson-networks/fraud-detection-server/internal/model"
)

// Report summarises a completed training run.
type Report struct {
	StartedAt time.Time
	Duration  time.Duration

	DatasetPath string
	Rows        int
	Skipped     int
	TrainRows   int
	TestRows    int

	Model        string
	ModelVersion string
	Metrics      model.Metrics
	Candidates   []CandidateResult
}

// Pipeline chains ingestion, transformation and training.
type Pipeline struct {
	ingestion      *Ingestion
	transformation *Transformation
	trainer        *Trainer
	logger         logrus.FieldLogger
}

func NewPipeline(cfg *config.Config, store *artifact.Store, logger logrus.FieldLogger) *Pipeline {
	return &Pipeline{
		ingestion: &Ingestion{
			Training:  cfg.Training,
			Artifacts: cfg.Artifacts,
			Store:     store,
			Logger:    logger,
		},
		transformation: &Transformation{
			Store:  store,
			Logger: logger,
		},
		trainer: &Trainer{
			Training:   cfg.Training,
			Store:      store,
			Candidates: slices.Clone(model.DefaultCandidates),
			Logger:     logger,
		},
		logger: logger,
	}
}

// WithCandidates replaces the parameter sets tried by the trainer.
func (p *Pipeline) WithCandidates(candidates ...model.Params) *Pipeline {
	p.trainer.Candidates = candidates
	return p
}

// Run executes every stage in order. Any stage error aborts the run and is
// returned as a TrainingFailure. The preprocessor and model are published
// only together, so a failed run leaves the previous pair untouched.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		StartedAt:   time.Now().UTC(),
		DatasetPath: p.ingestion.Training.DatasetPath,
	}
	p.logger.Info("Training.Run.Start")

	ingested, err := p.ingestion.Run(ctx)
	if err != nil {
		return nil, p.fail(errors.Wrap(err, "data ingestion"))
	}
	report.Rows = ingested.Rows
	report.Skipped = ingested.Skipped
	report.TrainRows = ingested.TrainRows
	report.TestRows = ingested.TestRows

	transformed, err := p.transformation.Run(ctx, ingested)
	if err != nil {
		return nil, p.fail(errors.Wrap(err, "data transformation"))
	}
	defer transformed.Staged.Discard()

	trained, err := p.trainer.Run(ctx, transformed)
	if err != nil {
		return nil, p.fail(errors.Wrap(err, "model training"))
	}
	report.Model = trained.Best.Params.Name
	report.ModelVersion = trained.Header.ID.String()
	report.Metrics = trained.Best.Metrics
	report.Candidates = trained.Candidates
	report.Duration = time.Since(report.StartedAt)

	p.logger.WithFields(logrus.Fields{
		"model":        report.Model,
		"modelVersion": report.ModelVersion,
		"f1":           report.Metrics.F1,
		"accuracy":     report.Metrics.Accuracy,
		"duration":     report.Duration.String(),
	}).Info("Training.Run.Complete")
	return report, nil
}

func (p *Pipeline) fail(err error) error {
	p.logger.WithError(err).Error("Training.Run.Error")
	return failure.New(failure.KindTrainingFailure, "training.Run", err)
}
