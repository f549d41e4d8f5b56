// Package app holds the application context built once at startup and
// shared by the HTTP layer and the CLI commands.
package app

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/fraud-detection-server/internal/artifact"
	"github.com/carson-networks/fraud-detection-server/internal/config"
	"github.com/carson-networks/fraud-detection-server/internal/operator"
	"github.com/carson-networks/fraud-detection-server/internal/operator/actions"
	"github.com/carson-networks/fraud-detection-server/internal/prediction"
	"github.com/carson-networks/fraud-detection-server/internal/service"
	"github.com/carson-networks/fraud-detection-server/internal/storage"
	"github.com/carson-networks/fraud-detection-server/internal/storage/sqlconfig"
	"github.com/carson-networks/fraud-detection-server/internal/training"
)

var ErrNotLoaded = errors.New("app: prediction pipeline not loaded")

type App struct {
	Config *config.Config
	Logger *logrus.Logger
	Store  *artifact.Store

	// Storage and Operator are nil when the database is disabled.
	Storage  *storage.Storage
	Operator *operator.OperatorDelegator

	Pipeline *prediction.Pipeline
	Service  *service.Service
}

// New opens the optional database, applies migrations and starts the
// operator workers. The prediction pipeline is loaded separately with
// LoadPipeline so training can run first.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
		Store:  artifact.NewStore(cfg.Artifacts.Dir, cfg.Artifacts.PreprocessorFile, cfg.Artifacts.ModelFile),
	}

	if !cfg.Database.Enabled {
		logger.Info("App.Database.Disabled")
		return a, nil
	}

	s, err := storage.NewStorage(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	if err := storage.Migrate(s.DB, logger); err != nil {
		s.Close()
		return nil, err
	}
	a.Storage = s
	a.Operator = operator.NewOperatorDelegator(s, cfg.Database.Workers, logger)
	a.Operator.Start()
	return a, nil
}

// Train runs the training pipeline and, with a database, records the run.
func (a *App) Train(ctx context.Context) (*training.Report, error) {
	report, err := training.NewPipeline(a.Config, a.Store, a.Logger).Run(ctx)
	if err != nil {
		return nil, err
	}

	if a.Operator != nil {
		err := a.Operator.Process(ctx, &actions.RecordTrainingRun{Run: sqlconfig.TrainingRunCreate{
			ModelName:    report.Model,
			ModelVersion: report.ModelVersion,
			F1:           report.Metrics.F1,
			Accuracy:     report.Metrics.Accuracy,
			Precision:    report.Metrics.Precision,
			Recall:       report.Metrics.Recall,
			TrainRows:    report.TrainRows,
			TestRows:     report.TestRows,
			SkippedRows:  report.Skipped,
			StartedAt:    report.StartedAt,
			DurationMs:   report.Duration.Milliseconds(),
		}})
		if err != nil {
			a.Logger.WithError(err).Warn("App.Train.RecordRun.Error")
		}
	}
	return report, nil
}

// LoadPipeline loads the artifacts once and builds the services on top.
func (a *App) LoadPipeline() error {
	p, err := prediction.Load(a.Store)
	if err != nil {
		return err
	}
	a.Pipeline = p

	// A nil *OperatorDelegator must not reach the interface parameter.
	if a.Operator != nil {
		a.Service = service.NewService(p, a.Storage, a.Operator, a.Logger)
	} else {
		a.Service = service.NewService(p, nil, nil, a.Logger)
	}

	a.Logger.WithField("modelVersion", p.ModelVersion()).Info("App.Pipeline.Loaded")
	return nil
}

// Start trains when configured to, then loads the pipeline.
func (a *App) Start(ctx context.Context) error {
	if a.Config.Training.OnStartup {
		start := time.Now()
		if _, err := a.Train(ctx); err != nil {
			return err
		}
		a.Logger.WithField("duration", time.Since(start).String()).Info("App.Start.Trained")
	}
	return a.LoadPipeline()
}

// Close drains the operator and closes the database.
func (a *App) Close() {
	if a.Operator != nil {
		a.Operator.Stop()
	}
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			a.Logger.WithError(err).Warn("App.Close.Storage.Error")
		}
	}
}
