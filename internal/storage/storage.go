package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/fraud-detection-server/internal/config"
	"github.com/carson-networks/fraud-detection-server/internal/storage/sqlconfig"
)

type Storage struct {
	DB           *sql.DB
	Predictions  sqlconfig.IPredictionTable
	TrainingRuns sqlconfig.ITrainingRunTable

	exec bob.DB
}

// NewStorage opens the database and waits for it to accept connections,
// retrying with exponential backoff until cfg.ConnectTimeout.
func NewStorage(ctx context.Context, cfg config.DatabaseConfig, logger logrus.FieldLogger) (*Storage, error) {
	db, err := sql.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxElapsedTime = cfg.ConnectTimeout
	attempt := 0
	err = backoff.Retry(func() error {
		attempt++
		pingErr := db.PingContext(ctx)
		if pingErr != nil {
			logger.WithError(pingErr).WithField("attempt", attempt).Warn("Storage.Ping.Retry")
		}
		return pingErr
	}, backoff.WithContext(b, ctx))
	if err != nil {
		db.Close()
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"address":  cfg.Address,
		"database": cfg.DB,
		"attempts": attempt,
	}).Info("Storage.Connected")

	return newStorage(db), nil
}

func newStorage(db *sql.DB) *Storage {
	exec := bob.NewDB(db)
	return &Storage{
		DB:           db,
		Predictions:  sqlconfig.NewPredictionsTable(exec),
		TrainingRuns: sqlconfig.NewTrainingRunsTable(exec),
		exec:         exec,
	}
}

// Write opens a transaction and returns a Writer bound to it.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.exec.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	w := NewWriter(tx)
	return &w, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
