package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/fraud-detection-server/internal/storage/sqlconfig"
)

// Writer exposes the tables through a single transaction.
type Writer struct {
	tx           bob.Tx
	Predictions  sqlconfig.IPredictionTable
	TrainingRuns sqlconfig.ITrainingRunTable
}

func NewWriter(tx bob.Tx) Writer {
	return Writer{
		tx:           tx,
		Predictions:  sqlconfig.NewPredictionsTable(tx),
		TrainingRuns: sqlconfig.NewTrainingRunsTable(tx),
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
