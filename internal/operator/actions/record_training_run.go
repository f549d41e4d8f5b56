package actions

import (
	"context"

	"github.com/carson-networks/fraud-detection-server/internal/storage"
	"github.com/carson-networks/fraud-detection-server/internal/storage/sqlconfig"
)

type RecordTrainingRun struct {
	Run sqlconfig.TrainingRunCreate
}

func (r *RecordTrainingRun) Name() string {
	return "RecordTrainingRun"
}

func (r *RecordTrainingRun) Perform(ctx context.Context, writer *storage.Writer) error {
	_, err := writer.TrainingRuns.Insert(ctx, &r.Run)
	return err
}
