package actions

import (
	"context"

	"github.com/carson-networks/fraud-detection-server/internal/storage"
	"github.com/carson-networks/fraud-detection-server/internal/storage/sqlconfig"
)

// RecordPrediction stores the audit row for a served prediction.
type RecordPrediction struct {
	Prediction sqlconfig.PredictionCreate
}

func (r *RecordPrediction) Name() string {
	return "RecordPrediction"
}

func (r *RecordPrediction) Perform(ctx context.Context, writer *storage.Writer) error {
	_, err := writer.Predictions.Insert(ctx, &r.Prediction)
	return err
}
