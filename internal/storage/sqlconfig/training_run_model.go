package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

// TrainingRun records the outcome of one training pipeline run.
type TrainingRun struct {
	ID           uuid.UUID `db:"id"`
	ModelName    string    `db:"model_name"`
	ModelVersion string    `db:"model_version"`
	F1           float64   `db:"f1"`
	Accuracy     float64   `db:"accuracy"`
	Precision    float64   `db:"precision_score"`
	Recall       float64   `db:"recall"`
	TrainRows    int       `db:"train_rows"`
	TestRows     int       `db:"test_rows"`
	SkippedRows  int       `db:"skipped_rows"`
	StartedAt    time.Time `db:"started_at"`
	DurationMs   int64     `db:"duration_ms"`
	CreatedAt    time.Time `db:"created_at"`
}

type TrainingRunCreate struct {
	ModelName    string
	ModelVersion string
	F1           float64
	Accuracy     float64
	Precision    float64
	Recall       float64
	TrainRows    int
	TestRows     int
	SkippedRows  int
	StartedAt    time.Time
	DurationMs   int64
}

//go:generate mockery --name ITrainingRunTable --output mock_ITrainingRunTable.go
type ITrainingRunTable interface {
	Insert(ctx context.Context, create *TrainingRunCreate) (uuid.UUID, error)
	Latest(ctx context.Context) (*TrainingRun, error)
}
