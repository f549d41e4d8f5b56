package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

const trainingRunsTable = "training_runs"

var _ ITrainingRunTable = (*TrainingRunsTable)(nil)

type TrainingRunsTable struct {
	exec bob.Executor
}

func NewTrainingRunsTable(exec bob.Executor) *TrainingRunsTable {
	return &TrainingRunsTable{exec: exec}
}

func (t *TrainingRunsTable) Insert(ctx context.Context, create *TrainingRunCreate) (uuid.UUID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, err
	}

	q := psql.Insert(
		im.Into(trainingRunsTable,
			"id", "model_name", "model_version", "f1", "accuracy", "precision_score", "recall",
			"train_rows", "test_rows", "skipped_rows", "started_at", "duration_ms"),
		im.Values(psql.Arg(
			id, create.ModelName, create.ModelVersion, create.F1, create.Accuracy, create.Precision, create.Recall,
			create.TrainRows, create.TestRows, create.SkippedRows, create.StartedAt, create.DurationMs,
		)),
	)
	if _, err := bob.Exec(ctx, t.exec, q); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Latest returns the most recent training run.
func (t *TrainingRunsTable) Latest(ctx context.Context) (*TrainingRun, error) {
	q := psql.Select(
		sm.Columns(
			"id", "model_name", "model_version", "f1", "accuracy", "precision_score", "recall",
			"train_rows", "test_rows", "skipped_rows", "started_at", "duration_ms", "created_at",
		),
		sm.From(trainingRunsTable),
		sm.OrderBy(psql.Quote("created_at")).Desc(),
		sm.OrderBy(psql.Quote("id")).Desc(),
		sm.Limit(1),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[TrainingRun]())
	if err != nil {
		return nil, err
	}
	return &row, nil
}
