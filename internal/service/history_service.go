package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fraud-detection-server/internal/storage"
	"github.com/carson-networks/fraud-detection-server/internal/storage/sqlconfig"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

var ErrPredictionNotFound = errors.New("prediction not found")

// HistoryService reads audited predictions back.
type HistoryService struct {
	storage *storage.Storage
}

func NewHistoryService(store *storage.Storage) *HistoryService {
	return &HistoryService{storage: store}
}

// ListPredictions returns a page of predictions using cursor-based pagination.
func (s *HistoryService) ListPredictions(ctx context.Context, cursor *PredictionCursor) ([]Prediction, *PredictionCursor, error) {
	limit := defaultLimit
	offset := 0
	var maxCreationTime *time.Time
	var label *int
	if cursor != nil {
		if cursor.Limit > 0 {
			limit = min(cursor.Limit, maxLimit)
		}
		offset = cursor.Position
		if !cursor.MaxCreationTime.IsZero() {
			maxCreationTime = &cursor.MaxCreationTime
		}
		label = cursor.Label
	}

	filter := &sqlconfig.PredictionFilter{
		Label:           omit.FromPtr(label),
		Limit:           limit,
		Offset:          offset,
		MaxCreationTime: maxCreationTime,
	}

	rows, err := s.storage.Predictions.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *PredictionCursor
	if len(rows) > limit {
		rows = rows[:limit]

		cursorMaxCreationTime := rows[0].CreatedAt
		if maxCreationTime != nil {
			cursorMaxCreationTime = *maxCreationTime
		}

		nextCursor = &PredictionCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: cursorMaxCreationTime,
			Label:           label,
		}
	}

	predictions := make([]Prediction, len(rows))
	for i, row := range rows {
		predictions[i] = toPrediction(row)
	}

	return predictions, nextCursor, nil
}

// GetPrediction returns one audited prediction.
func (s *HistoryService) GetPrediction(ctx context.Context, id uuid.UUID) (*Prediction, error) {
	row, err := s.storage.Predictions.FindByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPredictionNotFound
	}
	if err != nil {
		return nil, err
	}
	p := toPrediction(row)
	return &p, nil
}

// LatestTrainingRun returns the most recent recorded training run, or nil
// when none has been recorded yet.
func (s *HistoryService) LatestTrainingRun(ctx context.Context) (*TrainingRun, error) {
	row, err := s.storage.TrainingRuns.Latest(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &TrainingRun{
		ID:           row.ID,
		ModelName:    row.ModelName,
		ModelVersion: row.ModelVersion,
		F1:           row.F1,
		Accuracy:     row.Accuracy,
		Precision:    row.Precision,
		Recall:       row.Recall,
		TrainRows:    row.TrainRows,
		TestRows:     row.TestRows,
		Duration:     time.Duration(row.DurationMs) * time.Millisecond,
		CreatedAt:    row.CreatedAt,
	}, nil
}

func toPrediction(row *sqlconfig.Prediction) Prediction {
	return Prediction{
		ID:              row.ID,
		TransactionID:   row.TransactionID,
		CustomerID:      row.CustomerID,
		TerminalID:      row.TerminalID,
		TxAmount:        row.TxAmount,
		TxDatetime:      row.TxDatetime,
		TxFraudScenario: row.TxFraudScenario,
		Label:           row.Label,
		Probability:     row.Probability,
		ModelVersion:    row.ModelVersion,
		CreatedAt:       row.CreatedAt,
	}
}
