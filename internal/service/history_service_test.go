package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/fraud-detection-server/internal/storage"
	"github.com/carson-networks/fraud-detection-server/internal/storage/sqlconfig"
)

func newTestHistoryService(t *testing.T) (*HistoryService, *sqlconfig.MockIPredictionTable) {
	t.Helper()
	mockTable := sqlconfig.NewMockIPredictionTable(t)
	store := &storage.Storage{Predictions: mockTable}
	return NewHistoryService(store), mockTable
}

func makeStorageRows(n int, createdAt time.Time) []*sqlconfig.Prediction {
	rows := make([]*sqlconfig.Prediction, n)
	for i := range rows {
		rows[i] = &sqlconfig.Prediction{
			ID:            uuid.Must(uuid.NewV7()),
			TransactionID: "1754155",
			CustomerID:    "4961",
			TerminalID:    "3412",
			TxAmount:      decimal.RequireFromString("281.53"),
			TxDatetime:    createdAt.Add(-time.Hour),
			Label:         i % 2,
			Probability:   0.4,
			ModelVersion:  "model-v1",
			CreatedAt:     createdAt,
		}
	}
	return rows
}

// -- ListPredictions tests --

func TestListPredictions_NoResults(t *testing.T) {
	svc, mockTable := newTestHistoryService(t)

	mockTable.EXPECT().List(mock.Anything, mock.Anything).
		Return([]*sqlconfig.Prediction{}, nil)

	predictions, nextCursor, err := svc.ListPredictions(context.Background(), nil)

	assert.NoError(t, err)
	assert.Nil(t, predictions)
	assert.Nil(t, nextCursor)
}

func TestListPredictions_SinglePage(t *testing.T) {
	svc, mockTable := newTestHistoryService(t)

	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	rows := makeStorageRows(2, now)

	mockTable.EXPECT().List(mock.Anything, mock.MatchedBy(func(f *sqlconfig.PredictionFilter) bool {
		return f.Limit == defaultLimit && f.Offset == 0 && f.MaxCreationTime == nil
	})).Return(rows, nil)

	predictions, nextCursor, err := svc.ListPredictions(context.Background(), nil)

	assert.NoError(t, err)
	assert.Len(t, predictions, 2)
	assert.Nil(t, nextCursor)

	p := predictions[1]
	assert.Equal(t, rows[1].ID, p.ID)
	assert.Equal(t, rows[1].TransactionID, p.TransactionID)
	assert.True(t, rows[1].TxAmount.Equal(p.TxAmount))
	assert.Equal(t, 1, p.Label)
	assert.Equal(t, rows[1].ModelVersion, p.ModelVersion)
	assert.Equal(t, rows[1].CreatedAt, p.CreatedAt)
}

func TestListPredictions_HasNextPage(t *testing.T) {
	svc, mockTable := newTestHistoryService(t)

	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	rows := makeStorageRows(defaultLimit+1, now)

	mockTable.EXPECT().List(mock.Anything, mock.Anything).Return(rows, nil)

	predictions, nextCursor, err := svc.ListPredictions(context.Background(), nil)

	assert.NoError(t, err)
	assert.Len(t, predictions, defaultLimit, "truncated to default limit")

	assert.NotNil(t, nextCursor)
	assert.Equal(t, defaultLimit, nextCursor.Position)
	assert.Equal(t, defaultLimit, nextCursor.Limit)
	assert.Equal(t, now, nextCursor.MaxCreationTime, "derived from first row")
}

func TestListPredictions_WithCursor(t *testing.T) {
	svc, mockTable := newTestHistoryService(t)

	cursorTime := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	rows := makeStorageRows(3, time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC))

	mockTable.EXPECT().List(mock.Anything, mock.MatchedBy(func(f *sqlconfig.PredictionFilter) bool {
		return f.Limit == 2 &&
			f.Offset == 20 &&
			f.MaxCreationTime != nil &&
			f.MaxCreationTime.Equal(cursorTime)
	})).Return(rows, nil)

	predictions, nextCursor, err := svc.ListPredictions(context.Background(), &PredictionCursor{
		Position:        20,
		Limit:           2,
		MaxCreationTime: cursorTime,
	})

	assert.NoError(t, err)
	assert.Len(t, predictions, 2)

	assert.NotNil(t, nextCursor)
	assert.Equal(t, 22, nextCursor.Position)
	assert.Equal(t, 2, nextCursor.Limit)
	assert.Equal(t, cursorTime, nextCursor.MaxCreationTime, "echoed from cursor, not overridden by row data")
}

func TestListPredictions_LimitCapped(t *testing.T) {
	svc, mockTable := newTestHistoryService(t)

	mockTable.EXPECT().List(mock.Anything, mock.MatchedBy(func(f *sqlconfig.PredictionFilter) bool {
		return f.Limit == maxLimit
	})).Return(nil, nil)

	_, _, err := svc.ListPredictions(context.Background(), &PredictionCursor{Limit: 500})
	assert.NoError(t, err)
}

func TestListPredictions_StorageError(t *testing.T) {
	svc, mockTable := newTestHistoryService(t)

	mockTable.EXPECT().List(mock.Anything, mock.Anything).
		Return(nil, errors.New("database unavailable"))

	predictions, nextCursor, err := svc.ListPredictions(context.Background(), nil)

	assert.Error(t, err)
	assert.Equal(t, "database unavailable", err.Error())
	assert.Nil(t, predictions)
	assert.Nil(t, nextCursor)
}

func TestListPredictions_LabelFilterCarriedToNextPage(t *testing.T) {
	svc, mockTable := newTestHistoryService(t)
	fraud := 1
	rows := makeStorageRows(3, time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC))

	mockTable.EXPECT().List(mock.Anything, mock.MatchedBy(func(f *sqlconfig.PredictionFilter) bool {
		label, ok := f.Label.Get()
		return ok && label == 1 && f.MaxCreationTime == nil
	})).Return(rows, nil)

	_, nextCursor, err := svc.ListPredictions(context.Background(), &PredictionCursor{Limit: 2, Label: &fraud})
	assert.NoError(t, err)
	assert.NotNil(t, nextCursor)
	assert.Equal(t, &fraud, nextCursor.Label)
	assert.Equal(t, rows[0].CreatedAt, nextCursor.MaxCreationTime)
}

// -- GetPrediction tests --

func TestGetPrediction(t *testing.T) {
	svc, mockTable := newTestHistoryService(t)
	row := makeStorageRows(1, time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC))[0]

	mockTable.EXPECT().FindByID(mock.Anything, row.ID).Return(row, nil)

	p, err := svc.GetPrediction(context.Background(), row.ID)
	require.NoError(t, err)
	assert.Equal(t, row.ID, p.ID)
	assert.Equal(t, row.TransactionID, p.TransactionID)
	assert.True(t, row.TxAmount.Equal(p.TxAmount))
}

func TestGetPrediction_NotFound(t *testing.T) {
	svc, mockTable := newTestHistoryService(t)

	mockTable.EXPECT().FindByID(mock.Anything, mock.Anything).Return(nil, sql.ErrNoRows)

	p, err := svc.GetPrediction(context.Background(), uuid.Must(uuid.NewV7()))
	assert.ErrorIs(t, err, ErrPredictionNotFound)
	assert.Nil(t, p)
}

// -- LatestTrainingRun tests --

func TestLatestTrainingRun(t *testing.T) {
	runs := sqlconfig.NewMockITrainingRunTable(t)
	svc := NewHistoryService(&storage.Storage{TrainingRuns: runs})

	runs.EXPECT().Latest(mock.Anything).Return(&sqlconfig.TrainingRun{
		ModelName:    "logreg-balanced",
		ModelVersion: "model-v2",
		F1:           0.91,
		DurationMs:   1500,
	}, nil)

	run, err := svc.LatestTrainingRun(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "model-v2", run.ModelVersion)
	assert.Equal(t, 0.91, run.F1)
	assert.Equal(t, 1500*time.Millisecond, run.Duration)
}

func TestLatestTrainingRun_NoneRecorded(t *testing.T) {
	runs := sqlconfig.NewMockITrainingRunTable(t)
	svc := NewHistoryService(&storage.Storage{TrainingRuns: runs})

	runs.EXPECT().Latest(mock.Anything).Return(nil, sql.ErrNoRows)

	run, err := svc.LatestTrainingRun(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, run)
}
