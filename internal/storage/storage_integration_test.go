package storage

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/carson-networks/fraud-detection-server/internal/config"
	"github.com/carson-networks/fraud-detection-server/internal/storage/sqlconfig"
)

func startPostgres(t *testing.T) *Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("fraud"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("testpassword"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	host, err := ctr.Host(ctx)
	require.NoError(t, err)
	port, err := ctr.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	logger, _ := logtest.NewNullLogger()
	store, err := NewStorage(ctx, config.DatabaseConfig{
		Address:        host,
		Port:           port.Port(),
		DB:             "fraud",
		Username:       "postgres",
		Password:       "testpassword",
		ConnectTimeout: 30 * time.Second,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, Migrate(store.DB, logger))
	return store
}

func TestStorage_Predictions(t *testing.T) {
	store := startPostgres(t)
	ctx := context.Background()

	// -- insert through a committed transaction --
	writer, err := store.Write(ctx)
	require.NoError(t, err)
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		id, err := writer.Predictions.Insert(ctx, &sqlconfig.PredictionCreate{
			TransactionID: "tx-" + string(rune('a'+i)),
			CustomerID:    "596",
			TerminalID:    "3156",
			TxAmount:      decimal.RequireFromString("57.16"),
			TxDatetime:    time.Date(2018, 4, 1, 0, 0, 31, 0, time.UTC),
			Label:         i % 2,
			Probability:   0.25,
			ModelVersion:  "v1",
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	require.NoError(t, writer.Commit())

	got, err := store.Predictions.FindByID(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "tx-a", got.TransactionID)
	assert.True(t, got.TxAmount.Equal(decimal.RequireFromString("57.16")))
	assert.False(t, got.CreatedAt.IsZero())

	rows, err := store.Predictions.List(ctx, &sqlconfig.PredictionFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, rows, 3, "limit fetches one extra row")

	fraud := 1
	rows, err = store.Predictions.List(ctx, &sqlconfig.PredictionFilter{Label: omit.From(fraud)})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "tx-b", rows[0].TransactionID)

	// -- rolled back writes are not visible --
	writer, err = store.Write(ctx)
	require.NoError(t, err)
	_, err = writer.Predictions.Insert(ctx, &sqlconfig.PredictionCreate{
		TransactionID: "discarded",
		TxDatetime:    time.Now(),
		ModelVersion:  "v1",
	})
	require.NoError(t, err)
	require.NoError(t, writer.Rollback())

	rows, err = store.Predictions.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestStorage_TrainingRuns(t *testing.T) {
	store := startPostgres(t)
	ctx := context.Background()

	for _, version := range []string{"first", "second"} {
		_, err := store.TrainingRuns.Insert(ctx, &sqlconfig.TrainingRunCreate{
			ModelName:    "logreg-balanced",
			ModelVersion: version,
			F1:           0.9,
			StartedAt:    time.Now().UTC(),
			DurationMs:   1200,
		})
		require.NoError(t, err)
	}

	latest, err := store.TrainingRuns.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", latest.ModelVersion)
}

func TestStorage_PredictionAmountsKeepPrecision(t *testing.T) {
	store := startPostgres(t)
	ctx := context.Background()

	for _, amount := range []string{"0.005", "1000000000000.25"} {
		writer, err := store.Write(ctx)
		require.NoError(t, err)
		id, err := writer.Predictions.Insert(ctx, &sqlconfig.PredictionCreate{
			TransactionID: "tx-" + amount,
			TxAmount:      decimal.RequireFromString(amount),
			TxDatetime:    time.Date(2018, 4, 1, 0, 0, 31, 0, time.UTC),
			ModelVersion:  "v1",
		})
		require.NoError(t, err, amount)
		require.NoError(t, writer.Commit())

		got, err := store.Predictions.FindByID(ctx, id)
		require.NoError(t, err)
		assert.True(t, got.TxAmount.Equal(decimal.RequireFromString(amount)), "%s stored as %s", amount, got.TxAmount)
	}
}
