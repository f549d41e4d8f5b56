package operator

import (
	"context"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/fraud-detection-server/internal/operator/actions"
	"github.com/carson-networks/fraud-detection-server/internal/storage/sqlconfig"
)

func newTestDelegator(t *testing.T) *OperatorDelegator {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	return NewOperatorDelegator(nil, 0, logger)
}

func TestNewOperatorDelegator_AtLeastOneWorker(t *testing.T) {
	d := newTestDelegator(t)
	assert.Equal(t, 1, d.numWorkers)
}

func TestProcess_AfterStop(t *testing.T) {
	d := newTestDelegator(t)
	d.Start()
	d.Stop()
	d.Stop()

	err := d.Process(context.Background(), &actions.RecordPrediction{})
	assert.ErrorIs(t, err, ErrStopped)
}

func TestProcess_CancelledContextSkipsStorage(t *testing.T) {
	d := newTestDelegator(t)
	d.Start()
	defer d.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The worker checks the context before opening a transaction, so a nil
	// storage is never touched.
	err := d.Process(ctx, &actions.RecordTrainingRun{Run: sqlconfig.TrainingRunCreate{ModelName: "m"}})
	assert.ErrorIs(t, err, context.Canceled)
}
