package failure

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf_Wrapped(t *testing.T) {
	base := New(KindArtifactMissing, "artifact.Load", errors.New("model.json: no such file"))
	wrapped := fmt.Errorf("prediction.Load: %w", base)

	assert.Equal(t, KindArtifactMissing, KindOf(wrapped))
	assert.True(t, Is(wrapped, KindArtifactMissing))
	assert.False(t, Is(wrapped, KindPredictionFailure))
}

func TestKindOf_Unclassified(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	assert.False(t, Is(nil, KindUnknown))
}

func TestError_Message(t *testing.T) {
	err := New(KindTrainingFailure, "training.Run", errors.New("dataset is empty"))
	assert.Equal(t, "training.Run: dataset is empty", err.Error())

	bare := &Error{Kind: KindPredictionFailure, Op: "prediction.Predict"}
	assert.Equal(t, "prediction.Predict: PredictionFailure", bare.Error())
}

func TestMessage(t *testing.T) {
	err := fmt.Errorf("request: %w", New(KindInputValidation, "prediction.Predict", errors.New("CUSTOMER_ID: is required")))
	assert.Equal(t, "CUSTOMER_ID: is required", Message(err))
	assert.Equal(t, "ArtifactMissing", Message(&Error{Kind: KindArtifactMissing}))
	assert.Equal(t, "boom", Message(errors.New("boom")))
}
