package prediction

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/fraud-detection-server/internal/service"
)

type mockPredictionGetter struct {
	mock.Mock
}

func (m *mockPredictionGetter) GetPrediction(ctx context.Context, id uuid.UUID) (*service.Prediction, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*service.Prediction)
	return p, args.Error(1)
}

func newGetTestAPI(t *testing.T, svc predictionGetter) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewGetPredictionHandler(svc).Register(api)
	return api
}

func TestGetPredictionHandler_Found(t *testing.T) {
	svc := new(mockPredictionGetter)
	p := samplePrediction(1)
	svc.On("GetPrediction", mock.Anything, p.ID).Return(&p, nil)

	api := newGetTestAPI(t, svc)
	resp := api.Get("/v1/prediction/" + p.ID.String())

	assert.Equal(t, http.StatusOK, resp.Code)
	var body Prediction
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, p.ID.String(), body.ID)
	assert.Equal(t, 1, body.Prediction)
	assert.Equal(t, "57.16", body.TxAmount)
}

func TestGetPredictionHandler_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", service.ErrPredictionNotFound, http.StatusNotFound},
		{"storage error", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockPredictionGetter)
			svc.On("GetPrediction", mock.Anything, mock.Anything).Return(nil, tt.err)

			api := newGetTestAPI(t, svc)
			resp := api.Get("/v1/prediction/" + uuid.Must(uuid.NewV7()).String())
			assert.Equal(t, tt.code, resp.Code)
		})
	}
}

func TestGetPredictionHandler_InvalidID(t *testing.T) {
	svc := new(mockPredictionGetter)

	api := newGetTestAPI(t, svc)
	resp := api.Get("/v1/prediction/not-a-uuid")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	svc.AssertNotCalled(t, "GetPrediction", mock.Anything, mock.Anything)
}
