package prediction

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fraud-detection-server/internal/service"
)

// GetPredictionInput is the Huma input for fetching one prediction.
type GetPredictionInput struct {
	ID string `path:"id" format:"uuid" doc:"Prediction UUID"`
}

// GetPredictionOutput is the Huma output for fetching one prediction.
type GetPredictionOutput struct {
	Body Prediction
}

type predictionGetter interface {
	GetPrediction(ctx context.Context, id uuid.UUID) (*service.Prediction, error)
}

// GetPredictionHandler handles GET /v1/prediction/{id}.
type GetPredictionHandler struct {
	HistoryService predictionGetter
}

func NewGetPredictionHandler(svc predictionGetter) *GetPredictionHandler {
	return &GetPredictionHandler{HistoryService: svc}
}

// Register registers the get prediction endpoint with the Huma API.
func (h *GetPredictionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-prediction",
		Method:      http.MethodGet,
		Path:        "/v1/prediction/{id}",
		Summary:     "Get prediction",
		Description: "Returns one audited prediction by ID.",
		Tags:        []string{"Predictions"},
	}, h.handle)
}

func (h *GetPredictionHandler) handle(ctx context.Context, input *GetPredictionInput) (*GetPredictionOutput, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity("invalid prediction id", err)
	}

	p, err := h.HistoryService.GetPrediction(ctx, id)
	if errors.Is(err, service.ErrPredictionNotFound) {
		return nil, huma.Error404NotFound("prediction not found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to get prediction", err)
	}

	return &GetPredictionOutput{Body: toResponse(*p)}, nil
}

func toResponse(p service.Prediction) Prediction {
	return Prediction{
		ID:              p.ID.String(),
		TransactionID:   p.TransactionID,
		CustomerID:      p.CustomerID,
		TerminalID:      p.TerminalID,
		TxAmount:        p.TxAmount.String(),
		TxDatetime:      p.TxDatetime.Format(time.RFC3339),
		TxFraudScenario: p.TxFraudScenario,
		Prediction:      p.Label,
		Probability:     p.Probability,
		ModelVersion:    p.ModelVersion,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339Nano),
	}
}
