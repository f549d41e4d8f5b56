package prediction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/fraud-detection-server/internal/logging"
	"github.com/carson-networks/fraud-detection-server/internal/service"
)

// ListPredictionsCursor represents a pagination cursor in request and response bodies.
// It bundles position, limit, and maxCreationTime so subsequent pages use consistent parameters.
type ListPredictionsCursor struct {
	Position        int    `json:"position" minimum:"0" doc:"Numeric offset position for the next page"`
	Limit           int    `json:"limit" minimum:"1" maximum:"100" doc:"Page size used for this cursor"`
	MaxCreationTime string `json:"maxCreationTime" format:"date-time" doc:"Upper bound on created_at locked in from the first page"`
	Label           *int   `json:"label,omitempty" minimum:"0" maximum:"1" doc:"Label filter locked in from the first page"`
}

// ListPredictionsBody is the request body for listing predictions.
type ListPredictionsBody struct {
	Cursor *ListPredictionsCursor `json:"cursor,omitempty" doc:"Cursor from a previous response to fetch the next page"`
	Label  *int                   `json:"label,omitempty" minimum:"0" maximum:"1" doc:"Only return predictions with this label. Ignored when a cursor is given"`
}

// ListPredictionsInput is the Huma input for listing predictions.
type ListPredictionsInput struct {
	Body ListPredictionsBody
}

// ListPredictionsResponseBody is the response body for listing predictions.
type ListPredictionsResponseBody struct {
	Predictions []Prediction           `json:"predictions" doc:"Page of predictions, newest first"`
	NextCursor  *ListPredictionsCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListPredictionsOutput is the Huma output for listing predictions.
type ListPredictionsOutput struct {
	Body ListPredictionsResponseBody
}

type predictionLister interface {
	ListPredictions(ctx context.Context, cursor *service.PredictionCursor) ([]service.Prediction, *service.PredictionCursor, error)
}

// ListPredictionsHandler handles POST /v1/prediction/list.
type ListPredictionsHandler struct {
	HistoryService predictionLister
}

func NewListPredictionsHandler(svc predictionLister) *ListPredictionsHandler {
	return &ListPredictionsHandler{HistoryService: svc}
}

// Register registers the list predictions endpoint with the Huma API.
func (h *ListPredictionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-predictions",
		Method:      http.MethodPost,
		Path:        "/v1/prediction/list",
		Summary:     "List predictions",
		Description: "Returns audited predictions using cursor-based pagination.",
		Tags:        []string{"Predictions"},
	}, h.handle)
}

// parseListPredictionsInput parses the cursor. Without one the service
// uses its default limit.
func parseListPredictionsInput(input *ListPredictionsInput) (*service.PredictionCursor, error) {
	if input.Body.Cursor == nil {
		if input.Body.Label != nil {
			return &service.PredictionCursor{Label: input.Body.Label}, nil
		}
		return nil, nil
	}

	if input.Body.Cursor.Position < 0 {
		return nil, huma.NewError(http.StatusBadRequest, "cursor position must be non-negative")
	}

	maxCreationTime, err := time.Parse(time.RFC3339Nano, input.Body.Cursor.MaxCreationTime)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid cursor maxCreationTime", err)
	}

	return &service.PredictionCursor{
		Position:        input.Body.Cursor.Position,
		Limit:           input.Body.Cursor.Limit,
		MaxCreationTime: maxCreationTime,
		Label:           input.Body.Cursor.Label,
	}, nil
}

func (h *ListPredictionsHandler) handle(ctx context.Context, input *ListPredictionsInput) (*ListPredictionsOutput, error) {
	logData := logging.GetLogData(ctx)
	requestCursor, err := parseListPredictionsInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listPredictionsMs")
	}
	predictions, nextCursor, err := h.HistoryService.ListPredictions(ctx, requestCursor)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list predictions", err)
	}

	if logData != nil {
		logData.AddData("predictionCount", len(predictions))
	}

	resp := ListPredictionsResponseBody{
		Predictions: make([]Prediction, len(predictions)),
	}
	for i, p := range predictions {
		resp.Predictions[i] = toResponse(p)
	}

	if nextCursor != nil {
		resp.NextCursor = &ListPredictionsCursor{
			Position:        nextCursor.Position,
			Limit:           nextCursor.Limit,
			MaxCreationTime: nextCursor.MaxCreationTime.Format(time.RFC3339Nano),
			Label:           nextCursor.Label,
		}
	}

	return &ListPredictionsOutput{Body: resp}, nil
}
