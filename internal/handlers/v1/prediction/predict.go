package prediction

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/fraud-detection-server/internal/failure"
	"github.com/carson-networks/fraud-detection-server/internal/logging"
	"github.com/carson-networks/fraud-detection-server/internal/record"
	"github.com/carson-networks/fraud-detection-server/internal/service"
)

// PredictBody is the request body for scoring one transaction. Values are
// strings so the record schema can report every malformed field at once.
type PredictBody struct {
	TransactionID   string `json:"TRANSACTION_ID,omitempty" doc:"Transaction identifier"`
	TxDatetime      string `json:"TX_DATETIME,omitempty" doc:"Transaction time, e.g. 2018-04-01 00:00:31"`
	CustomerID      string `json:"CUSTOMER_ID,omitempty" doc:"Customer identifier"`
	TerminalID      string `json:"TERMINAL_ID,omitempty" doc:"Terminal identifier"`
	TxAmount        string `json:"TX_AMOUNT,omitempty" doc:"Non-negative decimal amount"`
	TxTimeSeconds   string `json:"TX_TIME_SECONDS,omitempty" doc:"Seconds since the start of the dataset"`
	TxTimeDays      string `json:"TX_TIME_DAYS,omitempty" doc:"Days since the start of the dataset"`
	TxFraudScenario string `json:"TX_FRAUD_SCENARIO,omitempty" doc:"Fraud scenario code"`
}

func (b PredictBody) form() record.Form {
	form := record.Form{}
	for name, value := range map[string]string{
		record.FieldTransactionID:   b.TransactionID,
		record.FieldTxDatetime:      b.TxDatetime,
		record.FieldCustomerID:      b.CustomerID,
		record.FieldTerminalID:      b.TerminalID,
		record.FieldTxAmount:        b.TxAmount,
		record.FieldTxTimeSeconds:   b.TxTimeSeconds,
		record.FieldTxTimeDays:      b.TxTimeDays,
		record.FieldTxFraudScenario: b.TxFraudScenario,
	} {
		if value != "" {
			form[name] = value
		}
	}
	return form
}

// PredictInput is the Huma input for scoring a transaction.
type PredictInput struct {
	Body PredictBody
}

// PredictResponseBody is the response body for a scored transaction.
type PredictResponseBody struct {
	PredictionID  string  `json:"predictionID" doc:"Prediction UUID"`
	TransactionID string  `json:"transactionID" doc:"Transaction identifier from the request"`
	Prediction    int     `json:"prediction" enum:"0,1" doc:"1 when the transaction is predicted fraudulent"`
	Label         string  `json:"label" enum:"fraud,legitimate" doc:"Readable form of prediction"`
	Probability   float64 `json:"probability" doc:"Model fraud probability"`
	ModelVersion  string  `json:"modelVersion" doc:"Identifier of the model artifact used"`
}

// PredictOutput is the Huma output for a scored transaction.
type PredictOutput struct {
	Body PredictResponseBody
}

type transactionPredictor interface {
	Predict(ctx context.Context, form record.Form) (*service.Prediction, error)
}

// PredictHandler handles POST /v1/predict.
type PredictHandler struct {
	PredictionService transactionPredictor
}

func NewPredictHandler(svc transactionPredictor) *PredictHandler {
	return &PredictHandler{PredictionService: svc}
}

// Register registers the predict endpoint with the Huma API.
func (h *PredictHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "predict",
		Method:      http.MethodPost,
		Path:        "/v1/predict",
		Summary:     "Predict fraud",
		Description: "Scores one transaction against the trained fraud model.",
		Tags:        []string{"Predictions"},
	}, h.handle)
}

func (h *PredictHandler) handle(ctx context.Context, input *PredictInput) (*PredictOutput, error) {
	p, err := h.PredictionService.Predict(ctx, input.Body.form())
	if err != nil {
		logging.AddData(ctx, "errorKind", failure.KindOf(err).String())
		return nil, toHumaError(err)
	}

	return &PredictOutput{Body: PredictResponseBody{
		PredictionID:  p.ID.String(),
		TransactionID: p.TransactionID,
		Prediction:    p.Label,
		Label:         labelName(p.Label),
		Probability:   p.Probability,
		ModelVersion:  p.ModelVersion,
	}}, nil
}

// toHumaError maps failure kinds onto HTTP statuses.
func toHumaError(err error) error {
	switch failure.KindOf(err) {
	case failure.KindInputValidation:
		var verr *record.ValidationError
		if !errors.As(err, &verr) {
			return huma.Error422UnprocessableEntity(failure.Message(err))
		}
		details := make([]error, len(verr.Errors))
		for i, fe := range verr.Errors {
			details[i] = &huma.ErrorDetail{
				Message:  fe.Message,
				Location: "body." + fe.Field,
				Value:    fe.Value,
			}
		}
		return huma.Error422UnprocessableEntity("invalid transaction record", details...)
	case failure.KindArtifactMissing, failure.KindArtifactInvalid:
		return huma.Error503ServiceUnavailable("model is not available", err)
	default:
		return huma.Error500InternalServerError("prediction failed", err)
	}
}
