package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/carson-networks/fraud-detection-server/internal/failure"
	"github.com/carson-networks/fraud-detection-server/internal/logging"
	"github.com/carson-networks/fraud-detection-server/internal/operator/actions"
	"github.com/carson-networks/fraud-detection-server/internal/prediction"
	"github.com/carson-networks/fraud-detection-server/internal/record"
	"github.com/carson-networks/fraud-detection-server/internal/storage/sqlconfig"
)

const meterName = "github.com/carson-networks/fraud-detection-server/internal/service"

type predictor interface {
	Predict(ctx context.Context, frame record.Frame) ([]prediction.Result, error)
	ModelVersion() string
}

type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// PredictionService scores single transactions and audits the outcome.
type PredictionService struct {
	pipeline  predictor
	operator  actionProcessor
	logger    logrus.FieldLogger
	predicted metric.Int64Counter
}

func NewPredictionService(p predictor, op actionProcessor, logger logrus.FieldLogger) *PredictionService {
	counter, err := otel.Meter(meterName).Int64Counter("fraud.predictions",
		metric.WithDescription("Predictions served, by label"),
		metric.WithUnit("{prediction}"),
	)
	if err != nil {
		logger.WithError(err).Warn("PredictionService.Counter.Error")
		counter = noop.Int64Counter{}
	}
	return &PredictionService{
		pipeline:  p,
		operator:  op,
		logger:    logger,
		predicted: counter,
	}
}

// ModelVersion identifies the model answering predictions.
func (s *PredictionService) ModelVersion() string {
	return s.pipeline.ModelVersion()
}

// Predict scores one form. Errors carry the failure kind from the pipeline.
func (s *PredictionService) Predict(ctx context.Context, form record.Form) (*Prediction, error) {
	results, err := s.pipeline.Predict(ctx, record.Frame{form})
	if err != nil {
		return nil, err
	}
	r := results[0]

	id, err := uuid.NewV7()
	if err != nil {
		return nil, failure.New(failure.KindPredictionFailure, "service.Predict", err)
	}
	p := &Prediction{
		ID:              id,
		TransactionID:   r.Transaction.TransactionID,
		CustomerID:      r.Transaction.CustomerID,
		TerminalID:      r.Transaction.TerminalID,
		TxAmount:        r.Transaction.TxAmount,
		TxDatetime:      r.Transaction.TxDatetime,
		TxFraudScenario: r.Transaction.TxFraudScenario,
		Label:           r.Label,
		Probability:     r.Probability,
		ModelVersion:    s.pipeline.ModelVersion(),
		CreatedAt:       time.Now().UTC(),
	}

	s.predicted.Add(ctx, 1, metric.WithAttributes(attribute.Int("label", p.Label)))
	logging.AddData(ctx, "predictionID", p.ID.String())
	logging.AddData(ctx, "label", p.Label)

	if s.operator != nil {
		s.audit(ctx, p)
	}
	return p, nil
}

// audit failures are logged and never fail the prediction.
func (s *PredictionService) audit(ctx context.Context, p *Prediction) {
	action := &actions.RecordPrediction{Prediction: sqlconfig.PredictionCreate{
		ID:              p.ID,
		TransactionID:   p.TransactionID,
		CustomerID:      p.CustomerID,
		TerminalID:      p.TerminalID,
		TxAmount:        p.TxAmount,
		TxDatetime:      p.TxDatetime,
		TxFraudScenario: p.TxFraudScenario,
		Label:           p.Label,
		Probability:     p.Probability,
		ModelVersion:    p.ModelVersion,
	}}

	var stopTimer func()
	if logData := logging.GetLogData(ctx); logData != nil {
		stopTimer = logData.AddTiming("auditMs")
	}
	err := s.operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		s.logger.WithError(err).WithField("predictionID", p.ID.String()).Warn("PredictionService.Audit.Error")
	}
}
