package service

import (
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/fraud-detection-server/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Prediction *PredictionService
	History    *HistoryService
}

// NewService wires the services. store and op may be nil when the database
// is disabled, in which case History is nil and predictions are not audited.
func NewService(p predictor, store *storage.Storage, op actionProcessor, logger logrus.FieldLogger) *Service {
	svc := &Service{
		Prediction: NewPredictionService(p, op, logger),
	}
	if store != nil {
		svc.History = NewHistoryService(store)
	}
	return svc
}
