package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Prediction is a scored transaction in the service layer.
type Prediction struct {
	ID              uuid.UUID
	TransactionID   string
	CustomerID      string
	TerminalID      string
	TxAmount        decimal.Decimal
	TxDatetime      time.Time
	TxFraudScenario int
	Label           int
	Probability     float64
	ModelVersion    string
	CreatedAt       time.Time
}

// PredictionCursor identifies a position in a paginated result set
// and carries the limit, maxCreationTime and label filter so subsequent
// pages are consistent. A zero MaxCreationTime means unbounded.
type PredictionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
	Label           *int
}

// TrainingRun is a recorded training pipeline run.
type TrainingRun struct {
	ID           uuid.UUID
	ModelName    string
	ModelVersion string
	F1           float64
	Accuracy     float64
	Precision    float64
	Recall       float64
	TrainRows    int
	TestRows     int
	Duration     time.Duration
	CreatedAt    time.Time
}
