package sqlconfig

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Prediction is an audited prediction record.
type Prediction struct {
	ID              uuid.UUID       `db:"id"`
	TransactionID   string          `db:"transaction_id"`
	CustomerID      string          `db:"customer_id"`
	TerminalID      string          `db:"terminal_id"`
	TxAmount        decimal.Decimal `db:"tx_amount"`
	TxDatetime      time.Time       `db:"tx_datetime"`
	TxFraudScenario int             `db:"tx_fraud_scenario"`
	Label           int             `db:"label"`
	Probability     float64         `db:"probability"`
	ModelVersion    string          `db:"model_version"`
	CreatedAt       time.Time       `db:"created_at"`
}

// PredictionCreate is the input for recording a prediction. A nil ID is
// replaced with a new UUIDv7.
type PredictionCreate struct {
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
}

// PredictionFilter specifies filters for listing predictions.
type PredictionFilter struct {
	Label           omit.Val[int]
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}

// IPredictionTable defines the interface for prediction storage operations.
//
//go:generate mockery --name IPredictionTable --output mock_IPredictionTable.go
type IPredictionTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Prediction, error)
	Insert(ctx context.Context, create *PredictionCreate) (uuid.UUID, error)
	List(ctx context.Context, filter *PredictionFilter) ([]*Prediction, error)
}
