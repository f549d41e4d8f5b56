package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

const predictionsTable = "predictions"

var predictionColumns = []any{
	"id", "transaction_id", "customer_id", "terminal_id", "tx_amount", "tx_datetime",
	"tx_fraud_scenario", "label", "probability", "model_version", "created_at",
}

var _ IPredictionTable = (*PredictionsTable)(nil)

type PredictionsTable struct {
	exec bob.Executor
}

// NewPredictionsTable binds the predictions table to exec, which may be the
// database or an open transaction.
func NewPredictionsTable(exec bob.Executor) *PredictionsTable {
	return &PredictionsTable{exec: exec}
}

// FindByID retrieves a prediction by primary key.
func (t *PredictionsTable) FindByID(ctx context.Context, id uuid.UUID) (*Prediction, error) {
	q := psql.Select(
		sm.Columns(predictionColumns...),
		sm.From(predictionsTable),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[Prediction]())
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Insert records a prediction and returns its ID.
func (t *PredictionsTable) Insert(ctx context.Context, create *PredictionCreate) (uuid.UUID, error) {
	id := create.ID
	if id == uuid.Nil {
		var err error
		if id, err = uuid.NewV7(); err != nil {
			return uuid.Nil, err
		}
	}

	q := psql.Insert(
		im.Into(predictionsTable,
			"id", "transaction_id", "customer_id", "terminal_id", "tx_amount", "tx_datetime",
			"tx_fraud_scenario", "label", "probability", "model_version"),
		im.Values(psql.Arg(
			id, create.TransactionID, create.CustomerID, create.TerminalID, create.TxAmount, create.TxDatetime,
			create.TxFraudScenario, create.Label, create.Probability, create.ModelVersion,
		)),
	)
	if _, err := bob.Exec(ctx, t.exec, q); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// List returns predictions newest first. Limit fetches one extra row so
// callers can tell whether another page exists. Nil filter returns all.
func (t *PredictionsTable) List(ctx context.Context, filter *PredictionFilter) ([]*Prediction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(predictionColumns...),
		sm.From(predictionsTable),
	}
	if filter != nil {
		if filter.MaxCreationTime != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("created_at").LTE(psql.Arg(*filter.MaxCreationTime))))
		}
		if label, ok := filter.Label.Get(); ok {
			queryMods = append(queryMods, sm.Where(psql.Quote("label").EQ(psql.Arg(label))))
		}
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit+1))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("created_at")).Desc(),
		sm.OrderBy(psql.Quote("id")).Desc(),
	)

	rows, err := bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[Prediction]())
	if err != nil {
		return nil, err
	}
	result := make([]*Prediction, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}
