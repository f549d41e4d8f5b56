// Package record defines the transaction record accepted by the fraud
// model and the schema that turns untyped form values into it.
package record

import (
	"time"

	"github.com/shopspring/decimal"
)

// Field names as they appear in HTML forms, JSON bodies and CSV headers.
const (
	FieldTransactionID   = "TRANSACTION_ID"
	FieldTxDatetime      = "TX_DATETIME"
	FieldCustomerID      = "CUSTOMER_ID"
	FieldTerminalID      = "TERMINAL_ID"
	FieldTxAmount        = "TX_AMOUNT"
	FieldTxTimeSeconds   = "TX_TIME_SECONDS"
	FieldTxTimeDays      = "TX_TIME_DAYS"
	FieldTxFraudScenario = "TX_FRAUD_SCENARIO"

	// FieldTxFraud is the training label. It is never read from requests.
	FieldTxFraud = "TX_FRAUD"
)

// Fields lists the record fields in schema order.
var Fields = []string{
	FieldTransactionID,
	FieldTxDatetime,
	FieldCustomerID,
	FieldTerminalID,
	FieldTxAmount,
	FieldTxTimeSeconds,
	FieldTxTimeDays,
	FieldTxFraudScenario,
}

// DatetimeLayout is the canonical layout used when writing records.
const DatetimeLayout = "2006-01-02 15:04:05"

// Form holds raw field values keyed by field name. A missing key and an
// empty value are treated the same.
type Form map[string]string

// Frame is an ordered set of rows submitted for prediction.
type Frame []Form

// Transaction is one validated transaction.
type Transaction struct {
	TransactionID   string
	TxDatetime      time.Time
	CustomerID      string
	TerminalID      string
	TxAmount        decimal.Decimal
	TxTimeSeconds   float64
	TxTimeDays      float64
	TxFraudScenario int
}

// Labeled is a transaction with its known outcome, used for training.
type Labeled struct {
	Transaction
	Fraud int
}

// Form renders the transaction back into canonical field values.
func (t Transaction) Form() Form {
	return Form{
		FieldTransactionID:   t.TransactionID,
		FieldTxDatetime:      t.TxDatetime.Format(DatetimeLayout),
		FieldCustomerID:      t.CustomerID,
		FieldTerminalID:      t.TerminalID,
		FieldTxAmount:        t.TxAmount.String(),
		FieldTxTimeSeconds:   formatFloat(t.TxTimeSeconds),
		FieldTxTimeDays:      formatFloat(t.TxTimeDays),
		FieldTxFraudScenario: formatInt(t.TxFraudScenario),
	}
}
