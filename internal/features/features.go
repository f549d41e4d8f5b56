// Package features turns transaction records into the numeric vectors the
// model is trained on, and holds the scaler fitted during training.
package features

import (
	"math"
	"time"

	"github.com/carson-networks/fraud-detection-server/internal/record"
)

// Names of the engineered features, in vector order.
var Names = []string{
	"log_tx_amount",
	"tx_time_seconds",
	"tx_time_days",
	"tx_fraud_scenario",
	"tx_hour",
	"tx_during_weekend",
	"tx_during_night",
}

const nightEndHour = 6

// Extract builds the raw (unscaled) feature vector for one transaction.
func Extract(tx record.Transaction) []float64 {
	amount := tx.TxAmount.InexactFloat64()
	hour := tx.TxDatetime.Hour()

	return []float64{
		math.Log1p(amount),
		tx.TxTimeSeconds,
		tx.TxTimeDays,
		float64(tx.TxFraudScenario),
		float64(hour),
		boolToFloat(isWeekend(tx.TxDatetime)),
		boolToFloat(hour < nightEndHour),
	}
}

// ExtractAll extracts features for every transaction in order.
func ExtractAll(txs []record.Transaction) [][]float64 {
	rows := make([][]float64, len(txs))
	for i, tx := range txs {
		rows[i] = Extract(tx)
	}
	return rows
}

func isWeekend(ts time.Time) bool {
	d := ts.Weekday()
	return d == time.Saturday || d == time.Sunday
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
