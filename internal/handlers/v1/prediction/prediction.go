package prediction

// Prediction is the API response model for an audited prediction.
type Prediction struct {
	ID              string  `json:"id" doc:"Prediction UUID"`
	TransactionID   string  `json:"transactionID" doc:"Transaction identifier from the request"`
	CustomerID      string  `json:"customerID" doc:"Customer identifier"`
	TerminalID      string  `json:"terminalID" doc:"Terminal identifier"`
	TxAmount        string  `json:"txAmount" doc:"Decimal amount"`
	TxDatetime      string  `json:"txDatetime" doc:"RFC3339 transaction time"`
	TxFraudScenario int     `json:"txFraudScenario" doc:"Fraud scenario code"`
	Prediction      int     `json:"prediction" enum:"0,1" doc:"1 when the transaction is predicted fraudulent"`
	Probability     float64 `json:"probability" doc:"Model fraud probability"`
	ModelVersion    string  `json:"modelVersion" doc:"Identifier of the model artifact used"`
	CreatedAt       string  `json:"createdAt" doc:"RFC3339 time the prediction was made"`
}

func labelName(label int) string {
	if label == 1 {
		return "fraud"
	}
	return "legitimate"
}
