package model

// Metrics summarises binary classification quality on a labelled set.
type Metrics struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`

	TruePositives  int `json:"true_positives"`
	FalsePositives int `json:"false_positives"`
	TrueNegatives  int `json:"true_negatives"`
	FalseNegatives int `json:"false_negatives"`
}

// Evaluate compares predicted labels with the truth. Undefined ratios are 0.
func Evaluate(truth, predicted []int) Metrics {
	var m Metrics
	for i := range truth {
		switch {
		case truth[i] == 1 && predicted[i] == 1:
			m.TruePositives++
		case truth[i] == 0 && predicted[i] == 1:
			m.FalsePositives++
		case truth[i] == 0 && predicted[i] == 0:
			m.TrueNegatives++
		default:
			m.FalseNegatives++
		}
	}

	m.Accuracy = ratio(m.TruePositives+m.TrueNegatives, len(truth))
	m.Precision = ratio(m.TruePositives, m.TruePositives+m.FalsePositives)
	m.Recall = ratio(m.TruePositives, m.TruePositives+m.FalseNegatives)
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}

// Better reports whether m ranks above other: higher F1, then accuracy.
func (m Metrics) Better(other Metrics) bool {
	if m.F1 != other.F1 {
		return m.F1 > other.F1
	}
	return m.Accuracy > other.Accuracy
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
