package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/carson-networks/fraud-detection-server/internal/logging"
	"github.com/carson-networks/fraud-detection-server/internal/service"
)

type modelVersioner interface {
	ModelVersion() string
}

type trainingRunReader interface {
	LatestTrainingRun(ctx context.Context) (*service.TrainingRun, error)
}

type Handler struct {
	Model modelVersioner
	// Runs is nil when no database is configured.
	Runs trainingRunReader
}

type trainingRun struct {
	ModelName    string  `json:"modelName"`
	ModelVersion string  `json:"modelVersion"`
	F1           float64 `json:"f1"`
	Accuracy     float64 `json:"accuracy"`
	CreatedAt    string  `json:"createdAt"`
}

type response struct {
	Status          string       `json:"status"`
	ModelVersion    string       `json:"modelVersion,omitempty"`
	LastTrainingRun *trainingRun `json:"lastTrainingRun,omitempty"`
}

func NewHandler(m modelVersioner, runs trainingRunReader) Handler {
	return Handler{Model: m, Runs: runs}
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	resp := response{Status: "ok"}
	if h.Model != nil {
		resp.ModelVersion = h.Model.ModelVersion()
	}
	logData.AddData("modelVersion", resp.ModelVersion)

	// A failed lookup is logged but does not fail the status check.
	if h.Runs != nil {
		run, err := h.Runs.LatestTrainingRun(req.Context())
		if err != nil {
			logData.AddData("lastTrainingRunError", err.Error())
		} else if run != nil {
			resp.LastTrainingRun = &trainingRun{
				ModelName:    run.ModelName,
				ModelVersion: run.ModelVersion,
				F1:           run.F1,
				Accuracy:     run.Accuracy,
				CreatedAt:    run.CreatedAt.Format(time.RFC3339),
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(resp)
}
