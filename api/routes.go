package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humamux"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/carson-networks/fraud-detection-server/internal/app"
	"github.com/carson-networks/fraud-detection-server/internal/handlers/v1/prediction"
	"github.com/carson-networks/fraud-detection-server/internal/handlers/v1/status"
	"github.com/carson-networks/fraud-detection-server/internal/handlers/web"
	"github.com/carson-networks/fraud-detection-server/internal/logging"
)

const shutdownTimeout = 10 * time.Second

type Rest struct {
	Logger *logrus.Logger
	Addr   string
	App    *app.App
}

// Handler builds the full router. The App must have its pipeline loaded.
func (r *Rest) Handler() (http.Handler, error) {
	if r.App.Service == nil {
		return nil, app.ErrNotLoaded
	}

	router := mux.NewRouter()

	webHandler, err := web.NewHandler(r.App.Service.Prediction)
	if err != nil {
		return nil, err
	}
	router.HandleFunc("/", logging.LoggingWrapper("Index", r.Logger, webHandler.Index)).Methods(http.MethodGet)
	router.HandleFunc("/predictdata", logging.LoggingWrapper("PredictData", r.Logger, webHandler.PredictData)).
		Methods(http.MethodGet, http.MethodPost)

	statusHandler := status.NewHandler(r.App.Service.Prediction, nil)
	if r.App.Service.History != nil {
		statusHandler.Runs = r.App.Service.History
	}
	router.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	api := humamux.New(router, huma.DefaultConfig("Fraud Detection API", "1.0.0"))
	prediction.NewPredictHandler(r.App.Service.Prediction).Register(api)
	if r.App.Service.History != nil {
		prediction.NewListPredictionsHandler(r.App.Service.History).Register(api)
		prediction.NewGetPredictionHandler(r.App.Service.History).Register(api)
	}

	return otelhttp.NewHandler(logging.Middleware(r.Logger)(router), "fraud-detection-server"), nil
}

// Serve listens until ctx is done, then shuts the server down gracefully.
func (r *Rest) Serve(ctx context.Context) error {
	handler, err := r.Handler()
	if err != nil {
		return err
	}

	server := http.Server{
		Addr:              r.Addr,
		Handler:           handler,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("addr", r.Addr).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		return err
	}
	return nil
}
