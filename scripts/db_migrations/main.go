package main

import (
	"context"

	"github.com/sirupsen/logrus"

	server_config "github.com/carson-networks/fraud-detection-server/internal/config"
	"github.com/carson-networks/fraud-detection-server/internal/logging"
	"github.com/carson-networks/fraud-detection-server/internal/storage"
)

func main() {
	env, err := server_config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("ProcessEnvironmentVariables")
		return
	}
	logger := logging.SetupLogging(env.Log.Level)

	s, err := storage.NewStorage(context.Background(), env.Database, logger)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer s.Close()

	if err := storage.Migrate(s.DB, logger); err != nil {
		logger.WithError(err).Fatal("storage.Migrate")
	}
}
