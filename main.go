package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/carson-networks/fraud-detection-server/api"
	"github.com/carson-networks/fraud-detection-server/internal/app"
	"github.com/carson-networks/fraud-detection-server/internal/config"
	"github.com/carson-networks/fraud-detection-server/internal/logging"
	"github.com/carson-networks/fraud-detection-server/internal/storage"
)

func main() {
	cliApp := &cli.App{
		Name:  "fraud-server",
		Usage: "train and serve the transaction fraud model",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "optional YAML configuration file",
				EnvVars: []string{"CONFIG_FILE"},
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{Name: "serve", Usage: "train (unless disabled) and serve HTTP", Action: serve},
			{Name: "train", Usage: "run the training pipeline only", Action: train},
			{Name: "migrate", Usage: "apply database migrations", Action: migrate},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cliApp.RunContext(ctx, os.Args); err != nil {
		logrus.WithError(err).Error("fraud-server exited")
		stop()
		os.Exit(1)
	}
}

func setup(c *cli.Context) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, err
	}
	logger := logging.SetupLogging(cfg.Log.Level)
	return cfg, logger, nil
}

func serve(c *cli.Context) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}
	logger.Info("fraud-server starting")

	a, err := app.New(c.Context, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Start(c.Context); err != nil {
		logger.WithError(err).Error("App.Start.Error")
		return err
	}

	rest := api.Rest{
		Logger: logger,
		Addr:   cfg.Server.Addr(),
		App:    a,
	}
	return rest.Serve(c.Context)
}

func train(c *cli.Context) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}

	a, err := app.New(c.Context, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.Train(c.Context)
	if err != nil {
		return err
	}
	if cfg.Log.Verbose {
		logger.Info(spew.Sdump(report))
	}
	return nil
}

func migrate(c *cli.Context) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}

	s, err := storage.NewStorage(c.Context, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer s.Close()
	return storage.Migrate(s.DB, logger)
}
