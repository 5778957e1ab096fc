package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/cropcare/internal/buildinfo"
	"github.com/dmitrijs2005/cropcare/internal/client/cli"
	"github.com/dmitrijs2005/cropcare/internal/client/client"
	"github.com/dmitrijs2005/cropcare/internal/client/config"
	"github.com/dmitrijs2005/cropcare/internal/client/services"
	"github.com/dmitrijs2005/cropcare/internal/logging"

	_ "modernc.org/sqlite"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("%v", err)
	}
}

func run() error {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := client.InitDatabase(ctx, cfg.StoragePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", cfg.StoragePath, "error", err)
		return err
	}
	defer db.Close()

	session := services.NewSessionService(db, logger)
	if err := session.Load(ctx); err != nil {
		return err
	}
	defer func() {
		// ctx may already be cancelled by a signal
		if err := session.Flush(context.Background()); err != nil {
			logger.Error(context.Background(), "failed to flush session", "error", err)
		}
	}()

	apiClient, err := client.NewHTTPClient(cfg.PredictionEndpointAddr, cfg.RequestTimeout)
	if err != nil {
		return err
	}
	recommender := services.NewRecommendationService(apiClient, session, logger)

	app := cli.NewApp(cfg, session, recommender, logger)
	app.Run(ctx)
	return nil
}
