package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/hikelog/internal/buildinfo"
	"github.com/dmitrijs2005/hikelog/internal/client/cli"
	"github.com/dmitrijs2005/hikelog/internal/client/client"
	"github.com/dmitrijs2005/hikelog/internal/client/config"
	"github.com/dmitrijs2005/hikelog/internal/client/gateway"
	"github.com/dmitrijs2005/hikelog/internal/client/services"
	"github.com/dmitrijs2005/hikelog/internal/client/session"
	"github.com/dmitrijs2005/hikelog/internal/client/storage"
	"github.com/dmitrijs2005/hikelog/internal/logging"
	"github.com/dmitrijs2005/hikelog/internal/telemetry"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	logger, sync, err := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stderr)
	if err != nil {
		return err
	}
	defer sync()

	shutdown, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    "hikelog-cli",
		ServiceVersion: buildinfo.Version,
		Endpoint:       cfg.OTLPEndpoint,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Warn(ctx, "telemetry shutdown", "error", err)
		}
	}()

	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	sealer, err := storage.NewSealer(ctx, db, []byte(cfg.Secret))
	if err != nil {
		return err
	}
	store := session.NewStore(db, sealer, logger)

	gw := gateway.New(gateway.Config{BaseURL: cfg.APIURL, Timeout: cfg.Timeout}, store, gateway.WithLogger(logger))
	api := client.NewHTTPClient(gw)

	app := cli.NewApp(
		services.NewAuthService(api, store),
		services.NewHikeService(api),
		services.NewObservationService(api),
		cli.WithLogger(logger),
	)
	return app.Run(ctx)
}
