package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophaccount/internal/buildinfo"
	"github.com/dmitrijs2005/gophaccount/internal/client/cli"
	"github.com/dmitrijs2005/gophaccount/internal/client/config"
	"github.com/dmitrijs2005/gophaccount/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(cfg.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	logger.Debug(ctx, "client started", "api", cfg.APIBaseURL, "db", cfg.DBPath)
	app.Run(ctx)
}
