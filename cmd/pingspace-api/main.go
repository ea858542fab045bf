package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pingspace-dev/pingspace/internal/config"
	"github.com/pingspace-dev/pingspace/internal/logger"
	"github.com/pingspace-dev/pingspace/internal/router"
	"github.com/pingspace-dev/pingspace/internal/setup"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("failed to set up dependencies", "err", err)
		os.Exit(1)
	}
	defer deps.Storage.Cleanup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Public.Port),
		Handler: router.New(deps),
	}

	go func() {
		logger.Log.Info("server started", "port", cfg.Public.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Public.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("graceful shutdown failed", "err", err)
	}
}
