package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/poyulin/tally/internal/config"
	"github.com/poyulin/tally/internal/server"
	"github.com/poyulin/tally/internal/service"
	"github.com/poyulin/tally/internal/storage/sqlite"
	"github.com/poyulin/tally/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage initialized", "database", cfg.DBPath)

	svc := service.NewProjectService(store)
	router := server.New(svc, cfg.CORSOrigins)

	slog.Info("server starting", "address", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
