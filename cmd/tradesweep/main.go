package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/uhyunpark/tradesweep/params"
	"github.com/uhyunpark/tradesweep/pkg/api"
	"github.com/uhyunpark/tradesweep/pkg/storage"
	"github.com/uhyunpark/tradesweep/pkg/trading"
	"github.com/uhyunpark/tradesweep/pkg/util"
)

func main() {
	// Load config from .env file and environment variables
	cfg := params.LoadFromEnv("")

	logger, err := util.NewLoggerWithFile(cfg.Log.File, cfg.Log.Verbose)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()
	sugar.Infow("logger_initialized", "log_file", cfg.Log.File, "verbose", cfg.Log.Verbose)

	prices, err := trading.ParseReferencePrices(cfg.Market.ReferencePrices)
	if err != nil {
		sugar.Fatalw("reference_prices_invalid", "err", err)
	}
	sugar.Infow("reference_prices_loaded", "symbols", prices.Symbols())

	// ---- Order store ----
	var store trading.OrderStore
	if cfg.Storage.DataDir != "" {
		ps, err := storage.NewPebbleStore(cfg.Storage.DataDir)
		if err != nil {
			sugar.Fatalw("order_store_open_failed", "path", cfg.Storage.DataDir, "err", err)
		}
		defer ps.Close()
		store = ps
		sugar.Infow("order_store_ready", "backend", "pebble", "path", cfg.Storage.DataDir)
	} else {
		store = storage.NewMemoryStore()
		sugar.Infow("order_store_ready", "backend", "memory")
	}

	// ---- Audit journal ----
	var journal storage.Journal = storage.NewNopJournal()
	if cfg.API.AuditLogFile != "" {
		fj, err := storage.NewFileJournal(cfg.API.AuditLogFile)
		if err != nil {
			sugar.Warnw("audit_log_disabled", "path", cfg.API.AuditLogFile, "err", err)
		} else {
			defer fj.Close()
			journal = fj
			sugar.Infow("audit_log_enabled", "path", cfg.API.AuditLogFile)
		}
	}

	desk := trading.NewDesk(store, prices)
	desk.Logger = sugar

	apiServer := api.NewServer(desk, api.Options{
		AllowedOrigins: cfg.API.CORSOrigins,
		Journal:        journal,
		Logger:         sugar,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := apiServer.Start(ctx, cfg.API.Addr); err != nil {
		sugar.Errorw("api_server_failed", "err", err)
		return
	}
	sugar.Info("api_server_stopped")
}
