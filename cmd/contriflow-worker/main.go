package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Musyoka2020-eng/Contriflow/internal/amqp"
	"github.com/Musyoka2020-eng/Contriflow/internal/config"
	"github.com/Musyoka2020-eng/Contriflow/internal/log"
	gsheet "github.com/Musyoka2020-eng/Contriflow/internal/sheets/google"
	"github.com/Musyoka2020-eng/Contriflow/internal/store"
	"github.com/Musyoka2020-eng/Contriflow/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	logger.Info("Starting contriflow-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	st, err := store.Open(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize store", log.FieldError, err)
		os.Exit(1)
	}
	defer st.Close()

	// The sheet mirror is optional; without a spreadsheet the worker only
	// drains messages so the queue does not grow unbounded.
	var sheetsClient *gsheet.Client
	if cfg.GoogleSpreadsheetID != "" {
		sheetsClient, err = gsheet.New(context.Background(), cfg.GoogleSpreadsheetID, logger)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
			os.Exit(1)
		}
		logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Google Sheets disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var syncWorker *worker.SyncWorker
	if sheetsClient != nil {
		syncWorker = worker.NewSyncWorker(st, sheetsClient, cfg.OrgID, cfg.SyncWorkers, logger)

		// Mirror whatever is already stored before consuming, so restarts
		// never leave the spreadsheet behind the document.
		logger.Info("Performing startup sync...")
		if err := syncWorker.SyncAll(ctx); err != nil {
			logger.Error("Startup sync failed", log.FieldError, err)
			// Don't exit - continue with normal operation
		}
	} else {
		logger.Info("Skipping sheet sync - no client available")
	}

	go func() {
		err := amqpClient.ConsumeStateSync(ctx, func(msg *amqp.StateSyncMessage) error {
			if syncWorker == nil {
				return nil
			}
			return syncWorker.HandleStateSync(ctx, msg)
		})
		if err != nil && err != context.Canceled {
			logger.Error("Message consumption failed", log.FieldError, err)
		}
		cancel()
	}()

	// Periodic sync picks up anything a missed message left behind.
	if syncWorker != nil {
		ticker := time.NewTicker(cfg.SyncInterval)
		defer ticker.Stop()

		go func() {
			for {
				select {
				case <-ticker.C:
					if err := syncWorker.SyncAll(ctx); err != nil {
						logger.Error("Periodic sync failed", log.FieldError, err)
					}
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	case <-ctx.Done():
	}

	// Give in-flight syncs a moment to finish.
	time.Sleep(2 * time.Second)
	logger.Info("Worker stopped gracefully")
}
