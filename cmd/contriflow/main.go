package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Musyoka2020-eng/Contriflow/internal/access"
	"github.com/Musyoka2020-eng/Contriflow/internal/amqp"
	"github.com/Musyoka2020-eng/Contriflow/internal/config"
	"github.com/Musyoka2020-eng/Contriflow/internal/core"
	apphttp "github.com/Musyoka2020-eng/Contriflow/internal/http"
	"github.com/Musyoka2020-eng/Contriflow/internal/log"
	"github.com/Musyoka2020-eng/Contriflow/internal/store"
	"github.com/Musyoka2020-eng/Contriflow/internal/view"
	"github.com/Musyoka2020-eng/Contriflow/internal/workflow"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

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

	// AMQP publisher is optional; without it saves still succeed, the
	// sheet mirror just never hears about them.
	var publisher workflow.Publisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", log.FieldError, err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		publisher = amqpClient
		logger.Info("AMQP sync publishing enabled", "exchange", cfg.AMQPExchange)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	roles := access.StaticProvider{UserRole: core.Role(cfg.DefaultRole)}
	controller := workflow.NewController(workflow.Options{
		Store:     st,
		Publisher: publisher,
		Selector:  view.NewSelector(nil, roles, logger),
		OrgID:     cfg.OrgID,
		Logger:    logger,
	})
	if err := controller.Load(context.Background()); err != nil {
		logger.Error("Failed to load organization state", log.FieldError, err, log.FieldOrg, cfg.OrgID)
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, controller, roles, logger)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting contriflow server",
		"port", cfg.Port,
		"backend", cfg.StoreBackend,
		log.FieldOrg, cfg.OrgID,
		log.FieldRole, cfg.DefaultRole)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
