package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/Randielfi/Sistema-Votacion-Blockchain/api"
	"github.com/Randielfi/Sistema-Votacion-Blockchain/auth"
	"github.com/Randielfi/Sistema-Votacion-Blockchain/config"
	"github.com/Randielfi/Sistema-Votacion-Blockchain/ledger"
	"github.com/Randielfi/Sistema-Votacion-Blockchain/metrics"
	"github.com/Randielfi/Sistema-Votacion-Blockchain/queues"
	"github.com/Randielfi/Sistema-Votacion-Blockchain/service"
	"github.com/Randielfi/Sistema-Votacion-Blockchain/storage"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Fatal("fatal", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}

	ledgerMetrics, err := metrics.NewLedger(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}

	ledgerClient, err := ledger.Dial(ledger.Config{
		RPCURL:          cfg.RPCURL,
		ContractAddress: cfg.ContractAddress,
		PrivateKey:      cfg.PrivateKey,
		ChainID:         cfg.ChainID,
		GasLimit:        cfg.GasLimit,
		CallTimeout:     cfg.LedgerTimeout,
	}, logger, ledgerMetrics)
	if err != nil {
		return err
	}

	var alerts *queues.AlertPublisher
	if cfg.AMQPURL != "" {
		alerts, err = queues.NewAlertPublisher(cfg.AMQPURL, "voting", "reconciliation-alerts", "reconciliation")
		if err != nil {
			return err
		}
		defer alerts.Close()
	}

	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret)
	if err != nil {
		return err
	}

	mapper := service.NewIndexMapper(store)
	server := api.NewServer(
		service.NewAuthService(store, tokens, logger),
		service.NewElectionService(store, store, store, ledgerClient, alerts, logger),
		service.NewVoteService(store, mapper, ledgerClient, alerts, logger, cfg.SubmitMode),
		service.NewCandidateService(store),
		tokens,
		logger,
	)

	handler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(server.Handler())

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
