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
	"time"

	"go.uber.org/zap"

	"github.com/five82/apolice/internal/logging"
	"github.com/five82/apolice/internal/metrics"
	"github.com/five82/apolice/internal/stub"
)

func main() {
	os.Exit(run())
}

func run() int {
	addr := flag.String("addr", "127.0.0.1:3000", "listen address")
	fixtures := flag.String("fixtures", "", "YAML fixture file (default: embedded fixtures)")
	latency := flag.Duration("latency", 0, "add a random delay up to this duration to every search")
	fail := flag.Bool("fail", false, "answer every search with HTTP 500")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	logger, err := logging.NewConsole(*level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "apolice-stub: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	records, err := stub.LoadFixtures(*fixtures)
	if err != nil {
		logger.Error("load fixtures failed", zap.Error(err))
		return 1
	}

	metrics.Register()
	server := stub.NewServer(records, stub.Options{Latency: *latency, Fail: *fail}, logger)
	srv := &http.Server{
		Addr:              *addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("stub listening",
			zap.String("addr", *addr),
			zap.Int("records", len(records)),
			zap.Duration("latency", *latency),
			zap.Bool("fail", *fail),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("http server error", zap.Error(err))
			return 1
		}
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
		return 1
	}
	logger.Info("stub stopped")
	return 0
}
