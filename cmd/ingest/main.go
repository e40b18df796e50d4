// Package main provides the live telemetry tap entry point: it subscribes to
// the tracking feed over WebSocket and persists raw behavioral events.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recsys-export-lab/internal/domain"
	"recsys-export-lab/internal/ingestion"
	"recsys-export-lab/internal/observability"
	"recsys-export-lab/internal/storage"
	"recsys-export-lab/internal/storage/memory"
	"recsys-export-lab/internal/storage/migrations"
	pgstore "recsys-export-lab/internal/storage/postgres"
)

func main() {
	wsEndpoint := flag.String("ws-endpoint", "", "Tracking feed WebSocket endpoint")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL")
	metricsAddr := flag.String("metrics-addr", ":9090", "Prometheus metrics HTTP address (empty to disable)")
	statsInterval := flag.Duration("stats-interval", 30*time.Second, "Interval between ingestion stats log lines")
	flag.Parse()

	logger := log.New(os.Stdout, "[ingest] ", log.LstdFlags)

	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", observability.Handler())
			mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("ok"))
			})
			logger.Printf("starting metrics server on %s", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil && err != http.ErrServerClosed {
				logger.Printf("metrics server error: %v", err)
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("received signal %v, shutting down", sig)
		cancel()
	}()

	if err := run(ctx, logger, *wsEndpoint, *postgresDSN, *useMemory, *statsInterval); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatalf("Error: %v", err)
	}
	logger.Println("shutdown complete")
}

func run(ctx context.Context, logger *log.Logger, wsEndpoint, postgresDSN string, useMemory bool, statsInterval time.Duration) error {
	if wsEndpoint == "" {
		return fmt.Errorf("--ws-endpoint is required")
	}
	if !useMemory && postgresDSN == "" {
		return fmt.Errorf("--postgres-dsn is required (use --use-memory for in-memory storage)")
	}

	var eventStore storage.BehavioralEventStore = memory.NewBehavioralEventStore()
	if !useMemory {
		pool, err := pgstore.NewPool(ctx, postgresDSN)
		if err != nil {
			return fmt.Errorf("connect to postgres: %w", err)
		}
		defer pool.Close()

		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			return fmt.Errorf("run postgres migrations: %w", err)
		}
		eventStore = pgstore.NewBehavioralEventStore(pool)
	}

	source := ingestion.NewWSTelemetrySource(wsEndpoint, nil, logger)
	events, err := source.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe to tracking feed: %w", err)
	}

	logger.Printf("tapping tracking feed at %s", wsEndpoint)

	var stored, duplicates, failed int
	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Printf("ingestion stopped: %d stored, %d duplicates, %d failed", stored, duplicates, failed)
			return ctx.Err()
		case <-ticker.C:
			logger.Printf("ingestion stats: %d stored, %d duplicates, %d failed", stored, duplicates, failed)
		case event, ok := <-events:
			if !ok {
				logger.Printf("feed closed: %d stored, %d duplicates, %d failed", stored, duplicates, failed)
				return nil
			}
			if err := storeEvent(ctx, eventStore, event); err != nil {
				if errors.Is(err, storage.ErrDuplicateKey) {
					duplicates++
					observability.RecordTrackingEventDropped("duplicate")
					continue
				}
				failed++
				observability.RecordTrackingEventDropped("store_error")
				logger.Printf("store event %s: %v", event.ID, err)
				continue
			}
			stored++
			observability.RecordTrackingEventStored()
		}
	}
}

func storeEvent(ctx context.Context, store storage.BehavioralEventStore, event *domain.RawBehavioralEvent) error {
	return store.Insert(ctx, event)
}
