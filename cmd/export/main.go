// Package main provides the dataset export entry point.
// Executes: fetch → normalize → score → merge → write dataset files.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"recsys-export-lab/internal/observability"
	"recsys-export-lab/internal/orchestrator"
	"recsys-export-lab/internal/reporting"
	"recsys-export-lab/internal/storage"
	chstore "recsys-export-lab/internal/storage/clickhouse"
	"recsys-export-lab/internal/storage/migrations"
	pgstore "recsys-export-lab/internal/storage/postgres"
)

func main() {
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse DSN for the dataset sink (empty to disable)")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage seeded with fixture data")
	outputDir := flag.String("output-dir", "out", "Output directory for dataset files")
	format := flag.String("format", "csv", "Dataset file format: csv or jsonl")
	batchSize := flag.Int("batch-size", 0, "Behavioral source page size (0 = default)")
	limit := flag.Int("limit", 0, "Cap on behavioral records (0 = all)")
	productLimit := flag.Int("product-limit", 0, "Cap on exported catalog rows (0 = all)")
	verbose := flag.Bool("verbose", false, "Verbose output")
	flag.Parse()

	logger := log.New(os.Stdout, "[export] ", log.LstdFlags)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("received signal %v, cancelling export", sig)
		cancel()
	}()

	if err := run(ctx, logger, *postgresDSN, *clickhouseDSN, *useMemory, *outputDir, *format, *batchSize, *limit, *productLimit, *verbose); err != nil {
		logger.Fatalf("Error: %v", err)
	}
}

func run(ctx context.Context, logger *log.Logger, postgresDSN, clickhouseDSN string, useMemory bool, outputDir, format string, batchSize, limit, productLimit int, verbose bool) error {
	start := time.Now()

	if !useMemory && postgresDSN == "" {
		return fmt.Errorf("--postgres-dsn is required (use --use-memory for fixture data)")
	}

	// Source stores
	var (
		behavioralStore storage.BehavioralEventStore
		purchaseStore   storage.PurchaseStore
		feedbackStore   storage.FeedbackStore
		productStore    storage.ProductStore
		shopStore       storage.ShopStore
		categoryStore   storage.CategoryStore
	)

	if useMemory {
		stores := newMemoryStores()
		if err := loadFixtureData(ctx, stores); err != nil {
			return fmt.Errorf("load fixtures: %w", err)
		}
		behavioralStore = stores.behavioral
		purchaseStore = stores.purchases
		feedbackStore = stores.feedbacks
		productStore = stores.products
		shopStore = stores.shops
		categoryStore = stores.categories
	} else {
		pool, err := pgstore.NewPool(ctx, postgresDSN)
		if err != nil {
			return fmt.Errorf("connect to postgres: %w", err)
		}
		defer pool.Close()

		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			return fmt.Errorf("run postgres migrations: %w", err)
		}

		behavioralStore = pgstore.NewBehavioralEventStore(pool)
		purchaseStore = pgstore.NewPurchaseStore(pool)
		feedbackStore = pgstore.NewFeedbackStore(pool)
		productStore = pgstore.NewProductStore(pool)
		shopStore = pgstore.NewShopStore(pool)
		categoryStore = pgstore.NewCategoryStore(pool)
	}

	// Optional ClickHouse dataset sinks
	var (
		interactionSink storage.InteractionDatasetStore
		productSink     storage.ProductDatasetStore
	)
	if clickhouseDSN != "" {
		conn, err := migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
		if err != nil {
			return fmt.Errorf("run clickhouse migrations: %w", err)
		}
		defer conn.Close()

		interactionSink = chstore.NewInteractionDatasetStore(conn)
		productSink = chstore.NewProductDatasetStore(conn)
	}

	orch := orchestrator.New(orchestrator.Options{
		BehavioralSource: behavioralStore,
		PurchaseStore:    purchaseStore,
		FeedbackStore:    feedbackStore,
		ProductStore:     productStore,
		ShopStore:        shopStore,
		CategoryStore:    categoryStore,
		InteractionSink:  interactionSink,
		ProductSink:      productSink,
		BatchSize:        batchSize,
		BehavioralLimit:  limit,
		Logger:           logger,
		Verbose:          verbose,
	})

	events, runResult, err := orch.NormalizeInteractions(ctx)
	if err != nil {
		return err
	}

	logger.Printf("interactions: %d raw, %d emitted, %d skipped, %d defaulted",
		runResult.Processed, runResult.Emitted, runResult.Skipped, runResult.Defaulted)
	for _, e := range runResult.Errors {
		logger.Printf("source error: %s", e)
	}

	records, exportResult, err := orch.ExportProducts(ctx, productLimit)
	if err != nil {
		return err
	}
	logger.Printf("items: %d processed, %d emitted, %d skipped",
		exportResult.Processed, exportResult.Emitted, exportResult.Skipped)

	generator := reporting.NewGenerator(outputDir, reporting.Format(format))
	manifest, err := generator.Write(events, records)
	if err != nil {
		return fmt.Errorf("write dataset files: %w", err)
	}

	var failedSources []string
	for _, e := range runResult.Errors {
		name, _, _ := strings.Cut(e, ":")
		failedSources = append(failedSources, name)
	}
	observability.RecordExportRun(time.Since(start).Seconds(), failedSources)
	if len(runResult.Errors) == 0 {
		observability.DefaultMetrics.LastSuccessfulExport.Set(float64(time.Now().Unix()))
	}

	logger.Printf("wrote %s and %s to %s (%d interactions, %d items)",
		manifest.InteractionsFile, manifest.ItemsFile, outputDir,
		manifest.InteractionCount, manifest.ItemCount)

	return nil
}
