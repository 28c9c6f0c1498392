package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"radio-charts/internal/catalog"
	"radio-charts/internal/config"
	database "radio-charts/internal/db"
	"radio-charts/internal/ingest"
	"radio-charts/internal/storage"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Play Log Ingestion Worker...")

	// 1. Setup Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config: %v", err)
	}
	slog.SetLogLoggerLevel(cfg.LogLevel())

	// 2. Initialize Infrastructure
	store, err := storage.New(cfg)
	if err != nil {
		log.Fatalf("❌ Storage: %v", err)
	}
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("❌ Database: %v", err)
	}
	defer db.Close()

	// 3. Run Database Migrations
	if err := db.AutoMigrate(); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	// 4. Setup Metrics
	ingest.RegisterMetrics()
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		log.Printf("📊 Metrics exposed at http://localhost%s/metrics", cfg.Server.MetricsPort)
		if err := http.ListenAndServe(cfg.Server.MetricsPort, mux); err != nil {
			log.Printf("⚠️ Metrics server error: %v", err)
		}
	}()

	// 5. Start Worker
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	interval := time.Duration(cfg.Ingest.PollingInterval) * time.Second
	worker := ingest.New(store, catalog.New(db), interval)
	worker.Run(ctx)
}
