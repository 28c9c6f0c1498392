package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"radio-charts/internal/catalog"
	"radio-charts/internal/charts"
	"radio-charts/internal/config"
	database "radio-charts/internal/db"

	apiserver "radio-charts/internal/api/server"
	"radio-charts/internal/api/middleware"
)

func main() {
	seed := flag.String("seed", "", "YAML catalog of stations, performers and songs to load at startup")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Radio Charts API Server...")

	// 1. Setup Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config: %v", err)
	}
	slog.SetLogLoggerLevel(cfg.LogLevel())

	// 2. Initialize Infrastructure
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("❌ Database: %v", err)
	}
	defer db.Close()

	// 3. Run Database Migrations
	if err := db.AutoMigrate(); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	if *seed != "" {
		if err := database.SeedCatalogFile(context.Background(), db, *seed); err != nil {
			log.Fatalf("❌ Seed failed: %v", err)
		}
	}

	// 4. Setup Metrics
	charts.RegisterMetrics()
	middleware.RegisterMetrics()
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		log.Printf("📊 Metrics exposed at http://localhost%s/metrics", cfg.Server.MetricsPort)
		if err := http.ListenAndServe(cfg.Server.MetricsPort, mux); err != nil {
			log.Printf("⚠️ Metrics server error: %v", err)
		}
	}()

	// 5. Start Server
	engine := charts.New(db, cfg.Charts.DefaultPeriod)
	srv := apiserver.New(cfg, catalog.New(db), engine)

	log.Printf("🚀 API Server starting on %s", cfg.Server.Port)
	if err := srv.Start(cfg.Server.Port); err != nil {
		log.Fatalf("❌ Server failed to start: %v", err)
	}
}
