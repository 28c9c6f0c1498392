// Package ingest loads play logs dropped into the ingest bucket and records
// every play they contain.
package ingest

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"radio-charts/internal/models"
	"radio-charts/internal/storage"
)

var (
	files = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "charts_ingest_files_total",
			Help: "Play log files handled, by outcome",
		},
		[]string{"status"},
	)
	records = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "charts_ingest_records_total",
			Help: "Play log records handled, by outcome",
		},
		[]string{"status"},
	)
	duration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "charts_ingest_file_duration_seconds",
			Help:    "Processing time of one play log",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// RegisterMetrics adds the ingest metrics to the default registry.
func RegisterMetrics() {
	prometheus.MustRegister(files, records, duration)
}

// Queue is the ingest bucket.
type Queue interface {
	ListIngestFiles(ctx context.Context) ([]string, error)
	DownloadIngestFile(ctx context.Context, key string) (*storage.FileObject, error)
	DeleteIngestFile(ctx context.Context, key string) error
}

// Recorder stores catalog entries and plays.
type Recorder interface {
	AddPerformer(ctx context.Context, name string) (*models.Performer, error)
	AddSong(ctx context.Context, title, performer string) (*models.Song, error)
	AddPlay(ctx context.Context, title, performer, channel string, start, end time.Time) (*models.Play, error)
}

// Report summarises one processed file.
type Report struct {
	Records int
	Failed  int
}

type Worker struct {
	queue    Queue
	catalog  Recorder
	interval time.Duration
}

func New(queue Queue, catalog Recorder, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Worker{queue: queue, catalog: catalog, interval: interval}
}

// Run polls the queue until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Printf("👀 Watching ingest queue every %s...", w.interval)
	w.processQueue(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("🛑 Ingest watcher stopped")
			return
		case <-ticker.C:
			w.processQueue(ctx)
		}
	}
}

func (w *Worker) processQueue(ctx context.Context) {
	keys, err := w.queue.ListIngestFiles(ctx)
	if err != nil {
		log.Printf("Error listing bucket: %v", err)
		return
	}

	for _, key := range keys {
		if ctx.Err() != nil {
			return
		}
		if strings.HasSuffix(key, "/") || format(key) == "" {
			files.WithLabelValues("skipped").Inc()
			continue
		}

		log.Printf("Processing: %s", key)
		report, err := w.processFile(ctx, key)
		switch {
		case err != nil:
			log.Printf("❌ FAILED %s: %v", key, err)
			files.WithLabelValues("failure").Inc()
		case report.Failed > 0:
			log.Printf("⚠️ KEPT %s: %d of %d records failed, retrying next poll", key, report.Failed, report.Records)
			files.WithLabelValues("partial").Inc()
		default:
			if err := w.queue.DeleteIngestFile(ctx, key); err != nil {
				log.Printf("⚠️ Could not remove %s: %v", key, err)
			}
			log.Printf("✅ INGESTED %s (%d plays)", key, report.Records)
			files.WithLabelValues("success").Inc()
		}
	}
}

func (w *Worker) processFile(ctx context.Context, key string) (Report, error) {
	timer := prometheus.NewTimer(duration)
	defer timer.ObserveDuration()

	obj, err := w.queue.DownloadIngestFile(ctx, key)
	if err != nil {
		return Report{}, fmt.Errorf("download: %w", err)
	}
	defer obj.Body.Close()

	var report Report
	err = readRecords(format(key), obj.Body, func(line int, rec Record, decodeErr error) {
		report.Records++
		if decodeErr == nil {
			decodeErr = w.record(ctx, rec)
		}
		if decodeErr != nil {
			report.Failed++
			records.WithLabelValues("failure").Inc()
			slog.Warn("play record rejected", "file", key, "line", line, "error", decodeErr)
			return
		}
		records.WithLabelValues("success").Inc()
	})
	return report, err
}

// record stores one play. Performers are created on first sight; songs and
// plays are get-or-create so a retried file does not double count.
func (w *Worker) record(ctx context.Context, rec Record) error {
	start, err := models.ParseTimestamp(rec.Start)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	end, err := models.ParseTimestamp(rec.End)
	if err != nil {
		return fmt.Errorf("end: %w", err)
	}

	if _, err := w.catalog.AddPerformer(ctx, rec.Performer); err != nil {
		return err
	}
	if _, err := w.catalog.AddSong(ctx, rec.Title, rec.Performer); err != nil {
		return err
	}
	_, err = w.catalog.AddPlay(ctx, rec.Title, rec.Performer, rec.Channel, start, end)
	return err
}
