package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"setmore-schedules/config"
	"setmore-schedules/server"
	"setmore-schedules/services"
	"setmore-schedules/storage"
	"setmore-schedules/utils"
)

func main() {
	cfg := config.Load()

	input := flag.String("input", cfg.InputPath, "Setmore booking export (.csv or .xlsx)")
	event := flag.String("event", cfg.Event, "event profile to process the export with")
	outDir := flag.String("out", cfg.OutputDir, "directory for exported reports")
	serve := flag.Bool("serve", false, "serve the upload API instead of processing a file")
	flag.Parse()

	logger := utils.NewLogger()
	logger.SetLevel(utils.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	profiles, err := config.LoadProfiles(cfg.EventsFile)
	if err != nil {
		logger.Error("Failed to load event profiles: %v", err)
		os.Exit(1)
	}

	if *serve {
		if err := server.Run(ctx, cfg, profiles, logger); err != nil {
			logger.Error("Server stopped: %v", err)
			os.Exit(1)
		}
		return
	}

	if *input == "" {
		logger.Error("No input file given: set INPUT_PATH or pass -input")
		os.Exit(2)
	}

	logger.Info("=== SetMore Schedules starting ===")
	logger.Info("Config: event: %q | input: %s | output: %s", *event, *input, *outDir)

	raw, err := storage.ReadFile(*input)
	if err != nil {
		logger.Error("Failed to read bookings: %v", err)
		os.Exit(1)
	}
	logger.Info("Read %d raw booking rows", len(raw))

	proc, err := services.ProcessorFor(*event, profiles, raw, logger)
	if err != nil {
		logger.Error("Error processing file: %v", err)
		os.Exit(1)
	}

	reports, err := proc.Reports(ctx, cfg.ReportWorkers)
	if err != nil {
		logger.Error("Failed to build reports: %v", err)
		os.Exit(1)
	}

	services.NewPrinter(os.Stdout).Print(proc, reports)

	export := &storage.Export{
		BatchID:  proc.BatchID(),
		Event:    proc.Event(),
		Bookings: proc.Data(),
		Reports:  reports,
	}

	for _, w := range openWriters(ctx, cfg, *outDir, logger) {
		if err := w.Write(ctx, export); err != nil {
			logger.Error("Export failed: %v", err)
		}
		if err := w.Close(); err != nil {
			logger.Warn("Closing exporter: %v", err)
		}
	}

	logger.Info("Done. Batch %s → %s", proc.BatchID(), *outDir)
}

// openWriters builds every configured exporter. A writer that cannot be
// opened is logged and skipped so the remaining exports still run.
func openWriters(ctx context.Context, cfg *config.Config, outDir string, logger *utils.Logger) []storage.ExportWriter {
	var writers []storage.ExportWriter

	if w, err := storage.NewCSVWriter(outDir); err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
	} else {
		writers = append(writers, w)
	}

	if w, err := storage.NewXLSXWriter(filepath.Join(outDir, "schedules.xlsx")); err != nil {
		logger.Error("Failed to create XLSX writer: %v", err)
	} else {
		writers = append(writers, w)
	}

	slot := time.Duration(cfg.SlotMinutes) * time.Minute
	if w, err := storage.NewICSWriter(filepath.Join(outDir, "schedules.ics"), slot); err != nil {
		logger.Error("Failed to create ICS writer: %v", err)
	} else {
		writers = append(writers, w)
	}

	if cfg.PDFEnabled {
		if w, err := storage.NewPDFWriter(filepath.Join(outDir, "schedules.pdf"), cfg.ChromeBin, logger); err != nil {
			logger.Error("Failed to create PDF writer: %v", err)
		} else {
			writers = append(writers, w)
		}
	}

	if cfg.PostgresEnabled {
		retry := &utils.RetryConfig{MaxAttempts: cfg.MaxRetries, BaseDelay: 2 * time.Second, Logger: logger}
		if w, err := storage.NewPostgresWriter(ctx, cfg.DSN(), retry); err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
		} else {
			writers = append(writers, w)
		}
	}

	return writers
}
