package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/pflag"

	"github.com/joseph-ayodele/pboc-bom/internal/common"
	"github.com/joseph-ayodele/pboc-bom/internal/core"
	"github.com/joseph-ayodele/pboc-bom/internal/export"
	"github.com/joseph-ayodele/pboc-bom/internal/ingest"
	repo "github.com/joseph-ayodele/pboc-bom/internal/repository"
	"github.com/joseph-ayodele/pboc-bom/internal/server"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	fs := pflag.NewFlagSet("pboc-batch", pflag.ExitOnError)
	common.RegisterFlags(fs)
	force := fs.Bool("force", false, "process reports that already have a history file")
	_ = fs.Parse(os.Args[1:])

	cfg, err := common.LoadConfig(fs)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Job.ReportDir == "" && fs.NArg() > 0 {
		cfg.Job.ReportDir = fs.Arg(0)
	}
	if cfg.Job.ReportDir == "" {
		printError("Error: --report-dir is required\n")
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Output.BOMDir == "" {
		cfg.Output.BOMDir = cfg.Job.ReportDir
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	db, err := server.ConnectDB(ctx, cfg.Database, logger)
	if err != nil {
		os.Exit(1)
	}
	defer db.Close()
	runs := repo.NewRunRepository(db, logger)

	files := export.Files{BOMDir: cfg.Output.BOMDir, WorkDir: cfg.Job.WorkDir, LogDir: cfg.Output.LogDir}
	opts := []core.Option{core.WithRuns(runs), core.WithFiles(files)}
	if t, ok := cfg.QueryClockTime(); ok {
		opts = append(opts, core.WithClock(func() time.Time { return t }))
	}
	processor := core.NewProcessor(logger, opts...)

	scan := ingest.ScanConfig{SkipHidden: true}
	if cfg.Job.SkipDone && !*force {
		scan.Done = func(p string) bool { return files.Done(p) }
	}
	logger.Info("starting scan", "dir", cfg.Job.ReportDir)
	paths, stats, err := ingest.Scan(ctx, cfg.Job.ReportDir, scan)
	if err != nil {
		logger.Error("failed to scan report directory", "error", err)
		os.Exit(1)
	}
	logger.Info("scan complete",
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
		"queued", len(paths))

	outcomes, bstats := processor.Batch(ctx, paths, cfg.Job.Workers, cfg.Job.Timeout)

	if cfg.Job.ErrorDir != "" {
		for _, p := range core.Failed(outcomes) {
			dst, err := ingest.MoveTo(p, cfg.Job.ErrorDir)
			if err != nil {
				logger.Warn("failed to move report to error dir", "file", p, "error", err)
				continue
			}
			logger.Info("moved failed report", "file", p, "to", dst)
		}
	}

	if cfg.Output.XLSXPath != "" {
		logger.Info("exporting to XLSX", "output", cfg.Output.XLSXPath)
		xlsx, err := export.NewService(runs, logger).ExportRunsXLSX(ctx, 0)
		if err != nil {
			logger.Error("failed to export runs", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(cfg.Output.XLSXPath, xlsx, 0o644); err != nil {
			logger.Error("failed to write output file", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("batch processing complete",
		"reports", bstats.Total,
		"succeeded", bstats.Succeeded,
		"failed", bstats.Failed,
		"bom_dir", cfg.Output.BOMDir)

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Reports found: %d (skipped %d)\n", stats.Matched, stats.Skipped)
	fmt.Printf("- Reports processed: %d\n", bstats.Succeeded)
	fmt.Printf("- Failures: %d\n", bstats.Failed)
	fmt.Printf("- BOM files: %s\n", cfg.Output.BOMDir)
	if bstats.Failed > 0 {
		os.Exit(3)
	}
}
