package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/spf13/pflag"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/joseph-ayodele/pboc-bom/internal/common"
	"github.com/joseph-ayodele/pboc-bom/internal/core"
	"github.com/joseph-ayodele/pboc-bom/internal/core/async"
	"github.com/joseph-ayodele/pboc-bom/internal/export"
	"github.com/joseph-ayodele/pboc-bom/internal/ingest"
	repo "github.com/joseph-ayodele/pboc-bom/internal/repository"
	svc "github.com/joseph-ayodele/pboc-bom/internal/server"
)

func main() {
	// Setup structured logger that outputs messages with variables but no time/level
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	fs := pflag.NewFlagSet("pbocd", pflag.ExitOnError)
	common.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])
	cfg, err := common.LoadConfig(fs)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := svc.ConnectDB(ctx, cfg.Database, logger)
	if err != nil {
		os.Exit(1)
	}
	defer db.Close()
	if err := svc.PingDB(ctx, db, logger, 5*time.Second); err != nil {
		os.Exit(1)
	}
	runs := repo.NewRunRepository(db, logger)

	bomDir := cfg.Output.BOMDir
	if bomDir == "" {
		bomDir = cfg.Job.ReportDir
	}
	files := export.Files{BOMDir: bomDir, WorkDir: cfg.Job.WorkDir, LogDir: cfg.Output.LogDir}
	opts := []core.Option{core.WithRuns(runs), core.WithFiles(files)}
	if t, ok := cfg.QueryClockTime(); ok {
		opts = append(opts, core.WithClock(func() time.Time { return t }))
	}
	processor := core.NewProcessor(logger, opts...)

	// Directory jobs need somewhere to write their BOM files.
	var queue *async.ProcessorQueue
	if cfg.Job.ReportDir != "" {
		qopts := []async.Option{
			async.WithWorkers(cfg.Job.Workers),
			async.WithQueueSize(cfg.Job.QueueSize),
			async.WithProcessTimeout(cfg.Job.Timeout),
		}
		if cfg.Job.SkipDone {
			qopts = append(qopts, async.WithSkip(files.Done))
		}
		if cfg.Job.ErrorDir != "" {
			qopts = append(qopts, async.WithOnDone(func(j async.Job, _ *core.Result, err error) {
				if err == nil {
					return
				}
				if _, merr := ingest.MoveTo(j.Path, cfg.Job.ErrorDir); merr != nil {
					logger.Warn("failed to move report to error dir", "file", j.Path, "error", merr)
				}
			}))
		}
		queue = async.NewProcessorQueue(processor, logger, qopts...)
	}

	sweep := func() {
		paths, stats, err := ingest.Scan(ctx, cfg.Job.ReportDir, ingest.ScanConfig{SkipHidden: true})
		if err != nil {
			logger.Error("sweep.scan.failed", "dir", cfg.Job.ReportDir, "error", err)
			return
		}
		trace := uuid.NewString()
		for _, p := range paths {
			if err := queue.Enqueue(ctx, async.Job{Path: p, TraceID: trace}); err != nil {
				logger.Warn("sweep.enqueue.failed", "file", p, "error", err)
				return
			}
		}
		logger.Info("sweep.done", "trace_id", trace, "matched", stats.Matched, "queued", len(paths))
	}

	var scheduler *cron.Cron
	if queue != nil && cfg.Job.Schedule != "" {
		scheduler = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
		if _, err := scheduler.AddFunc(cfg.Job.Schedule, sweep); err != nil {
			logger.Error("invalid schedule", "schedule", cfg.Job.Schedule, "error", err)
			os.Exit(2)
		}
		scheduler.Start()
		logger.Info("scheduled sweeps enabled", "schedule", cfg.Job.Schedule)
	}

	if queue != nil && cfg.Job.Watch {
		events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
			Roots:       []string{cfg.Job.ReportDir},
			InitialScan: true,
			Debounce:    500 * time.Millisecond,
			Logger:      logger,
		})
		if err != nil {
			logger.Error("failed to start watcher", "dir", cfg.Job.ReportDir, "error", err)
			os.Exit(1)
		}
		go func() {
			for {
				select {
				case p, ok := <-events:
					if !ok {
						return
					}
					if err := queue.Enqueue(ctx, async.Job{Path: p}); err != nil {
						logger.Warn("watch.enqueue.failed", "file", p, "error", err)
					}
				case err, ok := <-errs:
					if !ok {
						errs = nil
						continue
					}
					logger.Warn("watch.error", "error", err)
				}
			}
		}()
		logger.Info("watching report directory", "dir", cfg.Job.ReportDir)
	}

	// HTTP API
	api := svc.NewAPI(processor, runs, export.NewService(runs, logger), db, logger)
	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Job.Timeout + 10*time.Second,
	}
	go func() {
		logger.Info("pbocd http listening", "addr", cfg.Server.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve error", "error", err)
			stop()
		}
	}()

	// gRPC health
	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		logger.Error("failed to listen on address", "addr", cfg.Server.GRPCAddr, "error", err)
		os.Exit(1)
	}
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	go func() {
		logger.Info("pbocd grpc health listening", "addr", cfg.Server.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("gRPC serve error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	healthServer.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if scheduler != nil {
		<-scheduler.Stop().Done()
	}
	_ = httpServer.Shutdown(shutdownCtx)
	if queue != nil {
		queue.Shutdown(shutdownCtx)
	}
	grpcServer.GracefulStop()
	logger.Info("pbocd stopped")
}
