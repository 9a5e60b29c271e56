package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/pboc-bom/internal/common"
	repo "github.com/joseph-ayodele/pboc-bom/internal/repository"
)

// ConnectDB opens the run store described by cfg.
func ConnectDB(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*repo.DB, error) {
	if cfg.DSN == "" {
		logger.Info("connecting to database", "driver", "sqlite", "path", cfg.SQLitePath)
	} else {
		logger.Info("connecting to database", "driver", "pgx")
	}
	db, err := repo.Open(ctx, repo.Config{
		DSN:              cfg.DSN,
		SQLitePath:       cfg.SQLitePath,
		MaxConns:         cfg.MaxConns,
		MinConns:         cfg.MinConns,
		MaxConnLifetime:  cfg.MaxConnLifetime,
		MaxConnIdleTime:  cfg.MaxConnIdleTime,
		DialTimeout:      cfg.DialTimeout,
		StatementTimeout: cfg.StatementTimeout,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, err
	}
	return db, nil
}

// Pinger is a store that can report its health.
type Pinger interface {
	HealthCheck(ctx context.Context, timeout time.Duration) error
}

// PingDB pings the database to ensure it's responsive
func PingDB(ctx context.Context, db Pinger, logger *slog.Logger, timeout time.Duration) error {
	logger.Debug("pinging database")
	if err := db.HealthCheck(ctx, timeout); err != nil {
		logger.Error("database ping failed", "error", err)
		return err
	}
	logger.Debug("database ping successful")
	return nil
}
