package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type Config struct {
	DSN              string // postgres DSN; empty opens sqlite
	SQLitePath       string // empty keeps the store in memory
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// DB is an ent SQL driver over either a pgx pool or an embedded sqlite file.
type DB struct {
	drv     *entsql.Driver
	pool    *pgxpool.Pool
	dialect string
	log     *slog.Logger
}

// Open connects and creates the tables when missing.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var (
		db  *DB
		err error
	)
	if cfg.DSN == "" {
		db, err = openSQLite(cfg, logger)
	} else {
		db, err = openPostgres(ctx, cfg, logger)
	}
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, err
	}
	if err := db.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	logger.Info("successfully connected to database", "dialect", db.dialect)
	return db, nil
}

func openPostgres(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, error) {
	logger.Info("connecting to database", "driver", "pgx")
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "pboc-bom"
	if cfg.StatementTimeout > 0 {
		pc.ConnConfig.RuntimeParams["statement_timeout"] = cfg.StatementTimeout.String()
	}

	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, err
	}

	// Wrap pool as *sql.DB for ent
	drv := entsql.OpenDB(dialect.Postgres, stdlib.OpenDBFromPool(pool))
	return &DB{drv: drv, pool: pool, dialect: dialect.Postgres, log: logger}, nil
}

func openSQLite(cfg Config, logger *slog.Logger) (*DB, error) {
	path := cfg.SQLitePath
	if path == "" {
		path = ":memory:"
	}
	logger.Info("connecting to database", "driver", "sqlite", "path", path)
	sdb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// one connection: an in-memory database lives and dies with it
	sdb.SetMaxOpenConns(1)
	return &DB{drv: entsql.OpenDB(dialect.SQLite, sdb), dialect: dialect.SQLite, log: logger}, nil
}

// Dialect is the ent dialect name of the open store.
func (db *DB) Dialect() string { return db.dialect }

// Close closes the database connections gracefully
func (db *DB) Close() {
	db.log.Info("closing database connections")
	if err := db.drv.Close(); err != nil {
		db.log.Error("failed to close ent driver", "error", err)
	}
	if db.pool != nil {
		db.pool.Close()
	}
	db.log.Info("database connections closed")
}

// HealthCheck pings using database/sql to catch DSN issues early.
func (db *DB) HealthCheck(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := db.drv.DB().PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	db.log.Debug("database ping successful")
	return nil
}

var tables = []string{
	`CREATE TABLE IF NOT EXISTS report_run (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		status TEXT NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		warnings INTEGER NOT NULL DEFAULT 0,
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_report_run_source ON report_run(source)`,
	`CREATE TABLE IF NOT EXISTS report_feature (
		run_id TEXT NOT NULL REFERENCES report_run(id),
		seq INTEGER NOT NULL,
		name TEXT NOT NULL,
		raw TEXT NOT NULL,
		encoded TEXT NOT NULL,
		PRIMARY KEY (run_id, seq)
	)`,
}

func (db *DB) migrate(ctx context.Context) error {
	for _, stmt := range tables {
		if err := db.drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return err
		}
	}
	return nil
}
