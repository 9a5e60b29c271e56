package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Job      JobConfig
	Output   OutputConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN              string // postgres:// DSN; empty selects sqlite
	SQLitePath       string // "" means in-memory
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPAddr string
	GRPCAddr string
}

// JobConfig controls which reports are processed and how.
type JobConfig struct {
	ReportDir  string
	WorkDir    string
	Workers    int
	QueueSize  int
	Timeout    time.Duration
	Schedule   string // cron spec for directory sweeps; empty disables them
	Watch      bool
	SkipDone   bool
	ErrorDir   string // failed sources are moved here when set
	QueryClock string // RFC3339 override of "now" for reports without a query time
}

// OutputConfig controls where results land.
type OutputConfig struct {
	BOMDir   string
	LogDir   string
	XLSXPath string
}

var envKeys = map[string]string{
	"db.dsn":               "DB_URL",
	"db.sqlite_path":       "DB_SQLITE_PATH",
	"db.max_conns":         "DB_MAX_CONNS",
	"db.min_conns":         "DB_MIN_CONNS",
	"db.max_conn_lifetime": "DB_MAX_CONN_LIFETIME",
	"db.max_conn_idle":     "DB_MAX_CONN_IDLE_TIME",
	"db.dial_timeout":      "DB_DIAL_TIMEOUT",
	"db.statement_timeout": "DB_STATEMENT_TIMEOUT",
	"server.http_addr":     "HTTP_ADDR",
	"server.grpc_addr":     "GRPC_ADDR",
	"job.report_dir":       "PBOC_REPORT_DIR",
	"job.work_dir":         "PBOC_WORK_DIR",
	"job.workers":          "PBOC_WORKERS",
	"job.queue_size":       "PBOC_QUEUE_SIZE",
	"job.timeout":          "PBOC_TIMEOUT",
	"job.schedule":         "PBOC_SCHEDULE",
	"job.watch":            "PBOC_WATCH",
	"job.skip_done":        "PBOC_SKIP_DONE",
	"job.error_dir":        "PBOC_ERROR_DIR",
	"job.query_clock":      "PBOC_QUERY_CLOCK",
	"output.bom_dir":       "PBOC_BOM_DIR",
	"output.log_dir":       "PBOC_LOG_DIR",
	"output.xlsx":          "PBOC_XLSX",
}

// flag name -> config key
var flagKeys = map[string]string{
	"db-url":      "db.dsn",
	"sqlite-path": "db.sqlite_path",
	"http-addr":   "server.http_addr",
	"grpc-addr":   "server.grpc_addr",
	"report-dir":  "job.report_dir",
	"work-dir":    "job.work_dir",
	"workers":     "job.workers",
	"timeout":     "job.timeout",
	"schedule":    "job.schedule",
	"watch":       "job.watch",
	"skip-done":   "job.skip_done",
	"error-dir":   "job.error_dir",
	"bom-dir":     "output.bom_dir",
	"log-dir":     "output.log_dir",
	"xlsx":        "output.xlsx",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.sqlite_path", "")
	v.SetDefault("db.max_conns", 20)
	v.SetDefault("db.min_conns", 2)
	v.SetDefault("db.max_conn_lifetime", 30*time.Minute)
	v.SetDefault("db.max_conn_idle", 5*time.Minute)
	v.SetDefault("db.dial_timeout", 3*time.Second)
	v.SetDefault("db.statement_timeout", time.Duration(0))
	v.SetDefault("server.http_addr", ":8081")
	v.SetDefault("server.grpc_addr", ":8080")
	v.SetDefault("job.report_dir", "")
	v.SetDefault("job.work_dir", ".")
	v.SetDefault("job.workers", 4)
	v.SetDefault("job.queue_size", 256)
	v.SetDefault("job.timeout", 3*time.Minute)
	v.SetDefault("job.schedule", "")
	v.SetDefault("job.watch", false)
	v.SetDefault("job.skip_done", true)
	v.SetDefault("job.error_dir", "")
	v.SetDefault("job.query_clock", "")
	v.SetDefault("output.bom_dir", "")
	v.SetDefault("output.log_dir", "")
	v.SetDefault("output.xlsx", "")
}

// RegisterFlags defines the shared command-line flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("db-url", "", "Postgres DSN (empty uses sqlite)")
	fs.String("sqlite-path", "", "sqlite file path (empty keeps the store in memory)")
	fs.String("http-addr", ":8081", "HTTP listen address")
	fs.String("grpc-addr", ":8080", "gRPC health listen address")
	fs.String("report-dir", "", "directory holding credit report files")
	fs.String("work-dir", ".", "work directory (history folders live here)")
	fs.Int("workers", 4, "reports processed in parallel")
	fs.Duration("timeout", 3*time.Minute, "per-report processing timeout")
	fs.String("schedule", "", "cron spec for directory sweeps")
	fs.Bool("watch", false, "watch the report directory for new files")
	fs.Bool("skip-done", true, "skip reports that already have a history file")
	fs.String("error-dir", "", "move failed reports here")
	fs.String("bom-dir", "", "directory for <name>.bom.txt outputs")
	fs.String("log-dir", "", "directory for intermediate tree JSON dumps")
	fs.String("xlsx", "", "write an XLSX summary of the run to this path")
}

// LoadConfig resolves configuration from defaults, the environment and,
// when fs is non-nil, flags registered with RegisterFlags. Flags win.
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}
	if fs != nil {
		for name, key := range flagKeys {
			f := fs.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	cfg := &Config{
		Database: DatabaseConfig{
			DSN:              strings.TrimSpace(v.GetString("db.dsn")),
			SQLitePath:       v.GetString("db.sqlite_path"),
			MaxConns:         v.GetInt32("db.max_conns"),
			MinConns:         v.GetInt32("db.min_conns"),
			MaxConnLifetime:  v.GetDuration("db.max_conn_lifetime"),
			MaxConnIdleTime:  v.GetDuration("db.max_conn_idle"),
			DialTimeout:      v.GetDuration("db.dial_timeout"),
			StatementTimeout: v.GetDuration("db.statement_timeout"),
		},
		Server: ServerConfig{
			HTTPAddr: v.GetString("server.http_addr"),
			GRPCAddr: v.GetString("server.grpc_addr"),
		},
		Job: JobConfig{
			ReportDir:  v.GetString("job.report_dir"),
			WorkDir:    v.GetString("job.work_dir"),
			Workers:    v.GetInt("job.workers"),
			QueueSize:  v.GetInt("job.queue_size"),
			Timeout:    v.GetDuration("job.timeout"),
			Schedule:   v.GetString("job.schedule"),
			Watch:      v.GetBool("job.watch"),
			SkipDone:   v.GetBool("job.skip_done"),
			ErrorDir:   v.GetString("job.error_dir"),
			QueryClock: v.GetString("job.query_clock"),
		},
		Output: OutputConfig{
			BOMDir:   v.GetString("output.bom_dir"),
			LogDir:   v.GetString("output.log_dir"),
			XLSXPath: v.GetString("output.xlsx"),
		},
	}
	return cfg, nil
}

// QueryClockTime parses the optional clock override.
func (c *Config) QueryClockTime() (time.Time, bool) {
	if c.Job.QueryClock == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, c.Job.QueryClock)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	v := NewValidator().
		Field("job.work_dir", c.Job.WorkDir, Required).
		Field("job.workers", c.Job.Workers, Positive).
		Field("job.queue_size", c.Job.QueueSize, Positive)
	if c.Database.DSN != "" {
		v.Field("db.dsn", c.Database.DSN, OneOfPrefix("postgres://", "postgresql://"))
	}
	if c.Job.QueryClock != "" {
		v.Field("job.query_clock", c.Job.QueryClock, RFC3339)
	}
	if v.HasErrors() {
		return NewAppError("CONFIG_ERROR", v.ErrorMessage(), ErrInvalidInput)
	}
	return nil
}
