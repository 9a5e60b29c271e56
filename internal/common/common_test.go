package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Database.DSN)
	assert.Equal(t, 4, cfg.Job.Workers)
	assert.Equal(t, 3*time.Minute, cfg.Job.Timeout)
	assert.True(t, cfg.Job.SkipDone)
	assert.Equal(t, ":8081", cfg.Server.HTTPAddr)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigEnvAndFlags(t *testing.T) {
	t.Setenv("PBOC_WORKERS", "8")
	t.Setenv("PBOC_REPORT_DIR", "/env/reports")
	t.Setenv("DB_URL", "postgres://u:p@localhost/pboc")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--report-dir", "/flag/reports", "--timeout", "30s"}))

	cfg, err := LoadConfig(fs)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Job.Workers, "env beats default")
	assert.Equal(t, "/flag/reports", cfg.Job.ReportDir, "flag beats env")
	assert.Equal(t, 30*time.Second, cfg.Job.Timeout)
	assert.Equal(t, "postgres://u:p@localhost/pboc", cfg.Database.DSN)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	cfg.Job.Workers = 0
	cfg.Database.DSN = "mysql://x"
	cfg.Job.QueryClock = "yesterday"

	err = cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	for _, field := range []string{"job.workers", "db.dsn", "job.query_clock"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestQueryClockTime(t *testing.T) {
	cfg := &Config{}
	_, ok := cfg.QueryClockTime()
	assert.False(t, ok)
	cfg.Job.QueryClock = "2019-10-01T00:00:00Z"
	got, ok := cfg.QueryClockTime()
	require.True(t, ok)
	assert.Equal(t, time.Date(2019, 10, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestValidatorRules(t *testing.T) {
	tests := []struct {
		name  string
		value any
		rule  ValidationRule
		ok    bool
	}{
		{"required ok", "x", Required, true},
		{"required blank", "  ", Required, false},
		{"required nil", nil, Required, false},
		{"positive", 3, Positive, true},
		{"zero", 0, Positive, false},
		{"not int", "3", Positive, false},
		{"uuid", "7d9f4c1e-2b1a-4c59-9a8e-3f5b7f0b8e11", UUID, true},
		{"bad uuid", "7d9f", UUID, false},
		{"rfc3339", "2019-10-01T00:00:00+08:00", RFC3339, true},
		{"bad rfc3339", "2019-10-01", RFC3339, false},
		{"prefix", "postgresql://x", OneOfPrefix("postgres://", "postgresql://"), true},
		{"bad prefix", "sqlite://x", OneOfPrefix("postgres://"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator().Field("f", tt.value, tt.rule)
			assert.Equal(t, !tt.ok, v.HasErrors())
			if !tt.ok {
				assert.ErrorIs(t, v.Error(), ErrValidation)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusOK, HTTPStatus(nil))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(fmt.Errorf("extract: %w", NewStructureError("loan", "bad shape"))))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(NewFormatError("amount", "x", "")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(fmt.Errorf("run: %w", ErrNotFound)))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(NewAppError("BAD", "bad", ErrInvalidInput)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestErrorStrings(t *testing.T) {
	assert.Equal(t, `format: queryTime: cannot parse "x"`, NewFormatError("queryTime", "x", "").Error())
	assert.Equal(t, "missing eduLevel", MissingDataWarning{Field: "eduLevel"}.String())
	assert.Equal(t, "missing cl in loan 2", MissingDataWarning{Field: "cl", Record: "loan 2"}.String())
	ge := &GroupError{Group: "debt", Cause: ErrInternal}
	assert.ErrorIs(t, ge, ErrInternal)
	assert.Equal(t, "feature group debt: internal error", ge.Error())
}
