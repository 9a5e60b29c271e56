package repository

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/pboc-bom/constants"
	"github.com/joseph-ayodele/pboc-bom/internal/common"
)

func openTest(t *testing.T) (*DB, *runRepo) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := Open(context.Background(), Config{}, log)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	repo := NewRunRepository(db, log).(*runRepo)
	return db, repo
}

func TestOpenSQLiteInMemory(t *testing.T) {
	db, _ := openTest(t)
	assert.Equal(t, "sqlite3", db.Dialect())
	require.NoError(t, db.HealthCheck(context.Background(), time.Second))
}

func TestRunLifecycle(t *testing.T) {
	_, repo := openTest(t)
	ctx := context.Background()
	clock := time.Date(2019, 10, 1, 8, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return clock }

	run, err := repo.Start(ctx, "7256_report.docx")
	require.NoError(t, err)
	assert.Equal(t, constants.RunStatusRunning, run.Status)

	rows := []Feature{
		{Name: "pboc_lc_ucl_pct_lf", Raw: "0.24", Encoded: "MB"},
		{Name: "pboc_debt_loan_004", Raw: "1200", Encoded: "UMCC"},
	}
	require.NoError(t, repo.SaveFeatures(ctx, run.ID, rows))

	clock = clock.Add(time.Minute)
	require.NoError(t, repo.Finish(ctx, run.ID, constants.RunStatusOK, 2, ""))

	got, err := repo.Get(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "7256_report.docx", got.Source)
	assert.Equal(t, constants.RunStatusOK, got.Status)
	assert.Equal(t, 2, got.Warnings)
	assert.True(t, got.StartedAt.Equal(time.Date(2019, 10, 1, 8, 0, 0, 0, time.UTC)))
	assert.True(t, got.FinishedAt.Equal(clock))

	feats, err := repo.Features(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, rows, feats)
}

func TestSaveFeaturesInBatches(t *testing.T) {
	_, repo := openTest(t)
	ctx := context.Background()
	run, err := repo.Start(ctx, "big.docx")
	require.NoError(t, err)

	rows := make([]Feature, featureBatch*2+3)
	for i := range rows {
		rows[i] = Feature{Name: uuid.NewString(), Raw: "1", Encoded: "U"}
	}
	require.NoError(t, repo.SaveFeatures(ctx, run.ID, rows))
	feats, err := repo.Features(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, feats, len(rows))
	assert.Equal(t, rows[featureBatch].Name, feats[featureBatch].Name)
}

func TestGetMissingRun(t *testing.T) {
	_, repo := openTest(t)
	_, err := repo.Get(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestListNewestFirst(t *testing.T) {
	_, repo := openTest(t)
	ctx := context.Background()
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, src := range []string{"a.docx", "b.docx", "c.docx"} {
		repo.now = func() time.Time { return base.Add(time.Duration(i) * time.Hour) }
		_, err := repo.Start(ctx, src)
		require.NoError(t, err)
	}
	runs, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c.docx", runs[0].Source)
	assert.Equal(t, "b.docx", runs[1].Source)

	require.NoError(t, repo.Finish(ctx, runs[0].ID, constants.RunStatusFailed, 0, "structure: header: missing"))
	failed, err := repo.Get(ctx, runs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "structure: header: missing", failed.Error)
}
