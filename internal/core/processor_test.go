package core_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/pboc-bom/constants"
	"github.com/joseph-ayodele/pboc-bom/internal/common"
	"github.com/joseph-ayodele/pboc-bom/internal/core"
	dt "github.com/joseph-ayodele/pboc-bom/internal/document/doctest"
	"github.com/joseph-ayodele/pboc-bom/internal/export"
	"github.com/joseph-ayodele/pboc-bom/internal/features"
	"github.com/joseph-ayodele/pboc-bom/internal/model/modeltest"
	"github.com/joseph-ayodele/pboc-bom/internal/repository"
)

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newRuns(t *testing.T) repository.RunRepository {
	t.Helper()
	db, err := repository.Open(context.Background(), repository.Config{}, quiet())
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return repository.NewRunRepository(db, quiet())
}

func writeSample(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, dt.Docx(dt.SampleReport()), 0o644))
	return path
}

func text(t *testing.T, m *features.Map, key string) string {
	t.Helper()
	v, ok := m.Get(key)
	require.True(t, ok, "missing %s", key)
	return v.Text
}

func TestProcessFileDocx(t *testing.T) {
	dir := t.TempDir()
	runs := newRuns(t)
	files := export.Files{BOMDir: filepath.Join(dir, "bom"), WorkDir: dir, LogDir: filepath.Join(dir, "log")}
	p := core.NewProcessor(quiet(), core.WithRuns(runs), core.WithFiles(files), core.WithClock(modeltest.Clock))

	res, err := p.ProcessFile(context.Background(), writeSample(t, dir, "r1.docx"))
	require.NoError(t, err)
	assert.Empty(t, res.GroupErrors)
	assert.Equal(t, "r1.docx", res.Source)
	assert.Equal(t, "UMCC", text(t, res.Export, "pboc_debt_loan"))
	assert.Equal(t, "BC", text(t, res.Export, "pboc_hs_coffiecient_level1"))
	// the narrative layout carries no query time
	require.NotEmpty(t, res.Warnings)
	assert.Equal(t, "header.messageHeader.queryTime", res.Warnings[0].Field)

	b, err := os.ReadFile(files.BOMPath("r1.docx"))
	require.NoError(t, err)
	var exported map[string]string
	require.NoError(t, json.Unmarshal(b, &exported))
	assert.Equal(t, "UMCC", exported["pboc_debt_loan"])
	assert.Len(t, exported, 9)
	assert.True(t, files.Done("r1.json"))
	assert.FileExists(t, filepath.Join(dir, "log", "r1.docx.json"))

	run, err := runs.Get(context.Background(), res.RunID)
	require.NoError(t, err)
	assert.Equal(t, constants.RunStatusOK, run.Status)
	assert.Equal(t, len(res.Warnings), run.Warnings)
	rows, err := runs.Features(context.Background(), res.RunID)
	require.NoError(t, err)
	assert.Len(t, rows, res.Features.Len())
	assert.Equal(t, "education_level", rows[0].Name)
}

func TestProcessFileTreeJSON(t *testing.T) {
	dir := t.TempDir()
	b, err := json.Marshal(modeltest.SampleTree(t))
	require.NoError(t, err)
	path := filepath.Join(dir, "r2.json")
	require.NoError(t, os.WriteFile(path, b, 0o644))

	p := core.NewProcessor(quiet(), core.WithClock(modeltest.Clock))
	res, err := p.ProcessFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "UMCC", text(t, res.Encoded, features.KeyDebt004))
}

func TestProcessTreeAndDocxAgree(t *testing.T) {
	p := core.NewProcessor(quiet(), core.WithClock(modeltest.Clock))
	fromTree, err := p.ProcessTree(context.Background(), "t", modeltest.SampleTree(t))
	require.NoError(t, err)
	fromDocx, err := p.ProcessDocx(context.Background(), "d", dt.Docx(dt.SampleReport()))
	require.NoError(t, err)
	assert.Equal(t, fromTree.Encoded.Keys(), fromDocx.Encoded.Keys())
}

func TestProcessFailureIsRecorded(t *testing.T) {
	runs := newRuns(t)
	p := core.NewProcessor(quiet(), core.WithRuns(runs))

	res, err := p.ProcessDocx(context.Background(), "bad.docx", []byte("not a zip"))
	require.Error(t, err)
	assert.Nil(t, res.Features)

	run, err := runs.Get(context.Background(), res.RunID)
	require.NoError(t, err)
	assert.Equal(t, constants.RunStatusFailed, run.Status)
	assert.NotEmpty(t, run.Error)
}

func TestProcessRejectsBadTree(t *testing.T) {
	p := core.NewProcessor(quiet())
	tree := map[string]any{"creditDetail": map[string]any{"loan": []any{map[string]any{}}}}
	_, err := p.ProcessTree(context.Background(), "x", tree)
	var se *common.StructureError
	assert.True(t, errors.As(err, &se))
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	good := writeSample(t, dir, "a.docx")
	bad := filepath.Join(dir, "b.docx")
	require.NoError(t, os.WriteFile(bad, []byte("junk"), 0o644))
	other := writeSample(t, dir, "c.docx")

	p := core.NewProcessor(quiet(), core.WithClock(modeltest.Clock))
	out, stats := p.Batch(context.Background(), []string{good, bad, other}, 2, time.Minute)
	assert.Equal(t, core.BatchStats{Total: 3, Succeeded: 2, Failed: 1}, stats)
	require.Len(t, out, 3)
	assert.Equal(t, good, out[0].Path)
	assert.NoError(t, out[0].Err)
	assert.Error(t, out[1].Err)
	assert.Equal(t, []string{bad}, core.Failed(out))
}
