package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/pboc-bom/internal/core"
	dt "github.com/joseph-ayodele/pboc-bom/internal/document/doctest"
	"github.com/joseph-ayodele/pboc-bom/internal/export"
	"github.com/joseph-ayodele/pboc-bom/internal/model/modeltest"
	"github.com/joseph-ayodele/pboc-bom/internal/repository"
	"github.com/joseph-ayodele/pboc-bom/internal/server"
)

type bomBody struct {
	RunID        string            `json:"run_id"`
	Source       string            `json:"source"`
	Layout       string            `json:"layout"`
	Export       map[string]string `json:"export"`
	Encoded      map[string]string `json:"encoded"`
	Raw          map[string]any    `json:"raw"`
	Warnings     []string          `json:"warnings"`
	FailedGroups []string          `json:"failed_groups"`
}

func newServer(t *testing.T) (*httptest.Server, repository.RunRepository) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := repository.Open(context.Background(), repository.Config{}, log)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	runs := repository.NewRunRepository(db, log)
	proc := core.NewProcessor(log, core.WithRuns(runs), core.WithClock(modeltest.Clock))
	api := server.NewAPI(proc, runs, export.NewService(runs, log), db, log)
	srv := httptest.NewServer(api.Router())
	t.Cleanup(srv.Close)
	return srv, runs
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestBOMFromTree(t *testing.T) {
	srv, _ := newServer(t)
	b, err := json.Marshal(modeltest.SampleTree(t))
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/v1/bom?name=r1&raw=true", "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var body bomBody
	decode(t, resp, &body)
	assert.Equal(t, "r1", body.Source)
	assert.Equal(t, "narrative", body.Layout)
	assert.NotEmpty(t, body.RunID)
	assert.Equal(t, "UMCC", body.Export["pboc_debt_loan"])
	assert.Equal(t, "UMCC", body.Encoded["pboc_debt_loan_004"])
	assert.Equal(t, 1200.0, body.Raw["pboc_debt_loan_004"])
	assert.Empty(t, body.FailedGroups)
}

func TestBOMRejectsBadBodies(t *testing.T) {
	srv, _ := newServer(t)

	resp, err := http.Post(srv.URL+"/v1/bom", "application/json", bytes.NewReader([]byte("{")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// a loan without the required fields fails schema validation
	bad := `{"creditDetail":{"loan":[{}]}}`
	resp, err = http.Post(srv.URL+"/v1/bom", "application/json", bytes.NewReader([]byte(bad)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()
}

func TestBOMFromDocxMultipart(t *testing.T) {
	srv, runs := newServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "report.docx")
	require.NoError(t, err)
	_, err = fw.Write(dt.Docx(dt.SampleReport()))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(srv.URL+"/v1/documents", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body bomBody
	decode(t, resp, &body)
	assert.Equal(t, "report.docx", body.Source)
	assert.Equal(t, "BC", body.Export["pboc_hs_coffiecient_level1"])
	assert.Contains(t, body.Warnings, "missing header.messageHeader.queryTime")

	// the run is readable back
	resp, err = http.Get(srv.URL + "/v1/runs/" + body.RunID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var run server.RunResponse
	decode(t, resp, &run)
	assert.Equal(t, "OK", run.Status)
	assert.NotEmpty(t, run.Features)

	list, err := runs.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDocxRawBodyFailure(t *testing.T) {
	srv, _ := newServer(t)
	resp, err := http.Post(srv.URL+"/v1/documents?name=x.docx", "application/octet-stream", bytes.NewReader([]byte("nope")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Post(srv.URL+"/v1/documents", "application/octet-stream", http.NoBody)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestRunsEndpoints(t *testing.T) {
	srv, _ := newServer(t)

	resp, err := http.Get(srv.URL + "/v1/runs/not-a-uuid")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/v1/runs/7d9f4c1e-2b1a-4c59-9a8e-3f5b7f0b8e11")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/v1/runs?limit=-1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/v1/runs")
	require.NoError(t, err)
	var list []server.RunResponse
	decode(t, resp, &list)
	assert.Empty(t, list)

	resp, err = http.Get(srv.URL + "/v1/export.xlsx")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestHealthz(t *testing.T) {
	srv, _ := newServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}
