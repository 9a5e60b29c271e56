package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/joseph-ayodele/pboc-bom/internal/common"
	"github.com/joseph-ayodele/pboc-bom/internal/core"
	"github.com/joseph-ayodele/pboc-bom/internal/export"
	"github.com/joseph-ayodele/pboc-bom/internal/features"
	"github.com/joseph-ayodele/pboc-bom/internal/repository"
)

// maxUpload bounds request bodies.
const maxUpload = 32 << 20

// ReportProcessor is the part of core.Processor the API drives.
type ReportProcessor interface {
	ProcessTree(ctx context.Context, name string, tree any) (*core.Result, error)
	ProcessDocx(ctx context.Context, name string, data []byte) (*core.Result, error)
}

// API serves the HTTP endpoints. runs, xlsx and db are optional; the
// endpoints that need a missing one answer 404 or report it unhealthy.
type API struct {
	proc   ReportProcessor
	runs   repository.RunRepository
	xlsx   *export.Service
	db     Pinger
	logger *slog.Logger
}

func NewAPI(proc ReportProcessor, runs repository.RunRepository, xlsx *export.Service, db Pinger, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{proc: proc, runs: runs, xlsx: xlsx, db: db, logger: logger}
}

// Router wires the routes.
func (a *API) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(a.requestID)
	r.HandleFunc("/healthz", a.health).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/bom", a.bomFromTree).Methods(http.MethodPost)
	v1.HandleFunc("/documents", a.bomFromDocx).Methods(http.MethodPost)
	if a.runs != nil {
		v1.HandleFunc("/runs", a.listRuns).Methods(http.MethodGet)
		v1.HandleFunc("/runs/{id}", a.getRun).Methods(http.MethodGet)
	}
	if a.xlsx != nil {
		v1.HandleFunc("/export.xlsx", a.exportXLSX).Methods(http.MethodGet)
	}
	return r
}

func (a *API) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(common.WithRequestID(r.Context(), id)))
	})
}

// BOMResponse is the body of a successful report request.
type BOMResponse struct {
	RunID        string        `json:"run_id,omitempty"`
	Source       string        `json:"source"`
	Layout       string        `json:"layout"`
	Export       *features.Map `json:"export"`
	Encoded      *features.Map `json:"encoded"`
	Raw          *features.Map `json:"raw,omitempty"`
	Warnings     []string      `json:"warnings,omitempty"`
	FailedGroups []string      `json:"failed_groups,omitempty"`
}

type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (a *API) bomFromTree(w http.ResponseWriter, r *http.Request) {
	var tree any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUpload))
	if err := dec.Decode(&tree); err != nil {
		a.fail(w, r, fmt.Errorf("%w: body is not a JSON tree: %w", common.ErrInvalidInput, err))
		return
	}
	res, err := a.proc.ProcessTree(r.Context(), sourceName(r, "tree.json"), tree)
	a.respond(w, r, res, err)
}

// bomFromDocx takes the .docx either as the "file" field of a multipart
// form or as the raw body.
func (a *API) bomFromDocx(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxUpload)
	name := sourceName(r, "upload.docx")
	var data []byte
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		r.Body = body
		f, hdr, ferr := r.FormFile("file")
		if ferr != nil {
			a.fail(w, r, fmt.Errorf("%w: %v", common.ErrInvalidInput, ferr))
			return
		}
		defer f.Close()
		if r.URL.Query().Get("name") == "" {
			name = hdr.Filename
		}
		data, err = io.ReadAll(f)
	} else {
		data, err = io.ReadAll(body)
	}
	if err != nil {
		a.fail(w, r, fmt.Errorf("%w: read upload: %w", common.ErrInvalidInput, err))
		return
	}
	if len(data) == 0 {
		a.fail(w, r, fmt.Errorf("%w: empty upload", common.ErrInvalidInput))
		return
	}
	res, err := a.proc.ProcessDocx(r.Context(), name, data)
	a.respond(w, r, res, err)
}

func sourceName(r *http.Request, def string) string {
	if n := strings.TrimSpace(r.URL.Query().Get("name")); n != "" {
		return n
	}
	return def
}

func (a *API) respond(w http.ResponseWriter, r *http.Request, res *core.Result, err error) {
	if err != nil {
		a.fail(w, r, err)
		return
	}
	out := BOMResponse{
		Source:  res.Source,
		Layout:  res.Layout.String(),
		Export:  res.Export,
		Encoded: res.Encoded,
	}
	if res.RunID != uuid.Nil {
		out.RunID = res.RunID.String()
	}
	if raw, _ := strconv.ParseBool(r.URL.Query().Get("raw")); raw {
		out.Raw = res.Features
	}
	for _, wn := range res.Warnings {
		out.Warnings = append(out.Warnings, wn.String())
	}
	for _, ge := range res.GroupErrors {
		out.FailedGroups = append(out.FailedGroups, ge.Group)
	}
	writeJSON(w, http.StatusOK, out)
}

// RunResponse is a stored run with its features.
type RunResponse struct {
	ID         string               `json:"id"`
	Source     string               `json:"source"`
	Status     string               `json:"status"`
	Error      string               `json:"error,omitempty"`
	Warnings   int                  `json:"warnings"`
	StartedAt  time.Time            `json:"started_at"`
	FinishedAt *time.Time           `json:"finished_at,omitempty"`
	Features   []repository.Feature `json:"features,omitempty"`
}

func runResponse(run repository.Run) RunResponse {
	out := RunResponse{
		ID:        run.ID.String(),
		Source:    run.Source,
		Status:    string(run.Status),
		Error:     run.Error,
		Warnings:  run.Warnings,
		StartedAt: run.StartedAt,
	}
	if !run.FinishedAt.IsZero() {
		t := run.FinishedAt
		out.FinishedAt = &t
	}
	return out
}

func (a *API) getRun(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		a.fail(w, r, fmt.Errorf("%w: run id must be a UUID", common.ErrInvalidInput))
		return
	}
	run, err := a.runs.Get(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	feats, err := a.runs.Features(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	out := runResponse(*run)
	out.Features = feats
	writeJSON(w, http.StatusOK, out)
}

func (a *API) listRuns(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r, 50)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	runs, err := a.runs.List(r.Context(), limit)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	out := make([]RunResponse, 0, len(runs))
	for _, run := range runs {
		out = append(out, runResponse(run))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) exportXLSX(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r, 0)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	b, err := a.xlsx.ExportRunsXLSX(r.Context(), limit)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="pboc_runs.xlsx"`)
	_, _ = w.Write(b)
}

func queryLimit(r *http.Request, def int) (int, error) {
	s := r.URL.Query().Get("limit")
	if s == "" {
		return def, nil
	}
	v := common.NewValidator()
	n, err := strconv.Atoi(s)
	if err != nil {
		n = 0
	}
	if v.Field("limit", n, common.Positive); v.HasErrors() {
		return 0, v.Error()
	}
	return n, nil
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	if a.db != nil {
		if err := PingDB(r.Context(), a.db, a.logger, 2*time.Second); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := common.HTTPStatus(err)
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		code = http.StatusRequestEntityTooLarge
	}
	reqID := common.RequestIDFromContext(r.Context())
	if code >= http.StatusInternalServerError {
		a.logger.Error("http.request.failed", "path", r.URL.Path, "request_id", reqID, "err", err)
	} else {
		a.logger.Warn("http.request.rejected", "path", r.URL.Path, "request_id", reqID, "status", code, "err", err)
	}
	writeJSON(w, code, errorBody{Error: err.Error(), RequestID: reqID})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
