package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/pboc-bom/constants"
	"github.com/joseph-ayodele/pboc-bom/internal/common"
)

// Run is one processing attempt of one report.
type Run struct {
	ID         uuid.UUID
	Source     string
	Status     constants.RunStatus
	Error      string
	Warnings   int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Feature is one feature row of a run: the raw value as JSON and its
// encoded form.
type Feature struct {
	Name    string
	Raw     string
	Encoded string
}

type RunRepository interface {
	Start(ctx context.Context, source string) (*Run, error)
	Finish(ctx context.Context, id uuid.UUID, status constants.RunStatus, warnings int, message string) error
	SaveFeatures(ctx context.Context, id uuid.UUID, rows []Feature) error
	Get(ctx context.Context, id uuid.UUID) (*Run, error)
	Features(ctx context.Context, id uuid.UUID) ([]Feature, error)
	List(ctx context.Context, limit int) ([]Run, error)
}

const (
	runTable     = "report_run"
	featureTable = "report_feature"
	// rows per insert statement
	featureBatch = 500
)

var runColumns = []string{"id", "source", "status", "error", "warnings", "started_at", "finished_at"}

type runRepo struct {
	db  *DB
	log *slog.Logger
	now func() time.Time
}

func NewRunRepository(db *DB, log *slog.Logger) RunRepository {
	if log == nil {
		log = slog.Default()
	}
	return &runRepo{db: db, log: log, now: time.Now}
}

func (r *runRepo) builder() *entsql.DialectBuilder { return entsql.Dialect(r.db.dialect) }

// stampLayout is fixed width so stamps sort as text.
const stampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(stampLayout)
}

func unstamp(s string) time.Time {
	t, _ := time.Parse(stampLayout, s)
	return t
}

func (r *runRepo) Start(ctx context.Context, source string) (*Run, error) {
	run := &Run{ID: uuid.New(), Source: source, Status: constants.RunStatusRunning, StartedAt: r.now().UTC()}
	query, args := r.builder().Insert(runTable).
		Columns("id", "source", "status", "started_at").
		Values(run.ID.String(), run.Source, string(run.Status), stamp(run.StartedAt)).
		Query()
	if err := r.db.drv.Exec(ctx, query, args, nil); err != nil {
		r.log.Error("report_run start failed", "source", source, "err", err)
		return nil, common.NewAppError("RUN_START", source, fmt.Errorf("%w: %v", common.ErrDatabase, err))
	}
	r.log.Info("report_run started", "run_id", run.ID, "source", source)
	return run, nil
}

func (r *runRepo) Finish(ctx context.Context, id uuid.UUID, status constants.RunStatus, warnings int, message string) error {
	query, args := r.builder().Update(runTable).
		Set("status", string(status)).
		Set("error", message).
		Set("warnings", warnings).
		Set("finished_at", stamp(r.now())).
		Where(entsql.EQ("id", id.String())).
		Query()
	if err := r.db.drv.Exec(ctx, query, args, nil); err != nil {
		r.log.Error("report_run finish failed", "run_id", id, "err", err)
		return common.NewAppError("RUN_FINISH", id.String(), fmt.Errorf("%w: %v", common.ErrDatabase, err))
	}
	if status == constants.RunStatusFailed {
		r.log.Warn("report_run finished (FAILED)", "run_id", id, "error", message)
	} else {
		r.log.Info("report_run finished", "run_id", id, "status", status)
	}
	return nil
}

func (r *runRepo) SaveFeatures(ctx context.Context, id uuid.UUID, rows []Feature) error {
	for start := 0; start < len(rows); start += featureBatch {
		end := min(start+featureBatch, len(rows))
		ins := r.builder().Insert(featureTable).Columns("run_id", "seq", "name", "raw", "encoded")
		for i, f := range rows[start:end] {
			ins.Values(id.String(), start+i, f.Name, f.Raw, f.Encoded)
		}
		query, args := ins.Query()
		if err := r.db.drv.Exec(ctx, query, args, nil); err != nil {
			r.log.Error("report_feature insert failed", "run_id", id, "err", err)
			return common.NewAppError("FEATURE_SAVE", id.String(), fmt.Errorf("%w: %v", common.ErrDatabase, err))
		}
	}
	r.log.Debug("report_feature saved", "run_id", id, "rows", len(rows))
	return nil
}

func (r *runRepo) selectRuns() *entsql.Selector {
	b := r.builder()
	return b.Select(runColumns...).From(b.Table(runTable))
}

func (r *runRepo) scanRuns(ctx context.Context, sel *entsql.Selector) ([]Run, error) {
	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.db.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDatabase, err)
	}
	defer rows.Close()
	var out []Run
	for rows.Next() {
		var (
			run                     Run
			id, status, start, done string
		)
		if err := rows.Scan(&id, &run.Source, &status, &run.Error, &run.Warnings, &start, &done); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrDatabase, err)
		}
		run.ID, _ = uuid.Parse(id)
		run.Status = constants.RunStatus(status)
		run.StartedAt = unstamp(start)
		run.FinishedAt = unstamp(done)
		out = append(out, run)
	}
	return out, rows.Err()
}

func (r *runRepo) Get(ctx context.Context, id uuid.UUID) (*Run, error) {
	runs, err := r.scanRuns(ctx, r.selectRuns().Where(entsql.EQ("id", id.String())))
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("run %s: %w", id, common.ErrNotFound)
	}
	return &runs[0], nil
}

func (r *runRepo) List(ctx context.Context, limit int) ([]Run, error) {
	sel := r.selectRuns().OrderBy(entsql.Desc("started_at"))
	if limit > 0 {
		sel.Limit(limit)
	}
	return r.scanRuns(ctx, sel)
}

func (r *runRepo) Features(ctx context.Context, id uuid.UUID) ([]Feature, error) {
	b := r.builder()
	query, args := b.Select("name", "raw", "encoded").
		From(b.Table(featureTable)).
		Where(entsql.EQ("run_id", id.String())).
		OrderBy("seq").
		Query()
	rows := &entsql.Rows{}
	if err := r.db.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDatabase, err)
	}
	defer rows.Close()
	var out []Feature
	for rows.Next() {
		var f Feature
		if err := rows.Scan(&f.Name, &f.Raw, &f.Encoded); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrDatabase, err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
