package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/pboc-bom/constants"
	"github.com/joseph-ayodele/pboc-bom/internal/coerce"
	"github.com/joseph-ayodele/pboc-bom/internal/common"
	"github.com/joseph-ayodele/pboc-bom/internal/document"
	"github.com/joseph-ayodele/pboc-bom/internal/encode"
	"github.com/joseph-ayodele/pboc-bom/internal/export"
	"github.com/joseph-ayodele/pboc-bom/internal/extract"
	"github.com/joseph-ayodele/pboc-bom/internal/features"
	"github.com/joseph-ayodele/pboc-bom/internal/model"
	"github.com/joseph-ayodele/pboc-bom/internal/repository"
)

// Result is everything one report produced.
type Result struct {
	RunID       uuid.UUID
	Source      string
	Layout      extract.Layout
	Tree        any
	Features    *features.Map // raw values in derivation order
	Encoded     *features.Map
	Export      *features.Map
	Warnings    []common.MissingDataWarning
	GroupErrors []*common.GroupError
}

// Processor runs reports through document -> tree -> model -> features ->
// encoded map. Runs are recorded when a repository is set and output files
// are written when Files names any directory.
type Processor struct {
	logger  *slog.Logger
	reader  extract.BlockReader
	builder extract.TreeBuilder
	engine  *features.Engine
	runs    repository.RunRepository
	files   export.Files
	clock   func() time.Time
}

type Option func(*Processor)

// WithRuns records every run in repo.
func WithRuns(repo repository.RunRepository) Option {
	return func(p *Processor) { p.runs = repo }
}

// WithFiles writes BOM, history and tree files.
func WithFiles(f export.Files) Option {
	return func(p *Processor) { p.files = f }
}

// WithClock fixes "now" for reports without a query time.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) {
		if now != nil {
			p.clock = now
		}
	}
}

func NewProcessor(logger *slog.Logger, opts ...Option) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Processor{
		logger:  logger,
		reader:  extract.NewDocxReader(logger),
		builder: extract.NewBuilder(),
		engine:  features.NewEngine(logger),
		clock:   time.Now,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// ProcessFile handles a .docx report or a .json entity tree on disk.
func (p *Processor) ProcessFile(ctx context.Context, path string) (*Result, error) {
	name := filepath.Base(path)
	return p.run(ctx, name, func(ctx context.Context) (any, error) {
		if constants.NormalizeExt(filepath.Ext(path)) == "json" {
			b, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read tree: %w", err)
			}
			return decodeTree(b)
		}
		res, err := p.reader.Read(ctx, path)
		if err != nil {
			return nil, err
		}
		return p.buildTree(res.Blocks)
	})
}

// ProcessDocx handles an uploaded .docx body.
func (p *Processor) ProcessDocx(ctx context.Context, name string, data []byte) (*Result, error) {
	return p.run(ctx, name, func(context.Context) (any, error) {
		blocks, err := document.Read(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, err
		}
		return p.buildTree(blocks)
	})
}

// ProcessTree handles an already extracted entity tree in either layout.
func (p *Processor) ProcessTree(ctx context.Context, name string, tree any) (*Result, error) {
	return p.run(ctx, name, func(context.Context) (any, error) {
		return coerce.Normalize(tree)
	})
}

func decodeTree(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, common.NewAppError("BAD_TREE", "entity tree is not JSON", fmt.Errorf("%w: %v", common.ErrInvalidInput, err))
	}
	return tree, nil
}

func (p *Processor) buildTree(blocks []document.Block) (any, error) {
	rep, err := p.builder.Build(blocks)
	if err != nil {
		return nil, err
	}
	return coerce.Normalize(rep)
}

func (p *Processor) run(ctx context.Context, name string, load func(context.Context) (any, error)) (*Result, error) {
	start := time.Now()
	res := &Result{Source: name}
	if p.runs != nil {
		run, err := p.runs.Start(ctx, name)
		if err != nil {
			return nil, err
		}
		res.RunID = run.ID
		ctx = common.WithRunID(ctx, run.ID.String())
	}
	log := p.logger.With("file", name)
	if res.RunID != uuid.Nil {
		log = log.With("run_id", res.RunID)
	}

	err := p.evaluate(ctx, res, load)
	if err == nil {
		err = p.persist(ctx, res)
	}
	if err != nil {
		log.Error("processor.report.failed", "err", err)
		p.finish(ctx, res, constants.RunStatusFailed, err.Error())
		return res, err
	}
	for _, w := range res.Warnings {
		log.Warn("processor.model.missing", "field", w.Field, "record", w.Record)
	}
	p.finish(ctx, res, constants.RunStatusOK, "")
	log.Info("processor.report.ok",
		"features", res.Features.Len(),
		"encoded", res.Encoded.Len(),
		"warnings", len(res.Warnings),
		"failed_groups", len(res.GroupErrors),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

func (p *Processor) evaluate(ctx context.Context, res *Result, load func(context.Context) (any, error)) error {
	tree, err := load(ctx)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	res.Tree = tree
	res.Layout = extract.DetectLayout(tree)
	if err := extract.ValidateTree(tree, res.Layout); err != nil {
		return err
	}

	c, err := model.New(tree, res.Layout, p.clock)
	if err != nil {
		return fmt.Errorf("model: %w", err)
	}
	res.Warnings = c.Warnings

	res.Features, res.GroupErrors = p.engine.Derive(c)
	res.Encoded = encode.Encode(res.Features)
	res.Export = encode.Export(res.Encoded)
	return nil
}

func (p *Processor) persist(ctx context.Context, res *Result) error {
	if err := p.files.WriteTree(res.Source, res.Tree); err != nil {
		return fmt.Errorf("write tree: %w", err)
	}
	if err := p.files.WriteBOM(res.Source, res.Export, res.Encoded); err != nil {
		return err
	}
	if p.runs == nil {
		return nil
	}
	return p.runs.SaveFeatures(ctx, res.RunID, FeatureRows(res))
}

func (p *Processor) finish(ctx context.Context, res *Result, status constants.RunStatus, msg string) {
	if p.runs == nil || res.RunID == uuid.Nil {
		return
	}
	// the run is recorded even when the report's own context has expired
	ctx = context.WithoutCancel(ctx)
	if err := p.runs.Finish(ctx, res.RunID, status, len(res.Warnings), msg); err != nil {
		p.logger.Error("processor.run.finish_failed", "run_id", res.RunID, "err", err)
	}
}

// FeatureRows pairs every derived feature with its encoded value; features
// dropped by cleaning have an empty encoding.
func FeatureRows(res *Result) []repository.Feature {
	rows := make([]repository.Feature, 0, res.Features.Len())
	res.Features.Each(func(k string, v features.Value) {
		raw, _ := v.MarshalJSON()
		enc := ""
		if e, ok := res.Encoded.Get(k); ok {
			enc = e.Text
		}
		rows = append(rows, repository.Feature{Name: k, Raw: strings.TrimSpace(string(raw)), Encoded: enc})
	})
	return rows
}
