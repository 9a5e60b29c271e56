package extract

import (
	"context"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/pboc-bom/internal/document"
)

// DocxReader reads .docx reports from disk.
type DocxReader struct {
	logger *slog.Logger
}

func NewDocxReader(l *slog.Logger) *DocxReader {
	if l == nil {
		l = slog.Default()
	}
	return &DocxReader{logger: l}
}

func (r *DocxReader) Read(ctx context.Context, path string) (ReadResult, error) {
	if err := ctx.Err(); err != nil {
		return ReadResult{}, err
	}
	start := time.Now()
	blocks, err := document.ReadFile(path)
	if err != nil {
		return ReadResult{}, err
	}
	tables := 0
	for _, b := range blocks {
		if b.IsTable() {
			tables++
		}
	}
	res := ReadResult{Blocks: blocks, Tables: tables, Duration: time.Since(start)}
	r.logger.Debug("extract.docx.read", "path", path, "blocks", len(blocks), "tables", tables,
		"elapsed_ms", res.Duration.Milliseconds())
	return res, nil
}
