package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/pboc-bom/internal/encode"
	"github.com/joseph-ayodele/pboc-bom/internal/repository"
)

// Service produces XLSX bytes summarizing stored runs.
type Service struct {
	runs   repository.RunRepository
	logger *slog.Logger
}

func NewService(runs repository.RunRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{runs: runs, logger: logger}
}

// ExportRunsXLSX returns a workbook with one row per run (newest first, at
// most limit rows when limit > 0) and one column per export variable.
func (s *Service) ExportRunsXLSX(ctx context.Context, limit int) ([]byte, error) {
	start := time.Now()
	runs, err := s.runs.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	const sheet = "Runs"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	_ = f.DeleteSheet("Sheet1")

	headers := append([]string{"Run ID", "Source", "Status", "Started", "Warnings", "Error"}, encode.ExportVars...)
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range runs {
		feats, err := s.runs.Features(ctx, r.ID)
		if err != nil {
			return nil, fmt.Errorf("query features of %s: %w", r.ID, err)
		}
		encoded := make(map[string]string, len(feats))
		for _, ft := range feats {
			encoded[ft.Name] = ft.Encoded
		}

		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, r.ID.String())
		write(2, r.Source)
		write(3, string(r.Status))
		write(4, r.StartedAt.Format(time.DateTime))
		write(5, r.Warnings)
		write(6, truncate(r.Error, 140))
		for i, k := range encode.ExportVars {
			v, ok := encoded[encode.Source(k)]
			if !ok {
				v = encode.Missing
			}
			write(7+i, v)
		}
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 38) // run id
	_ = f.SetColWidth(sheet, "B", "B", 32) // source
	_ = f.SetColWidth(sheet, "D", "D", 20) // started
	_ = f.SetColWidth(sheet, "F", "F", 48) // error

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	s.logger.Info("export.xlsx.ok",
		"rows", len(runs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
