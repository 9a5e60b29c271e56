package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// ScanConfig controls which files a directory scan returns.
type ScanConfig struct {
	SkipHidden bool
	// Done reports a file that was already processed; such files are skipped.
	Done func(path string) bool
}

type DirStats struct {
	Scanned uint32
	Matched uint32
	Skipped uint32 // already processed
	Failed  uint32
}

// Scan walks root and returns the report files still to process, sorted by
// path. Unreadable entries are counted and the walk continues.
func Scan(ctx context.Context, root string, cfg ScanConfig) ([]string, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("report directory is required")
	}

	var paths []string
	var stats DirStats
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		stats.Scanned++
		if walkErr != nil {
			stats.Failed++
			return nil
		}
		if cfg.SkipHidden && path != root && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || IsLockFile(path) || !AllowedExt(filepath.Ext(path)) {
			return nil
		}
		stats.Matched++
		if cfg.Done != nil && cfg.Done(path) {
			stats.Skipped++
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return paths, stats, fmt.Errorf("walk: %w", err)
	}
	sort.Strings(paths)
	return paths, stats, nil
}
