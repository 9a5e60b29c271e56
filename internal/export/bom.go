package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joseph-ayodele/pboc-bom/constants"
	"github.com/joseph-ayodele/pboc-bom/internal/features"
)

// Files writes the per-report outputs of a run.
type Files struct {
	BOMDir  string // <name>.bom.txt with the export variables
	WorkDir string // all_var_bom_his/<name>.bom.txt with the full encoded map
	LogDir  string // <name>.json with the entity tree; empty skips it
}

// BOMPath is where the export variables of report name go.
func (f Files) BOMPath(name string) string {
	return filepath.Join(f.BOMDir, name+constants.BOMSuffix)
}

// HistoryPath is where the full encoded map of report name goes.
func (f Files) HistoryPath(name string) string {
	return filepath.Join(f.WorkDir, constants.AllVarsDir, name+constants.BOMSuffix)
}

// Done reports whether a history file already exists for a report with the
// same key as name. name may be a path.
func (f Files) Done(name string) bool {
	entries, err := os.ReadDir(filepath.Join(f.WorkDir, constants.AllVarsDir))
	if err != nil {
		return false
	}
	key := constants.ReportKey(filepath.Base(name))
	for _, e := range entries {
		if constants.ReportKey(e.Name()) == key {
			return true
		}
	}
	return false
}

// WriteBOM writes the export projection and the full encoded map.
func (f Files) WriteBOM(name string, exported, encoded *features.Map) error {
	if f.BOMDir != "" {
		if err := writeJSON(f.BOMPath(name), exported); err != nil {
			return fmt.Errorf("write bom: %w", err)
		}
	}
	if f.WorkDir != "" {
		if err := writeJSON(f.HistoryPath(name), encoded); err != nil {
			return fmt.Errorf("write history: %w", err)
		}
	}
	return nil
}

// WriteTree dumps the entity tree for debugging.
func (f Files) WriteTree(name string, tree any) error {
	if f.LogDir == "" {
		return nil
	}
	return writeJSON(filepath.Join(f.LogDir, name+".json"), tree)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
