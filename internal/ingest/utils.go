package ingest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/pboc-bom/constants"
)

// AllowedExt checks if a file extension is a report extension (docx or json).
func AllowedExt(ext string) bool {
	ext = constants.NormalizeExt(ext)
	_, ok := constants.AllowedExtensions[ext]
	return ok
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".")
}

// IsLockFile reports Office owner files ("~$name.docx") left next to open documents.
func IsLockFile(path string) bool {
	return strings.HasPrefix(filepath.Base(path), "~$")
}

// MoveTo moves a file into dir, creating dir when needed, and returns the
// new path.
func MoveTo(path, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	dst := filepath.Join(dir, filepath.Base(path))
	if err := os.Rename(path, dst); err != nil {
		return "", err
	}
	return dst, nil
}
