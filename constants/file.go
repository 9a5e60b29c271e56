package constants

import "strings"

// AllowedExtensions holds the report file extensions picked up by scans and the watcher.
var AllowedExtensions = map[string]struct{}{
	"docx": {},
	"json": {},
}

// BOMSuffix is appended to a report's file name to name its output files.
const BOMSuffix = ".bom.txt"

// HistoryDir and AllVarsDir live under the work directory.
const (
	HistoryDir = "bom_his"
	AllVarsDir = "all_var_bom_his"
)

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// ReportKey is the part of a file's base name before the first dot; two files
// with the same key are the same report.
func ReportKey(base string) string {
	if i := strings.Index(base, "."); i >= 0 {
		return base[:i]
	}
	return base
}
