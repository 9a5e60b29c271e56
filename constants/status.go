package constants

// RunStatus is the canonical status for rows in report_run.
type RunStatus string

// Stable values (store these exact strings in DB).
const (
	RunStatusQueued  RunStatus = "QUEUED"
	RunStatusRunning RunStatus = "RUNNING"
	RunStatusOK      RunStatus = "OK"      // feature map produced and encoded
	RunStatusFailed  RunStatus = "FAILED"  // extraction or model construction aborted
	RunStatusSkipped RunStatus = "SKIPPED" // already has a history file
)
