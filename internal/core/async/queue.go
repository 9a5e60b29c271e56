package async

import (
	"context"
	"errors"
	"time"
)

// Job asks for one report file to be processed.
type Job struct {
	Path        string
	Force       bool // process even if the report already has a history file
	SubmittedAt time.Time
	TraceID     string
}

// ErrClosed is returned by Enqueue after Shutdown.
var ErrClosed = errors.New("queue is shutting down")

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}
