package extract

import (
	"context"
	"time"

	"github.com/joseph-ayodele/pboc-bom/internal/document"
	"github.com/joseph-ayodele/pboc-bom/internal/entity"
)

// BlockReader is Stage 1: file -> ordered blocks.
type BlockReader interface {
	Read(ctx context.Context, path string) (ReadResult, error)
}

type ReadResult struct {
	Blocks   []document.Block
	Tables   int
	Duration time.Duration
}

// TreeBuilder is Stage 2: blocks -> intermediate entity tree.
type TreeBuilder interface {
	Build(blocks []document.Block) (*entity.Report, error)
}
