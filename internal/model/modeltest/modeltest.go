// Package modeltest builds credit models from the sample report for tests.
package modeltest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/pboc-bom/internal/coerce"
	dt "github.com/joseph-ayodele/pboc-bom/internal/document/doctest"
	"github.com/joseph-ayodele/pboc-bom/internal/extract"
	"github.com/joseph-ayodele/pboc-bom/internal/model"
)

// QueryTime is the clock every sample model is built with.
var QueryTime = time.Date(2019, 10, 1, 0, 0, 0, 0, time.UTC)

// Clock returns QueryTime.
func Clock() time.Time { return QueryTime }

// SampleTree is the normalized entity tree of the sample report.
func SampleTree(t testing.TB) any {
	t.Helper()
	rep, err := extract.NewBuilder().Build(dt.SampleReport())
	require.NoError(t, err)
	tree, err := coerce.Normalize(rep)
	require.NoError(t, err)
	return tree
}

// Sample is the model of the sample report.
func Sample(t testing.TB) *model.Credit {
	t.Helper()
	c, err := model.New(SampleTree(t), extract.LayoutNarrative, Clock)
	require.NoError(t, err)
	return c
}

// FromTree builds a narrative model from a hand-written tree.
func FromTree(t testing.TB, tree map[string]any) *model.Credit {
	t.Helper()
	norm, err := coerce.Normalize(tree)
	require.NoError(t, err)
	c, err := model.New(norm, extract.LayoutNarrative, Clock)
	require.NoError(t, err)
	return c
}
