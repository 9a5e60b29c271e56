package extract

import (
	"strings"

	"github.com/joseph-ayodele/pboc-bom/internal/document"
)

// BodyByFlag returns the blocks from the first text containing start up to,
// but excluding, the first later text containing end. Empty texts are
// skipped. With end == "" the section runs to the last block. A text
// containing end that appears before start closes the section early, so
// the result is empty.
func BodyByFlag(blocks []document.Block, start, end string) []document.Block {
	var out []document.Block
	started, ended := false, false
	for _, b := range blocks {
		if b.IsText() && b.Text == "" {
			continue
		}
		if b.IsText() && strings.Contains(b.Text, start) {
			started = true
		} else if b.IsText() && end != "" && strings.Contains(b.Text, end) {
			ended = true
		}
		if started && !ended {
			out = append(out, b)
		} else if ended {
			return out
		}
	}
	return out
}

// SingleTableByFlag returns the first table after the text containing flag.
// A non-blank text between them means the section has no table.
func SingleTableByFlag(blocks []document.Block, flag string) *document.Table {
	found := false
	for _, b := range blocks {
		if b.IsText() && strings.Contains(b.Text, flag) {
			found = true
			continue
		}
		if !found {
			continue
		}
		if b.IsTable() {
			return b.Table
		}
		if strings.TrimSpace(b.Text) != "" {
			return nil
		}
	}
	return nil
}

// valuesByTags reads tables laid out as alternating title and data rows.
// A row is a title when some cell k contains tags[k]; each following data
// row maps every tag to the value under the title column containing it.
func valuesByTags(t *document.Table, tags []string) []map[string]string {
	var out []map[string]string
	var title []string
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		if isTitleRow(row, tags) {
			title = row
			continue
		}
		if title == nil {
			continue
		}
		rec := map[string]string{}
		for _, tag := range tags {
			for k, v := range row {
				if k < len(title) && strings.Contains(title[k], tag) {
					if _, ok := rec[tag]; !ok {
						rec[tag] = v
					}
				}
			}
		}
		out = append(out, rec)
	}
	return out
}

func isTitleRow(row []string, tags []string) bool {
	for k, v := range row {
		if v == "" || k >= len(tags) {
			continue
		}
		if strings.Contains(v, tags[k]) {
			return true
		}
	}
	return false
}
