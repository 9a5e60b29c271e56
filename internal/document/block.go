package document

import (
	"strings"
)

// Block is one unit of the flattened report: either a text cell or a table.
type Block struct {
	Text  string
	Table *Table
}

func TextBlock(s string) Block  { return Block{Text: s} }
func TableBlock(t *Table) Block { return Block{Table: t} }

func (b Block) IsTable() bool { return b.Table != nil }
func (b Block) IsText() bool  { return b.Table == nil }

// Signature is the string used to detect pagination repeats.
func (b Block) Signature() string {
	if b.Table != nil {
		return b.Table.Render()
	}
	return b.Text
}

// Table is a rectangular grid of trimmed cell texts. An empty string stands
// for a null cell; rows shorter than the widest row read as null past their end.
type Table struct {
	Rows [][]string
}

// NewTable drops all-null rows and keeps the rest.
func NewTable(rows [][]string) *Table {
	t := &Table{}
	for _, r := range rows {
		if allNull(r) {
			continue
		}
		t.Rows = append(t.Rows, r)
	}
	return t
}

func allNull(r []string) bool {
	for _, v := range r {
		if v != "" {
			return false
		}
	}
	return true
}

// Len is the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Cols is the width of the widest row.
func (t *Table) Cols() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, r := range t.Rows {
		if len(r) > n {
			n = len(r)
		}
	}
	return n
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool { return t.Len() == 0 }

// At returns the cell at (r, c), or "" when out of range.
func (t *Table) At(r, c int) string {
	if t == nil || r < 0 || r >= len(t.Rows) || c < 0 || c >= len(t.Rows[r]) {
		return ""
	}
	return t.Rows[r][c]
}

// Row returns row r padded to Cols().
func (t *Table) Row(r int) []string {
	out := make([]string, t.Cols())
	if r >= 0 && r < t.Len() {
		copy(out, t.Rows[r])
	}
	return out
}

// Render is a stable text rendering, one line per row, null cells as "None".
func (t *Table) Render() string {
	var sb strings.Builder
	sb.WriteString("table")
	for i := 0; i < t.Len(); i++ {
		sb.WriteByte('\n')
		for j, v := range t.Row(i) {
			if j > 0 {
				sb.WriteByte('\t')
			}
			if v == "" {
				v = "None"
			}
			sb.WriteString(v)
		}
	}
	return sb.String()
}

// Text renders the table cells with no separators, as used by full-text
// keyword scans.
func (t *Table) Text() string {
	var sb strings.Builder
	for _, r := range t.Rows {
		for _, v := range r {
			sb.WriteString(v)
		}
	}
	return sb.String()
}

// Contains reports whether any cell of row r contains sub.
func (t *Table) Contains(r int, sub string) bool {
	if r < 0 || r >= t.Len() {
		return false
	}
	for _, v := range t.Rows[r] {
		if v != "" && strings.Contains(v, sub) {
			return true
		}
	}
	return false
}

// HasCell reports whether row r has a cell equal to s.
func (t *Table) HasCell(r int, s string) bool {
	if r < 0 || r >= t.Len() {
		return false
	}
	for _, v := range t.Rows[r] {
		if v == s {
			return true
		}
	}
	return false
}

// Dedup drops blocks whose signature equals the signature of the block kept
// just before them.
func Dedup(blocks []Block) []Block {
	var out []Block
	var last string
	has := false
	for _, b := range blocks {
		sig := b.Signature()
		if has && sig == last {
			continue
		}
		out = append(out, b)
		last, has = sig, true
	}
	return out
}

// BodyText joins all blocks as text with newlines removed.
func BodyText(blocks []Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		if b.IsTable() {
			sb.WriteString(b.Table.Text())
			continue
		}
		sb.WriteString(b.Text)
	}
	return strings.NewReplacer("\n", "", "\r", "").Replace(sb.String())
}
