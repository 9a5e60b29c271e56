package document

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beevik/etree"

	"github.com/joseph-ayodele/pboc-bom/internal/common"
)

const documentPart = "word/document.xml"

// ReadFile opens a .docx report and flattens it into blocks.
func ReadFile(path string) ([]Block, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}
	return Read(bytes.NewReader(b), int64(len(b)))
}

// Read flattens the docx in r. Every cell of every body-level table becomes
// one block, row by row; consecutive repeats are dropped.
func Read(r io.ReaderAt, size int64) ([]Block, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: open docx container: %w", common.ErrInvalidInput, err)
	}
	var part *zip.File
	for _, f := range zr.File {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return nil, common.NewStructureError("docx", "missing %s", documentPart)
	}
	rc, err := part.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", documentPart, err)
	}
	defer rc.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(rc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", documentPart, err)
	}
	return Flatten(doc)
}

// Flatten walks the body-level tables of a parsed document.xml.
func Flatten(doc *etree.Document) ([]Block, error) {
	root := doc.Root()
	if root == nil {
		return nil, common.NewStructureError("docx", "empty document")
	}
	body := child(root, "body")
	if body == nil {
		return nil, common.NewStructureError("docx", "missing w:body")
	}

	var blocks []Block
	for _, tbl := range children(body, "tbl") {
		for _, row := range gridRows(tbl) {
			for _, tc := range row {
				b, err := cellBlock(tc)
				if err != nil {
					return nil, err
				}
				blocks = append(blocks, b)
			}
		}
	}
	return Dedup(blocks), nil
}

func cellBlock(tc *etree.Element) (Block, error) {
	nested := children(tc, "tbl")
	switch len(nested) {
	case 0:
		return TextBlock(strings.TrimSpace(cellText(tc))), nil
	case 1:
		t, err := nestedTable(nested[0])
		if err != nil {
			return Block{}, err
		}
		return TableBlock(t), nil
	default:
		return Block{}, common.NewStructureError("docx", "cell holds %d tables", len(nested))
	}
}

func nestedTable(tbl *etree.Element) (*Table, error) {
	var rows [][]string
	for _, row := range gridRows(tbl) {
		cells := make([]string, 0, len(row))
		for _, tc := range row {
			if len(children(tc, "tbl")) > 0 {
				return nil, common.NewStructureError("docx", "nested table cell holds a table")
			}
			cells = append(cells, strings.Trim(cellText(tc), "\n "))
		}
		rows = append(rows, cells)
	}
	return NewTable(rows), nil
}

// gridRows expands a w:tbl into rows of cells on the table grid: a cell
// spanning n grid columns appears n times and a vertical-merge continuation
// repeats the cell above it.
func gridRows(tbl *etree.Element) [][]*etree.Element {
	var out [][]*etree.Element
	for _, tr := range children(tbl, "tr") {
		var row []*etree.Element
		for _, tc := range children(tr, "tc") {
			span := 1
			merged := false
			if pr := child(tc, "tcPr"); pr != nil {
				if gs := child(pr, "gridSpan"); gs != nil {
					if n := atoi(gs.SelectAttrValue("w:val", "1")); n > 1 {
						span = n
					}
				}
				if vm := child(pr, "vMerge"); vm != nil {
					v := vm.SelectAttrValue("w:val", "continue")
					merged = v != "restart"
				}
			}
			for i := 0; i < span; i++ {
				cell := tc
				col := len(row)
				if merged && len(out) > 0 && col < len(out[len(out)-1]) {
					cell = out[len(out)-1][col]
				}
				row = append(row, cell)
			}
		}
		out = append(out, row)
	}
	return out
}

// cellText joins the text of the paragraphs directly under a cell with "\n".
func cellText(tc *etree.Element) string {
	paras := children(tc, "p")
	texts := make([]string, 0, len(paras))
	for _, p := range paras {
		var sb strings.Builder
		runText(p, &sb)
		texts = append(texts, sb.String())
	}
	return strings.Join(texts, "\n")
}

func runText(e *etree.Element, sb *strings.Builder) {
	for _, c := range e.ChildElements() {
		switch c.Tag {
		case "t":
			sb.WriteString(c.Text())
		case "tab":
			sb.WriteByte('\t')
		case "br", "cr":
			sb.WriteByte('\n')
		case "tbl", "pPr", "rPr":
		default:
			runText(c, sb)
		}
	}
}

func children(e *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, c := range e.ChildElements() {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

func child(e *etree.Element, tag string) *etree.Element {
	for _, c := range e.ChildElements() {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
