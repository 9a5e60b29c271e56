// Package doctest builds report block lists and .docx files for tests.
package doctest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"strings"

	"github.com/joseph-ayodele/pboc-bom/internal/document"
)

// Text is a text block.
func Text(s string) document.Block { return document.TextBlock(s) }

// Tbl is a table block from rows.
func Tbl(rows ...[]string) document.Block { return document.TableBlock(document.NewTable(rows)) }

// Row is a literal table row.
func Row(cells ...string) []string { return cells }

// Spread repeats every value span times, the way merged cells expand.
func Spread(span int, vals ...string) []string {
	out := make([]string, 0, span*len(vals))
	for _, v := range vals {
		for i := 0; i < span; i++ {
			out = append(out, v)
		}
	}
	return out
}

// Spans repeats vals[i] spans[i] times.
func Spans(spans []int, vals ...string) []string {
	var out []string
	for i, v := range vals {
		for j := 0; j < spans[i]; j++ {
			out = append(out, v)
		}
	}
	return out
}

// Chars splits s into one cell per rune.
func Chars(s string) []string {
	var out []string
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// Docx renders blocks as a .docx with one body-level table holding one
// block per row.
func Docx(blocks []document.Block) []byte {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	sb.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:tbl>`)
	for _, b := range blocks {
		sb.WriteString(`<w:tr><w:tc>`)
		if b.IsTable() {
			sb.WriteString(`<w:tbl>`)
			for _, r := range b.Table.Rows {
				sb.WriteString(`<w:tr>`)
				for _, c := range r {
					sb.WriteString(`<w:tc>`)
					writePara(&sb, c)
					sb.WriteString(`</w:tc>`)
				}
				sb.WriteString(`</w:tr>`)
			}
			sb.WriteString(`</w:tbl><w:p/>`)
		} else {
			writePara(&sb, b.Text)
		}
		sb.WriteString(`</w:tc></w:tr>`)
	}
	sb.WriteString(`</w:tbl></w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		panic(err)
	}
	if _, err := w.Write([]byte(sb.String())); err != nil {
		panic(err)
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func writePara(sb *strings.Builder, text string) {
	sb.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
	_ = xml.EscapeText(sb, []byte(text))
	sb.WriteString(`</w:t></w:r></w:p>`)
}
