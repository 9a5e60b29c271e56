package document

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/pboc-bom/internal/common"
)

const wns = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

func para(text string) string {
	return `<w:p><w:r><w:t xml:space="preserve">` + text + `</w:t></w:r></w:p>`
}

func cell(inner string) string { return `<w:tc>` + inner + `</w:tc>` }

func spanCell(n string, inner string) string {
	return `<w:tc><w:tcPr><w:gridSpan w:val="` + n + `"/></w:tcPr>` + inner + `</w:tc>`
}

func row(cells ...string) string { return `<w:tr>` + strings.Join(cells, "") + `</w:tr>` }

func tbl(rows ...string) string { return `<w:tbl>` + strings.Join(rows, "") + `</w:tbl>` }

func docxBytes(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><w:document ` + wns + `><w:body>` + body + `</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func readBody(t *testing.T, body string) ([]Block, error) {
	b := docxBytes(t, body)
	return Read(bytes.NewReader(b), int64(len(b)))
}

func TestReadFlattensCellsAndNestedTables(t *testing.T) {
	inner := tbl(
		row(cell(para(" 性别 ")), cell(para("出生日期"))),
		row(cell(para("")), cell(para(""))),
		row(cell(para("男性")), cell(para("1980.01.02"))),
	)
	body := tbl(
		row(spanCell("2", para("个人信用报告"))),
		row(cell(para("  身份信息 ")), cell(inner)),
	)

	blocks, err := readBody(t, body)
	require.NoError(t, err)
	require.Len(t, blocks, 3) // the spanned title is repeated then dropped as a repeat

	assert.Equal(t, "个人信用报告", blocks[0].Text)
	assert.Equal(t, "身份信息", blocks[1].Text)
	require.True(t, blocks[2].IsTable())

	tb := blocks[2].Table
	assert.Equal(t, 2, tb.Len(), "all-null rows are dropped")
	assert.Equal(t, 2, tb.Cols())
	assert.Equal(t, "性别", tb.At(0, 0))
	assert.Equal(t, "1980.01.02", tb.At(1, 1))
	assert.Equal(t, "", tb.At(5, 5))
}

func TestReadJoinsParagraphs(t *testing.T) {
	body := tbl(row(cell(para("第一行") + para("第二行"))))
	blocks, err := readBody(t, body)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "第一行\n第二行", blocks[0].Text)
}

func TestReadVerticalMerge(t *testing.T) {
	inner := `<w:tbl>` +
		row(`<w:tc><w:tcPr><w:vMerge w:val="restart"/></w:tcPr>`+para("账户")+`</w:tc>`, cell(para("A"))) +
		row(`<w:tc><w:tcPr><w:vMerge/></w:tcPr>`+para("")+`</w:tc>`, cell(para("B"))) +
		`</w:tbl>`
	blocks, err := readBody(t, tbl(row(cell(inner))))
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, []string{"账户", "B"}, blocks[0].Table.Row(1))
}

func TestReadRejectsDeepTables(t *testing.T) {
	deep := tbl(row(cell(tbl(row(cell(para("x")))))))
	_, err := readBody(t, tbl(row(cell(deep))))
	var se *common.StructureError
	require.Error(t, err)
	assert.True(t, errors.As(err, &se))
}

func TestReadMissingPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = Read(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	assert.Error(t, err)
}

func TestReadNotAZip(t *testing.T) {
	_, err := Read(strings.NewReader("plain text"), 10)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestDedupComparesLastKept(t *testing.T) {
	tb := NewTable([][]string{{"a", ""}})
	blocks := Dedup([]Block{
		TextBlock("x"), TextBlock("x"), TextBlock(""), TextBlock(""),
		TableBlock(tb), TableBlock(NewTable([][]string{{"a", ""}})), TextBlock("x"),
	})
	require.Len(t, blocks, 4)
	assert.Equal(t, "x", blocks[0].Text)
	assert.Equal(t, "", blocks[1].Text)
	assert.True(t, blocks[2].IsTable())
	assert.Equal(t, "x", blocks[3].Text)
}

func TestBodyText(t *testing.T) {
	blocks := []Block{TextBlock("一\n二"), TableBlock(NewTable([][]string{{"呆账", ""}}))}
	assert.Equal(t, "一二呆账", BodyText(blocks))
}
