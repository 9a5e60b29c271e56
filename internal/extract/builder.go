package extract

import (
	"fmt"

	"github.com/joseph-ayodele/pboc-bom/internal/common"
	"github.com/joseph-ayodele/pboc-bom/internal/document"
	"github.com/joseph-ayodele/pboc-bom/internal/entity"
)

// Section flags of the narrative report layout.
const (
	flagPersonal     = "个人基本信息"
	flagSummary      = "信息概要"
	flagCreditDetail = "信贷交易信息明细"
	flagPublicDetail = "公共信息明细"
	flagPublic       = "四 公共信息明细"
	flagQuery        = "五 查询记录"
	flagReportNotes  = "报告说明"
)

// Builder turns a report's block list into the entity tree.
type Builder struct{}

func NewBuilder() *Builder { return &Builder{} }

// Build reads every section in report order. Any StructureError aborts the
// whole report.
func (b *Builder) Build(blocks []document.Block) (*entity.Report, error) {
	rep := &entity.Report{BodyStr: document.BodyText(blocks)}

	header, err := readHeader(blocks)
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	rep.Header = header

	personal, err := readPersonalInfo(BodyByFlag(blocks, flagPersonal, flagSummary))
	if err != nil {
		return nil, fmt.Errorf("read personal info: %w", err)
	}
	rep.PersonalInfo = personal

	summary, err := readSummaryInfo(BodyByFlag(blocks, flagSummary, flagCreditDetail))
	if err != nil {
		return nil, fmt.Errorf("read summary info: %w", err)
	}
	rep.SummaryInfo = summary

	rep.CreditDetail = readCreditDetail(BodyByFlag(blocks, flagCreditDetail, flagPublicDetail))
	rep.PublicInfo = readPublicInfo(BodyByFlag(blocks, flagPublic, flagQuery))

	query, err := readQueryRecord(BodyByFlag(blocks, flagQuery, flagReportNotes))
	if err != nil {
		return nil, fmt.Errorf("read query record: %w", err)
	}
	rep.QueryRecord = query
	return rep, nil
}

// needShape fails unless t has at least rows x cols cells.
func needShape(t *document.Table, section string, rows, cols int) error {
	if t.Len() < rows || t.Cols() < cols {
		return common.NewStructureError(section, "want at least %dx%d table, got %dx%d", rows, cols, t.Len(), t.Cols())
	}
	return nil
}

var queryRequestTags = []string{"被查询者姓名", "被查询者证件类型", "被查询者证件号码", "查询操作员", "查询原因"}

// readHeader uses the first two blocks: the report title and the query
// request table. The message header (times, serial) is not printed in the
// narrative layout.
func readHeader(blocks []document.Block) (entity.Header, error) {
	var h entity.Header
	if len(blocks) < 2 || !blocks[1].IsTable() {
		return h, common.NewStructureError("header", "query request table not found")
	}
	t := blocks[1].Table
	if t.Empty() {
		return h, nil
	}
	recs := valuesByTags(t, queryRequestTags)
	if len(recs) == 0 {
		return h, nil
	}
	rs := recs[0]
	h.QueryReq = &entity.QueryRequest{
		Name:        rs["被查询者姓名"],
		CertType:    rs["被查询者证件类型"],
		CertNo:      rs["被查询者证件号码"],
		UserCode:    rs["查询操作员"],
		QueryReason: rs["查询原因"],
	}
	return h, nil
}
