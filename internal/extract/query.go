package extract

import (
	"github.com/joseph-ayodele/pboc-bom/internal/common"
	"github.com/joseph-ayodele/pboc-bom/internal/document"
	"github.com/joseph-ayodele/pboc-bom/internal/entity"
)

func readQueryRecord(body []document.Block) (entity.QueryRecord, error) {
	var q entity.QueryRecord
	summary := SingleTableByFlag(body, "查询记录汇总")
	if summary == nil {
		return q, common.NewStructureError("query summary", "table not found")
	}
	if err := needShape(summary, "query summary", 3, 8); err != nil {
		return q, err
	}
	q.RecordSummary = &entity.QueryRecordSummary{
		LatestMonthQueryorgSumLoanApproval:        summary.At(2, 0),
		LatestMonthQueryorgSumLoanCardApproval:    summary.At(2, 1),
		LatestMonthQueryRecordSumLoanApproval:     summary.At(2, 2),
		LatestMonthQueryRecordSumLoanCardApproval: summary.At(2, 3),
		LatestMonthQueryRecordSumPersonal:         summary.At(2, 4),
		TwoYearQueryRecordSumCollection:           summary.At(2, 5),
		TwoYearQueryRecordSumGuarantee:            summary.At(2, 6),
		TwoYearQueryRecordSumSpecial:              summary.At(2, 7),
	}

	detail := SingleTableByFlag(body, "信贷审批查询记录明细")
	if detail == nil {
		return q, common.NewStructureError("query detail", "table not found")
	}
	q.RecordInfo = []entity.QueryRecordDetail{}
	found := false
	for r := 0; r < detail.Len(); r++ {
		if detail.HasCell(r, "查询日期") {
			found = true
			continue
		}
		if !found {
			continue
		}
		q.RecordInfo = append(q.RecordInfo, entity.QueryRecordDetail{
			QueryDate:   detail.At(r, 1),
			Querier:     detail.At(r, 2),
			QueryReason: detail.At(r, 3),
		})
	}
	return q, nil
}
