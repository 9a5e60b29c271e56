package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/pboc-bom/internal/coerce"
	"github.com/joseph-ayodele/pboc-bom/internal/common"
	"github.com/joseph-ayodele/pboc-bom/internal/document"
	dt "github.com/joseph-ayodele/pboc-bom/internal/document/doctest"
	"github.com/joseph-ayodele/pboc-bom/internal/entity"
)

func buildSample(t *testing.T) *entity.Report {
	t.Helper()
	rep, err := NewBuilder().Build(dt.SampleReport())
	require.NoError(t, err)
	return rep
}

func TestBodyByFlag(t *testing.T) {
	blocks := []document.Block{
		dt.Text("a"), dt.Text("start here"), dt.Text(""), dt.Tbl(dt.Row("x")), dt.Text("the end"), dt.Text("after"),
	}

	got := BodyByFlag(blocks, "start", "end")
	require.Len(t, got, 2)
	assert.Equal(t, "start here", got[0].Text)
	assert.True(t, got[1].IsTable())

	assert.Len(t, BodyByFlag(blocks, "start", ""), 4)
	assert.Empty(t, BodyByFlag(blocks, "missing", "end"))
	// an end flag before the start flag closes the section
	assert.Empty(t, BodyByFlag(blocks, "after", "a"))
}

func TestSingleTableByFlag(t *testing.T) {
	blocks := []document.Block{
		dt.Text("身份信息"), dt.Text(" "), dt.Tbl(dt.Row("性别")),
		dt.Text("配偶信息"), dt.Text("无"), dt.Tbl(dt.Row("姓名")),
	}
	tb := SingleTableByFlag(blocks, "身份信息")
	require.NotNil(t, tb)
	assert.Equal(t, "性别", tb.At(0, 0))
	assert.Nil(t, SingleTableByFlag(blocks, "配偶信息"))
	assert.Nil(t, SingleTableByFlag(blocks, "职业信息"))
}

func TestBuilder_HeaderAndPersonal(t *testing.T) {
	rep := buildSample(t)

	require.NotNil(t, rep.Header.QueryReq)
	assert.Equal(t, "张三", rep.Header.QueryReq.Name)
	assert.Equal(t, "贷后管理", rep.Header.QueryReq.QueryReason)
	assert.Empty(t, rep.Header.MessageHeader.QueryTime)

	id := rep.PersonalInfo.Identity
	require.NotNil(t, id)
	assert.Equal(t, "男性", id.Gender)
	assert.Equal(t, "1980.01.01", id.Birthday)
	assert.Equal(t, "学士", id.EduDegree)
	assert.Equal(t, "北京市朝阳区", id.PostAddress)
	assert.Equal(t, "北京市海淀区", id.RegisteredAddress)

	require.Len(t, rep.PersonalInfo.Residence, 2)
	assert.Equal(t, "按揭", rep.PersonalInfo.Residence[0].ResidenceType)
	require.NotNil(t, rep.PersonalInfo.Spouse)
	assert.Equal(t, "李四", rep.PersonalInfo.Spouse.Name)

	require.Len(t, rep.PersonalInfo.Professional, 1)
	p := rep.PersonalInfo.Professional[0]
	assert.Equal(t, "北京某公司", p.Employer)
	assert.Equal(t, "北京市朝阳区", p.EmployerAddress)
	assert.Equal(t, "专业技术人员", p.Occupation)
	assert.Equal(t, "2019.01.01", p.GetTime)
}

func TestBuilder_Summary(t *testing.T) {
	s := buildSample(t).SummaryInfo

	require.NotNil(t, s.CreditCue)
	assert.Equal(t, "2", s.CreditCue.LoanCardCount)
	require.NotNil(t, s.OverdueAndFellBack)
	require.NotNil(t, s.OverdueAndFellBack.OverdueSummary)
	assert.Equal(t, "3,000", s.OverdueAndFellBack.OverdueSummary.LoanSumHighestOverdueAmountPerMon)
	assert.Equal(t, "3", s.OverdueAndFellBack.OverdueSummary.LoanCardSumMaxDuration)
	require.NotNil(t, s.ShareAndDebt.UnPaidLoan)
	assert.Equal(t, "320,000", s.ShareAndDebt.UnPaidLoan.Balance)
	require.NotNil(t, s.ShareAndDebt.UnDestroyLoanCard)
	assert.Equal(t, "12,000", s.ShareAndDebt.UnDestroyLoanCard.UsedCreditLimit)
	require.NotNil(t, s.ShareAndDebt.UnDestroyStandardLoanCard)
}

func TestBuilder_Loans(t *testing.T) {
	cd := buildSample(t).CreditDetail
	require.Len(t, cd.Loan, 2)

	house := cd.Loan[0]
	assert.Equal(t, dt.HouseLoanStatement, house.Statements)
	assert.Equal(t, "正常", house.State)
	assert.Equal(t, "320,000", house.Balance)
	assert.Equal(t, "158", house.RemainPaymentCyc)
	assert.Equal(t, "2019.09.20", house.RecentPayDate)
	assert.Equal(t, "0", house.CurrOverdueCyc)
	assert.Equal(t, "NNNNNNNNNNNNNNNNNNNNN1NN", house.Latest24State)
	assert.Equal(t, "2017年10月-2019年09月的还款记录", house.Latest24Date)

	require.NotNil(t, house.OverdueRecord)
	assert.Equal(t, []entity.OverdueRecordDetail{
		{Month: "2018.03", LastMonths: "2", Amount: "3,000"},
		{Month: "2018.02", LastMonths: "1", Amount: "1,500"},
	}, house.OverdueRecord.OverdueRecordDetail)

	require.Len(t, house.Specials, 1)
	assert.Equal(t, "2016.05.20", house.Specials[0].Date)
	assert.Equal(t, "100,000", house.Specials[0].Amount)

	settled := cd.Loan[1]
	assert.Equal(t, "结清", settled.State)
	assert.Nil(t, settled.OverdueRecord)
	assert.Empty(t, settled.Latest24State)
}

func TestBuilder_Cards(t *testing.T) {
	cd := buildSample(t).CreditDetail
	require.Len(t, cd.LoanCard, 2)

	rmb := cd.LoanCard[0]
	assert.Equal(t, "正常", rmb.State)
	assert.Equal(t, "12,000", rmb.UsedCreditLimitAmount)
	assert.Equal(t, "30,000", rmb.UsedHighestAmount)
	assert.Equal(t, "2019.09.05", rmb.ScheduledPaymentDate)
	assert.Equal(t, "2019.09.01", rmb.RecentPayDate)
	require.NotNil(t, rmb.OverdueRecord)
	assert.Equal(t, "2017.01", rmb.OverdueRecord.OverdueRecordDetail[1].Month)

	assert.Equal(t, "未激活", cd.LoanCard[1].State)

	require.Len(t, cd.StandardLoanCard, 1)
	std := cd.StandardLoanCard[0]
	assert.Equal(t, dt.StandardCardStatement, std.Statements)
	assert.Equal(t, "2019.08.05", std.RecentPayDate)
	assert.Equal(t, "0", std.Due180pAmount)

	require.NotNil(t, cd.GuaranteeInfo)
	require.Len(t, cd.GuaranteeInfo.Guarantee, 1)
	assert.Equal(t, "中国农业银行", cd.GuaranteeInfo.Guarantee[0].OrganName)
	assert.Empty(t, cd.AssurerRepay)
}

func TestBuilder_PublicAndQuery(t *testing.T) {
	rep := buildSample(t)

	require.Len(t, rep.PublicInfo.AccFund, 1)
	fund := rep.PublicInfo.AccFund[0]
	assert.Equal(t, "北京", fund.Area)
	assert.Equal(t, "2,000", fund.Pay)
	assert.Equal(t, "北京某公司", fund.OrganName)
	assert.Equal(t, "2019.09.01", fund.GetTime)

	require.NotNil(t, rep.QueryRecord.RecordSummary)
	assert.Equal(t, "1", rep.QueryRecord.RecordSummary.TwoYearQueryRecordSumCollection)
	require.Len(t, rep.QueryRecord.RecordInfo, 4)
	assert.Equal(t, entity.QueryRecordDetail{
		QueryDate:   "2019.08.15",
		Querier:     "招联消费金融有限公司/op2",
		QueryReason: "贷款审批",
	}, rep.QueryRecord.RecordInfo[1])
}

func TestBuilder_StructureErrors(t *testing.T) {
	_, err := NewBuilder().Build([]document.Block{dt.Text("个人信用报告"), dt.Text("no table")})
	var se *common.StructureError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "header", se.Section)

	blocks := dt.SampleReport()
	for i, b := range blocks {
		if b.IsText() && b.Text == "身份信息" {
			blocks[i+1] = dt.Tbl(dt.Row("性别", "出生日期"), dt.Row("男性", "1980.01.01"))
		}
	}
	_, err = NewBuilder().Build(blocks)
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "identity", se.Section)
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	var noQuery []document.Block
	for _, b := range dt.SampleReport() {
		if b.IsText() && b.Text == "查询记录汇总" {
			break
		}
		noQuery = append(noQuery, b)
	}
	_, err = NewBuilder().Build(noQuery)
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "query summary", se.Section)
}

func TestProfessional_OccupationWithoutEmployer(t *testing.T) {
	tb := document.NewTable([][]string{
		{"编号", "职业", "行业", "职务", "职称", "进入本单位年份", "信息更新日期"},
		{"1", "专业技术人员", "信息技术", "一般员工", "中级", "2010", "2019.01.01"},
	})
	_, err := readProfessional(tb)
	var se *common.StructureError
	assert.True(t, errors.As(err, &se))
}

func TestAssurerRepay(t *testing.T) {
	body := []document.Block{
		dt.Text("（四）保证人代偿信息"),
		dt.Tbl(
			dt.Row("编号", "代偿机构", "累计代偿金额", "最近一次代偿日期", "最近一次还款日期", "余额"),
			dt.Row("1", "某担保公司", "10,000", "2017.01.01", "2017.06.01", "2,000"),
		),
	}
	got := readAssurerRepay(body)
	require.Len(t, got, 1)
	assert.Equal(t, "某担保公司", got[0].Org)
	assert.Equal(t, "2,000", got[0].Balance)
}

func TestSchema(t *testing.T) {
	tree, err := coerce.Normalize(buildSample(t))
	require.NoError(t, err)
	assert.Equal(t, LayoutNarrative, DetectLayout(tree))
	assert.NoError(t, ValidateTree(tree, LayoutNarrative))

	m := tree.(map[string]any)
	loans := m["creditDetail"].(map[string]any)["loan"].([]any)
	delete(loans[0].(map[string]any), "statements")
	err = ValidateTree(tree, LayoutNarrative)
	var se *common.StructureError
	require.True(t, errors.As(err, &se))

	structured := map[string]any{
		"creditDetail": map[string]any{
			"loan":     []any{map[string]any{"contractInfo": map[string]any{"openDate": "2015.01.01"}}},
			"loancard": []any{map[string]any{"awardCreditInfo": map[string]any{"openDate": "2016.01.01"}}},
		},
	}
	assert.Equal(t, LayoutStructured, DetectLayout(structured))
	assert.NoError(t, ValidateTree(structured, LayoutStructured))
	assert.Error(t, ValidateTree(map[string]any{"creditDetail": map[string]any{"loan": []any{map[string]any{}}}}, LayoutStructured))
}

func TestDocxReader_Read(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.docx")
	require.NoError(t, os.WriteFile(path, dt.Docx(dt.SampleReport()), 0o644))

	res, err := NewDocxReader(nil).Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, len(dt.SampleReport()), len(res.Blocks))
	assert.Positive(t, res.Tables)

	rep, err := NewBuilder().Build(res.Blocks)
	require.NoError(t, err)
	assert.Len(t, rep.CreditDetail.Loan, 2)
	assert.Len(t, rep.QueryRecord.RecordInfo, 4)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewDocxReader(nil).Read(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}
