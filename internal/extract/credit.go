package extract

import (
	"strings"

	"github.com/joseph-ayodele/pboc-bom/internal/document"
	"github.com/joseph-ayodele/pboc-bom/internal/entity"
)

func readCreditDetail(body []document.Block) entity.CreditDetail {
	return entity.CreditDetail{
		AssurerRepay:     readAssurerRepay(body),
		GuaranteeInfo:    readGuaranteeInfo(body),
		Loan:             readAccounts(BodyByFlag(body, "贷款", "贷记卡"), loanLayout),
		LoanCard:         readAccounts(BodyByFlag(body, "）贷记卡", "）准贷记卡"), cardLayout),
		StandardLoanCard: readAccounts(BodyByFlag(body, "）准贷记卡", ""), standardCardLayout),
	}
}

func readAssurerRepay(body []document.Block) []entity.AssurerRepay {
	t := SingleTableByFlag(body, "）保证人代偿信息")
	if t == nil {
		return nil
	}
	var out []entity.AssurerRepay
	for r := 0; r < t.Len(); r++ {
		if t.HasCell(r, "代偿机构") {
			continue
		}
		out = append(out, entity.AssurerRepay{
			Org:                            t.At(r, 1),
			AccumulativeAssurerRepayAmount: t.At(r, 2),
			RecentAssurerRepayDate:         t.At(r, 3),
			RecentRepayDate:                t.At(r, 4),
			Balance:                        t.At(r, 5),
		})
	}
	return out
}

const guaranteeFlag = "对外贷款担保信息"

func readGuaranteeInfo(body []document.Block) *entity.GuaranteeInfo {
	t := SingleTableByFlag(body, guaranteeFlag)
	if t == nil {
		return nil
	}
	info := &entity.GuaranteeInfo{GuaranteeFormat: guaranteeFlag, Guarantee: []entity.Guarantee{}}
	for r := 0; r < t.Len(); r++ {
		if strings.Contains(t.At(r, 0), "编号") {
			continue
		}
		info.Guarantee = append(info.Guarantee, entity.Guarantee{
			OrganName:        t.At(r, 1),
			ContractMoney:    t.At(r, 2),
			BeginDate:        t.At(r, 3),
			EndDate:          t.At(r, 4),
			GuaranteeMoney:   t.At(r, 5),
			GuaranteeBalance: t.At(r, 6),
			Class5State:      t.At(r, 7),
			BillingDate:      t.At(r, 7),
		})
	}
	return info
}
