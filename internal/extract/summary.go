package extract

import (
	"github.com/joseph-ayodele/pboc-bom/internal/document"
	"github.com/joseph-ayodele/pboc-bom/internal/entity"
)

func readSummaryInfo(body []document.Block) (entity.SummaryInfo, error) {
	var s entity.SummaryInfo
	var err error
	if s.CreditCue, err = readCreditCue(SingleTableByFlag(body, "信用提示")); err != nil {
		return s, err
	}
	if s.OverdueAndFellBack, err = readOverdueAndFellBack(body); err != nil {
		return s, err
	}
	if s.ShareAndDebt, err = readShareAndDebt(body); err != nil {
		return s, err
	}
	return s, nil
}

func readCreditCue(t *document.Table) (*entity.CreditCue, error) {
	if t == nil {
		return nil, nil
	}
	if err := needShape(t, "credit cue", 2, 10); err != nil {
		return nil, err
	}
	return &entity.CreditCue{
		PerHouseLoanCount:              t.At(1, 0),
		PerBusinessHouseLoanCount:      t.At(1, 1),
		OtherLoanCount:                 t.At(1, 2),
		FirstLoanOpenMonth:             t.At(1, 3),
		LoanCardCount:                  t.At(1, 4),
		FirstLoanCardOpenMonth:         t.At(1, 5),
		StandardLoanCardCount:          t.At(1, 6),
		FirstStandardLoanCardOpenMonth: t.At(1, 7),
		AnnounceCount:                  t.At(1, 8),
		DissentCount:                   t.At(1, 9),
	}, nil
}

func readOverdueAndFellBack(body []document.Block) (*entity.OverdueAndFellBack, error) {
	out := &entity.OverdueAndFellBack{}
	if t := SingleTableByFlag(body, "逾期及违约信息概要"); t != nil {
		if err := needShape(t, "fell back summary", 3, 6); err != nil {
			return nil, err
		}
		out.FellBackSummary = &entity.FellBackSummary{
			FellBackDebtSumCount:       t.At(2, 0),
			FellBackDebtSumBalance:     t.At(2, 1),
			AssetDispositionSumCount:   t.At(2, 2),
			AssetDispositionSumBalance: t.At(2, 3),
			AssureerRepaySumCount:      t.At(2, 4),
			AssureerRepaySumBalance:    t.At(2, 5),
		}
	}
	if t := SingleTableByFlag(body, "逾期（透支）信息汇总"); t != nil {
		if err := needShape(t, "overdue summary", 3, 12); err != nil {
			return nil, err
		}
		out.OverdueSummary = &entity.OverdueSummary{
			LoanSumCount:                                  t.At(2, 0),
			LoanSumMonths:                                 t.At(2, 1),
			LoanSumHighestOverdueAmountPerMon:             t.At(2, 2),
			LoanSumMaxDuration:                            t.At(2, 3),
			LoanCardSumCount:                              t.At(2, 4),
			LoanCardSumMonths:                             t.At(2, 5),
			LoanCardSumHighestOverdueAmountPerMon:         t.At(2, 6),
			LoanCardSumMaxDuration:                        t.At(2, 7),
			StandardLoanCardSumCount:                      t.At(2, 8),
			StandardLoanCardSumMonths:                     t.At(2, 9),
			StandardLoanCardSumHighestOverdueAmountPerMon: t.At(2, 10),
			StandardLoanCardSumMaxDuration:                t.At(2, 11),
		}
	}
	return out, nil
}

func readShareAndDebt(body []document.Block) (entity.ShareAndDebt, error) {
	var s entity.ShareAndDebt
	if t := SingleTableByFlag(body, "未结清贷款信息汇总"); t != nil {
		if err := needShape(t, "unpaid loan summary", 2, 6); err != nil {
			return s, err
		}
		s.UnPaidLoan = &entity.ShareAndDebtCommon{
			FinanceCorpCount:          t.At(1, 0),
			FinanceOrgCount:           t.At(1, 1),
			AccountCount:              t.At(1, 2),
			CreditLimit:               t.At(1, 3),
			Balance:                   t.At(1, 4),
			Latest6MonthUsedAvgAmount: t.At(1, 5),
		}
	}
	var err error
	if s.UnDestroyLoanCard, err = readCardShare(SingleTableByFlag(body, "未销户贷记卡信息汇总"), "card summary"); err != nil {
		return s, err
	}
	if s.UnDestroyStandardLoanCard, err = readCardShare(SingleTableByFlag(body, "未销户准贷记卡信息汇总"), "standard card summary"); err != nil {
		return s, err
	}
	return s, nil
}

func readCardShare(t *document.Table, section string) (*entity.ShareAndDebtCommon, error) {
	if t == nil {
		return nil, nil
	}
	if err := needShape(t, section, 2, 8); err != nil {
		return nil, err
	}
	return &entity.ShareAndDebtCommon{
		FinanceCorpCount:          t.At(1, 0),
		FinanceOrgCount:           t.At(1, 1),
		AccountCount:              t.At(1, 2),
		CreditLimit:               t.At(1, 3),
		MaxCreditLimitPerOrg:      t.At(1, 4),
		MinCreditLimitPerOrg:      t.At(1, 5),
		UsedCreditLimit:           t.At(1, 6),
		Latest6MonthUsedAvgAmount: t.At(1, 7),
	}, nil
}
