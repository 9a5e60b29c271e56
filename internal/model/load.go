package model

import (
	"fmt"
	"math"

	"github.com/joseph-ayodele/pboc-bom/constants"
	"github.com/joseph-ayodele/pboc-bom/internal/coerce"
	"github.com/joseph-ayodele/pboc-bom/internal/common"
)

// loadNarrative builds the rows of creditDetail.<kind> from the
// head-of-record statements.
func (c *Credit) loadNarrative(kind Kind) ([]Account, error) {
	list := coerce.LookupList(c.Raw, "creditDetail,"+kind.String())
	out := []Account{}
	for i, li := range list {
		st, err := parseStatement(coerce.LookupString(li, "statements", ""), kind)
		if err != nil {
			return nil, fmt.Errorf("%s %d: %w", kind, i, err)
		}
		base, err := c.narrativeBase(li, i, st)
		if err != nil {
			return nil, fmt.Errorf("%s %d: %w", kind, i, err)
		}

		events, err := Latest24Overdue(coerce.LookupString(li, "latest24Date", ""), coerce.LookupString(li, "latest24State", ""))
		if err != nil {
			return nil, fmt.Errorf("%s %d: %w", kind, i, err)
		}
		details := append(tableDetails(coerce.LookupList(li, "overdueRecord,overdueRecordDetail")), stateDetails(events)...)
		rows, err := explode(base, kind, details, c.warn)
		if err != nil {
			return nil, err
		}
		for j := range rows {
			rows[j].derive(c.QueryTime, kind, true)
		}
		out = append(out, rows...)
	}
	return out, nil
}

func (c *Credit) narrativeBase(li any, index int, st statement) (Account, error) {
	a := Account{
		Index:         index,
		Account:       fmt.Sprintf("%s%d", st.accountNo, index),
		Statements:    coerce.LookupString(li, "statements", ""),
		LoanFrom:      st.lender,
		Type:          st.purpose,
		LoanType:      st.guarantee,
		AccountType:   st.currency,
		AccountState:  st.state,
		State:         coerce.LookupString(li, "state", constants.StateNormal),
		Class5State:   coerce.LookupString(li, "class5State", ""),
		LoanTerms:     st.terms,
		Latest24State: coerce.LookupString(li, "latest24State", ""),
	}
	if st.settled {
		a.SettleType = constants.StateSettledText
	}
	a.LoanItem = LoanItem(a.Type, a.LoanFrom)

	var err error
	if a.CreditLimit, err = coerce.ParseAmount(st.creditLimit); err != nil {
		return a, err
	}
	if a.OpenDate, err = coerce.ParseDate(st.openDate); err != nil {
		return a, err
	}
	if a.UpToDate, err = coerce.ParseDate(st.upToDate); err != nil {
		return a, err
	}
	if a.EndDate, err = coerce.ParseDate(st.endDate); err != nil {
		return a, err
	}
	if a.ScheduledPaymentDate, err = coerce.ParseDate(coerce.LookupString(li, "scheduledPaymentDate", "")); err != nil {
		return a, err
	}
	if err := readAmounts(li, []amountField{
		{"currOverdueAmount", &a.CurrOverdueAmount},
		{"overdue31To60Amount", &a.Overdue31To60Amount},
		{"overdue61To90Amount", &a.Overdue61To90Amount},
		{"overdue91To180Amount", &a.Overdue91To180Amount},
		{"overdueOver180Amount", &a.OverdueOver180Amount},
		{"scheduledPaymentAmount", &a.ScheduledPaymentAmount},
		{"actualPaymentAmount", &a.ActualPaymentAmount},
		{"usedCreditLimitAmount", &a.UsedCreditLimit},
		{"usedHighestAmount", &a.UsedHighestAmount},
		{"latest6MonthUsedAvgAmount", &a.Latest6MonthUsedAvgAmount},
		{"balance", &a.Balance},
	}); err != nil {
		return a, err
	}
	a.CurrOverdueCyc = overdueCycle(coerce.LookupString(li, "currOverdueCyc", "0"))

	remain, ok, err := cycle(coerce.LookupString(li, "remainPaymentCyc", "0"))
	if err != nil {
		return a, err
	}
	if !ok {
		c.warn(common.MissingDataWarning{Field: "remainPaymentCyc", Record: a.Account})
	}
	a.RemainPaymentCyc = remain
	return a, nil
}

// loadStructured builds rows from the pre-parsed layout: loans carry
// contractInfo/currAccountInfo, cards carry awardCreditInfo/repayInfo, and
// both keep overdue events under latest5YearOverdueRecord.
func (c *Credit) loadStructured(kind Kind) ([]Account, error) {
	key := map[Kind]string{KindLoan: "loan", KindCard: "loancard", KindStandardCard: "standardloancard"}[kind]
	list := coerce.LookupList(c.Raw, "creditDetail,"+key)
	out := []Account{}
	for i, li := range list {
		var (
			base Account
			err  error
		)
		if kind == KindLoan {
			base, err = structuredLoan(li, i)
		} else {
			base, err = structuredCard(li, i)
		}
		if err != nil {
			return nil, fmt.Errorf("%s %d: %w", key, i, err)
		}
		if err := readAmounts(li, []amountField{
			{"currOverdue,currOverdueAmount", &base.CurrOverdueAmount},
			{"currOverdue,overdue31To60Amount", &base.Overdue31To60Amount},
			{"currOverdue,overdue61To90Amount", &base.Overdue61To90Amount},
			{"currOverdue,overdue91To180Amount", &base.Overdue91To180Amount},
			{"currOverdue,overdueOver180Amount", &base.OverdueOver180Amount},
		}); err != nil {
			return nil, fmt.Errorf("%s %d: %w", key, i, err)
		}
		base.CurrOverdueCyc = overdueCycle(coerce.LookupString(li, "currOverdue,currOverdueCyc", "0"))
		base.State = coerce.LookupString(li, "state", constants.StateNormal)

		details := tableDetails(coerce.LookupList(li, "latest5YearOverdueRecord,overdueRecord"))
		rows, err := explode(base, kind, details, c.warn)
		if err != nil {
			return nil, err
		}
		for j := range rows {
			rows[j].derive(c.QueryTime, kind, false)
		}
		out = append(out, rows...)
	}
	return out, nil
}

func structuredLoan(li any, index int) (Account, error) {
	a := Account{
		Index:       index,
		Account:     fmt.Sprintf("%s%d", coerce.LookupString(li, "contractInfo,account", ""), index),
		LoanFrom:    coerce.LookupString(li, "contractInfo,financeOrg", ""),
		Type:        coerce.LookupString(li, "contractInfo,type", ""),
		LoanType:    NormalizeGuarantee(coerce.LookupString(li, "contractInfo,guaranteeType", "")),
		AccountType: coerce.LookupString(li, "contractInfo,currency", ""),
		Class5State: coerce.LookupString(li, "currAccountInfo,class5State", ""),
		LoanTerms:   math.NaN(),
	}
	a.LoanItem = LoanItemLegacy(a.Type)

	var err error
	if a.OpenDate, err = coerce.ParseDate(coerce.LookupString(li, "contractInfo,openDate", "")); err != nil {
		return a, err
	}
	if a.EndDate, err = coerce.ParseDate(coerce.LookupString(li, "contractInfo,endDate", "")); err != nil {
		return a, err
	}
	if a.ScheduledPaymentDate, err = coerce.ParseDate(coerce.LookupString(li, "currAccountInfo,scheduledPaymentDate", "")); err != nil {
		return a, err
	}
	if err := readAmounts(li, []amountField{
		{"contractInfo,creditLimitAmount", &a.CreditLimit},
		{"currAccountInfo,balance", &a.Balance},
		{"currAccountInfo,scheduledPaymentAmount", &a.ScheduledPaymentAmount},
		{"currAccountInfo,actualPaymentAmount", &a.ActualPaymentAmount},
	}); err != nil {
		return a, err
	}
	if terms := coerce.LookupString(li, "contractInfo,paymentCyc", ""); terms != "" {
		if a.LoanTerms, err = coerce.ParseFloat(terms); err != nil {
			return a, err
		}
	}
	if a.RemainPaymentCyc, _, err = cycle(coerce.LookupString(li, "currAccountInfo,remainPaymentCyc", "0")); err != nil {
		return a, err
	}
	a.SettleType = constants.SettleSettled
	if a.Balance > 0 {
		a.SettleType = constants.SettleUnsettled
	}
	return a, nil
}

func structuredCard(li any, index int) (Account, error) {
	a := Account{
		Index:            index,
		Account:          fmt.Sprintf("%s%d", coerce.LookupString(li, "awardCreditInfo,account", ""), index),
		LoanFrom:         coerce.LookupString(li, "awardCreditInfo,financeOrg", ""),
		LoanType:         NormalizeGuarantee(coerce.LookupString(li, "awardCreditInfo,guaranteeType", "")),
		AccountType:      coerce.LookupString(li, "awardCreditInfo,currency", ""),
		AccountState:     coerce.LookupString(li, "state", constants.StateNormal),
		LoanItem:         constants.ItemOther,
		LoanTerms:        math.NaN(),
		RemainPaymentCyc: math.NaN(),
		Latest24State:    coerce.LookupString(li, "latest24MonthPaymentState,latest24State", ""),
	}
	var err error
	if a.OpenDate, err = coerce.ParseDate(coerce.LookupString(li, "awardCreditInfo,openDate", "")); err != nil {
		return a, err
	}
	if a.ScheduledPaymentDate, err = coerce.ParseDate(coerce.LookupString(li, "repayInfo,scheduledPaymentDate", "")); err != nil {
		return a, err
	}
	if a.UpToDate, err = coerce.ParseDate(coerce.LookupString(li, "repayInfo,stateEndDate", "")); err != nil {
		return a, err
	}
	err = readAmounts(li, []amountField{
		{"awardCreditInfo,creditLimitAmount", &a.CreditLimit},
		{"repayInfo,usedCreditLimitAmount", &a.UsedCreditLimit},
		{"repayInfo,usedHighestAmount", &a.UsedHighestAmount},
		{"repayInfo,latest6MonthUsedAvgAmount", &a.Latest6MonthUsedAvgAmount},
		{"repayInfo,scheduledPaymentAmount", &a.ScheduledPaymentAmount},
		{"repayInfo,actualPaymentAmount", &a.ActualPaymentAmount},
	})
	return a, err
}
