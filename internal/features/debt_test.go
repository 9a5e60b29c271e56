package features

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/pboc-bom/constants"
	"github.com/joseph-ayodele/pboc-bom/internal/model"
)

func loanRow(mod func(*model.Account)) model.Account {
	a := model.Account{
		Account:                "X0",
		LoanFrom:               "中国工商银行",
		Type:                   "个人消费贷款",
		LoanType:               "信用免担保",
		SettleType:             constants.SettleUnsettled,
		OpenDate:               time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:                time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		CreditLimit:            12000,
		Balance:                500,
		ScheduledPaymentAmount: 150,
		RemainPaymentCyc:       5,
		LoanTerms:              24,
		UsedCreditLimit:        math.NaN(),
	}
	if mod != nil {
		mod(&a)
	}
	return a
}

func TestMonthlyDebtAmortized(t *testing.T) {
	assert.Equal(t, 150.0, MonthlyDebt(loanRow(nil), DebtAmortized))

	// payment x remaining outside (balance, 2 x balance)
	a := loanRow(func(a *model.Account) { a.RemainPaymentCyc = 20 })
	assert.Equal(t, 500.0, MonthlyDebt(a, DebtAmortized))

	a = loanRow(func(a *model.Account) { a.Balance = 0 })
	assert.Equal(t, 0.0, MonthlyDebt(a, DebtAmortized))

	a = loanRow(func(a *model.Account) { a.SettleType = constants.SettleSettled })
	assert.Equal(t, 0.0, MonthlyDebt(a, DebtTiered))

	a = loanRow(func(a *model.Account) { a.ScheduledPaymentAmount = 0; a.LoanTerms = math.NaN() })
	assert.Equal(t, 12000.0/24, MonthlyDebt(a, DebtAmortized), "730 days is 24 months")

	a = loanRow(func(a *model.Account) {
		a.RemainPaymentCyc = math.NaN()
		a.ScheduledPaymentAmount = 0
		a.LoanTerms = math.NaN()
		a.EndDate = time.Time{}
	})
	assert.InDelta(t, 420.0, MonthlyDebt(a, DebtAmortized), 1e-9)
}

func TestMonthlyDebtSimple(t *testing.T) {
	a := loanRow(func(a *model.Account) { a.LoanType = "抵押担保"; a.ScheduledPaymentAmount = 0 })
	assert.Equal(t, 500.0, MonthlyDebt(a, DebtSimple))

	a = loanRow(func(a *model.Account) { a.RemainPaymentCyc = 2 })
	assert.InDelta(t, 420.0, MonthlyDebt(a, DebtSimple), 1e-9)

	a = loanRow(func(a *model.Account) { a.RemainPaymentCyc = math.NaN() })
	assert.True(t, math.IsNaN(MonthlyDebt(a, DebtSimple)))
}

func TestMonthlyDebtTiered(t *testing.T) {
	cases := []struct {
		lender string
		terms  float64
		rate   float64
	}{
		{"中国工商银行", 12, 0.09},
		{"中国工商银行", 24, 0.049},
		{"中国工商银行", 36, 0.035},
		{"中国工商银行", math.NaN(), 0.035},
		{"招联消费金融有限公司", 6, 0.095},
		{"招联消费金融有限公司", 35, 0.053},
		{"招联消费金融有限公司", 60, 0.04},
		{"招联消费金融有限公司", math.NaN(), 0.04},
	}
	for _, tc := range cases {
		a := loanRow(func(a *model.Account) {
			a.LoanFrom = tc.lender
			a.LoanTerms = tc.terms
			a.RemainPaymentCyc = 100
		})
		assert.InDelta(t, tc.rate*12000, MonthlyDebt(a, DebtTiered), 1e-9, "%s %v", tc.lender, tc.terms)
	}
}

func TestDebtClass(t *testing.T) {
	assert.Equal(t, "bank_period", debtClass(loanRow(nil)))
	assert.Equal(t, "nbank_nperiod", debtClass(loanRow(func(a *model.Account) {
		a.LoanFrom = "某小额贷款公司"
		a.ScheduledPaymentAmount = 0
	})))
}

func TestDebtTotals(t *testing.T) {
	loans := []model.Account{
		loanRow(nil),
		loanRow(func(a *model.Account) {
			a.Account = "X1"
			a.LoanFrom = "某小额贷款公司"
			a.RemainPaymentCyc = 100
		}),
	}
	cards := []model.Account{
		{Account: "C1", AccountState: constants.StateNormal, UsedCreditLimit: 3000},
		{Account: "C1", AccountState: constants.StateNormal, UsedCreditLimit: 3000},
		{Account: "C2", AccountState: constants.StateInactive, UsedCreditLimit: 5000},
	}
	r := Debt(loans, cards, nil, DebtTiered)
	assert.InDelta(t, 150+0.053*12000+300, r.Total, 1e-9)
	assert.Equal(t, []string{"pboc_debt_ln_bank_period", "pboc_debt_ln_nbank_nperiod", "pboc_debt_loan_card"}, r.Parts.Keys())
	v, _ := r.Parts.Get("pboc_debt_loan_card")
	assert.Equal(t, 300.0, v.Num)

	empty := Debt(nil, nil, nil, DebtAmortized)
	assert.Equal(t, 0.0, empty.Total)
	assert.Zero(t, empty.Parts.Len())
}

func TestCountsTowardDebt(t *testing.T) {
	cases := []struct {
		name      string
		lender    string
		typ       string
		guarantee string
		general   bool
		bank      bool
	}{
		{"non-bank unsecured", "某小额贷款公司", "个人消费贷款", "信用免担保", true, true},
		{"non-bank secured", "某小额贷款公司", "个人消费贷款", "抵押担保", false, false},
		{"bank mortgage", "中国工商银行", "个人住房贷款", "抵押担保", false, false},
		{"bank credit", "中国工商银行", "个人消费贷款", "信用免担保", true, true},
		{"bank plain guarantee", "中国工商银行", "个人消费贷款", "保证", true, true},
		{"combined with guarantee, housing", "中国工商银行", "个人住房贷款", "组合含保证", false, false},
		{"combined with guarantee, car", "中国工商银行", "个人汽车贷款", "组合含保证", false, false},
		{"combined with guarantee, other", "中国工商银行", "其他贷款", "组合含保证", true, true},
		{"combined without guarantee", "中国工商银行", "个人经营性贷款", "组合不含保证", false, false},
		{"combined without guarantee, other", "中国工商银行", "其他贷款", "组合不含保证", false, true},
		{"farmer group", "中国农业银行", "个人住房贷款", "农户联保", true, true},
		{"fund centre housing", "某市住房公积金中心", "住房公积金贷款", "其他", false, true},
		{"bank other housing", "中国工商银行", "个人商用房贷款", "其他", false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := loanRow(func(a *model.Account) {
				a.LoanFrom = tc.lender
				a.Type = tc.typ
				a.LoanType = tc.guarantee
			})
			assert.Equal(t, tc.general, CountsTowardDebt(a))
			assert.Equal(t, tc.bank, CountsTowardBankDebt(a))
		})
	}
}

func TestCardDebt(t *testing.T) {
	assert.Equal(t, 100.0, CardDebt(model.Account{AccountState: constants.StateNormal, UsedCreditLimit: 1000}))
	assert.Equal(t, 0.0, CardDebt(model.Account{AccountState: constants.StateClosed, UsedCreditLimit: 1000}))
}
