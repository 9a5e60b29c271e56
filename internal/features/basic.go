package features

import (
	"errors"
	"strings"
)

var educationLevels = []struct {
	kw    string
	level float64
}{
	{"小学", 1},
	{"初中", 2},
	{"中等专业学校或中等技术学校", 3},
	{"高中", 4},
	{"大学本科", 5},
	{"大学专科", 6},
	{"研究生", 7},
}

// EducationLevel ranks the printed education text; unknown is 0.
func EducationLevel(s string) float64 {
	if s == "" || strings.Contains(s, "--") {
		return 0
	}
	for _, e := range educationLevels {
		if strings.Contains(s, e.kw) {
			return e.level
		}
	}
	return 0
}

func educationGroup(in Input) (*Map, error) {
	m := NewMap()
	m.SetNum("education_level", EducationLevel(in.Credit.Basic.EduLevel))
	return m, nil
}

// cardUsageGroup reads the credit card share summary: used and six-month
// average amounts over the total limit, 0 without a limit.
func cardUsageGroup(in Input) (*Map, error) {
	c := in.Credit
	limit, err := c.Summary("shareAndDebt,unDestroyLoanCard,creditLimit", "0")
	if err != nil {
		return nil, err
	}
	used, err := c.Summary("shareAndDebt,unDestroyLoanCard,usedCreditLimit", "0")
	if err != nil {
		return nil, err
	}
	avg6, err := c.Summary("shareAndDebt,unDestroyLoanCard,latest6MonthUsedAvgAmount", "0")
	if err != nil {
		return nil, err
	}
	m := NewMap()
	if limit > 0 {
		m.SetNum("pboc_lc_ucl_pct_lf", used/limit)
		m.SetNum("pboc_lc_uclj6_pct_lf", avg6/limit)
	} else {
		m.SetNum("pboc_lc_ucl_pct_lf", 0)
		m.SetNum("pboc_lc_uclj6_pct_lf", 0)
	}
	return m, nil
}

func summaryGroup(in Input) (*Map, error) {
	m := NewMap()
	for _, f := range []struct{ key, field string }{
		{"pboc_ln_due_amt1m_max_lf", "loanSumHighestOverdueAmountPerMon"},
		{"pboc_lc_due_amt1m_max_lf", "loanCardSumHighestOverdueAmountPerMon"},
		{"pboc_slc_due_amt1m_max_lf", "standardLoanCardSumHighestOverdueAmountPerMon"},
	} {
		v, err := in.Credit.Summary("overdueAndFellBack,overdueSummary,"+f.field, "0")
		if err != nil {
			return nil, err
		}
		m.SetNum(f.key, v)
	}
	return m, nil
}

// CreditLimit estimates the lendable amount from the monthly debt load.
func CreditLimit(debt float64) float64 {
	return (0.75*1000000 - debt) / 0.00424
}

func creditLimitGroup(in Input) (*Map, error) {
	v, ok := in.Prior.Get(KeyDebt004)
	if !ok {
		return nil, errors.New("pboc_debt_loan_004 not derived")
	}
	m := NewMap()
	m.SetNum("credit_limit", CreditLimit(v.Num))
	return m, nil
}
