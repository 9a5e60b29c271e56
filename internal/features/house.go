package features

import (
	"math"
	"strings"

	"github.com/joseph-ayodele/pboc-bom/constants"
	"github.com/joseph-ayodele/pboc-bom/internal/model"
)

const (
	minHouseRepayMonths = 6
	minHousePayment     = 2000
	// monthly payment multiplier for every qualifying repayment length
	houseRepayCoefficient = 8
)

func mortgageLender(lender string) bool {
	return strings.Contains(lender, "银行") || strings.Contains(lender, "公积金中心")
}

// HouseLoanStrict is the strict mortgage qualification.
func HouseLoanStrict(a model.Account) bool {
	if !mortgageLender(a.LoanFrom) {
		return false
	}
	g := a.LoanType
	switch {
	case secured(g):
		return containsAny(a.Type, listedPurposes[:5]) || a.LoanTerms >= 96
	case strings.Contains(g, "组合含保证"):
		return containsAny(a.Type, housingPurposes)
	case strings.Contains(g, "组合不含保证"):
		return containsAny(a.Type, listedPurposes)
	case strings.Contains(g, "保证"):
		return strings.Contains(a.Type, "住房公积金贷款")
	default:
		return containsAny(a.Type, housingPurposes)
	}
}

// HouseLoanRelaxed is the relaxed mortgage qualification.
func HouseLoanRelaxed(a model.Account) bool {
	if !mortgageLender(a.LoanFrom) {
		return false
	}
	if a.LoanType == "保证" {
		return strings.Contains(a.Type, "住房公积金贷款")
	}
	return containsAny(a.Type, housingPurposes)
}

// houseAdmitted requires an open, long, installment-paid loan. An unknown
// term does not exclude the loan.
func houseAdmitted(a model.Account) bool {
	if a.SettleType == constants.SettleSettled {
		return false
	}
	if a.LoanTerms <= 24 {
		return false
	}
	return installment(a)
}

// RepayMonths counts the months of repayment history: the 24-month state
// from its first real entry, plus the months before the window opened.
func RepayMonths(states string, openDays float64) int {
	rs := []rune(states)
	n := len(rs) + 1
	for i, r := range rs {
		if !strings.ContainsRune("/*#", r) {
			n = len(rs) - i
			break
		}
	}
	if !math.IsNaN(openDays) {
		n += max(int(openDays)/30-24, 0)
	}
	return n
}

// AmountCoefficient tiers the limit multiplier by repayment length.
func AmountCoefficient(repayMonths int) float64 {
	switch {
	case repayMonths >= 36:
		return 40
	case repayMonths >= 12:
		return 25
	case repayMonths >= 6:
		return 12
	default:
		return 0
	}
}

type houseLoan struct {
	model.Account
	repayMonths int
	relaxed     bool
}

// houseLoans collects qualifying mortgages. Loans opened the same day that
// are both housing purpose, or share lender and guarantee, merge into the
// first one seen with their payments summed.
func houseLoans(loans []model.Account) []*houseLoan {
	var out []*houseLoan
	seen := map[string]int{}
	for _, a := range model.Dedup(loans) {
		if !HouseLoanStrict(a) || !houseAdmitted(a) {
			continue
		}
		months := RepayMonths(a.Latest24State, a.OpenDays)
		if months < minHouseRepayMonths {
			continue
		}
		open := a.OpenDate.Format("2006-01-02")
		selected := -1
		if strings.Contains(a.Type, "个人住房") || strings.Contains(a.Type, "公积金") {
			k := open + ",hs"
			if i, ok := seen[k]; ok {
				selected = i
			} else {
				seen[k] = len(out)
			}
		}
		k := open + "," + a.LoanFrom + "," + a.LoanType
		if i, ok := seen[k]; ok {
			selected = i
		} else {
			seen[k] = len(out)
		}
		if selected >= 0 {
			out[selected].ScheduledPaymentAmount += a.ScheduledPaymentAmount
			continue
		}
		out = append(out, &houseLoan{Account: a, repayMonths: months, relaxed: HouseLoanRelaxed(a)})
	}
	return out
}

func houseCoefficients(m *Map, rows []*houseLoan, level string) {
	if len(rows) == 0 {
		return
	}
	best := rows[argMax(column(rows, func(h *houseLoan) float64 {
		return houseRepayCoefficient * h.ScheduledPaymentAmount
	}))]
	coef := AmountCoefficient(best.repayMonths)
	m.SetNum("pboc_hs_coffiecient_"+level, coef)
	m.SetNum("pboc_hs_repay_monthly_coffiecient_"+level, houseRepayCoefficient)
	m.SetNum("pboc_hs_credit_limit_"+level, coef*best.ScheduledPaymentAmount)
}

func houseLoanGroup(in Input) (*Map, error) {
	m := NewMap()
	rows := filter(houseLoans(in.Credit.Loans), func(h *houseLoan) bool {
		return h.ScheduledPaymentAmount >= minHousePayment
	})
	houseCoefficients(m, rows, "level1")
	houseCoefficients(m, filter(rows, func(h *houseLoan) bool { return h.relaxed }), "level2")
	return m, nil
}
