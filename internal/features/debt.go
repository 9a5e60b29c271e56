package features

import (
	"math"
	"slices"
	"strings"

	"github.com/joseph-ayodele/pboc-bom/constants"
	"github.com/joseph-ayodele/pboc-bom/internal/coerce"
	"github.com/joseph-ayodele/pboc-bom/internal/model"
)

// KeyDebt004 is the debt total the credit limit estimate is based on.
const KeyDebt004 = "pboc_debt_loan_004"

// DebtVariant selects the monthly debt heuristic.
type DebtVariant int

const (
	// DebtAmortized trusts the stated payment when it brackets the balance,
	// otherwise amortizes the limit over the term.
	DebtAmortized DebtVariant = 1
	// DebtSimple is the coarse variant; it yields NaN when it has no rule.
	DebtSimple DebtVariant = 2
	// DebtTiered falls back to a flat rate keyed by lender and term.
	DebtTiered DebtVariant = 3
)

func isBank(lender string) bool { return strings.Contains(lender, "银行") }

// installment reports whether the stated payment brackets the outstanding
// amount: balance < payment x remaining < 2 x balance when the remaining
// count is known, the same test on limit and term otherwise.
func installment(a model.Account) bool {
	if a.ScheduledPaymentAmount == 0 {
		return false
	}
	if !math.IsNaN(a.RemainPaymentCyc) {
		p := a.ScheduledPaymentAmount * a.RemainPaymentCyc
		return a.Balance*2 > p && p > a.Balance
	}
	p := a.ScheduledPaymentAmount * a.LoanTerms
	return a.CreditLimit*2 > p && p > a.CreditLimit
}

// elapsedMonths is the whole number of 30-day months from open to end.
func elapsedMonths(a model.Account) float64 {
	if a.EndDate.IsZero() || a.OpenDate.IsZero() {
		return math.NaN()
	}
	return float64(int(float64(coerce.DaysBetween(a.EndDate, a.OpenDate)) / 30))
}

// MonthlyDebt estimates the monthly debt service of one loan row. Settled
// loans and loans without balance owe nothing.
func MonthlyDebt(a model.Account, v DebtVariant) float64 {
	if a.SettleType == constants.SettleSettled || a.Balance == 0 {
		return 0
	}
	remainKnown := !math.IsNaN(a.RemainPaymentCyc)
	termsKnown := !math.IsNaN(a.LoanTerms)
	switch v {
	case DebtAmortized:
		switch {
		case remainKnown && a.ScheduledPaymentAmount != 0:
			p := a.ScheduledPaymentAmount * a.RemainPaymentCyc
			if a.Balance*2 > p && p > a.Balance {
				return a.ScheduledPaymentAmount
			}
			return a.CreditLimit / a.LoanTerms
		case remainKnown:
			if termsKnown {
				return a.CreditLimit / a.LoanTerms
			}
			return a.CreditLimit / elapsedMonths(a)
		case a.ScheduledPaymentAmount != 0:
			p := a.ScheduledPaymentAmount * a.LoanTerms
			if a.CreditLimit*2 > p && p > a.CreditLimit {
				return a.ScheduledPaymentAmount
			}
			return a.CreditLimit / a.LoanTerms
		case termsKnown:
			return a.CreditLimit / a.LoanTerms
		case !a.EndDate.IsZero():
			return a.CreditLimit / elapsedMonths(a)
		default:
			return a.CreditLimit * 0.035
		}
	case DebtSimple:
		if a.LoanType == "抵押担保" {
			if a.ScheduledPaymentAmount != 0 {
				return a.ScheduledPaymentAmount
			}
			return a.CreditLimit / a.LoanTerms
		}
		if remainKnown && a.ScheduledPaymentAmount != 0 {
			if a.ScheduledPaymentAmount*a.RemainPaymentCyc > a.Balance {
				return a.ScheduledPaymentAmount
			}
			return a.CreditLimit * 0.035
		}
		return math.NaN()
	default:
		if installment(a) {
			return a.ScheduledPaymentAmount
		}
		return a.CreditLimit * tieredRate(isBank(a.LoanFrom), a.LoanTerms)
	}
}

func tieredRate(bank bool, terms float64) float64 {
	switch {
	case bank && math.IsNaN(terms):
		return 0.035
	case bank && terms <= 12:
		return 0.09
	case bank && terms <= 35:
		return 0.049
	case bank:
		return 0.035
	case math.IsNaN(terms):
		return 0.04
	case terms <= 12:
		return 0.095
	case terms <= 35:
		return 0.053
	default:
		return 0.04
	}
}

// debtClass is the pboc_debt_ln_<class> bucket of a loan row.
func debtClass(a model.Account) string {
	lender := "nbank"
	if isBank(a.LoanFrom) {
		lender = "bank"
	}
	if installment(a) {
		return lender + "_period"
	}
	return lender + "_nperiod"
}

// CardDebt is 10% of the used amount of a normal card.
func CardDebt(a model.Account) float64 {
	if a.AccountState == constants.StateNormal {
		return a.UsedCreditLimit * 0.1
	}
	return 0
}

// DebtResult is one debt total with its breakdown.
type DebtResult struct {
	Total  float64
	Simple float64
	Parts  *Map
}

// Debt sums the monthly debt of loans under variant v plus the card debt of
// deduplicated cards. Totals are rounded to two places.
func Debt(loans, cards, standard []model.Account, v DebtVariant) DebtResult {
	parts := NewMap()
	var total, simple float64
	if len(loans) > 0 {
		byClass := NewMap()
		debts := make([]float64, len(loans))
		simples := make([]float64, len(loans))
		for i, a := range loans {
			debts[i] = MonthlyDebt(a, v)
			simples[i] = MonthlyDebt(a, DebtSimple)
			cls := "pboc_debt_ln_" + debtClass(a)
			prev, _ := byClass.Get(cls)
			if !math.IsNaN(debts[i]) {
				prev.Num += debts[i]
			}
			byClass.Set(cls, prev)
		}
		total = nanSum(debts)
		simple = nanSum(simples)
		for _, k := range sortedKeys(byClass) {
			v, _ := byClass.Get(k)
			parts.Set(k, v)
		}
	}
	if len(cards) > 0 {
		d := nanSum(column(model.Dedup(cards), CardDebt))
		parts.SetNum("pboc_debt_loan_card", d)
		total += d
		simple += d
	}
	if len(standard) > 0 {
		d := nanSum(column(model.Dedup(standard), CardDebt))
		parts.SetNum("pboc_debt_standard_loan_card", d)
		total += d
		simple += d
	}
	return DebtResult{
		Total:  coerce.RoundHalfEven(total, 2),
		Simple: coerce.RoundHalfEven(simple, 2),
		Parts:  parts,
	}
}

// sortedKeys orders class buckets the way a grouped sum lists them.
func sortedKeys(m *Map) []string {
	keys := m.Keys()
	slices.Sort(keys)
	return keys
}

var (
	housingPurposes = []string{"个人住房贷款", "住房公积金贷款", "个人商用房"}
	listedPurposes  = []string{"个人住房贷款", "住房公积金贷款", "个人商用房", "个人经营性贷款", "个人消费贷款", "个人汽车贷款"}
)

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func secured(guarantee string) bool {
	return strings.Contains(guarantee, "抵押") || strings.Contains(guarantee, "质押")
}

// CountsTowardDebt is the general inclusion table for pboc_debt_loan_003.
func CountsTowardDebt(a model.Account) bool {
	g := a.LoanType
	if !isBank(a.LoanFrom) && !strings.Contains(a.LoanFrom, "住房公积金中心") && !secured(g) {
		return true
	}
	switch {
	case secured(g):
		return false
	case strings.Contains(g, "自然人保证"), g == "保证", strings.Contains(g, "信用免担保"), g == "信用", g == "免担保":
		return true
	case strings.Contains(g, "组合含保证"):
		return !containsAny(a.Type, housingPurposes) && !strings.Contains(a.Type, "个人汽车贷款")
	case strings.Contains(g, "组合不含保证"):
		// matched against the guarantee text, which never names a purpose
		return containsAny(g, listedPurposes)
	case strings.Contains(g, "农户联保"):
		return true
	default:
		return !containsAny(a.Type, housingPurposes)
	}
}

// CountsTowardBankDebt is the bank-specific inclusion table for
// pboc_debt_loan_004. Non-bank loans count unless secured.
func CountsTowardBankDebt(a model.Account) bool {
	g := a.LoanType
	if !isBank(a.LoanFrom) {
		return !secured(g)
	}
	switch {
	case secured(g):
		return false
	case strings.Contains(g, "自然人保证"), strings.Contains(g, "信用免担保"):
		return true
	case strings.Contains(g, "组合含保证"):
		return !containsAny(a.Type, housingPurposes) && !strings.Contains(a.Type, "个人汽车贷款")
	case strings.Contains(g, "组合不含保证"):
		return !containsAny(a.Type, listedPurposes)
	case strings.Contains(g, "农户联保"):
		return true
	default:
		return !containsAny(a.Type, housingPurposes)
	}
}

func debtGroup(in Input) (*Map, error) {
	c := in.Credit
	m := NewMap()

	all := Debt(c.Loans, c.Cards, c.StandardCards, DebtAmortized)
	m.SetNum("pboc_debt_loan_001", all.Total)
	m.SetNum("pboc_debt_loan_002", all.Simple)

	loans := model.Dedup(c.Loans)
	m.SetNum("pboc_debt_loan_003", Debt(filter(loans, CountsTowardDebt), c.Cards, c.StandardCards, DebtAmortized).Total)
	bank := Debt(filter(loans, CountsTowardBankDebt), c.Cards, c.StandardCards, DebtTiered)
	m.SetNum(KeyDebt004, bank.Total)
	m.Merge(bank.Parts)
	return m, nil
}
