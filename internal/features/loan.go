package features

import (
	"fmt"
	"math"

	"github.com/joseph-ayodele/pboc-bom/constants"
	"github.com/joseph-ayodele/pboc-bom/internal/model"
)

const loanFamily = "pboc_ln"

var (
	loanSettles = []string{constants.SettleUnsettledEarly, constants.SettleTotal}
	loanItems   = []string{constants.ItemHouse, constants.ItemTotal, constants.ItemBank, constants.ItemNonBank}
)

func bySettle(rows []model.Account, settle string) []model.Account {
	if settle == constants.SettleTotal {
		return rows
	}
	return filter(rows, func(a model.Account) bool { return a.SettleType == settle })
}

func byItem(rows []model.Account, item string) []model.Account {
	if item == constants.ItemTotal {
		return rows
	}
	return filter(rows, func(a model.Account) bool { return model.HasItem(a.LoanItem, item) })
}

func openedWithin(w Window) func(model.Account) bool {
	return func(a model.Account) bool { return w.Contains(a.OpenDays) }
}

func overdueWithin(w Window) func(model.Account) bool {
	return func(a model.Account) bool { return w.Contains(a.Months) }
}

func loanFrom(a model.Account) string  { return a.LoanFrom }
func accountOf(a model.Account) string { return a.Account }

func loanGroup(in Input) (*Map, error) {
	m := NewMap()
	rows := in.Credit.Loans
	if len(rows) == 0 {
		return m, nil
	}

	for _, w := range DayWindows {
		opened := filter(rows, openedWithin(w))
		if len(opened) == 0 {
			continue
		}
		m.SetInt(Key(loanFamily, "org_nno", w), distinct(opened, loanFrom))
		m.SetInt(Key(loanFamily, "blc_org_nno", w), distinct(filter(opened, func(a model.Account) bool { return a.Balance > 0 }), loanFrom))
		for _, s := range loanSettles {
			settled := bySettle(opened, s)
			for _, item := range loanItems {
				slice := byItem(settled, item)
				if len(slice) == 0 {
					continue
				}
				loanSliceStats(m, slice, w, s, item)
			}
		}
	}

	for _, w := range MonthWindows {
		recent := filter(rows, overdueWithin(w))
		for _, item := range loanItems {
			slice := byItem(recent, item)
			if len(slice) == 0 {
				continue
			}
			loanOverdueStats(m, slice, w)
		}
		m.SetNum(Key(loanFamily, "curr_due_cyc_max", w), nanMax(column(recent, func(a model.Account) float64 { return a.CurrOverdueCyc })))
	}

	for i, rule := range loanNegatives {
		m.SetBool(negativeKey("loan", i), rule(rows))
	}
	return m, nil
}

// loanSliceStats writes the per-slice statistics. Limit, term and payment
// ratio keys carry no item, so the last non-empty item slice of a settle
// class wins.
func loanSliceStats(m *Map, rows []model.Account, w Window, settle, item string) {
	open := column(rows, func(a model.Account) float64 { return a.OpenDays })
	limits := column(rows, func(a model.Account) float64 { return a.CreditLimit })
	terms := column(rows, func(a model.Account) float64 { return a.LoanTerms })
	balances := column(rows, func(a model.Account) float64 { return a.Balance })
	actual := column(rows, func(a model.Account) float64 { return a.ActualPaymentAmount })
	sched := column(rows, func(a model.Account) float64 { return a.ScheduledPaymentAmount })

	m.SetInt(Key(loanFamily, "rcrd_sum", w, settle, item), len(rows))
	m.SetNum(Key(loanFamily, "dsst_max", w, settle, item), firstMax(open))
	m.SetNum(Key(loanFamily, "dsst_min", w, settle, item), firstMin(open))
	m.SetNum(Key(loanFamily, "msst_max", w, settle, item), firstMax(open)/30)

	m.SetNum(Key(loanFamily, "cl_sum", w, settle), sum(limits))
	m.SetNum(Key(loanFamily, "cl_max", w, settle), firstMax(limits))
	m.SetNum(Key(loanFamily, "cl_min", w, settle), firstMin(limits))
	m.SetNum(Key(loanFamily, "cl_avg", w, settle), sum(limits)/float64(len(rows)))

	m.SetNum(Key(loanFamily, "term_max", w, settle), nanMax(terms))
	m.SetNum(Key(loanFamily, "term_min", w, settle), nanMin(terms))
	if known := filter(terms, func(t float64) bool { return !math.IsNaN(t) }); len(known) > 0 {
		m.SetNum(Key(loanFamily, "term_avg", w, settle), mean(known))
	}

	m.SetNum(Key(loanFamily, "balance_min", w, settle, item), nanMin(balances))
	m.SetNum(Key(loanFamily, "balance_max", w, settle, item), nanMax(balances))
	m.SetNum(Key(loanFamily, "balance_avg", w, settle, item), mean(balances))

	r := ratios(actual, sched)
	m.SetNum(Key(loanFamily, "ppct_max", w, settle), nanMax(r))
	m.SetNum(Key(loanFamily, "ppct_min", w, settle), nanMin(r))
	m.SetNum(Key(loanFamily, "ppct_avg", w, settle), nanSum(actual)/nanSum(sched))
}

func loanOverdueStats(m *Map, rows []model.Account, w Window) {
	months := column(rows, func(a model.Account) float64 { return a.Months })
	due := column(rows, func(a model.Account) float64 { return a.DueLastMonths })
	over90 := groupSizes(filter(rows, func(a model.Account) bool { return a.DueLastMonths >= 4 }), accountOf)
	over30 := groupSizes(filter(rows, func(a model.Account) bool { return a.DueLastMonths >= 2 }), accountOf)

	m.SetNum(Key(loanFamily, "due_msst_min", w), nanMin(months))
	m.SetNum(Key(loanFamily, "due_msst_max", w), nanMax(months))
	m.SetNum(Key(loanFamily, "due_rcrd_max", w), nanMax(groupSizes(rows, accountOf)))
	m.SetNum(Key(loanFamily, "due90p_rcrd_max", w), nanMax(over90))
	m.SetNum(Key(loanFamily, "due90p_rcrd_sum", w), nanSum(over90))
	m.SetNum(Key(loanFamily, "due90p_rcrd_avg", w), mean(over90))
	m.SetNum(Key(loanFamily, "due30p_rcrd_max", w), nanMax(over30))
	m.SetNum(Key(loanFamily, "due30p_rcrd_sum", w), nanSum(over30))
	m.SetNum(Key(loanFamily, "due30p_rcrd_avg", w), mean(over30))
	m.SetInt(Key(loanFamily, "due_rcrd_sum", w), len(rows))
	m.SetNum(Key(loanFamily, "due_months_max", w), nanMax(due))
	m.SetNum(Key(loanFamily, "due_months_avg", w), mean(due))
	m.SetNum(Key(loanFamily, "cdue_amount_sum", w), nanMax(column(rows, func(a model.Account) float64 { return a.CurrOverdueAmount })))
	m.SetInt(Key(loanFamily, "due_rcrd_nno", w), distinct(rows, accountOf))
}

func negativeKey(kind string, i int) string {
	return fmt.Sprintf("pboc_negative_%s_%03d", kind, i+1)
}

func anyRow(pred func(model.Account) bool) func([]model.Account) bool {
	return func(rows []model.Account) bool { return count(rows, pred) > 0 }
}

// persistent flags a run of three overdue months, or six overdue events,
// within 24 months.
func persistent(pre func(model.Account) bool) func([]model.Account) bool {
	return func(rows []model.Account) bool {
		long := count(rows, func(a model.Account) bool { return pre(a) && a.DueLastMonths >= 3 && a.Months <= 24 })
		events := count(rows, func(a model.Account) bool { return pre(a) && a.DueLastMonths >= 1 && a.Months <= 24 })
		return long > 0 || events >= 6
	}
}

func always(model.Account) bool { return true }

var loanNegatives = []func([]model.Account) bool{
	anyRow(func(a model.Account) bool { return a.DueLastMonths > 3 && a.Months <= 24 }),
	anyRow(func(a model.Account) bool { return a.DueLastMonths > 2 && a.Months <= 12 }),
	anyRow(func(a model.Account) bool { return a.DueLastMonths > 1 && a.Months <= 6 }),
	anyRow(func(a model.Account) bool { return a.CurrOverdueAmount > 0 }),
	anyRow(func(a model.Account) bool {
		return a.Class5State == "次级" || a.Class5State == "可疑" || a.Class5State == "损失"
	}),
	anyRow(func(a model.Account) bool { return a.EndDays > 0 && a.SettleType == constants.SettleUnsettled }),
	persistent(always),
}
