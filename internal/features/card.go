package features

import (
	"math"
	"strings"

	"github.com/joseph-ayodele/pboc-bom/constants"
	"github.com/joseph-ayodele/pboc-bom/internal/model"
)

const cardFamily = "pboc_lc"

var cardStates = []struct {
	name   string
	states []string
}{
	{"nml1", []string{constants.StateNormal}},
	{"tot", nil},
}

func normal(a model.Account) bool { return a.AccountState == constants.StateNormal }

func cardGroup(in Input) (*Map, error) {
	m := NewMap()
	rows := in.Credit.Cards
	if len(rows) == 0 {
		return m, nil
	}
	currency := func(a model.Account) string { return a.AccountType }
	m.SetInt("pboc_lc_tot_ncur_lf", distinct(rows, currency))
	m.SetInt("pboc_lc_nml_ncur_lf", distinct(filter(rows, normal), currency))

	for _, w := range DayWindows {
		opened := filter(rows, openedWithin(w))
		if len(opened) == 0 {
			continue
		}
		m.SetInt(Key(cardFamily, "org_nno", w), distinct(opened, loanFrom))
		m.SetInt(Key(cardFamily, "blc_org_nno", w), distinct(filter(opened, func(a model.Account) bool {
			return a.CreditLimit > a.UsedCreditLimit
		}), loanFrom))
		for _, s := range cardStates {
			slice := opened
			if s.states != nil {
				slice = filter(opened, func(a model.Account) bool {
					for _, st := range s.states {
						if a.AccountState == st {
							return true
						}
					}
					return false
				})
			}
			if len(slice) == 0 {
				continue
			}
			m.SetInt(Key(cardFamily, "rcrd_sum", w, s.name), len(slice))
			m.SetInt(Key(cardFamily, "rcrd_nno", w, s.name), distinct(slice, loanFrom))

			rmb := filter(slice, func(a model.Account) bool { return strings.Contains(a.AccountType, constants.CurrencyRMB) })
			if len(rmb) == 0 {
				continue
			}
			cardSliceStats(m, rmb, w, s.name)
		}
	}

	m.SetInt("pboc_lc_due_rcrd_nno_lf", distinct(filter(rows, func(a model.Account) bool { return !math.IsNaN(a.Months) }), accountOf))
	for _, w := range DayWindows {
		recent := filter(rows, overdueWithin(w))
		if len(recent) == 0 {
			continue
		}
		cardOverdueStats(m, recent, w)
	}

	for i, rule := range cardNegatives {
		m.SetBool(negativeKey("lc", i), rule(rows))
	}
	return m, nil
}

// cardSliceStats covers RMB accounts only.
func cardSliceStats(m *Map, rows []model.Account, w Window, state string) {
	avg6 := column(rows, func(a model.Account) float64 { return a.Latest6MonthUsedAvgAmount })
	actual := column(rows, func(a model.Account) float64 { return a.ActualPaymentAmount })
	sched := column(rows, func(a model.Account) float64 { return a.ScheduledPaymentAmount })
	limits := column(rows, func(a model.Account) float64 { return a.CreditLimit })
	used := column(rows, func(a model.Account) float64 { return a.UsedCreditLimit })
	open := column(rows, func(a model.Account) float64 { return a.OpenDays })
	n := float64(len(rows))

	m.SetNum(Key(cardFamily, "uclj6_max", w, state), nanMax(avg6))
	m.SetNum(Key(cardFamily, "uclj6_min", w, state), nanMin(avg6))
	m.SetNum(Key(cardFamily, "uclj6_avg", w, state), mean(avg6))

	r := ratios(actual, sched)
	m.SetNum(Key(cardFamily, "ppct_max", w, state), nanMax(r))
	m.SetNum(Key(cardFamily, "ppct_min", w, state), nanMin(r))
	if s := nanSum(sched); s != 0 {
		m.SetNum(Key(cardFamily, "ppct_avg", w, state), nanSum(actual)/s)
	} else {
		m.SetNum(Key(cardFamily, "ppct_avg", w, state), 0)
	}

	m.SetNum(Key(cardFamily, "cl_sum", w, state), sum(limits))
	m.SetNum(Key(cardFamily, "cl_max", w, state), firstMax(limits))
	m.SetNum(Key(cardFamily, "cl_min", w, state), firstMin(limits))
	m.SetNum(Key(cardFamily, "cl_avg", w, state), sum(limits)/n)
	if i := argMin(open); i >= 0 {
		m.SetNum(Key(cardFamily, "cl_latest", w, state), limits[i])
	}

	m.SetNum(Key(cardFamily, "ucl_sum", w, state), sum(used))
	m.SetNum(Key(cardFamily, "ucl_max", w, state), firstMax(used))
	m.SetNum(Key(cardFamily, "ucl_min", w, state), firstMin(used))
	m.SetNum(Key(cardFamily, "ucl_avg", w, state), sum(used)/n)
	if s := sum(limits); s != 0 {
		m.SetNum(Key(cardFamily, "ucl_pct", w, state), sum(used)/s)
	} else {
		m.SetNum(Key(cardFamily, "ucl_pct", w, state), 0)
	}

	m.SetNum(Key(cardFamily, "dsst_max", w, state), firstMax(open))
	m.SetNum(Key(cardFamily, "dsst_min", w, state), firstMin(open))
	if i := argMax(limits); i >= 0 {
		m.SetNum(Key(cardFamily, "dscl_max", w, state), open[i])
	}
}

// cardOverdueStats applies day limits to the month recency column.
func cardOverdueStats(m *Map, rows []model.Account, w Window) {
	months := column(rows, func(a model.Account) float64 { return a.Months })

	m.SetNum(Key(cardFamily, "due_rcrd_max", w), nanMax(groupSizes(rows, accountOf)))
	m.SetNum(Key(cardFamily, "due90p_rcrd_max", w), nanMax(groupSizes(filter(rows, func(a model.Account) bool { return a.DueLastMonths >= 4 }), accountOf)))
	m.SetNum(Key(cardFamily, "due30p_rcrd_max", w), nanMax(groupSizes(filter(rows, func(a model.Account) bool { return a.DueLastMonths >= 2 }), accountOf)))
	m.SetInt(Key(cardFamily, "due_rcrd_sum", w), len(rows))
	m.SetNum(Key(cardFamily, "due_months_max", w), nanMax(column(rows, func(a model.Account) float64 { return a.DueLastMonths })))
	m.SetNum(Key(cardFamily, "cdue_amount_sum", w), nanMax(column(rows, func(a model.Account) float64 { return a.CurrOverdueAmount })))
	m.SetInt(Key(cardFamily, "due_rcrd_nno", w), distinct(rows, accountOf))
	m.SetNum(Key(cardFamily, "due_msst_max", w), nanMax(months))
	m.SetNum(Key(cardFamily, "due_msst_min", w), nanMin(months))
}

var cardNegatives = []func([]model.Account) bool{
	anyRow(func(a model.Account) bool {
		return normal(a) && a.UsedHighestAmount > 1000 && a.DueLastMonths > 3 && a.Months <= 24
	}),
	anyRow(func(a model.Account) bool {
		return normal(a) && a.UsedHighestAmount > 1000 && a.DueLastMonths > 2 && a.Months <= 6
	}),
	anyRow(func(a model.Account) bool {
		return normal(a) && a.UsedHighestAmount > 1000 && a.DueLastMonths > 1 && a.Months <= 3
	}),
	anyRow(func(a model.Account) bool { return normal(a) && a.CurrOverdueAmount > 1000 }),
	persistent(normal),
}

func standardCardGroup(in Input) (*Map, error) {
	m := NewMap()
	for i, rule := range standardCardNegatives {
		m.SetBool(negativeKey("slc", i), rule(in.Credit.StandardCards))
	}
	return m, nil
}

var standardCardNegatives = []func([]model.Account) bool{
	anyRow(func(a model.Account) bool {
		return normal(a) && a.UsedHighestAmount > 1000 && a.DueLastMonths > 3 && a.Months <= 24
	}),
	anyRow(func(a model.Account) bool {
		return normal(a) && a.UsedHighestAmount > 1000 && a.DueLastMonths > 2 && a.Months <= 12
	}),
	anyRow(func(a model.Account) bool { return normal(a) && a.UsedCreditLimit > 1000 && a.DueLastMonths > 2 }),
	persistent(normal),
}
