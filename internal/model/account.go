package model

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/joseph-ayodele/pboc-bom/constants"
	"github.com/joseph-ayodele/pboc-bom/internal/coerce"
	"github.com/joseph-ayodele/pboc-bom/internal/common"
)

// Kind is the account category a view holds.
type Kind int

const (
	KindLoan Kind = iota
	KindCard
	KindStandardCard
)

func (k Kind) String() string {
	switch k {
	case KindLoan:
		return "loan"
	case KindCard:
		return "loanCard"
	default:
		return "standardLoanCard"
	}
}

// Account is one row of a loan or card view: an account joined with one of
// its overdue events, or with none. Absent numbers are NaN and absent dates
// are the zero time.
type Account struct {
	Index      int
	Account    string
	Statements string

	LoanFrom     string
	Type         string // loan purpose; empty for cards
	LoanType     string // guarantee type, brackets and slashes removed
	AccountType  string // card currency
	AccountState string // card state
	State        string
	Class5State  string
	LoanItem     string
	SettleType   string

	OpenDate             time.Time
	UpToDate             time.Time
	EndDate              time.Time
	ScheduledPaymentDate time.Time
	DueMonth             time.Time

	CreditLimit               float64
	UsedCreditLimit           float64
	UsedHighestAmount         float64
	Latest6MonthUsedAvgAmount float64
	Balance                   float64
	ScheduledPaymentAmount    float64
	ActualPaymentAmount       float64
	RemainPaymentCyc          float64
	LoanTerms                 float64
	CurrOverdueCyc            float64
	CurrOverdueAmount         float64
	Overdue31To60Amount       float64
	Overdue61To90Amount       float64
	Overdue91To180Amount      float64
	OverdueOver180Amount      float64
	DueLastMonths             float64

	OpenDays     float64
	EndDays      float64
	UpToDays     float64
	ActivateDays float64
	Months       float64

	Latest24State string
}

// IsDued reports whether the row carries an overdue event.
func (a Account) IsDued() bool { return !a.DueMonth.IsZero() }

// OverdueEvent is one delinquent month read from the 24-month state string.
type OverdueEvent struct {
	Month      time.Time
	LastMonths string
}

// Latest24Overdue turns the digits of a 24-month repayment string into
// overdue events. The anchor is the first month in the label
// ("2017年10月-2019年09月的还款记录"); character i is month anchor+i.
func Latest24Overdue(label, states string) ([]OverdueEvent, error) {
	if label == "" {
		return nil, nil
	}
	anchor, err := coerce.ParseMonth(strings.SplitN(label, "-", 2)[0])
	if err != nil {
		return nil, err
	}
	var out []OverdueEvent
	i := 0
	for _, r := range states {
		if unicode.IsDigit(r) {
			out = append(out, OverdueEvent{Month: coerce.AddMonths(anchor, i), LastMonths: string(r)})
		}
		i++
	}
	return out, nil
}

// overdueDetail is a tabulated or state-string overdue event before parsing.
type overdueDetail struct {
	month      string
	monthTime  time.Time
	lastMonths string
}

func tableDetails(list []any) []overdueDetail {
	out := make([]overdueDetail, 0, len(list))
	for _, rd := range list {
		out = append(out, overdueDetail{
			month:      coerce.LookupString(rd, "month", ""),
			lastMonths: coerce.LookupString(rd, "lastMonths", ""),
		})
	}
	return out
}

func stateDetails(events []OverdueEvent) []overdueDetail {
	out := make([]overdueDetail, 0, len(events))
	for _, e := range events {
		out = append(out, overdueDetail{monthTime: e.Month, lastMonths: e.LastMonths})
	}
	return out
}

// explode returns one row per usable overdue detail, or the base row alone
// when the account has no overdue history. A detail whose duration is the
// "--" placeholder is skipped; on cards a "--" month keeps the row with no
// month and zero duration.
func explode(base Account, kind Kind, details []overdueDetail, warn func(common.MissingDataWarning)) ([]Account, error) {
	if len(details) == 0 {
		base.DueLastMonths = 0
		return []Account{base}, nil
	}
	var out []Account
	for _, d := range details {
		if d.lastMonths == "--" {
			continue
		}
		row := base
		if d.monthTime.IsZero() && d.month == "--" && kind != KindLoan {
			row.DueLastMonths = 0
			out = append(out, row)
			continue
		}
		if (d.monthTime.IsZero() && d.month == "") || d.lastMonths == "" {
			warn(common.MissingDataWarning{Field: "overdue month", Record: base.Account})
			continue
		}
		row.DueMonth = d.monthTime
		if row.DueMonth.IsZero() {
			m, err := coerce.ParseMonth(d.month)
			if err != nil {
				return nil, fmt.Errorf("account %s: %w", base.Account, err)
			}
			row.DueMonth = m
		}
		lm, err := coerce.ParseFloat(d.lastMonths)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", base.Account, err)
		}
		row.DueLastMonths = lm
		out = append(out, row)
	}
	return out, nil
}

// derive fills the day counts relative to the query date and resolves the
// settlement class of narrative loans.
func (a *Account) derive(query time.Time, kind Kind, narrative bool) {
	a.OpenDays = coerce.DaysBetweenOrNaN(query, a.OpenDate)
	a.EndDays = math.NaN()
	if !a.EndDate.IsZero() {
		ref := query
		if !a.UpToDate.IsZero() {
			ref = a.UpToDate
		}
		a.EndDays = float64(coerce.DaysBetween(ref, a.EndDate))
	}
	a.UpToDays = 0
	if !a.UpToDate.IsZero() {
		a.UpToDays = float64(coerce.DaysBetween(query, a.UpToDate))
	}
	a.ActivateDays = coerce.DaysBetweenOrNaN(query, a.ScheduledPaymentDate)
	a.Months = math.NaN()
	if !a.DueMonth.IsZero() {
		a.Months = coerce.RoundHalfEven(float64(coerce.DaysBetween(query, a.DueMonth))/30, 0)
	}
	if kind == KindLoan && narrative {
		a.SettleType = SettleType(a.SettleType == constants.StateSettledText, a.EndDays, a.Balance)
	}
}

// SettleType resolves the settlement class of a loan: the "结清" text wins;
// otherwise a matured loan with a balance is ustl, one not yet matured is
// ustl1, and anything else is unresolved ("").
func SettleType(settledText bool, endDays, balance float64) string {
	switch {
	case settledText:
		return constants.SettleSettled
	case endDays >= 0 && balance > 0:
		return constants.SettleUnsettled
	case endDays < 0 && balance > 0:
		return constants.SettleUnsettledEarly
	default:
		return ""
	}
}

// amountField binds a tree path to the number it fills.
type amountField struct {
	path string
	dst  *float64
}

// readAmounts fills every field from node; absent amounts are zero.
func readAmounts(node any, fields []amountField) error {
	for _, f := range fields {
		v, err := coerce.LookupAmount(node, f.path, "0")
		if err != nil {
			return err
		}
		*f.dst = v
	}
	return nil
}

// cycle parses a count that may be the "--" placeholder.
func cycle(s string) (float64, bool, error) {
	if s == "--" {
		return math.NaN(), false, nil
	}
	f, err := coerce.ParseFloat(s)
	if err != nil {
		return math.NaN(), false, err
	}
	return f, true, nil
}

// overdueCycle is lenient: an unreadable current overdue count is NaN.
func overdueCycle(s string) float64 {
	f, err := coerce.ParseFloat(s)
	if err != nil {
		return math.NaN()
	}
	return f
}
