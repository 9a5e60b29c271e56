package extract

import (
	"strings"

	"github.com/joseph-ayodele/pboc-bom/internal/document"
	"github.com/joseph-ayodele/pboc-bom/internal/entity"
)

// rowClass routes the data rows of an account table. A label row sets the
// class and every following row is read with it until the next label row.
type rowClass int

const (
	rowNone rowClass = iota
	rowAccountStatus
	rowCurrentOverdue
	rowOverdueRecord
	rowSpecial
	rowRepayment
)

// accountLayout describes where one account kind keeps its fields.
type accountLayout struct {
	opener       string   // text that opens a new record
	skip         []string // group dividers such as "（一）"
	reopen       bool     // whether a second opener before the table starts another record
	currentLabel string   // label of the current-overdue row; "" when the kind has none
	status       func(a *entity.Account, row []string)
	current      func(a *entity.Account, row []string)

	// secondByTitle locates the second overdue entry through the title row;
	// otherwise it sits at 3, 4 and 5 times the gap.
	secondByTitle bool
}

var loanLayout = accountLayout{
	opener:       "贷款",
	skip:         []string{"（一）", "（二）", "（三）", "（四）"},
	reopen:       true,
	currentLabel: "当前逾期期数",
	status: func(a *entity.Account, row []string) {
		a.State = cell(row, 0)
		a.Class5State = cell(row, 3)
		a.Balance = cell(row, 6)
		a.RemainPaymentCyc = cell(row, 9)
		a.ScheduledPaymentAmount = cell(row, 12)
		a.ScheduledPaymentDate = cell(row, 15)
		a.ActualPaymentAmount = cell(row, 18)
		a.RecentPayDate = cell(row, 21)
	},
	current: func(a *entity.Account, row []string) {
		a.CurrOverdueCyc = cell(row, 0)
		a.CurrOverdueAmount = cell(row, 4)
		a.Overdue31To60Amount = cell(row, 8)
		a.Overdue61To90Amount = cell(row, 12)
		a.Overdue91To180Amount = cell(row, 16)
		a.OverdueOver180Amount = cell(row, 20)
	},
	secondByTitle: true,
}

var cardLayout = accountLayout{
	opener:       "贷记卡",
	skip:         []string{"一）", "二）", "三）", "四）"},
	currentLabel: "账单日",
	status: func(a *entity.Account, row []string) {
		a.State = cell(row, 0)
		a.UsedCreditLimitAmount = cell(row, 4)
		a.Latest6MonthUsedAvgAmount = cell(row, 8)
		a.UsedHighestAmount = cell(row, 16)
		a.ScheduledPaymentAmount = cell(row, 20)
	},
	current: func(a *entity.Account, row []string) {
		a.ScheduledPaymentDate = cell(row, 0)
		a.ActualPaymentAmount = cell(row, 4)
		a.RecentPayDate = cell(row, 8)
		a.CurrOverdueCyc = cell(row, 16)
		a.CurrOverdueAmount = cell(row, 20)
	},
	secondByTitle: true,
}

var standardCardLayout = accountLayout{
	opener: "准贷记卡",
	skip:   []string{"一）", "二）", "三）", "四）"},
	status: func(a *entity.Account, row []string) {
		a.State = cell(row, 0)
		a.UsedCreditLimitAmount = cell(row, 2)
		a.Latest6MonthUsedAvgAmount = cell(row, 4)
		a.UsedHighestAmount = cell(row, 8)
		a.ScheduledPaymentDate = cell(row, 11)
		a.ActualPaymentAmount = cell(row, 14)
		a.RecentPayDate = cell(row, 17)
		a.Due180pAmount = cell(row, 20)
	},
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// readAccounts runs the record state machine over one account section:
// a head-of-record text opens a record and the next table fills it.
func readAccounts(body []document.Block, layout accountLayout) []entity.Account {
	out := []entity.Account{}
	pending := false
	for _, b := range body {
		if b.IsText() {
			if containsAny(b.Text, layout.skip) {
				continue
			}
			if strings.Contains(b.Text, layout.opener) && (layout.reopen || !pending) {
				out = append(out, entity.Account{Statements: b.Text})
				pending = true
			}
			continue
		}
		if !pending {
			continue
		}
		pending = false
		if b.Table.Empty() {
			continue
		}
		fillAccount(&out[len(out)-1], b.Table, layout)
	}
	return out
}

func classify(label string, layout accountLayout) rowClass {
	switch {
	case strings.Contains(label, "账户") && strings.Contains(label, "状态"):
		return rowAccountStatus
	case layout.currentLabel != "" && strings.Contains(label, layout.currentLabel):
		return rowCurrentOverdue
	case strings.Contains(label, "逾期记录") || strings.Contains(label, "逾期月份"):
		return rowOverdueRecord
	case strings.Contains(label, "特殊交易类型"):
		return rowSpecial
	case strings.Contains(label, "还款记录"):
		return rowRepayment
	default:
		return rowNone
	}
}

func fillAccount(a *entity.Account, t *document.Table, layout accountLayout) {
	cls := rowNone
	var title []string
	var latest24Date string
	gap := 1
	if t.Cols() == 24 {
		gap = 4
	}

	for r := 0; r < t.Len(); r++ {
		row := t.Row(r)
		if c := classify(row[0], layout); c != rowNone {
			cls, title = c, row
			if c == rowRepayment {
				latest24Date = row[0]
			}
			continue
		}
		switch cls {
		case rowAccountStatus:
			layout.status(a, row)
		case rowCurrentOverdue:
			layout.current(a, row)
		case rowRepayment:
			a.Latest24Date = latest24Date
			a.Latest24State = strings.Join(row, "")
		case rowOverdueRecord:
			if a.OverdueRecord == nil {
				a.OverdueRecord = &entity.OverdueRecord{}
			}
			first := entity.OverdueRecordDetail{
				Month:      cell(row, 0),
				LastMonths: cell(row, gap),
				Amount:     cell(row, 2*gap),
			}
			var second entity.OverdueRecordDetail
			if layout.secondByTitle {
				second = detailByTitle(title, row)
			} else {
				second = entity.OverdueRecordDetail{
					Month:      cell(row, 3*gap),
					LastMonths: cell(row, 4*gap),
					Amount:     cell(row, 5*gap),
				}
			}
			a.OverdueRecord.OverdueRecordDetail = append(a.OverdueRecord.OverdueRecordDetail, first, second)
		case rowSpecial:
			a.Specials = append(a.Specials, entity.SpecialRecord{
				TradeType:    cell(row, 0),
				Date:         cell(row, gap),
				ChangeMonths: cell(row, 2*gap),
				Amount:       cell(row, 3*gap),
				Detail:       cell(row, 4*gap),
			})
		}
	}
}

// detailByTitle reads the second overdue entry of a row from the columns
// past the first entry whose titles name the field; later columns win.
func detailByTitle(title, row []string) entity.OverdueRecordDetail {
	var d entity.OverdueRecordDetail
	for j, tl := range title {
		if j < 3 {
			continue
		}
		switch {
		case strings.Contains(tl, "逾期月份"):
			d.Month = cell(row, j)
		case strings.Contains(tl, "逾期持续月数"):
			d.LastMonths = cell(row, j)
		case strings.Contains(tl, "逾期金额"):
			d.Amount = cell(row, j)
		}
	}
	return d
}
