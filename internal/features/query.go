package features

import (
	"github.com/joseph-ayodele/pboc-bom/constants"
	"github.com/joseph-ayodele/pboc-bom/internal/model"
)

// queryReasons are the reason slices in output order; tot takes every query.
var queryReasons = []string{
	constants.ReasonCardApproval,
	constants.ReasonPostLoan,
	constants.ReasonSelfOnline,
	constants.ReasonOther,
	constants.ReasonSelf,
	constants.ReasonTotal,
	constants.ReasonLoanApproval,
	constants.ReasonPreLoan,
}

const queryFamily = "pboc_qr"

func queryGroup(in Input) (*Map, error) {
	m := NewMap()
	qs := in.Credit.Queries
	for _, w := range DayWindows {
		inWin := filter(qs, func(q model.Query) bool { return w.Contains(q.Days) })
		for _, r := range queryReasons {
			rows := inWin
			if r != constants.ReasonTotal {
				rows = filter(inWin, func(q model.Query) bool { return q.HasCode(r) })
			}
			if len(rows) == 0 {
				continue
			}
			days := column(rows, func(q model.Query) float64 { return q.Days })
			m.SetNum(Key(queryFamily, "dsst_max", w, r), nanMax(days))
			m.SetNum(Key(queryFamily, "dsst_min", w, r), nanMin(days))
			m.SetInt(Key(queryFamily, "days_sum", w, r), distinctFloats(days))
			m.SetInt(Key(queryFamily, "rcrd_cnt", w, r), len(rows))
			m.SetInt(Key(queryFamily, "org_nno", w, r), distinct(rows, func(q model.Query) string { return q.Querier }))
		}
	}
	m.SetBool("pboc_negative_query_001", frequentCardQueries(qs))
	return m, nil
}

// frequentCardQueries flags five or more distinct (querier, reason) card
// approval queries in the last 60 days.
func frequentCardQueries(qs []model.Query) bool {
	recent := filter(qs, func(q model.Query) bool {
		return q.Days <= 60 && q.HasCode(constants.ReasonCardApproval)
	})
	return distinct(recent, func(q model.Query) string { return q.Querier + "\x00" + q.Codes }) >= 5
}
