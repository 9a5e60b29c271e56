package model

import (
	"math"
	"regexp"
	"strings"

	"golang.org/x/text/width"

	"github.com/joseph-ayodele/pboc-bom/constants"
	"github.com/joseph-ayodele/pboc-bom/internal/coerce"
	"github.com/joseph-ayodele/pboc-bom/internal/common"
)

var (
	accountNoRe  = regexp.MustCompile(`业务号([A-Z\d]+)`)
	openDateRe   = regexp.MustCompile(`\d{4}年\d{1,2}月\d{1,2}日`)
	upToDateRe   = regexp.MustCompile(`截至([\d年月日]+)`)
	loanLimitRe  = regexp.MustCompile(`发放(.*?)([\d,\.]+)元`)
	purposeRe    = regexp.MustCompile(`[)）](.*?贷款)`)
	endDateRe    = regexp.MustCompile(`([\d年月日]+)到期`)
	termsRe      = regexp.MustCompile(`，(\d+)期`)
	guaranteeRe  = regexp.MustCompile(`业务号.*?，(.*?)，`)
	cardLimitRe  = regexp.MustCompile(`授信额度(.*?)([\d,\.]+)`)
	currencyRe   = regexp.MustCompile(`（(.*?)账户）`)
	cardStateRe  = regexp.MustCompile(`账户状态为“(.*?)”`)
	bracketsRepl = strings.NewReplacer("(", "", ")", "", "/", "")
)

// statement holds the fields of a head-of-record sentence such as
// "1.2012年11月23日中国工商银行发放的500,000元（人民币）个人住房贷款，业务号X，抵押担保，240期，..."
type statement struct {
	accountNo   string
	openDate    string
	upToDate    string
	lender      string
	creditLimit string
	purpose     string
	endDate     string
	terms       float64
	guarantee   string
	currency    string
	state       string
	settled     bool
}

func submatch(re *regexp.Regexp, s, field string, group int) (string, error) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return "", common.NewFormatError(field, s, re.String())
	}
	return m[group], nil
}

func optional(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

// NormalizeGuarantee folds full-width characters and drops brackets and
// slashes: "组合（含保证）" -> "组合含保证", "信用/免担保" -> "信用免担保".
func NormalizeGuarantee(s string) string {
	return bracketsRepl.Replace(width.Narrow.String(s))
}

func parseStatement(s string, kind Kind) (statement, error) {
	st := statement{terms: math.NaN(), settled: strings.Contains(s, "结清")}
	var err error
	if st.accountNo, err = submatch(accountNoRe, s, "account", 1); err != nil {
		return st, err
	}
	if st.openDate, err = submatch(openDateRe, s, "openDate", 0); err != nil {
		return st, err
	}
	st.upToDate = optional(upToDateRe, s)
	lenderRe := regexp.MustCompile(regexp.QuoteMeta(st.openDate) + `(.*?)发放`)
	if st.lender, err = submatch(lenderRe, s, "loanFrom", 1); err != nil {
		return st, err
	}

	if kind != KindLoan {
		if st.creditLimit, err = submatch(cardLimitRe, s, "creditLimit", 2); err != nil {
			return st, err
		}
		if st.currency, err = submatch(currencyRe, s, "accountType", 1); err != nil {
			return st, err
		}
		st.state = optional(cardStateRe, s)
		if st.state == "" {
			st.state = constants.StateNormal
		}
		return st, nil
	}

	if st.creditLimit, err = submatch(loanLimitRe, s, "creditLimit", 2); err != nil {
		return st, err
	}
	if st.purpose, err = submatch(purposeRe, s, "type", 1); err != nil {
		return st, err
	}
	st.endDate = optional(endDateRe, s)
	guarantee, err := submatch(guaranteeRe, s, "loanType", 1)
	if err != nil {
		return st, err
	}
	st.guarantee = NormalizeGuarantee(guarantee)

	switch t := optional(termsRe, s); {
	case t != "":
		if st.terms, err = coerce.ParseFloat(t); err != nil {
			return st, err
		}
	case strings.Contains(s, "一次性归还"):
		st.terms = 1
	case st.endDate != "":
		open, err := coerce.ParseDate(st.openDate)
		if err != nil {
			return st, err
		}
		end, err := coerce.ParseDate(st.endDate)
		if err != nil {
			return st, err
		}
		st.terms = float64(int(float64(coerce.DaysBetween(end, open)) / 30))
	}
	return st, nil
}
