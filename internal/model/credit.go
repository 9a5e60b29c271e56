package model

import (
	"fmt"
	"time"

	"github.com/joseph-ayodele/pboc-bom/internal/coerce"
	"github.com/joseph-ayodele/pboc-bom/internal/common"
	"github.com/joseph-ayodele/pboc-bom/internal/extract"
)

// Basic is the applicant's identity block. The "--" placeholder reads as "".
type Basic struct {
	Gender       string
	Birthday     string
	MaritalState string
	EduLevel     string
}

// Query is one row of the query record.
type Query struct {
	Date     time.Time
	Days     float64 // days before the report's query time; NaN without a date
	Reason   string
	Codes    string // comma-joined reason codes
	Querier  string
	Operator string
}

// HasCode reports whether the query's reason maps to code.
func (q Query) HasCode(code string) bool { return HasItem(q.Codes, code) }

// Credit is the typed view of one report. Loans and cards are exploded: an
// account with n usable overdue events contributes n rows, one without any
// contributes a single row with no due month.
type Credit struct {
	QueryTime time.Time
	Layout    extract.Layout

	Basic         Basic
	Queries       []Query
	Loans         []Account
	Cards         []Account
	StandardCards []Account

	// Raw is the tree the model was built from; summary lookups read it.
	Raw      any
	Warnings []common.MissingDataWarning
}

// New builds the model from a decoded tree. now supplies the query time when
// the report header carries none.
func New(tree any, layout extract.Layout, now func() time.Time) (*Credit, error) {
	c := &Credit{Layout: layout, Raw: tree}

	qt := coerce.LookupString(tree, "header,messageHeader,queryTime", "")
	if qt == "" {
		c.warn(common.MissingDataWarning{Field: "header.messageHeader.queryTime"})
		c.QueryTime = coerce.DateOnly(now())
	} else {
		t, err := coerce.ParseDate(qt)
		if err != nil {
			return nil, fmt.Errorf("query time: %w", err)
		}
		c.QueryTime = t
	}

	c.Basic = Basic{
		Gender:       placeholder(coerce.LookupString(tree, "personalInfo,identity,gender", "")),
		Birthday:     placeholder(coerce.LookupString(tree, "personalInfo,identity,birthday", "")),
		MaritalState: placeholder(coerce.LookupString(tree, "personalInfo,identity,maritalState", "")),
		EduLevel:     placeholder(coerce.LookupString(tree, "personalInfo,identity,eduLevel", "")),
	}

	var err error
	if c.Queries, err = c.loadQueries(); err != nil {
		return nil, err
	}

	load := c.loadNarrative
	if layout == extract.LayoutStructured {
		load = c.loadStructured
	}
	if c.Loans, err = load(KindLoan); err != nil {
		return nil, err
	}
	if c.Cards, err = load(KindCard); err != nil {
		return nil, err
	}
	if c.StandardCards, err = load(KindStandardCard); err != nil {
		return nil, err
	}
	return c, nil
}

func placeholder(s string) string {
	if s == "--" {
		return ""
	}
	return s
}

func (c *Credit) warn(w common.MissingDataWarning) {
	c.Warnings = append(c.Warnings, w)
}

func (c *Credit) loadQueries() ([]Query, error) {
	var out []Query
	for i, rd := range coerce.LookupList(c.Raw, "queryRecord,recordInfo") {
		d, err := coerce.ParseDate(coerce.LookupString(rd, "queryDate", ""))
		if err != nil {
			return nil, fmt.Errorf("query %d: %w", i, err)
		}
		reason := coerce.LookupString(rd, "queryReason", "")
		querier := coerce.LookupString(rd, "querier", "")
		out = append(out, Query{
			Date:     d,
			Days:     coerce.DaysBetweenOrNaN(c.QueryTime, d),
			Reason:   reason,
			Codes:    ReasonCodes(reason),
			Querier:  querier,
			Operator: QueryOperator(querier),
		})
	}
	return out, nil
}

// BodyText is the flattened report text, "" for trees without one.
func (c *Credit) BodyText() string {
	return coerce.LookupString(c.Raw, "body_str", "")
}

// Summary reads a summary_info amount, defaulting to def when absent.
func (c *Credit) Summary(path, def string) (float64, error) {
	return coerce.LookupAmount(c.Raw, "summary_info,"+path, def)
}

// RawLoans returns the unexploded creditDetail.loan entries in source order.
func (c *Credit) RawLoans() []any {
	return coerce.LookupList(c.Raw, "creditDetail,loan")
}

// Dedup keeps the first row of every account, preserving order.
func Dedup(rows []Account) []Account {
	seen := make(map[string]struct{}, len(rows))
	out := make([]Account, 0, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.Account]; ok {
			continue
		}
		seen[r.Account] = struct{}{}
		out = append(out, r)
	}
	return out
}
