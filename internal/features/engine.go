package features

import (
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/pboc-bom/internal/common"
	"github.com/joseph-ayodele/pboc-bom/internal/model"
)

// Input is what a group reads: the model and the features produced by the
// groups before it. Groups must not modify either.
type Input struct {
	Credit *model.Credit
	Prior  *Map
}

// Group is one independent feature family.
type Group struct {
	Name string
	Fn   func(in Input) (*Map, error)
}

// DefaultGroups lists the groups in output order.
var DefaultGroups = []Group{
	{"education", educationGroup},
	{"lc_usage", cardUsageGroup},
	{"house_loan", houseLoanGroup},
	{"summary", summaryGroup},
	{"query", queryGroup},
	{"loan", loanGroup},
	{"card", cardGroup},
	{"standard_card", standardCardGroup},
	{"rule_direct", ruleDirectGroup},
	{"debt", debtGroup},
	{"credit_limit", creditLimitGroup},
}

// Engine runs feature groups over a model.
type Engine struct {
	groups []Group
	log    *slog.Logger
}

func NewEngine(l *slog.Logger, groups ...Group) *Engine {
	if l == nil {
		l = slog.Default()
	}
	if len(groups) == 0 {
		groups = DefaultGroups
	}
	return &Engine{groups: groups, log: l}
}

// Derive runs every group in order and merges their outputs. A group that
// errors or panics contributes nothing and is reported; the others still run.
func (e *Engine) Derive(c *model.Credit) (*Map, []*common.GroupError) {
	out := NewMap()
	var failed []*common.GroupError
	for _, g := range e.groups {
		m, err := runGroup(g, Input{Credit: c, Prior: out})
		if err != nil {
			ge := &common.GroupError{Group: g.Name, Cause: err}
			e.log.Warn("features.group.failed", "group", g.Name, "err", err)
			failed = append(failed, ge)
			continue
		}
		out.Merge(m)
	}
	return out, failed
}

func runGroup(g Group, in Input) (m *Map, err error) {
	defer func() {
		if r := recover(); r != nil {
			m, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	return g.Fn(in)
}
