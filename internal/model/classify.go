package model

import (
	"strings"

	"github.com/joseph-ayodele/pboc-bom/constants"
)

var reasonCodes = map[string]string{
	"信用卡审批": "xs,dq",
	"贷后管理":  "dg",
	"贷款审批":  "dk,dq",
	"本人查询":  "bc",
	"本人查询（互联网个人信用信息服务平台）": "bcn",
	"本人查询（商业银行网上银行）":      "bc",
	"本人查询（临柜）":            "ot",
	"保前审查":                "ot",
	"保后管理":                "ot",
	"担保资格审查":              "ot",
}

// ReasonCodes maps a printed query reason to its comma-joined code set.
// Unknown and empty reasons are "ot".
func ReasonCodes(reason string) string {
	if c, ok := reasonCodes[reason]; ok {
		return c
	}
	return constants.ReasonOther
}

// QueryOperator classifies the institution that ran a query.
func QueryOperator(op string) string {
	has := func(subs ...string) bool {
		for _, s := range subs {
			if strings.Contains(op, s) {
				return true
			}
		}
		return false
	}
	switch {
	case op == "":
		return "ot"
	case has("消费金融"):
		return "xj"
	case has("小额贷款"):
		return "ln"
	case has("信用卡"):
		return "cd"
	case has("银行", "花旗", "农村信用"):
		if has("工商", "农业", "建设", "中国银行", "交通") {
			return "sb"
		}
		return "tb"
	case has("本人"):
		return "own"
	case has("保险", "信托", "担保", "汽车金融", "租赁", "证券"):
		return "nf"
	default:
		return "ot"
	}
}

// LoanItem tags a record by purpose and lender: "bank,hs", "nbank,hs",
// "bank" or "nbank". Records without a purpose are "othr".
func LoanItem(purpose, lender string) string {
	bank := strings.Contains(lender, "银行")
	switch {
	case purpose == "":
		return constants.ItemOther
	case bank && strings.Contains(purpose, "住房"):
		return constants.ItemBank + "," + constants.ItemHouse
	case strings.Contains(purpose, "住房"):
		return constants.ItemNonBank + "," + constants.ItemHouse
	case bank:
		return constants.ItemBank
	default:
		return constants.ItemNonBank
	}
}

// LoanItemLegacy classifies by purpose text alone; the structured layout uses it.
func LoanItemLegacy(purpose string) string {
	for _, m := range []struct{ kw, item string }{
		{"住房", constants.ItemHouse},
		{"经营", constants.ItemBusiness},
		{"消费", constants.ItemConsume},
		{"助学", constants.ItemStudent},
		{"汽车", constants.ItemCar},
		{"农户", constants.ItemFarmer},
	} {
		if strings.Contains(purpose, m.kw) {
			return m.item
		}
	}
	return constants.ItemOther
}

// HasItem reports whether a comma-joined code set contains code.
func HasItem(set, code string) bool {
	for _, c := range strings.Split(set, ",") {
		if c == code {
			return true
		}
	}
	return false
}
