package features

import (
	"math"
	"strings"

	"github.com/joseph-ayodele/pboc-bom/constants"
	"github.com/joseph-ayodele/pboc-bom/internal/model"
)

const twoYears = 365 * 2

// blacklistWords mark bad debt, write-off, frozen or stopped payment,
// guarantor compensation and settlement in kind.
var blacklistWords = []string{"呆账", "核销", "冻结", "止付", "担保人代偿", "保证人代偿", "以资抵债"}

func ruleDirectGroup(in Input) (*Map, error) {
	c := in.Credit
	m := NewMap()
	m.SetBool("pboc_negative_blank_001", blankReport(c.Loans, c.Cards, c.StandardCards))
	m.SetBool("pboc_negative_blank_002", onlyCardsInState(c.Cards, constants.StateInactive))
	m.SetBool("pboc_negative_blank_003", onlyCardsInState(c.Cards, constants.StateClosed))
	m.SetNum("pboc_negative_blank_004", 0)
	m.SetBool("pboc_negative_blank_005", zeroLimitCards(c.Cards, c.StandardCards))
	m.SetBool("pboc_negative_blank_006", onlyUnusedCards(c.Cards))
	if blacklisted(c.BodyText()) {
		m.SetNum("pboc_negative_black_001", 1)
	} else {
		m.Set("pboc_negative_black_001", Undefined())
	}
	m.SetNum("pboc_negative_black_002", 0)
	m.SetNum("pboc_negative_black_003", 0)
	return m, nil
}

// blankReport: no credit rows at all, or the first non-empty view has no
// row updated within two years.
func blankReport(views ...[]model.Account) bool {
	for _, rows := range views {
		if len(rows) == 0 {
			continue
		}
		return count(rows, func(a model.Account) bool { return a.UpToDays <= twoYears }) == 0
	}
	return true
}

// onlyTagged is true when some card is tagged 1 and none is tagged 2.
func onlyTagged(rows []model.Account, tag func(model.Account) int) bool {
	ones, twos := 0, 0
	for _, a := range rows {
		switch tag(a) {
		case 1:
			ones++
		case 2:
			twos++
		}
	}
	return ones > 0 && twos == 0
}

func onlyCardsInState(cards []model.Account, state string) bool {
	return onlyTagged(cards, func(a model.Account) int {
		recent := !math.IsNaN(a.UpToDays) && a.UpToDays <= twoYears
		switch {
		case a.AccountState == state && recent:
			return 1
		case recent:
			return 2
		default:
			return 0
		}
	})
}

// zeroLimitCards: at least one card view is non-empty and every card has a
// zero limit.
func zeroLimitCards(cards, standard []model.Account) bool {
	if len(cards) == 0 && len(standard) == 0 {
		return false
	}
	nonZero := func(a model.Account) bool { return a.CreditLimit != 0 }
	return count(cards, nonZero) == 0 && count(standard, nonZero) == 0
}

func onlyUnusedCards(cards []model.Account) bool {
	return onlyTagged(cards, func(a model.Account) int {
		switch {
		case math.IsNaN(a.UpToDays):
			return 0
		case a.UpToDays <= twoYears && a.AccountState != constants.StateClosed &&
			a.AccountState != constants.StateInactive && a.UsedHighestAmount <= 0:
			return 1
		case a.UpToDays <= twoYears:
			return 2
		default:
			return 0
		}
	})
}

func blacklisted(body string) bool {
	for _, w := range blacklistWords {
		if strings.Contains(body, w) {
			return true
		}
	}
	return false
}
