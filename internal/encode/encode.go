// Package encode turns a derived feature map into its published form:
// cleaned, bucketed to display magnitude and letter-coded.
package encode

import (
	"math"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/pboc-bom/internal/coerce"
	"github.com/joseph-ayodele/pboc-bom/internal/common"
	"github.com/joseph-ayodele/pboc-bom/internal/features"
)

// Cipher maps digit d to the d-th letter of the alphabet.
type Cipher string

// Letters is the published alphabet.
const Letters Cipher = "CUMBERLAND"

// Sentinel replaces infinite values.
const Sentinel = 9999999

// Encode letter-codes the decimal form of n; a negative keeps its sign.
func (c Cipher) Encode(n int64) string {
	s := strconv.FormatInt(n, 10)
	var b strings.Builder
	for _, r := range s {
		if r == '-' {
			b.WriteRune(r)
			continue
		}
		b.WriteByte(c[r-'0'])
	}
	return b.String()
}

// Decode reverses Encode.
func (c Cipher) Decode(s string) (int64, error) {
	if s == "" {
		return 0, common.NewFormatError("encoded", s, string(c))
	}
	var b strings.Builder
	for i, r := range s {
		if r == '-' && i == 0 {
			b.WriteRune(r)
			continue
		}
		d := strings.IndexRune(string(c), r)
		if d < 0 {
			return 0, common.NewFormatError("encoded", s, string(c))
		}
		b.WriteByte(byte('0' + d))
	}
	return strconv.ParseInt(b.String(), 10, 64)
}

// amountKeys are bucketed as amounts although their names do not say so.
var amountKeys = map[string]bool{
	"pboc_debt_ln_bank_nperiod":  true,
	"pboc_debt_ln_bank_period":   true,
	"pboc_debt_ln_nbank_nperiod": true,
	"pboc_debt_ln_nbank_period":  true,
	features.KeyDebt004:          true,
}

func isAmount(key string) bool {
	if amountKeys[key] {
		return true
	}
	for _, s := range []string{"cl", "amt", "amount", "balance"} {
		if strings.Contains(key, s) {
			return true
		}
	}
	return false
}

// Bucket scales a numeric feature to its display integer. Percentages
// become whole percents with infinity at the sentinel. Amounts round to
// hundreds up to 10,000, thousands up to 100,000 and ten thousands above.
// Everything else truncates.
func Bucket(key string, v float64) int64 {
	if strings.Contains(key, "pct") {
		if math.IsInf(v, 0) {
			v = Sentinel
		}
		return int64(v * 100)
	}
	switch {
	case math.IsInf(v, 1):
		return Sentinel
	case math.IsInf(v, -1):
		return -Sentinel
	}
	if isAmount(key) {
		switch {
		case v <= 10000:
			v = coerce.RoundHalfEven(v, -2)
		case v <= 100000:
			v = coerce.RoundHalfEven(v, -3)
		default:
			v = coerce.RoundHalfEven(v, -4)
		}
	}
	return int64(v)
}

// Clean drops undefined and zero numbers and rounds the rest to five
// places. Text passes through.
func Clean(m *features.Map) *features.Map {
	out := features.NewMap()
	m.Each(func(k string, v features.Value) {
		switch {
		case v.IsText:
			out.Set(k, v)
		case math.IsNaN(v.Num):
		default:
			r := coerce.RoundHalfEven(v.Num, 5)
			if r != 0 {
				out.SetNum(k, r)
			}
		}
	})
	return out
}

// Encode cleans m, buckets every number and letter-codes it.
func Encode(m *features.Map) *features.Map {
	out := features.NewMap()
	Clean(m).Each(func(k string, v features.Value) {
		if v.IsText {
			out.Set(k, v)
			return
		}
		out.Set(k, features.Text(Letters.Encode(Bucket(k, v.Num))))
	})
	return out
}

// Missing stands for an export variable the report did not produce.
const Missing = "C"

// ExportVars are the published variables in file order.
var ExportVars = []string{
	"pboc_debt_loan",
	"pboc_lc_ucl_pct_lf",
	"pboc_lc_uclj6_pct_lf",
	"pboc_hs_coffiecient_level1",
	"pboc_hs_coffiecient_level2",
	"pboc_hs_credit_limit_level1",
	"pboc_hs_credit_limit_level2",
	"pboc_hs_repay_monthly_coffiecient_level1",
	"pboc_hs_repay_monthly_coffiecient_level2",
}

var exportSource = map[string]string{
	"pboc_debt_loan": features.KeyDebt004,
}

// Source names the feature an export variable is read from.
func Source(exportVar string) string {
	if s, ok := exportSource[exportVar]; ok {
		return s
	}
	return exportVar
}

// Export projects an encoded map onto ExportVars.
func Export(encoded *features.Map) *features.Map {
	out := features.NewMap()
	for _, k := range ExportVars {
		if v, ok := encoded.Get(Source(k)); ok {
			out.Set(k, v)
			continue
		}
		out.Set(k, features.Text(Missing))
	}
	return out
}
