package encode

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/pboc-bom/internal/common"
	"github.com/joseph-ayodele/pboc-bom/internal/features"
)

func TestCipher(t *testing.T) {
	assert.Equal(t, "BR", Letters.Encode(46))
	assert.Equal(t, "C", Letters.Encode(0))
	assert.Equal(t, "UMBERLANDC", Letters.Encode(1234567890))
	assert.Equal(t, "-M", Letters.Encode(-3))

	for _, n := range []int64{0, 7, 10, 99, 1000, 4567890, 9999999, -250} {
		got, err := Letters.Decode(Letters.Encode(n))
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}

	_, err := Letters.Decode("CX")
	var fe *common.FormatError
	assert.True(t, errors.As(err, &fe))
	_, err = Letters.Decode("")
	assert.Error(t, err)
}

func TestBucket(t *testing.T) {
	cases := []struct {
		key  string
		v    float64
		want int64
	}{
		{"pboc_qr_tot_rcrd_cnt_j1m", 46, 46},
		{"pboc_qr_tot_rcrd_cnt_j1m", 46.9, 46},
		{"pboc_lc_ucl_pct_lf", 0.03, 3},
		{"pboc_lc_ucl_pct_lf", math.Inf(1), 999999900},
		{"pboc_ln_cl_sum_lf", 1250, 1200},
		{"pboc_ln_cl_sum_lf", 1350, 1400},
		{"pboc_ln_cl_sum_lf", 10000, 10000},
		{"pboc_ln_cl_sum_lf", 12345, 12000},
		{"pboc_ln_cl_sum_lf", 100000, 100000},
		{"pboc_ln_cl_sum_lf", 123456, 120000},
		{"pboc_debt_loan_004", 1234, 1200},
		{"pboc_debt_ln_bank_period", 3850, 3800},
		{"pboc_ln_due_rcrd_sum_j24m", math.Inf(1), Sentinel},
		{"pboc_ln_due_rcrd_sum_j24m", math.Inf(-1), -Sentinel},
		{"pboc_ln_balance_avg_lf_ustl1_hs", 320000, 320000},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Bucket(tc.key, tc.v), "%s %v", tc.key, tc.v)
	}
}

func TestClean(t *testing.T) {
	m := features.NewMap()
	m.SetNum("zero", 0)
	m.SetNum("tiny", 0.000001)
	m.Set("nan", features.Undefined())
	m.Set("text", features.Text("A"))
	m.SetNum("x", 1.234567)

	out := Clean(m)
	assert.Equal(t, []string{"text", "x"}, out.Keys())
	v, _ := out.Get("x")
	assert.Equal(t, 1.23457, v.Num)
}

func TestEncodeAndExport(t *testing.T) {
	m := features.NewMap()
	m.SetNum("pboc_lc_ucl_pct_lf", 0.03)
	m.SetNum("pboc_qr_tot_rcrd_cnt_j1m", 46)
	m.SetNum("pboc_negative_blank_001", 0)
	m.SetNum(features.KeyDebt004, 1200)
	m.SetNum("pboc_hs_coffiecient_level1", 40)

	enc := Encode(m)
	assert.Equal(t, []string{"pboc_lc_ucl_pct_lf", "pboc_qr_tot_rcrd_cnt_j1m", features.KeyDebt004, "pboc_hs_coffiecient_level1"}, enc.Keys())
	v, _ := enc.Get("pboc_lc_ucl_pct_lf")
	assert.Equal(t, "M", v.Text)
	v, _ = enc.Get("pboc_qr_tot_rcrd_cnt_j1m")
	assert.Equal(t, "BR", v.Text)

	exp := Export(enc)
	assert.Equal(t, ExportVars, exp.Keys())
	want := map[string]string{
		"pboc_debt_loan":              "UMCC",
		"pboc_lc_ucl_pct_lf":          "M",
		"pboc_lc_uclj6_pct_lf":        Missing,
		"pboc_hs_coffiecient_level1":  "BC",
		"pboc_hs_credit_limit_level2": Missing,
	}
	for k, w := range want {
		v, ok := exp.Get(k)
		require.True(t, ok, k)
		assert.Equal(t, w, v.Text, k)
	}
}
