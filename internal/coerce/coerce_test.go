package coerce

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/pboc-bom/internal/common"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1,234.50", 1234.5},
		{"5000元", 5000},
		{"0", 0},
		{" 12 ", 12},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "--", "1.2.3"} {
		_, err := ParseAmount(bad)
		var fe *common.FormatError
		require.Error(t, err, bad)
		assert.True(t, errors.As(err, &fe), bad)
		assert.ErrorIs(t, err, common.ErrInvalidInput)
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2019, 1, 5, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2019.01.05", "2019年1月5日", "2019-1-5", " 2019.1.05 "} {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	got, err := ParseDate("")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = ParseDate("2019.01")
	assert.Error(t, err)
	_, err = ParseDate("2019.13.01")
	assert.Error(t, err)
}

func TestParseMonth(t *testing.T) {
	got, err := ParseMonth("2018年3月")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2018, 3, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseMonth("2018.11")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2018, 11, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestAddMonthsClampsDay(t *testing.T) {
	jan31 := time.Date(2019, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2019, 2, 28, 0, 0, 0, 0, time.UTC), AddMonths(jan31, 1))
	assert.Equal(t, time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC), AddMonths(jan31, 12))
	first := time.Date(2018, 11, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2019, 2, 1, 0, 0, 0, 0, time.UTC), AddMonths(first, 3))
}

func TestDaysBetween(t *testing.T) {
	ref := time.Date(2019, 3, 22, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 21, DaysBetween(ref, time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, -10, DaysBetween(ref, time.Date(2019, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, math.IsNaN(DaysBetweenOrNaN(ref, time.Time{})))
}

func TestRoundHalfEven(t *testing.T) {
	assert.Equal(t, 2.0, RoundHalfEven(2.5, 0))
	assert.Equal(t, 4.0, RoundHalfEven(3.5, 0))
	assert.Equal(t, 12000.0, RoundHalfEven(12345, -3))
	assert.Equal(t, 1.23, RoundHalfEven(1.234, 2))
	assert.True(t, math.IsInf(RoundHalfEven(math.Inf(1), 2), 1))
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(nil))
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty(map[string]any{}))
	assert.True(t, IsEmpty([]any{}))
	assert.True(t, IsEmpty([]any{"", nil, []any{}}))
	assert.False(t, IsEmpty([]any{"", "x"}))
	assert.False(t, IsEmpty(0.0))
	assert.False(t, IsEmpty(map[string]any{"a": nil}))
}

func TestLookup(t *testing.T) {
	tree := map[string]any{
		"summary_info": map[string]any{
			"shareAndDebt": map[string]any{
				"unDestroyLoanCard": map[string]any{"creditLimit": "10,000", "usedCreditLimit": ""},
			},
		},
		"list": []any{"a", map[string]any{"k": "v"}},
		"0":    "literal",
	}

	assert.Equal(t, "10,000", Lookup(tree, "summary_info,shareAndDebt,unDestroyLoanCard,creditLimit", "0"))
	assert.Equal(t, "0", Lookup(tree, "summary_info,shareAndDebt,unDestroyLoanCard,usedCreditLimit", "0"))
	assert.Equal(t, "0", Lookup(tree, "summary_info,missing,creditLimit", "0"))
	assert.Equal(t, "v", Lookup(tree, "list,1,k", nil))
	assert.Equal(t, map[string]any{"k": "v"}, Lookup(tree, "list,-1", nil))
	assert.Nil(t, Lookup(tree, "list,5", nil))
	assert.Equal(t, "literal", Lookup(tree, "0", nil))
	assert.Equal(t, "d", Lookup(nil, "a", "d"))

	amt, err := LookupAmount(tree, "summary_info,shareAndDebt,unDestroyLoanCard,creditLimit", "0")
	require.NoError(t, err)
	assert.Equal(t, 10000.0, amt)
}

func TestNormalize(t *testing.T) {
	type inner struct {
		Name string `json:"name"`
	}
	got, err := Normalize(struct {
		Items []inner `json:"items"`
	}{Items: []inner{{Name: "x"}}})
	require.NoError(t, err)
	assert.Equal(t, "x", LookupString(got, "items,0,name", ""))
}
