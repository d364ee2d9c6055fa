package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"$1,234.56", "1234.56", true},
		{"1234.56", "1234.56", true},
		{"100", "100", true},
		{"$0.99", "0.99", true},
		{"-$50.00", "-50", true},
		{"USD 2,500", "2500", true},
		{"garbage", "0", false},
		{"", "0", false},
		{"$", "0", false},
	}

	for _, tt := range tests {
		d, ok := Parse(tt.raw)
		assert.Equal(t, tt.ok, ok, "parsable flag for %q", tt.raw)
		want, err := decimal.NewFromString(tt.want)
		require.NoError(t, err)
		assert.True(t, d.Equal(want), "Parse(%q) = %s, want %s", tt.raw, d, want)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"1234.5", "$1,234.50"},
		{"0", "$0.00"},
		{"999", "$999.00"},
		{"1000", "$1,000.00"},
		{"1234567.891", "$1,234,567.89"},
		{"-50", "-$50.00"},
	}

	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.value)
		require.NoError(t, err)
		assert.Equal(t, tt.want, Format(d))
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	d, ok := Parse("$1,234.56")
	require.True(t, ok)
	assert.Equal(t, "$1,234.56", Format(d))
}
