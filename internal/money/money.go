package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Parse converts a display amount such as "$1,234.56" into a decimal value.
// Grouping separators, currency symbols and surrounding noise are stripped
// before parsing. The second return value reports whether the input was
// parsable; unparsable input yields zero so that aggregation never fails on a
// bad record.
func Parse(raw string) (decimal.Decimal, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-':
			return r
		default:
			return -1
		}
	}, raw)

	if cleaned == "" || cleaned == "-" || cleaned == "." {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Format renders a decimal as a US dollar display string with a thousands
// separator and two decimal places, e.g. 1234.5 -> "$1,234.50".
func Format(d decimal.Decimal) string {
	neg := d.IsNegative()
	fixed := d.Abs().StringFixed(2)

	whole, frac, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}

	out := "$" + b.String() + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}

// FormatFloat is a convenience wrapper for callers holding a float64.
func FormatFloat(v float64) string {
	return Format(decimal.NewFromFloat(v))
}
