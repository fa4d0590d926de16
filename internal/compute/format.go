package compute

import (
	"strings"

	"github.com/shopspring/decimal"
)

// GroupedFixed2 renders d with exactly two decimal places and comma
// thousands separators, e.g. 1234.5 -> "1,234.50". The sign, if any,
// stays in front of the grouped digits.
func GroupedFixed2(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteByte(',')
		b.WriteString(intPart[i : i+3])
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// FormatUSD renders d as on-screen currency: "$1,234.56".
func FormatUSD(d decimal.Decimal) string {
	return "$" + GroupedFixed2(d)
}
