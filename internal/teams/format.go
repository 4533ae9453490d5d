package teams

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FormatPercent renders a budget fraction as a whole percentage with
// thousands grouping, e.g. 0.853 -> "85%" and 12.5 -> "1,250%". Ties round
// to even.
func FormatPercent(fraction decimal.Decimal) string {
	return formatGrouped(fraction.Mul(hundred).RoundBank(0), 0) + "%"
}

// FormatMoney renders amount with two decimals, thousands grouping and the
// currency code as suffix, e.g. "1,234.50 USD". Half cents round away from
// zero.
func FormatMoney(amount decimal.Decimal, currency string) string {
	return formatGrouped(amount.Round(2), 2) + " " + currency
}

// formatGrouped renders a value already rounded to places decimals.
func formatGrouped(d decimal.Decimal, places int32) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	whole := humanize.BigComma(d.BigInt())
	if places <= 0 {
		return sign + whole
	}

	// "0.50" -> ".50"
	frac := d.Sub(d.Truncate(0)).StringFixed(places)
	return sign + whole + frac[1:]
}
