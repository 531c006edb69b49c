package domain

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of fraction digits every amount is rounded to.
const AmountScale = 2

var (
	currencySymbol = regexp.MustCompile(`(?i)r\$`)
	nonAmountChars = regexp.MustCompile(`[^0-9,.\-]`)
)

// ParseAmount normalizes free-form monetary text into an exact decimal with two
// fraction digits. The second return value is false when nothing usable remains.
//
// Separator rules: several commas are grouping; with both separators present the
// last one is the decimal point; a lone comma kind is decimal; several periods
// without a comma are grouping.
func ParseAmount(text string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Decimal{}, false
	}

	s = currencySymbol.ReplaceAllString(s, "")
	s = nonAmountChars.ReplaceAllString(s, "")
	if s == "" {
		return decimal.Decimal{}, false
	}

	if strings.Count(s, ",") > 1 {
		s = strings.ReplaceAll(s, ",", "")
	}

	hasComma := strings.Contains(s, ",")
	hasPeriod := strings.Contains(s, ".")

	switch {
	case hasComma && hasPeriod:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	return parseExact(s)
}

// ParseNumber converts the exact textual form of a numeric value (for example a raw
// spreadsheet cell) without any separator disambiguation.
func ParseNumber(text string) (decimal.Decimal, bool) {
	return parseExact(strings.TrimSpace(text))
}

func parseExact(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Decimal{}, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}

	return d.Round(AmountScale), true
}

// FormatAmount renders d with two fraction digits, a comma as decimal separator and
// no grouping.
func FormatAmount(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(AmountScale), ".", ",", 1)
}

// AmountDigits returns the digits of the formatted amount, the form typed into
// masked inputs that fill from the right.
func AmountDigits(d decimal.Decimal) string {
	var b strings.Builder
	for _, r := range FormatAmount(d) {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SameAmount compares two amounts by exact decimal value.
func SameAmount(a, b decimal.Decimal) bool {
	return a.Round(AmountScale).Equal(b.Round(AmountScale))
}
