package domain

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	cellSeparators = regexp.MustCompile(`[\n\t]+`)
	firstDigitRun  = regexp.MustCompile(`\d+`)
)

// HasExactLine reports whether some cell of text, trimmed, is exactly line. Cells are
// split on line breaks and tabs, the separator table rows use between columns.
func HasExactLine(text, line string) bool {
	want := strings.TrimSpace(line)
	if want == "" {
		return false
	}
	for _, l := range cellSeparators.Split(text, -1) {
		if strings.TrimSpace(l) == want {
			return true
		}
	}
	return false
}

// ShowsAmount reports whether the visible text of a list row already displays
// target. Cells are split on line breaks and tabs; each cell and each of its
// whitespace-separated tokens is tried. The cell holding the code itself is ignored.
func ShowsAmount(text, code string, target decimal.Decimal) bool {
	code = strings.TrimSpace(code)
	for _, cell := range cellSeparators.Split(text, -1) {
		cell = strings.TrimSpace(cell)
		if cell == "" || cell == code {
			continue
		}
		if matchesAmount(cell, target) {
			return true
		}

		tokens := strings.Fields(cell)
		if len(tokens) < 2 {
			continue
		}
		for _, tok := range tokens {
			if tok != code && matchesAmount(tok, target) {
				return true
			}
		}
	}
	return false
}

func matchesAmount(s string, target decimal.Decimal) bool {
	seen, ok := ParseAmount(s)
	return ok && SameAmount(seen, target)
}

// FirstDigits returns the first run of digits in text, or "".
func FirstDigits(text string) string {
	return firstDigitRun.FindString(text)
}
