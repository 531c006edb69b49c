package domain

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// CodeKey is the ordering key of a record code. Codes whose dot-separated segments are
// all numeric order as a numeric hierarchy ("1.9" < "1.10" < "1.100"); any other code
// orders naturally by alternating text and digit runs.
type CodeKey []keyPart

type keyPart struct {
	digits string // leading zeros trimmed; set when numeric
	text   string // case folded; set when not numeric
	number bool
}

var folder = cases.Fold()

// SortKey builds the ordering key for code. Blank codes produce an empty key, which
// sorts first.
func SortKey(code string) CodeKey {
	s := strings.TrimSpace(code)
	if s == "" {
		return CodeKey{}
	}

	if segments, ok := hierarchicalSegments(s); ok {
		key := make(CodeKey, 0, len(segments))
		for _, seg := range segments {
			key = append(key, numberPart(seg))
		}
		return key
	}

	var key CodeKey
	for _, run := range splitDigitRuns(s) {
		if isDigits(run) {
			key = append(key, numberPart(run))
			continue
		}
		key = append(key, keyPart{text: folder.String(run)})
	}
	return key
}

// Compare orders two keys; numeric parts sort before text parts at the same position
// and a key that is a prefix of another sorts first.
func (k CodeKey) Compare(other CodeKey) int {
	for i := 0; i < len(k) && i < len(other); i++ {
		if c := k[i].compare(other[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(k) < len(other):
		return -1
	case len(k) > len(other):
		return 1
	default:
		return 0
	}
}

func (p keyPart) compare(o keyPart) int {
	switch {
	case p.number && !o.number:
		return -1
	case !p.number && o.number:
		return 1
	case p.number:
		if len(p.digits) != len(o.digits) {
			if len(p.digits) < len(o.digits) {
				return -1
			}
			return 1
		}
		return strings.Compare(p.digits, o.digits)
	default:
		return strings.Compare(p.text, o.text)
	}
}

// CompareCodes orders two codes by their keys, falling back to the raw text so the
// order is total.
func CompareCodes(a, b string) int {
	if c := SortKey(a).Compare(SortKey(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// SortCodes sorts codes in processing order.
func SortCodes(codes []string) {
	sort.SliceStable(codes, func(i, j int) bool {
		return CompareCodes(codes[i], codes[j]) < 0
	})
}

// HierarchicalParts splits a two-level code "<macro>.<sub>" into its segments.
func HierarchicalParts(code string) (macro, sub string, ok bool) {
	parts := strings.Split(strings.TrimSpace(code), ".")
	if len(parts) != 2 || !isDigits(parts[0]) || !isDigits(parts[1]) {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// SameNumber compares two digit strings numerically.
func SameNumber(a, b string) bool {
	if !isDigits(a) || !isDigits(b) {
		return false
	}
	return trimZeros(a) == trimZeros(b)
}

func hierarchicalSegments(s string) ([]string, bool) {
	var segments []string
	for _, seg := range strings.Split(s, ".") {
		if seg == "" {
			continue
		}
		if !isDigits(seg) {
			return nil, false
		}
		segments = append(segments, seg)
	}
	return segments, len(segments) > 0
}

func splitDigitRuns(s string) []string {
	var runs []string
	var current strings.Builder
	inDigits := false
	for i, r := range s {
		digit := r >= '0' && r <= '9'
		if i > 0 && digit != inDigits {
			runs = append(runs, current.String())
			current.Reset()
		}
		inDigits = digit
		current.WriteRune(r)
	}
	return append(runs, current.String())
}

func numberPart(digits string) keyPart {
	return keyPart{digits: trimZeros(digits), number: true}
}

func trimZeros(digits string) string {
	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
