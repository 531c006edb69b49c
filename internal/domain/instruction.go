package domain

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Instruction asks for the record named Code to carry Target as its price.
type Instruction struct {
	Code   string
	Target decimal.Decimal
}

// TargetText is the canonical display form of the target.
func (i Instruction) TargetText() string {
	return FormatAmount(i.Target)
}

// Status is the terminal state of one instruction.
type Status string

const (
	StatusSuccess Status = "success"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Outcome is the logged result of processing one instruction.
type Outcome struct {
	Code       string
	Target     decimal.Decimal
	Status     Status
	Message    string
	Diagnostic string // screenshot file name, empty when none
	Err        error
}

// SourceRow is one spreadsheet row reduced to the two columns the sync consumes.
type SourceRow struct {
	Line    int // 1-based sheet row, for diagnostics
	Code    string
	Value   string
	Numeric bool // Value is the raw text of a numeric cell
}

// RejectedRow is a source row dropped while building instructions.
type RejectedRow struct {
	Row    SourceRow
	Reason string
}

// NormalizeCode trims a code and strips the ".0" a spreadsheet adds to integral numbers.
func NormalizeCode(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, ".0")
	return s
}

// BuildInstructions turns source rows into the processing-ordered instruction list.
// Rows with a blank code or an unusable amount are rejected; when a code repeats the
// last occurrence wins.
func BuildInstructions(rows []SourceRow) ([]Instruction, []RejectedRow) {
	byCode := make(map[string]decimal.Decimal, len(rows))
	var rejected []RejectedRow

	for _, row := range rows {
		code := NormalizeCode(row.Code)
		if code == "" {
			rejected = append(rejected, RejectedRow{Row: row, Reason: "blank code"})
			continue
		}

		var (
			amount decimal.Decimal
			ok     bool
		)
		if row.Numeric {
			amount, ok = ParseNumber(row.Value)
		} else {
			amount, ok = ParseAmount(row.Value)
		}
		if !ok {
			rejected = append(rejected, RejectedRow{Row: row, Reason: ErrUnparsableAmount.Error()})
			continue
		}

		byCode[code] = amount
	}

	instructions := make([]Instruction, 0, len(byCode))
	for code, amount := range byCode {
		instructions = append(instructions, Instruction{Code: code, Target: amount})
	}

	sort.Slice(instructions, func(i, j int) bool {
		return CompareCodes(instructions[i].Code, instructions[j].Code) < 0
	})

	return instructions, rejected
}
