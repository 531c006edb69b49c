package spreadsheet

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/Thesaidctm/automate/internal/domain"
)

// Config describes where the identifier and price columns live in the workbook.
type Config struct {
	Path      string
	Sheet     string // first sheet when empty
	HeaderRow int    // 1-based

	// Aliases are tried in order; the 0-based index is used when none matches.
	IDColumns        []string
	ValueColumns     []string
	IDColumnIndex    int
	ValueColumnIndex int
}

// Reader implements usecase.InstructionSource over an xlsx workbook.
type Reader struct {
	cfg    Config
	logger zerolog.Logger
}

// NewReader creates a new Reader.
func NewReader(cfg Config, logger zerolog.Logger) *Reader {
	if cfg.HeaderRow < 1 {
		cfg.HeaderRow = 1
	}
	return &Reader{cfg: cfg, logger: logger}
}

// ReadRows returns the identifier and price cell of every row below the header.
// Rows where both cells are blank are left out.
func (r *Reader) ReadRows(ctx context.Context) ([]domain.SourceRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(r.cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := r.cfg.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found in %s", sheet, r.cfg.Path)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	headerIdx := r.cfg.HeaderRow - 1
	if headerIdx >= len(rows) {
		return nil, fmt.Errorf("header row %d is past the end of sheet %q", r.cfg.HeaderRow, sheet)
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	headers := disambiguate(rows[headerIdx])

	idCol, err := resolveColumn(headers, width, r.cfg.IDColumns, r.cfg.IDColumnIndex)
	if err != nil {
		return nil, fmt.Errorf("identifier column: %w", err)
	}
	valueCol, err := resolveColumn(headers, width, r.cfg.ValueColumns, r.cfg.ValueColumnIndex)
	if err != nil {
		return nil, fmt.Errorf("value column: %w", err)
	}

	r.logger.Debug().
		Str("sheet", sheet).
		Str("id_column", columnLabel(headers, idCol)).
		Str("value_column", columnLabel(headers, valueCol)).
		Msg("columns resolved")

	var out []domain.SourceRow
	for i := headerIdx + 1; i < len(rows); i++ {
		line := i + 1
		code := strings.TrimSpace(cell(rows[i], idCol))
		value := strings.TrimSpace(cell(rows[i], valueCol))
		if code == "" && value == "" {
			continue
		}

		if isNumberCell(f, sheet, idCol, line, code) {
			code = shortestNumber(code)
		}

		out = append(out, domain.SourceRow{
			Line:    line,
			Code:    code,
			Value:   value,
			Numeric: isNumberCell(f, sheet, valueCol, line, value),
		})
	}

	return out, nil
}

// disambiguate suffixes repeated header names with .1, .2 in order of appearance.
func disambiguate(header []string) []string {
	seen := make(map[string]int, len(header))
	out := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if n, ok := seen[h]; ok && h != "" {
			out[i] = fmt.Sprintf("%s.%d", h, n)
		} else {
			out[i] = h
		}
		seen[h]++
	}
	return out
}

func resolveColumn(headers []string, width int, aliases []string, fallback int) (int, error) {
	for _, alias := range aliases {
		for i, h := range headers {
			if h == alias {
				return i, nil
			}
		}
	}
	for _, alias := range aliases {
		alias = strings.TrimSpace(alias)
		if alias == "" {
			continue
		}
		for i, h := range headers {
			if strings.EqualFold(h, alias) {
				return i, nil
			}
		}
	}
	for _, alias := range aliases {
		want, err := strconv.ParseFloat(strings.TrimSpace(alias), 64)
		if err != nil {
			continue
		}
		for i, h := range headers {
			if got, err := strconv.ParseFloat(h, 64); err == nil && got == want {
				return i, nil
			}
		}
	}

	if fallback >= 0 && fallback < width {
		return fallback, nil
	}
	return 0, fmt.Errorf("none of %q found and column %d is out of range", aliases, fallback)
}

func columnLabel(headers []string, col int) string {
	name, _ := excelize.ColumnNumberToName(col + 1)
	if col < len(headers) && headers[col] != "" {
		return name + " (" + headers[col] + ")"
	}
	return name
}

func cell(row []string, col int) string {
	if col < len(row) {
		return row[col]
	}
	return ""
}

// isNumberCell reports whether the cell stores a number. Numbers written without an
// explicit type read back as unset, so those count when their raw text parses.
func isNumberCell(f *excelize.File, sheet string, col, line int, raw string) bool {
	if raw == "" {
		return false
	}
	name, err := excelize.CoordinatesToCellName(col+1, line)
	if err != nil {
		return false
	}
	typ, err := f.GetCellType(sheet, name)
	if err != nil {
		return false
	}
	switch typ {
	case excelize.CellTypeNumber:
		return true
	case excelize.CellTypeUnset:
		_, err := strconv.ParseFloat(raw, 64)
		return err == nil
	}
	return false
}

// shortestNumber renders a numeric identifier without binary float noise: a stored
// 1.1000000000000001 reads as 1.1.
func shortestNumber(raw string) string {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
