package usecase

import (
	"fmt"
	"strings"
)

// Vocabulary holds the visible texts of the target application the selectors are
// derived from.
type Vocabulary struct {
	EditText     string
	SaveText     string
	PriceLabels  []string
	PriceHooks   []string // extra CSS queries for the price input
	MacroLabel   string
	ItemLabel    string
	SuccessTexts []string
}

// Selectors is the markup vocabulary of the list and the edit surface. Each slice is
// a priority chain.
type Selectors struct {
	Rows       Selector
	Containers Selector
	ListReady  Selector
	EditInRow  []Selector
	EditOnPage []Selector
	PriceInput []Selector
	Save       []Selector
	Success    []Selector
	MacroField Selector
	ItemField  Selector
}

// NewSelectors derives the selector chains from v.
func NewSelectors(v Vocabulary) Selectors {
	edit := cssString(v.EditText)
	editMarker := fmt.Sprintf(
		"[title*=%s i], [aria-label*=%s i], .fa-pencil, .icon-pencil", edit, edit)

	s := Selectors{
		Rows:       CSS("tr, [role='row'], .row, .MuiTableRow-root, .ant-table-row"),
		Containers: CSS("div, section, main, table, tbody"),
		ListReady:  CSS(editMarker),
		EditInRow: []Selector{
			CSS(fmt.Sprintf("[title*=%s i], [aria-label*=%s i]", edit, edit)),
			CSS(fmt.Sprintf(
				".fa-pencil, .icon-pencil, [data-icon='edit'], svg[aria-label*=%s i], [data-testid*='edit' i]", edit)),
			CSS("button:has(svg), a:has(svg)"),
		},
		EditOnPage: []Selector{CSS(editMarker)},
		MacroField: XPath(labelValue(v.MacroLabel)),
		ItemField:  XPath(labelValue(v.ItemLabel)),
	}

	for _, label := range v.PriceLabels {
		s.PriceInput = append(s.PriceInput,
			XPath(fmt.Sprintf("(//*[text()[contains(normalize-space(.), %s)]]/following::input)[1]", xpathString(label))))
	}
	for _, label := range v.PriceLabels {
		s.PriceInput = append(s.PriceInput, CSS(fmt.Sprintf("input[aria-label*=%s i]", cssString(label))))
	}
	for _, hook := range v.PriceHooks {
		if strings.TrimSpace(hook) != "" {
			s.PriceInput = append(s.PriceInput, CSS(hook))
		}
	}

	save := v.SaveText
	s.Save = []Selector{
		XPath(fmt.Sprintf("//button[contains(normalize-space(.), %s)]", xpathString(save))),
		CSS(fmt.Sprintf("[data-testid=%s]", cssString("btn-"+strings.ToLower(save)))),
		CSS(fmt.Sprintf("button[title*=%s i]", cssString(save))),
	}

	for _, text := range v.SuccessTexts {
		s.Success = append(s.Success,
			XPath(fmt.Sprintf("//*[text()[contains(normalize-space(.), %s)]]", xpathString(text))))
	}

	return s
}

// labelValue selects the first non-empty block following the element that carries label.
func labelValue(label string) string {
	return fmt.Sprintf(
		"(//*[text()[contains(normalize-space(.), %s)]])[1]/following::*[self::div or self::span or self::p][normalize-space(.) != ''][1]",
		xpathString(label))
}

// cssString quotes s as a CSS string literal.
func cssString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(s) + "'"
}

// xpathString quotes s as an XPath 1.0 string literal, which has no escapes.
func xpathString(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}

	parts := strings.Split(s, "'")
	quoted := make([]string, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		quoted = append(quoted, "'"+p+"'")
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
