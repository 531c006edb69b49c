package mocks

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Thesaidctm/automate/internal/domain"
	"github.com/Thesaidctm/automate/internal/usecase"
)

const (
	// ListURL is where the fake application serves its list.
	ListURL = "https://obras.example/servicos"

	// RowHeight is the pixel height of one fake list row.
	RowHeight = 40
)

// Record is one record of the fake application.
type Record struct {
	Code  string
	Price string

	// WrongOpens is how many edit clicks on this row open the next record instead.
	WrongOpens int
}

// Mask is how the fake price input reacts to input.
type Mask int

const (
	// MaskPlain stores whatever is typed or pasted.
	MaskPlain Mask = iota
	// MaskCents keeps digits only and fills them in from the right as cents.
	MaskCents
	// MaskNoTyping drops key presses but accepts a pasted value.
	MaskNoTyping
	// MaskFrozen ignores all input.
	MaskFrozen
)

// FakeApp is an in-memory stand-in for the target application: a list that only
// renders Window rows at a time and an edit surface with a masked price input.
type FakeApp struct {
	mu      sync.Mutex
	sel     usecase.Selectors
	records []*Record
	window  int
	offset  int
	url     string
	open    *Record
	value   string
	acked   bool

	Mask          Mask
	SaveNavigates bool
	ReturnURL     string
	ShowSuccess   bool
	NoPriceInput  bool
	NoRowEdit     bool
	HideListPrice bool
	TableRows     bool // rows render their cells tab-separated, as <tr> innerText does
	ScreenshotErr error

	EditClicks  int
	Writes      int
	Saves       int
	Navigations int
	Opened      []string
}

// NewFakeApp creates an app showing records on its list, window rows at a time.
// A window of 0 renders every row.
func NewFakeApp(sel usecase.Selectors, window int, records ...Record) *FakeApp {
	app := &FakeApp{
		sel:           sel,
		window:        window,
		url:           ListURL,
		Mask:          MaskCents,
		SaveNavigates: true,
		ShowSuccess:   true,
	}
	for i := range records {
		r := records[i]
		app.records = append(app.records, &r)
	}
	if app.window <= 0 {
		app.window = len(app.records)
	}
	return app
}

// Price returns the committed price of code.
func (a *FakeApp) Price(code string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, r := range a.records {
		if r.Code == code {
			return r.Price
		}
	}
	return ""
}

// OnList reports whether the list view is showing.
func (a *FakeApp) OnList() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.open == nil
}

func (a *FakeApp) Find(ctx context.Context, sel usecase.Selector) ([]usecase.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if slices.Contains(a.sel.Success, sel) {
		if a.acked {
			return []usecase.Element{&fakeElement{app: a, kind: kindText, text: "Salvo com sucesso"}}, nil
		}
		return nil, nil
	}

	if a.open == nil {
		switch {
		case sel == a.sel.Rows:
			return a.renderedRows(kindRow), nil
		case sel == a.sel.ListReady, slices.Contains(a.sel.EditOnPage, sel):
			return a.renderedRows(kindEdit), nil
		}
		return nil, nil
	}

	macro, item, _ := strings.Cut(a.open.Code, ".")
	switch {
	case slices.Contains(a.sel.PriceInput, sel):
		if a.NoPriceInput {
			return nil, nil
		}
		return []usecase.Element{&fakeElement{app: a, kind: kindInput}}, nil
	case slices.Contains(a.sel.Save, sel):
		return []usecase.Element{&fakeElement{app: a, kind: kindSave}}, nil
	case sel == a.sel.MacroField:
		return []usecase.Element{&fakeElement{app: a, kind: kindText, text: macro + " - SERVIÇOS PRELIMINARES"}}, nil
	case sel == a.sel.ItemField:
		return []usecase.Element{&fakeElement{app: a, kind: kindText, text: item}}, nil
	}
	return nil, nil
}

func (a *FakeApp) URL(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.url, ctx.Err()
}

func (a *FakeApp) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Navigations++
	a.acked = false
	a.showList(url)
	return nil
}

func (a *FakeApp) WaitDOMReady(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

func (a *FakeApp) WaitNetworkIdle(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

func (a *FakeApp) ScrollContainers(ctx context.Context, sel usecase.Selector, limit int) ([]usecase.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.open != nil || sel != a.sel.Containers || limit < 1 || len(a.records) <= a.window {
		return nil, nil
	}
	return []usecase.Element{&fakeElement{app: a, kind: kindContainer}}, nil
}

func (a *FakeApp) ScrollViewport(ctx context.Context, _ int) error {
	return ctx.Err()
}

func (a *FakeApp) Screenshot(ctx context.Context) ([]byte, error) {
	if a.ScreenshotErr != nil {
		return nil, a.ScreenshotErr
	}
	return []byte("\x89PNG"), ctx.Err()
}

func (a *FakeApp) renderedRows(kind elementKind) []usecase.Element {
	end := min(a.offset+a.window, len(a.records))
	rows := make([]usecase.Element, 0, end-a.offset)
	for _, r := range a.records[a.offset:end] {
		rows = append(rows, &fakeElement{app: a, kind: kind, record: r})
	}
	return rows
}

func (a *FakeApp) rendered(r *Record) bool {
	if a.open != nil {
		return false
	}
	end := min(a.offset+a.window, len(a.records))
	return slices.Contains(a.records[a.offset:end], r)
}

func (a *FakeApp) showList(url string) {
	a.open = nil
	a.value = ""
	a.offset = 0
	a.url = url
}

func (a *FakeApp) openRecord(r *Record) {
	a.EditClicks++
	if r.WrongOpens > 0 {
		r.WrongOpens--
		r = a.neighbour(r)
	}
	a.open = r
	a.value = r.Price
	a.acked = false
	a.url = "https://obras.example/servicos/editar/" + r.Code
	a.Opened = append(a.Opened, r.Code)
}

func (a *FakeApp) neighbour(r *Record) *Record {
	i := slices.Index(a.records, r)
	if i+1 < len(a.records) {
		return a.records[i+1]
	}
	if i > 0 {
		return a.records[i-1]
	}
	return r
}

func (a *FakeApp) save() {
	a.Saves++
	a.open.Price = a.value
	a.acked = a.ShowSuccess
	if a.SaveNavigates {
		url := a.ReturnURL
		if url == "" {
			url = ListURL
		}
		a.showList(url)
	}
}

func (a *FakeApp) enter(text string, typed bool) {
	a.Writes++
	switch a.Mask {
	case MaskPlain:
		if typed {
			a.value += text
		} else {
			a.value = text
		}
	case MaskCents:
		digits := onlyDigits(text)
		if typed {
			digits = onlyDigits(a.value) + digits
		}
		a.value = cents(digits)
	case MaskNoTyping:
		if !typed {
			a.value = text
		}
	case MaskFrozen:
	}
}

type elementKind int

const (
	kindRow elementKind = iota
	kindEdit
	kindContainer
	kindInput
	kindSave
	kindText
)

type fakeElement struct {
	app    *FakeApp
	kind   elementKind
	record *Record
	text   string
}

func (e *fakeElement) Find(ctx context.Context, sel usecase.Selector) ([]usecase.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a := e.app
	a.mu.Lock()
	defer a.mu.Unlock()

	switch e.kind {
	case kindRow:
		if !a.NoRowEdit && len(a.sel.EditInRow) > 0 && sel == a.sel.EditInRow[0] && a.rendered(e.record) {
			return []usecase.Element{&fakeElement{app: a, kind: kindEdit, record: e.record}}, nil
		}
	case kindContainer:
		if sel == a.sel.Rows && a.open == nil {
			return a.renderedRows(kindRow), nil
		}
	}
	return nil, nil
}

func (e *fakeElement) Text(ctx context.Context) (string, error) {
	a := e.app
	a.mu.Lock()
	defer a.mu.Unlock()
	if e.kind == kindRow {
		if a.HideListPrice {
			return e.record.Code, ctx.Err()
		}
		if a.TableRows {
			return e.record.Code + "\tServiço\tm²\t" + e.record.Price, ctx.Err()
		}
		return e.record.Code + "\n" + e.record.Price, ctx.Err()
	}
	return e.text, ctx.Err()
}

func (e *fakeElement) Visible(ctx context.Context) (bool, error) {
	a := e.app
	a.mu.Lock()
	defer a.mu.Unlock()
	switch e.kind {
	case kindRow, kindEdit:
		return a.rendered(e.record), ctx.Err()
	}
	return true, ctx.Err()
}

func (e *fakeElement) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a := e.app
	a.mu.Lock()
	defer a.mu.Unlock()
	switch e.kind {
	case kindEdit:
		if !a.rendered(e.record) {
			return errors.New("element is detached")
		}
		a.openRecord(e.record)
	case kindSave:
		if a.open == nil {
			return errors.New("element is detached")
		}
		a.save()
	}
	return nil
}

func (e *fakeElement) ScrollIntoView(ctx context.Context) error {
	return ctx.Err()
}

func (e *fakeElement) ScrollBy(ctx context.Context, dy int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if e.kind != kindContainer {
		return false, nil
	}
	a := e.app
	a.mu.Lock()
	defer a.mu.Unlock()

	rows := max(dy/RowHeight, 1)
	next := min(a.offset+rows, max(len(a.records)-a.window, 0))
	moved := next != a.offset
	a.offset = next
	return moved, nil
}

func (e *fakeElement) Value(ctx context.Context) (string, error) {
	a := e.app
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.value, ctx.Err()
}

func (e *fakeElement) Clear(ctx context.Context) error {
	a := e.app
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Mask != MaskFrozen {
		a.value = ""
	}
	return ctx.Err()
}

func (e *fakeElement) TypeText(ctx context.Context, text string, _ time.Duration) error {
	a := e.app
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enter(text, true)
	return ctx.Err()
}

func (e *fakeElement) Fill(ctx context.Context, text string) error {
	a := e.app
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enter(text, false)
	return ctx.Err()
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// cents renders digits the way a right-filling currency mask does: "8704" is "87,04".
func cents(digits string) string {
	digits = strings.TrimLeft(digits, "0")
	for len(digits) < 3 {
		digits = "0" + digits
	}
	whole, frac := digits[:len(digits)-2], digits[len(digits)-2:]

	var groups []string
	for len(whole) > 3 {
		groups = append([]string{whole[len(whole)-3:]}, groups...)
		whole = whole[:len(whole)-3]
	}
	groups = append([]string{whole}, groups...)
	return strings.Join(groups, ".") + "," + frac
}

// Retrier retries retryable failures back to back.
type Retrier struct {
	Attempts int
}

func (r *Retrier) Retry(ctx context.Context, maxTries int, operation func(attempt int) error) error {
	var err error
	for attempt := 0; attempt < max(maxTries, 1); attempt++ {
		r.Attempts++
		err = operation(attempt)
		if err == nil || !domain.IsRetryable(err) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return err
}

// OutcomeLog is an in-memory OutcomeRecorder.
type OutcomeLog struct {
	mu       sync.Mutex
	outcomes []domain.Outcome

	RecordFunc func(ctx context.Context, outcome domain.Outcome) error
}

func (l *OutcomeLog) Record(ctx context.Context, outcome domain.Outcome) error {
	if l.RecordFunc != nil {
		return l.RecordFunc(ctx, outcome)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.outcomes = append(l.outcomes, outcome)
	return nil
}

// Outcomes returns the recorded outcomes in order.
func (l *OutcomeLog) Outcomes() []domain.Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.outcomes)
}
