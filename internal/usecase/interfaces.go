package usecase

import (
	"context"
	"time"

	"github.com/Thesaidctm/automate/internal/domain"
)

//go:generate mockgen -destination=mocks/mock_interfaces.go -package=mocks github.com/Thesaidctm/automate/internal/usecase InstructionSource,DiagnosticStore,Metrics

// SelectorKind tells the automation driver how to interpret Selector.Expr.
type SelectorKind int

const (
	KindCSS SelectorKind = iota
	KindXPath
)

// Selector is a single element query.
type Selector struct {
	Kind SelectorKind
	Expr string
}

// CSS builds a CSS selector.
func CSS(expr string) Selector {
	return Selector{Kind: KindCSS, Expr: expr}
}

// XPath builds an XPath selector.
func XPath(expr string) Selector {
	return Selector{Kind: KindXPath, Expr: expr}
}

// Scope is something elements can be searched under: the page or an element.
type Scope interface {
	// Find returns the elements currently matching sel without waiting.
	Find(ctx context.Context, sel Selector) ([]Element, error)
}

// Element is a handle on one DOM node. Handles are transient: the list re-renders,
// so callers never keep one past the step that found it.
type Element interface {
	Scope
	Text(ctx context.Context) (string, error)
	Visible(ctx context.Context) (bool, error)
	Click(ctx context.Context) error
	ScrollIntoView(ctx context.Context) error
	// ScrollBy scrolls the element's own content and reports whether it moved.
	ScrollBy(ctx context.Context, dy int) (bool, error)
	Value(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
	// TypeText sends text key by key, pausing delay between keys.
	TypeText(ctx context.Context, text string, delay time.Duration) error
	// Fill replaces the element's value in one insertion.
	Fill(ctx context.Context, text string) error
}

// Page is the single browser tab the sync drives.
type Page interface {
	Scope
	URL(ctx context.Context) (string, error)
	Navigate(ctx context.Context, url string) error
	WaitDOMReady(ctx context.Context, timeout time.Duration) error
	WaitNetworkIdle(ctx context.Context, timeout time.Duration) error
	// ScrollContainers returns up to limit elements matching sel whose content overflows.
	ScrollContainers(ctx context.Context, sel Selector, limit int) ([]Element, error)
	ScrollViewport(ctx context.Context, dy int) error
	Screenshot(ctx context.Context) ([]byte, error)
}

// InstructionSource exposes the spreadsheet rows the instructions are built from.
type InstructionSource interface {
	ReadRows(ctx context.Context) ([]domain.SourceRow, error)
}

// OutcomeRecorder persists one outcome per instruction.
type OutcomeRecorder interface {
	Record(ctx context.Context, outcome domain.Outcome) error
}

// DiagnosticStore keeps failure snapshots and returns the stored file name.
type DiagnosticStore interface {
	Save(code string, png []byte) (string, error)
}

// Retrier runs operation up to maxTries times while it fails with a retryable error.
type Retrier interface {
	Retry(ctx context.Context, maxTries int, operation func(attempt int) error) error
}

// Metrics observes the sync.
type Metrics interface {
	ObserveOutcome(status domain.Status, kind string, elapsed time.Duration)
	IdentityRetry()
	WriteAttempt(mode string, matched bool)
	SaveFallback()
}

type noopMetrics struct{}

func (noopMetrics) ObserveOutcome(domain.Status, string, time.Duration) {}
func (noopMetrics) IdentityRetry() {}
func (noopMetrics) WriteAttempt(string, bool) {}
func (noopMetrics) SaveFallback() {}
