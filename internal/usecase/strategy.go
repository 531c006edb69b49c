package usecase

import (
	"context"
	"time"

	"github.com/Thesaidctm/automate/internal/domain"
)

// Strategy is one way of finding an element under a scope. Locate returns a nil
// element, not an error, when nothing visible matches.
type Strategy interface {
	Locate(ctx context.Context, scope Scope) (Element, error)
}

// Locate returns the first visible element matching s.
func (s Selector) Locate(ctx context.Context, scope Scope) (Element, error) {
	elements, err := scope.Find(ctx, s)
	if err != nil {
		return nil, err
	}
	return firstVisible(ctx, elements)
}

// ExactLine finds the first visible row whose text has a line equal to Line.
type ExactLine struct {
	Rows Selector
	Line string
}

// Locate implements Strategy.
func (s ExactLine) Locate(ctx context.Context, scope Scope) (Element, error) {
	rows, err := scope.Find(ctx, s.Rows)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		text, err := row.Text(ctx)
		if err != nil {
			continue
		}
		if !domain.HasExactLine(text, s.Line) {
			continue
		}
		if visible, err := row.Visible(ctx); err == nil && visible {
			return row, nil
		}
	}
	return nil, ctx.Err()
}

// Chain tries strategies in order until one yields a visible element.
type Chain []Strategy

// ChainOf builds a chain from plain selectors.
func ChainOf(selectors ...Selector) Chain {
	chain := make(Chain, 0, len(selectors))
	for _, s := range selectors {
		chain = append(chain, s)
	}
	return chain
}

// First returns the first match of the chain, or nil.
func (c Chain) First(ctx context.Context, scope Scope) (Element, error) {
	for _, strategy := range c {
		el, err := strategy.Locate(ctx, scope)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		if el != nil {
			return el, nil
		}
	}
	return nil, nil
}

// Await polls the chain until it yields an element or timeout elapses. A nil element
// with a nil error means the deadline passed.
func (c Chain) Await(ctx context.Context, scope Scope, timeout, poll time.Duration) (Element, error) {
	deadline := time.Now().Add(timeout)
	for {
		el, err := c.First(ctx, scope)
		if err != nil || el != nil {
			return el, err
		}
		if !time.Now().Before(deadline) {
			return nil, nil
		}
		if err := pause(ctx, poll); err != nil {
			return nil, err
		}
	}
}

func firstVisible(ctx context.Context, elements []Element) (Element, error) {
	for _, el := range elements {
		visible, err := el.Visible(ctx)
		if err != nil {
			continue
		}
		if visible {
			return el, nil
		}
	}
	return nil, ctx.Err()
}

// pause sleeps for d unless ctx ends first.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
