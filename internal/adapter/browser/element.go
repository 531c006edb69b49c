package browser

import (
	"context"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"

	"github.com/Thesaidctm/automate/internal/usecase"
)

// Element implements usecase.Element on a rod element.
type Element struct {
	el *rod.Element
}

func (e *Element) Find(ctx context.Context, sel usecase.Selector) ([]usecase.Element, error) {
	el := e.el.Context(ctx)

	var (
		elements rod.Elements
		err      error
	)
	switch sel.Kind {
	case usecase.KindXPath:
		elements, err = el.ElementsX(sel.Expr)
	default:
		elements, err = el.Elements(sel.Expr)
	}
	if err != nil {
		return nil, err
	}
	return wrap(elements), nil
}

func (e *Element) Text(ctx context.Context) (string, error) {
	return e.el.Context(ctx).Text()
}

func (e *Element) Visible(ctx context.Context) (bool, error) {
	return e.el.Context(ctx).Visible()
}

func (e *Element) Click(ctx context.Context) error {
	return e.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1)
}

func (e *Element) ScrollIntoView(ctx context.Context) error {
	return e.el.Context(ctx).ScrollIntoView()
}

func (e *Element) ScrollBy(ctx context.Context, dy int) (bool, error) {
	res, err := e.el.Context(ctx).Eval(`(dy) => {
		const before = this.scrollTop;
		this.scrollTop = before + dy;
		return this.scrollTop !== before;
	}`, dy)
	if err != nil {
		return false, err
	}
	return res.Value.Bool(), nil
}

func (e *Element) Value(ctx context.Context) (string, error) {
	v, err := e.el.Context(ctx).Property("value")
	if err != nil {
		return "", err
	}
	return v.Str(), nil
}

// Clear selects the content and deletes it the way a user would, so input masks see
// the edit.
func (e *Element) Clear(ctx context.Context) error {
	el := e.el.Context(ctx)
	if err := el.SelectAllText(); err != nil {
		return err
	}
	return el.Type(input.Backspace)
}

func (e *Element) TypeText(ctx context.Context, text string, delay time.Duration) error {
	el := e.el.Context(ctx)
	for _, r := range text {
		if err := el.Type(input.Key(r)); err != nil {
			return err
		}
		if delay <= 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return nil
}

func (e *Element) Fill(ctx context.Context, text string) error {
	el := e.el.Context(ctx)
	if err := el.SelectAllText(); err != nil {
		return err
	}
	return el.Input(text)
}
