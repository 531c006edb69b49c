package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"

	"github.com/Thesaidctm/automate/internal/domain"
	"github.com/Thesaidctm/automate/internal/usecase"
)

// networkQuiet is how long no request may be in flight before the network counts as idle.
const networkQuiet = 500 * time.Millisecond

const scrollContainersJS = `(sel, limit) => {
	const found = [];
	for (const el of document.querySelectorAll(sel)) {
		if (found.length >= limit) break;
		const style = getComputedStyle(el);
		if (el.scrollHeight > el.clientHeight + 10 && /(auto|scroll)/.test(style.overflowY)) {
			found.push(el);
		}
	}
	return found;
}`

// Config holds how to reach the already-open browser.
type Config struct {
	// BrowserURL is the remote debugging endpoint, e.g. http://localhost:9222.
	BrowserURL string
	// URLPattern picks the tab whose URL matches this JS regular expression.
	// The most recent tab is used when empty.
	URLPattern string
	// NavigationTimeout bounds every Navigate call.
	NavigationTimeout time.Duration
}

// Page implements usecase.Page on a rod tab.
type Page struct {
	page       *rod.Page
	navTimeout time.Duration
}

// Connect attaches to a running browser over the DevTools protocol and selects the tab
// the operator left on the list. The browser is never launched or closed here.
func Connect(ctx context.Context, cfg Config) (*Page, error) {
	controlURL, err := launcher.ResolveURL(cfg.BrowserURL)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve %s: %v", domain.ErrSessionUnavailable, cfg.BrowserURL, err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: connect to browser: %v", domain.ErrSessionUnavailable, err)
	}

	pages, err := browser.Pages()
	if err != nil {
		return nil, fmt.Errorf("%w: list tabs: %v", domain.ErrSessionUnavailable, err)
	}

	var page *rod.Page
	if cfg.URLPattern != "" {
		page, err = pages.FindByURL(cfg.URLPattern)
		if err != nil {
			return nil, fmt.Errorf("%w: no tab matches %q: %v", domain.ErrSessionUnavailable, cfg.URLPattern, err)
		}
	} else {
		page = pages.Last()
	}
	if page == nil {
		return nil, fmt.Errorf("%w: browser has no open tab", domain.ErrSessionUnavailable)
	}

	if page, err = page.Activate(); err != nil {
		return nil, fmt.Errorf("%w: activate tab: %v", domain.ErrSessionUnavailable, err)
	}

	return NewPage(page, cfg.NavigationTimeout), nil
}

// NewPage wraps an existing rod page.
func NewPage(page *rod.Page, navTimeout time.Duration) *Page {
	return &Page{page: page, navTimeout: navTimeout}
}

func (p *Page) Find(ctx context.Context, sel usecase.Selector) ([]usecase.Element, error) {
	page := p.page.Context(ctx)

	var (
		elements rod.Elements
		err      error
	)
	switch sel.Kind {
	case usecase.KindXPath:
		elements, err = page.ElementsX(sel.Expr)
	default:
		elements, err = page.Elements(sel.Expr)
	}
	if err != nil {
		return nil, err
	}
	return wrap(elements), nil
}

func (p *Page) URL(ctx context.Context) (string, error) {
	info, err := p.page.Context(ctx).Info()
	if err != nil {
		return "", err
	}
	return info.URL, nil
}

func (p *Page) Navigate(ctx context.Context, url string) error {
	page := p.page.Context(ctx)
	if p.navTimeout > 0 {
		page = page.Timeout(p.navTimeout)
		defer page.CancelTimeout()
	}
	return page.Navigate(url)
}

func (p *Page) WaitDOMReady(ctx context.Context, timeout time.Duration) error {
	page := p.page.Context(ctx).Timeout(timeout)
	defer page.CancelTimeout()
	return page.Wait(rod.Eval(`() => document.readyState !== 'loading'`))
}

// WaitNetworkIdle blocks until no request has been in flight for networkQuiet or
// timeout passes; only the caller's context ending is reported.
func (p *Page) WaitNetworkIdle(ctx context.Context, timeout time.Duration) error {
	page := p.page.Context(ctx).Timeout(timeout)
	defer page.CancelTimeout()

	wait := page.WaitRequestIdle(networkQuiet, nil, nil, nil)
	wait()
	return ctx.Err()
}

func (p *Page) ScrollContainers(ctx context.Context, sel usecase.Selector, limit int) ([]usecase.Element, error) {
	if sel.Kind != usecase.KindCSS {
		return nil, fmt.Errorf("scroll containers need a CSS selector, got %q", sel.Expr)
	}
	elements, err := p.page.Context(ctx).ElementsByJS(rod.Eval(scrollContainersJS, sel.Expr, limit))
	if err != nil {
		return nil, err
	}
	return wrap(elements), nil
}

// ScrollViewport turns the mouse wheel and falls back to window.scrollBy.
func (p *Page) ScrollViewport(ctx context.Context, dy int) error {
	if err := p.page.Mouse.Scroll(0, float64(dy), 1); err == nil {
		return nil
	}
	_, err := p.page.Context(ctx).Eval(`(dy) => window.scrollBy(0, dy)`, dy)
	return err
}

func (p *Page) Screenshot(ctx context.Context) ([]byte, error) {
	return p.page.Context(ctx).Screenshot(true, nil)
}

func wrap(elements rod.Elements) []usecase.Element {
	out := make([]usecase.Element, 0, len(elements))
	for _, el := range elements {
		out = append(out, &Element{el: el})
	}
	return out
}
