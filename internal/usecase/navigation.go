package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Thesaidctm/automate/internal/domain"
)

// Navigator moves the page between the list view and the edit surface and knows when
// each is ready.
type Navigator struct {
	page    Page
	sel     Selectors
	opts    Options
	metrics Metrics
	logger  zerolog.Logger
}

// NewNavigator creates a new Navigator.
func NewNavigator(page Page, sel Selectors, opts Options, metrics Metrics, logger zerolog.Logger) *Navigator {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Navigator{
		page:    page,
		sel:     sel,
		opts:    opts,
		metrics: metrics,
		logger:  logger,
	}
}

// WaitListReady waits for the document and the network to settle, then for the edit
// affordance markers that show the list is interactive.
func (n *Navigator) WaitListReady(ctx context.Context) error {
	if err := n.page.WaitDOMReady(ctx, n.opts.ListReadyTimeout); err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	if err := n.page.WaitNetworkIdle(ctx, n.opts.NetworkIdleTimeout); err != nil && ctx.Err() != nil {
		return ctx.Err()
	}

	marker, err := ChainOf(n.sel.ListReady).Await(ctx, n.page, n.opts.ListReadyTimeout, n.opts.PollInterval)
	if err != nil {
		return err
	}
	if marker == nil {
		return fmt.Errorf("list not interactive after %s", n.opts.ListReadyTimeout)
	}
	return nil
}

// BackToList forces navigation to listURL and waits for the list.
func (n *Navigator) BackToList(ctx context.Context, listURL string) error {
	if err := n.page.Navigate(ctx, listURL); err != nil {
		return fmt.Errorf("navigate to list: %w", err)
	}
	return n.WaitListReady(ctx)
}

// SaveAndReturn clicks save, waits for the acknowledgement and for the application to
// leave editURL. When it does not leave in time the list is reopened at listURL. The
// returned URL is the list baseline for the next instruction.
func (n *Navigator) SaveAndReturn(ctx context.Context, listURL, editURL string) (string, error) {
	save, err := ChainOf(n.sel.Save...).Await(ctx, n.page, n.opts.ElementTimeout, n.opts.PollInterval)
	if err != nil {
		return "", err
	}
	if save == nil {
		return "", domain.ErrSaveNotFound
	}
	if err := save.Click(ctx); err != nil {
		return "", fmt.Errorf("click save: %w", err)
	}

	if err := n.page.WaitNetworkIdle(ctx, n.opts.NetworkIdleTimeout); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		n.logger.Debug().Err(err).Msg("network did not settle after save")
	}
	if err := n.waitSuccess(ctx); err != nil {
		return "", err
	}

	url, left, err := n.waitLeave(ctx, editURL)
	if err != nil {
		return "", err
	}
	if left {
		return url, nil
	}

	n.metrics.SaveFallback()
	n.logger.Warn().Err(domain.ErrSaveTimeout).Str("list_url", listURL).Msg("forcing navigation back to list")

	current, _ := n.page.URL(ctx)
	if current != listURL {
		if err := n.page.Navigate(ctx, listURL); err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrSaveTimeout, err)
		}
	}
	if err := n.WaitListReady(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSaveTimeout, err)
	}

	url, err = n.page.URL(ctx)
	if err != nil {
		return listURL, nil
	}
	return url, nil
}

// waitSuccess gives the success texts one shared window; silence is not an error.
func (n *Navigator) waitSuccess(ctx context.Context) error {
	deadline := time.Now().Add(n.opts.SuccessTimeout)
	for _, sel := range n.sel.Success {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}
		el, err := ChainOf(sel).Await(ctx, n.page, remaining, n.opts.PollInterval)
		if err != nil {
			return err
		}
		if el != nil {
			return nil
		}
	}
	n.logger.Debug().Msg("no success acknowledgement seen")
	return nil
}

// waitLeave polls until the page leaves editURL and the list is ready, or the
// navigation deadline passes.
func (n *Navigator) waitLeave(ctx context.Context, editURL string) (string, bool, error) {
	deadline := time.Now().Add(n.opts.NavigationDeadline)
	for time.Now().Before(deadline) {
		url, err := n.page.URL(ctx)
		if err == nil && url != editURL {
			if err := n.WaitListReady(ctx); err == nil {
				if settled, err := n.page.URL(ctx); err == nil {
					url = settled
				}
				return url, true, nil
			}
		}
		if err := pause(ctx, n.opts.PollInterval); err != nil {
			return "", false, err
		}
	}
	return "", false, nil
}
