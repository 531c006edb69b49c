package usecase

import (
	"context"

	"github.com/rs/zerolog"
)

// RowLocator finds the list row of a code in a list that may only render the rows
// near the scroll position.
type RowLocator struct {
	page   Page
	sel    Selectors
	opts   Options
	logger zerolog.Logger
}

// NewRowLocator creates a new RowLocator.
func NewRowLocator(page Page, sel Selectors, opts Options, logger zerolog.Logger) *RowLocator {
	return &RowLocator{
		page:   page,
		sel:    sel,
		opts:   opts,
		logger: logger,
	}
}

// Locate searches for the row of code: first among the rows already rendered, then by
// scrolling each overflowing container, then by scrolling the viewport. found is
// false when every budget is spent; err is only set when ctx ends.
func (l *RowLocator) Locate(ctx context.Context, code string) (row Element, found bool, err error) {
	strategy := ExactLine{Rows: l.sel.Rows, Line: code}

	row, err = strategy.Locate(ctx, l.page)
	if err != nil {
		return nil, false, err
	}
	if row != nil {
		return row, true, nil
	}

	containers, err := l.page.ScrollContainers(ctx, l.sel.Containers, l.opts.MaxContainers)
	if err != nil && ctx.Err() != nil {
		return nil, false, ctx.Err()
	}

	for i, container := range containers {
		row, err = l.scrollContainer(ctx, container, strategy)
		if err != nil {
			return nil, false, err
		}
		if row != nil {
			l.logger.Debug().Int("container", i).Msg("row revealed by container scroll")
			return row, true, nil
		}
	}

	row, err = l.scrollViewport(ctx, strategy)
	if err != nil {
		return nil, false, err
	}
	if row != nil {
		l.logger.Debug().Msg("row revealed by viewport scroll")
		return row, true, nil
	}

	return nil, false, nil
}

func (l *RowLocator) scrollContainer(ctx context.Context, container Element, strategy Strategy) (Element, error) {
	stuck := 0
	for i := 0; i < l.opts.MaxScrolls; i++ {
		row, err := strategy.Locate(ctx, container)
		if err != nil || row != nil {
			return row, err
		}

		moved, err := container.ScrollBy(ctx, l.opts.ContainerScrollStep)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, nil
		}
		// Lazy lists grow after reaching the end, so give the container one more pause.
		if !moved {
			stuck++
			if stuck > 1 {
				break
			}
		} else {
			stuck = 0
		}

		if err := pause(ctx, l.opts.ScrollPause); err != nil {
			return nil, err
		}
	}
	return strategy.Locate(ctx, container)
}

func (l *RowLocator) scrollViewport(ctx context.Context, strategy Strategy) (Element, error) {
	for i := 0; i < l.opts.MaxScrolls; i++ {
		if err := l.page.ScrollViewport(ctx, l.opts.ViewportScrollStep); err != nil && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err := pause(ctx, l.opts.ScrollPause); err != nil {
			return nil, err
		}

		row, err := strategy.Locate(ctx, l.page)
		if err != nil || row != nil {
			return row, err
		}
	}
	return nil, nil
}
