package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Thesaidctm/automate/internal/domain"
)

// entryMode is one way of putting the target into a masked input.
type entryMode struct {
	name  string
	text  func(target decimal.Decimal) string
	enter func(ctx context.Context, input Element, text string, opts Options) error
}

// Digits go first: typed one key at a time they play along with right-filling masks.
var entryModes = []entryMode{
	{
		name: "digits",
		text: domain.AmountDigits,
		enter: func(ctx context.Context, input Element, text string, opts Options) error {
			return input.TypeText(ctx, text, opts.TypeDelay)
		},
	},
	{
		name: "formatted",
		text: domain.FormatAmount,
		enter: func(ctx context.Context, input Element, text string, _ Options) error {
			return input.Fill(ctx, text)
		},
	},
}

// PriceField reads and writes the price input of an open edit surface.
type PriceField struct {
	page    Page
	sel     Selectors
	opts    Options
	retrier Retrier
	metrics Metrics
	logger  zerolog.Logger
}

// NewPriceField creates a new PriceField.
func NewPriceField(page Page, sel Selectors, opts Options, retrier Retrier, metrics Metrics, logger zerolog.Logger) *PriceField {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &PriceField{
		page:    page,
		sel:     sel,
		opts:    opts,
		retrier: retrier,
		metrics: metrics,
		logger:  logger,
	}
}

// Find locates the price input through the label-proximity and attribute chain.
func (f *PriceField) Find(ctx context.Context) (Element, error) {
	input, err := ChainOf(f.sel.PriceInput...).Await(ctx, f.page, f.opts.ElementTimeout, f.opts.PollInterval)
	if err != nil {
		return nil, err
	}
	if input == nil {
		return nil, fmt.Errorf("%w: no field matched the price labels", domain.ErrInputNotFound)
	}
	return input, nil
}

// Read returns the amount the input currently holds; ok is false when it holds
// nothing parseable.
func (f *PriceField) Read(ctx context.Context, input Element) (amount decimal.Decimal, raw string, ok bool) {
	raw, err := input.Value(ctx)
	if err != nil {
		return decimal.Decimal{}, "", false
	}
	amount, ok = domain.ParseAmount(raw)
	return amount, raw, ok
}

// Write clears the input and enters target, first as bare digits and then as the
// formatted amount, re-reading after each attempt. It fails with
// domain.ErrWriteVerification when neither attempt reads back as target.
func (f *PriceField) Write(ctx context.Context, input Element, target decimal.Decimal) error {
	var lastRaw string

	err := f.retrier.Retry(ctx, len(entryModes), func(attempt int) error {
		mode := entryModes[min(attempt, len(entryModes)-1)]
		text := mode.text(target)

		if err := input.Click(ctx); err != nil {
			return err
		}
		if err := input.Clear(ctx); err != nil {
			return err
		}
		if err := mode.enter(ctx, input, text, f.opts); err != nil {
			return err
		}
		if err := pause(ctx, f.opts.SettleDelay); err != nil {
			return err
		}

		seen, raw, ok := f.Read(ctx, input)
		lastRaw = raw
		matched := ok && domain.SameAmount(seen, target)
		f.metrics.WriteAttempt(mode.name, matched)

		if matched {
			f.logger.Debug().Str("mode", mode.name).Str("value", raw).Msg("price written")
			return nil
		}
		return fmt.Errorf("%w: %s entry left %q", domain.ErrWriteVerification, mode.name, raw)
	})
	if err == nil {
		return nil
	}

	if domain.IsRetryable(err) {
		if lastRaw == "" {
			lastRaw = "[empty]"
		}
		return fmt.Errorf("%w: could not set %s, field reads %q",
			domain.ErrWriteVerification, domain.FormatAmount(target), lastRaw)
	}
	return err
}
