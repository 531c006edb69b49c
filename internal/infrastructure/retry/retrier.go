package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/Thesaidctm/automate/internal/domain"
)

// Retrier implements usecase.Retrier with exponential backoff.
type Retrier struct {
	initialInterval time.Duration
	maxInterval     time.Duration
	logger          zerolog.Logger
}

// NewRetrier creates a new retrier. interval is the first pause between attempts;
// later pauses grow up to ten times that.
func NewRetrier(interval time.Duration, logger zerolog.Logger) *Retrier {
	return &Retrier{
		initialInterval: interval,
		maxInterval:     10 * interval,
		logger:          logger,
	}
}

// Retry runs operation until it succeeds, fails with an error domain.IsRetryable
// rejects, or maxTries attempts are spent. The last error is returned as is.
func (r *Retrier) Retry(ctx context.Context, maxTries int, operation func(attempt int) error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.MaxElapsedTime = 0

	attempt := 0

	return backoff.Retry(func() error {
		err := operation(attempt)
		if err == nil {
			return nil
		}

		if !domain.IsRetryable(err) {
			return backoff.Permanent(err)
		}

		attempt++
		if attempt >= maxTries {
			return backoff.Permanent(err)
		}

		r.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Msg("retryable failure, retrying")

		return err
	}, backoff.WithContext(b, ctx))
}
