package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/forceboard-dev/forceboard/internal/apperr"
	"gorm.io/gorm"
)

const (
	maxAttempts     = 3
	initialInterval = 100 * time.Millisecond
	maxInterval     = 2 * time.Second
)

// Do runs op with bounded exponential backoff. Transient failures are
// retried up to maxAttempts total attempts; everything else stops the loop
// immediately. The operation must be safe to run twice: a timed-out write
// may still have landed, and a second attempt then fails terminally on the
// duplicate, which Do reports as-is.
func Do(ctx context.Context, op func() error) error {
	wrapped := func() error {
		err := op()
		if err == nil {
			return nil
		}

		appErr := apperr.Classify(err)
		if !apperr.Retryable(appErr) {
			return backoff.Permanent(appErr)
		}

		return appErr
	}

	policy := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(initialInterval),
		backoff.WithMaxInterval(maxInterval),
	)

	return backoff.Retry(wrapped, backoff.WithContext(backoff.WithMaxRetries(policy, maxAttempts-1), ctx))
}

// Create inserts value with the shared retry policy. Every entity create
// goes through here so the backoff parameters are defined once.
func Create(ctx context.Context, db *gorm.DB, value interface{}) error {
	return Do(ctx, func() error {
		return db.WithContext(ctx).Create(value).Error
	})
}
