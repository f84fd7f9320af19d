package rubikit

import (
	"context"
	"net/url"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-faster/errors"
)

// retry runs op until it succeeds, fails permanently, or maxRetries extra
// attempts were made. Only temporary API errors and network errors are retried.
func retry(ctx context.Context, maxRetries int, op func() error) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(maxRetries)),
		ctx,
	)

	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if !isTemporary(ctx, err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy)
}

func isTemporary(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	if apiErr, ok := IsAPIError(err); ok {
		return apiErr.Temporary()
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
