package crawl

import (
	"context"
	"time"

	"github.com/natmusissunny/legalrights"
)

// DefaultRetryDelays returns the backoff before each retry: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// fetch retrieves url from host. Every attempt, retries included, first
// waits on the domain limiter. Transient failures are retried once per
// entry in RetryDelays; ENOTFOUND and EINVALID are returned at once.
func (c *Crawler) fetch(ctx context.Context, host, url string) (string, error) {
	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	for attempt := 0; ; attempt++ {
		if c.RateLimiter != nil {
			if err := c.RateLimiter.Wait(ctx, host); err != nil {
				return "", err
			}
		}

		html, err := c.Fetcher.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		if !retryable(err) || attempt == len(delays) {
			return "", err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}

		c.logger().Info("retrying fetch",
			"url", url,
			"attempt", attempt+2,
			"delay", delays[attempt],
			"err", err,
		)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
}

func retryable(err error) bool {
	switch legalrights.ErrorCode(err) {
	case legalrights.ENOTFOUND, legalrights.EINVALID:
		return false
	}
	return true
}
