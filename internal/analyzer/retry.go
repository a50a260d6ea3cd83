package analyzer

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	apperrors "go-skin-analyzer/internal/errors"
	"go-skin-analyzer/internal/logger"
)

// backoffDelay returns the jittered wait before retry number attempt
// (0-based), capped at max
func backoffDelay(attempt int, base, max time.Duration) time.Duration {
	if base <= 0 {
		return 0
	}
	exp := base
	for i := 0; i < attempt && exp < max; i++ {
		exp *= 2
	}
	if exp > max {
		exp = max
	}
	half := int64(exp / 2)
	return time.Duration(half + rand.Int63n(half+1))
}

// callWithRetry runs fn under a per-call timeout, retrying only retryable
// transport failures. It stops as soon as the parent context is done.
func callWithRetry[T any](ctx context.Context, opts Options, pass Pass, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= opts.MaxRetries; attempt++ {
		result, err := callOnce(ctx, opts.CallTimeout, fn)
		if err == nil {
			if attempt > 0 {
				logger.WithContext(ctx).WithField("pass", pass).
					WithField("attempt", attempt+1).Info("Model call succeeded after retry")
			}
			return result, nil
		}

		lastErr = err
		if !apperrors.IsRetryable(err) || ctx.Err() != nil || attempt == opts.MaxRetries {
			break
		}

		delay := backoffDelay(attempt, opts.RetryBaseDelay, opts.RetryMaxDelay)
		logger.WithContext(ctx).WithFields(logrus.Fields{
			"pass":     pass,
			"attempt":  attempt + 1,
			"max":      opts.MaxRetries + 1,
			"retry_in": delay.String(),
		}).WithError(err).Warn("Model call failed, retrying")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, apperrors.NewUpstreamTransportError("Gemini call cancelled", false, ctx.Err())
		case <-timer.C:
		}
	}

	return zero, lastErr
}

// callOnce applies the per-call timeout and makes sure any failure comes
// back as an AppError
func callOnce[T any](ctx context.Context, timeout time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	callCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	result, err := fn(callCtx)
	if err == nil {
		return result, nil
	}
	if _, ok := apperrors.As(err); ok {
		return result, err
	}

	switch {
	case ctx.Err() != nil:
		return result, apperrors.NewUpstreamTransportError("Gemini call cancelled", false, err)
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded):
		return result, apperrors.NewUpstreamTransportError("Gemini call timed out", true, err)
	default:
		return result, apperrors.NewUpstreamTransportError("Gemini call failed", false, err)
	}
}
