package analyzer

import "time"

// Options configures model call timing and the skin pipeline
type Options struct {
	// CallTimeout bounds each individual model call
	CallTimeout time.Duration

	// Retry policy for retryable transport failures
	MaxRetries     int
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration

	// ParallelFindings dispatches the two findings passes concurrently
	ParallelFindings bool
}

// DefaultOptions returns default orchestrator options
func DefaultOptions() Options {
	return Options{
		CallTimeout:      30 * time.Second,
		MaxRetries:       2,
		RetryBaseDelay:   500 * time.Millisecond,
		RetryMaxDelay:    5 * time.Second,
		ParallelFindings: true,
	}
}

// WithCallTimeout sets the per-call timeout
func (opts Options) WithCallTimeout(d time.Duration) Options {
	opts.CallTimeout = d
	return opts
}

// WithRetry sets the retry policy
func (opts Options) WithRetry(maxRetries int, base, max time.Duration) Options {
	opts.MaxRetries = maxRetries
	opts.RetryBaseDelay = base
	opts.RetryMaxDelay = max
	return opts
}

// WithoutRetry disables retries
func (opts Options) WithoutRetry() Options {
	opts.MaxRetries = 0
	return opts
}

// WithSequentialFindings runs the findings passes one after the other
func (opts Options) WithSequentialFindings() Options {
	opts.ParallelFindings = false
	return opts
}
