package analyzer

import (
	"testing"
	"time"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.CallTimeout != 30*time.Second {
		t.Errorf("Expected CallTimeout to be 30s, got %s", opts.CallTimeout)
	}
	if opts.MaxRetries != 2 {
		t.Errorf("Expected MaxRetries to be 2, got %d", opts.MaxRetries)
	}
	if !opts.ParallelFindings {
		t.Error("Expected ParallelFindings to be true by default")
	}
	if opts.RetryMaxDelay < opts.RetryBaseDelay {
		t.Error("Expected RetryMaxDelay >= RetryBaseDelay")
	}
}

func TestOptionsBuilders(t *testing.T) {
	opts := DefaultOptions().
		WithCallTimeout(time.Second).
		WithRetry(5, time.Millisecond, 10*time.Millisecond).
		WithSequentialFindings()

	if opts.CallTimeout != time.Second {
		t.Errorf("Expected CallTimeout 1s, got %s", opts.CallTimeout)
	}
	if opts.MaxRetries != 5 || opts.RetryBaseDelay != time.Millisecond || opts.RetryMaxDelay != 10*time.Millisecond {
		t.Errorf("Unexpected retry policy: %+v", opts)
	}
	if opts.ParallelFindings {
		t.Error("Expected sequential findings")
	}

	if DefaultOptions().WithoutRetry().MaxRetries != 0 {
		t.Error("Expected WithoutRetry to zero MaxRetries")
	}
}

func TestOptionsBuilders_DoNotMutateReceiver(t *testing.T) {
	base := DefaultOptions()
	_ = base.WithoutRetry()
	if base.MaxRetries != 2 {
		t.Error("Expected builders to return a copy")
	}
}
