package logger

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]logrus.Level{
		"":        logrus.InfoLevel,
		"debug":   logrus.DebugLevel,
		"WARN":    logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"verbose": logrus.InfoLevel,
	}
	for input, want := range tests {
		if got := ParseLevel(input); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestWithContext_RequestID(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-42")
	if RequestID(ctx) != "req-42" {
		t.Fatalf("Expected request ID req-42, got %q", RequestID(ctx))
	}

	entry := WithContext(ctx)
	if entry.Data["request_id"] != "req-42" {
		t.Errorf("Expected request_id field, got %v", entry.Data)
	}

	if _, ok := WithContext(context.Background()).Data["request_id"]; ok {
		t.Error("Expected no request_id field without one in context")
	}
}

func TestTruncate(t *testing.T) {
	if Truncate("short", 10) != "short" {
		t.Error("Expected short strings to be unchanged")
	}
	if got := Truncate("0123456789abc", 10); got != "0123456789...(truncated)" {
		t.Errorf("Unexpected truncation: %q", got)
	}
}
