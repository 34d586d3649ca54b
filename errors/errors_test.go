package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestErrorClass_String(t *testing.T) {
	tests := []struct {
		class    ErrorClass
		expected string
	}{
		{ErrorTransient, "transient"},
		{ErrorInvalid, "invalid"},
		{ErrorFatal, "fatal"},
		{ErrorClass(999), "unknown"},
	}

	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			result := test.class.String()
			if result != test.expected {
				t.Errorf("expected %s, got %s", test.expected, result)
			}
		})
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"connection timeout", ErrConnectionTimeout, true},
		{"cms unavailable", ErrCMSUnavailable, true},
		{"rate limited", ErrRateLimited, true},
		{"context deadline exceeded", context.DeadlineExceeded, true},
		{"context canceled", context.Canceled, true},
		{"unsupported type", ErrUnsupportedType, false},
		{"timeout in message", fmt.Errorf("operation timeout occurred"), true},
		{"network error", fmt.Errorf("network connection failed"), true},
		{"classified transient", &ClassifiedError{Class: ErrorTransient, Err: fmt.Errorf("test")}, true},
		{"classified fatal", &ClassifiedError{Class: ErrorFatal, Err: fmt.Errorf("test")}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsTransient(test.err)
			if result != test.expected {
				t.Errorf("expected %v, got %v for error: %v", test.expected, result, test.err)
			}
		})
	}
}

func TestIsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"unsupported type", ErrUnsupportedType, true},
		{"unknown type", ErrUnknownType, true},
		{"invalid schema", ErrInvalidSchema, true},
		{"parsing failed", ErrParsingFailed, true},
		{"payload too large", ErrPayloadTooLarge, true},
		{"wrapped unsupported type", fmt.Errorf("generate: %w", ErrUnsupportedType), true},
		{"classified invalid", &ClassifiedError{Class: ErrorInvalid, Err: fmt.Errorf("test")}, true},
		{"plain error", errors.New("something else"), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsInvalid(test.err)
			if result != test.expected {
				t.Errorf("expected %v, got %v for error: %v", test.expected, result, test.err)
			}
		})
	}
}

func TestIsFatal(t *testing.T) {
	if !IsFatal(ErrInvalidConfig) {
		t.Error("expected ErrInvalidConfig to be fatal")
	}
	if !IsFatal(ErrMissingConfig) {
		t.Error("expected ErrMissingConfig to be fatal")
	}
	if IsFatal(nil) {
		t.Error("expected nil to not be fatal")
	}
	if !IsFatal(&ClassifiedError{Class: ErrorFatal, Err: fmt.Errorf("boom")}) {
		t.Error("expected classified fatal error to be fatal")
	}
}

func TestWrapHelpers(t *testing.T) {
	base := errors.New("boom")

	wrapped := Wrap(base, "Generator", "Generate", "build schema")
	if wrapped == nil {
		t.Fatal("expected non-nil wrapped error")
	}
	want := "Generator.Generate: build schema failed: boom"
	if wrapped.Error() != want {
		t.Errorf("expected %q, got %q", want, wrapped.Error())
	}
	if !errors.Is(wrapped, base) {
		t.Error("expected wrapped error to unwrap to base")
	}

	invalid := WrapInvalid(base, "Registry", "GetTemplate", "lookup type")
	if !IsInvalid(invalid) {
		t.Error("expected WrapInvalid result to classify as invalid")
	}
	if !strings.Contains(invalid.Error(), "Registry.GetTemplate") {
		t.Errorf("expected component context in message, got %q", invalid.Error())
	}

	transient := WrapTransient(base, "WordPress", "GetPost", "fetch post")
	if !IsTransient(transient) {
		t.Error("expected WrapTransient result to classify as transient")
	}

	fatal := WrapFatal(base, "Server", "Start", "bind port")
	if !IsFatal(fatal) {
		t.Error("expected WrapFatal result to classify as fatal")
	}

	if Wrap(nil, "a", "b", "c") != nil {
		t.Error("expected Wrap(nil) to return nil")
	}
	if WrapInvalid(nil, "a", "b", "c") != nil {
		t.Error("expected WrapInvalid(nil) to return nil")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorClass
	}{
		{"nil", nil, ErrorTransient},
		{"transient", ErrConnectionTimeout, ErrorTransient},
		{"invalid", ErrUnsupportedType, ErrorInvalid},
		{"fatal", ErrInvalidConfig, ErrorFatal},
		{"unknown defaults to transient", errors.New("strange"), ErrorTransient},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Classify(test.err); got != test.expected {
				t.Errorf("expected %v, got %v", test.expected, got)
			}
		})
	}
}

func TestRetryConfig_ShouldRetry(t *testing.T) {
	cfg := DefaultRetryConfig()

	if cfg.ShouldRetry(nil, 0) {
		t.Error("nil error should not be retried")
	}
	if cfg.ShouldRetry(ErrConnectionTimeout, cfg.MaxRetries) {
		t.Error("should not retry once attempts are exhausted")
	}
	if !cfg.ShouldRetry(ErrConnectionTimeout, 0) {
		t.Error("transient error under the attempt limit should be retried")
	}
	if cfg.ShouldRetry(ErrUnsupportedType, 0) {
		t.Error("invalid errors should never be retried")
	}

	scoped := RetryConfig{
		MaxRetries:      3,
		RetryableErrors: []error{ErrCMSUnavailable},
	}
	if !scoped.ShouldRetry(ErrCMSUnavailable, 0) {
		t.Error("listed retryable error should be retried")
	}
	if scoped.ShouldRetry(ErrConnectionTimeout, 0) {
		t.Error("unlisted error should not be retried when a list is configured")
	}
}

func TestRetryConfig_ToRetryConfig(t *testing.T) {
	rc := RetryConfig{
		MaxRetries:    3,
		InitialDelay:  50 * time.Millisecond,
		MaxDelay:      2 * time.Second,
		BackoffFactor: 2.0,
	}

	converted := rc.ToRetryConfig()
	if converted.MaxAttempts != 4 {
		t.Errorf("expected 4 total attempts, got %d", converted.MaxAttempts)
	}
	if converted.InitialDelay != rc.InitialDelay {
		t.Errorf("expected initial delay %v, got %v", rc.InitialDelay, converted.InitialDelay)
	}
	if !converted.AddJitter {
		t.Error("expected jitter enabled")
	}
}
