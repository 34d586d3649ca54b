package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: 5 * time.Millisecond,
		MaxDelay:     50 * time.Millisecond,
		Multiplier:   2.0,
		AddJitter:    false, // Disable for predictable tests
	}
}

func TestRetry_Success(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), testConfig(), func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient error")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetry_AllAttemptsFail(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), testConfig(), func() error {
		attempts++
		return errors.New("persistent error")
	})

	assert.Error(t, err)
	assert.Equal(t, 3, attempts)
	assert.Contains(t, err.Error(), "retry failed after 3 attempts")
}

func TestRetry_NonRetryable(t *testing.T) {
	attempts := 0
	base := errors.New("bad input")
	err := Do(context.Background(), testConfig(), func() error {
		attempts++
		return NonRetryable(base)
	})

	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.True(t, IsNonRetryable(err))
	assert.ErrorIs(t, err, base)
}

func TestRetry_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	err := Do(ctx, testConfig(), func() error {
		attempts++
		cancel()
		return errors.New("transient error")
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestRetry_InvalidConfig(t *testing.T) {
	err := Do(context.Background(), Config{InitialDelay: -time.Second}, func() error {
		t.Fatal("fn should not run with invalid config")
		return nil
	})
	assert.Error(t, err)

	err = Do(context.Background(), Config{
		InitialDelay: time.Second,
		MaxDelay:     time.Millisecond,
	}, func() error { return nil })
	assert.Error(t, err)
}

func TestRetry_ZeroConfigDefaults(t *testing.T) {
	// A zero config still runs the function once.
	attempts := 0
	err := Do(context.Background(), Config{}, func() error {
		attempts++
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDoWithResult(t *testing.T) {
	attempts := 0
	result, err := DoWithResult(context.Background(), testConfig(), func() (string, error) {
		attempts++
		if attempts < 2 {
			return "", errors.New("transient error")
		}
		return "ok", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 2, attempts)
}

func TestNonRetryable_Nil(t *testing.T) {
	assert.Nil(t, NonRetryable(nil))
	assert.False(t, IsNonRetryable(nil))
}
