package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingLimiter struct{ calls int }

func (l *countingLimiter) Wait(ctx context.Context) error {
	l.calls++
	return nil
}

func TestPolicy_Run(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")

	tests := []struct {
		name          string
		retries       int
		failures      int
		expectedCalls int
		expectedErr   error
	}{
		{name: "success on first try", retries: 1, failures: 0, expectedCalls: 1},
		{name: "success after one retry", retries: 1, failures: 1, expectedCalls: 2},
		{name: "gives up after retries", retries: 1, failures: 5, expectedCalls: 2, expectedErr: errBoom},
		{name: "zero retries means single attempt", retries: 0, failures: 5, expectedCalls: 1, expectedErr: errBoom},
		{name: "negative retries treated as zero", retries: -3, failures: 5, expectedCalls: 1, expectedErr: errBoom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			limiter := &countingLimiter{}
			p := Policy{Retries: tt.retries, Backoff: time.Millisecond, Limiter: limiter}

			calls := 0
			err := p.Run(context.Background(), func(ctx context.Context) error {
				calls++
				if calls <= tt.failures {
					return errBoom
				}
				return nil
			})

			assert.Equal(t, tt.expectedCalls, calls)
			assert.Equal(t, tt.expectedCalls, limiter.calls)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPolicy_Run_TimeoutPerAttempt(t *testing.T) {
	t.Parallel()

	p := Policy{Timeout: 10 * time.Millisecond}
	err := p.Run(context.Background(), func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
