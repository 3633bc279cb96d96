// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package helper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetry(t *testing.T) {
	errTransient := errors.New("transient")
	tests := []struct {
		name      string
		failures  int
		cfg       RetryConfig
		wantCalls int
		wantErr   bool
	}{
		{"success on first call", 0, RetryConfig{Count: 2}, 1, false},
		{"success after retries", 2, RetryConfig{Count: 2}, 3, false},
		{"retries exhausted", 5, RetryConfig{Count: 2}, 3, true},
		{"no retries configured", 1, RetryConfig{}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			effector := func(context.Context) error {
				calls++
				if calls <= tt.failures {
					return errTransient
				}
				return nil
			}

			err := Retry(effector, tt.cfg)(t.Context())
			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr {
				assert.ErrorIs(t, err, errTransient)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRetry_contextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	calls := 0
	effector := func(context.Context) error {
		calls++
		cancel()
		return errors.New("fail")
	}

	err := Retry(effector, RetryConfig{Count: 3, Delay: time.Hour})(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestGetExpBackoff(t *testing.T) {
	tests := []struct {
		iteration int
		want      time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{4, 800 * time.Millisecond},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, getExpBackoff(100*time.Millisecond, tt.iteration), "iteration %d", tt.iteration)
	}
}
