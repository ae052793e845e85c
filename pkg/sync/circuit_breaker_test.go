/*
 * Copyright 2025 Wildsight Labs.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildsight/revealsync/pkg/logger"
)

var errTestFailure = errors.New("test failure")

func newTestBreaker(config CircuitBreakerConfig) (*CircuitBreaker, *time.Time) {
	cb := NewCircuitBreaker("test", config, logger.NewTestLogger())

	now := time.Now()
	cb.nowFn = func() time.Time { return now }

	return cb, &now
}

func TestCircuitBreakerOpensAfterThreshold(t *testing.T) {
	cb, _ := newTestBreaker(CircuitBreakerConfig{
		FailureThreshold: 2,
		SuccessThreshold: 1,
		Timeout:          30 * time.Second,
		ResetTimeout:     time.Minute,
	})

	assert.Equal(t, StateClosed, cb.GetState())

	err := cb.Execute(context.Background(), func() error { return nil })
	require.NoError(t, err)
	assert.Equal(t, StateClosed, cb.GetState())

	err = cb.Execute(context.Background(), func() error { return errTestFailure })
	require.ErrorIs(t, err, errTestFailure)
	assert.Equal(t, StateClosed, cb.GetState())

	err = cb.Execute(context.Background(), func() error { return errTestFailure })
	require.ErrorIs(t, err, errTestFailure)
	assert.Equal(t, StateOpen, cb.GetState())

	// Calls are rejected without invoking fn while open.
	called := false
	err = cb.Execute(context.Background(), func() error { called = true; return nil })
	require.ErrorIs(t, err, errCircuitBreakerIsOpen)
	assert.Contains(t, err.Error(), "circuit breaker is open: test")
	assert.False(t, called)
}

func TestCircuitBreakerRecoversThroughHalfOpen(t *testing.T) {
	cb, now := newTestBreaker(CircuitBreakerConfig{
		FailureThreshold: 1,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
		ResetTimeout:     time.Minute,
	})

	err := cb.Execute(context.Background(), func() error { return errTestFailure })
	require.Error(t, err)
	require.Equal(t, StateOpen, cb.GetState())

	// Before the timeout the circuit stays open.
	*now = now.Add(29 * time.Second)
	err = cb.Execute(context.Background(), func() error { return nil })
	require.ErrorIs(t, err, errCircuitBreakerIsOpen)

	// After the timeout a probe is allowed in half-open state.
	*now = now.Add(2 * time.Second)
	err = cb.Execute(context.Background(), func() error { return nil })
	require.NoError(t, err)
	assert.Equal(t, StateHalfOpen, cb.GetState())

	// A second success closes the circuit.
	err = cb.Execute(context.Background(), func() error { return nil })
	require.NoError(t, err)
	assert.Equal(t, StateClosed, cb.GetState())
}

func TestCircuitBreakerReopensOnHalfOpenFailure(t *testing.T) {
	cb, now := newTestBreaker(CircuitBreakerConfig{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		Timeout:          30 * time.Second,
		ResetTimeout:     time.Minute,
	})

	err := cb.Execute(context.Background(), func() error { return errTestFailure })
	require.Error(t, err)
	require.Equal(t, StateOpen, cb.GetState())

	*now = now.Add(31 * time.Second)
	err = cb.Execute(context.Background(), func() error { return errTestFailure })
	require.ErrorIs(t, err, errTestFailure)
	assert.Equal(t, StateOpen, cb.GetState())
}

func TestCircuitBreakerResetsFailureCountAfterQuietPeriod(t *testing.T) {
	cb, now := newTestBreaker(CircuitBreakerConfig{
		FailureThreshold: 2,
		SuccessThreshold: 1,
		Timeout:          30 * time.Second,
		ResetTimeout:     time.Minute,
	})

	err := cb.Execute(context.Background(), func() error { return errTestFailure })
	require.Error(t, err)

	// After the quiet period the old failure no longer counts, so one
	// more failure is not enough to open the circuit.
	*now = now.Add(2 * time.Minute)
	err = cb.Execute(context.Background(), func() error { return errTestFailure })
	require.Error(t, err)
	assert.Equal(t, StateClosed, cb.GetState())
}

func TestCircuitBreakerGetMetrics(t *testing.T) {
	cb := NewCircuitBreaker("test-metrics", DefaultCircuitBreakerConfig(), logger.NewTestLogger())

	metrics := cb.GetMetrics()
	require.NotNil(t, metrics)

	assert.Equal(t, "test-metrics", metrics["name"])
	assert.Equal(t, "closed", metrics["state"])
	assert.Equal(t, 0, metrics["failure_count"])
	assert.Equal(t, 0, metrics["success_count"])
}

func TestDefaultCircuitBreakerConfig(t *testing.T) {
	config := DefaultCircuitBreakerConfig()

	assert.Equal(t, 5, config.FailureThreshold)
	assert.Equal(t, 2, config.SuccessThreshold)
	assert.Equal(t, 30*time.Second, config.Timeout)
	assert.Equal(t, 60*time.Second, config.ResetTimeout)
}

func TestCircuitBreakerStateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", CircuitBreakerState(42).String())
}
