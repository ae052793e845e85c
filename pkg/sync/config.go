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

import "time"

const (
	defaultPollInterval   = 5 * time.Minute
	defaultMaxConcurrency = 4
)

// Config holds settings for the synchronization coordinator.
type Config struct {
	// PollInterval is the period between automatic synchronization cycles.
	PollInterval time.Duration `json:"poll_interval"`
	// MaxConcurrency bounds the number of per-device state fetches in flight.
	MaxConcurrency int `json:"max_concurrency"`
	// CircuitBreaker guards the session and catalog phases.
	CircuitBreaker CircuitBreakerConfig `json:"-"`
}

// DefaultConfig returns a coordinator configuration with production defaults.
func DefaultConfig() Config {
	return Config{
		PollInterval:   defaultPollInterval,
		MaxConcurrency: defaultMaxConcurrency,
		CircuitBreaker: DefaultCircuitBreakerConfig(),
	}
}

// Validate fills zero values with defaults and rejects invalid settings.
func (c *Config) Validate() error {
	if c.PollInterval == 0 {
		c.PollInterval = defaultPollInterval
	}

	if c.PollInterval < 0 {
		return errInvalidPollInterval
	}

	if c.MaxConcurrency == 0 {
		c.MaxConcurrency = defaultMaxConcurrency
	}

	if c.MaxConcurrency < 0 {
		return errInvalidConcurrency
	}

	if c.CircuitBreaker == (CircuitBreakerConfig{}) {
		c.CircuitBreaker = DefaultCircuitBreakerConfig()
	}

	return nil
}
