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

import "errors"

var (
	// ErrAlreadyStarted is returned when Start is called on a running coordinator.
	ErrAlreadyStarted = errors.New("coordinator already started")

	// ErrNotStarted is returned when Stop is called before Start.
	ErrNotStarted = errors.New("coordinator not started")

	// ErrCycleInProgress indicates a synchronization cycle is already running.
	ErrCycleInProgress = errors.New("synchronization cycle already in progress")

	errInvalidPollInterval  = errors.New("poll_interval must be positive")
	errInvalidConcurrency   = errors.New("max_concurrency must be positive")
	errNilSessionSource     = errors.New("session source is required")
	errNilCatalogLister     = errors.New("catalog lister is required")
	errNilStateFetcher      = errors.New("state fetcher is required")
	errCircuitBreakerIsOpen = errors.New("circuit breaker is open")
)
