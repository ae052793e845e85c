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
	stdsync "sync"
	"time"

	"github.com/wildsight/revealsync/pkg/logger"
)

// Metrics defines the interface for collecting coordinator metrics
type Metrics interface {
	// Cycle metrics
	RecordCycleStart(trigger string)
	RecordCycleSuccess(deviceCount, staleCount int, duration time.Duration)
	RecordCycleFailure(err error, duration time.Duration)
	RecordCycleSkipped(trigger string)
	RecordRefreshQueued()

	// Per-device metrics
	RecordDeviceFetchSuccess(deviceID string, duration time.Duration)
	RecordDeviceFetchFailure(deviceID string, err error, duration time.Duration)

	// Media metrics
	RecordMediaDownload(deviceID string, bytes int)
	RecordMediaFailure(deviceID string, err error)

	// Export metrics for monitoring systems
	GetMetrics() map[string]interface{}
}

// NoOpMetrics provides a no-op implementation of the Metrics interface
type NoOpMetrics struct{}

func (n *NoOpMetrics) RecordCycleStart(trigger string)                                      {}
func (n *NoOpMetrics) RecordCycleSuccess(deviceCount, staleCount int, d time.Duration)      {}
func (n *NoOpMetrics) RecordCycleFailure(err error, d time.Duration)                        {}
func (n *NoOpMetrics) RecordCycleSkipped(trigger string)                                    {}
func (n *NoOpMetrics) RecordRefreshQueued()                                                 {}
func (n *NoOpMetrics) RecordDeviceFetchSuccess(deviceID string, d time.Duration)            {}
func (n *NoOpMetrics) RecordDeviceFetchFailure(deviceID string, err error, d time.Duration) {}
func (n *NoOpMetrics) RecordMediaDownload(deviceID string, bytes int)                       {}
func (n *NoOpMetrics) RecordMediaFailure(deviceID string, err error)                        {}
func (n *NoOpMetrics) GetMetrics() map[string]interface{}                                   { return map[string]interface{}{} }

// InMemoryMetrics provides an in-memory implementation of the Metrics interface
type InMemoryMetrics struct {
	mu     stdsync.RWMutex
	logger logger.Logger

	// Cycle metrics
	cycleStarts    map[string]int
	cycleSuccesses int
	cycleFailures  int
	cycleSkips     map[string]int
	refreshQueued  int
	lastCycleTime  time.Duration
	lastDevices    int
	lastStale      int

	// Per-device metrics
	deviceFetchSuccess  map[string]int
	deviceFetchFailures map[string]int
	deviceFetchDuration map[string]time.Duration

	// Media metrics
	mediaDownloads map[string]int
	mediaBytes     map[string]int
	mediaFailures  map[string]int

	lastUpdated time.Time
}

// NewInMemoryMetrics creates a new in-memory metrics collector
func NewInMemoryMetrics(log logger.Logger) *InMemoryMetrics {
	return &InMemoryMetrics{
		logger:              log,
		cycleStarts:         make(map[string]int),
		cycleSkips:          make(map[string]int),
		deviceFetchSuccess:  make(map[string]int),
		deviceFetchFailures: make(map[string]int),
		deviceFetchDuration: make(map[string]time.Duration),
		mediaDownloads:      make(map[string]int),
		mediaBytes:          make(map[string]int),
		mediaFailures:       make(map[string]int),
		lastUpdated:         time.Now(),
	}
}

func (m *InMemoryMetrics) RecordCycleStart(trigger string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cycleStarts[trigger]++
	m.lastUpdated = time.Now()
}

func (m *InMemoryMetrics) RecordCycleSuccess(deviceCount, staleCount int, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cycleSuccesses++
	m.lastCycleTime = duration
	m.lastDevices = deviceCount
	m.lastStale = staleCount
	m.lastUpdated = time.Now()

	m.logger.Info().
		Int("device_count", deviceCount).
		Int("stale_count", staleCount).
		Dur("duration", duration).
		Msg("Synchronization cycle completed")
}

func (m *InMemoryMetrics) RecordCycleFailure(err error, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cycleFailures++
	m.lastCycleTime = duration
	m.lastUpdated = time.Now()

	m.logger.Error().
		Err(err).
		Dur("duration", duration).
		Msg("Synchronization cycle failed")
}

func (m *InMemoryMetrics) RecordCycleSkipped(trigger string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cycleSkips[trigger]++
	m.lastUpdated = time.Now()
}

func (m *InMemoryMetrics) RecordRefreshQueued() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshQueued++
	m.lastUpdated = time.Now()
}

func (m *InMemoryMetrics) RecordDeviceFetchSuccess(deviceID string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deviceFetchSuccess[deviceID]++
	m.deviceFetchDuration[deviceID] = duration
	m.lastUpdated = time.Now()
}

func (m *InMemoryMetrics) RecordDeviceFetchFailure(deviceID string, err error, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deviceFetchFailures[deviceID]++
	m.deviceFetchDuration[deviceID] = duration
	m.lastUpdated = time.Now()

	m.logger.Warn().
		Str("device_id", deviceID).
		Err(err).
		Dur("duration", duration).
		Msg("Device state fetch failed")
}

func (m *InMemoryMetrics) RecordMediaDownload(deviceID string, bytes int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mediaDownloads[deviceID]++
	m.mediaBytes[deviceID] = bytes
	m.lastUpdated = time.Now()
}

func (m *InMemoryMetrics) RecordMediaFailure(deviceID string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mediaFailures[deviceID]++
	m.lastUpdated = time.Now()

	m.logger.Warn().
		Str("device_id", deviceID).
		Err(err).
		Msg("Media download failed")
}

func (m *InMemoryMetrics) GetMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"cycles": map[string]interface{}{
			"starts":         m.cycleStarts,
			"successes":      m.cycleSuccesses,
			"failures":       m.cycleFailures,
			"skips":          m.cycleSkips,
			"refresh_queued": m.refreshQueued,
			"last_duration":  m.lastCycleTime,
			"last_devices":   m.lastDevices,
			"last_stale":     m.lastStale,
		},
		"devices": map[string]interface{}{
			"fetch_successes": m.deviceFetchSuccess,
			"fetch_failures":  m.deviceFetchFailures,
			"fetch_durations": m.deviceFetchDuration,
		},
		"media": map[string]interface{}{
			"downloads": m.mediaDownloads,
			"bytes":     m.mediaBytes,
			"failures":  m.mediaFailures,
		},
		"last_updated": m.lastUpdated,
	}
}
