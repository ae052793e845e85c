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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildsight/revealsync/pkg/logger"
)

func TestInMemoryMetricsRecordsCycles(t *testing.T) {
	m := NewInMemoryMetrics(logger.NewTestLogger())

	m.RecordCycleStart(triggerTimer)
	m.RecordCycleStart(triggerTimer)
	m.RecordCycleStart(triggerRefresh)
	m.RecordCycleSuccess(3, 1, 250*time.Millisecond)
	m.RecordCycleFailure(errors.New("cloud down"), 100*time.Millisecond)
	m.RecordCycleSkipped(triggerTimer)
	m.RecordRefreshQueued()

	out := m.GetMetrics()
	require.NotNil(t, out)

	cycles, ok := out["cycles"].(map[string]interface{})
	require.True(t, ok)

	starts, ok := cycles["starts"].(map[string]int)
	require.True(t, ok)
	assert.Equal(t, 2, starts[triggerTimer])
	assert.Equal(t, 1, starts[triggerRefresh])

	assert.Equal(t, 1, cycles["successes"])
	assert.Equal(t, 1, cycles["failures"])
	assert.Equal(t, 1, cycles["refresh_queued"])
	assert.Equal(t, 3, cycles["last_devices"])
	assert.Equal(t, 1, cycles["last_stale"])

	skips, ok := cycles["skips"].(map[string]int)
	require.True(t, ok)
	assert.Equal(t, 1, skips[triggerTimer])
}

func TestInMemoryMetricsRecordsDeviceFetches(t *testing.T) {
	m := NewInMemoryMetrics(logger.NewTestLogger())

	m.RecordDeviceFetchSuccess("CAM01", 50*time.Millisecond)
	m.RecordDeviceFetchSuccess("CAM01", 75*time.Millisecond)
	m.RecordDeviceFetchFailure("CAM02", errors.New("timeout"), 2*time.Second)

	out := m.GetMetrics()
	devices, ok := out["devices"].(map[string]interface{})
	require.True(t, ok)

	successes, ok := devices["fetch_successes"].(map[string]int)
	require.True(t, ok)
	assert.Equal(t, 2, successes["CAM01"])

	failures, ok := devices["fetch_failures"].(map[string]int)
	require.True(t, ok)
	assert.Equal(t, 1, failures["CAM02"])

	durations, ok := devices["fetch_durations"].(map[string]time.Duration)
	require.True(t, ok)
	assert.Equal(t, 75*time.Millisecond, durations["CAM01"])
}

func TestInMemoryMetricsRecordsMedia(t *testing.T) {
	m := NewInMemoryMetrics(logger.NewTestLogger())

	m.RecordMediaDownload("CAM01", 48213)
	m.RecordMediaFailure("CAM02", errors.New("forbidden"))

	out := m.GetMetrics()
	mediaOut, ok := out["media"].(map[string]interface{})
	require.True(t, ok)

	downloads, ok := mediaOut["downloads"].(map[string]int)
	require.True(t, ok)
	assert.Equal(t, 1, downloads["CAM01"])

	bytes, ok := mediaOut["bytes"].(map[string]int)
	require.True(t, ok)
	assert.Equal(t, 48213, bytes["CAM01"])

	failures, ok := mediaOut["failures"].(map[string]int)
	require.True(t, ok)
	assert.Equal(t, 1, failures["CAM02"])
}

func TestNoOpMetrics(t *testing.T) {
	m := &NoOpMetrics{}

	m.RecordCycleStart(triggerTimer)
	m.RecordCycleSuccess(1, 0, time.Second)
	m.RecordCycleFailure(errors.New("x"), time.Second)
	m.RecordCycleSkipped(triggerTimer)
	m.RecordRefreshQueued()
	m.RecordDeviceFetchSuccess("CAM01", time.Second)
	m.RecordDeviceFetchFailure("CAM01", errors.New("x"), time.Second)
	m.RecordMediaDownload("CAM01", 1)
	m.RecordMediaFailure("CAM01", errors.New("x"))

	assert.Empty(t, m.GetMetrics())
}
