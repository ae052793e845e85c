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

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildsight/revealsync/pkg/logger"
	"github.com/wildsight/revealsync/pkg/models"
)

type fakeSyncer struct {
	snapshot     *models.Snapshot
	refreshCalls int
}

func (f *fakeSyncer) Snapshot() *models.Snapshot { return f.snapshot }

func (f *fakeSyncer) RefreshNow(context.Context) { f.refreshCalls++ }

func (f *fakeSyncer) GetMetrics() map[string]interface{} {
	return map[string]interface{}{"cycles": 3}
}

type fakeImages struct {
	body    []byte
	fetched time.Time
}

func (f *fakeImages) Bytes(string) ([]byte, time.Time, bool) {
	if f.body == nil {
		return nil, time.Time{}, false
	}

	return f.body, f.fetched, true
}

func newTestServer(syncer *fakeSyncer, images *fakeImages) *Server {
	return NewServer(ServerConfig{ListenAddr: ":0"}, syncer, images, logger.NewTestLogger())
}

func testSnapshot() *models.Snapshot {
	return &models.Snapshot{
		CycleID: "cycle-1",
		Taken:   time.Date(2025, 8, 27, 12, 0, 0, 0, time.UTC),
		Devices: map[string]models.SnapshotEntry{
			"CAM01": {
				Device: models.Device{DeviceID: "CAM01", DisplayName: "North Field", Status: models.StatusActive},
				State:  &models.DeviceState{BatteryLevel: 94, SignalStrength: 4},
			},
			"CAM02": {
				Device: models.Device{DeviceID: "CAM02", DisplayName: "Creek Bend", Status: models.StatusMissing},
				Stale:  true,
			},
		},
	}
}

func doRequest(t *testing.T, s *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, http.NoBody)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	return w
}

func TestListCameras(t *testing.T) {
	s := newTestServer(&fakeSyncer{snapshot: testSnapshot()}, &fakeImages{})

	w := doRequest(t, s, http.MethodGet, "/api/cameras")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		CycleID string            `json:"cycle_id"`
		Cameras []json.RawMessage `json:"cameras"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "cycle-1", body.CycleID)
	assert.Len(t, body.Cameras, 2)
}

func TestListCamerasBeforeFirstCycle(t *testing.T) {
	s := newTestServer(&fakeSyncer{}, &fakeImages{})

	w := doRequest(t, s, http.MethodGet, "/api/cameras")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetCamera(t *testing.T) {
	s := newTestServer(&fakeSyncer{snapshot: testSnapshot()}, &fakeImages{})

	w := doRequest(t, s, http.MethodGet, "/api/cameras/CAM01")
	require.Equal(t, http.StatusOK, w.Code)

	var attrs struct {
		CameraID      string `json:"camera_id"`
		BatteryLevel  int    `json:"battery_level"`
		SignalQuality string `json:"signal_quality"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &attrs))
	assert.Equal(t, "CAM01", attrs.CameraID)
	assert.Equal(t, 94, attrs.BatteryLevel)
	assert.Equal(t, "Very Good", attrs.SignalQuality)
}

func TestGetCameraNotFound(t *testing.T) {
	s := newTestServer(&fakeSyncer{snapshot: testSnapshot()}, &fakeImages{})

	w := doRequest(t, s, http.MethodGet, "/api/cameras/NOPE")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetImage(t *testing.T) {
	fetched := time.Date(2025, 8, 27, 11, 58, 0, 0, time.UTC)
	s := newTestServer(
		&fakeSyncer{snapshot: testSnapshot()},
		&fakeImages{body: []byte("jpeg-bytes"), fetched: fetched},
	)

	w := doRequest(t, s, http.MethodGet, "/api/cameras/CAM01/image")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, fetched.Format(http.TimeFormat), w.Header().Get("Last-Modified"))
	assert.Equal(t, "jpeg-bytes", w.Body.String())
}

func TestGetImageNoCachedBytes(t *testing.T) {
	s := newTestServer(&fakeSyncer{snapshot: testSnapshot()}, &fakeImages{})

	w := doRequest(t, s, http.MethodGet, "/api/cameras/CAM01/image")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRefresh(t *testing.T) {
	syncer := &fakeSyncer{snapshot: testSnapshot()}
	s := newTestServer(syncer, &fakeImages{})

	w := doRequest(t, s, http.MethodPost, "/api/refresh")
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, 1, syncer.refreshCalls)
}

func TestHealth(t *testing.T) {
	s := newTestServer(&fakeSyncer{snapshot: testSnapshot()}, &fakeImages{})

	w := doRequest(t, s, http.MethodGet, "/api/health")
	require.Equal(t, http.StatusOK, w.Code)

	var health map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, "cycle-1", health["last_cycle_id"])
	assert.EqualValues(t, 2, health["devices"])
}

func TestHealthBeforeFirstCycle(t *testing.T) {
	s := newTestServer(&fakeSyncer{}, &fakeImages{})

	w := doRequest(t, s, http.MethodGet, "/api/health")
	require.Equal(t, http.StatusOK, w.Code)

	var health map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "starting", health["status"])
}
