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

package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaReferenceExpired(t *testing.T) {
	issued := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	ref := &MediaReference{
		DeviceID:  "CAM01",
		URL:       "https://cdn.example.com/photo.jpg",
		IssuedAt:  issued,
		ExpiresAt: issued.Add(MediaReferenceTTL),
	}

	tests := []struct {
		name    string
		now     time.Time
		expired bool
	}{
		{"well before expiry", issued.Add(time.Hour), false},
		{"one nanosecond before expiry", ref.ExpiresAt.Add(-time.Nanosecond), false},
		{"exactly at expiry", ref.ExpiresAt, true},
		{"after expiry", ref.ExpiresAt.Add(time.Minute), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expired, ref.Expired(tt.now))
		})
	}
}

func TestSnapshotEntry(t *testing.T) {
	snap := &Snapshot{
		CycleID: "cycle-1",
		Devices: map[string]SnapshotEntry{
			"CAM01": {Device: Device{DeviceID: "CAM01", Status: StatusActive}},
		},
	}

	entry, ok := snap.Entry("CAM01")
	require.True(t, ok)
	assert.Equal(t, "CAM01", entry.Device.DeviceID)

	_, ok = snap.Entry("CAM99")
	assert.False(t, ok)

	var nilSnap *Snapshot

	_, ok = nilSnap.Entry("CAM01")
	assert.False(t, ok)
}

func TestDurationUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"duration string", `"5m"`, 5 * time.Minute, false},
		{"nanoseconds number", `300000000000`, 5 * time.Minute, false},
		{"garbage string", `"never"`, 0, true},
		{"wrong type", `{"interval": 5}`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration

			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

func TestDurationMarshal(t *testing.T) {
	b, err := json.Marshal(Duration(90 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(b))
}
