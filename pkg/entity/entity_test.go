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

package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildsight/revealsync/pkg/models"
)

func TestFromEntry(t *testing.T) {
	lastPhoto := time.Date(2025, 8, 26, 21, 31, 20, 0, time.UTC)
	lastTx := time.Date(2025, 8, 26, 21, 40, 0, 0, time.UTC)

	entry := models.SnapshotEntry{
		Device: models.Device{
			DeviceID:         "CAM01",
			DisplayName:      "North Field",
			LocationLabel:    "Back 40",
			HardwareVersion:  "HW22",
			FirmwareVersion:  "5.1.0",
			Status:           models.StatusActive,
			MemoryUsedMB:     512,
			MemoryLimitMB:    2048,
			ExternalPower:    true,
			Online:           true,
			LastTransmission: &lastTx,
		},
		State: &models.DeviceState{
			BatteryLevel:      94,
			BatteryLevelAvg:   92.5,
			SignalStrength:    4,
			SignalStrengthAvg: 3.8,
			TotalPhotoCount:   1289,
			LastPhotoTime:     lastPhoto,
			GPS:               &models.GPSCoordinates{Latitude: 44.97, Longitude: -93.26},
			Weather: &models.Weather{
				Temperature:   71.3,
				Conditions:    "Partly Cloudy",
				MoonPhase:     "Waxing Gibbous",
				WindSpeed:     6.2,
				WindDirection: "NW",
				Pressure:      29.92,
			},
		},
	}

	attrs := FromEntry(entry)

	assert.Equal(t, "CAM01", attrs.CameraID)
	assert.Equal(t, "North Field", attrs.CameraName)
	assert.Equal(t, "Back 40", attrs.Location)
	assert.Equal(t, "active", attrs.Status)
	assert.InDelta(t, 25.0, attrs.MemoryUsedPct, 0.001)

	assert.True(t, attrs.ExternalPower)
	assert.True(t, attrs.Online)
	require.NotNil(t, attrs.LastTransmission)
	assert.Equal(t, lastTx, *attrs.LastTransmission)

	assert.Equal(t, 1289, attrs.TotalPhotos)
	assert.Equal(t, 94, attrs.BatteryLevel)
	assert.Equal(t, 4, attrs.SignalStrength)
	assert.Equal(t, "Very Good", attrs.SignalQuality)
	assert.InDelta(t, 92.5, attrs.AverageBattery, 0.001)
	assert.InDelta(t, 3.8, attrs.AverageSignal, 0.001)

	assert.InDelta(t, 71.3, attrs.Temperature, 0.001)
	assert.Equal(t, "Partly Cloudy", attrs.Weather)
	assert.Equal(t, "Waxing Gibbous", attrs.MoonPhase)
	assert.Equal(t, "NW", attrs.WindDirection)
	assert.InDelta(t, 29.92, attrs.BarometricPressure, 0.001)

	require.NotNil(t, attrs.GPSCoordinates)
	assert.InDelta(t, 44.97, attrs.GPSCoordinates.Latitude, 0.001)

	require.NotNil(t, attrs.LastPhotoTime)
	assert.Equal(t, lastPhoto, *attrs.LastPhotoTime)

	assert.False(t, attrs.Stale)
}

func TestFromEntryWithoutState(t *testing.T) {
	entry := models.SnapshotEntry{
		Device: models.Device{DeviceID: "CAM02", Status: models.StatusMissing},
		Stale:  true,
	}

	attrs := FromEntry(entry)

	assert.Equal(t, "CAM02", attrs.CameraID)
	assert.Equal(t, "missing", attrs.Status)
	assert.True(t, attrs.Stale)
	assert.Zero(t, attrs.BatteryLevel)
	assert.Empty(t, attrs.SignalQuality)
	assert.Nil(t, attrs.LastPhotoTime)
	assert.Zero(t, attrs.MemoryUsedPct)
	assert.False(t, attrs.ExternalPower)
	assert.False(t, attrs.Online)
	assert.Nil(t, attrs.LastTransmission)
}

func TestSignalQualityLabels(t *testing.T) {
	tests := []struct {
		bars int
		want string
	}{
		{0, ""},
		{1, "Poor"},
		{2, "Fair"},
		{3, "Good"},
		{4, "Very Good"},
		{5, "Excellent"},
		{6, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, signalQuality(tt.bars), "bars=%d", tt.bars)
	}
}

func TestFromSnapshot(t *testing.T) {
	assert.Nil(t, FromSnapshot(nil))

	snap := &models.Snapshot{
		CycleID: "cycle-1",
		Devices: map[string]models.SnapshotEntry{
			"CAM01": {Device: models.Device{DeviceID: "CAM01", Status: models.StatusActive}},
			"CAM02": {Device: models.Device{DeviceID: "CAM02", Status: models.StatusActive}},
		},
	}

	attrs := FromSnapshot(snap)
	assert.Len(t, attrs, 2)
}
