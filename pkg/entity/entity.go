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

// Package entity flattens snapshot entries into the attribute set the host
// platform displays for each camera.
package entity

import (
	"time"

	"github.com/wildsight/revealsync/pkg/models"
)

// Attributes is the displayable view of one camera.
type Attributes struct {
	CameraID        string  `json:"camera_id"`
	CameraName      string  `json:"camera_name"`
	Location        string  `json:"location,omitempty"`
	Status          string  `json:"status"`
	HardwareVersion string  `json:"hardware_version,omitempty"`
	FirmwareVersion string  `json:"firmware_version,omitempty"`
	MemoryUsedPct   float64 `json:"memory_used_pct,omitempty"`

	ExternalPower    bool       `json:"external_power"`
	Online           bool       `json:"online"`
	LastTransmission *time.Time `json:"last_transmission,omitempty"`

	TotalPhotos    int     `json:"total_photos"`
	BatteryLevel   int     `json:"battery_level"`
	SignalStrength int     `json:"signal_strength"`
	SignalQuality  string  `json:"signal_quality,omitempty"`
	AverageBattery float64 `json:"average_battery"`
	AverageSignal  float64 `json:"average_signal"`

	Temperature        float64 `json:"temperature,omitempty"`
	Weather            string  `json:"weather,omitempty"`
	MoonPhase          string  `json:"moon_phase,omitempty"`
	WindSpeed          float64 `json:"wind_speed,omitempty"`
	WindDirection      string  `json:"wind_direction,omitempty"`
	BarometricPressure float64 `json:"barometric_pressure,omitempty"`

	GPSCoordinates *models.GPSCoordinates `json:"gps_coordinates,omitempty"`
	LastPhotoTime  *time.Time             `json:"last_photo_time,omitempty"`

	Stale    bool   `json:"stale"`
	ImageURL string `json:"image_url,omitempty"`
}

// signalQuality translates 1-5 signal bars into the label the original
// product shows next to the bars.
func signalQuality(bars int) string {
	switch bars {
	case 1:
		return "Poor"
	case 2:
		return "Fair"
	case 3:
		return "Good"
	case 4:
		return "Very Good"
	case 5:
		return "Excellent"
	default:
		return ""
	}
}

// FromEntry flattens one snapshot entry.
func FromEntry(entry models.SnapshotEntry) Attributes {
	attrs := Attributes{
		CameraID:        entry.Device.DeviceID,
		CameraName:      entry.Device.DisplayName,
		Location:        entry.Device.LocationLabel,
		Status:          string(entry.Device.Status),
		HardwareVersion: entry.Device.HardwareVersion,
		FirmwareVersion: entry.Device.FirmwareVersion,
		ExternalPower:   entry.Device.ExternalPower,
		Online:          entry.Device.Online,
		Stale:           entry.Stale,
	}

	if t := entry.Device.LastTransmission; t != nil {
		last := *t
		attrs.LastTransmission = &last
	}

	if entry.Device.MemoryLimitMB > 0 {
		attrs.MemoryUsedPct = 100 * entry.Device.MemoryUsedMB / entry.Device.MemoryLimitMB
	}

	if state := entry.State; state != nil {
		attrs.TotalPhotos = state.TotalPhotoCount
		attrs.BatteryLevel = state.BatteryLevel
		attrs.SignalStrength = state.SignalStrength
		attrs.SignalQuality = signalQuality(state.SignalStrength)
		attrs.AverageBattery = state.BatteryLevelAvg
		attrs.AverageSignal = state.SignalStrengthAvg
		attrs.GPSCoordinates = state.GPS

		if !state.LastPhotoTime.IsZero() {
			t := state.LastPhotoTime
			attrs.LastPhotoTime = &t
		}

		if w := state.Weather; w != nil {
			attrs.Temperature = w.Temperature
			attrs.Weather = w.Conditions
			attrs.MoonPhase = w.MoonPhase
			attrs.WindSpeed = w.WindSpeed
			attrs.WindDirection = w.WindDirection
			attrs.BarometricPressure = w.Pressure
		}
	}

	return attrs
}

// FromSnapshot flattens every entry of a snapshot, in map order.
func FromSnapshot(snap *models.Snapshot) []Attributes {
	if snap == nil {
		return nil
	}

	out := make([]Attributes, 0, len(snap.Devices))
	for _, entry := range snap.Devices {
		out = append(out, FromEntry(entry))
	}

	return out
}
