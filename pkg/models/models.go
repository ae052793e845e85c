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

// Package models holds the shared domain types for revealsync.
package models

import "time"

// Credential is the long-lived identifier/secret pair for the Reveal account.
// It is handed to the session manager once and never logged.
type Credential struct {
	Username string
	Password string
}

// DeviceStatus describes the catalog lifecycle state of a camera.
type DeviceStatus string

const (
	// StatusActive means the camera appeared in the latest catalog fetch.
	StatusActive DeviceStatus = "active"
	// StatusMissing means the camera is known but was absent from the latest
	// catalog response, or its state fetch returned not-found. The device is
	// kept rather than deleted so consumers holding a reference stay valid.
	StatusMissing DeviceStatus = "missing"
)

// Device is the stable identity record for one trail camera. Identity is
// DeviceID; every other field is refreshed on each catalog cycle.
type Device struct {
	DeviceID        string       `json:"device_id"`
	DisplayName     string       `json:"display_name"`
	LocationLabel   string       `json:"location_label"`
	HardwareVersion string       `json:"hardware_version"`
	FirmwareVersion string       `json:"firmware_version"`
	Status          DeviceStatus `json:"status"`
	MemoryUsedMB    float64      `json:"memory_used_mb"`
	MemoryLimitMB   float64      `json:"memory_limit_mb"`

	// ExternalPower and Online come from the camera status block: the
	// voltage readings and the time of the last cellular transmission.
	ExternalPower    bool       `json:"external_power"`
	Online           bool       `json:"online"`
	LastTransmission *time.Time `json:"last_transmission,omitempty"`
}

// GPSCoordinates is an optional camera position from photo metadata.
type GPSCoordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Weather is the weather snapshot attached to a camera's latest photo.
type Weather struct {
	Temperature      float64 `json:"temperature"`
	Conditions       string  `json:"conditions"`
	WindSpeed        float64 `json:"wind_speed"`
	WindDirection    string  `json:"wind_direction"`
	WindDegrees      float64 `json:"wind_degrees"`
	WindGust         float64 `json:"wind_gust"`
	Pressure         float64 `json:"pressure"`
	PressureTendency string  `json:"pressure_tendency"`
	MoonPhase        string  `json:"moon_phase"`
	SunPhase         string  `json:"sun_phase"`
	TempMin12h       float64 `json:"temp_min_12h"`
	TempMax12h       float64 `json:"temp_max_12h"`
	TempDeparture24h float64 `json:"temp_departure_24h"`
}

// DeviceState is the latest-known telemetry for one camera. It is replaced
// wholesale on each successful state fetch, never merged field by field, so a
// published state is always internally consistent.
type DeviceState struct {
	BatteryLevel      int             `json:"battery_level"`
	BatteryLevelAvg   float64         `json:"battery_level_avg"`
	SignalStrength    int             `json:"signal_strength"` // 1-5 bars
	SignalStrengthAvg float64         `json:"signal_strength_avg"`
	GPS               *GPSCoordinates `json:"gps,omitempty"`
	TotalPhotoCount   int             `json:"total_photo_count"`
	LastPhotoTime     time.Time       `json:"last_photo_time"`
	FirstPhotoTime    time.Time       `json:"first_photo_time"`
	Weather           *Weather        `json:"weather,omitempty"`
}

// MediaReferenceTTL is the lifetime of a pre-signed photo URL. The backend
// signs URLs for seven days and offers no way to renew one in place.
const MediaReferenceTTL = 7 * 24 * time.Hour

// MediaReference is a time-limited pointer to a camera's latest photo,
// distinct from the cached bytes themselves.
type MediaReference struct {
	DeviceID  string    `json:"device_id"`
	URL       string    `json:"url"`
	PhotoName string    `json:"photo_name"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the reference can no longer be trusted. The
// boundary is exclusive: a reference at exactly ExpiresAt is expired.
func (r *MediaReference) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// SnapshotEntry is one camera's view inside a published snapshot.
type SnapshotEntry struct {
	Device Device          `json:"device"`
	State  *DeviceState    `json:"state,omitempty"`
	Media  *MediaReference `json:"media,omitempty"`

	// Stale marks an entry whose state fetch failed this cycle; State then
	// carries the previous cycle's values. FetchErr is the absorbed error.
	Stale    bool  `json:"stale"`
	FetchErr error `json:"-"`
}

// Snapshot is the immutable result of one poll cycle covering all known
// cameras, exactly one entry per device id. A new snapshot replaces the prior
// one atomically at publish time.
type Snapshot struct {
	CycleID string                   `json:"cycle_id"`
	Taken   time.Time                `json:"taken"`
	Devices map[string]SnapshotEntry `json:"devices"`
}

// Entry returns the snapshot entry for a device id.
func (s *Snapshot) Entry(deviceID string) (SnapshotEntry, bool) {
	if s == nil {
		return SnapshotEntry{}, false
	}

	entry, ok := s.Devices[deviceID]

	return entry, ok
}
