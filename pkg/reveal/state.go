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

package reveal

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/wildsight/revealsync/pkg/models"
)

// statsPageSize is how many recent photos feed the rolling battery/signal
// averages.
const statsPageSize = 10

// FetchState retrieves the current telemetry, weather snapshot and
// latest-photo reference for one camera. A camera with no captured photos
// returns a nil MediaReference, which is a valid outcome.
func (c *Client) FetchState(ctx context.Context, session *Session, deviceID string) (*models.DeviceState, *models.MediaReference, error) {
	query := url.Values{
		"size":               {fmt.Sprintf("%d", statsPageSize)},
		"page":               {"0"},
		"includeWeatherData": {"true"},
		"cameraId":           {deviceID},
	}

	var envelope photoListEnvelope

	if err := c.getJSON(ctx, session, "photos", query, &envelope); err != nil {
		return nil, nil, err
	}

	photos := envelope.Response.Photos
	state := &models.DeviceState{}

	var media *models.MediaReference

	if len(photos) > 0 {
		latest := &photos[0]

		if meta := latest.Metadata; meta != nil {
			state.BatteryLevel = int(meta.BatteryLevel)
			state.SignalStrength = int(meta.Signal)

			if meta.GPSLatitude != nil && meta.GPSLongitude != nil {
				state.GPS = &models.GPSCoordinates{
					Latitude:  *meta.GPSLatitude,
					Longitude: *meta.GPSLongitude,
				}
			}
		}

		if taken, ok := latest.takenAt(); ok {
			state.LastPhotoTime = taken
		}

		if w := latest.weather(); w != nil {
			state.Weather = convertWeather(w)
		}

		if latest.PhotoURL != "" {
			now := time.Now()
			media = &models.MediaReference{
				DeviceID:  deviceID,
				URL:       latest.PhotoURL,
				PhotoName: latest.PhotoName,
				IssuedAt:  now,
				ExpiresAt: now.Add(models.MediaReferenceTTL),
			}
		}
	}

	fillAverages(state, photos)
	c.applyStats(ctx, session, deviceID, state, photos)

	return state, media, nil
}

// applyStats overlays the camera stats endpoint onto the locally computed
// values. The endpoint is not available for every account, so any failure
// falls back to the figures derived from the photo page.
func (c *Client) applyStats(ctx context.Context, session *Session, deviceID string, state *models.DeviceState, photos []photoJSON) {
	var envelope statsEnvelope

	err := c.getJSON(ctx, session, fmt.Sprintf("cameras/%s/stats", deviceID), nil, &envelope)
	if err != nil {
		if !IsAPIKind(err, APINotFound) {
			c.logger.Warn().Err(err).Str("device_id", deviceID).Msg("Camera stats unavailable, using local figures")
		}

		state.TotalPhotoCount = len(photos)
		if len(photos) > 0 {
			if first, ok := photos[len(photos)-1].takenAt(); ok {
				state.FirstPhotoTime = first
			}
		}

		return
	}

	stats := envelope.Response

	if stats.TotalPhotos > 0 {
		state.TotalPhotoCount = stats.TotalPhotos
	} else {
		state.TotalPhotoCount = len(photos)
	}

	if stats.AverageBattery > 0 {
		state.BatteryLevelAvg = stats.AverageBattery
	}

	if stats.AverageSignal > 0 {
		state.SignalStrengthAvg = stats.AverageSignal
	}

	if t, err := time.Parse(time.RFC3339, stats.FirstPhotoDate); err == nil {
		state.FirstPhotoTime = t
	}

	if state.LastPhotoTime.IsZero() {
		if t, err := time.Parse(time.RFC3339, stats.LastPhotoDate); err == nil {
			state.LastPhotoTime = t
		}
	}
}

// fillAverages computes rolling battery and signal averages over the most
// recent photos, mirroring what the account portal displays.
func fillAverages(state *models.DeviceState, photos []photoJSON) {
	var (
		batterySum, batteryN int
		signalSum, signalN   int
	)

	for i := range photos {
		meta := photos[i].Metadata
		if meta == nil {
			continue
		}

		if meta.BatteryLevel > 0 {
			batterySum += int(meta.BatteryLevel)
			batteryN++
		}

		if meta.Signal > 0 {
			signalSum += int(meta.Signal)
			signalN++
		}
	}

	if batteryN > 0 {
		state.BatteryLevelAvg = float64(batterySum) / float64(batteryN)
	}

	if signalN > 0 {
		state.SignalStrengthAvg = float64(signalSum) / float64(signalN)
	}
}

func convertWeather(w *weatherJSON) *models.Weather {
	out := &models.Weather{
		Conditions:       w.conditionsValue(),
		WindSpeed:        w.WindSpeed,
		WindGust:         w.WindGust,
		WindDirection:    w.WindDirection.Cardinal,
		WindDegrees:      w.WindDirection.Degrees,
		PressureTendency: w.PressureTendency,
		MoonPhase:        w.MoonPhase,
		SunPhase:         w.SunPhase,
	}

	if t := w.temperatureValue(); t != nil {
		out.Temperature = *t
	}

	if out.WindSpeed == 0 && w.WindDirection.Speed != nil {
		out.WindSpeed = *w.WindDirection.Speed
	}

	switch {
	case w.BarometricPressure != nil:
		out.Pressure = *w.BarometricPressure
	case w.Pressure != nil:
		out.Pressure = *w.Pressure
	}

	switch {
	case w.TempMin12hr != nil:
		out.TempMin12h = *w.TempMin12hr
	case w.TemperatureRange12Hours != nil:
		out.TempMin12h = w.TemperatureRange12Hours.Min
	}

	switch {
	case w.TempMax12hr != nil:
		out.TempMax12h = *w.TempMax12hr
	case w.TemperatureRange12Hours != nil:
		out.TempMax12h = w.TemperatureRange12Hours.Max
	}

	switch {
	case w.TempDepature24hr != nil:
		out.TempDeparture24h = *w.TempDepature24hr
	case w.Past24HoursTemperatureDeparture != nil:
		out.TempDeparture24h = *w.Past24HoursTemperatureDeparture
	}

	return out
}
