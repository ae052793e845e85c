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
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// Session is one authenticated context against the Reveal cloud. Sessions are
// immutable values; renewal produces a replacement, never an in-place update.
type Session struct {
	AccessToken  string
	IDToken      string
	RefreshToken string
	AccountID    string
	IssuedAt     time.Time
	ExpiresAt    time.Time
}

// Valid reports whether the session can still be used with the given safety
// margin before expiry.
func (s *Session) Valid(now time.Time, margin time.Duration) bool {
	if s == nil || s.AccessToken == "" {
		return false
	}

	return now.Before(s.ExpiresAt.Add(-margin))
}

// Cognito wire format.

type initiateAuthRequest struct {
	AuthFlow       string            `json:"AuthFlow"`
	AuthParameters map[string]string `json:"AuthParameters"`
	ClientID       string            `json:"ClientId"`
}

type initiateAuthResponse struct {
	AuthenticationResult *authenticationResult `json:"AuthenticationResult"`
}

type authenticationResult struct {
	AccessToken  string `json:"AccessToken"`
	IDToken      string `json:"IdToken"`
	RefreshToken string `json:"RefreshToken"`
	ExpiresIn    int    `json:"ExpiresIn"`
}

type cognitoErrorResponse struct {
	Type    string `json:"__type"`
	Message string `json:"message"`
}

// Device API wire format. Every endpoint wraps its payload in a "response"
// envelope.

type accountEnvelope struct {
	Response struct {
		Account *struct {
			AccountID string `json:"accountId"`
		} `json:"account"`
		AccountID string `json:"accountId"`
	} `json:"response"`
}

type cameraListEnvelope struct {
	Response struct {
		Cameras []cameraJSON `json:"cameras"`
	} `json:"response"`
}

type cameraJSON struct {
	CameraID       string `json:"cameraId"`
	CameraName     string `json:"cameraName"`
	Name           string `json:"name"`
	CameraLocation string `json:"cameraLocation"`
	HWVersion      string `json:"hwVersion"`
	FWVersion      string `json:"fwVersion"`
	Status         struct {
		Memory                    float64     `json:"memory"`
		MemoryLimit               float64     `json:"memoryLimit"`
		VoltageSource             string      `json:"voltagesource"`
		VoltageExternal           flexVoltage `json:"voltageexternal"`
		LastTransmissionTimestamp int64       `json:"lastTransmissionTimestamp"`
	} `json:"status"`
}

// externalPowerVoltage is the threshold above which the external supply is
// considered connected; readings below it are sensor noise.
const externalPowerVoltage = 0.5

// externalPower reports whether the camera runs on an external supply. A
// voltage source of "Backup" means battery; any other non-empty label means
// external power, as does an external voltage above the noise threshold.
func (c *cameraJSON) externalPower() bool {
	if src := c.Status.VoltageSource; src != "" && src != "Backup" {
		return true
	}

	return float64(c.Status.VoltageExternal) > externalPowerVoltage
}

// lastTransmission converts the status block's millisecond timestamp.
func (c *cameraJSON) lastTransmission() (time.Time, bool) {
	if c.Status.LastTransmissionTimestamp <= 0 {
		return time.Time{}, false
	}

	return time.UnixMilli(c.Status.LastTransmissionTimestamp).UTC(), true
}

type photoListEnvelope struct {
	Response struct {
		Photos []photoJSON `json:"photos"`
	} `json:"response"`
}

type photoJSON struct {
	PhotoURL     string         `json:"photoUrl"`
	PhotoName    string         `json:"photoName"`
	PhotoDateUTC string         `json:"photoDateUtc"`
	Metadata     *photoMetadata `json:"metadata"`

	// The backend has shipped the weather payload under three different keys.
	WeatherData   *weatherJSON `json:"weatherData"`
	WeatherRecord *weatherJSON `json:"weatherRecord"`
	Weather       *weatherJSON `json:"weather"`
}

func (p *photoJSON) weather() *weatherJSON {
	switch {
	case p.WeatherData != nil:
		return p.WeatherData
	case p.WeatherRecord != nil:
		return p.WeatherRecord
	default:
		return p.Weather
	}
}

func (p *photoJSON) takenAt() (time.Time, bool) {
	if p.PhotoDateUTC == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(time.RFC3339, p.PhotoDateUTC); err == nil {
		return t, true
	}

	if t, err := time.Parse("2006-01-02T15:04:05", p.PhotoDateUTC); err == nil {
		return t.UTC(), true
	}

	return time.Time{}, false
}

type photoMetadata struct {
	BatteryLevel flexInt  `json:"batteryLevel"`
	Signal       flexInt  `json:"signal"`
	GPSLatitude  *float64 `json:"gpsLatitude"`
	GPSLongitude *float64 `json:"gpsLongitude"`
}

type weatherJSON struct {
	CurrentTemp  *float64 `json:"currentTemp"`
	Temperature  *float64 `json:"temperature"`
	Temp         *float64 `json:"temp"`
	Weather      string   `json:"weather"`
	WeatherLabel string   `json:"weatherLabel"`
	Conditions   string   `json:"conditions"`

	WindSpeed     float64       `json:"windSpeed"`
	WindGust      float64       `json:"windGust"`
	WindDirection windDirection `json:"windDirection"`

	BarometricPressure *float64 `json:"barometricPressure"`
	Pressure           *float64 `json:"pressure"`
	PressureTendency   string   `json:"pressureTendency"`

	MoonPhase string `json:"moonPhase"`
	SunPhase  string `json:"sunPhase"`

	TempMin12hr             *float64 `json:"tempMin12hr"`
	TempMax12hr             *float64 `json:"tempMax12hr"`
	TemperatureRange12Hours *struct {
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	} `json:"temperatureRange12Hours"`

	TempDepature24hr                *float64 `json:"tempDepature24hr"` // backend's spelling
	Past24HoursTemperatureDeparture *float64 `json:"past24HoursTemperatureDeparture"`
}

func (w *weatherJSON) temperatureValue() *float64 {
	switch {
	case w.CurrentTemp != nil:
		return w.CurrentTemp
	case w.Temperature != nil:
		return w.Temperature
	default:
		return w.Temp
	}
}

func (w *weatherJSON) conditionsValue() string {
	switch {
	case w.Weather != "":
		return w.Weather
	case w.WeatherLabel != "":
		return w.WeatherLabel
	default:
		return w.Conditions
	}
}

// windDirection tolerates both the flat form ("NW") and the structured form
// ({"degrees": 315, "speed": 4.2, "cardinalLabel": "NW"}).
type windDirection struct {
	Cardinal string
	Degrees  float64
	Speed    *float64
}

func (w *windDirection) UnmarshalJSON(b []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(b), []byte(`"`)) {
		return json.Unmarshal(b, &w.Cardinal)
	}

	var structured struct {
		Degrees       float64  `json:"degrees"`
		Speed         *float64 `json:"speed"`
		CardinalLabel string   `json:"cardinalLabel"`
		Direction     string   `json:"direction"`
	}

	if err := json.Unmarshal(b, &structured); err != nil {
		return err
	}

	w.Degrees = structured.Degrees
	w.Speed = structured.Speed
	w.Cardinal = structured.CardinalLabel

	if w.Cardinal == "" {
		w.Cardinal = structured.Direction
	}

	return nil
}

// flexVoltage accepts the voltage readings the status block has shipped as
// numbers ("12.4") and as unit-suffixed strings ("12.4V"). Unparseable
// readings decode to zero rather than failing the whole catalog.
type flexVoltage float64

func (f *flexVoltage) UnmarshalJSON(b []byte) error {
	trimmed := bytes.Trim(bytes.TrimSpace(b), `"`)
	trimmed = bytes.TrimRight(trimmed, "vV ")

	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*f = 0
		return nil
	}

	v, err := strconv.ParseFloat(string(trimmed), 64)
	if err != nil {
		*f = 0
		return nil
	}

	*f = flexVoltage(v)

	return nil
}

// flexInt accepts both JSON numbers and numeric strings; camera firmware has
// sent batteryLevel and signal either way.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	trimmed := bytes.Trim(bytes.TrimSpace(b), `"`)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*f = 0
		return nil
	}

	v, err := strconv.Atoi(string(trimmed))
	if err != nil {
		return err
	}

	*f = flexInt(v)

	return nil
}

// Camera stats endpoint payload; the same keys the local fallback computes.
type statsEnvelope struct {
	Response statsJSON `json:"response"`
}

type statsJSON struct {
	TotalPhotos    int     `json:"total_photos"`
	FirstPhotoDate string  `json:"first_photo_date"`
	LastPhotoDate  string  `json:"last_photo_date"`
	AverageBattery float64 `json:"average_battery"`
	CurrentBattery int     `json:"current_battery"`
	AverageSignal  float64 `json:"average_signal"`
	CurrentSignal  int     `json:"current_signal"`
}
