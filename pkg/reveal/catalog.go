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
	"time"

	"github.com/wildsight/revealsync/pkg/models"
)

// onlineWindow is how recently a camera must have transmitted to count as
// online.
const onlineWindow = 24 * time.Hour

// ListCameras retrieves the cameras associated with the account. The remote
// source does not guarantee ordering; callers must key on device id.
func (c *Client) ListCameras(ctx context.Context, session *Session) ([]models.Device, error) {
	var envelope cameraListEnvelope

	if err := c.getJSON(ctx, session, "cameras", nil, &envelope); err != nil {
		return nil, err
	}

	devices := make([]models.Device, 0, len(envelope.Response.Cameras))
	now := time.Now()

	for i := range envelope.Response.Cameras {
		cam := &envelope.Response.Cameras[i]
		if cam.CameraID == "" {
			c.logger.Warn().Msg("Skipping catalog entry without camera id")
			continue
		}

		device := models.Device{
			DeviceID:        cam.CameraID,
			DisplayName:     displayName(cam),
			LocationLabel:   cam.CameraLocation,
			HardwareVersion: cam.HWVersion,
			FirmwareVersion: cam.FWVersion,
			Status:          models.StatusActive,
			MemoryUsedMB:    cam.Status.Memory,
			MemoryLimitMB:   cam.Status.MemoryLimit,
			ExternalPower:   cam.externalPower(),
		}

		if last, ok := cam.lastTransmission(); ok {
			device.LastTransmission = &last
			device.Online = now.Sub(last) < onlineWindow
		}

		devices = append(devices, device)
	}

	c.logger.Debug().Int("cameras", len(devices)).Msg("Fetched camera catalog")

	return devices, nil
}

func displayName(cam *cameraJSON) string {
	switch {
	case cam.CameraName != "":
		return cam.CameraName
	case cam.CameraLocation != "":
		return cam.CameraLocation
	case cam.Name != "":
		return cam.Name
	default:
		suffix := cam.CameraID
		if len(suffix) > 4 {
			suffix = suffix[len(suffix)-4:]
		}

		return fmt.Sprintf("Camera %s", suffix)
	}
}
