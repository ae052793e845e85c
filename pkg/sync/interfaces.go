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
	"context"
	"time"

	"github.com/wildsight/revealsync/pkg/models"
	"github.com/wildsight/revealsync/pkg/reveal"
)

//go:generate mockgen -destination=mock_sync.go -package=sync github.com/wildsight/revealsync/pkg/sync SessionSource,CatalogLister,StateFetcher,MediaStore

// SessionSource provides a valid session for a cycle, renewing as needed.
type SessionSource interface {
	EnsureValid(ctx context.Context) (*reveal.Session, error)
	Invalidate()
}

// CatalogLister retrieves the account's camera catalog.
type CatalogLister interface {
	ListCameras(ctx context.Context, session *reveal.Session) ([]models.Device, error)
}

// StateFetcher retrieves one camera's current state and media reference.
type StateFetcher interface {
	FetchState(ctx context.Context, session *reveal.Session, deviceID string) (*models.DeviceState, *models.MediaReference, error)
}

// MediaStore caches photo bytes keyed by device.
type MediaStore interface {
	GetOrRefresh(ctx context.Context, candidate models.MediaReference) ([]byte, error)
}

// Clock defines an interface for time-related operations (to mock the ticker).
type Clock interface {
	Now() time.Time
	Ticker(d time.Duration) Ticker
}

// Ticker defines an interface for the ticker used in polling.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}
