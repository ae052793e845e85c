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

// Package media caches the latest photo bytes per camera, keyed by device,
// tracking pre-signed URL expiry so cached content stays valid without
// re-downloading on every cycle.
package media

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/wildsight/revealsync/pkg/logger"
	"github.com/wildsight/revealsync/pkg/models"
)

// maxPhotoBytes caps a single download; trail-camera photos are far smaller.
const maxPhotoBytes = 16 << 20

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type entry struct {
	ref       models.MediaReference
	bytes     []byte
	fetchedAt time.Time
}

// Cache holds at most one media entry per device: the latest photo. It is
// mutated only by the coordinator's cycle; reads may come from any goroutine.
type Cache struct {
	httpClient HTTPClient
	logger     logger.Logger
	nowFn      func() time.Time

	mu      sync.RWMutex
	entries map[string]*entry
}

// NewCache creates a media cache.
func NewCache(httpClient HTTPClient, log logger.Logger) *Cache {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}

	if log == nil {
		log = logger.NewTestLogger()
	}

	return &Cache{
		httpClient: httpClient,
		logger:     log,
		nowFn:      time.Now,
		entries:    make(map[string]*entry),
	}
}

// GetOrRefresh returns the photo bytes for the candidate reference. Cached
// bytes are reused when the stored reference has the same URL and has not
// expired; otherwise the photo is downloaded and the entry replaced. On
// download failure any prior bytes are kept and returned alongside the error,
// so consumers can serve a stale image rather than none.
func (c *Cache) GetOrRefresh(ctx context.Context, candidate models.MediaReference) ([]byte, error) {
	now := c.nowFn()

	c.mu.RLock()
	cached := c.entries[candidate.DeviceID]
	if cached != nil && cached.bytes != nil && cached.ref.URL == candidate.URL && !cached.ref.Expired(now) {
		bytes := cached.bytes
		c.mu.RUnlock()

		return bytes, nil
	}
	c.mu.RUnlock()

	bytes, err := c.download(ctx, candidate.URL)
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("device_id", candidate.DeviceID).
			Msg("Photo download failed, keeping cached bytes")

		var stale []byte
		if cached != nil {
			stale = cached.bytes
		}

		return stale, err
	}

	c.mu.Lock()
	c.entries[candidate.DeviceID] = &entry{
		ref:       candidate,
		bytes:     bytes,
		fetchedAt: now,
	}
	c.mu.Unlock()

	c.logger.Debug().
		Str("device_id", candidate.DeviceID).
		Int("bytes", len(bytes)).
		Msg("Cached latest photo")

	return bytes, nil
}

// Bytes returns the cached photo for a device, if any, along with when it was
// fetched. Expired entries are still returned; stale beats absent for display.
func (c *Cache) Bytes(deviceID string) ([]byte, time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cached, ok := c.entries[deviceID]
	if !ok || cached.bytes == nil {
		return nil, time.Time{}, false
	}

	return cached.bytes, cached.fetchedAt, true
}

// Forget drops a device's cache entry.
func (c *Cache) Forget(deviceID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, deviceID)
}

func (c *Cache) download(ctx context.Context, photoURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, photoURL, http.NoBody)
	if err != nil {
		return nil, newFetchError(NetworkError, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newFetchError(NetworkError, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusForbidden:
		// Pre-signed URL signature rejected; a newer reference is needed.
		return nil, newFetchError(Forbidden, errUnexpectedStatusCode)
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, newFetchError(Gone, errUnexpectedStatusCode)
	default:
		return nil, newFetchError(NetworkError, errUnexpectedStatusCode)
	}

	bytes, err := io.ReadAll(io.LimitReader(resp.Body, maxPhotoBytes))
	if err != nil {
		return nil, newFetchError(NetworkError, err)
	}

	return bytes, nil
}
