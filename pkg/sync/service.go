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

// Package sync coordinates periodic synchronization cycles against the
// Reveal cloud: session acquisition, catalog discovery, per-device state
// fetches and media refresh, publishing an immutable snapshot per cycle.
package sync

import (
	"context"
	"fmt"
	stdsync "sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/wildsight/revealsync/pkg/logger"
	"github.com/wildsight/revealsync/pkg/models"
	"github.com/wildsight/revealsync/pkg/reveal"
)

const (
	triggerTimer   = "timer"
	triggerRefresh = "refresh"
	triggerStartup = "startup"
)

// Coordinator runs the synchronization loop and owns the published snapshot.
type Coordinator struct {
	config   Config
	sessions SessionSource
	catalog  CatalogLister
	states   StateFetcher
	media    MediaStore
	clock    Clock
	logger   logger.Logger
	metrics  Metrics
	breaker  *CircuitBreaker

	// cycleActive guards against overlapping cycles, pending coalesces
	// refresh requests that arrive while a cycle is running.
	cycleActive atomic.Bool
	pending     atomic.Bool
	started     atomic.Bool

	cancel context.CancelFunc
	done   chan struct{}

	mu       stdsync.RWMutex
	runCtx   context.Context
	snapshot *models.Snapshot

	// known holds the entries of the last completed cycle. It is read and
	// written only by the cycle goroutine, never concurrently.
	known map[string]models.SnapshotEntry
}

// CoordinatorOption customizes a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithClock overrides the wall clock, used by tests.
func WithClock(clock Clock) CoordinatorOption {
	return func(c *Coordinator) { c.clock = clock }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m Metrics) CoordinatorOption {
	return func(c *Coordinator) { c.metrics = m }
}

// WithMediaStore sets the media cache used to refresh photo bytes each cycle.
func WithMediaStore(store MediaStore) CoordinatorOption {
	return func(c *Coordinator) { c.media = store }
}

// NewCoordinator creates a coordinator wired to the given collaborators.
func NewCoordinator(
	config Config,
	sessions SessionSource,
	catalog CatalogLister,
	states StateFetcher,
	log logger.Logger,
	opts ...CoordinatorOption,
) (*Coordinator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if sessions == nil {
		return nil, errNilSessionSource
	}

	if catalog == nil {
		return nil, errNilCatalogLister
	}

	if states == nil {
		return nil, errNilStateFetcher
	}

	c := &Coordinator{
		config:   config,
		sessions: sessions,
		catalog:  catalog,
		states:   states,
		clock:    realClock{},
		logger:   log,
		metrics:  &NoOpMetrics{},
		runCtx:   context.Background(),
		known:    make(map[string]models.SnapshotEntry),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.breaker = NewCircuitBreaker("reveal-cloud", config.CircuitBreaker, log)

	return c, nil
}

// Start launches the polling loop. The first cycle runs immediately.
func (c *Coordinator) Start(ctx context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})

	c.mu.Lock()
	c.runCtx = runCtx
	c.mu.Unlock()

	c.logger.Info().
		Dur("poll_interval", c.config.PollInterval).
		Int("max_concurrency", c.config.MaxConcurrency).
		Msg("Starting synchronization coordinator")

	go c.run(runCtx)

	return nil
}

// Stop halts the polling loop and waits for any in-flight cycle to finish.
func (c *Coordinator) Stop(ctx context.Context) error {
	if !c.started.Load() {
		return ErrNotStarted
	}

	c.cancel()

	select {
	case <-c.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	c.logger.Info().Msg("Synchronization coordinator stopped")

	return nil
}

// RefreshNow requests an immediate cycle. If a cycle is already running,
// exactly one follow-up cycle is queued regardless of how many times this
// is called while the current cycle is in flight.
//
// The caller's context only gates the request itself. Cycles run on the
// coordinator's own context: HTTP handlers hand in request contexts that are
// canceled the moment the response is written, long before the accepted
// cycle finishes.
func (c *Coordinator) RefreshNow(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	if c.cycleActive.CompareAndSwap(false, true) {
		go c.cycle(c.runContext(), triggerRefresh)
		return
	}

	if c.pending.CompareAndSwap(false, true) {
		c.metrics.RecordRefreshQueued()
		c.logger.Debug().Msg("Cycle in progress, queued refresh request")
	}
}

// runContext returns the context cycles execute on. It is the polling loop's
// context once the coordinator has started, context.Background before that.
func (c *Coordinator) runContext() context.Context {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.runCtx
}

// Snapshot returns the most recently published snapshot, or nil before the
// first successful cycle. The returned snapshot is never mutated.
func (c *Coordinator) Snapshot() *models.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.snapshot
}

// GetMetrics exposes coordinator and circuit breaker metrics for monitoring.
func (c *Coordinator) GetMetrics() map[string]interface{} {
	return map[string]interface{}{
		"coordinator":     c.metrics.GetMetrics(),
		"circuit_breaker": c.breaker.GetMetrics(),
	}
}

func (c *Coordinator) run(ctx context.Context) {
	defer close(c.done)

	c.triggerCycle(ctx, triggerStartup)

	ticker := c.clock.Ticker(c.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			c.triggerCycle(ctx, triggerTimer)
		}
	}
}

// triggerCycle starts a cycle unless one is already running. Timer ticks
// that land during a cycle are skipped, not queued.
func (c *Coordinator) triggerCycle(ctx context.Context, trigger string) {
	if !c.cycleActive.CompareAndSwap(false, true) {
		c.metrics.RecordCycleSkipped(trigger)
		c.logger.Debug().
			Str("trigger", trigger).
			Msg("Cycle already in progress, skipping")

		return
	}

	c.cycle(ctx, trigger)
}

// cycle runs one synchronization cycle and then any queued refresh.
// The caller must have set cycleActive.
func (c *Coordinator) cycle(ctx context.Context, trigger string) {
	if err := c.runCycle(ctx, trigger); err != nil {
		c.logger.Error().
			Err(err).
			Str("trigger", trigger).
			Msg("Synchronization cycle aborted")
	}

	c.cycleActive.Store(false)

	if c.pending.CompareAndSwap(true, false) && ctx.Err() == nil {
		c.triggerCycle(ctx, triggerRefresh)
	}
}

func (c *Coordinator) runCycle(ctx context.Context, trigger string) error {
	start := c.clock.Now()
	c.metrics.RecordCycleStart(trigger)

	session, err := c.acquireSession(ctx)
	if err != nil {
		c.metrics.RecordCycleFailure(err, c.clock.Now().Sub(start))
		return fmt.Errorf("acquiring session: %w", err)
	}

	devices, session, err := c.fetchCatalog(ctx, session)
	if err != nil {
		c.metrics.RecordCycleFailure(err, c.clock.Now().Sub(start))
		return fmt.Errorf("fetching catalog: %w", err)
	}

	if ctx.Err() != nil {
		c.metrics.RecordCycleFailure(ctx.Err(), c.clock.Now().Sub(start))
		return ctx.Err()
	}

	entries := c.collectStates(ctx, session, devices)
	c.markDeparted(devices, entries)

	staleCount := 0
	for _, e := range entries {
		if e.Stale {
			staleCount++
		}
	}

	snapshot := &models.Snapshot{
		CycleID: uuid.NewString(),
		Taken:   c.clock.Now(),
		Devices: entries,
	}

	c.mu.Lock()
	c.snapshot = snapshot
	c.mu.Unlock()

	c.known = entries

	c.metrics.RecordCycleSuccess(len(entries), staleCount, c.clock.Now().Sub(start))
	c.logger.Info().
		Str("cycle_id", snapshot.CycleID).
		Str("trigger", trigger).
		Int("devices", len(entries)).
		Int("stale", staleCount).
		Msg("Published snapshot")

	return nil
}

func (c *Coordinator) acquireSession(ctx context.Context) (*reveal.Session, error) {
	var session *reveal.Session

	err := c.breaker.Execute(ctx, func() error {
		var err error
		session, err = c.sessions.EnsureValid(ctx)
		return err
	})

	return session, err
}

// fetchCatalog lists the camera catalog. A rejected token invalidates the
// session and the listing is retried once with a fresh one.
func (c *Coordinator) fetchCatalog(ctx context.Context, session *reveal.Session) ([]models.Device, *reveal.Session, error) {
	var devices []models.Device

	err := c.breaker.Execute(ctx, func() error {
		var err error
		devices, err = c.catalog.ListCameras(ctx, session)
		return err
	})

	if err == nil {
		return devices, session, nil
	}

	if !reveal.IsAPIKind(err, reveal.APIUnauthorized) {
		return nil, session, err
	}

	c.logger.Warn().Msg("Catalog rejected session token, renewing and retrying")
	c.sessions.Invalidate()

	session, err = c.acquireSession(ctx)
	if err != nil {
		return nil, nil, err
	}

	err = c.breaker.Execute(ctx, func() error {
		var lerr error
		devices, lerr = c.catalog.ListCameras(ctx, session)
		return lerr
	})

	return devices, session, err
}

type fetchResult struct {
	state    *models.DeviceState
	mediaRef *models.MediaReference
	err      error
}

// collectStates fans out per-device state fetches with bounded concurrency
// and merges the results into the cycle's entry map. A failed fetch keeps
// the device's last known state, marked stale.
func (c *Coordinator) collectStates(ctx context.Context, session *reveal.Session, devices []models.Device) map[string]models.SnapshotEntry {
	results := make([]fetchResult, len(devices))
	sem := make(chan struct{}, c.config.MaxConcurrency)

	var wg stdsync.WaitGroup

	for i := range devices {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			fetchStart := c.clock.Now()
			state, ref, err := c.states.FetchState(ctx, session, devices[i].DeviceID)
			results[i] = fetchResult{state: state, mediaRef: ref, err: err}

			if err != nil {
				c.metrics.RecordDeviceFetchFailure(devices[i].DeviceID, err, c.clock.Now().Sub(fetchStart))
				return
			}

			c.metrics.RecordDeviceFetchSuccess(devices[i].DeviceID, c.clock.Now().Sub(fetchStart))

			if c.media != nil && ref != nil {
				if body, merr := c.media.GetOrRefresh(ctx, *ref); merr != nil {
					c.metrics.RecordMediaFailure(devices[i].DeviceID, merr)
				} else {
					c.metrics.RecordMediaDownload(devices[i].DeviceID, len(body))
				}
			}
		}(i)
	}

	wg.Wait()

	entries := make(map[string]models.SnapshotEntry, len(devices))

	for i := range devices {
		device := devices[i]
		res := results[i]

		if res.err == nil {
			entries[device.DeviceID] = models.SnapshotEntry{
				Device: device,
				State:  res.state,
				Media:  res.mediaRef,
			}

			continue
		}

		// The catalog listed the device but its detail endpoint has no
		// record of it. Surface it as missing rather than dropping it.
		if reveal.IsAPIKind(res.err, reveal.APINotFound) {
			device.Status = models.StatusMissing
		}

		prev, had := c.known[device.DeviceID]
		entry := models.SnapshotEntry{
			Device:   device,
			Stale:    true,
			FetchErr: res.err,
		}

		if had {
			entry.State = prev.State
			entry.Media = prev.Media
		}

		entries[device.DeviceID] = entry

		c.logger.Warn().
			Str("device_id", device.DeviceID).
			Bool("had_prior_state", had).
			Err(res.err).
			Msg("Keeping stale state for device after fetch failure")
	}

	return entries
}

// markDeparted carries forward devices that were known from prior cycles
// but vanished from the catalog, flagging them missing.
func (c *Coordinator) markDeparted(devices []models.Device, entries map[string]models.SnapshotEntry) {
	listed := make(map[string]struct{}, len(devices))
	for i := range devices {
		listed[devices[i].DeviceID] = struct{}{}
	}

	for id, prev := range c.known {
		if _, ok := listed[id]; ok {
			continue
		}

		device := prev.Device
		device.Status = models.StatusMissing

		entries[id] = models.SnapshotEntry{
			Device: device,
			State:  prev.State,
			Media:  prev.Media,
			Stale:  true,
		}

		c.logger.Info().
			Str("device_id", id).
			Msg("Device no longer listed in catalog, marking missing")
	}
}
