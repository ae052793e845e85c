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
	"sync"
	"time"

	"github.com/wildsight/revealsync/pkg/logger"
	"github.com/wildsight/revealsync/pkg/models"
)

const defaultRenewMargin = 5 * time.Minute

// RenewMargin picks the renewal margin for a polling interval. The margin
// must cover at least one full interval so a session acquired at the start
// of a cycle cannot expire before the cycle ends.
func RenewMargin(pollInterval time.Duration) time.Duration {
	if pollInterval > defaultRenewMargin {
		return pollInterval
	}

	return defaultRenewMargin
}

// SessionManager owns the credential and the current session. It renews the
// session silently before expiry, swapping in a replacement value rather than
// mutating the one concurrent readers may hold.
type SessionManager struct {
	auth   Authenticator
	cred   models.Credential
	margin time.Duration
	logger logger.Logger

	nowFn func() time.Time

	mu      sync.RWMutex
	current *Session
}

// NewSessionManager creates a session manager. The margin should be at least
// one polling interval so a session never expires mid-cycle; zero picks the
// default.
func NewSessionManager(auth Authenticator, cred models.Credential, margin time.Duration, log logger.Logger) *SessionManager {
	if margin <= 0 {
		margin = defaultRenewMargin
	}

	if log == nil {
		log = logger.NewTestLogger()
	}

	return &SessionManager{
		auth:   auth,
		cred:   cred,
		margin: margin,
		logger: log,
		nowFn:  time.Now,
	}
}

// EnsureValid returns the current session if it is still comfortably inside
// its lifetime, renewing it otherwise. Renewal tries the refresh token first
// and falls back to a full login; if both fail the error is classified as
// RefreshRejected and the cycle is expected to retry from scratch next time.
func (m *SessionManager) EnsureValid(ctx context.Context) (*Session, error) {
	m.mu.RLock()
	if m.current.Valid(m.nowFn(), m.margin) {
		session := m.current
		m.mu.RUnlock()

		return session, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check in case another caller already renewed.
	if m.current.Valid(m.nowFn(), m.margin) {
		return m.current, nil
	}

	session, err := m.renewLocked(ctx)
	if err != nil {
		return nil, err
	}

	m.current = session

	return session, nil
}

func (m *SessionManager) renewLocked(ctx context.Context) (*Session, error) {
	if m.current == nil || m.current.RefreshToken == "" {
		return m.auth.Authenticate(ctx, m.cred)
	}

	session, err := m.auth.RefreshSession(ctx, m.current)
	if err == nil {
		m.logger.Debug().Time("expires_at", session.ExpiresAt).Msg("Session renewed via refresh token")
		return session, nil
	}

	m.logger.Warn().Err(err).Msg("Token refresh rejected, attempting full re-authentication")

	session, authErr := m.auth.Authenticate(ctx, m.cred)
	if authErr != nil {
		return nil, NewAuthError(AuthRefreshRejected, authErr)
	}

	return session, nil
}

// Invalidate discards the current session, forcing the next EnsureValid to
// authenticate from scratch. Used when the device API rejects a token the
// manager still considered valid.
func (m *SessionManager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = nil
}
