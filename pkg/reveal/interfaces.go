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
	"net/http"

	"github.com/wildsight/revealsync/pkg/models"
)

//go:generate mockgen -destination=mock_reveal.go -package=reveal github.com/wildsight/revealsync/pkg/reveal HTTPClient,Authenticator

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Authenticator defines the identity-provider exchange used by the session
// manager.
type Authenticator interface {
	Authenticate(ctx context.Context, cred models.Credential) (*Session, error)
	RefreshSession(ctx context.Context, session *Session) (*Session, error)
}
