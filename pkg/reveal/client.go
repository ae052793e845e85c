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

// Package reveal provides the client for the Reveal trail-camera cloud API
// and its Cognito identity provider.
package reveal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/wildsight/revealsync/pkg/logger"
)

const (
	defaultBaseURL         = "https://api.reveal.ishareit.net"
	apiVersion             = "v1"
	defaultCognitoURL      = "https://cognito-idp.us-east-1.amazonaws.com/"
	defaultCognitoClientID = "6r9tpojvgvkci5trla0ip14mon"
	defaultUserAgent       = "RevealWeb/5.4.0"
	webOrigin              = "https://account.revealcellcam.com"

	defaultHTTPTimeout = 30 * time.Second
)

// ClientConfig configures the API client. Zero values fall back to the
// production endpoints.
type ClientConfig struct {
	BaseURL         string
	CognitoURL      string
	CognitoClientID string
	UserAgent       string
	HTTPClient      HTTPClient
	Logger          logger.Logger
}

// Client talks to the Reveal cloud. It is safe for concurrent use; per-call
// authentication state travels in the Session argument.
type Client struct {
	baseURL         string
	cognitoURL      string
	cognitoClientID string
	userAgent       string
	httpClient      HTTPClient
	logger          logger.Logger
}

// NewClient creates a Reveal API client.
func NewClient(cfg ClientConfig) *Client {
	c := &Client{
		baseURL:         cfg.BaseURL,
		cognitoURL:      cfg.CognitoURL,
		cognitoClientID: cfg.CognitoClientID,
		userAgent:       cfg.UserAgent,
		httpClient:      cfg.HTTPClient,
		logger:          cfg.Logger,
	}

	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}

	if c.cognitoURL == "" {
		c.cognitoURL = defaultCognitoURL
	}

	if c.cognitoClientID == "" {
		c.cognitoClientID = defaultCognitoClientID
	}

	if c.userAgent == "" {
		c.userAgent = defaultUserAgent
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}

	if c.logger == nil {
		c.logger = logger.NewTestLogger()
	}

	return c
}

func (c *Client) endpoint(path string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, apiVersion, path)
}

func (c *Client) setAPIHeaders(req *http.Request, session *Session) {
	req.Header.Set("reveal-user-agent", c.userAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Origin", webOrigin)
	req.Header.Set("Referer", webOrigin+"/")

	if session != nil && session.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+session.AccessToken)
	}
}

// getJSON performs an authenticated GET against the device API and decodes
// the response into dst, mapping failures onto the APIError taxonomy.
func (c *Client) getJSON(ctx context.Context, session *Session, path string, query url.Values, dst interface{}) error {
	reqURL := c.endpoint(path)
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return NewAPIError(APIUnavailable, path, 0, err)
	}

	c.setAPIHeaders(req, session)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return NewAPIError(APIUnavailable, path, 0, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return NewAPIError(APIUnauthorized, path, resp.StatusCode, errUnexpectedStatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return NewAPIError(APINotFound, path, resp.StatusCode, errUnexpectedStatusCode)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Debug().
			Str("path", path).
			Int("status", resp.StatusCode).
			Str("body", string(body)).
			Msg("Device API returned unexpected status")

		return NewAPIError(APIUnavailable, path, resp.StatusCode, errUnexpectedStatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return NewAPIError(APIMalformed, path, resp.StatusCode, err)
	}

	return nil
}
