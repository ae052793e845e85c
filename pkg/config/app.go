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

package config

import (
	"errors"
	"os"

	"github.com/wildsight/revealsync/pkg/logger"
	"github.com/wildsight/revealsync/pkg/models"
)

const (
	envUsername = "REVEALSYNC_USERNAME"
	envPassword = "REVEALSYNC_PASSWORD"

	defaultListenAddr = ":8090"
)

var (
	errMissingUsername = errors.New("username is required")
	errMissingPassword = errors.New("password is required")
	errNegativeValue   = errors.New("poll_interval and max_concurrency must not be negative")
)

// AppConfig is the top-level service configuration.
type AppConfig struct {
	// Reveal account credentials. Prefer setting these through the
	// REVEALSYNC_USERNAME and REVEALSYNC_PASSWORD environment variables.
	Username string `json:"username"`
	Password string `json:"password"`

	// Endpoint overrides, empty means production defaults.
	APIBaseURL      string `json:"api_base_url,omitempty"`
	CognitoURL      string `json:"cognito_url,omitempty"`
	CognitoClientID string `json:"cognito_client_id,omitempty"`

	PollInterval   models.Duration `json:"poll_interval,omitempty"`
	MaxConcurrency int             `json:"max_concurrency,omitempty"`

	// ListenAddr is the bind address for the local HTTP API.
	ListenAddr string `json:"listen_addr,omitempty"`

	Logging *logger.Config `json:"logging,omitempty"`
}

// ApplyEnvOverrides lets environment variables take precedence over
// credentials stored in the config file.
func (c *AppConfig) ApplyEnvOverrides() {
	if v := os.Getenv(envUsername); v != "" {
		c.Username = v
	}

	if v := os.Getenv(envPassword); v != "" {
		c.Password = v
	}
}

// Validate checks required fields and fills defaults.
func (c *AppConfig) Validate() error {
	if c.Username == "" {
		return errMissingUsername
	}

	if c.Password == "" {
		return errMissingPassword
	}

	if c.PollInterval < 0 || c.MaxConcurrency < 0 {
		return errNegativeValue
	}

	if c.ListenAddr == "" {
		c.ListenAddr = defaultListenAddr
	}

	return nil
}

// Credential returns the account credential pair.
func (c *AppConfig) Credential() models.Credential {
	return models.Credential{Username: c.Username, Password: c.Password}
}

// Redacted returns a copy safe for logging, with the password masked.
func (c *AppConfig) Redacted() AppConfig {
	out := *c
	if out.Password != "" {
		out.Password = "[redacted]"
	}

	return out
}
