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
	"errors"
	"fmt"
)

var (
	errUnexpectedStatusCode = errors.New("unexpected status code")
	errNoAuthResult         = errors.New("login response missing authentication result")
	errNoRefreshToken       = errors.New("session has no refresh token")
)

// AuthErrorKind classifies identity-provider failures.
type AuthErrorKind int

const (
	AuthInvalidCredential AuthErrorKind = iota
	AuthProviderUnavailable
	AuthThrottled
	AuthRefreshRejected
)

func (k AuthErrorKind) String() string {
	switch k {
	case AuthInvalidCredential:
		return "invalid_credential"
	case AuthProviderUnavailable:
		return "provider_unavailable"
	case AuthThrottled:
		return "throttled"
	case AuthRefreshRejected:
		return "refresh_rejected"
	default:
		return "unknown"
	}
}

// AuthError is a classified failure from the identity provider.
type AuthError struct {
	Kind AuthErrorKind
	err  error
}

// NewAuthError wraps err with an auth classification.
func NewAuthError(kind AuthErrorKind, err error) *AuthError {
	return &AuthError{Kind: kind, err: err}
}

func (e *AuthError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("auth error: %s", e.Kind)
	}

	return fmt.Sprintf("auth error: %s: %v", e.Kind, e.err)
}

func (e *AuthError) Unwrap() error {
	return e.err
}

// IsAuthKind reports whether err is an AuthError of the given kind.
func IsAuthKind(err error, kind AuthErrorKind) bool {
	var authErr *AuthError
	return errors.As(err, &authErr) && authErr.Kind == kind
}

// APIErrorKind classifies device API failures.
type APIErrorKind int

const (
	APIUnauthorized APIErrorKind = iota
	APINotFound
	APIUnavailable
	APIMalformed
)

func (k APIErrorKind) String() string {
	switch k {
	case APIUnauthorized:
		return "unauthorized"
	case APINotFound:
		return "not_found"
	case APIUnavailable:
		return "unavailable"
	case APIMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// APIError is a classified failure from the Reveal device API.
type APIError struct {
	Kind   APIErrorKind
	Op     string // request path, for diagnostics
	Status int    // HTTP status when one was received
	err    error
}

// NewAPIError wraps err with a device API classification.
func NewAPIError(kind APIErrorKind, op string, status int, err error) *APIError {
	return &APIError{Kind: kind, Op: op, Status: status, err: err}
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api error: %s: %s (status %d)", e.Kind, e.Op, e.Status)
	}

	if e.err == nil {
		return fmt.Sprintf("api error: %s: %s", e.Kind, e.Op)
	}

	return fmt.Sprintf("api error: %s: %s: %v", e.Kind, e.Op, e.err)
}

func (e *APIError) Unwrap() error {
	return e.err
}

// IsAPIKind reports whether err is an APIError of the given kind.
func IsAPIKind(err error, kind APIErrorKind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
