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

package media

import (
	"errors"
	"fmt"
)

var errUnexpectedStatusCode = errors.New("unexpected status code")

// FetchErrorKind classifies photo download failures.
type FetchErrorKind int

const (
	// NetworkError covers transport failures and unexpected statuses.
	NetworkError FetchErrorKind = iota
	// Forbidden means the pre-signed URL signature was rejected.
	Forbidden
	// Gone means the photo no longer exists at the signed location.
	Gone
)

func (k FetchErrorKind) String() string {
	switch k {
	case NetworkError:
		return "network_error"
	case Forbidden:
		return "forbidden"
	case Gone:
		return "gone"
	default:
		return "unknown"
	}
}

// FetchError is a classified photo download failure. Downloads are
// best-effort; these errors are surfaced for observability only.
type FetchError struct {
	Kind FetchErrorKind
	err  error
}

func newFetchError(kind FetchErrorKind, err error) *FetchError {
	return &FetchError{Kind: kind, err: err}
}

func (e *FetchError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("media fetch error: %s", e.Kind)
	}

	return fmt.Sprintf("media fetch error: %s: %v", e.Kind, e.err)
}

func (e *FetchError) Unwrap() error {
	return e.err
}

// IsFetchKind reports whether err is a FetchError of the given kind.
func IsFetchKind(err error, kind FetchErrorKind) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr) && fetchErr.Kind == kind
}
