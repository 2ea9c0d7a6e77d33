/*
 * Copyright 2026 The Clipcache Authors
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

package origin

import "fmt"

// TransportError indicates a clip fetch failed, either at the transport
// layer or with a non-success HTTP status. It is the only error surfaced
// to cache callers.
type TransportError struct {
	// StatusCode is the HTTP status code, or 0 for transport-layer failures
	StatusCode int
	// Reason describes the failure
	Reason string
	// Err is the underlying transport error, if any
	Err error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("origin fetch failed: %s", e.Reason)
	}
	return fmt.Sprintf("origin unreachable: %s", e.Reason)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
