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

// Package origin provides the client for the remote clip endpoint
package origin

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	gm "github.com/pulsefit/clipcache/pkg/observability/metrics"
	"github.com/pulsefit/clipcache/pkg/runtime"
)

// Client fetches clip payloads from the remote video endpoint
type Client struct {
	rc      *resty.Client
	baseURL string
}

// New returns a new origin Client for the provided endpoint root
func New(baseURL string, timeout time.Duration) *Client {
	rc := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", runtime.ApplicationName+"/"+runtime.ApplicationVersion)
	return &Client{
		rc:      rc,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// NormalizePath strips all leading separators from the clip path exactly once
func NormalizePath(path string) string {
	return strings.TrimLeft(path, "/")
}

// Resolve returns the absolute network address for the clip path
func (c *Client) Resolve(path string) string {
	return c.baseURL + "/" + NormalizePath(path)
}

// Fetch issues a GET for the clip payload. A transport failure or
// non-success status yields a *TransportError and no payload.
func (c *Client) Fetch(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.rc.R().SetContext(ctx).Get(c.Resolve(path))
	if err != nil {
		gm.OriginRequests.WithLabelValues("get", "error").Inc()
		return nil, &TransportError{Reason: err.Error(), Err: err}
	}
	if !resp.IsSuccess() {
		gm.OriginRequests.WithLabelValues("get", "error").Inc()
		return nil, &TransportError{StatusCode: resp.StatusCode(), Reason: resp.Status()}
	}
	gm.OriginRequests.WithLabelValues("get", "success").Inc()
	return resp.Body(), nil
}

// Probe issues a HEAD reachability check for the clip path, ignoring the
// body. It returns false on any failure.
func (c *Client) Probe(ctx context.Context, path string) bool {
	resp, err := c.rc.R().SetContext(ctx).Head(c.Resolve(path))
	if err != nil || !resp.IsSuccess() {
		gm.OriginRequests.WithLabelValues("head", "error").Inc()
		return false
	}
	gm.OriginRequests.WithLabelValues("head", "success").Inc()
	return true
}
