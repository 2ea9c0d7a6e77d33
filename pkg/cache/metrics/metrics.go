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

// Package metrics provides helpers for observing cache operations
package metrics

import (
	gm "github.com/pulsefit/clipcache/pkg/observability/metrics"
)

// ObserveCacheMiss records a cache miss event
func ObserveCacheMiss(cacheName, provider string) {
	ObserveCacheOperation(cacheName, provider, "get", "miss", 0)
}

// ObserveCacheDel records a cache deletion event
func ObserveCacheDel(cacheName, provider string, count float64) {
	ObserveCacheOperation(cacheName, provider, "del", "none", count)
}

// ObserveCacheOperation increments counters as cache operations occur
func ObserveCacheOperation(cacheName, provider, operation, status string, bytes float64) {
	gm.CacheObjectOperations.WithLabelValues(cacheName, provider, operation, status).Inc()
	if bytes > 0 {
		gm.CacheByteOperations.WithLabelValues(cacheName, provider, operation, status).Add(bytes)
	}
}

// ObserveCacheEvent increments counters as cache events occur
func ObserveCacheEvent(cacheName, provider, event, reason string) {
	gm.CacheEvents.WithLabelValues(cacheName, provider, event, reason).Inc()
}

// ObserveCacheSizeChange updates gauges as the cache size changes due to
// object operations
func ObserveCacheSizeChange(cacheName, provider string, byteCount, objectCount int64) {
	gm.CacheObjects.WithLabelValues(cacheName, provider).Set(float64(objectCount))
	gm.CacheBytes.WithLabelValues(cacheName, provider).Set(float64(byteCount))
}
