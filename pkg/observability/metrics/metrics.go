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

// Package metrics implements the prometheus collectors for the application
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricNamespace = "clipcache"
	cacheSubsystem  = "cache"
	originSubsystem = "origin"
)

// CacheObjectOperations is a Counter of operations (in # of objects) performed on the cache
var CacheObjectOperations *prometheus.CounterVec

// CacheByteOperations is a Counter of operations (in # of bytes) performed on the cache
var CacheByteOperations *prometheus.CounterVec

// CacheEvents is a Counter of events (evictions, errors) occurring on the cache
var CacheEvents *prometheus.CounterVec

// CacheObjects is a Gauge representing the number of objects in the cache
var CacheObjects *prometheus.GaugeVec

// CacheBytes is a Gauge representing the number of bytes in the cache
var CacheBytes *prometheus.GaugeVec

// CacheMaxBytes is a Gauge for the cache's max byte threshold for triggering an eviction exercise
var CacheMaxBytes *prometheus.GaugeVec

// OriginRequests is a Counter of upstream clip requests by method and result
var OriginRequests *prometheus.CounterVec

func init() {

	CacheObjectOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: cacheSubsystem,
			Name:      "operation_objects_total",
			Help:      "Count of objects upon which cache operations were performed",
		},
		[]string{"cache_name", "provider", "operation", "status"},
	)

	CacheByteOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: cacheSubsystem,
			Name:      "operation_bytes_total",
			Help:      "Count of bytes upon which cache operations were performed",
		},
		[]string{"cache_name", "provider", "operation", "status"},
	)

	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: cacheSubsystem,
			Name:      "events_total",
			Help:      "Count of events performed on the cache",
		},
		[]string{"cache_name", "provider", "event", "reason"},
	)

	CacheObjects = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: cacheSubsystem,
			Name:      "usage_objects",
			Help:      "Number of objects in the cache",
		},
		[]string{"cache_name", "provider"},
	)

	CacheBytes = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: cacheSubsystem,
			Name:      "usage_bytes",
			Help:      "Number of bytes in the cache",
		},
		[]string{"cache_name", "provider"},
	)

	CacheMaxBytes = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: cacheSubsystem,
			Name:      "max_usage_bytes",
			Help:      "Byte threshold for triggering a cache eviction exercise",
		},
		[]string{"cache_name", "provider"},
	)

	OriginRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: originSubsystem,
			Name:      "requests_total",
			Help:      "Count of upstream clip requests by method and result",
		},
		[]string{"method", "result"},
	)

	prometheus.MustRegister(
		CacheObjectOperations,
		CacheByteOperations,
		CacheEvents,
		CacheObjects,
		CacheBytes,
		CacheMaxBytes,
		OriginRequests,
	)
}

// Handler returns the http handler for the prometheus scrape endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
