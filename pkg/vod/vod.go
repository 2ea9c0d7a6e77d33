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

// Package vod provides the clip fetch orchestrator: the single entry point
// that mediates between playback requests, the persistent clip store, and
// the remote clip endpoint.
package vod

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pulsefit/clipcache/pkg/cache"
	"github.com/pulsefit/clipcache/pkg/cache/eviction"
	"github.com/pulsefit/clipcache/pkg/cache/index"
	"github.com/pulsefit/clipcache/pkg/cache/metrics"
	"github.com/pulsefit/clipcache/pkg/cache/registry"
	"github.com/pulsefit/clipcache/pkg/cache/status"
	"github.com/pulsefit/clipcache/pkg/config"
	"github.com/pulsefit/clipcache/pkg/observability/logging"
	"github.com/pulsefit/clipcache/pkg/observability/logging/logger"
	gm "github.com/pulsefit/clipcache/pkg/observability/metrics"
	"github.com/pulsefit/clipcache/pkg/origin"
)

// Stats describes the cache's current usage
type Stats struct {
	// TotalSize is the sum of stored payload sizes in bytes
	TotalSize int64
	// EntryCount is the number of stored clips
	EntryCount int64
	// Supported is false when the persistent store could not be opened in
	// the current environment; counts are then reported as zero
	Supported bool
}

// Manager is the clip fetch orchestrator. A Manager is safe for concurrent
// use; the store handle is opened once on first use.
type Manager struct {
	name     string
	provider string

	client cache.Client
	idx    *index.Index
	policy *eviction.Policy
	origin *origin.Client

	sf          singleflight.Group
	connectOnce sync.Once
	supported   atomic.Bool

	now func() time.Time
}

// New returns a Manager for the provided configuration. The store is not
// opened until first use.
func New(conf *config.Config) *Manager {
	client := registry.NewCache(conf.Cache.Name, conf.Cache)
	idx := index.New(client, conf.Cache.Index)
	m := &Manager{
		name:     conf.Cache.Name,
		provider: conf.Cache.Provider,
		client:   client,
		idx:      idx,
		policy:   eviction.New(conf.Cache.Name, conf.Cache.Provider, client, idx),
		origin:   origin.New(conf.Origin.OriginURL, conf.Origin.Timeout),
		now:      time.Now,
	}
	gm.CacheMaxBytes.WithLabelValues(m.name, m.provider).
		Set(float64(conf.Cache.Index.MaxSizeBytes))
	return m
}

// connect opens the store exactly once per Manager lifetime. Concurrent
// first-use attempts converge on one open operation. An open failure
// latches network-only operation rather than failing callers.
func (m *Manager) connect() bool {
	m.connectOnce.Do(func() {
		if err := m.client.Connect(); err != nil {
			logger.Error("clip store unavailable; operating in network-only mode",
				logging.Pairs{"cacheName": m.name, "provider": m.provider,
					"detail": err.Error()})
			return
		}
		m.supported.Store(true)
	})
	return m.supported.Load()
}

// Resolve returns the absolute network address for the clip path
func (m *Manager) Resolve(path string) string {
	return m.origin.Resolve(path)
}

// Fetch returns the clip payload for the path, serving from the store when
// a fresh copy exists and fetching from the origin otherwise. A fetched
// payload is stored and the size eviction exercise is run before returning.
// The only error returned is *origin.TransportError.
func (m *Manager) Fetch(ctx context.Context, path string) ([]byte, error) {
	key := origin.NormalizePath(path)

	if m.connect() {
		b, s := m.lookup(key)
		if s == status.LookupStatusHit {
			return b, nil
		}
		if s == status.LookupStatusKeyMiss {
			metrics.ObserveCacheMiss(m.name, m.provider)
		} else {
			metrics.ObserveCacheOperation(m.name, m.provider, "get", s.String(), 0)
		}
	} else {
		metrics.ObserveCacheOperation(m.name, m.provider, "get",
			status.LookupStatusProxyOnly.String(), 0)
	}

	// Concurrent misses for the same key are coalesced into one origin
	// round trip; every waiter receives the same payload. The fetch is
	// detached from the first caller's context so an abandoned caller
	// cannot fail the waiters or stop the cache from being populated.
	v, err, _ := m.sf.Do(key, func() (any, error) {
		b, err := m.origin.Fetch(context.WithoutCancel(ctx), key)
		if err != nil {
			return nil, err
		}
		m.storeAndEvict(key, b)
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// lookup resolves a read against the store, enforcing the lazy TTL purge.
// A hit past its TTL is deleted and reported as expired; any status other
// than a hit is treated by the caller as a miss.
func (m *Manager) lookup(key string) ([]byte, status.LookupStatus) {
	e, s, err := m.client.Retrieve(key)
	if err != nil {
		if errors.Is(err, cache.ErrKNF) {
			return nil, status.LookupStatusKeyMiss
		}
		logger.Error("clip store retrieve failed",
			logging.Pairs{"cacheName": m.name, "key": key, "detail": err.Error()})
		return nil, status.LookupStatusError
	}
	if s != status.LookupStatusHit {
		return nil, s
	}
	if m.idx.IsExpired(&e.Metadata, m.now()) {
		logger.Debug("clip expired; purging",
			logging.Pairs{"cacheName": m.name, "key": key, "storedAt": e.StoredAt})
		m.policy.PurgeExpired(key)
		return nil, status.LookupStatusExpired
	}
	metrics.ObserveCacheOperation(m.name, m.provider, "get", "hit", float64(e.Size))
	return e.Value, status.LookupStatusHit
}

// storeAndEvict caches a fetched payload and runs the size eviction
// exercise. Failures are non-fatal: the payload was already fetched and is
// returned to the caller regardless.
func (m *Manager) storeAndEvict(key string, b []byte) {
	if !m.supported.Load() {
		return
	}
	if err := m.client.Store(key, b); err != nil {
		logger.Warn("clip store write failed; payload served uncached",
			logging.Pairs{"cacheName": m.name, "key": key, "detail": err.Error()})
		return
	}
	metrics.ObserveCacheOperation(m.name, m.provider, "set", "none", float64(len(b)))
	if size, count, err := m.idx.Usage(); err == nil {
		metrics.ObserveCacheSizeChange(m.name, m.provider, size, count)
	}
	m.policy.RunSizeEviction()
}

// IsCached reports whether a fresh copy of the clip exists in the store.
// The check is side-effect-free: an expired entry is reported as uncached
// but is not purged here.
func (m *Manager) IsCached(path string) bool {
	if !m.connect() {
		return false
	}
	md, s, err := m.client.RetrieveMetadata(origin.NormalizePath(path))
	if err != nil || s != status.LookupStatusHit {
		return false
	}
	return !m.idx.IsExpired(md, m.now())
}

// ProbeReachable issues a reachability check for the clip path against the
// origin. It never touches the store.
func (m *Manager) ProbeReachable(ctx context.Context, path string) bool {
	return m.origin.Probe(ctx, path)
}

// Stats returns the store's current usage. When the store could not be
// opened, Supported is false and both counts are zero.
func (m *Manager) Stats() Stats {
	if !m.connect() {
		return Stats{}
	}
	size, count, err := m.idx.Usage()
	if err != nil {
		logger.Error("cache usage query failed",
			logging.Pairs{"cacheName": m.name, "detail": err.Error()})
		return Stats{Supported: true}
	}
	return Stats{TotalSize: size, EntryCount: count, Supported: true}
}

// ClearAll removes all stored clips
func (m *Manager) ClearAll() error {
	if !m.connect() {
		return nil
	}
	logger.Debug("clearing clip store", logging.Pairs{"cacheName": m.name})
	return m.client.Clear()
}

// PlayableReference returns a playable handle for the clip path. It serves
// the payload through the cache when possible and otherwise falls back to a
// direct origin URL. It always returns a usable Reference; callers that find
// the direct reference unusable too should present FallbackAsset instead.
func (m *Manager) PlayableReference(ctx context.Context, path string) *Reference {
	b, err := m.Fetch(ctx, path)
	if err == nil {
		return &Reference{Path: path, Data: b, Source: SourceCache}
	}
	logger.Warn("clip fetch failed; returning direct origin reference",
		logging.Pairs{"path": path, "detail": err.Error()})
	return &Reference{Path: path, URL: m.Resolve(path), Source: SourceOrigin}
}

// FallbackAsset returns the embedded placeholder clip for the path, the
// last-resort option when both the cache and the direct origin reference
// are unusable
func (m *Manager) FallbackAsset(path string) *Reference {
	return &Reference{Path: path, Data: placeholderClip, Source: SourcePlaceholder}
}

// Close closes the underlying store
func (m *Manager) Close() error {
	return m.client.Close()
}
