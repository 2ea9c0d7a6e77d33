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

// Package eviction enforces the cache's size budget and entry TTL
package eviction

import (
	"github.com/pulsefit/clipcache/pkg/cache"
	"github.com/pulsefit/clipcache/pkg/cache/index"
	"github.com/pulsefit/clipcache/pkg/cache/metrics"
	"github.com/pulsefit/clipcache/pkg/observability/logging"
	"github.com/pulsefit/clipcache/pkg/observability/logging/logger"
)

// Policy deletes records from the store to keep total size within budget
// and to purge individual stale entries. Failures here never propagate:
// eviction is a maintenance side effect of the write path, and the read or
// write that triggered it must not fail because of it.
type Policy struct {
	name     string
	provider string
	client   cache.Client
	idx      *index.Index
}

// New returns a new eviction Policy over the provided store and index
func New(cacheName, provider string, client cache.Client, idx *index.Index) *Policy {
	return &Policy{
		name:     cacheName,
		provider: provider,
		client:   client,
		idx:      idx,
	}
}

// RunSizeEviction removes the oldest records until total usage falls to
// MaxSizeBytes - MaxSizeBackoffBytes, or the store is empty. It runs
// synchronously after every successful store. Deletion order is strictly
// age-ascending.
func (p *Policy) RunSizeEviction() {
	opts := p.idx.Options()
	if opts.MaxSizeBytes <= 0 {
		return
	}
	cacheSize, objectCount, err := p.idx.Usage()
	if err != nil {
		logger.Error("cache usage query failed; skipping eviction",
			logging.Pairs{"cacheName": p.name, "detail": err.Error()})
		return
	}
	if cacheSize <= opts.MaxSizeBytes {
		return
	}

	logger.Debug("max cache size reached. evicting oldest records",
		logging.Pairs{"cacheName": p.name, "cacheSizeBytes": cacheSize,
			"maxSizeBytes": opts.MaxSizeBytes})

	mds, err := p.idx.OldestFirst()
	if err != nil {
		logger.Error("cache metadata query failed; skipping eviction",
			logging.Pairs{"cacheName": p.name, "detail": err.Error()})
		return
	}

	bytesNeeded := cacheSize - opts.MaxSizeBytes
	if opts.MaxSizeBytes > opts.MaxSizeBackoffBytes {
		bytesNeeded += opts.MaxSizeBackoffBytes
	}

	removals := make([]string, 0, len(mds))
	var bytesSelected int64
	for i := 0; bytesSelected < bytesNeeded && i < len(mds); i++ {
		removals = append(removals, mds[i].Key)
		bytesSelected += mds[i].Size
	}

	if len(removals) == 0 {
		return
	}

	metrics.ObserveCacheEvent(p.name, p.provider, "eviction", "size_bytes")
	if err = p.client.Remove(removals...); err != nil {
		logger.Error("eviction remove failed",
			logging.Pairs{"cacheName": p.name, "detail": err.Error()})
		return
	}
	metrics.ObserveCacheDel(p.name, p.provider, float64(len(removals)))
	metrics.ObserveCacheSizeChange(p.name, p.provider,
		cacheSize-bytesSelected, objectCount-int64(len(removals)))

	logger.Debug("size-based cache eviction exercise completed",
		logging.Pairs{"cacheName": p.name, "removed": len(removals),
			"cacheSizeBytes": cacheSize - bytesSelected,
			"maxSizeBytes":   opts.MaxSizeBytes})
}

// PurgeExpired deletes the single record for the key. It is invoked only
// when a read finds the key past its TTL; there is no background sweep of
// the rest of the store.
func (p *Policy) PurgeExpired(cacheKey string) {
	metrics.ObserveCacheEvent(p.name, p.provider, "eviction", "ttl")
	if err := p.client.Remove(cacheKey); err != nil {
		logger.Error("expired record purge failed",
			logging.Pairs{"cacheName": p.name, "key": cacheKey, "detail": err.Error()})
	}
}
