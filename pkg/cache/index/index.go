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

// Package index defines the clipcache metadata index
package index

import (
	"sort"
	"time"

	"github.com/pulsefit/clipcache/pkg/cache"
	"github.com/pulsefit/clipcache/pkg/cache/index/options"
)

// Index answers accounting questions about the store's contents without
// materializing payloads. It holds no state of its own: every query is
// computed from the store's current metadata records, so it can never
// drift from the authoritative contents.
type Index struct {
	client cache.Client
	opts   *options.Options
}

// New returns a new Index over the provided store client
func New(client cache.Client, opts *options.Options) *Index {
	if opts == nil {
		opts = options.New()
	}
	return &Index{
		client: client,
		opts:   opts,
	}
}

// Options returns the index options
func (idx *Index) Options() *options.Options {
	return idx.opts
}

// Usage returns the total stored bytes and the object count
func (idx *Index) Usage() (int64, int64, error) {
	mds, err := idx.client.ListMetadata()
	if err != nil {
		return 0, 0, err
	}
	var size int64
	for i := range mds {
		size += mds[i].Size
	}
	return size, int64(len(mds)), nil
}

// TotalSize returns the sum of Size over all stored records
func (idx *Index) TotalSize() (int64, error) {
	size, _, err := idx.Usage()
	return size, err
}

// OldestFirst returns the metadata for all stored records, ordered ascending
// by StoredAt. Ties are broken by key so the order is deterministic.
func (idx *Index) OldestFirst() ([]cache.Metadata, error) {
	mds, err := idx.client.ListMetadata()
	if err != nil {
		return nil, err
	}
	sort.Slice(mds, func(i, j int) bool {
		if mds[i].StoredAt.Equal(mds[j].StoredAt) {
			return mds[i].Key < mds[j].Key
		}
		return mds[i].StoredAt.Before(mds[j].StoredAt)
	})
	return mds, nil
}

// IsExpired reports whether the record's age exceeds the configured TTL
// as of now
func (idx *Index) IsExpired(md *cache.Metadata, now time.Time) bool {
	return idx.opts.TTL > 0 && now.Sub(md.StoredAt) > idx.opts.TTL
}
