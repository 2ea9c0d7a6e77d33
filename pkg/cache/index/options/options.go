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

package options

import "time"

const (
	// DefaultMaxSizeBytes indicates how large the cache can grow in bytes
	// before an eviction exercise is triggered
	DefaultMaxSizeBytes int64 = 500 * 1024 * 1024
	// DefaultMaxSizeBackoffBytes indicates how far below max_size_bytes the
	// cache size must be brought to complete an eviction exercise. The default
	// leaves the cache at 80% of its budget after a sweep.
	DefaultMaxSizeBackoffBytes int64 = DefaultMaxSizeBytes / 5
	// DefaultTTLDays is the age in days beyond which a stored clip is
	// considered stale and purged on next access
	DefaultTTLDays = 30
)

// Options defines the operation of the cache index and eviction policy
type Options struct {
	// MaxSizeBytes indicates how large the cache can grow in bytes before
	// the eviction policy removes the oldest entries
	MaxSizeBytes int64 `yaml:"max_size_bytes,omitempty"`
	// MaxSizeBackoffBytes indicates how far below max_size_bytes the cache
	// size must be to complete a size-based eviction exercise
	MaxSizeBackoffBytes int64 `yaml:"max_size_backoff_bytes,omitempty"`
	// TTLDays sets the maximum entry age in days; older entries are purged
	// lazily on next access
	TTLDays int `yaml:"ttl_days,omitempty"`

	// TTL is the synthetic duration form of TTLDays, populated at load time
	TTL time.Duration `yaml:"-"`
}

// New returns a new cache index options reference with default values set
func New() *Options {
	return &Options{
		MaxSizeBytes:        DefaultMaxSizeBytes,
		MaxSizeBackoffBytes: DefaultMaxSizeBackoffBytes,
		TTLDays:             DefaultTTLDays,
		TTL:                 DefaultTTLDays * 24 * time.Hour,
	}
}
