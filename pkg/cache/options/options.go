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

import (
	badger "github.com/pulsefit/clipcache/pkg/cache/badger/options"
	bbolt "github.com/pulsefit/clipcache/pkg/cache/bbolt/options"
	filesystem "github.com/pulsefit/clipcache/pkg/cache/filesystem/options"
	index "github.com/pulsefit/clipcache/pkg/cache/index/options"
)

// DefaultCacheProvider is the store provider used when none is configured
const DefaultCacheProvider = "bbolt"

// Options is a collection defining the caching behavior
type Options struct {
	// Name is the name of the cache, used in log events and metric labels
	Name string `yaml:"-"`
	// Provider represents the type of store to use: "bbolt", "badger"
	// or "filesystem"
	Provider string `yaml:"provider,omitempty"`
	// Index provides options for the cache index and eviction policy
	Index *index.Options `yaml:"index,omitempty"`
	// BBolt provides options for the bbolt store
	BBolt *bbolt.Options `yaml:"bbolt,omitempty"`
	// Badger provides options for the badger store
	Badger *badger.Options `yaml:"badger,omitempty"`
	// Filesystem provides options for the filesystem store
	Filesystem *filesystem.Options `yaml:"filesystem,omitempty"`
}

// New will return a pointer to an Options with the default configuration settings
func New() *Options {
	return &Options{
		Provider:   DefaultCacheProvider,
		Index:      index.New(),
		BBolt:      bbolt.New(),
		Badger:     badger.New(),
		Filesystem: filesystem.New(),
	}
}
