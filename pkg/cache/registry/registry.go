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

// Package registry maps cache provider names to store client constructors
package registry

import (
	"github.com/pulsefit/clipcache/pkg/cache"
	"github.com/pulsefit/clipcache/pkg/cache/badger"
	"github.com/pulsefit/clipcache/pkg/cache/bbolt"
	"github.com/pulsefit/clipcache/pkg/cache/filesystem"
	"github.com/pulsefit/clipcache/pkg/cache/options"
)

// Store provider names
const (
	ProviderBBolt      = "bbolt"
	ProviderBadger     = "badger"
	ProviderFilesystem = "filesystem"
)

// NewCache returns an unconnected store client based on the provided Options.
// The bbolt provider is the default.
func NewCache(cacheName string, cfg *options.Options) cache.Client {
	if cfg == nil {
		cfg = options.New()
	}
	switch cfg.Provider {
	case ProviderBadger:
		return badger.New(cacheName, cfg)
	case ProviderFilesystem:
		return filesystem.New(cacheName, cfg)
	default:
		return bbolt.New(cacheName, cfg)
	}
}
