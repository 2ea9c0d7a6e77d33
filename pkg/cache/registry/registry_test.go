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

package registry

import (
	"testing"

	"github.com/pulsefit/clipcache/pkg/cache/badger"
	"github.com/pulsefit/clipcache/pkg/cache/bbolt"
	"github.com/pulsefit/clipcache/pkg/cache/filesystem"
	"github.com/pulsefit/clipcache/pkg/cache/options"
)

func TestNewCache(t *testing.T) {
	tests := []struct {
		provider string
		expected string
	}{
		{ProviderBBolt, "*bbolt.CacheClient"},
		{ProviderBadger, "*badger.CacheClient"},
		{ProviderFilesystem, "*filesystem.CacheClient"},
		{"", "*bbolt.CacheClient"},
		{"unknown", "*bbolt.CacheClient"},
	}
	for _, tc := range tests {
		cfg := options.New()
		cfg.Provider = tc.provider
		c := NewCache("test", cfg)
		var got string
		switch c.(type) {
		case *bbolt.CacheClient:
			got = "*bbolt.CacheClient"
		case *badger.CacheClient:
			got = "*badger.CacheClient"
		case *filesystem.CacheClient:
			got = "*filesystem.CacheClient"
		}
		if got != tc.expected {
			t.Errorf("provider %q: expected %s got %s", tc.provider, tc.expected, got)
		}
	}
}

func TestNewCacheNilOptions(t *testing.T) {
	if _, ok := NewCache("test", nil).(*bbolt.CacheClient); !ok {
		t.Error("expected bbolt client for nil options")
	}
}
