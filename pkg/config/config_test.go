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

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testYAML = `
origin:
  origin_url: https://cdn.example.com/workouts
  timeout_ms: 5000
cache:
  provider: filesystem
  index:
    max_size_bytes: 1048576
    max_size_backoff_bytes: 262144
    ttl_days: 7
  filesystem:
    cache_path: /tmp/clipcache-test
logging:
  log_level: debug
`

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clipcache.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	c, err := Load(writeConfigFile(t, testYAML))
	if err != nil {
		t.Fatal(err)
	}
	if c.Origin.OriginURL != "https://cdn.example.com/workouts" {
		t.Errorf("unexpected origin_url: %s", c.Origin.OriginURL)
	}
	if c.Origin.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout got %s", c.Origin.Timeout)
	}
	if c.Cache.Provider != "filesystem" {
		t.Errorf("expected filesystem provider got %s", c.Cache.Provider)
	}
	if c.Cache.Index.MaxSizeBytes != 1048576 {
		t.Errorf("expected max_size_bytes 1048576 got %d", c.Cache.Index.MaxSizeBytes)
	}
	if c.Cache.Index.TTL != 7*24*time.Hour {
		t.Errorf("expected 168h TTL got %s", c.Cache.Index.TTL)
	}
	if c.Cache.Filesystem.CachePath != "/tmp/clipcache-test" {
		t.Errorf("unexpected cache_path: %s", c.Cache.Filesystem.CachePath)
	}
	if c.Logging.LogLevel != "debug" {
		t.Errorf("expected debug log level got %s", c.Logging.LogLevel)
	}
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load(writeConfigFile(t, "origin:\n  origin_url: http://example.com\n"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Origin.TimeoutMS != DefaultOriginTimeoutMS {
		t.Errorf("expected default timeout got %d", c.Origin.TimeoutMS)
	}
	if c.Cache.Provider != "bbolt" {
		t.Errorf("expected bbolt provider got %s", c.Cache.Provider)
	}
	if c.Cache.Name != DefaultCacheName {
		t.Errorf("expected default cache name got %s", c.Cache.Name)
	}
	if c.Cache.Index.MaxSizeBytes != 500*1024*1024 {
		t.Errorf("unexpected default max_size_bytes: %d", c.Cache.Index.MaxSizeBytes)
	}
	if c.Cache.Index.TTL != 30*24*time.Hour {
		t.Errorf("unexpected default TTL: %s", c.Cache.Index.TTL)
	}
	if c.Logging.LogLevel != DefaultLogLevel {
		t.Errorf("expected default log level got %s", c.Logging.LogLevel)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadMalformed(t *testing.T) {
	if _, err := Load(writeConfigFile(t, "origin: [\n")); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestValidateNoOriginURL(t *testing.T) {
	c := New()
	if err := c.Process(); !errors.Is(err, ErrNoOriginURL) {
		t.Errorf("expected ErrNoOriginURL got %v", err)
	}
}

func TestValidateBadScheme(t *testing.T) {
	c := New()
	c.Origin.OriginURL = "ftp://example.com/clips"
	if err := c.Process(); err == nil {
		t.Error("expected error for bad scheme")
	}
}
