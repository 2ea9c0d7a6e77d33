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

// Package filesystem is the filesystem implementation of the clipcache store
package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pulsefit/clipcache/pkg/cache"
	"github.com/pulsefit/clipcache/pkg/cache/options"
	"github.com/pulsefit/clipcache/pkg/cache/status"
	"github.com/pulsefit/clipcache/pkg/observability/logging"
	"github.com/pulsefit/clipcache/pkg/observability/logging/logger"
)

// SchemaVersion identifies the on-disk record layout. A stored version that
// does not match causes the cache directory contents to be removed.
const SchemaVersion = 1

const (
	clipExtension = ".clip"
	metaExtension = ".meta"
	schemaFile    = ".schema"
)

// CacheClient implements the cache.Client interface
var _ cache.Client = &CacheClient{}

// CacheClient describes a Filesystem CacheClient
type CacheClient struct {
	Name   string
	Config *options.Options
}

// New returns a new filesystem store client
func New(cacheName string, cfg *options.Options) *CacheClient {
	if cfg == nil {
		cfg = options.New()
	}
	return &CacheClient{
		Name:   cacheName,
		Config: cfg,
	}
}

var fileNameReplacer = strings.NewReplacer("/", "~1", "\\", "~2", "..", "~3", ".", "~4")

func (c *CacheClient) baseFileName(cacheKey string) string {
	return filepath.Join(c.Config.Filesystem.CachePath, fileNameReplacer.Replace(cacheKey))
}

func (c *CacheClient) schemaFileName() string {
	return filepath.Join(c.Config.Filesystem.CachePath, schemaFile)
}

// Connect verifies the cache directory is writeable and enforces the schema
// version gate
func (c *CacheClient) Connect() error {
	logger.Debug("filesystem cache connect",
		logging.Pairs{"cacheName": c.Name, "cachePath": c.Config.Filesystem.CachePath})

	if err := makeDirectory(c.Config.Filesystem.CachePath); err != nil {
		return err
	}

	stored, err := os.ReadFile(c.schemaFileName())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if len(stored) > 0 && string(stored) != strconv.Itoa(SchemaVersion) {
		// version mismatch: recreate empty, no migration
		logger.Warn("cache schema version mismatch; recreating store",
			logging.Pairs{"cacheName": c.Name, "storedVersion": string(stored),
				"expectedVersion": SchemaVersion})
		if err = c.removeRecordFiles(); err != nil {
			return err
		}
	}
	return os.WriteFile(c.schemaFileName(),
		[]byte(strconv.Itoa(SchemaVersion)), 0o600)
}

// Store writes the payload and its metadata record, overwriting any existing
// record for the key
func (c *CacheClient) Store(cacheKey string, data []byte) error {
	if cacheKey == "" {
		return errors.New("cacheKey required")
	}
	e := cache.NewEntry(cacheKey, data, time.Now())
	base := c.baseFileName(cacheKey)
	if err := os.WriteFile(base+clipExtension, e.ToBytes(), 0o600); err != nil {
		return err
	}
	if err := os.WriteFile(base+metaExtension, e.Metadata.ToBytes(), 0o600); err != nil {
		return err
	}
	logger.Debug("filesystem cache store",
		logging.Pairs{"cacheName": c.Name, "key": cacheKey, "size": e.Size})
	return nil
}

// Retrieve returns the full record for the key
func (c *CacheClient) Retrieve(cacheKey string) (*cache.Entry, status.LookupStatus, error) {
	data, err := os.ReadFile(c.baseFileName(cacheKey) + clipExtension)
	if err != nil {
		return nil, status.LookupStatusKeyMiss, cache.ErrKNF
	}
	e, err := cache.EntryFromBytes(data)
	if err != nil {
		return nil, status.LookupStatusError, err
	}
	return e, status.LookupStatusHit, nil
}

// RetrieveMetadata returns the metadata record for the key without loading
// the payload
func (c *CacheClient) RetrieveMetadata(cacheKey string) (*cache.Metadata, status.LookupStatus, error) {
	data, err := os.ReadFile(c.baseFileName(cacheKey) + metaExtension)
	if err != nil {
		return nil, status.LookupStatusKeyMiss, cache.ErrKNF
	}
	md, err := cache.MetadataFromBytes(data)
	if err != nil {
		return nil, status.LookupStatusError, err
	}
	return md, status.LookupStatusHit, nil
}

// ListMetadata returns the metadata records for all stored clips
func (c *CacheClient) ListMetadata() ([]cache.Metadata, error) {
	names, err := filepath.Glob(
		filepath.Join(c.Config.Filesystem.CachePath, "*"+metaExtension))
	if err != nil {
		return nil, err
	}
	out := make([]cache.Metadata, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue // removed since the glob
			}
			return nil, err
		}
		md, err := cache.MetadataFromBytes(data)
		if err != nil {
			return nil, err
		}
		out = append(out, *md)
	}
	return out, nil
}

// Remove deletes the records for the provided keys, if present
func (c *CacheClient) Remove(cacheKeys ...string) error {
	for _, cacheKey := range cacheKeys {
		base := c.baseFileName(cacheKey)
		for _, name := range []string{base + clipExtension, base + metaExtension} {
			if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
		}
	}
	logger.Debug("filesystem cache remove",
		logging.Pairs{"cacheName": c.Name, "keys": cacheKeys})
	return nil
}

// Clear removes all records
func (c *CacheClient) Clear() error {
	return c.removeRecordFiles()
}

// Close implements the cache.Client interface
func (c *CacheClient) Close() error {
	return nil
}

func (c *CacheClient) removeRecordFiles() error {
	for _, ext := range []string{clipExtension, metaExtension} {
		names, err := filepath.Glob(
			filepath.Join(c.Config.Filesystem.CachePath, "*"+ext))
		if err != nil {
			return err
		}
		for _, name := range names {
			if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
		}
	}
	return nil
}

// makeDirectory creates a directory on the filesystem and verifies it is
// writeable by touching a test file
func makeDirectory(path string) error {
	err := os.MkdirAll(path, 0o755)
	if err == nil {
		tf := filepath.Join(path, ".test."+strconv.FormatInt(time.Now().Unix(), 10))
		err = os.WriteFile(tf, []byte(""), 0o600)
		if err == nil {
			os.Remove(tf)
		}
	}
	if err != nil {
		return fmt.Errorf("[%s] directory is not writeable by clipcache: %w", path, err)
	}
	return nil
}
