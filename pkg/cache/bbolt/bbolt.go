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

// Package bbolt is the bbolt implementation of the clipcache store
package bbolt

import (
	"fmt"
	"strconv"
	"time"

	"go.etcd.io/bbolt"

	"github.com/pulsefit/clipcache/pkg/cache"
	"github.com/pulsefit/clipcache/pkg/cache/options"
	"github.com/pulsefit/clipcache/pkg/cache/status"
	"github.com/pulsefit/clipcache/pkg/observability/logging"
	"github.com/pulsefit/clipcache/pkg/observability/logging/logger"
)

// SchemaVersion identifies the on-disk record layout. A stored version that
// does not match causes the clip buckets to be dropped and recreated empty.
const SchemaVersion = 1

const (
	schemaBucket = "schema"
	schemaKey    = "version"
	metaSuffix   = ".meta"
	openTimeout  = 1 * time.Second
	dbFileMode   = 0o644
)

// CacheClient implements the cache.Client interface
var _ cache.Client = &CacheClient{}

// CacheClient describes a bbolt CacheClient
type CacheClient struct {
	Name   string
	Config *options.Options
	dbh    *bbolt.DB
}

// New returns a new bbolt store client
func New(cacheName string, cfg *options.Options) *CacheClient {
	if cfg == nil {
		cfg = options.New()
	}
	return &CacheClient{
		Name:   cacheName,
		Config: cfg,
	}
}

func (c *CacheClient) metaBucket() []byte {
	return []byte(c.Config.BBolt.Bucket + metaSuffix)
}

func (c *CacheClient) clipBucket() []byte {
	return []byte(c.Config.BBolt.Bucket)
}

// Connect opens the configured bbolt database and enforces the schema
// version gate
func (c *CacheClient) Connect() error {
	logger.Debug("bbolt cache connect",
		logging.Pairs{"cacheName": c.Name, "cacheFile": c.Config.BBolt.Filename})

	var err error
	c.dbh, err = bbolt.Open(c.Config.BBolt.Filename, dbFileMode,
		&bbolt.Options{Timeout: openTimeout})
	if err != nil {
		return err
	}

	return c.dbh.Update(func(tx *bbolt.Tx) error {
		sb, err2 := tx.CreateBucketIfNotExists([]byte(schemaBucket))
		if err2 != nil {
			return fmt.Errorf("create bucket: %w", err2)
		}
		stored := string(sb.Get([]byte(schemaKey)))
		if stored != "" && stored != strconv.Itoa(SchemaVersion) {
			// version mismatch: recreate empty, no migration
			logger.Warn("cache schema version mismatch; recreating store",
				logging.Pairs{"cacheName": c.Name, "storedVersion": stored,
					"expectedVersion": SchemaVersion})
			for _, name := range [][]byte{c.clipBucket(), c.metaBucket()} {
				if tx.Bucket(name) != nil {
					if err2 = tx.DeleteBucket(name); err2 != nil {
						return err2
					}
				}
			}
		}
		for _, name := range [][]byte{c.clipBucket(), c.metaBucket()} {
			if _, err2 = tx.CreateBucketIfNotExists(name); err2 != nil {
				return fmt.Errorf("create bucket: %w", err2)
			}
		}
		return sb.Put([]byte(schemaKey), []byte(strconv.Itoa(SchemaVersion)))
	})
}

// Store writes the payload and its metadata record in a single transaction,
// overwriting any existing record for the key
func (c *CacheClient) Store(cacheKey string, data []byte) error {
	e := cache.NewEntry(cacheKey, data, time.Now())
	err := c.dbh.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(c.clipBucket()).Put([]byte(cacheKey), e.ToBytes()); err != nil {
			return err
		}
		return tx.Bucket(c.metaBucket()).Put([]byte(cacheKey), e.Metadata.ToBytes())
	})
	if err != nil {
		return err
	}
	logger.Debug("bbolt cache store",
		logging.Pairs{"cacheName": c.Name, "key": cacheKey, "size": e.Size})
	return nil
}

// Retrieve returns the full record for the key
func (c *CacheClient) Retrieve(cacheKey string) (*cache.Entry, status.LookupStatus, error) {
	var data []byte
	err := c.dbh.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(c.clipBucket()).Get([]byte(cacheKey))
		if v == nil {
			return cache.ErrKNF
		}
		// copy out: bbolt values are only valid for the life of the transaction
		data = make([]byte, len(v))
		copy(data, v)
		return nil
	})
	if err != nil {
		return nil, status.LookupStatusKeyMiss, err
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
	var data []byte
	err := c.dbh.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(c.metaBucket()).Get([]byte(cacheKey))
		if v == nil {
			return cache.ErrKNF
		}
		data = make([]byte, len(v))
		copy(data, v)
		return nil
	})
	if err != nil {
		return nil, status.LookupStatusKeyMiss, err
	}
	md, err := cache.MetadataFromBytes(data)
	if err != nil {
		return nil, status.LookupStatusError, err
	}
	return md, status.LookupStatusHit, nil
}

// ListMetadata returns the metadata records for all stored clips
func (c *CacheClient) ListMetadata() ([]cache.Metadata, error) {
	out := make([]cache.Metadata, 0, 16)
	err := c.dbh.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(c.metaBucket()).ForEach(func(_, v []byte) error {
			md, err := cache.MetadataFromBytes(v)
			if err != nil {
				return err
			}
			out = append(out, *md)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Remove deletes the records for the provided keys, if present
func (c *CacheClient) Remove(cacheKeys ...string) error {
	err := c.dbh.Update(func(tx *bbolt.Tx) error {
		for _, cacheKey := range cacheKeys {
			if err := tx.Bucket(c.clipBucket()).Delete([]byte(cacheKey)); err != nil {
				return err
			}
			if err := tx.Bucket(c.metaBucket()).Delete([]byte(cacheKey)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.Debug("bbolt cache remove",
		logging.Pairs{"cacheName": c.Name, "keys": cacheKeys})
	return nil
}

// Clear removes all records by dropping and recreating the clip buckets
func (c *CacheClient) Clear() error {
	return c.dbh.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{c.clipBucket(), c.metaBucket()} {
			if err := tx.DeleteBucket(name); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close closes the underlying bbolt database
func (c *CacheClient) Close() error {
	if c.dbh == nil {
		return nil
	}
	return c.dbh.Close()
}
