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

// Package badger is the BadgerDB implementation of the clipcache store
package badger

import (
	"errors"
	"strconv"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/pulsefit/clipcache/pkg/cache"
	"github.com/pulsefit/clipcache/pkg/cache/options"
	"github.com/pulsefit/clipcache/pkg/cache/status"
	"github.com/pulsefit/clipcache/pkg/observability/logging"
	"github.com/pulsefit/clipcache/pkg/observability/logging/logger"
)

// SchemaVersion identifies the on-disk record layout. A stored version that
// does not match causes the store to be dropped and recreated empty.
const SchemaVersion = 1

const (
	clipPrefix = "clip:"
	metaPrefix = "meta:"
	schemaKey  = "schema.version"
)

// CacheClient implements the cache.Client interface
var _ cache.Client = &CacheClient{}

// CacheClient describes a Badger CacheClient
type CacheClient struct {
	Name   string
	Config *options.Options
	dbh    *badger.DB
}

// New returns a new badger store client
func New(cacheName string, cfg *options.Options) *CacheClient {
	if cfg == nil {
		cfg = options.New()
	}
	return &CacheClient{
		Name:   cacheName,
		Config: cfg,
	}
}

// Connect opens the configured badger key-value store and enforces the
// schema version gate
func (c *CacheClient) Connect() error {
	logger.Debug("badger cache connect",
		logging.Pairs{"cacheName": c.Name, "directory": c.Config.Badger.Directory})

	opts := badger.DefaultOptions(c.Config.Badger.Directory)
	opts.ValueDir = c.Config.Badger.ValueDirectory

	var err error
	c.dbh, err = badger.Open(opts)
	if err != nil {
		return err
	}

	var stored string
	err = c.dbh.View(func(txn *badger.Txn) error {
		item, err2 := txn.Get([]byte(schemaKey))
		if err2 != nil {
			return err2
		}
		v, err2 := item.ValueCopy(nil)
		stored = string(v)
		return err2
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return err
	}
	if stored != "" && stored != strconv.Itoa(SchemaVersion) {
		// version mismatch: recreate empty, no migration
		logger.Warn("cache schema version mismatch; recreating store",
			logging.Pairs{"cacheName": c.Name, "storedVersion": stored,
				"expectedVersion": SchemaVersion})
		if err = c.dbh.DropAll(); err != nil {
			return err
		}
	}
	return c.dbh.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(schemaKey), []byte(strconv.Itoa(SchemaVersion)))
	})
}

// Store writes the payload and its metadata record in a single transaction,
// overwriting any existing record for the key
func (c *CacheClient) Store(cacheKey string, data []byte) error {
	e := cache.NewEntry(cacheKey, data, time.Now())
	err := c.dbh.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(clipPrefix+cacheKey), e.ToBytes()); err != nil {
			return err
		}
		return txn.Set([]byte(metaPrefix+cacheKey), e.Metadata.ToBytes())
	})
	if err != nil {
		return err
	}
	logger.Debug("badger cache store",
		logging.Pairs{"cacheName": c.Name, "key": cacheKey, "size": e.Size})
	return nil
}

func (c *CacheClient) retrieve(storageKey string) ([]byte, error) {
	var data []byte
	err := c.dbh.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(storageKey))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, cache.ErrKNF
	}
	return data, err
}

// Retrieve returns the full record for the key
func (c *CacheClient) Retrieve(cacheKey string) (*cache.Entry, status.LookupStatus, error) {
	data, err := c.retrieve(clipPrefix + cacheKey)
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
	data, err := c.retrieve(metaPrefix + cacheKey)
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
	prefix := []byte(metaPrefix)
	err := c.dbh.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			v, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			md, err := cache.MetadataFromBytes(v)
			if err != nil {
				return err
			}
			out = append(out, *md)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Remove deletes the records for the provided keys, if present
func (c *CacheClient) Remove(cacheKeys ...string) error {
	err := c.dbh.Update(func(txn *badger.Txn) error {
		for _, cacheKey := range cacheKeys {
			if err := txn.Delete([]byte(clipPrefix + cacheKey)); err != nil {
				return err
			}
			if err := txn.Delete([]byte(metaPrefix + cacheKey)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.Debug("badger cache remove",
		logging.Pairs{"cacheName": c.Name, "keys": cacheKeys})
	return nil
}

// Clear removes all records and rewrites the schema version
func (c *CacheClient) Clear() error {
	if err := c.dbh.DropAll(); err != nil {
		return err
	}
	return c.dbh.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(schemaKey), []byte(strconv.Itoa(SchemaVersion)))
	})
}

// Close closes the underlying badger database
func (c *CacheClient) Close() error {
	if c.dbh == nil {
		return nil
	}
	return c.dbh.Close()
}
