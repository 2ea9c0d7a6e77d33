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

// Package cache defines the clipcache persistent store interface and the
// stored record types
package cache

import (
	"errors"
	"time"

	"github.com/pulsefit/clipcache/pkg/cache/status"
)

// ErrKNF represents the error "key not found in cache"
var ErrKNF = errors.New("key not found in cache")

// Metadata describes a stored clip without materializing its payload
type Metadata struct {
	// Key is the normalized clip path and is the accessor in the store
	Key string
	// Size is the size of the stored payload in bytes, always derived
	// from the payload itself
	Size int64
	// StoredAt is the time of the last successful write for the Key
	StoredAt time.Time
}

// Entry is one stored clip record: its Metadata plus the payload bytes
type Entry struct {
	Metadata
	Value []byte
}

// Client is the interface for the supported persistent store providers.
// Retrieve and RetrieveMetadata must return ErrKNF on a key miss.
type Client interface {
	// Connect opens the underlying store, enforcing the schema version gate
	Connect() error
	// Store writes the payload under the key, overwriting any prior record.
	// Size and StoredAt are derived at write time.
	Store(cacheKey string, data []byte) error
	// Retrieve returns the full record for the key
	Retrieve(cacheKey string) (*Entry, status.LookupStatus, error)
	// RetrieveMetadata returns the record's metadata without loading the payload
	RetrieveMetadata(cacheKey string) (*Metadata, status.LookupStatus, error)
	// ListMetadata returns the metadata for all stored records, payloads excluded
	ListMetadata() ([]Metadata, error)
	// Remove deletes the records for the provided keys; absent keys are not an error
	Remove(cacheKeys ...string) error
	// Clear removes all records
	Clear() error
	Close() error
}
