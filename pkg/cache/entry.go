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

package cache

import (
	"fmt"
	"time"

	"github.com/tinylib/msgp/msgp"
)

// Stored record field names. Timestamps are serialized as RFC-3339 strings.
const (
	fieldPath      = "path"
	fieldSize      = "size"
	fieldTimestamp = "timestamp"
	fieldValue     = "value"
)

// MarshalMsg appends the msgpack representation of the Metadata to b
func (md *Metadata) MarshalMsg(b []byte) ([]byte, error) {
	o := msgp.AppendMapHeader(b, 3)
	o = msgp.AppendString(o, fieldPath)
	o = msgp.AppendString(o, md.Key)
	o = msgp.AppendString(o, fieldSize)
	o = msgp.AppendInt64(o, md.Size)
	o = msgp.AppendString(o, fieldTimestamp)
	o = msgp.AppendString(o, md.StoredAt.UTC().Format(time.RFC3339Nano))
	return o, nil
}

// UnmarshalMsg decodes a Metadata from the msgpack bytes in b
func (md *Metadata) UnmarshalMsg(b []byte) ([]byte, error) {
	sz, o, err := msgp.ReadMapHeaderBytes(b)
	if err != nil {
		return b, err
	}
	for i := uint32(0); i < sz; i++ {
		var field []byte
		field, o, err = msgp.ReadMapKeyZC(o)
		if err != nil {
			return o, err
		}
		switch string(field) {
		case fieldPath:
			md.Key, o, err = msgp.ReadStringBytes(o)
		case fieldSize:
			md.Size, o, err = msgp.ReadInt64Bytes(o)
		case fieldTimestamp:
			var ts string
			ts, o, err = msgp.ReadStringBytes(o)
			if err == nil {
				md.StoredAt, err = time.Parse(time.RFC3339Nano, ts)
			}
		default:
			o, err = msgp.Skip(o)
		}
		if err != nil {
			return o, err
		}
	}
	return o, nil
}

// ToBytes returns a serialized byte slice representing the Metadata
func (md *Metadata) ToBytes() []byte {
	b, _ := md.MarshalMsg(nil)
	return b
}

// MetadataFromBytes returns a deserialized Metadata from a serialized byte slice
func MetadataFromBytes(data []byte) (*Metadata, error) {
	md := &Metadata{}
	if _, err := md.UnmarshalMsg(data); err != nil {
		return nil, fmt.Errorf("invalid metadata record: %w", err)
	}
	return md, nil
}

// MarshalMsg appends the msgpack representation of the Entry to b
func (e *Entry) MarshalMsg(b []byte) ([]byte, error) {
	o := msgp.AppendMapHeader(b, 4)
	o = msgp.AppendString(o, fieldPath)
	o = msgp.AppendString(o, e.Key)
	o = msgp.AppendString(o, fieldSize)
	o = msgp.AppendInt64(o, e.Size)
	o = msgp.AppendString(o, fieldTimestamp)
	o = msgp.AppendString(o, e.StoredAt.UTC().Format(time.RFC3339Nano))
	o = msgp.AppendString(o, fieldValue)
	o = msgp.AppendBytes(o, e.Value)
	return o, nil
}

// UnmarshalMsg decodes an Entry from the msgpack bytes in b
func (e *Entry) UnmarshalMsg(b []byte) ([]byte, error) {
	sz, o, err := msgp.ReadMapHeaderBytes(b)
	if err != nil {
		return b, err
	}
	for i := uint32(0); i < sz; i++ {
		var field []byte
		field, o, err = msgp.ReadMapKeyZC(o)
		if err != nil {
			return o, err
		}
		switch string(field) {
		case fieldPath:
			e.Key, o, err = msgp.ReadStringBytes(o)
		case fieldSize:
			e.Size, o, err = msgp.ReadInt64Bytes(o)
		case fieldTimestamp:
			var ts string
			ts, o, err = msgp.ReadStringBytes(o)
			if err == nil {
				e.StoredAt, err = time.Parse(time.RFC3339Nano, ts)
			}
		case fieldValue:
			e.Value, o, err = msgp.ReadBytesBytes(o, nil)
		default:
			o, err = msgp.Skip(o)
		}
		if err != nil {
			return o, err
		}
	}
	return o, nil
}

// ToBytes returns a serialized byte slice representing the Entry
func (e *Entry) ToBytes() []byte {
	b, _ := e.MarshalMsg(nil)
	return b
}

// EntryFromBytes returns a deserialized Entry from a serialized byte slice
func EntryFromBytes(data []byte) (*Entry, error) {
	e := &Entry{}
	if _, err := e.UnmarshalMsg(data); err != nil {
		return nil, fmt.Errorf("invalid clip record: %w", err)
	}
	return e, nil
}

// NewEntry wraps a payload with its derived Metadata, stamped at now
func NewEntry(cacheKey string, data []byte, now time.Time) *Entry {
	return &Entry{
		Metadata: Metadata{
			Key:      cacheKey,
			Size:     int64(len(data)),
			StoredAt: now,
		},
		Value: data,
	}
}
