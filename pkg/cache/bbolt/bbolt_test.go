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

package bbolt

import (
	"bytes"
	"strings"
	"testing"

	"go.etcd.io/bbolt"

	"github.com/pulsefit/clipcache/pkg/cache"
	co "github.com/pulsefit/clipcache/pkg/cache/options"
	"github.com/pulsefit/clipcache/pkg/cache/status"
	"github.com/pulsefit/clipcache/pkg/observability/logging"
	"github.com/pulsefit/clipcache/pkg/observability/logging/logger"
)

const cacheKey = "clips/hiit/round1.mp4"

func newCacheConfig(dbPath string) *co.Options {
	cfg := co.New()
	cfg.Provider = "bbolt"
	cfg.BBolt.Filename = dbPath
	cfg.BBolt.Bucket = "clipcache_test"
	return cfg
}

func newConnectedClient(t *testing.T) *CacheClient {
	t.Helper()
	logger.SetLogger(logging.ConsoleLogger("error"))
	bc := New(t.Name(), newCacheConfig(t.TempDir()+"/test.db"))
	if err := bc.Connect(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { bc.Close() })
	return bc
}

func TestBboltCache_Connect(t *testing.T) {
	logger.SetLogger(logging.ConsoleLogger("error"))
	bc := New(t.Name(), newCacheConfig(t.TempDir()+"/test.db"))
	if err := bc.Connect(); err != nil {
		t.Error(err)
	}
	bc.Close()
}

func TestBboltCache_ConnectFailed(t *testing.T) {
	logger.SetLogger(logging.ConsoleLogger("error"))
	bc := New(t.Name(), newCacheConfig(t.TempDir()+"/missing/test.db"))
	if err := bc.Connect(); err == nil {
		t.Error("expected error for missing parent directory")
		bc.Close()
	}
}

func TestBboltCache_ConnectBadBucketName(t *testing.T) {
	logger.SetLogger(logging.ConsoleLogger("error"))
	const expected = "create bucket: bucket name required"
	cfg := newCacheConfig(t.TempDir() + "/test.db")
	cfg.BBolt.Bucket = ""
	bc := New(t.Name(), cfg)
	err := bc.Connect()
	if err == nil {
		t.Errorf("expected error '%s'", expected)
		bc.Close()
	} else if !strings.HasPrefix(err.Error(), expected) {
		t.Errorf("expected error '%s' got '%s'", expected, err.Error())
	}
}

func TestBboltCache_StoreRetrieve(t *testing.T) {
	bc := newConnectedClient(t)

	if err := bc.Store(cacheKey, []byte("data")); err != nil {
		t.Error(err)
	}

	e, s, err := bc.Retrieve(cacheKey)
	if err != nil {
		t.Error(err)
	}
	if s != status.LookupStatusHit {
		t.Errorf("expected %s got %s", status.LookupStatusHit, s)
	}
	if !bytes.Equal(e.Value, []byte("data")) {
		t.Errorf("expected %s got %s", "data", string(e.Value))
	}
	if e.Size != 4 {
		t.Errorf("expected size 4 got %d", e.Size)
	}
	if e.StoredAt.IsZero() {
		t.Error("expected non-zero StoredAt")
	}
}

func TestBboltCache_RetrieveMiss(t *testing.T) {
	bc := newConnectedClient(t)

	_, s, err := bc.Retrieve("no.such.key")
	if err != cache.ErrKNF {
		t.Errorf("expected %s got %v", cache.ErrKNF, err)
	}
	if s != status.LookupStatusKeyMiss {
		t.Errorf("expected %s got %s", status.LookupStatusKeyMiss, s)
	}
}

func TestBboltCache_RetrieveMetadata(t *testing.T) {
	bc := newConnectedClient(t)

	if err := bc.Store(cacheKey, []byte("data")); err != nil {
		t.Error(err)
	}

	md, s, err := bc.RetrieveMetadata(cacheKey)
	if err != nil {
		t.Error(err)
	}
	if s != status.LookupStatusHit {
		t.Errorf("expected %s got %s", status.LookupStatusHit, s)
	}
	if md.Key != cacheKey || md.Size != 4 {
		t.Errorf("unexpected metadata: %v", md)
	}

	if _, s, err = bc.RetrieveMetadata("no.such.key"); err != cache.ErrKNF ||
		s != status.LookupStatusKeyMiss {
		t.Errorf("expected key miss, got %s / %v", s, err)
	}
}

func TestBboltCache_ListMetadata(t *testing.T) {
	bc := newConnectedClient(t)

	for _, k := range []string{"a", "b", "c"} {
		if err := bc.Store(k, []byte("0123456789")); err != nil {
			t.Error(err)
		}
	}

	mds, err := bc.ListMetadata()
	if err != nil {
		t.Error(err)
	}
	if len(mds) != 3 {
		t.Errorf("expected 3 records got %d", len(mds))
	}
	for _, md := range mds {
		if md.Size != 10 {
			t.Errorf("expected size 10 got %d", md.Size)
		}
	}
}

func TestBboltCache_Remove(t *testing.T) {
	bc := newConnectedClient(t)

	if err := bc.Store(cacheKey, []byte("data")); err != nil {
		t.Error(err)
	}
	if err := bc.Remove(cacheKey); err != nil {
		t.Error(err)
	}
	if _, _, err := bc.Retrieve(cacheKey); err != cache.ErrKNF {
		t.Errorf("expected %s got %v", cache.ErrKNF, err)
	}
	if _, _, err := bc.RetrieveMetadata(cacheKey); err != cache.ErrKNF {
		t.Errorf("expected %s got %v", cache.ErrKNF, err)
	}
	// removing an absent key is a no-op
	if err := bc.Remove(cacheKey); err != nil {
		t.Error(err)
	}
}

func TestBboltCache_Clear(t *testing.T) {
	bc := newConnectedClient(t)

	for _, k := range []string{"a", "b"} {
		if err := bc.Store(k, []byte("data")); err != nil {
			t.Error(err)
		}
	}
	if err := bc.Clear(); err != nil {
		t.Error(err)
	}
	mds, err := bc.ListMetadata()
	if err != nil {
		t.Error(err)
	}
	if len(mds) != 0 {
		t.Errorf("expected empty cache got %d records", len(mds))
	}
}

func TestBboltCache_SchemaMismatch(t *testing.T) {
	logger.SetLogger(logging.ConsoleLogger("error"))
	dbPath := t.TempDir() + "/test.db"
	cfg := newCacheConfig(dbPath)

	bc := New(t.Name(), cfg)
	if err := bc.Connect(); err != nil {
		t.Fatal(err)
	}
	if err := bc.Store(cacheKey, []byte("data")); err != nil {
		t.Error(err)
	}
	bc.Close()

	// rewrite the stored schema version to simulate an older layout
	db, err := bbolt.Open(dbPath, 0o644, nil)
	if err != nil {
		t.Fatal(err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(schemaBucket)).Put([]byte(schemaKey), []byte("99"))
	})
	if err != nil {
		t.Fatal(err)
	}
	db.Close()

	// reconnect: the store must come back empty
	bc = New(t.Name(), cfg)
	if err = bc.Connect(); err != nil {
		t.Fatal(err)
	}
	defer bc.Close()
	if _, _, err = bc.Retrieve(cacheKey); err != cache.ErrKNF {
		t.Errorf("expected %s got %v", cache.ErrKNF, err)
	}
	mds, err := bc.ListMetadata()
	if err != nil {
		t.Error(err)
	}
	if len(mds) != 0 {
		t.Errorf("expected empty cache got %d records", len(mds))
	}
}
