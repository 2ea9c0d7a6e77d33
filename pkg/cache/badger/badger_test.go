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

package badger

import (
	"bytes"
	"testing"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/pulsefit/clipcache/pkg/cache"
	co "github.com/pulsefit/clipcache/pkg/cache/options"
	"github.com/pulsefit/clipcache/pkg/cache/status"
	"github.com/pulsefit/clipcache/pkg/observability/logging"
	"github.com/pulsefit/clipcache/pkg/observability/logging/logger"
)

const cacheKey = "clips/yoga/flow3.mp4"

func newCacheConfig(dir string) *co.Options {
	cfg := co.New()
	cfg.Provider = "badger"
	cfg.Badger.Directory = dir
	cfg.Badger.ValueDirectory = dir
	return cfg
}

func newConnectedClient(t *testing.T) *CacheClient {
	t.Helper()
	logger.SetLogger(logging.ConsoleLogger("error"))
	bc := New(t.Name(), newCacheConfig(t.TempDir()))
	if err := bc.Connect(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { bc.Close() })
	return bc
}

func TestBadgerCache_Connect(t *testing.T) {
	logger.SetLogger(logging.ConsoleLogger("error"))
	bc := New(t.Name(), newCacheConfig(t.TempDir()))
	if err := bc.Connect(); err != nil {
		t.Error(err)
	}
	bc.Close()
}

func TestBadgerCache_StoreRetrieve(t *testing.T) {
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

	_, s, err = bc.Retrieve("no.such.key")
	if err != cache.ErrKNF {
		t.Errorf("expected %s got %v", cache.ErrKNF, err)
	}
	if s != status.LookupStatusKeyMiss {
		t.Errorf("expected %s got %s", status.LookupStatusKeyMiss, s)
	}
}

func TestBadgerCache_ListMetadata(t *testing.T) {
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

func TestBadgerCache_Remove(t *testing.T) {
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
	// removing an absent key is a no-op
	if err := bc.Remove(cacheKey); err != nil {
		t.Error(err)
	}
}

func TestBadgerCache_Clear(t *testing.T) {
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

func TestBadgerCache_SchemaMismatch(t *testing.T) {
	logger.SetLogger(logging.ConsoleLogger("error"))
	dir := t.TempDir()
	cfg := newCacheConfig(dir)

	bc := New(t.Name(), cfg)
	if err := bc.Connect(); err != nil {
		t.Fatal(err)
	}
	if err := bc.Store(cacheKey, []byte("data")); err != nil {
		t.Error(err)
	}
	// rewrite the stored schema version to simulate an older layout
	err := bc.dbh.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(schemaKey), []byte("99"))
	})
	if err != nil {
		t.Fatal(err)
	}
	bc.Close()

	bc = New(t.Name(), cfg)
	if err = bc.Connect(); err != nil {
		t.Fatal(err)
	}
	defer bc.Close()
	if _, _, err = bc.Retrieve(cacheKey); err != cache.ErrKNF {
		t.Errorf("expected %s got %v", cache.ErrKNF, err)
	}
}
