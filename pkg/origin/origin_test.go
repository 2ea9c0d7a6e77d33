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

package origin

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/clips/warmup.mp4":
			w.Write([]byte("payload"))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in, expected string
	}{
		{"clips/a.mp4", "clips/a.mp4"},
		{"/clips/a.mp4", "clips/a.mp4"},
		{"///clips/a.mp4", "clips/a.mp4"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := NormalizePath(tc.in); got != tc.expected {
			t.Errorf("NormalizePath(%q): expected %q got %q", tc.in, tc.expected, got)
		}
	}
}

func TestResolve(t *testing.T) {
	c := New("http://origin.example.com/", time.Second)
	const expected = "http://origin.example.com/clips/a.mp4"
	for _, path := range []string{"clips/a.mp4", "/clips/a.mp4", "//clips/a.mp4"} {
		if got := c.Resolve(path); got != expected {
			t.Errorf("Resolve(%q): expected %q got %q", path, expected, got)
		}
	}
}

func TestFetch(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	c := New(ts.URL, time.Second)
	b, err := c.Fetch(context.Background(), "/clips/warmup.mp4")
	if err != nil {
		t.Error(err)
	}
	if !bytes.Equal(b, []byte("payload")) {
		t.Errorf("expected %s got %s", "payload", string(b))
	}
}

func TestFetchNotFound(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	c := New(ts.URL, time.Second)
	_, err := c.Fetch(context.Background(), "clips/missing.mp4")
	if err == nil {
		t.Fatal("expected error")
	}
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransportError got %T", err)
	}
	if te.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404 got %d", te.StatusCode)
	}
}

func TestFetchUnreachable(t *testing.T) {
	// a closed server port yields a transport-layer failure with no status
	ts := newTestServer()
	ts.Close()

	c := New(ts.URL, time.Second)
	_, err := c.Fetch(context.Background(), "clips/warmup.mp4")
	if err == nil {
		t.Fatal("expected error")
	}
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransportError got %T", err)
	}
	if te.StatusCode != 0 {
		t.Errorf("expected status 0 got %d", te.StatusCode)
	}
	if te.Unwrap() == nil {
		t.Error("expected wrapped transport error")
	}
}

func TestProbe(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	c := New(ts.URL, time.Second)
	if !c.Probe(context.Background(), "clips/warmup.mp4") {
		t.Error("expected reachable")
	}
	if c.Probe(context.Background(), "clips/missing.mp4") {
		t.Error("expected unreachable")
	}
}

func TestTransportErrorMessage(t *testing.T) {
	te := &TransportError{StatusCode: 404, Reason: "404 Not Found"}
	if te.Error() != "origin fetch failed: 404 Not Found" {
		t.Errorf("unexpected message: %s", te.Error())
	}
	te = &TransportError{Reason: "connection refused"}
	if te.Error() != "origin unreachable: connection refused" {
		t.Errorf("unexpected message: %s", te.Error())
	}
}
