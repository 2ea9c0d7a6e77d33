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

// Package frontend provides the HTTP surface for serving cached clips,
// along with the health and metrics endpoints
package frontend

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/pulsefit/clipcache/pkg/observability/logging"
	"github.com/pulsefit/clipcache/pkg/observability/logging/logger"
	"github.com/pulsefit/clipcache/pkg/observability/metrics"
	"github.com/pulsefit/clipcache/pkg/origin"
	"github.com/pulsefit/clipcache/pkg/vod"
)

const clipContentType = "video/mp4"

// NewHandler returns the frontend http.Handler for the provided Manager
func NewHandler(mgr *vod.Manager) http.Handler {
	s := &server{mgr: mgr}
	mux := http.NewServeMux()
	mux.HandleFunc("/clips/", s.clipHandler)
	mux.HandleFunc("/health", healthHandler)
	mux.Handle("/metrics", metrics.Handler())
	return mux
}

type server struct {
	mgr *vod.Manager
}

// clipHandler serves clip payloads through the cache. An origin error with
// an HTTP status is relayed as that status; transport-layer failures map to
// 502 Bad Gateway.
func (s *server) clipHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	switch r.Method {
	case http.MethodHead:
		if s.mgr.IsCached(path) || s.mgr.ProbeReachable(r.Context(), path) {
			w.Header().Set("Content-Type", clipContentType)
			w.WriteHeader(http.StatusOK)
			return
		}
		http.Error(w, "clip not found", http.StatusNotFound)
	case http.MethodGet:
		b, err := s.mgr.Fetch(r.Context(), path)
		if err != nil {
			var te *origin.TransportError
			if errors.As(err, &te) && te.StatusCode > 0 {
				http.Error(w, te.Reason, te.StatusCode)
				return
			}
			logger.Error("clip request failed upstream",
				logging.Pairs{"path": path, "detail": err.Error()})
			http.Error(w, "origin unreachable", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", clipContentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(b)))
		w.Write(b)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Write([]byte("OK\n"))
}

// ListenAndServe runs the frontend on the provided address until the
// listener fails
func ListenAndServe(listenAddress string, mgr *vod.Manager) error {
	logger.Info("frontend http service starting",
		logging.Pairs{"listenAddress": listenAddress})
	return http.ListenAndServe(listenAddress, NewHandler(mgr))
}
