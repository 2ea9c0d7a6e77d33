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

package vod

import (
	_ "embed"
)

//go:embed assets/placeholder.mp4
var placeholderClip []byte

// Source identifies where a playable Reference was resolved from
type Source int

const (
	// SourceCache indicates the Reference carries clip bytes served through
	// the cache (a hit, or a fetch that was just stored)
	SourceCache = Source(iota)
	// SourceOrigin indicates the Reference carries a direct origin URL; the
	// payload could not be served locally and playability is best-effort
	SourceOrigin
	// SourcePlaceholder indicates the Reference carries the embedded
	// placeholder payload
	SourcePlaceholder
)

var sourceNames = map[Source]string{
	SourceCache:       "cache",
	SourceOrigin:      "origin",
	SourcePlaceholder: "placeholder",
}

func (s Source) String() string {
	return sourceNames[s]
}

// Reference is a playable handle for a clip path. Exactly one of Data or
// URL is populated, according to Source.
type Reference struct {
	// Path is the clip path the Reference was resolved for
	Path string
	// Data holds the clip payload when it is locally available
	Data []byte
	// URL holds the direct origin address when the payload is not
	URL string
	// Source identifies how the Reference was resolved
	Source Source
}
