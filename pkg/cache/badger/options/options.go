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

package options

// DefaultBadgerDirectory is the default directory for the badger store
const DefaultBadgerDirectory = "/tmp/clipcache"

// Options is a collection of badger client options
type Options struct {
	// Directory represents the path on disk where the badger database resides
	Directory string `yaml:"directory,omitempty"`
	// ValueDirectory represents the path on disk where the badger database
	// values will be stored
	ValueDirectory string `yaml:"value_directory,omitempty"`
}

// New returns a new badger client options reference with default values set
func New() *Options {
	return &Options{
		Directory:      DefaultBadgerDirectory,
		ValueDirectory: DefaultBadgerDirectory,
	}
}
