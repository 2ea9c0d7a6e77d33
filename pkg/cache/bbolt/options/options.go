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

const (
	// DefaultBBoltFile is the default bbolt database filename
	DefaultBBoltFile = "clipcache.db"
	// DefaultBBoltBucket is the default bbolt bucket name for clip records
	DefaultBBoltBucket = "clips"
)

// Options is a collection of bbolt client options
type Options struct {
	// Filename represents the filename (including path) of the bbolt database
	Filename string `yaml:"filename,omitempty"`
	// Bucket represents the name of the bucket within the bbolt database under
	// which clip records are stored
	Bucket string `yaml:"bucket,omitempty"`
}

// New returns a new bbolt client options reference with default values set
func New() *Options {
	return &Options{
		Filename: DefaultBBoltFile,
		Bucket:   DefaultBBoltBucket,
	}
}
