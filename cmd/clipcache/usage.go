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

package main

import (
	"fmt"
	"os"
)

const usageText = `clipcache caches workout video clips on local disk.

Usage: clipcache [flags] <command> [args]

Commands:
  serve          Run the HTTP frontend, serving cached clips under /clips/
                 along with the /health and /metrics endpoints
  fetch <path>   Fetch the clip at <path>, serving from the cache when a
                 fresh copy exists, and write the payload to stdout
  probe <path>   Check whether the clip at <path> is reachable at the origin
  stats          Print the cache's current size and entry count
  clear          Remove all cached clips

Flags:
  -config string
        Supplies Path to Config File
  -origin-url string
        Sets the root URL clips are fetched from
  -log-level string
        Sets the logging verbosity (debug, info, warn, error)
  -version
        Prints the application version
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func printVersion() {
	fmt.Printf("%s version %s\n", applicationName, applicationVersion)
}
