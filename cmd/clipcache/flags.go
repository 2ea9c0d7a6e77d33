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
	"errors"
	"flag"
	"io"
	"os"

	"github.com/pulsefit/clipcache/pkg/config"
)

const (
	cfConfig   = "config"
	cfOrigin   = "origin-url"
	cfLogLevel = "log-level"
	cfVersion  = "version"
)

// environment variable names
const (
	evOrigin   = "CLIPCACHE_ORIGIN_URL"
	evLogLevel = "CLIPCACHE_LOG_LEVEL"
)

// errHelpRequested is returned when the arguments ask for usage output
// rather than a command run
var errHelpRequested = errors.New("help requested")

type cmdFlags struct {
	configPath string
	originURL  string
	logLevel   string
	version    bool

	command string
	args    []string
}

// parseFlags separates the option flags from the command verb and its
// arguments. Flags may appear before or after the verb.
func parseFlags(arguments []string) (*cmdFlags, error) {
	cf := &cmdFlags{}
	f := flag.NewFlagSet(applicationName, flag.ContinueOnError)
	f.SetOutput(io.Discard)
	f.StringVar(&cf.configPath, cfConfig, "", "Supplies Path to Config File")
	f.StringVar(&cf.originURL, cfOrigin, "", "Sets the root URL clips are fetched from")
	f.StringVar(&cf.logLevel, cfLogLevel, "", "Sets the logging verbosity")
	f.BoolVar(&cf.version, cfVersion, false, "Prints the application version")
	if err := f.Parse(arguments); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cf, errHelpRequested
		}
		return nil, err
	}
	rest := f.Args()
	if len(rest) > 0 {
		cf.command = rest[0]
		cf.args = rest[1:]
		// allow flags after the verb as well
		if err := f.Parse(cf.args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return cf, errHelpRequested
			}
			return nil, err
		}
		cf.args = f.Args()
	}
	return cf, nil
}

// loadConfiguration reads the config file named by the flags (when one is
// provided) and applies environment variable and flag overrides, flags
// taking precedence
func loadConfiguration(cf *cmdFlags) (*config.Config, error) {
	var c *config.Config
	var err error
	if cf.configPath != "" {
		c, err = config.Load(cf.configPath)
		if err != nil {
			return nil, err
		}
	} else {
		c = config.New()
	}

	if x := os.Getenv(evOrigin); x != "" {
		c.Origin.OriginURL = x
	}
	if x := os.Getenv(evLogLevel); x != "" {
		c.Logging.LogLevel = x
	}

	if cf.originURL != "" {
		c.Origin.OriginURL = cf.originURL
	}
	if cf.logLevel != "" {
		c.Logging.LogLevel = cf.logLevel
	}

	if err = c.Process(); err != nil {
		return nil, err
	}
	return c, nil
}
