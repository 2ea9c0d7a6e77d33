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

// Package config provides the application configuration
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	cache "github.com/pulsefit/clipcache/pkg/cache/options"
)

const (
	// DefaultCacheName is the name used for the cache in logs and metrics
	DefaultCacheName = "default"
	// DefaultOriginTimeoutMS is the default origin request timeout in milliseconds
	DefaultOriginTimeoutMS int64 = 30000
	// DefaultLogLevel is the default logging level
	DefaultLogLevel = "info"
	// DefaultListenAddress is the default frontend listen address
	DefaultListenAddress = ":8480"
)

// ErrNoOriginURL is returned when the configuration has no origin URL
var ErrNoOriginURL = errors.New("no origin_url provided")

// Config is the main application configuration
type Config struct {
	// Origin is the remote clip endpoint configuration
	Origin *OriginConfig `yaml:"origin,omitempty"`
	// Cache is the clip store configuration
	Cache *cache.Options `yaml:"cache,omitempty"`
	// Logging is the logging configuration
	Logging *LoggingConfig `yaml:"logging,omitempty"`
	// Frontend is the HTTP frontend configuration
	Frontend *FrontendConfig `yaml:"frontend,omitempty"`
}

// FrontendConfig describes the HTTP frontend
type FrontendConfig struct {
	// ListenAddress is the address the serve command binds to
	ListenAddress string `yaml:"listen_address,omitempty"`
}

// OriginConfig describes the remote clip endpoint
type OriginConfig struct {
	// OriginURL is the root address clips are fetched from
	OriginURL string `yaml:"origin_url,omitempty"`
	// TimeoutMS defines how long the application will wait for an origin
	// response before timing out, in milliseconds
	TimeoutMS int64 `yaml:"timeout_ms,omitempty"`

	// Timeout is the synthetic duration form of TimeoutMS, populated at load time
	Timeout time.Duration `yaml:"-"`
}

// LoggingConfig is a collection of logging configurations
type LoggingConfig struct {
	// LogFile provides the filepath to the instance's logfile.
	// Set as empty string to log to console.
	LogFile string `yaml:"log_file,omitempty"`
	// LogLevel provides the most granular level (e.g., DEBUG, INFO, ERROR)
	// to log
	LogLevel string `yaml:"log_level,omitempty"`
}

// New returns a Config with default values set
func New() *Config {
	c := &Config{
		Origin: &OriginConfig{
			TimeoutMS: DefaultOriginTimeoutMS,
		},
		Cache:    cache.New(),
		Logging:  &LoggingConfig{LogLevel: DefaultLogLevel},
		Frontend: &FrontendConfig{ListenAddress: DefaultListenAddress},
	}
	c.Cache.Name = DefaultCacheName
	return c
}

// Load reads the yaml config file at the provided path into a Config,
// applying defaults for any omitted settings
func Load(path string) (*Config, error) {
	c := New()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return nil, err
	}
	if err = c.Process(); err != nil {
		return nil, err
	}
	return c, nil
}

// Process derives the synthetic members and validates the Config
func (c *Config) Process() error {
	c.Origin.Timeout = time.Duration(c.Origin.TimeoutMS) * time.Millisecond
	c.Cache.Index.TTL = time.Duration(c.Cache.Index.TTLDays) * 24 * time.Hour
	if c.Cache.Name == "" {
		c.Cache.Name = DefaultCacheName
	}
	return c.validate()
}

func (c *Config) validate() error {
	if c.Origin.OriginURL == "" {
		return ErrNoOriginURL
	}
	u, err := url.Parse(c.Origin.OriginURL)
	if err != nil {
		return fmt.Errorf("invalid origin_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid origin_url scheme: %s", u.Scheme)
	}
	return nil
}
