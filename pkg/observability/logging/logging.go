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

// Package logging provides a leveled logfmt event logger for the application
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/go-stack/stack"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/pulsefit/clipcache/pkg/runtime"
)

// Pairs represents a set of key=value pairs that describe a log event
type Pairs map[string]any

// Logger is a container for the underlying log provider
type Logger struct {
	logger log.Logger
	closer io.Closer
	level  string
}

func mapToArray(event string, detail Pairs) []any {
	a := make([]any, (len(detail)*2)+2)
	var i int

	// Ensure the log level is the first Pair in the output order (after prefixes)
	if lvl, ok := detail["level"]; ok {
		a[0] = "level"
		a[1] = lvl
		delete(detail, "level")
		i += 2
	}

	// Ensure the event description is the second Pair in the output order (after prefixes)
	a[i] = "event"
	a[i+1] = event
	i += 2

	for k, v := range detail {
		a[i] = k
		a[i+1] = v
		i += 2
	}
	return a
}

// ConsoleLogger returns a Logger that prints log events to the console
func ConsoleLogger(logLevel string) *Logger {
	l := &Logger{}
	l.logger = wrapWithFilter(newBaseLogger(os.Stdout), logLevel)
	l.level = strings.ToLower(logLevel)
	return l
}

// New returns a Logger for the provided log file path and level. An empty
// path logs to the console; otherwise events are written to a size-rotated
// log file.
func New(logFile, logLevel string) *Logger {
	l := &Logger{}

	var wr io.Writer
	if logFile == "" {
		wr = os.Stdout
	} else {
		wr = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    256, // megabytes
			MaxBackups: 80,
			MaxAge:     7, // days
			Compress:   true,
		}
	}

	l.logger = wrapWithFilter(newBaseLogger(wr), logLevel)
	l.level = strings.ToLower(logLevel)
	if c, ok := wr.(io.Closer); ok && c != nil {
		l.closer = c
	}
	return l
}

func newBaseLogger(wr io.Writer) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(wr))
	return log.With(logger,
		"time", log.DefaultTimestampUTC,
		"app", runtime.ApplicationName,
		"caller", log.Valuer(func() any {
			return pkgCaller{stack.Caller(6)}
		}),
	)
}

func wrapWithFilter(logger log.Logger, logLevel string) log.Logger {
	switch strings.ToLower(logLevel) {
	case "debug":
		return level.NewFilter(logger, level.AllowDebug())
	case "warn":
		return level.NewFilter(logger, level.AllowWarn())
	case "error":
		return level.NewFilter(logger, level.AllowError())
	default:
		return level.NewFilter(logger, level.AllowInfo())
	}
}

// Level returns the configured level name for the Logger
func (l *Logger) Level() string {
	return l.level
}

// Debug sends a "DEBUG" event to the Logger
func (l *Logger) Debug(event string, detail Pairs) {
	level.Debug(l.logger).Log(mapToArray(event, detail)...)
}

// Info sends an "INFO" event to the Logger
func (l *Logger) Info(event string, detail Pairs) {
	level.Info(l.logger).Log(mapToArray(event, detail)...)
}

// Warn sends a "WARN" event to the Logger
func (l *Logger) Warn(event string, detail Pairs) {
	level.Warn(l.logger).Log(mapToArray(event, detail)...)
}

// Error sends an "ERROR" event to the Logger
func (l *Logger) Error(event string, detail Pairs) {
	level.Error(l.logger).Log(mapToArray(event, detail)...)
}

// Fatal sends a "FATAL" event to the Logger and exits the program
// with the provided exit code
func (l *Logger) Fatal(code int, event string, detail Pairs) {
	// go-kit/log/level does not support Fatal, so implemented separately here
	detail["level"] = "fatal"
	l.logger.Log(mapToArray(event, detail)...)
	os.Exit(code)
}

// Close closes any opened file handles that were used for logging
func (l *Logger) Close() {
	if l.closer != nil {
		l.closer.Close()
	}
}

// pkgCaller wraps a stack.Call to make the default string output include the
// package path
type pkgCaller struct {
	c stack.Call
}

func (pc pkgCaller) String() string {
	return strings.TrimPrefix(fmt.Sprintf("%+v", pc.c),
		"github.com/pulsefit/clipcache/pkg/")
}
