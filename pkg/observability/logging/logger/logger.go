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

// Package logger provides a package-level logger for application-wide use,
// and provides the same event functions as logging.Logger at the package
// level. By default, the logger is a Console Logger @ INFO. Use SetLogger()
// to replace it.
package logger

import (
	"github.com/pulsefit/clipcache/pkg/observability/logging"
)

var logger = logging.ConsoleLogger("info")

// Logger returns the package-level logger object
func Logger() *logging.Logger {
	return logger
}

// SetLogger sets the package-level logger object
func SetLogger(l *logging.Logger) {
	if l == nil {
		return
	}
	logger = l
}

func Debug(event string, detail logging.Pairs) {
	logger.Debug(event, detail)
}

func Info(event string, detail logging.Pairs) {
	logger.Info(event, detail)
}

func Warn(event string, detail logging.Pairs) {
	logger.Warn(event, detail)
}

func Error(event string, detail logging.Pairs) {
	logger.Error(event, detail)
}

func Fatal(code int, event string, detail logging.Pairs) {
	logger.Fatal(code, event, detail)
}
