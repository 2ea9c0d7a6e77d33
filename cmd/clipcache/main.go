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

// Package main is the main package for the clipcache application
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/pulsefit/clipcache/pkg/config"
	"github.com/pulsefit/clipcache/pkg/frontend"
	"github.com/pulsefit/clipcache/pkg/observability/logging"
	"github.com/pulsefit/clipcache/pkg/observability/logging/logger"
	"github.com/pulsefit/clipcache/pkg/runtime"
	"github.com/pulsefit/clipcache/pkg/vod"
)

const (
	applicationName    = "clipcache"
	applicationVersion = "0.9.0"
)

var exitFunc = os.Exit

func main() {
	runtime.ApplicationName = applicationName
	runtime.ApplicationVersion = applicationVersion
	exitFunc(run(os.Args[1:]))
}

func run(arguments []string) int {
	cf, err := parseFlags(arguments)
	if err != nil {
		if errors.Is(err, errHelpRequested) {
			printUsage()
			return 0
		}
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	if cf.version {
		printVersion()
		return 0
	}
	if cf.command == "" {
		printUsage()
		return 1
	}

	conf, err := loadConfiguration(cf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load configuration: %s\n", err.Error())
		return 1
	}

	lg := logging.New(conf.Logging.LogFile, conf.Logging.LogLevel)
	logger.SetLogger(lg)
	defer lg.Close()

	mgr := vod.New(conf)
	defer mgr.Close()

	switch cf.command {
	case "serve":
		return runServe(mgr, conf)
	case "fetch":
		return runFetch(mgr, cf.args)
	case "probe":
		return runProbe(mgr, cf.args)
	case "stats":
		return runStats(mgr)
	case "clear":
		return runClear(mgr)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cf.command)
		printUsage()
		return 1
	}
}

func runServe(mgr *vod.Manager, conf *config.Config) int {
	if err := frontend.ListenAndServe(conf.Frontend.ListenAddress, mgr); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}

func runFetch(mgr *vod.Manager, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: clipcache fetch <path>")
		return 1
	}
	b, err := mgr.Fetch(context.Background(), args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	os.Stdout.Write(b)
	return 0
}

func runProbe(mgr *vod.Manager, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: clipcache probe <path>")
		return 1
	}
	if !mgr.ProbeReachable(context.Background(), args[0]) {
		fmt.Printf("unreachable %s\n", mgr.Resolve(args[0]))
		return 1
	}
	fmt.Printf("reachable %s\n", mgr.Resolve(args[0]))
	return 0
}

func runStats(mgr *vod.Manager) int {
	s := mgr.Stats()
	if !s.Supported {
		fmt.Println("cache unavailable; operating in network-only mode")
		return 1
	}
	fmt.Printf("entries: %d\nbytes: %d\n", s.EntryCount, s.TotalSize)
	return 0
}

func runClear(mgr *vod.Manager) int {
	if err := mgr.ClearAll(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	fmt.Println("cache cleared")
	return 0
}
