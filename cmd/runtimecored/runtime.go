/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Command runtimecored is the demo binary wiring every package in this
// module together behind a cobra CLI: an Application, a module Registry
// preloaded with the three builtin protocol handlers, a bounded
// protocol.Cache, a File request pipeline driven synchronously per
// invocation, and a Monitor exposing the result over /metrics.
package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nabbar/runtimecore/app"
	"github.com/nabbar/runtimecore/config"
	"github.com/nabbar/runtimecore/file"
	"github.com/nabbar/runtimecore/logger"
	"github.com/nabbar/runtimecore/module"
	"github.com/nabbar/runtimecore/monitor"
	"github.com/nabbar/runtimecore/protocol"
	"github.com/nabbar/runtimecore/protocol/builtin/ftp"
	httpproto "github.com/nabbar/runtimecore/protocol/builtin/http"
	"github.com/nabbar/runtimecore/protocol/builtin/local"
)

// runtime bundles the long-lived pieces every cobra command handler needs.
// It is built once in main, after cobra has parsed flags into cfg.
type runtime struct {
	app      *app.Application
	registry *module.Registry
	cache    *protocol.Cache
	file     file.File
	mon      monitor.Monitor
	logf     logger.FuncLog
}

// newRuntime constructs the process's single Application, registers the
// three builtin protocol handlers, and wires a File pipeline and Monitor
// against it.
func newRuntime(appName string, cfg config.Settings, logf logger.FuncLog) (*runtime, error) {
	reg := module.NewRegistry(logf)
	reg.Register(local.Module{})
	reg.Register(httpproto.Module{})
	reg.Register(ftp.Module{})

	opts := []app.Option{
		app.WithLogger(logf),
		app.WithRegistry(reg),
	}
	if cfg.ModuleSearchPath != "" {
		opts = append(opts, app.WithModuleSearchWatch(cfg.ModuleSearchPath))
	}
	if cfg.SleepTimeMs > 0 {
		opts = append(opts, app.WithDefaultSleep(time.Duration(cfg.SleepTimeMs)*time.Millisecond))
	}

	a := app.New(nil, appName, opts...)

	size := cfg.CacheSize
	if size <= 0 {
		size = protocol.MaxSize
	}
	cache := protocol.NewCache(reg, a, appName, size, logf)

	f, err := file.New(a, cache)
	if err != nil {
		return nil, err
	}

	mon := monitor.New(a, monitor.WithCache(cache), monitor.WithTree(monitor.RootTree(a)))
	if err = mon.Register(prometheus.DefaultRegisterer); err != nil {
		return nil, err
	}

	return &runtime{
		app:      a,
		registry: reg,
		cache:    cache,
		file:     f,
		mon:      mon,
		logf:     logf,
	}, nil
}
