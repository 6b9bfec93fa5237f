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

// Package app implements the runtime's single main loop:
// processEvents (sleep/timer scheduling), processDelayedDeletions,
// checkFileWatches (a real fsnotify watch over the module search path when
// one is configured), and unloadUnneededDynamicLibraries. It is
// also the object.Application for the whole process: app.Application
// embeds an object.Base constructed with itself as the Application, so
// every Object created under it (object.New(application)) shares its
// lifetime, and it is the timer.Host every Timer registers against.
//
// The loop runs its four phases in a fixed order each iteration; the
// argv/name/option table lives on the Application itself.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/nabbar/runtimecore/logger"
	"github.com/nabbar/runtimecore/module"
	"github.com/nabbar/runtimecore/object"
	"github.com/nabbar/runtimecore/timer"
)

// DefaultSleep is the main loop's idle poll interval when no timer is
// running.
const DefaultSleep = 500 * time.Millisecond

// idleSleep is the processEvents sentinel meaning "not currently following
// a timer-driven cadence".
const idleSleep time.Duration = -1

// protocolCache is the subset of protocol.Cache the Application can hold a
// reference to; kept as a local interface so app does not import protocol
// (protocol already imports app's sibling module package).
type protocolCache interface {
	Len() int
}

var _ object.Application = (*Application)(nil)
var _ timer.Host = (*Application)(nil)

// Application is the process-wide coordinator: the object tree's root, the
// running-timer list's owner, and the deferred-deletion drain.
type Application struct {
	*object.Base

	argv []string
	name string

	logf logger.FuncLog

	defaultSleep time.Duration
	sleepTime    time.Duration
	nextTimeout  time.Duration

	runMu   sync.Mutex
	running []*timer.Timer

	delMu    sync.Mutex
	deferred []object.Object

	optMu   sync.Mutex
	options map[string]string

	registry *module.Registry
	cache    protocolCache

	watch *watcher

	quitOnce sync.Once
	quitCh   chan struct{}
	quitCode int
}

// Option configures an Application at construction time.
type Option func(*Application)

// WithLogger installs the logging facade every subsystem warning/debug
// line is written through.
func WithLogger(f logger.FuncLog) Option {
	return func(a *Application) { a.logf = f }
}

// WithRegistry wires the extension/module Registry whose unload list
// unloadUnneededDynamicLibraries drains each loop iteration.
func WithRegistry(r *module.Registry) Option {
	return func(a *Application) { a.registry = r }
}

// WithDefaultSleep overrides the idle poll interval used when no timer is
// running, normally sourced from the CLI's
// --sleep-time-ms flag (config.Settings.SleepTimeMs).
func WithDefaultSleep(d time.Duration) Option {
	return func(a *Application) {
		if d > 0 {
			a.defaultSleep = d
		}
	}
}

// WithProtocolCache stores a reference to the protocol-handler cache
// without app importing protocol. The Application keeps the reference but
// never reads it and exposes no accessor for it.
func WithProtocolCache(c protocolCache) Option {
	return func(a *Application) { a.cache = c }
}

// WithModuleSearchWatch starts a real fsnotify watch (spec's
// "checkFileWatches … may be a no-op on platforms w/o file-watch" is
// honored by simply not calling this option) over the given directories —
// normally the module search path.
func WithModuleSearchWatch(dirs ...string) Option {
	return func(a *Application) {
		a.watch = newWatcher(dirs, a.warnf)
	}
}

// New constructs the process Application. argv is stored verbatim;
// name is used to build the default module search path.
func New(argv []string, name string, opts ...Option) *Application {
	a := &Application{
		argv:         argv,
		name:         name,
		defaultSleep: DefaultSleep,
		sleepTime:    idleSleep,
		options:      map[string]string{},
		quitCh:       make(chan struct{}),
	}

	for _, o := range opts {
		o(a)
	}

	a.Base = object.NewRoot(a)
	return a
}

func (a *Application) warnf(format string, args ...interface{}) {
	if a.logf == nil {
		return
	}
	a.logf().Warning(format, args...)
}

// Argv, ArgvCount, and Name expose the Application's construction
// arguments.
func (a *Application) Argv() []string {
	out := make([]string, len(a.argv))
	copy(out, a.argv)
	return out
}

func (a *Application) ArgvCount() int { return len(a.argv) }
func (a *Application) Name() string   { return a.name }

// Option returns a caller-set option value from the application's option
// table, populated by the CLI surface (config package) or directly by the
// caller.
func (a *Application) Option(key string) (string, bool) {
	a.optMu.Lock()
	defer a.optMu.Unlock()
	v, ok := a.options[key]
	return v, ok
}

func (a *Application) SetOption(key, value string) {
	a.optMu.Lock()
	a.options[key] = value
	a.optMu.Unlock()
}

// DeferDelete implements object.Application: it appends o to the deferred
// -deletion list, deduplicating if already present.
func (a *Application) DeferDelete(o object.Object) {
	a.delMu.Lock()
	defer a.delMu.Unlock()

	for _, d := range a.deferred {
		if d == o {
			return
		}
	}
	a.deferred = append(a.deferred, o)
}

// Quit ends the main loop with the given exit code. It does not call
// os.Exit itself — see cmd/runtimecored for the process-level wrapper that
// does — so Exec stays usable from tests without terminating the test
// binary: process exit stays tied to the Application's own loop state
// instead of an uncatchable os.Exit inside library code.
func (a *Application) Quit(code int) {
	a.quitOnce.Do(func() {
		a.quitCode = code
		close(a.quitCh)
	})
}

// Exec runs the main loop until Quit is called or ctx is cancelled,
// returning the exit code (0 if ctx cancellation ended the loop).
func (a *Application) Exec(ctx context.Context) int {
	for {
		select {
		case <-ctx.Done():
			return 0
		case <-a.quitCh:
			return a.quitCode
		default:
		}

		a.processEvents()
		a.processDelayedDeletions()
		a.checkFileWatches()
		a.unloadUnneededDynamicLibraries()
	}
}
