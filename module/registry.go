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

package module

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nabbar/runtimecore/cache"
	"github.com/nabbar/runtimecore/logger"
	"github.com/nabbar/runtimecore/object"
	"github.com/nabbar/runtimecore/rterr"
	"github.com/nabbar/runtimecore/signal"
)

var validate = validator.New()

// findCacheTTL bounds how long a FindByScheme hit is trusted before the
// next call re-scans the registry. Long enough that the file pipeline's
// stat/get/mkdir jobs don't re-walk every Module's Extensions() on each
// protocol.Cache miss; short enough that it never outlives a plausible gap
// between two Register calls during startup.
const findCacheTTL = 30 * time.Second

// entry pairs a registered Module with the subset of its ExtensionInfo
// records that passed validation; lookups only ever see that subset.
type entry struct {
	mod   Module
	infos []ExtensionInfo
	refs  atomic.Int32
}

// extMatch is FindByScheme's memoized result: the owning Module alongside
// the ExtensionInfo record that satisfied the scheme/owner query.
type extMatch struct {
	mod  Module
	info ExtensionInfo
}

// Registry holds every loaded Module for one Application and the
// extension-instance refcounts that drive unloadUnneededDynamicLibraries.
type Registry struct {
	mu      sync.Mutex
	entries []*entry
	unload  []Module

	find cache.Cache[string, extMatch]

	logf logger.FuncLog
}

// NewRegistry returns an empty Registry. logf may be nil.
func NewRegistry(logf logger.FuncLog) *Registry {
	return &Registry{
		logf: logf,
		find: cache.New[string, extMatch](context.Background(), findCacheTTL),
	}
}

func (r *Registry) warnf(format string, args ...interface{}) {
	if r.logf == nil {
		return
	}
	r.logf().Warning(format, args...)
}

// Register adds mod to the registry. Every one of mod's ExtensionInfo
// records is validated (required EntryPoint/ComponentOwner/Name); an
// invalid record is dropped with a warning rather than failing the whole
// Module, since the remaining entries may still be usable. Dropped
// records are invisible to Find/FindByScheme/New.
func (r *Registry) Register(mod Module) {
	all := mod.Extensions()
	infos := make([]ExtensionInfo, 0, len(all))
	for _, info := range all {
		if err := validate.Struct(info); err != nil {
			r.warnf("module: dropping invalid extension %q: %v", info.EntryPoint, err)
			continue
		}
		infos = append(infos, info)
	}

	r.mu.Lock()
	r.entries = append(r.entries, &entry{mod: mod, infos: infos})
	r.mu.Unlock()

	// A newly registered Module can satisfy a scheme that a prior
	// FindByScheme call found nothing for, so the memoized view is
	// discarded wholesale rather than trying to reason about which keys
	// it might invalidate.
	r.find.Clean()
}

// Find returns the first validated ExtensionInfo (and its owning Module)
// across every registered Module for which pred returns true, scanning in
// registration order.
func (r *Registry) Find(pred func(ExtensionInfo) bool) (Module, ExtensionInfo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		for _, info := range e.infos {
			if pred(info) {
				return e.mod, info, true
			}
		}
	}

	return nil, ExtensionInfo{}, false
}

// FindByScheme resolves the ProtocolHandler extension registered for
// scheme under owner (see ExtensionInfo.Handles), memoizing hits for
// findCacheTTL so protocol.Cache's Acquire miss path — which runs once per
// stat/get/mkdir job that can't reuse a pooled handler — doesn't re-walk
// every registered Module's Extensions() on every call. Misses are not
// cached: Register already clears the whole memo on growth, so caching a
// miss buys nothing and would otherwise mask a Module registered a moment
// too late.
func (r *Registry) FindByScheme(scheme string, owner string) (Module, ExtensionInfo, bool) {
	key := owner + "\x00" + scheme

	if m, _, ok := r.find.Load(key); ok {
		return m.mod, m.info, true
	}

	mod, info, ok := r.Find(func(info ExtensionInfo) bool {
		return info.ExtensionType == ProtocolHandler &&
			(owner == "" || info.ComponentOwner == owner) &&
			info.Handles(scheme)
	})
	if !ok {
		return nil, ExtensionInfo{}, false
	}

	r.find.Store(key, extMatch{mod: mod, info: info})
	return mod, info, true
}

// New constructs the Extension described by info, parented to parent, and
// increments its owning Module's refcount. The Extension's Destroyed
// signal is wired to release() so the refcount — and therefore the unload
// list — stays correct without the caller having to remember to call
// back into the registry.
func (r *Registry) New(info ExtensionInfo, parent object.Object) (Extension, error) {
	r.mu.Lock()
	var owner *entry
	for _, e := range r.entries {
		for _, candidate := range e.infos {
			if candidate.EntryPoint == info.EntryPoint {
				owner = e
				break
			}
		}
		if owner != nil {
			break
		}
	}
	r.mu.Unlock()

	if owner == nil {
		return nil, rterr.NoHandlerForScheme.Error(nil)
	}

	ext, err := owner.mod.New(info.EntryPoint, parent)
	if err != nil {
		return nil, err
	}

	owner.refs.Add(1)
	signal.ConnectStatic(ext.Destroyed(), func(object.Object) {
		r.release(owner)
	})

	return ext, nil
}

func (r *Registry) release(e *entry) {
	if e.refs.Add(-1) > 0 {
		return
	}

	r.mu.Lock()
	r.unload = append(r.unload, e.mod)
	r.mu.Unlock()
}

// UnloadUnneeded drains the unload list built up by release() and closes
// every Module that implements io.Closer. app's main loop calls it once
// per iteration.
func (r *Registry) UnloadUnneeded() {
	r.mu.Lock()
	list := r.unload
	r.unload = nil
	r.mu.Unlock()

	for _, mod := range list {
		if c, ok := mod.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				r.warnf("module: error unloading module: %v", err)
			}
		}
	}
}

// Rescan is the hook app.Application's checkFileWatches calls when the
// module search path changes on disk. Re-enumerating shared libraries is
// out of scope (see the package doc comment); this simply gives callers a
// place to hang their own reload logic, and logs at Debug by default.
func (r *Registry) Rescan(path string) {
	r.find.Clean()

	if r.logf == nil {
		return
	}
	r.logf().Debug("module: search path changed: %s", path)
}
