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

package protocol

import (
	"sort"
	"sync"

	"github.com/nabbar/runtimecore/logger"
	"github.com/nabbar/runtimecore/module"
	"github.com/nabbar/runtimecore/object"
	"github.com/nabbar/runtimecore/value"
)

// MaxSize bounds the pool when NewCache is not given an explicit size.
const MaxSize = 10

// Cache is a per-Application bounded pool of ProtocolHandler instances.
type Cache struct {
	mu   sync.Mutex
	max  int
	list []Extension

	registry *module.Registry
	parent   object.Object
	owner    string
	logf     logger.FuncLog
}

// NewCache returns a Cache bounded at max (MaxSize if max <= 0) that loads
// fresh handlers from registry, parenting them under parent. owner is the
// ComponentOwner a fresh handler's ExtensionInfo must carry — the File
// pipeline passes "ideallibrary"; callers building other pipelines may
// pass their own.
func NewCache(registry *module.Registry, parent object.Object, owner string, max int, logf logger.FuncLog) *Cache {
	if max <= 0 {
		max = MaxSize
	}
	return &Cache{max: max, registry: registry, parent: parent, owner: owner, logf: logf}
}

func (c *Cache) warnf(format string, args ...interface{}) {
	if c.logf == nil {
		return
	}
	c.logf().Warning(format, args...)
}

// Len reports the current occupancy, for monitor's gauge.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.list)
}

// Acquire returns a handler usable for uri: the first cached handler for
// which CanBeReusedWith(uri) is true (removed from the cache and weight
// -incremented), or a freshly loaded one from the Registry on a miss.
// Returns nil if no extension handles uri's scheme: a logged warning
// only, no error return type — the caller's pipeline is responsible for
// surfacing that as its own signal.
func (c *Cache) Acquire(uri value.URI) Extension {
	c.mu.Lock()
	for i, h := range c.list {
		if h.CanBeReusedWith(uri) {
			c.list = append(c.list[:i], c.list[i+1:]...)
			c.mu.Unlock()
			h.IncrementWeight()
			return h
		}
	}
	c.mu.Unlock()

	if c.registry == nil {
		c.warnf("protocol: no registry configured, cannot load handler for scheme %q", uri.Scheme())
		return nil
	}

	scheme := uri.Scheme()
	_, info, ok := c.registry.FindByScheme(scheme, c.owner)
	if !ok {
		c.warnf("protocol: no protocol handler registered for scheme %q", scheme)
		return nil
	}

	ext, err := c.registry.New(info, c.parent)
	if err != nil {
		c.warnf("protocol: failed constructing handler for scheme %q: %v", scheme, err)
		return nil
	}

	h, ok := ext.(Extension)
	if !ok {
		c.warnf("protocol: extension %q does not implement protocol.Handler", info.EntryPoint)
		return nil
	}

	return h
}

// Release returns h to the cache: appended if there is room,
// otherwise the least-weight entry is evicted (destroyed) to make room and
// h is prepended after its own weight is incremented. A nil h is a no-op.
func (c *Cache) Release(h Extension) {
	if h == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.list) < c.max {
		c.list = append(c.list, h)
		return
	}

	sort.SliceStable(c.list, func(i, j int) bool {
		return c.list[i].Weight() < c.list[j].Weight()
	})

	evicted := c.list[0]
	c.list = c.list[1:]
	evicted.Destroy()

	h.IncrementWeight()
	c.list = append([]Extension{h}, c.list...)
}
