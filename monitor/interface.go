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

// Package monitor exposes Prometheus gauges over a running Application and
// its protocol.Cache: running-timer count, protocol-cache
// occupancy/hit-rate, deferred-deletion queue depth, object-graph node
// count. New(src, opts...) builds a Monitor whose Start/Stop pair runs a
// periodic collection loop on runner.StartStop, sampling into
// client_golang gauges.
package monitor

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nabbar/runtimecore/object"
	"github.com/nabbar/runtimecore/runner"
)

// Sources is the subset of app.Application and protocol.Cache a Monitor
// collects from. Kept as a narrow local interface (rather than importing
// app/protocol directly) so monitor has no upward dependency beyond
// runner — grounded on the same cycle-avoidance seam app/timer already use
// for Host/Application.
type Sources interface {
	RunningTimers() int
	DeferredCount() int
}

// CacheSource is the protocol.Cache subset monitor reads for occupancy; a
// nil CacheSource simply omits that gauge.
type CacheSource interface {
	Len() int
}

// TreeSource reports the current object-graph node count rooted at an
// Application; a nil TreeSource simply omits that gauge.
type TreeSource interface {
	TreeSize() int
}

// treeSource adapts any object.Object root (normally an app.Application,
// which embeds *object.Base) into a TreeSource by walking Children()
// recursively. Exported via RootTree so callers don't need to hand-roll
// the walk themselves.
type treeSource struct{ root object.Object }

// RootTree returns a TreeSource counting every live Object reachable from
// root, root included.
func RootTree(root object.Object) TreeSource { return treeSource{root: root} }

func (t treeSource) TreeSize() int {
	return 1 + countChildren(t.root)
}

func countChildren(o object.Object) int {
	n := 0
	for _, c := range o.Children() {
		n += 1 + countChildren(c)
	}
	return n
}

// HealthCheck is an optional function invoked at the end of every
// collection tick.
type HealthCheck func(ctx context.Context) error

// Monitor periodically samples Sources/CacheSource/TreeSource into
// Prometheus gauges and optionally runs a HealthCheck each tick.
type Monitor interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	IsRunning() bool

	SetHealthCheck(fct HealthCheck)
	GetHealthCheck() HealthCheck

	// RecordCacheHit increments the cache-hit counter; callers (the demo
	// CLI's Acquire wrapper) call this when protocol.Cache.Acquire returns
	// a reused handler rather than a freshly loaded one.
	RecordCacheHit()

	// Register registers every gauge/counter this Monitor owns with reg
	// (the demo binary passes prometheus.DefaultRegisterer).
	Register(reg prometheus.Registerer) error
}

// Option configures a Monitor at construction time.
type Option func(*monitor)

// WithCache wires the protocol-cache occupancy gauge.
func WithCache(c CacheSource) Option {
	return func(m *monitor) { m.cache = c }
}

// WithTree wires the object-graph size gauge.
func WithTree(t TreeSource) Option {
	return func(m *monitor) { m.tree = t }
}

// WithInterval overrides the default 5s collection period.
func WithInterval(d time.Duration) Option {
	return func(m *monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// DefaultInterval is the collection tick when WithInterval is not given.
const DefaultInterval = 5 * time.Second

// New returns a Monitor sampling src (normally the Application) on every
// tick. src must not be nil.
func New(src Sources, opts ...Option) Monitor {
	m := &monitor{
		src:      src,
		interval: DefaultInterval,
		gRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "runtimecore",
			Subsystem: "app",
			Name:      "running_timers",
			Help:      "Number of timers currently registered on the Application's running-timer list.",
		}),
		gDeferred: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "runtimecore",
			Subsystem: "app",
			Name:      "deferred_deletions",
			Help:      "Depth of the deferred-deletion queue awaiting the next processDelayedDeletions pass.",
		}),
		gCache: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "runtimecore",
			Subsystem: "protocol",
			Name:      "cache_size",
			Help:      "Number of ProtocolHandler instances currently held in the cache.",
		}),
		gCacheHit: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "runtimecore",
			Subsystem: "protocol",
			Name:      "cache_acquire_hit_total",
			Help:      "Number of Acquire calls satisfied by RecordCacheHit, used to derive a hit-rate alongside cache_size.",
		}),
		gObjects: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "runtimecore",
			Subsystem: "object",
			Name:      "graph_size",
			Help:      "Number of live Objects reachable from the Application root.",
		}),
	}

	for _, o := range opts {
		o(m)
	}

	m.runner = runner.New(m.run, nil)
	return m
}
