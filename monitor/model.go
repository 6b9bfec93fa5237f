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

package monitor

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type monitor struct {
	src      Sources
	cache    CacheSource
	tree     TreeSource
	interval time.Duration

	runner interface {
		Start(ctx context.Context) error
		Stop(ctx context.Context) error
		IsRunning() bool
	}

	hcMu sync.Mutex
	hc   HealthCheck

	gRunning  prometheus.Gauge
	gDeferred prometheus.Gauge
	gCache    prometheus.Gauge
	gCacheHit prometheus.Counter
	gObjects  prometheus.Gauge

	running atomic.Bool
}

func (m *monitor) Start(ctx context.Context) error {
	m.running.Store(true)
	return m.runner.Start(ctx)
}

func (m *monitor) Stop(ctx context.Context) error {
	m.running.Store(false)
	return m.runner.Stop(ctx)
}

func (m *monitor) IsRunning() bool { return m.runner.IsRunning() }

func (m *monitor) SetHealthCheck(fct HealthCheck) {
	m.hcMu.Lock()
	m.hc = fct
	m.hcMu.Unlock()
}

func (m *monitor) GetHealthCheck() HealthCheck {
	m.hcMu.Lock()
	defer m.hcMu.Unlock()
	return m.hc
}

func (m *monitor) RecordCacheHit() { m.gCacheHit.Inc() }

func (m *monitor) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.gRunning, m.gDeferred, m.gCache, m.gCacheHit, m.gObjects} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// run is the runner.FuncRun driving the collection loop: sample every
// interval until ctx is cancelled, then return (runner.Stop cancels ctx
// and waits for this to exit).
func (m *monitor) run(ctx context.Context) error {
	t := time.NewTicker(m.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			m.collect(ctx)
		}
	}
}

func (m *monitor) collect(ctx context.Context) {
	m.gRunning.Set(float64(m.src.RunningTimers()))
	m.gDeferred.Set(float64(m.src.DeferredCount()))

	if m.cache != nil {
		m.gCache.Set(float64(m.cache.Len()))
	}
	if m.tree != nil {
		m.gObjects.Set(float64(m.tree.TreeSize()))
	}

	if hc := m.GetHealthCheck(); hc != nil {
		_ = hc(ctx)
	}
}
