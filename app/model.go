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

package app

import (
	"context"
	"sort"

	"github.com/nabbar/runtimecore/runner"
	"github.com/nabbar/runtimecore/timer"
)

// RegisterTimer implements timer.Host: it inserts t into the running-timer
// list and re-sorts ascending by Remaining, stable on ties so equal timers
// keep insertion order.
func (a *Application) RegisterTimer(t *timer.Timer) {
	a.runMu.Lock()
	a.running = append(a.running, t)
	a.sortRunningLocked()
	a.runMu.Unlock()
}

// UnregisterTimer implements timer.Host: stop() and destruction both route
// here to remove t from the running-timer list.
func (a *Application) UnregisterTimer(t *timer.Timer) {
	a.runMu.Lock()
	for i, r := range a.running {
		if r == t {
			a.running = append(a.running[:i], a.running[i+1:]...)
			break
		}
	}
	a.runMu.Unlock()
}

func (a *Application) sortRunningLocked() {
	sort.SliceStable(a.running, func(i, j int) bool {
		return a.running[i].Remaining() < a.running[j].Remaining()
	})
}

// RunningTimers returns the number of timers in the running-timer list,
// for monitor's gauge and for tests.
func (a *Application) RunningTimers() int {
	a.runMu.Lock()
	defer a.runMu.Unlock()
	return len(a.running)
}

// DeferredCount returns the current depth of the deferred-deletion queue,
// for monitor's gauge.
func (a *Application) DeferredCount() int {
	a.delMu.Lock()
	defer a.delMu.Unlock()
	return len(a.deferred)
}

// processEvents is the scheduling half of the main loop: pick the next nap
// length from the running-timer list and sleep it.
func (a *Application) processEvents() {
	if a.sleepTime != idleSleep {
		a.checkTimers()
		timer.Wait(a.sleepTime)
		return
	}

	a.runMu.Lock()
	if len(a.running) > 0 {
		// Interval, not Remaining: leaving idle follows the front timer's
		// configured cadence; checkTimers reconciles any partially-elapsed
		// remaining on the next pass via the msDelta branch.
		a.sleepTime = a.running[0].Interval()
	} else {
		a.sleepTime = a.defaultSleep
	}
	a.runMu.Unlock()

	timer.Wait(a.sleepTime)
}

// checkTimers reconciles elapsed sleep time against the running-timer
// list, fires everything tied for soonest, and hands each expired Timer to
// its own detached EventDispatcher.
func (a *Application) checkTimers() {
	a.runMu.Lock()

	if len(a.running) == 0 {
		a.runMu.Unlock()
		return
	}

	head := a.running[0]
	headRemaining := head.Remaining()
	msDelta := headRemaining - a.sleepTime

	if msDelta > 0 {
		// The timer at the front still has time left after this sleep —
		// it must have been (re)started mid-sleep. Charge every running
		// timer for the sleep that elapsed and shorten the next nap to
		// whatever is left, capped at the default.
		for _, t := range a.running {
			t.SetRemaining(t.Remaining() - a.sleepTime)
		}
		if msDelta < a.defaultSleep {
			a.sleepTime = msDelta
		} else {
			a.sleepTime = a.defaultSleep
		}
		a.runMu.Unlock()
		return
	}

	a.nextTimeout = headRemaining

	var expired []*timer.Timer

	i := 0
	for i < len(a.running) && a.running[i].Remaining() == headRemaining {
		t := a.running[i]
		expired = append(expired, t)

		if t.Mode() == timer.SingleShot {
			t.MarkStopped()
			a.running = append(a.running[:i], a.running[i+1:]...)
		} else {
			t.SetRemaining(t.Interval())
			i++
		}
	}

	for _, t := range a.running[i:] {
		t.SetRemaining(t.Remaining() - a.nextTimeout)
	}

	a.sortRunningLocked()

	if len(a.running) > 0 {
		a.sleepTime = a.running[0].Remaining()
	} else {
		a.sleepTime = idleSleep
	}

	a.runMu.Unlock()

	for _, t := range expired {
		fired := t
		runner.Spawn(context.Background(), func(ctx context.Context) error {
			fired.Timeout().Emit(fired)
			return nil
		})
	}
}

// processDelayedDeletions drains the deferred-deletion list under lock,
// then destroys each object outside the lock — avoiding re-entrancy with a
// destructor that itself calls DeferDelete.
func (a *Application) processDelayedDeletions() {
	a.delMu.Lock()
	list := a.deferred
	a.deferred = nil
	a.delMu.Unlock()

	for _, o := range list {
		o.Destroy()
	}
}

// checkFileWatches drains any pending fsnotify events for the module
// search path without blocking. It is a genuine no-op when
// WithModuleSearchWatch was not supplied.
func (a *Application) checkFileWatches() {
	if a.watch == nil {
		return
	}
	a.watch.drain(a.onModulePathChanged)
}

func (a *Application) onModulePathChanged(path string) {
	if a.registry != nil {
		a.registry.Rescan(path)
	}
}

// unloadUnneededDynamicLibraries drains the module Registry's unload
// list.
func (a *Application) unloadUnneededDynamicLibraries() {
	if a.registry == nil {
		return
	}
	a.registry.UnloadUnneeded()
}
