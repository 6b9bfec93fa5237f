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

// Package timer implements the runtime's monotonic-interval timers (spec
// §4.4): single-shot or repeating, inserted into their owning Application's
// running-timer list on Start and removed on Stop or destruction. The
// ordering/resort algorithm itself (checkTimers) lives in app, which is the
// only package allowed to walk the whole running list at once; this
// package exposes just enough surface (Remaining/Interval/Mode/SetRemaining/
// MarkStopped/Timeout) for app to drive it.
package timer

import (
	"sync"
	"time"

	"github.com/nabbar/runtimecore/object"
	"github.com/nabbar/runtimecore/signal"
)

// Mode selects whether a Timer fires once or repeatedly.
type Mode uint8

const (
	Repeating Mode = iota
	SingleShot
)

// State is the Timer's own stopped/running flag, independent of whether it
// is currently registered on an Application's running-timer list.
type State uint8

const (
	Stopped State = iota
	Running
)

// DefaultInterval is used when a Timer is constructed without an explicit
// interval.
const DefaultInterval = 1000 * time.Millisecond

// Host is the subset of app.Application a Timer needs in order to
// register/unregister itself from the running-timer list on Start/Stop.
// app.Application implements this; defining it here (rather than importing
// app, which would cycle back through object) keeps timer's only upward
// dependency on object.
type Host interface {
	RegisterTimer(t *Timer)
	UnregisterTimer(t *Timer)
}

// Timer is a node in the object tree (so it is destroyed, and removed from
// its Application's running list, like any other Object) plus the
// interval/remaining/mode/state fields.
type Timer struct {
	object.Object

	mu        sync.Mutex
	interval  time.Duration
	remaining time.Duration
	mode      Mode
	state     State

	timeout *signal.Signal[*Timer]
}
