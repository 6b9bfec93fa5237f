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

package timer

import (
	"time"

	"github.com/nabbar/runtimecore/object"
	"github.com/nabbar/runtimecore/signal"
)

// New constructs a Timer under parent with DefaultInterval, stopped.
func New(parent object.Object) (*Timer, error) {
	base, err := object.New(parent)
	if err != nil {
		return nil, err
	}

	t := &Timer{
		Object:   base,
		interval: DefaultInterval,
		state:    Stopped,
	}
	t.timeout = signal.New[*Timer](base)

	// A parent's cascade (and a deferred deletion of the embedded Object)
	// destroys base directly, bypassing Timer.Destroy, so Stop also runs on
	// the destroyed signal.
	signal.ConnectStatic(base.Destroyed(), func(object.Object) { t.Stop() })

	return t, nil
}

// Timeout is emitted once per expiry: by the EventDispatcher app.checkTimers
// spawns for every expired timer, carrying the Timer itself as payload.
func (t *Timer) Timeout() *signal.Signal[*Timer] {
	return t.timeout
}

// Interval returns the configured period between fires.
func (t *Timer) Interval() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.interval
}

// SetInterval changes the period. Legal in any state; a change while
// Running takes effect the next time the countdown is reset (the next
// Start, or a Repeating timer's next fire), not on the in-flight countdown.
func (t *Timer) SetInterval(d time.Duration) {
	t.mu.Lock()
	t.interval = d
	t.mu.Unlock()
}

// Remaining returns the time left until the next fire.
func (t *Timer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

// SetRemaining is called only by app.Application's checkTimers while
// holding the running-timer list lock.
func (t *Timer) SetRemaining(d time.Duration) {
	t.mu.Lock()
	t.remaining = d
	t.mu.Unlock()
}

func (t *Timer) Mode() Mode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Timer) IsRunning() bool {
	return t.State() == Running
}

// MarkStopped transitions a fired single-shot timer back to Stopped without
// touching the running-timer list; app.checkTimers has already erased it
// from that list by the time it calls this.
func (t *Timer) MarkStopped() {
	t.mu.Lock()
	t.state = Stopped
	t.mu.Unlock()
}

func (t *Timer) host() (Host, bool) {
	h, ok := t.Application().(Host)
	return h, ok
}

// Start sets remaining = interval, flips the state to Running, and inserts
// t into its owning Application's running-timer list.
func (t *Timer) Start(mode Mode) {
	t.mu.Lock()
	t.mode = mode
	t.remaining = t.interval
	t.state = Running
	t.mu.Unlock()

	if h, ok := t.host(); ok {
		h.RegisterTimer(t)
	}
}

// Stop removes t from the running-timer list and marks it Stopped.
func (t *Timer) Stop() {
	t.mu.Lock()
	wasRunning := t.state == Running
	t.state = Stopped
	t.mu.Unlock()

	if !wasRunning {
		return
	}

	if h, ok := t.host(); ok {
		h.UnregisterTimer(t)
	}
}

// Destroy stops t (removing it from the running-timer list) before
// delegating to the embedded Object's own destruction.
func (t *Timer) Destroy() {
	t.Stop()
	t.Object.Destroy()
}

// Wait blocks the calling goroutine for d. Expressed directly with the
// runtime clock rather than reimplementing sleep on top of the timer
// engine.
func Wait(d time.Duration) {
	time.Sleep(d)
}

// CallAfter allocates a single-shot Timer under parent whose Timeout
// invokes fn(sender) once, then queues the Timer itself on its
// Application's deferred-deletion list, and starts it immediately.
func CallAfter(parent object.Object, d time.Duration, fn func(sender *Timer)) (*Timer, error) {
	t, err := New(parent)
	if err != nil {
		return nil, err
	}
	t.SetInterval(d)

	signal.Connect(t.timeout, t, func(self *Timer) {
		fn(self)
		// DeleteLater on the embedded Object would queue the *object.Base,
		// whose Destroy is not Timer.Destroy.
		if app := self.Application(); app != nil {
			app.DeferDelete(self)
		}
	})

	t.Start(SingleShot)
	return t, nil
}

// CallStaticAfter is CallAfter for a free function that does not need the
// firing Timer.
func CallStaticAfter(parent object.Object, d time.Duration, fn func()) (*Timer, error) {
	return CallAfter(parent, d, func(*Timer) { fn() })
}
