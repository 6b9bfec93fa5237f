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

// Package signal implements the runtime's typed publish/subscribe primitive.
// A Signal[T] carries a single payload type T (use a struct for multi-value
// signals); emission is re-entrancy safe and every receiver that implements
// Trackable gets an automatic back-reference so its owner can sever the
// connection on destruction without walking every signal in the process.
package signal

// Emitter is implemented by a Signal's owner (normally an object.Object).
// Alive reports whether the owner can still be safely invoked. EmitBlocked
// and SignalsBlocked are independent: EmitBlocked is consulted on the
// signal's own owner to decide whether a non-destroyed Emit is suppressed
// outright; SignalsBlocked is consulted per connection, on each receiver, to
// decide whether that one callback is skipped.
type Emitter interface {
	Alive() bool
	EmitBlocked() bool
	SignalsBlocked() bool
}

// Trackable is implemented by a receiver that wants automatic disconnection
// when the signal's owner is destroyed. Connect calls TrackPeer once, handing
// back a disconnect closure that object.Base invokes from its own Destroy,
// skipping it when owner.Alive() already reports false.
type Trackable interface {
	TrackPeer(owner Emitter, disconnect func())
}

// Locker is the subset of sync.Locker accepted by the *Synchronized connect
// variants.
type Locker interface {
	Lock()
	Unlock()
}

// Logf receives one warning line for failure-semantics events: a nil
// receiver on connect, or a disconnect that matched nothing. Defaults to a
// no-op; wire it to logger.Logger.Warning via SetLogf.
type Logf func(format string, args ...interface{})

var logf Logf = func(string, ...interface{}) {}

// SetLogf installs the warning sink used by every Signal in the process.
func SetLogf(f Logf) {
	if f == nil {
		f = func(string, ...interface{}) {}
	}
	logf = f
}
