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

package signal

import (
	"reflect"
	"sync"
)

// connection is one registered callback. receiver is nil for static
// connections, which are therefore never auto-disconnected. key is the
// code pointer of the caller-supplied callable, so the Disconnect variants
// can match a specific slot rather than "any slot of this receiver".
type connection[T any] struct {
	receiver interface{}
	key      uintptr
	call     func(T)
	mutex    Locker
}

// methodKey reduces a callable to a comparable identity. Two method values
// or closures built from the same code share a key, so matching always
// pairs it with the receiver.
func methodKey(fn interface{}) uintptr {
	if fn == nil {
		return 0
	}
	return reflect.ValueOf(fn).Pointer()
}

func (c *connection[T]) invoke(arg T) {
	if c.mutex != nil {
		c.mutex.Lock()
		defer c.mutex.Unlock()
	}
	c.call(arg)
}

// Signal is a typed, re-entrancy-safe publish point. The zero value is not
// usable; construct with New or NewDestroyed.
type Signal[T any] struct {
	mu         sync.Mutex
	owner      Emitter
	destroyed  bool
	conns      []*connection[T]
	inEmission bool
}

// New returns a Signal owned by owner. owner.EmitBlocked() is consulted on
// every Emit.
func New[T any](owner Emitter) *Signal[T] {
	return &Signal[T]{owner: owner}
}

// NewDestroyed returns the special "destroyed" signal: it ignores the
// owner's block flag and its connections are not subject to the owner's own
// auto-disconnect pass (there is nothing left to disconnect from once it has
// fired).
func NewDestroyed[T any](owner Emitter) *Signal[T] {
	return &Signal[T]{owner: owner, destroyed: true}
}

// --- process-wide "deleted during emission" tombstone set ---

var (
	tombMu sync.Mutex
	tomb   = map[interface{}]struct{}{}
)

func markDeleted(s interface{}) {
	tombMu.Lock()
	tomb[s] = struct{}{}
	tombMu.Unlock()
}

func wasDeleted(s interface{}) bool {
	tombMu.Lock()
	_, ok := tomb[s]
	tombMu.Unlock()
	return ok
}

func clearDeleted(s interface{}) {
	tombMu.Lock()
	delete(tomb, s)
	tombMu.Unlock()
}

// Connect registers method to be invoked, with receiver as arg, whenever sig
// fires. If receiver implements Trackable it is notified of the connection
// so its owner can auto-disconnect on destruction.
func Connect[T any](sig *Signal[T], receiver interface{}, method func(T)) {
	connect(sig, receiver, methodKey(method), method, nil)
}

// ConnectSynchronized is Connect, but acquires mtx around every invocation.
func ConnectSynchronized[T any](sig *Signal[T], receiver interface{}, method func(T), mtx Locker) {
	connect(sig, receiver, methodKey(method), method, mtx)
}

// ConnectMulti registers method with the signal's owner captured as the
// first argument ("sender"), as of connection time.
func ConnectMulti[T any](sig *Signal[T], receiver interface{}, method func(sender Emitter, arg T)) {
	if method == nil {
		logf("signal: connect with nil method ignored")
		return
	}
	sender := sig.owner
	connect(sig, receiver, methodKey(method), func(arg T) { method(sender, arg) }, nil)
}

// ConnectStatic registers a free function; static connections are never
// auto-disconnected and are not matched by Disconnect.
func ConnectStatic[T any](sig *Signal[T], fn func(T)) {
	connect(sig, nil, methodKey(fn), fn, nil)
}

// ConnectStaticMulti is ConnectStatic with the sender captured as the first
// argument.
func ConnectStaticMulti[T any](sig *Signal[T], fn func(sender Emitter, arg T)) {
	if fn == nil {
		logf("signal: connect with nil method ignored")
		return
	}
	sender := sig.owner
	connect(sig, nil, methodKey(fn), func(arg T) { fn(sender, arg) }, nil)
}

// ConnectForward makes emitting sig synchronously emit other with the same
// argument, as part of sig's own emission pass.
func ConnectForward[T any](sig *Signal[T], other *Signal[T]) {
	connect(sig, other, methodKey(other), func(arg T) { other.Emit(arg) }, nil)
}

func connect[T any](sig *Signal[T], receiver interface{}, key uintptr, method func(T), mtx Locker) {
	if method == nil {
		logf("signal: connect with nil method ignored")
		return
	}

	c := &connection[T]{receiver: receiver, key: key, call: method, mutex: mtx}

	sig.mu.Lock()
	sig.conns = append(sig.conns, c)
	sig.mu.Unlock()

	if receiver == nil || sig.destroyed {
		return
	}

	if tr, ok := receiver.(Trackable); ok && sig.owner != nil {
		owner := sig.owner
		tr.TrackPeer(owner, func() { sig.removeConn(c) })
	}
}

// Emit fires sig. If emission is blocked on the owner (and sig is not the
// destroyed signal) it is a silent no-op.
func (s *Signal[T]) Emit(arg T) {
	if !s.destroyed && s.owner != nil && s.owner.EmitBlocked() {
		return
	}

	s.mu.Lock()
	s.inEmission = true
	snapshot := make([]*connection[T], len(s.conns))
	copy(snapshot, s.conns)
	s.mu.Unlock()

	clearDeleted(s)

	for _, c := range snapshot {
		if rc, ok := c.receiver.(Emitter); ok && rc != nil {
			if !rc.Alive() || rc.SignalsBlocked() {
				continue
			}
		}

		c.invoke(arg)

		if wasDeleted(s) {
			break
		}
	}

	s.mu.Lock()
	s.inEmission = false
	s.mu.Unlock()
}

// Disconnect removes the first connection matching (receiver, method). A
// receiver connected through several distinct slots keeps the others. It
// returns false and logs a warning if nothing matched.
func Disconnect[T any](sig *Signal[T], receiver interface{}, method func(T)) bool {
	return disconnect(sig, receiver, methodKey(method), nil)
}

// DisconnectSynchronized is Disconnect for a slot registered through
// ConnectSynchronized: the mutex is part of the match.
func DisconnectSynchronized[T any](sig *Signal[T], receiver interface{}, method func(T), mtx Locker) bool {
	return disconnect(sig, receiver, methodKey(method), mtx)
}

// DisconnectMulti is Disconnect for a slot registered through ConnectMulti.
func DisconnectMulti[T any](sig *Signal[T], receiver interface{}, method func(sender Emitter, arg T)) bool {
	return disconnect(sig, receiver, methodKey(method), nil)
}

// DisconnectStatic removes the first static connection registered for fn.
func DisconnectStatic[T any](sig *Signal[T], fn func(T)) bool {
	return disconnect(sig, nil, methodKey(fn), nil)
}

func disconnect[T any](sig *Signal[T], receiver interface{}, key uintptr, mtx Locker) bool {
	sig.mu.Lock()
	defer sig.mu.Unlock()

	for i, c := range sig.conns {
		if c.receiver == receiver && c.key == key && c.mutex == mtx {
			sig.conns = append(sig.conns[:i], sig.conns[i+1:]...)
			return true
		}
	}

	logf("signal: disconnect matched no connection for receiver %v", receiver)
	return false
}

// removeConn severs one exact connection; the auto-disconnect closure
// handed to TrackPeer routes here so a receiver's destruction removes
// precisely the slots it registered, never a sibling slot that happens to
// share the receiver.
func (s *Signal[T]) removeConn(c *connection[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, have := range s.conns {
		if have == c {
			s.conns = append(s.conns[:i], s.conns[i+1:]...)
			return
		}
	}
}

// DisconnectAll removes every connection from sig, used by
// disconnectSender semantics (an object severing all outgoing connections
// of its own signals).
func (s *Signal[T]) DisconnectAll() {
	s.mu.Lock()
	s.conns = nil
	s.mu.Unlock()
}

// MarkDeletedDuringEmission records that sig was destroyed while one of its
// callbacks was running; the in-flight Emit loop checks this after every
// callback and aborts early.
func (s *Signal[T]) MarkDeletedDuringEmission() {
	markDeleted(s)
}

// InEmission reports whether sig is currently dispatching.
func (s *Signal[T]) InEmission() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inEmission
}

// Len returns the current connection count, mainly for tests.
func (s *Signal[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}
