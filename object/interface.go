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

// Package object implements the runtime's ownership tree: every live Object
// belongs to exactly one parent (except the Application roots), destruction
// cascades post-order through children, and a signal.Signal[Object] fires
// first and unconditionally whenever an Object is destroyed.
package object

import (
	"github.com/nabbar/runtimecore/signal"
)

// ID uniquely identifies an Object within the process for its lifetime.
type ID uint64

// Application is the minimal surface an Object needs from its owning
// runtime. app.Application satisfies this interface; keeping it minimal here
// avoids an import cycle between object and app.
type Application interface {
	// DeferDelete appends o to the application's deferred-deletion list,
	// deduplicating if o is already pending.
	DeferDelete(o Object)
}

// Object is one node of the ownership tree.
type Object interface {
	signal.Emitter
	signal.Trackable

	ID() ID
	Parent() Object
	Application() Application
	Children() []Object

	// Reparent moves o under p. It fails silently (returns false) if p
	// belongs to a different Application.
	Reparent(p Object) bool

	// DeleteLater schedules Destroy to run on the next
	// processDelayedDeletions pass of the owning Application's event loop.
	DeleteLater()

	// Destroy emits Destroyed, cascades into children post-order, severs
	// every connection this object holds as a receiver on a live owner's
	// signal, and detaches from its parent's child list. Connections to
	// this object's own signals are left in place.
	Destroy()

	// Destroyed is the implicit signal every Object exposes; it always
	// fires, even while BlockSignals(true) is in effect.
	Destroyed() *signal.Signal[Object]

	// BlockSignals suppresses (or re-enables) emission of every signal
	// owned by o except Destroyed. Returns the previous state.
	BlockSignals(block bool) bool

	// BlockReception suppresses (or re-enables) o's receipt of signals it
	// is connected to as a receiver, independently of BlockSignals.
	// Returns the previous state.
	BlockReception(block bool) bool

	// CascadeDelete controls whether Destroy recurses into children
	// (default true).
	SetCascadeDelete(cascade bool)
}
