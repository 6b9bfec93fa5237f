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

package object

import (
	"sync"
	"sync/atomic"

	"github.com/nabbar/runtimecore/rterr"
	"github.com/nabbar/runtimecore/signal"
)

var lastID atomic.Uint64

func nextID() ID {
	return ID(lastID.Add(1))
}

type peerRef struct {
	owner      signal.Emitter
	disconnect func()
}

// childList matches any parent whose child-list hooks are reachable: a
// *Base itself, or a wrapper embedding *Base (app.Application) whose
// promoted methods carry through. Wrappers embedding the Object interface
// instead of *Base do not promote these and keep no child list of their own.
type childList interface {
	addChild(c Object)
	removeChild(c Object)
}

// Base is the concrete implementation backing every Object in the tree,
// including the Application roots (constructed via NewRoot).
type Base struct {
	id  ID
	app Application

	mu       sync.Mutex
	parent   Object
	children []Object
	peers    []peerRef

	alive    atomic.Bool
	blocked  atomic.Bool // emit-blocked: suppresses o's own signal emissions
	received atomic.Bool // signals-blocked: suppresses o's receipt as a connection receiver
	cascade  atomic.Bool

	destroyedSig *signal.Signal[Object]
}

// New constructs an Object under parent, belonging to parent's Application.
// parent must be non-nil; use NewRoot to construct an Application itself.
func New(parent Object) (*Base, error) {
	if parent == nil {
		return nil, rterr.NilParent.Error(nil)
	}

	o := newBase(parent.Application())
	o.parent = parent

	if b, ok := parent.(childList); ok {
		b.addChild(o)
	}

	return o, nil
}

// NewRoot constructs an Application-level root Object: it has no parent and
// is itself the Application it belongs to.
func NewRoot(app Application) *Base {
	o := newBase(app)
	return o
}

func newBase(app Application) *Base {
	o := &Base{id: nextID(), app: app}
	o.alive.Store(true)
	o.cascade.Store(true)
	o.destroyedSig = signal.NewDestroyed[Object](o)
	return o
}

func (o *Base) ID() ID                            { return o.id }
func (o *Base) Application() Application          { return o.app }
func (o *Base) Alive() bool                       { return o.alive.Load() }
func (o *Base) EmitBlocked() bool                 { return o.blocked.Load() }
func (o *Base) SignalsBlocked() bool              { return o.received.Load() }
func (o *Base) Destroyed() *signal.Signal[Object] { return o.destroyedSig }

func (o *Base) SetCascadeDelete(cascade bool) {
	o.cascade.Store(cascade)
}

func (o *Base) Parent() Object {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.parent
}

func (o *Base) Children() []Object {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]Object, len(o.children))
	copy(out, o.children)
	return out
}

func (o *Base) addChild(c Object) {
	o.mu.Lock()
	o.children = append(o.children, c)
	o.mu.Unlock()
}

func (o *Base) removeChild(c Object) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i, ch := range o.children {
		if ch == c {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

// Reparent moves o under p. It is a no-op that returns false if p belongs to
// a different Application than o.
func (o *Base) Reparent(p Object) bool {
	if p == nil || p.Application() != o.app {
		return false
	}

	o.mu.Lock()
	old := o.parent
	o.mu.Unlock()

	if oldBase, ok := old.(childList); ok && old != nil {
		oldBase.removeChild(o)
	}

	o.mu.Lock()
	o.parent = p
	o.mu.Unlock()

	if newBase, ok := p.(childList); ok {
		newBase.addChild(o)
	}

	return true
}

func (o *Base) DeleteLater() {
	if o.app != nil {
		o.app.DeferDelete(o)
	}
}

// TrackPeer implements signal.Trackable: it records the disconnect closure
// handed back by signal.Connect so Destroy can sever the connection without
// needing to know which signal it came from.
func (o *Base) TrackPeer(owner signal.Emitter, disconnect func()) {
	if owner == signal.Emitter(o) {
		return
	}

	o.mu.Lock()
	o.peers = append(o.peers, peerRef{owner: owner, disconnect: disconnect})
	o.mu.Unlock()
}

// BlockSignals suppresses every signal owned by o except Destroyed; returns
// the previous state.
func (o *Base) BlockSignals(block bool) bool {
	return o.blocked.Swap(block)
}

// BlockReception suppresses (or re-enables) o's receipt of signals it is
// connected to as a receiver. Independent of BlockSignals: the latter
// silences o's own emissions, this one silences o's incoming callbacks.
// Returns the previous state.
func (o *Base) BlockReception(block bool) bool {
	return o.received.Swap(block)
}

// Destroy emits Destroyed, cascades post-order into children (unless
// cascade delete has been turned off), disconnects every connection o holds
// as a receiver, and detaches o from its parent.
func (o *Base) Destroy() {
	if !o.alive.CompareAndSwap(true, false) {
		return
	}

	o.destroyedSig.Emit(o)

	if o.cascade.Load() {
		for _, c := range o.Children() {
			c.Destroy()
		}
	}

	o.mu.Lock()
	peers := make([]peerRef, len(o.peers))
	copy(peers, o.peers)
	o.peers = nil
	o.mu.Unlock()

	for _, p := range peers {
		if p.owner != nil && !p.owner.Alive() {
			continue
		}
		p.disconnect()
	}

	if parent := o.Parent(); parent != nil {
		if pb, ok := parent.(childList); ok {
			pb.removeChild(o)
		}
	}
}
