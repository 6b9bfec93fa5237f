/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

// Package context couples a typed key/value store to a context.Context:
// the store drains itself once the context is cancelled, and the whole
// thing still satisfies context.Context so it can flow through APIs that
// take one. The logger's field set is built on it.
package context

import (
	"context"

	libatm "github.com/nabbar/runtimecore/atomic"
)

type FuncContextConfig[T comparable] func() Config[T]

// FuncWalk visits one entry; returning false stops the walk.
type FuncWalk[T comparable] func(key T, val interface{}) bool

// MapManage is the store half of a Config. Mutations on a cancelled
// context are dropped (and drain the store); a nil value never stores.
type MapManage[T comparable] interface {
	Clean()
	Load(key T) (val interface{}, ok bool)
	Store(key T, cfg interface{})
	Delete(key T)
}

// Context exposes the backing context.Context.
type Context interface {
	// GetContext returns the backing context, context.Background when
	// none was attached.
	GetContext() context.Context
}

// Config is the typed store plus full context.Context behavior: Value
// resolves T-typed keys against the store before the context chain.
type Config[T comparable] interface {
	context.Context
	MapManage[T]
	Context

	// Clone copies the live entries into an independent Config on ctx
	// (the current context when nil). Nil once the backing context is
	// cancelled.
	Clone(ctx context.Context) Config[T]

	// Merge copies cfg's entries in, overwriting shared keys. False for
	// a nil cfg or a cancelled backing context.
	Merge(cfg Config[T]) bool

	// Walk visits every entry; WalkLimit restricts to validKeys.
	Walk(fct FuncWalk[T])
	WalkLimit(fct FuncWalk[T], validKeys ...T)

	// LoadOrStore returns the existing value under key when present
	// (loaded true), otherwise stores cfg.
	LoadOrStore(key T, cfg interface{}) (val interface{}, loaded bool)

	// LoadAndDelete removes key, returning what it held.
	LoadAndDelete(key T) (val interface{}, loaded bool)
}

// New builds a Config bound to ctx (context.Background when nil).
func New[T comparable](ctx context.Context) Config[T] {
	if ctx == nil {
		ctx = context.Background()
	}

	return &ccx[T]{
		m: libatm.NewMapAny[T](),
		x: ctx,
	}
}

// NewConfig builds a Config bound to ctx.
// Deprecated: see New
func NewConfig[T comparable](ctx context.Context) Config[T] {
	return New[T](ctx)
}
