/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
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

package atomic

import (
	"sync/atomic"
)

// val backs Value[T]: the payload lives boxed in one atomic.Value, the two
// defaults in atomic.Pointer cells so SetDefault* stays safe after first
// use. Every operation is lock-free.
type val[T any] struct {
	cur  atomic.Value
	defL atomic.Pointer[T]
	defS atomic.Pointer[T]
}

func (o *val[T]) SetDefaultLoad(def T) {
	o.defL.Store(&def)
}

func (o *val[T]) SetDefaultStore(def T) {
	o.defS.Store(&def)
}

func (o *val[T]) loadDefault(p *atomic.Pointer[T]) T {
	if d := p.Load(); d != nil {
		return *d
	}
	var zero T
	return zero
}

// Load returns the stored value, or the load default while nothing (or a
// non-T value) is stored.
func (o *val[T]) Load() T {
	v, ok := Cast[T](o.cur.Load())
	if !ok {
		return o.loadDefault(&o.defL)
	}
	return v
}

// Store replaces the value; a zero argument stores the store default
// instead.
func (o *val[T]) Store(v T) {
	o.cur.Store(o.fill(v))
}

// fill substitutes the store default for a zero value.
func (o *val[T]) fill(v T) T {
	if IsEmpty[T](v) {
		return o.loadDefault(&o.defS)
	}
	return v
}

// Swap stores new (zero mapping to the store default) and returns what was
// there, the load default if nothing was.
func (o *val[T]) Swap(new T) T {
	old, ok := Cast[T](o.cur.Swap(o.fill(new)))
	if !ok {
		return o.loadDefault(&o.defL)
	}
	return old
}

// CompareAndSwap maps zero old/new to the store default before delegating
// to the underlying compare-and-swap.
func (o *val[T]) CompareAndSwap(old, new T) bool {
	return o.cur.CompareAndSwap(o.fill(old), o.fill(new))
}
