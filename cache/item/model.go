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

package item

import (
	"sync/atomic"
	"time"

	libatm "github.com/nabbar/runtimecore/atomic"
)

// itm backs CacheItem: the value and its last-store timestamp live in
// atomic cells, the validity flag in an atomic.Bool, so no operation
// takes a lock.
type itm[T any] struct {
	e time.Duration           // lifetime per Store; 0 = forever
	k *atomic.Bool            // false once expired or cleaned
	t libatm.Value[time.Time] // last Store time
	v libatm.Value[T]
}

// Every read funnels through LoadRemain so expiry is decided in exactly
// one place.

func (o *itm[T]) Check() bool {
	_, _, ok := o.LoadRemain()
	return ok
}

func (o *itm[T]) Clean() {
	o.clean(true)
}

func (o *itm[T]) Duration() time.Duration {
	return o.e
}

func (o *itm[T]) Remain() (time.Duration, bool) {
	_, r, ok := o.LoadRemain()
	return r, ok
}

func (o *itm[T]) Load() (T, bool) {
	v, _, ok := o.LoadRemain()
	return v, ok
}

// LoadRemain returns the value and the age of its last Store; an item
// past its lifetime (or never stored) is wiped and reads as invalid.
func (o *itm[T]) LoadRemain() (T, time.Duration, bool) {
	var zero T

	if !o.k.Load() {
		return zero, 0, false
	}

	if o.e == 0 {
		return o.v.Load(), 0, true
	}

	t := o.t.Load()
	if t.IsZero() {
		return zero, 0, o.clean(false)
	}

	if age := time.Since(t); age < o.e {
		return o.v.Load(), age, true
	}

	return zero, 0, o.clean(false)
}

// Store writes val and restarts the expiration clock.
func (o *itm[T]) Store(val T) {
	o.k.Store(true)
	o.t.Store(time.Now())
	o.v.Store(val)
}

// clean wipes the item; res passes through so expiry checks can return
// it in one expression.
func (o *itm[T]) clean(res bool) bool {
	var zero T
	o.k.Store(false)
	o.t.Store(time.Time{})
	o.v.Store(zero)
	return res
}
