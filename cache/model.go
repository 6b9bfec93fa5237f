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

package cache

import (
	"context"
	"time"

	libatm "github.com/nabbar/runtimecore/atomic"
	cchitm "github.com/nabbar/runtimecore/cache/item"
)

// cc is the generic, typed implementation behind New: a context-scoped map
// of lazily-expiring CacheItem values. There is no background janitor
// goroutine — expiry is checked on access (Load/Walk/...) and Expire gives
// callers an explicit sweep when they want one.
type cc[K comparable, V any] struct {
	context.Context

	n context.CancelFunc
	v libatm.MapTyped[K, cchitm.CacheItem[V]]
	e time.Duration
}

// Clone returns a new Cache seeded with every still-valid item of o, backed
// by ctx (o's own context if ctx is nil). It fails if o's context is already
// done, since there would be nothing trustworthy left to copy.
func (o *cc[K, V]) Clone(ctx context.Context) (Cache[K, V], error) {
	if err := o.Context.Err(); err != nil {
		return nil, err
	}

	if ctx == nil {
		ctx = o.Context
	}

	n := New[K, V](ctx, o.e)
	o.Walk(func(key K, val V, _ time.Duration) bool {
		n.Store(key, val)
		return true
	})

	return n, nil
}

// Merge copies every still-valid item of src into o, overwriting any
// existing entry for the same key.
func (o *cc[K, V]) Merge(src Cache[K, V]) {
	if o.Context.Err() != nil {
		return
	}

	src.Walk(func(key K, val V, _ time.Duration) bool {
		o.Store(key, val)
		return true
	})
}

// Walk visits every still-valid item, skipping (and lazily dropping)
// expired ones, until fct returns false.
func (o *cc[K, V]) Walk(fct func(K, V, time.Duration) bool) {
	if o.Context.Err() != nil {
		return
	}

	o.v.Range(func(key K, val cchitm.CacheItem[V]) bool {
		v, r, ok := val.LoadRemain()
		if !ok {
			o.v.Delete(key)
			return true
		}
		return fct(key, v, r)
	})
}

// Load returns the value for key if present and not expired.
func (o *cc[K, V]) Load(key K) (V, time.Duration, bool) {
	var zero V

	if o.Context.Err() != nil {
		return zero, 0, false
	}

	itm, ok := o.v.Load(key)
	if !ok {
		return zero, 0, false
	}

	v, r, k := itm.LoadRemain()
	if !k {
		o.v.Delete(key)
		return zero, 0, false
	}

	return v, r, true
}

// Store saves val for key, reusing the existing CacheItem if one is
// already present for that key; either way the expiration clock restarts.
func (o *cc[K, V]) Store(key K, val V) {
	if o.Context.Err() != nil {
		return
	}

	if itm, ok := o.v.Load(key); ok {
		itm.Store(val)
		return
	}

	o.v.Store(key, cchitm.New[V](o.e, val))
}

// Delete removes key, regardless of whether it was still valid.
func (o *cc[K, V]) Delete(key K) {
	o.v.Delete(key)
}

// LoadOrStore returns the existing valid value for key if there is one
// (loaded == true); otherwise it stores val under key and returns the zero
// value with loaded == false (unlike sync.Map, which returns the value it
// just stored).
func (o *cc[K, V]) LoadOrStore(key K, val V) (V, time.Duration, bool) {
	var zero V

	if o.Context.Err() != nil {
		return zero, 0, false
	}

	if itm, ok := o.v.Load(key); ok {
		if v, r, k := itm.LoadRemain(); k {
			return v, r, true
		}
		itm.Store(val)
		return zero, 0, false
	}

	o.v.Store(key, cchitm.New[V](o.e, val))
	return zero, 0, false
}

// LoadAndDelete removes key and returns the value it held, if it was
// present and still valid.
func (o *cc[K, V]) LoadAndDelete(key K) (V, bool) {
	var zero V

	if o.Context.Err() != nil {
		return zero, false
	}

	itm, ok := o.v.LoadAndDelete(key)
	if !ok {
		return zero, false
	}

	v, _, k := itm.LoadRemain()
	if !k {
		return zero, false
	}

	return v, true
}

// Swap stores val under key and returns the previous value, if key held one
// that was still valid.
func (o *cc[K, V]) Swap(key K, val V) (V, time.Duration, bool) {
	var zero V

	if o.Context.Err() != nil {
		return zero, 0, false
	}

	old, had := o.v.Load(key)
	o.v.Store(key, cchitm.New[V](o.e, val))

	if !had {
		return zero, 0, false
	}

	v, r, k := old.LoadRemain()
	if !k {
		return zero, 0, false
	}

	return v, r, true
}
