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

// Package item is one expiring cache slot: a value, the time it was last
// stored, and the lifetime after which it reads as absent. The cache
// package keeps one per key.
package item

import (
	"sync/atomic"
	"time"

	libatm "github.com/nabbar/runtimecore/atomic"
)

// CacheItem is a single value with expiration. All operations are safe
// for concurrent use; any read that finds the item past its lifetime
// wipes it.
type CacheItem[T any] interface {
	// Check reports whether the item is still live.
	Check() bool

	// Clean wipes the item immediately, without waiting for expiry.
	Clean()

	// Duration is the configured lifetime (0 = never expires).
	Duration() time.Duration

	// Remain returns the elapsed time since the last Store and whether
	// the item is still live.
	Remain() (time.Duration, bool)

	// Store writes val and restarts the expiration clock.
	Store(val T)

	// Load returns the live value, false once expired.
	Load() (T, bool)

	// LoadRemain is Load plus the elapsed time since the last Store.
	LoadRemain() (T, time.Duration, bool)
}

// New builds a CacheItem holding val, expiring expire after each Store
// (0 = never).
func New[T any](expire time.Duration, val T) CacheItem[T] {
	o := &itm[T]{
		e: expire,
		k: new(atomic.Bool),
		t: libatm.NewValue[time.Time](),
		v: libatm.NewValue[T](),
	}

	o.clean(true)
	o.Store(val)

	return o
}
