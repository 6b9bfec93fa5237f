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

// Package cache is a typed, TTL-bounded key/value store. The module
// registry memoizes its scheme-to-extension resolution in one; entries
// expire a fixed duration after their last Store.
package cache

import (
	"context"
	"io"
	"time"

	libatm "github.com/nabbar/runtimecore/atomic"
	cchitm "github.com/nabbar/runtimecore/cache/item"
)

// FuncCache defers construction of a Cache, for holders that want lazy
// initialization.
type FuncCache[K comparable, V any] func() Cache[K, V]

// Generic is the type-independent half of a cache: a context, a closer,
// and the two cleanup entry points.
type Generic interface {
	context.Context
	io.Closer

	// Clean drops every item; Expire drops only the expired ones. Both
	// are safe against concurrent access.
	Clean()
	Expire()
}

// Cache is a typed key/value store whose entries expire a fixed duration
// after their last Store. Every operation is safe for concurrent use; a
// read that finds an expired entry treats it as absent.
type Cache[K comparable, V any] interface {
	Generic

	// Clone deep-copies the live entries into a new Cache on ctx.
	Clone(context.Context) (Cache[K, V], error)

	// Merge copies c's live entries in; keys already present are
	// overwritten with c's value.
	Merge(Cache[K, V])

	// Walk visits each live (key, value, remaining) until fct returns
	// false.
	Walk(func(K, V, time.Duration) bool)

	// Load returns the live value under key and its remaining lifetime;
	// an expired entry reads as absent and is dropped.
	Load(K) (V, time.Duration, bool)

	// Store writes val under key, restarting its expiration clock.
	Store(K, V)

	Delete(K)

	// LoadOrStore returns the live value under key if any, otherwise
	// stores val. The bool reports whether an existing live value was
	// returned.
	LoadOrStore(K, V) (V, time.Duration, bool)

	// LoadAndDelete removes key, returning the live value it held.
	LoadAndDelete(K) (V, bool)

	// Swap stores val under key and returns the previous live value.
	Swap(key K, val V) (V, time.Duration, bool)
}

// New builds a Cache on ctx whose entries live exp past their last Store
// (0 = never expire). Close cancels the cache's own derived context.
func New[K comparable, V any](ctx context.Context, exp time.Duration) Cache[K, V] {
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, cnl := context.WithCancel(ctx)

	return &cc[K, V]{
		Context: ctx,
		n:       cnl,
		v:       libatm.NewMapTyped[K, cchitm.CacheItem[V]](),
		e:       exp,
	}
}
