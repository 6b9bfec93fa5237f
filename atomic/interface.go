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

// Package atomic wraps sync/atomic and sync.Map behind typed generic
// surfaces. The runtime's shared mutable cells (context maps, cache items,
// registry memo) are built on these instead of raw interface{} stores.
package atomic

// Value is a typed atomic cell with substitutable defaults: the load
// default is returned while the cell is unset, the store default replaces
// a zero value on every write path (Store, Swap, and both CompareAndSwap
// operands). Set the defaults before first use.
type Value[T any] interface {
	SetDefaultLoad(def T)
	SetDefaultStore(def T)

	// Load returns the current value, or the load default while unset.
	Load() (val T)
	// Store writes val, substituting the store default when val is zero.
	Store(val T)
	// Swap stores new and returns the previous value (the load default
	// while unset).
	Swap(new T) (old T)
	// CompareAndSwap swaps to new when the cell holds old, reporting
	// whether it did.
	CompareAndSwap(old, new T) (swapped bool)
}

// Map is a sync.Map with a typed key; values stay interface{}.
type Map[K comparable] interface {
	Load(key K) (value any, ok bool)
	Store(key K, value any)

	// LoadOrStore returns the existing value when key is present (loaded
	// true), otherwise stores and returns value.
	LoadOrStore(key K, value any) (actual any, loaded bool)
	// LoadAndDelete removes key, returning what it held.
	LoadAndDelete(key K) (value any, loaded bool)

	Delete(key K)
	// Swap replaces key's value, returning the previous one.
	Swap(key K, value any) (previous any, loaded bool)

	CompareAndSwap(key K, old, new any) bool
	CompareAndDelete(key K, old any) (deleted bool)

	// Range visits every entry in unspecified order until f returns false.
	Range(f func(key K, value any) bool)
}

// MapTyped is Map with the value side typed too. An entry whose value does
// not assert to V, or equals V's zero value (see Cast), reads as absent and
// is dropped during Range.
type MapTyped[K comparable, V any] interface {
	Load(key K) (value V, ok bool)
	Store(key K, value V)

	LoadOrStore(key K, value V) (actual V, loaded bool)
	LoadAndDelete(key K) (value V, loaded bool)

	Delete(key K)
	Swap(key K, value V) (previous V, loaded bool)

	CompareAndSwap(key K, old, new V) bool
	CompareAndDelete(key K, old V) (deleted bool)

	Range(f func(key K, value V) bool)
}

// NewValue returns a Value whose defaults are both T's zero value.
func NewValue[T any]() Value[T] {
	var load, store T
	return NewValueDefault[T](load, store)
}

// NewValueDefault returns a Value preloaded with the given load and store
// defaults.
func NewValueDefault[T any](load, store T) Value[T] {
	o := &val[T]{}
	o.SetDefaultLoad(load)
	o.SetDefaultStore(store)
	return o
}

// NewMapAny returns a Map keyed by K over a sync.Map.
func NewMapAny[K comparable]() Map[K] {
	return &anyMap[K]{}
}

// NewMapTyped returns a MapTyped keyed by K holding V values.
func NewMapTyped[K comparable, V any]() MapTyped[K, V] {
	return &typedMap[K, V]{}
}
