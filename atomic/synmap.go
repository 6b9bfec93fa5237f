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
	"sync"
)

// typedMap implements MapTyped[K, V] directly over a sync.Map rather than
// stacking on Map[K]: the value-side cast happens exactly once per
// operation. Reads of an entry whose value no longer asserts to V report
// absent; Range evicts such entries.
type typedMap[K comparable, V any] struct {
	sm sync.Map
}

// asV narrows an interface{} result to V, collapsing ok to false when the
// cast fails.
func asV[V any](raw any, ok bool) (V, bool) {
	v, cast := Cast[V](raw)
	if !cast {
		var zero V
		return zero, false
	}
	return v, ok
}

func (m *typedMap[K, V]) Load(key K) (V, bool) {
	return asV[V](m.sm.Load(key))
}

func (m *typedMap[K, V]) Store(key K, value V) {
	m.sm.Store(key, value)
}

func (m *typedMap[K, V]) LoadOrStore(key K, value V) (V, bool) {
	return asV[V](m.sm.LoadOrStore(key, value))
}

func (m *typedMap[K, V]) LoadAndDelete(key K) (V, bool) {
	return asV[V](m.sm.LoadAndDelete(key))
}

func (m *typedMap[K, V]) Delete(key K) {
	m.sm.Delete(key)
}

func (m *typedMap[K, V]) Swap(key K, value V) (V, bool) {
	return asV[V](m.sm.Swap(key, value))
}

func (m *typedMap[K, V]) CompareAndSwap(key K, old, new V) bool {
	return m.sm.CompareAndSwap(key, old, new)
}

func (m *typedMap[K, V]) CompareAndDelete(key K, old V) bool {
	return m.sm.CompareAndDelete(key, old)
}

func (m *typedMap[K, V]) Range(f func(key K, value V) bool) {
	m.sm.Range(func(rawKey, rawVal any) bool {
		key, okK := Cast[K](rawKey)
		val, okV := Cast[V](rawVal)
		if !okK || !okV {
			m.sm.Delete(rawKey)
			return true
		}
		return f(key, val)
	})
}
