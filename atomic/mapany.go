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

// anyMap implements Map[K] as a thin typed-key shim over sync.Map. Only
// Range has anything to do: it re-checks the key type and evicts anything
// that no longer asserts to K, so a poisoned entry cannot wedge iteration.
type anyMap[K comparable] struct {
	sm sync.Map
}

func (m *anyMap[K]) Load(key K) (any, bool) { return m.sm.Load(key) }
func (m *anyMap[K]) Store(key K, value any) { m.sm.Store(key, value) }
func (m *anyMap[K]) Delete(key K)           { m.sm.Delete(key) }

func (m *anyMap[K]) LoadOrStore(key K, value any) (any, bool) {
	return m.sm.LoadOrStore(key, value)
}

func (m *anyMap[K]) LoadAndDelete(key K) (any, bool) {
	return m.sm.LoadAndDelete(key)
}

func (m *anyMap[K]) Swap(key K, value any) (any, bool) {
	return m.sm.Swap(key, value)
}

func (m *anyMap[K]) CompareAndSwap(key K, old, new any) bool {
	return m.sm.CompareAndSwap(key, old, new)
}

func (m *anyMap[K]) CompareAndDelete(key K, old any) bool {
	return m.sm.CompareAndDelete(key, old)
}

func (m *anyMap[K]) Range(f func(key K, value any) bool) {
	m.sm.Range(func(rawKey, value any) bool {
		key, ok := Cast[K](rawKey)
		if !ok {
			m.sm.Delete(rawKey)
			return true
		}
		return f(key, value)
	})
}
