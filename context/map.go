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

package context

import (
	"slices"
)

// Clean empties the store.
func (c *ccx[T]) Clean() {
	c.m.Range(func(key T, _ any) bool {
		c.m.Delete(key)
		return true
	})
}

// expired reports whether the backing context has been cancelled; once it
// is, the store drains itself and every mutation becomes a no-op.
func (c *ccx[T]) expired() bool {
	if c.Err() == nil {
		return false
	}
	c.Clean()
	return true
}

func (c *ccx[T]) Load(key T) (interface{}, bool) {
	return c.m.Load(key)
}

// Store writes cfg under key; nil values and writes past cancellation are
// dropped.
func (c *ccx[T]) Store(key T, cfg interface{}) {
	if c.expired() || cfg == nil {
		return
	}
	c.m.Store(key, cfg)
}

func (c *ccx[T]) Delete(key T) {
	if c.expired() {
		return
	}
	c.m.Delete(key)
}

func (c *ccx[T]) LoadOrStore(key T, cfg interface{}) (interface{}, bool) {
	if c.expired() {
		return nil, false
	}
	return c.m.LoadOrStore(key, cfg)
}

func (c *ccx[T]) LoadAndDelete(key T) (interface{}, bool) {
	if c.expired() {
		return nil, false
	}
	return c.m.LoadAndDelete(key)
}

// Walk visits every entry until fct returns false.
func (c *ccx[T]) Walk(fct FuncWalk[T]) {
	c.WalkLimit(fct)
}

// WalkLimit is Walk restricted to validKeys (all keys when empty). Entries
// found holding nil are dropped on the way through.
func (c *ccx[T]) WalkLimit(fct FuncWalk[T], validKeys ...T) {
	c.m.Range(func(key T, val any) bool {
		switch {
		case val == nil:
			c.m.Delete(key)
			return true
		case len(validKeys) > 0 && !slices.Contains(validKeys, key):
			return true
		default:
			return fct(key, val)
		}
	})
}
