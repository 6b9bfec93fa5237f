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

import cchitm "github.com/nabbar/runtimecore/cache/item"

// Close implements io.Closer: it cancels the cache's derived context and
// drops every item.
func (o *cc[K, V]) Close() error {
	if o.n != nil {
		o.n()
	}

	o.Clean()
	return nil
}

// Clean drops every item regardless of expiry, wiping each slot so a
// concurrently-held reference reads as invalid too.
func (o *cc[K, V]) Clean() {
	o.v.Range(func(key K, _ cchitm.CacheItem[V]) bool {
		if itm, ok := o.v.LoadAndDelete(key); ok {
			itm.Clean()
		}
		return true
	})
}

// Expire drops only the items past their lifetime.
func (o *cc[K, V]) Expire() {
	o.v.Range(func(key K, itm cchitm.CacheItem[V]) bool {
		if !itm.Check() {
			o.v.Delete(key)
		}
		return true
	})
}
