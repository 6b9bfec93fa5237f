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

import "time"

// Deadline, Done and Err delegate to the context the cache was built with,
// so a Cache can be passed anywhere a context.Context is expected.
func (o *cc[K, V]) Deadline() (time.Time, bool) { return o.Context.Deadline() }

func (o *cc[K, V]) Done() <-chan struct{} { return o.Context.Done() }

func (o *cc[K, V]) Err() error { return o.Context.Err() }

// Value resolves keys of the cache's own key type against live entries
// first, then falls back to the backing context's value chain.
func (o *cc[K, V]) Value(key any) any {
	if k, ok := key.(K); ok {
		if v, _, found := o.Load(k); found {
			return v
		}
	}
	return o.Context.Value(key)
}
