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
	"context"
	"time"
)

// GetContext returns the backing context, context.Background when none was
// attached.
func (c *ccx[T]) GetContext() context.Context {
	if c.x == nil {
		return context.Background()
	}
	return c.x
}

// Deadline, Done and Err delegate to the backing context, so a Config can
// sit anywhere a plain context.Context is expected.
func (c *ccx[T]) Deadline() (time.Time, bool) { return c.x.Deadline() }

func (c *ccx[T]) Done() <-chan struct{} { return c.x.Done() }

func (c *ccx[T]) Err() error { return c.x.Err() }

// Value resolves keys of type T against the store first, falling back to
// the backing context's own value chain for everything else.
func (c *ccx[T]) Value(key any) any {
	k, ok := key.(T)
	if !ok {
		return c.x.Value(key)
	}
	if v, found := c.Load(k); found {
		return v
	}
	return c.x.Value(key)
}
