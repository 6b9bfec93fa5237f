/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
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

// Package protocol implements the bounded, weight-ordered ProtocolHandler
// cache: handlers are acquired by URI match, reused when
// compatible, and evicted by least weight once the cache is full. Fresh
// handlers come from a module.Registry lookup by URI scheme and the
// caller-supplied ComponentOwner, which is how the File pipeline uses it.
//
// CanBeReusedWith's "is this handler still good" check follows the same
// shape as ftpclient's Check(): a pooled, health-checked connection. The
// eviction policy is weight-sort-evict, not a stock LRU. The
// handler-resolution lookup itself is memoized by module.Registry's own
// find cache, not by this package.
package protocol

import (
	"context"

	"github.com/nabbar/runtimecore/file/perm"
	"github.com/nabbar/runtimecore/module"
	"github.com/nabbar/runtimecore/value"
)

// OpenMode selects the access mode for Open.
type OpenMode uint8

const (
	Read OpenMode = iota
	Write
	Append
)

// Handler is the ProtocolHandler capability set, plus the Weight
// bookkeeping the eviction policy needs. Concrete
// backends (protocol/builtin/...) are also module.Extension, so they are
// parented Objects like anything else the Registry constructs; the cache
// only requires this narrower view.
type Handler interface {
	Open(ctx context.Context, uri value.URI, mode OpenMode) error
	Read(ctx context.Context, n int) (value.ByteStream, error)
	Write(ctx context.Context, b value.ByteStream) (int, error)
	Close() error

	ListDir(ctx context.Context, uri value.URI) ([]value.URI, error)
	Mkdir(ctx context.Context, uri value.URI, mode perm.Perm) error
	Rm(ctx context.Context, uri value.URI) error
	Stat(ctx context.Context, uri value.URI) value.StatResult

	// CanBeReusedWith reports whether this handler can take a request
	// against uri; the builtin backends answer false while a request of
	// their own is still open.
	CanBeReusedWith(uri value.URI) bool

	Weight() uint64
	IncrementWeight()
}

// Extension is the full shape a builtin backend implements: Handler plus
// module.Extension so it can be constructed and tracked by a Registry.
type Extension interface {
	module.Extension
	Handler
}
