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

// Package file implements the request pipeline: a File object
// exposes Stat/Get/Mkdir, each of which builds — but does not start — a
// worker Thread that acquires a ProtocolHandler from a protocol.Cache,
// drives one operation, and fans its outcome back through one of four
// typed signals (statResult, dataRead, dirRead, error), releasing the
// handler when done.
package file

import (
	"context"

	"github.com/nabbar/runtimecore/errors"
	"github.com/nabbar/runtimecore/file/perm"
	"github.com/nabbar/runtimecore/signal"
	"github.com/nabbar/runtimecore/value"
)

// BufferSize is the chunk size Get reads in, matching io.copyBuffer's own
// default of 32 KiB.
const BufferSize = 32 * 1024

// ThreadMode selects whether Stat/Get/Mkdir's worker must be joined by the
// caller (Joinable) or tears itself down once its job function returns
// (Detached).
type ThreadMode uint8

const (
	Joinable ThreadMode = iota
	Detached
)

// Thread is the handle Stat/Get/Mkdir return: constructed but not started.
// Start launches the job; Stop only has an effect on a Joinable Thread —
// calling it on a Detached one is a safe no-op, since a detached worker
// has no caller-visible stop path by design.
type Thread interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	IsRunning() bool
}

// File is the object.Object that owns one request pipeline's signals. It
// holds no state of its own across jobs — every Stat/Get/Mkdir call is
// independent, so concurrent jobs against the same File are safe.
type File interface {
	StatResult() *signal.Signal[value.StatResult]
	DataRead() *signal.Signal[value.ByteStream]
	DirRead() *signal.Signal[[]value.URI]
	Error() *signal.Signal[errors.CodeError]

	// Stat constructs a worker whose job is to acquire a handler for uri,
	// call its Stat, emit statResult, and release the handler.
	Stat(uri value.URI, mode ThreadMode) Thread

	// Get constructs a worker whose job is Get: stat first (errors surface
	// via Error, not StatResult), then either one dirRead emission for a
	// directory or a dataRead stream in BufferSize chunks. With maxBytes
	// non-zero, reading stops after the first chunk that brings the total
	// to maxBytes or more; that chunk is not trimmed (0 = unbounded).
	Get(uri value.URI, maxBytes int64, mode ThreadMode) Thread

	// Mkdir constructs a worker whose job is Mkdir: acquire a handler,
	// call its Mkdir, release it. Failures surface via Error.
	Mkdir(uri value.URI, perms perm.Perm, mode ThreadMode) Thread
}
