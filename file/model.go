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

package file

import (
	"context"
	"sync"

	liberr "github.com/nabbar/runtimecore/errors"
	"github.com/nabbar/runtimecore/file/perm"
	"github.com/nabbar/runtimecore/object"
	"github.com/nabbar/runtimecore/protocol"
	"github.com/nabbar/runtimecore/rterr"
	"github.com/nabbar/runtimecore/runner"
	"github.com/nabbar/runtimecore/signal"
	"github.com/nabbar/runtimecore/value"
)

type file struct {
	object.Object

	cache *protocol.Cache

	sigStat  *signal.Signal[value.StatResult]
	sigData  *signal.Signal[value.ByteStream]
	sigDir   *signal.Signal[[]value.URI]
	sigError *signal.Signal[liberr.CodeError]
}

// New constructs a File, parented under parent, driving every job against
// cache. cache is normally the owning Application's single protocol.Cache,
// shared across every File in the process.
func New(parent object.Object, cache *protocol.Cache) (File, error) {
	o, err := object.New(parent)
	if err != nil {
		return nil, err
	}

	f := &file{Object: o, cache: cache}
	f.sigStat = signal.New[value.StatResult](f)
	f.sigData = signal.New[value.ByteStream](f)
	f.sigDir = signal.New[[]value.URI](f)
	f.sigError = signal.New[liberr.CodeError](f)

	return f, nil
}

func (f *file) StatResult() *signal.Signal[value.StatResult] { return f.sigStat }
func (f *file) DataRead() *signal.Signal[value.ByteStream]   { return f.sigData }
func (f *file) DirRead() *signal.Signal[[]value.URI]         { return f.sigDir }
func (f *file) Error() *signal.Signal[liberr.CodeError]      { return f.sigError }

func (f *file) Stat(uri value.URI, mode ThreadMode) Thread {
	return newThread(mode, func(ctx context.Context) error {
		h := f.cache.Acquire(uri)
		if h == nil {
			return nil
		}
		res := h.Stat(ctx, uri)
		f.sigStat.Emit(res)
		f.cache.Release(h)
		return nil
	})
}

func (f *file) Get(uri value.URI, maxBytes int64, mode ThreadMode) Thread {
	return newThread(mode, func(ctx context.Context) error {
		h := f.cache.Acquire(uri)
		if h == nil {
			return nil
		}
		defer f.cache.Release(h)

		res := h.Stat(ctx, uri)
		if res.ErrorCode != uint16(rterr.NoError) {
			f.sigError.Emit(liberr.NewCodeError(res.ErrorCode))
			return nil
		}

		if res.Type.IsDir() {
			entries, err := h.ListDir(ctx, uri)
			if err != nil {
				f.sigError.Emit(codeFromErr(err))
				return nil
			}
			f.sigDir.Emit(entries)
			return nil
		}

		if err := h.Open(ctx, uri, protocol.Read); err != nil {
			f.sigError.Emit(codeFromErr(err))
			return nil
		}
		defer func() { _ = h.Close() }()

		var read int64
		for {
			b, err := h.Read(ctx, BufferSize)
			if err != nil {
				// Mid-stream errors end the loop without emitting error;
				// only pre-loop failures (stat, open, listdir) surface it.
				break
			}
			if b.Empty() {
				break
			}

			read += int64(b.Len())
			f.sigData.Emit(b)

			if maxBytes != 0 && read >= maxBytes {
				break
			}
		}
		return nil
	})
}

func (f *file) Mkdir(uri value.URI, perms perm.Perm, mode ThreadMode) Thread {
	return newThread(mode, func(ctx context.Context) error {
		h := f.cache.Acquire(uri)
		if h == nil {
			return nil
		}
		defer f.cache.Release(h)

		if err := h.Mkdir(ctx, uri, perms); err != nil {
			f.sigError.Emit(codeFromErr(err))
		}
		return nil
	})
}

// codeFromErr extracts the rterr CodeError a ProtocolHandler call returned,
// falling back to UnknownFileError for a plain error that did not come
// through the liberr chain (should not happen for builtin backends, but
// keeps Get/Mkdir's Emit total for any third-party Handler too).
func codeFromErr(err error) liberr.CodeError {
	if e, ok := err.(liberr.Error); ok {
		return e.GetCode()
	}
	return rterr.UnknownFileError
}

// thread adapts runner's two worker shapes (joinable and detached) behind
// the one interface Stat/Get/Mkdir return.
type thread struct {
	mode ThreadMode
	fn   runner.FuncRun

	ss runner.StartStop

	mu  sync.Mutex
	det runner.Detached
}

func newThread(mode ThreadMode, fn runner.FuncRun) *thread {
	t := &thread{mode: mode, fn: fn}
	if mode == Joinable {
		t.ss = runner.New(fn, nil)
	}
	return t
}

func (t *thread) Start(ctx context.Context) error {
	if t.mode == Joinable {
		return t.ss.Start(ctx)
	}

	t.mu.Lock()
	t.det = runner.Spawn(ctx, t.fn)
	t.mu.Unlock()
	return nil
}

func (t *thread) Stop(ctx context.Context) error {
	if t.mode == Joinable {
		return t.ss.Stop(ctx)
	}
	return nil
}

func (t *thread) IsRunning() bool {
	if t.mode == Joinable {
		return t.ss.IsRunning()
	}

	t.mu.Lock()
	d := t.det
	t.mu.Unlock()

	if d == nil {
		return false
	}
	return d.Running()
}
