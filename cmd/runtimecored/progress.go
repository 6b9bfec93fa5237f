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

package main

import (
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// progressBar wraps a single mpb bar tracking the byte count get streams
// through dataRead: the pipeline itself (file.File) stays ignorant of
// progress reporting, which lives entirely in this demo CLI's dataRead
// handler.
type progressBar struct {
	p   *mpb.Progress
	bar *mpb.Bar
}

// newProgressBar starts an indeterminate-length bar labelled name; Get
// emits no size ahead of its dataRead stream, so the bar just counts
// bytes seen rather than showing a percentage.
func newProgressBar(name string) *progressBar {
	p := mpb.New(mpb.WithWidth(40))
	bar := p.AddBar(0,
		mpb.BarFillerClearOnComplete(),
		mpb.PrependDecorators(decor.Name(name)),
		mpb.AppendDecorators(decor.CurrentKibiByte("% .1f")),
	)
	return &progressBar{p: p, bar: bar}
}

// advance reports n more bytes read; safe to call on a nil *progressBar so
// callers don't need to guard every dataRead handler invocation.
func (b *progressBar) advance(n int64) {
	if b == nil {
		return
	}
	b.bar.IncrInt64(n)
}

// done completes and flushes the bar. Safe on a nil *progressBar.
func (b *progressBar) done() {
	if b == nil {
		return
	}
	b.bar.SetTotal(b.bar.Current(), true)
	b.p.Wait()
}
