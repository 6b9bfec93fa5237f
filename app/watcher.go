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

package app

import (
	"github.com/fsnotify/fsnotify"
)

// watcher wraps an fsnotify.Watcher over the module search path
// directories. checkFileWatches calls drain once per loop iteration; it
// never blocks, matching the main loop's single-threaded cadence.
type watcher struct {
	w    *fsnotify.Watcher
	warn func(format string, args ...interface{})
}

func newWatcher(dirs []string, warn func(format string, args ...interface{})) *watcher {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		if warn != nil {
			warn("app: file watch disabled, fsnotify init failed: %v", err)
		}
		return nil
	}

	for _, d := range dirs {
		if d == "" {
			continue
		}
		if err = w.Add(d); err != nil && warn != nil {
			warn("app: could not watch module path %q: %v", d, err)
		}
	}

	return &watcher{w: w, warn: warn}
}

// drain consumes every event and error currently buffered on the watcher's
// channels without blocking, invoking onChange once per event.
func (wr *watcher) drain(onChange func(path string)) {
	if wr == nil || wr.w == nil {
		return
	}

	for {
		select {
		case ev, ok := <-wr.w.Events:
			if !ok {
				return
			}
			if onChange != nil {
				onChange(ev.Name)
			}
		case err, ok := <-wr.w.Errors:
			if !ok {
				return
			}
			if wr.warn != nil {
				wr.warn("app: file watch error: %v", err)
			}
		default:
			return
		}
	}
}
