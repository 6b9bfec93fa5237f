/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package errors

import (
	"path"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
)

const (
	PathSeparator = "/"
	pathVendor    = "vendor"
	pathMod       = "mod"
	pathPkg       = "pkg"
	pkgRuntime    = "runtime"
)

// filterPkg is the module path prefix stripped from trace file paths;
// currPkgs names this package so its own frames are skipped when walking
// the stack.
var (
	filterPkg = path.Clean(ConvPathFromLocal(reflect.TypeOf(UnknownError).PkgPath()))
	currPkgs  = path.Base(ConvPathFromLocal(filterPkg))
)

// ConvPathFromLocal normalizes an OS-local path to forward slashes.
func ConvPathFromLocal(str string) string {
	return strings.ReplaceAll(str, string(filepath.Separator), PathSeparator)
}

func init() {
	if i := strings.LastIndex(filterPkg, PathSeparator+pathVendor+PathSeparator); i != -1 {
		filterPkg = filterPkg[:i+1]
	}
}

// callerFrames captures the current stack above itself; getFrame and
// getFrameVendor skip this package's own frames while walking it.
func callerFrames() *runtime.Frames {
	pcs := make([]uintptr, 20, 255)
	n := runtime.Callers(2, pcs)
	if n < 1 {
		return nil
	}
	return runtime.CallersFrames(pcs[:n])
}

// getFrame returns the first stack frame outside this package, the frame
// an Error records as its origin.
func getFrame() runtime.Frame {
	frames := callerFrames()
	if frames == nil {
		return getNilFrame()
	}

	for {
		frame, more := frames.Next()

		if !strings.Contains(frame.Function, currPkgs) {
			return runtime.Frame{
				Function: frame.Function,
				File:     frame.File,
				Line:     frame.Line,
			}
		}

		if !more {
			return getNilFrame()
		}
	}
}

// getFrameVendor collects up to five distinct caller frames, skipping this
// package, vendored code and the runtime itself — the recovered-panic
// constructor uses it to reconstruct a usable chain.
func getFrameVendor() []runtime.Frame {
	res := make([]runtime.Frame, 0, 5)

	frames := callerFrames()
	if frames == nil {
		return res
	}

	for {
		frame, more := frames.Next()

		item := runtime.Frame{
			Function: frame.Function,
			File:     frame.File,
			Line:     frame.Line,
		}

		switch {
		case strings.Contains(item.Function, currPkgs):
		case strings.Contains(ConvPathFromLocal(frame.File), PathSeparator+pathVendor+PathSeparator):
		case strings.HasPrefix(frame.Function, pkgRuntime):
		case frameInSlice(res, item):
		default:
			res = append(res, item)
			if len(res) > 4 {
				return res
			}
		}

		if !more {
			return res
		}
	}
}

func frameInSlice(s []runtime.Frame, f runtime.Frame) bool {
	for _, i := range s {
		if i.Function == f.Function && i.File == f.File && i.Line == f.Line {
			return true
		}
	}
	return false
}

func getNilFrame() runtime.Frame {
	return runtime.Frame{}
}

// filterPath strips the module cache, this module's own prefix, and any
// vendor prefix from a trace file path, leaving a stable relative path.
func filterPath(pathname string) string {
	pathname = ConvPathFromLocal(pathname)

	for _, marker := range []string{
		PathSeparator + pathPkg + PathSeparator + pathMod + PathSeparator,
		filterPkg,
		PathSeparator + pathVendor + PathSeparator,
	} {
		if marker == "" {
			continue
		}
		if i := strings.LastIndex(pathname, marker); i != -1 {
			pathname = pathname[i+len(marker):]
		}
	}

	return strings.Trim(path.Clean(pathname), PathSeparator)
}
