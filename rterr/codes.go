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

// Package rterr registers the runtime's own CodeError values on top of the
// generic errors package, through its RegisterIdFctMessage extension
// point.
package rterr

import (
	liberr "github.com/nabbar/runtimecore/errors"
)

// File pipeline error taxonomy (StatResult.ErrorCode / the `error` signal).
const (
	NoError liberr.CodeError = 6000 + iota
	FileNotFound
	InsufficientPermissions
	CouldNotResolveHost
	CouldNotConnect
	LoginFailed
	FileAlreadyExists
	InvalidURI
	UnknownFileError
)

// Object graph / signal dispatch construction errors.
const (
	NilParent liberr.CodeError = 6100 + iota
	CrossApplicationReparent
	NoHandlerForScheme
)

func message(code liberr.CodeError) string {
	switch code {
	case NoError:
		return "no error"
	case FileNotFound:
		return "file not found"
	case InsufficientPermissions:
		return "insufficient permissions"
	case CouldNotResolveHost:
		return "could not resolve host"
	case CouldNotConnect:
		return "could not connect"
	case LoginFailed:
		return "login failed"
	case FileAlreadyExists:
		return "file already exists"
	case InvalidURI:
		return "invalid uri"
	case UnknownFileError:
		return "unknown file error"
	case NilParent:
		return "object requires a non-nil parent"
	case CrossApplicationReparent:
		return "cannot reparent across applications"
	case NoHandlerForScheme:
		return "no protocol handler registered for scheme"
	default:
		return liberr.UnknownMessage
	}
}

func init() {
	liberr.RegisterIdFctMessage(NoError, message)
}
